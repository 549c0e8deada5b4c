// Package scenes is the game's content: the narrative screens of Winnipeg
// and its surroundings, plus the combat screen that drives an encounter.
//
// Prose lives in an embedded YAML script so scenes only carry their logic.
package scenes

import (
	"context"
	"strconv"
	"strings"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/repositories/saves"
	"github.com/KirkDiggler/spix/internal/scene"
	"github.com/KirkDiggler/spix/internal/ui"
)

// Scene names
const (
	Title             = "title"
	Intro             = "intro"
	IntroTown         = "intro_town"
	IntroTownCasual   = "intro_town_casual"
	IntroTownCautious = "intro_town_cautious"
	Winnipeg          = "winnipeg"
	Tavern            = "tavern"
	Dylan             = "dylan"
	LevelUp           = "level_up"
	Cooking           = "cooking"
	Blacksmith        = "blacksmith"
	Barter            = "barter"
	CharacterSheet    = "character_sheet"
	AssiniboineForest = "assiniboine_forest"
	Camp              = "camp"
	PriceElectronics  = "price_electronics"
	CraigsOffice      = "craigs_office"
	Combat            = "combat"
	Save              = "save"
	Load              = "load"
	GameOver          = "game_over"
)

// Config holds what content scenes need beyond the controller
type Config struct {
	// Saves backs the save and load scenes. Without it saving is refused.
	Saves saves.Repository
	// Owner groups this session's saves
	Owner string
	// Script defaults to the embedded script
	Script *Script
	// HideTranscripts starts new games with combat transcripts off
	HideTranscripts bool
}

// Validate ensures all required fields are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Saves != nil {
		errors.ValidateRequired("Owner", c.Owner, vb)
	}

	return vb.Build()
}

// Register adds every content scene to reg
func Register(reg *scene.Registry, cfg *Config) error {
	if reg == nil {
		return errors.InvalidArgument("registry is required")
	}
	if cfg == nil {
		return errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	script := cfg.Script
	if script == nil {
		var err error
		script, err = DefaultScript()
		if err != nil {
			return errors.Wrap(err, "failed to load script")
		}
	}

	d := &deps{cfg: cfg, script: script}
	factories := map[string]scene.Factory{
		Title:             d.plain(func(c content) scene.Scene { return &titleScene{content: c} }),
		Intro:             d.plain(func(c content) scene.Scene { return &introScene{content: c} }),
		IntroTown:         d.plain(func(c content) scene.Scene { return &introTownScene{content: c} }),
		IntroTownCasual:   d.plain(func(c content) scene.Scene { return &introTownCasualScene{content: c} }),
		IntroTownCautious: d.plain(func(c content) scene.Scene { return &introTownCautiousScene{content: c} }),
		Winnipeg:          d.plain(func(c content) scene.Scene { return &winnipegScene{content: c} }),
		Tavern:            d.plain(func(c content) scene.Scene { return &tavernScene{content: c} }),
		Dylan:             d.plain(func(c content) scene.Scene { return &dylanScene{content: c} }),
		LevelUp:           d.plain(func(c content) scene.Scene { return &levelUpScene{content: c} }),
		Cooking:           d.plain(func(c content) scene.Scene { return &cookingScene{content: c} }),
		Blacksmith:        d.plain(func(c content) scene.Scene { return &blacksmithScene{content: c} }),
		Barter:            d.with(newBarter),
		CharacterSheet:    d.plain(func(c content) scene.Scene { return &characterSheetScene{content: c} }),
		AssiniboineForest: d.plain(func(c content) scene.Scene { return &forestScene{content: c} }),
		Camp:              d.plain(func(c content) scene.Scene { return &campScene{content: c} }),
		PriceElectronics:  d.plain(func(c content) scene.Scene { return &priceElectronicsScene{content: c} }),
		CraigsOffice:      d.plain(func(c content) scene.Scene { return &craigsOfficeScene{content: c} }),
		Combat:            d.with(newCombat),
		Save:              d.with(newSave),
		Load:              d.plain(func(c content) scene.Scene { return &loadScene{content: c} }),
		GameOver:          d.plain(func(c content) scene.Scene { return &gameOverScene{content: c} }),
	}

	for name, factory := range factories {
		if err := reg.Register(name, factory); err != nil {
			return errors.Wrapf(err, "failed to register %s", name)
		}
	}
	return nil
}

// NewRegistry returns a registry holding every content scene
func NewRegistry(cfg *Config) (*scene.Registry, error) {
	reg := scene.NewRegistry()
	if err := Register(reg, cfg); err != nil {
		return nil, err
	}
	return reg, nil
}

type deps struct {
	cfg    *Config
	script *Script
}

func (d *deps) content(b scene.Base) content {
	return content{Base: b, script: d.script, cfg: d.cfg}
}

// plain adapts a scene that takes no arguments
func (d *deps) plain(build func(c content) scene.Scene) scene.Factory {
	return func(b scene.Base, _ ...any) (scene.Scene, error) {
		return build(d.content(b)), nil
	}
}

func (d *deps) with(build func(c content, args ...any) (scene.Scene, error)) scene.Factory {
	return func(b scene.Base, args ...any) (scene.Scene, error) {
		return build(d.content(b), args...)
	}
}

// content is embedded by every scene in this package
type content struct {
	scene.Base

	script *Script
	cfg    *Config
}

// text looks up a line of this scene's script
func (c *content) text(key string, vars ...string) string {
	return c.script.Text(c.Name(), key, vars...)
}

func (c *content) para(key string, vars ...string) {
	c.Para(c.text(key, vars...))
}

func (c *content) note(key string, vars ...string) {
	c.Note(c.text(key, vars...))
}

func (c *content) speak(who, key string, vars ...string) {
	c.Dialogue(who, c.text(key, vars...))
}

// say adds a menu entry where the player speaks the entry's text aloud
// before fn runs
func (c *content) say(m *ui.Menu, key, text string, fn ui.Action) *ui.Menu {
	return m.Keyed(key, text, func(ctx context.Context) error {
		c.Dialogue("You", text)
		if fn == nil {
			return nil
		}
		return fn(ctx)
	})
}

// finish pops this scene with no result
func (c *content) finish(context.Context) error { return c.Finish(nil) }

// proceed returns a menu action that pushes name
func (c *content) proceed(name string, args ...any) ui.Action {
	return func(context.Context) error { return c.Proceed(name, args...) }
}

// chance returns a uniform value in [0, n)
func (c *content) chance(n int) (int, error) {
	v, err := c.Roller().Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll")
	}
	return v - 1, nil
}

func (c *content) requirePlayer() error {
	if c.Player() == nil {
		return errors.Newf(errors.CodeFailedPrecondition, "scene %s needs a player", c.Name())
	}
	return nil
}

// capitalize upper-cases the first letter only: "rabid raccoon" -> "Rabid raccoon"
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

const (
	listDigits  = "123456789"
	listLetters = "acdefghijkmopqrstvwxyz"
)

// listKeys returns n menu keys for a numbered list: digits first, then
// letters that do not collide with reserved
func listKeys(n int, reserved ...string) []string {
	keys := make([]string, 0, n)
	for _, r := range listDigits + listLetters {
		if len(keys) == n {
			break
		}
		k := string(r)
		skip := false
		for _, res := range reserved {
			if strings.EqualFold(res, k) {
				skip = true
				break
			}
		}
		if !skip {
			keys = append(keys, k)
		}
	}
	return keys
}

func itoa(n int) string { return strconv.Itoa(n) }
