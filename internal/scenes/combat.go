package scenes

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/spix/internal/combat"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/scene"
	"github.com/KirkDiggler/spix/internal/state"
	"github.com/KirkDiggler/spix/internal/ui"
)

var (
	autoFight   = state.NewVar("auto_fight", false)
	transcripts = state.NewVar("transcripts", true)
)

// Outcome of a fight as seen by the scene underneath
type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeFled    Outcome = "fled"
)

// Result is handed to the scene below combat when the fight ends without
// the player dying
type Result struct {
	Outcome Outcome
	Foe     *entities.Foe
}

// combatScene runs one encounter, a round per entry. Inventory and settings
// do not cost the player a round.
type combatScene struct {
	content
	encounter *combat.Encounter
}

// newCombat takes the foe to fight, either built or as a catalog id
func newCombat(c content, args ...any) (scene.Scene, error) {
	if len(args) == 0 {
		return nil, errors.InvalidArgument("combat needs a foe")
	}

	var foe *entities.Foe
	switch v := args[0].(type) {
	case *entities.Foe:
		foe = v
	case string:
		var err error
		foe, err = c.Catalog().NewFoe(v)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.InvalidArgumentf("combat cannot fight a %T", args[0])
	}
	if foe == nil {
		return nil, errors.InvalidArgument("combat needs a foe")
	}
	if err := c.requirePlayer(); err != nil {
		return nil, err
	}

	enc, err := combat.NewEncounter(&combat.EncounterConfig{
		Resolver: c.Resolver(),
		Player:   c.Player(),
		Foe:      foe,
	})
	if err != nil {
		return nil, err
	}
	return &combatScene{content: c, encounter: enc}, nil
}

func (s *combatScene) foeName() string {
	return capitalize(s.encounter.Foe().GetName())
}

func (s *combatScene) recorder() combat.Recorder {
	if !scene.Get(&s.Base, transcripts) {
		return combat.Nop
	}
	return s.Recorder()
}

func (s *combatScene) Enter(ctx context.Context) error {
	player, foe := s.encounter.Player(), s.encounter.Foe()

	s.encounter.SetAutoFight(scene.Get(&s.Base, autoFight))
	s.encounter.BeginRound()

	s.para("encounter", "foe", foe.GetName())
	s.para("player_hp", "name", player.Name, "hp", itoa(player.HitPoints()), "max_hp", itoa(player.MaxHitPoints()))
	s.para("foe_hp", "name", s.foeName(), "hp", itoa(foe.HitPoints()), "max_hp", itoa(foe.MaxHitPoints()))
	s.para("next_action")

	var choice combat.Choice
	pick := func(action combat.Action) ui.Action {
		return func(context.Context) error {
			choice = combat.Choice{Action: action}
			return nil
		}
	}

	m := s.Menu().
		Keyed("a", s.text("attack"), pick(combat.ActionAttack)).
		Keyed("p", s.text("power_attack"), pick(combat.ActionPowerAttack)).
		Keyed("i", s.text("inventory"), func(ctx context.Context) error {
			picked, err := s.rummage(ctx)
			choice = picked
			return err
		}).
		Keyed("e", s.text("escape"), pick(combat.ActionEscape)).
		Keyed("s", s.text("settings"), s.settings)

	var err error
	if retake, ok := s.encounter.RetakeAction(); ok {
		err = m.RunWith(ctx, retakeKey(retake))
	} else {
		err = m.Run(ctx)
	}
	if err != nil {
		return err
	}
	if choice.Action == combat.ActionNone {
		return nil
	}

	report, err := s.encounter.Resolve(s.recorder(), choice)
	if err != nil {
		return err
	}
	return s.narrate(ctx, report)
}

func retakeKey(a combat.Action) string {
	if a == combat.ActionPowerAttack {
		return "p"
	}
	return "a"
}

// rummage offers usable items. Backing out leaves the choice empty.
func (s *combatScene) rummage(ctx context.Context) (combat.Choice, error) {
	var choice combat.Choice

	stacks, err := s.encounter.UsableItems()
	if err != nil {
		return choice, err
	}
	if len(stacks) == 0 {
		s.para("no_items")
		return choice, s.Pause(ctx)
	}

	m := s.Menu()
	keys := listKeys(len(stacks), "b")
	for i, key := range keys {
		st := stacks[i]
		m.Keyed(key, s.text("use_item", "item", st.Item.Name, "quantity", itoa(st.Quantity)), func(context.Context) error {
			choice = combat.Choice{Action: combat.ActionUseItem, ItemID: st.ID}
			return nil
		})
	}
	m.Keyed("b", s.text("skip_items"), nil)
	return choice, m.Run(ctx)
}

func (s *combatScene) settings(ctx context.Context) error {
	autoKey, transcriptKey := "enable_auto_fight", "hide_transcripts"
	if scene.Get(&s.Base, autoFight) {
		autoKey = "disable_auto_fight"
	}
	if !scene.Get(&s.Base, transcripts) {
		transcriptKey = "show_transcripts"
	}

	return s.Menu().
		Keyed("a", s.text(autoKey), func(context.Context) error {
			scene.Set(&s.Base, autoFight, !scene.Get(&s.Base, autoFight))
			return nil
		}).
		Keyed("t", s.text(transcriptKey), func(context.Context) error {
			scene.Set(&s.Base, transcripts, !scene.Get(&s.Base, transcripts))
			return nil
		}).
		Keyed("d", s.text("settings_done"), nil).
		Run(ctx)
}

func (s *combatScene) narrate(ctx context.Context, report *combat.RoundReport) error {
	foe := s.encounter.Foe()
	s.Line("", ui.StylePrimary)

	if strike := report.PlayerStrike; strike != nil {
		switch {
		case strike.Outcome == combat.OutcomeMiss:
			s.para("miss")
		case strike.Outcome == combat.OutcomeEvade:
			s.para("foe_evades", "foe", s.foeName())
		case strike.Damage() > 0:
			s.para("hit", "damage", itoa(strike.Damage()))
		default:
			s.para("no_damage", "weapon", s.encounter.Player().WeaponName())
		}
	}
	if use := report.Item; use != nil {
		s.narrateItem(use)
	}
	if report.Escape != nil {
		if report.Phase == combat.PhaseFled {
			s.para("fled")
			if err := s.Pause(ctx); err != nil {
				return err
			}
			slog.Debug("Combat ended", "foe_id", foe.GetID(), "outcome", OutcomeFled)
			return s.Finish(Result{Outcome: OutcomeFled, Foe: foe})
		}
		s.para("no_escape", "foe", foe.GetName())
	}

	if report.Phase == combat.PhaseVictory {
		if err := s.victory(ctx, report.Spoils); err != nil {
			return err
		}
		slog.Debug("Combat ended", "foe_id", foe.GetID(), "outcome", OutcomeVictory)
		return s.Finish(Result{Outcome: OutcomeVictory, Foe: foe})
	}

	if strike := report.FoeStrike; strike != nil {
		vars := []string{"foe", s.foeName(), "verb", foe.AttackVerb(), "weapon", foe.WeaponName()}
		switch {
		case strike.Outcome == combat.OutcomeMiss:
			s.para("foe_miss", vars...)
		case strike.Outcome == combat.OutcomeEvade:
			s.para("player_evades", vars...)
		case strike.Damage() > 0:
			s.para("foe_hit", append(vars, "damage", itoa(strike.Damage()))...)
		default:
			s.para("foe_shrugged", vars...)
		}
	}

	if totem := report.Totem; totem != nil {
		s.para("darken")
		s.para("totem", "item", totem.Item.Name)
	}
	if report.Phase == combat.PhaseDefeated {
		s.para("darken")
		slog.Debug("Combat ended", "foe_id", foe.GetID(), "outcome", "defeated")
		return s.Transition(GameOver)
	}

	// auto-fight repeats the attack straight away after a round where
	// nobody was hurt
	if _, ok := s.encounter.RetakeAction(); ok {
		return nil
	}
	return s.Pause(ctx)
}

func (s *combatScene) narrateItem(use *combat.ItemUse) {
	name := use.Item.Name
	switch {
	case use.Item.Tagged(entities.TagHeal) && use.Applied:
		s.para("healed", "item", name, "hp", itoa(use.Roll.Total()), "roll", use.Roll.String())
	case use.Item.Tagged(entities.TagGrenade) && use.Applied:
		s.para("blasted", "item", name, "damage", itoa(use.Roll.Total()), "roll", use.Roll.String())
	case use.Item.Tagged(entities.TagGrenade):
		s.para("fumbled", "item", name, "foe", s.encounter.Foe().GetName())
	default:
		s.para("nothing_happens", "item", name)
	}
}

func (s *combatScene) victory(ctx context.Context, spoils *combat.Spoils) error {
	foe := s.encounter.Foe()
	s.Line("", ui.StylePrimary)
	s.Para(foe.Finisher())
	if err := s.Pause(ctx); err != nil {
		return err
	}
	if spoils == nil {
		return nil
	}

	if spoils.Cash > 0 {
		s.para("cash", "cash", ui.Money(spoils.Cash), "foe", foe.GetName())
		if err := s.Pause(ctx); err != nil {
			return err
		}
	}

	s.para("exp", "exp", itoa(spoils.Exp))
	if err := s.Pause(ctx); err != nil {
		return err
	}

	if len(spoils.Drops) == 0 {
		return nil
	}
	s.para("loot")
	for _, id := range spoils.Drops {
		name := id
		if item, err := s.Catalog().LookupItem(id); err == nil {
			name = item.Name
		}
		s.note("loot_item", "item", name)
	}
	return s.Pause(ctx)
}
