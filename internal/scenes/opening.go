package scenes

import (
	"context"

	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/ui"
)

type titleScene struct{ content }

func (s *titleScene) Enter(ctx context.Context) error {
	s.para("heading")
	s.para("subtitle")
	s.Line("", ui.StylePrimary)
	s.note("dedication")
	s.note("dedication_2")
	s.Line("", ui.StylePrimary)

	return s.Menu().
		Keyed("n", s.text("new"), s.proceed(Intro)).
		Keyed("l", s.text("load"), s.proceed(Load)).
		Keyed("q", s.text("quit"), s.finish).
		Run(ctx)
}

// maxNameLength keeps names readable in dialogue and the save list
const maxNameLength = 24

// introScene rolls a new character and sends them up the road
type introScene struct{ content }

func (s *introScene) Enter(ctx context.Context) error {
	err := s.FirstEnter(func() error {
		s.Controller().SetPlayer(entities.NewPlayer(s.Catalog()))
		if s.cfg.HideTranscripts {
			transcripts.Set(s.Store(), Combat, false)
		}
		return nil
	})
	if err != nil {
		return err
	}
	player := s.Player()

	s.para("arrival")
	s.para("greeting")
	s.speak("Man", "ask_name")
	for {
		name, err := s.Prompt(ctx, "Name")
		if err != nil {
			return err
		}
		vb := errors.NewValidationBuilder()
		errors.ValidateMaxLength("Name", name, maxNameLength, vb)
		if err := vb.Build(); err != nil {
			s.speak("Man", "name_too_long")
			continue
		}
		if name != "" {
			player.Name = name
		}
		break
	}
	s.speak("You", "give_name", "name", player.Name)
	s.speak("Man", "journey", "name", player.Name)

	m := s.Menu()
	s.say(m, "i", s.text("martial"), func(context.Context) error {
		player.Martial += 2
		return nil
	})
	s.say(m, "d", s.text("evasion"), func(context.Context) error {
		player.Evasion += 2
		return nil
	})
	s.say(m, "t", s.text("body"), func(context.Context) error {
		player.RaiseMaxHP(6)
		player.Heal(6)
		return nil
	})
	if err := m.Run(ctx); err != nil {
		return err
	}

	s.para("ponder")
	s.speak("Man", "purpose")
	s.speak("You", "quest")
	s.speak("Man", "rumour")
	s.para("gesture")
	if err := s.Pause(ctx); err != nil {
		return err
	}

	s.speak("Man", "city", "name", player.Name)
	s.para("depart")
	if err := s.Pause(ctx); err != nil {
		return err
	}

	return s.Replace(IntroTown)
}

type introTownScene struct{ content }

func (s *introTownScene) Enter(ctx context.Context) error {
	s.para("highway")
	s.para("outskirts")
	s.para("signs")
	s.para("approach")

	return s.Menu().
		Keyed("c", s.text("casual"), func(context.Context) error { return s.Replace(IntroTownCasual) }).
		Keyed("s", s.text("cautious"), func(context.Context) error { return s.Replace(IntroTownCautious) }).
		Run(ctx)
}

// bruiserPreInjury is what the cautious approach's opening kick takes off
const bruiserPreInjury = 7

type introTownCautiousScene struct{ content }

func (s *introTownCautiousScene) Enter(ctx context.Context) error {
	for _, key := range []string{"skirt", "wind", "unseen", "overhear", "mistake"} {
		s.para(key)
		if err := s.Pause(ctx); err != nil {
			return err
		}
	}

	bruiser, err := s.Catalog().NewFoe("bruiser")
	if err != nil {
		return err
	}
	bruiser.Injure(bruiserPreInjury)

	return s.arriveAtTavern(bruiser)
}

type introTownCasualScene struct{ content }

func (s *introTownCasualScene) Enter(ctx context.Context) error {
	bruiser, err := s.Catalog().NewFoe("bruiser")
	if err != nil {
		return err
	}

	for _, key := range []string{"stroll", "porch", "door"} {
		s.para(key)
		if err := s.Pause(ctx); err != nil {
			return err
		}
	}
	s.speak(capitalize(bruiser.GetName()), "threat")
	if err := s.Pause(ctx); err != nil {
		return err
	}

	if err := s.requirePlayer(); err != nil {
		return err
	}
	s.Player().Inventory.Add("shovel", 1)
	s.Player().Inventory.Equip("shovel")

	return s.arriveAtTavern(bruiser)
}

// arriveAtTavern leaves the player in a fight outside the tavern, with the
// town and the tavern waiting underneath
func (c *content) arriveAtTavern(bruiser *entities.Foe) error {
	if err := c.Replace(Winnipeg); err != nil {
		return err
	}
	if err := c.Proceed(Tavern); err != nil {
		return err
	}
	return c.Proceed(Combat, bruiser)
}

type gameOverScene struct{ content }

func (s *gameOverScene) Enter(ctx context.Context) error {
	s.para("fall")
	if err := s.Pause(ctx); err != nil {
		return err
	}
	return s.Finish(nil)
}
