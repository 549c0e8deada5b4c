package scenes

import (
	"context"

	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/scene"
	"github.com/KirkDiggler/spix/internal/state"
	"github.com/KirkDiggler/spix/internal/ui"
)

const (
	drinkPrice        = 5
	introductionPrice = 50
)

var (
	// set once the player learns where Craig lives
	foundPriceEng   = state.NewShared("found_price_eng", false)
	tavernIntro     = state.NewVar("intro", true)
	dylanIntro      = state.NewVar("intro", true)
	cookAntagonized = state.NewVar("antagonize", 0)
)

// the cook fights after cookPatience insults; negative once beaten
const (
	cookBeaten   = -1
	cookLooted   = -2
	cookPatience = 3
)

type winnipegScene struct{ content }

func (s *winnipegScene) Enter(ctx context.Context) error {
	s.para("crossroads")

	m := s.Menu().
		Keyed("f", s.text("forest"), s.proceed(AssiniboineForest)).
		Keyed("t", s.text("tavern"), s.proceed(Tavern)).
		Keyed("c", s.text("cooking"), s.proceed(Cooking)).
		Keyed("b", s.text("blacksmith"), s.proceed(Blacksmith))
	if scene.Get(&s.Base, foundPriceEng) {
		m.Keyed("p", s.text("price_electronics"), s.proceed(PriceElectronics))
	}
	return m.
		Keyed("s", s.text("save"), s.proceed(Save, s.text("rest"))).
		Keyed("m", s.text("sheet"), s.proceed(CharacterSheet)).
		Run(ctx)
}

type tavernScene struct{ content }

func (s *tavernScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}
	intro := scene.Get(&s.Base, tavernIntro)

	s.para("room")
	if intro {
		s.para("intro_regulars")
		s.para("intro_bartender")
		s.speak("Bartender", "intro_greeting")
	} else {
		s.para("regulars")
		s.speak("Bartender", "greeting")
	}

	m := s.Menu()
	s.say(m, "d", s.text("see_dylan"), func(context.Context) error {
		s.speak("Bartender", "dylan_out_back")
		scene.Set(&s.Base, tavernIntro, false)
		return s.Proceed(Dylan)
	})
	if s.Player().Cash >= drinkPrice {
		m.Keyed("b", s.text("drink"), s.drink)
	}
	if !scene.Get(&s.Base, foundPriceEng) && s.Player().Inventory.Has("octocopter") {
		m.Keyed("e", s.text("ask_electronics"), s.askAboutElectronics)
	}
	if !intro {
		m.Add("Leave", func(context.Context) error {
			s.para("leave")
			return s.Finish(nil)
		})
	}
	if err := m.Run(ctx); err != nil {
		return err
	}
	return s.Pause(ctx)
}

// drink is the one way to push hp over the maximum
func (s *tavernScene) drink(context.Context) error {
	player := s.Player()
	player.Pay(drinkPrice)
	s.speak("Bartender", "take_cash")

	roll, err := s.chance(40)
	if err != nil {
		return err
	}

	switch {
	case roll < 35:
		s.para("beer")
		player.Overheal(3)
		s.note("bonus", "hp", "3")
	case roll < 38:
		s.para("rocks")
		s.speak("Bartender", "rocks_quip")
		player.Overheal(2)
		s.note("bonus", "hp", "2")
	case roll == 38:
		s.para("craft")
		s.speak("Bartender", "craft_quip")
		player.RaiseMaxHP(1)
		player.Overheal(1)
		s.note("max_hp_up")
	default:
		s.speak("Bartender", "enough")
		s.para("kicked_out")
		return s.Finish(nil)
	}
	return nil
}

// askAboutElectronics shows the octocopter around until somebody names
// Craig or the player drops the topic
func (s *tavernScene) askAboutElectronics(ctx context.Context) error {
	s.para("show_drone")
	player := s.Player()

	for dropped := false; !dropped && !scene.Get(&s.Base, foundPriceEng); {
		m := s.Menu()
		s.say(m, "a", s.text("anybody"), func(ctx context.Context) error {
			s.speak("Drunk", "know_a_guy", "price", ui.Money(introductionPrice))

			offer := s.Menu()
			if player.Cash < introductionPrice {
				s.say(offer, "d", s.text("too_poor", "price", ui.Money(introductionPrice)), func(ctx context.Context) error {
					s.para("shrug")
					return s.Pause(ctx)
				})
			} else {
				offer.Keyed("d", s.text("pay", "price", ui.Money(introductionPrice)), func(ctx context.Context) error {
					player.Pay(introductionPrice)
					s.para("pocketed")
					s.speak("Drunk", "craig")
					scene.Set(&s.Base, foundPriceEng, true)
					s.para("thanks")
					return s.Pause(ctx)
				})
			}
			offer.Keyed("a", s.text("whoopin"), func(context.Context) error {
				s.para("kick_stool")
				scene.Set(&s.Base, foundPriceEng, true)
				return s.Proceed(Combat, "extortionate_drunk")
			})
			return offer.Run(ctx)
		})
		s.say(m, "t", s.text("threaten"), func(context.Context) error {
			s.para("innocent")
			return nil
		})
		s.say(m, "d", s.text("drop_topic"), func(context.Context) error {
			s.para("thanks_anyway")
			dropped = true
			return nil
		})
		if err := m.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}

// dylanScene is the quest giver and the gate to levelling up
type dylanScene struct{ content }

func (s *dylanScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}

	s.para("room")
	s.para("looks_up")
	s.speak("Dylan", "out_with_it")
	s.para("questions")

	m := s.Menu()
	s.say(m, "w", s.text("ask_job"), func(context.Context) error {
		s.speak("Dylan", "mayor")
		return nil
	})
	if scene.Get(&s.Base, dylanIntro) {
		s.say(m, "c", s.text("ask_spix"), s.spixDialogue)
	} else {
		m.Keyed("d", s.text("report"), s.report)
		s.say(m, "a", s.text("ask_wisdom"), func(ctx context.Context) error {
			s.para("eyebrow")
			return s.Pause(ctx)
		})
		m.Keyed("l", s.text("leave"), func(context.Context) error {
			s.para("excuse")
			return s.Finish(nil)
		})
	}
	if err := m.Run(ctx); err != nil {
		return err
	}
	return s.Pause(ctx)
}

func (s *dylanScene) spixDialogue(ctx context.Context) error {
	s.para("pained")
	s.speak("Dylan", "decades")

	m := s.Menu()
	s.say(m, "i", s.text("give_up"), func(context.Context) error {
		s.para("shrug")
		return nil
	})
	s.say(m, "h", s.text("insist"), func(ctx context.Context) error {
		s.para("chuckle")
		s.speak("Dylan", "reputation")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		s.para("window")
		s.speak("Dylan", "monologue")
		if err := s.Pause(ctx); err != nil {
			return err
		}

		s.Clear()
		s.para("wander")
		listened := s.Menu()
		s.say(listened, "u", s.text("agree"), nil)
		s.say(listened, "s", s.text("distracted"), nil)
		if err := listened.Run(ctx); err != nil {
			return err
		}

		s.speak("Dylan", "hammond")
		s.speak("Dylan", "report_back")
		s.speak("Dylan", "trust")
		s.para("satisfied")

		scene.Set(&s.Base, dylanIntro, false)
		return s.Finish(nil)
	})
	return m.Run(ctx)
}

func (s *dylanScene) report(ctx context.Context) error {
	if !s.Player().ReadyToLevelUp() {
		s.para("disappointed")
		s.speak("Dylan", "press_on")
		return s.Pause(ctx)
	}

	s.para("nodding")
	s.speak("Dylan", "advice")
	return s.Menu().
		Keyed("l", s.text("level_up"), s.proceed(LevelUp)).
		Keyed("n", s.text("nevermind"), nil).
		Run(ctx)
}

const (
	bodyTraining  = 3
	fancyBaseline = 7
	techBaseline  = 9
)

type levelUpScene struct{ content }

func (s *levelUpScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}
	player := s.Player()
	s.para("welcome", "level", itoa(player.Level+1))

	m := s.Menu()
	m.Keyed("m", s.text("martial", "from", itoa(player.Martial), "to", itoa(player.Martial+1)), func(context.Context) error {
		player.Martial++
		return nil
	})
	m.Keyed("e", s.text("evasion", "from", itoa(player.Evasion), "to", itoa(player.Evasion+1)), func(context.Context) error {
		player.Evasion++
		return nil
	})
	maxHP := player.MaxHitPoints()
	m.Keyed("h", s.text("body", "from", itoa(maxHP), "to", itoa(maxHP+bodyTraining)), func(context.Context) error {
		player.RaiseMaxHP(bodyTraining)
		return nil
	})

	fancyItems, err := player.Inventory.Stacks(player.Items(), entities.TagFancy)
	if err != nil {
		return err
	}
	s.trainOption(m, "f", "fancy", entities.SkillFancy, fancyBaseline, len(fancyItems) > 0)

	techItems, err := player.Inventory.Stacks(player.Items(), entities.TagTech)
	if err != nil {
		return err
	}
	s.trainOption(m, "t", "tech", entities.SkillTech, techBaseline, len(techItems) > 0)

	if err := m.Run(ctx); err != nil {
		return err
	}

	player.Level++
	player.Restore()
	s.para("prepared")
	if err := s.Pause(ctx); err != nil {
		return err
	}
	return s.Finish(nil)
}

// trainOption raises a trained skill by one. An untrained skill can only be
// picked up when the player carries gear that uses it, and starts at baseline.
func (s *levelUpScene) trainOption(m *ui.Menu, key, label string, skill entities.Skill, baseline int, hasGear bool) {
	player := s.Player()
	current, trained, _ := player.Effective(skill)

	switch {
	case trained:
		m.Keyed(key, s.text(label, "from", itoa(current), "to", itoa(current+1)), func(context.Context) error {
			player.SetRating(skill, current+1)
			return nil
		})
	case hasGear:
		m.Keyed(key, s.text(label, "from", itoa(current), "to", itoa(baseline)), func(context.Context) error {
			player.SetRating(skill, baseline)
			return nil
		})
	}
}

// cookingScene is a food vendor who can be talked into a fight
type cookingScene struct{ content }

func (s *cookingScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}
	antagonize := scene.Get(&s.Base, cookAntagonized)
	m := s.Menu()

	if antagonize < 0 {
		s.para("broken")
		if antagonize == cookBeaten {
			m.Keyed("s", s.text("steal"), s.steal)
		}
	} else {
		err := s.FirstEnter(func() error {
			s.para("awning")
			s.para("grill")
			return nil
		})
		if err != nil {
			return err
		}
		s.speak("Cook", "order")

		s.say(m, "i", s.text("safe"), func(ctx context.Context) error {
			s.para("lean")
			s.speak("Cook", "warning")
			scene.Set(&s.Base, cookAntagonized, antagonize+1)
			return s.Pause(ctx)
		})
		if antagonize > cookPatience {
			s.say(m, "a", s.text("insult"), func(ctx context.Context) error {
				s.para("slam")
				s.speak("Cook", "told_you")
				s.para("leap")
				if err := s.Pause(ctx); err != nil {
					return err
				}
				scene.Set(&s.Base, cookAntagonized, cookBeaten)
				return s.Proceed(Combat, "cook")
			})
		}
		m.Keyed("b", s.text("menu"), s.proceed(Barter, "Cook", []string{"hamburger", "slurpee"}))
	}

	m.Keyed("l", s.text("leave"), s.finish)
	return m.Run(ctx)
}

func (s *cookingScene) steal(ctx context.Context) error {
	for _, id := range []string{"hamburger", "slurpee"} {
		roll, err := s.Roll("d4", 0)
		if err != nil {
			return err
		}
		s.Player().Inventory.Add(id, roll.Total())
	}
	s.para("stolen")
	if err := s.Pause(ctx); err != nil {
		return err
	}
	scene.Set(&s.Base, cookAntagonized, cookLooted)
	return s.Finish(nil)
}

type blacksmithScene struct{ content }

func (s *blacksmithScene) Enter(ctx context.Context) error {
	s.para("racket")
	s.speak("Blacksmith", "greeting")
	s.para("mumble")
	if err := s.Pause(ctx); err != nil {
		return err
	}
	if err := s.Finish(nil); err != nil {
		return err
	}
	return s.Proceed(Barter, "Blacksmith", []string{"shovel", "knife", "wavy_sword"})
}
