package scenes

import (
	"context"
	"slices"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/scene"
	"github.com/KirkDiggler/spix/internal/state"
)

// HabitatPriceElectronics is where Craig's machines roam
const HabitatPriceElectronics = "price_electronics"

// Craig's building moves hidden -> hostile -> confront, then either
// friendly or empty once Craig is beaten
const (
	progressHidden   = "hidden"
	progressHostile  = "hostile"
	progressConfront = "confront"
	progressFriendly = "friendly"
	progressEmpty    = "empty"
)

var (
	electronicsProgress = state.NewVar("progress", progressHidden)
	electronicsGuards   = state.NewVar("guards", 3)
	electronicsPizza    = state.NewVar("pizza", true)

	// true while the encyclopedia is still somewhere in the building
	electronicsEncyclopedia = state.NewVar("encyclopedia", true)

	craigIntro = state.NewVar("intro", true)
	craigLike  = state.NewVar("like", 0)
)

type priceElectronicsScene struct{ content }

func (s *priceElectronicsScene) progress() string {
	return scene.Get(&s.Base, electronicsProgress)
}

func (s *priceElectronicsScene) setProgress(p string) {
	scene.Set(&s.Base, electronicsProgress, p)
}

func (s *priceElectronicsScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}

	if s.progress() == progressHidden {
		err := s.FirstEnter(func() error {
			s.para("approach")
			if err := s.Pause(ctx); err != nil {
				return err
			}
			s.para("loading_dock")
			return s.Pause(ctx)
		})
		if err != nil {
			return err
		}
	}

	switch s.progress() {
	case progressEmpty:
		return s.emptyBuilding(ctx)
	case progressFriendly:
		s.para("front_door")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		return s.Replace(CraigsOffice)
	case progressConfront:
		return s.confront(ctx)
	case progressHostile:
		s.para("alert")
	default:
		s.para("bay")
	}

	return s.Menu().
		Keyed("o", s.text("offices"), s.offices).
		Keyed("w", s.text("workshop"), s.workshop).
		Keyed("a", s.text("assembly_bay"), s.assemblyBay).
		Keyed("l", s.text("leave"), s.finish).
		Run(ctx)
}

func (s *priceElectronicsScene) offices(ctx context.Context) error {
	s.para("cubes")
	if err := s.Pause(ctx); err != nil {
		return err
	}

	m := s.Menu()
	if scene.Get(&s.Base, electronicsPizza) {
		s.para("pizza")
		m.Keyed("e", s.text("eat_pizza"), func(ctx context.Context) error {
			s.para("savour")
			s.Player().Heal(5)
			scene.Set(&s.Base, electronicsPizza, false)
			s.note("recovered", "hp", "5")
			if err := s.Pause(ctx); err != nil {
				return err
			}
			s.para("caught_eating")
			if err := s.Pause(ctx); err != nil {
				return err
			}
			s.setProgress(progressHostile)
			return s.fightMinion(ctx)
		})
	}
	m.Keyed("r", s.text("search"), func(ctx context.Context) error {
		roll, err := s.Roll("d3", 0)
		if err != nil {
			return err
		}
		if s.progress() == progressHostile && roll.Total() != 3 {
			s.para("burst")
			if err := s.Pause(ctx); err != nil {
				return err
			}
			return s.fightMinion(ctx)
		}
		if scene.Get(&s.Base, electronicsEncyclopedia) {
			s.para("encyclopedia")
			s.Player().Inventory.Add("encyclopedia", 1)
			scene.Set(&s.Base, electronicsEncyclopedia, false)
		} else {
			s.para("nothing")
		}
		return s.Pause(ctx)
	})
	return m.Run(ctx)
}

func (s *priceElectronicsScene) workshop(ctx context.Context) error {
	s.para("schematics")
	switch {
	case s.progress() == progressHostile:
		s.para("tackled")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		return s.fightMinion(ctx)
	case scene.Get(&s.Base, electronicsEncyclopedia):
		s.para("little_of_interest")
		return s.Pause(ctx)
	default:
		s.para("voice")
		s.speak("Man", "favourite_encyclopedia")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		s.para("barreling")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		s.setProgress(progressConfront)
		return s.fightMinion(ctx)
	}
}

func (s *priceElectronicsScene) assemblyBay(ctx context.Context) error {
	s.para("crates")
	if s.progress() == progressHostile {
		s.para("ambush")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		return s.fightMinion(ctx)
	}

	s.para("generator")
	return s.Menu().
		Keyed("d", s.text("disconnect"), func(ctx context.Context) error {
			s.para("alarm")
			scene.Set(&s.Base, electronicsGuards, scene.Get(&s.Base, electronicsGuards)-1)
			s.setProgress(progressHostile)
			if err := s.Pause(ctx); err != nil {
				return err
			}
			return s.fightMinion(ctx)
		}).
		Keyed("l", s.text("leave_machines"), func(ctx context.Context) error {
			s.para("examine")
			return s.Pause(ctx)
		}).
		Run(ctx)
}

func (s *priceElectronicsScene) confront(ctx context.Context) error {
	guards := scene.Get(&s.Base, electronicsGuards)
	m := s.Menu()

	if guards > 0 {
		s.para("skulking")
		s.say(m, "t", s.text("parley"), func(ctx context.Context) error {
			if scene.Get(&s.Base, electronicsPizza) || guards < 2 {
				s.para("silence")
				s.speak("Man", "hear_you_out")
				if err := s.Pause(ctx); err != nil {
					return err
				}
				return s.makePeace()
			}
			s.speak("Man", "pizza_thief")
			s.para("droning")
			if err := s.Pause(ctx); err != nil {
				return err
			}
			scene.Set(&s.Base, electronicsGuards, guards-1)
			return s.fightMinion(ctx)
		})
		m.Keyed("a", s.text("charge"), func(ctx context.Context) error {
			scene.Set(&s.Base, electronicsGuards, guards-1)
			return s.fightMinion(ctx)
		})
		return m.Run(ctx)
	}

	s.para("panics")
	if err := s.Pause(ctx); err != nil {
		return err
	}
	s.para("metal_dust")
	if err := s.Pause(ctx); err != nil {
		return err
	}
	s.speak("Man", "hasty")

	s.say(m, "t", s.text("truce"), func(ctx context.Context) error {
		s.speak("Craig", "questions")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		return s.makePeace()
	})
	s.say(m, "w", s.text("no_talk"), func(context.Context) error {
		craig, err := s.Catalog().LookupFoe("craig")
		if err != nil {
			return err
		}
		if scene.Get(&s.Base, electronicsEncyclopedia) {
			// he has been keeping it on his desk
			record := *craig
			record.Loot = append(slices.Clone(craig.Loot), entities.LootEntry{ItemID: "encyclopedia", Chance: 1})
			craig = &record
			scene.Set(&s.Base, electronicsEncyclopedia, false)
		}
		s.setProgress(progressEmpty)
		return s.Proceed(Combat, entities.NewFoe(craig))
	})
	return m.Run(ctx)
}

// emptyBuilding lets the player build the receiver alone once Craig is gone
func (s *priceElectronicsScene) emptyBuilding(ctx context.Context) error {
	s.para("lifeless")
	player := s.Player()

	m := s.Menu()
	if player.Inventory.Has("encyclopedia") && player.Inventory.Has("octocopter") {
		m.Keyed("w", s.text("use_workshop"), func(ctx context.Context) error {
			for _, key := range []string{"no_leads", "reading", "teardown", "overnight"} {
				s.para(key)
				if err := s.Pause(ctx); err != nil {
					return err
				}
			}

			player.Inventory.Remove("octocopter", 1)
			check, err := s.Resolver().SkillCheck(s.Recorder(), player, entities.SkillTech, 0)
			if err != nil {
				return err
			}
			if check.Success {
				s.para("built_receiver")
				player.Inventory.Add("receiver", 1)
			} else {
				s.para("destroyed_drone")
			}
			return s.Pause(ctx)
		})
	}
	m.Keyed("l", s.text("leave"), s.finish)
	return m.Run(ctx)
}

func (s *priceElectronicsScene) makePeace() error {
	s.setProgress(progressFriendly)
	return s.Replace(CraigsOffice)
}

// fightMinion sends one of Craig's machines at the player. A hostile
// building sometimes escalates to a confrontation with the man himself.
func (s *priceElectronicsScene) fightMinion(context.Context) error {
	foe, err := s.randomFoe(HabitatPriceElectronics, catalog.LevelRange{Max: s.Player().Level})
	if err != nil {
		return err
	}

	if s.progress() == progressHostile {
		roll, err := s.Roll("d3", 0)
		if err != nil {
			return err
		}
		if roll.Total() == 3 {
			s.setProgress(progressConfront)
		}
	}

	if foe == nil {
		s.para("quiet")
		return nil
	}
	return s.Proceed(Combat, foe)
}

// craigsOfficeScene is where Craig talks, builds the receiver and trades
type craigsOfficeScene struct{ content }

var craigStock = []string{"first_aid", "snitch", "frag"}

func (s *craigsOfficeScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}
	player := s.Player()

	s.para("office")
	s.para("forced_smile")

	if scene.Get(&s.Base, craigIntro) {
		return s.introDialogue(ctx)
	}

	m := s.Menu()
	if !player.Inventory.Has("receiver") {
		m.Keyed("d", s.text("ask_drone"), func(ctx context.Context) error {
			s.speak("Craig", "mighty_craig")
			s.para("polite_chuff")
			if !player.Inventory.Has("octocopter") {
				return nil
			}
			for _, key := range []string{"hand_over", "tinkering", "soldering"} {
				s.para(key)
				if err := s.Pause(ctx); err != nil {
					return err
				}
			}
			s.para("finished")
			s.speak("Craig", "signal_strength")
			player.Inventory.Remove("octocopter", 1)
			player.Inventory.Add("receiver", 1)
			s.para("stow")
			return s.Pause(ctx)
		})
	}
	m.Keyed("b", s.text("barter"), s.proceed(Barter, "Craig", craigStock))
	m.Keyed("l", s.text("leave"), func(ctx context.Context) error {
		s.para("excuse")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		return s.Finish(nil)
	})
	return m.Run(ctx)
}

func (s *craigsOfficeScene) introDialogue(ctx context.Context) error {
	like := scene.Get(&s.Base, craigLike)

	m := s.Menu()
	s.say(m, "n", s.text("nice_place"), func(ctx context.Context) error {
		s.speak("Craig", "thanks")
		s.para("homeless")
		if like == 0 {
			scene.Set(&s.Base, craigLike, like+1)
		}
		return s.Pause(ctx)
	})
	s.say(m, "c", s.text("chase"), func(ctx context.Context) error {
		s.para("raps_desk")
		s.speak("Craig", "hack")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		s.para("glaze")

		rant := s.Menu()
		rant.Keyed("i", s.text("interrupt"), func(ctx context.Context) error {
			s.para("abrupt")
			s.Dialogue("You", s.text("help_or_not"))
			s.para("train_of_thought")
			return s.Pause(ctx)
		})
		rant.Keyed("w", s.text("wait"), func(ctx context.Context) error {
			scene.Set(&s.Base, craigLike, scene.Get(&s.Base, craigLike)+3)
			s.para("sip")
			s.Dialogue("You", s.text("second_rate"))
			s.speak("Craig", "exactly")
			return s.Pause(ctx)
		})
		if _, trained, _ := s.Player().Effective(entities.SkillTech); trained {
			s.say(rant, "t", s.text("tech_talk"), func(context.Context) error {
				s.para("know_nothing")
				scene.Set(&s.Base, craigLike, scene.Get(&s.Base, craigLike)+5)
				return nil
			})
		}
		if err := rant.Run(ctx); err != nil {
			return err
		}

		s.para("steer")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		scene.Set(&s.Base, craigIntro, false)
		return nil
	})
	return m.Run(ctx)
}
