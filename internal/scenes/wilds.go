package scenes

import (
	"context"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
)

// Habitats searched for random encounters
const (
	HabitatForest    = "forest"
	HabitatCamp      = "camp"
	HabitatPerimeter = "hammond_perimeter"
)

type forestScene struct{ content }

func (s *forestScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}
	err := s.FirstEnter(func() error {
		s.para("enter")
		s.para("air")
		return nil
	})
	if err != nil {
		return err
	}
	s.para("deeper")

	level := s.Player().Level
	m := s.Menu().
		Keyed("e", s.text("explore"), func(ctx context.Context) error {
			return s.encounter(ctx, HabitatForest, catalog.LevelRange{Max: level})
		})
	if s.Player().Inventory.Has("scouts_note") {
		m.Keyed("i", s.text("investigate"), func(ctx context.Context) error {
			return s.encounter(ctx, HabitatPerimeter, catalog.LevelRange{Max: level + 1})
		})
	}
	m.Keyed("c", s.text("camp"), s.proceed(Camp)).
		Keyed("l", s.text("leave"), s.finish)
	return m.Run(ctx)
}

func (s *forestScene) encounter(ctx context.Context, habitat string, levels catalog.LevelRange) error {
	foe, err := s.randomFoe(habitat, levels)
	if err != nil {
		return err
	}
	if foe == nil {
		s.para("quiet")
		return s.Pause(ctx)
	}
	return s.Proceed(Combat, foe)
}

// randomFoe returns nil when nothing lives in habitat at those levels
func (c *content) randomFoe(habitat string, levels catalog.LevelRange) (*entities.Foe, error) {
	record, err := c.Catalog().RandomEncounter(c.Roller(), habitat, levels)
	if err != nil {
		if errors.IsNoMatch(err) {
			return nil, nil
		}
		return nil, err
	}
	return entities.NewFoe(record), nil
}

// campScene is a night in the woods: usually a full heal, sometimes an ambush
type campScene struct{ content }

func (s *campScene) Enter(ctx context.Context) error {
	if err := s.requirePlayer(); err != nil {
		return err
	}
	player := s.Player()

	s.para("dusk")
	s.para("clearing")
	s.para("sleep")
	if err := s.Pause(ctx); err != nil {
		return err
	}

	night, err := s.chance(40)
	if err != nil {
		return err
	}

	switch {
	case night >= 1 && night <= 20:
		if player.Overhealed() {
			s.para("restless")
			s.note("hangover")
		} else {
			s.para("deep_sleep")
			s.note("recovered_full")
		}
		player.Restore()

	case night >= 21 && night <= 30:
		s.para("ambush")
		if err := s.Pause(ctx); err != nil {
			return err
		}
		if err := s.Finish(nil); err != nil {
			return err
		}
		foe, err := s.randomFoe(HabitatCamp, catalog.LevelRange{Max: player.Level})
		if err != nil || foe == nil {
			return err
		}
		return s.Proceed(Combat, foe)

	case night >= 31 && night <= 38:
		s.para("noises")
		roll, err := s.Roll("2d4", 0)
		if err != nil {
			return err
		}
		recovered := max(0, min(roll.Total(), player.MaxHitPoints()-player.HitPoints()))
		s.note("recovered", "hp", itoa(recovered))
		player.Restore()

	default:
		s.para("moon")
	}

	if err := s.Pause(ctx); err != nil {
		return err
	}
	return s.Finish(nil)
}
