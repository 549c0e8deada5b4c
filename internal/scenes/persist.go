package scenes

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/repositories/saves"
	"github.com/KirkDiggler/spix/internal/scene"
)

const savedAtLayout = "2006-01-02 15:04"

// saveScene takes itself off the stack before saving, so loading the save
// resumes at whatever pushed it
type saveScene struct {
	content
	message string
}

func newSave(c content, args ...any) (scene.Scene, error) {
	message, err := scene.Arg(args, 0, "")
	if err != nil {
		return nil, err
	}
	return &saveScene{content: c, message: message}, nil
}

func (s *saveScene) Enter(ctx context.Context) error {
	if err := s.Finish(nil); err != nil {
		return err
	}

	if s.message != "" {
		s.Para(s.message)
	} else {
		s.para("rest")
	}

	if s.cfg.Saves == nil {
		s.note("unavailable")
		return s.Pause(ctx)
	}

	snap, err := s.Controller().Dehydrate()
	if err != nil {
		return err
	}
	out, err := s.cfg.Saves.Put(ctx, saves.PutInput{
		Owner:    s.cfg.Owner,
		Name:     snap.Player.Name,
		Snapshot: snap,
	})
	if err != nil {
		slog.Error("Failed to save game",
			"owner", s.cfg.Owner,
			"player", snap.Player.Name,
			"error", err,
		)
		s.note("failed")
		return s.Pause(ctx)
	}

	slog.Info("Game saved", "owner", s.cfg.Owner, "name", out.Summary.Name, "scenes", snap.Scenes)
	s.note("saved", "name", out.Summary.Name)
	return s.Pause(ctx)
}

// loadScene lists the owner's saves. A save that cannot be read or
// rebuilt is reported and the current session carries on untouched.
type loadScene struct{ content }

func (s *loadScene) Enter(ctx context.Context) error {
	if s.cfg.Saves == nil {
		return s.empty(ctx)
	}

	list, err := s.cfg.Saves.List(ctx, saves.ListInput{Owner: s.cfg.Owner})
	if err != nil {
		return errors.Wrap(err, "failed to list saves")
	}
	if len(list.Saves) == 0 {
		return s.empty(ctx)
	}

	s.para("heading")
	m := s.Menu()
	keys := listKeys(len(list.Saves), "b")
	for i, key := range keys {
		summary := list.Saves[i]
		label := s.text("save", "name", summary.Name, "saved_at", summary.SavedAt.Format(savedAtLayout))
		m.Keyed(key, label, func(ctx context.Context) error {
			return s.load(ctx, summary.Name)
		})
	}
	m.Keyed("b", s.text("back"), s.finish)
	return m.Run(ctx)
}

func (s *loadScene) empty(ctx context.Context) error {
	s.para("empty")
	if err := s.Pause(ctx); err != nil {
		return err
	}
	return s.Finish(nil)
}

func (s *loadScene) load(ctx context.Context, name string) error {
	out, err := s.cfg.Saves.Get(ctx, saves.GetInput{Owner: s.cfg.Owner, Name: name})
	if err == nil {
		err = s.Controller().Hydrate(out.Snapshot)
	}
	if err != nil {
		if !errors.IsNotFound(err) && !errors.IsInvalidSave(err) {
			return errors.Wrapf(err, "failed to load %s", name)
		}
		slog.Warn("Rejected save",
			"owner", s.cfg.Owner,
			"name", name,
			"reason", errors.GetCode(err).String(),
			"error", err,
		)
		s.note("failed", "name", name)
		return s.Pause(ctx)
	}

	slog.Info("Game loaded", "owner", s.cfg.Owner, "name", name)
	return nil
}
