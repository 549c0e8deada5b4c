package scene

import (
	"log/slog"

	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/state"
)

// Snapshot is a saved session. Scene constructor arguments are not kept:
// every scene is rebuilt with no arguments on load.
type Snapshot struct {
	SceneState state.Snapshot       `json:"scene_state"`
	Player     *entities.PlayerData `json:"player"`
	Scenes     []string             `json:"scenes"`
}

// Dehydrate captures the state store, the player and the stack's scene names
func (c *Controller) Dehydrate() (*Snapshot, error) {
	if c.player == nil {
		return nil, errors.Newf(errors.CodeFailedPrecondition, "no player to save")
	}

	snap := &Snapshot{
		SceneState: c.store.Snapshot(),
		Player:     c.player.Data(),
		Scenes:     c.Names(),
	}
	if snap.SceneState == nil {
		snap.SceneState = state.Snapshot{}
	}
	return snap, nil
}

// Hydrate replaces the session with snap. Everything is validated and
// rebuilt before anything is swapped in, so a rejected snapshot leaves the
// running session untouched. All failures carry errors.CodeInvalidSave.
func (c *Controller) Hydrate(snap *Snapshot) error {
	if snap == nil {
		return errors.InvalidSave("snapshot is empty")
	}
	if len(snap.Scenes) == 0 {
		return errors.InvalidSave("snapshot has no scenes")
	}

	store, err := state.Restore(snap.SceneState)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidSave, "invalid scene state")
	}

	player, err := entities.PlayerFromData(snap.Player, c.catalog)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidSave, "invalid player")
	}

	// scenes read the store and player while being built
	prevStore, prevPlayer := c.store, c.player
	c.store, c.player = store, player

	stack := make([]frame, 0, len(snap.Scenes))
	for _, name := range snap.Scenes {
		f, err := c.build(name)
		if err != nil {
			c.store, c.player = prevStore, prevPlayer
			return errors.WrapWithCodef(err, errors.CodeInvalidSave, "invalid scene %q", name)
		}
		stack = append(stack, f)
	}

	c.stack = stack
	slog.Info("Session hydrated", "player", player.Name, "scenes", c.Names())
	return nil
}
