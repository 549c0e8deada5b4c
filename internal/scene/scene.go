// Package scene runs the stack of screens a session moves through.
//
// The Controller owns the stack, the state store and the player. Scenes are
// built from a Registry by name, receive a Base that gives them access to
// all three, and are entered over and over while they sit on top of the
// stack. A scene leaves by calling Finish, Replace or Transition, or stays
// put and is entered again.
package scene

import (
	"context"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/combat"
	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/state"
	"github.com/KirkDiggler/spix/internal/ui"
)

// Scene is one screen
type Scene interface {
	// Enter draws the scene and handles one round of input
	Enter(ctx context.Context) error
}

// Reenterer is implemented by scenes that want the result of a scene they
// pushed. Reenter runs when that scene finishes and this one is on top again.
type Reenterer interface {
	Reenter(from string, result any) error
}

// Base is embedded by scenes. It exposes the window directly so scenes can
// write s.Para(...) and s.Pause(ctx), and forwards stack operations to the
// controller.
type Base struct {
	*ui.Window

	ctl     *Controller
	name    string
	entered bool
}

// Name is the scene's canonical name, which is also its state scope
func (b *Base) Name() string { return b.name }

// Controller returns the owning controller
func (b *Base) Controller() *Controller { return b.ctl }

// Player is the session's player; nil before a game is started or loaded
func (b *Base) Player() *entities.Player { return b.ctl.Player() }

// Store is the session's state store
func (b *Base) Store() *state.Store { return b.ctl.Store() }

// Catalog is the foe and item catalog
func (b *Base) Catalog() *catalog.Catalog { return b.ctl.Catalog() }

// Roller is the session's dice roller
func (b *Base) Roller() dice.Roller { return b.ctl.Roller() }

// Resolver is the session's skill check resolver
func (b *Base) Resolver() *combat.Resolver { return b.ctl.Resolver() }

// Menu starts an empty menu on the scene's window
func (b *Base) Menu() *ui.Menu { return ui.NewMenu(b.Window) }

// Proceed pushes a scene on top of this one
func (b *Base) Proceed(name string, args ...any) error { return b.ctl.Proceed(name, args...) }

// Finish pops the active scene
func (b *Base) Finish(result any) error { return b.ctl.Finish(result) }

// Replace swaps the active scene for names
func (b *Base) Replace(names ...string) error { return b.ctl.Replace(names...) }

// Transition clears the stack and proceeds to name
func (b *Base) Transition(name string, args ...any) error { return b.ctl.Transition(name, args...) }

// Roll rolls a dice expression such as "2d4"
func (b *Base) Roll(spec string, modifier int) (dice.Roll, error) {
	d, err := dice.Parse(spec)
	if err != nil {
		return dice.Roll{}, err
	}
	return d.Roll(b.ctl.Roller(), modifier)
}

// Recorder writes transcript lines as secondary text
func (b *Base) Recorder() combat.Recorder { return b.Window.Recorder() }

// FirstEnter runs fn only on the first entry to this scene instance.
// Returning to the scene from one it pushed does not run fn again; a fresh
// instance of the same scene does.
func (b *Base) FirstEnter(fn func() error) error {
	if b.entered {
		return nil
	}
	if err := fn(); err != nil {
		return err
	}
	b.entered = true
	return nil
}

// Get reads a scene variable scoped to b
func Get[T state.Value](b *Base, v state.Var[T]) T {
	return v.Get(b.Store(), b.name)
}

// Set writes a scene variable scoped to b
func Set[T state.Value](b *Base, v state.Var[T], value T) {
	v.Set(b.Store(), b.name, value)
}
