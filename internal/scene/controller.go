package scene

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/combat"
	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/state"
	"github.com/KirkDiggler/spix/internal/ui"
)

const tracerName = "github.com/KirkDiggler/spix/internal/scene"

// Config holds the dependencies for a Controller
type Config struct {
	Registry *Registry
	Window   *ui.Window
	Catalog  *catalog.Catalog
	Roller   dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Window == nil {
		vb.RequiredField("Window")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type frame struct {
	name  string
	scene Scene
}

// Controller owns one session: its scene stack, state store and player.
// It is driven from a single goroutine and is not safe for concurrent use.
type Controller struct {
	registry *Registry
	window   *ui.Window
	catalog  *catalog.Catalog
	roller   dice.Roller
	resolver *combat.Resolver
	tracer   trace.Tracer

	store  *state.Store
	player *entities.Player
	stack  []frame
}

// NewController creates a controller with an empty stack and store
func NewController(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	resolver, err := combat.NewResolver(&combat.Config{Roller: cfg.Roller})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create resolver")
	}

	return &Controller{
		registry: cfg.Registry,
		window:   cfg.Window,
		catalog:  cfg.Catalog,
		roller:   cfg.Roller,
		resolver: resolver,
		tracer:   otel.Tracer(tracerName),
		store:    state.New(),
	}, nil
}

func (c *Controller) Window() *ui.Window           { return c.window }
func (c *Controller) Catalog() *catalog.Catalog    { return c.catalog }
func (c *Controller) Roller() dice.Roller          { return c.roller }
func (c *Controller) Resolver() *combat.Resolver   { return c.resolver }
func (c *Controller) Store() *state.Store          { return c.store }
func (c *Controller) Player() *entities.Player     { return c.player }
func (c *Controller) SetPlayer(p *entities.Player) { c.player = p }

// Depth is the number of scenes on the stack
func (c *Controller) Depth() int { return len(c.stack) }

// Active returns the name of the top scene
func (c *Controller) Active() (string, bool) {
	if len(c.stack) == 0 {
		return "", false
	}
	return c.stack[len(c.stack)-1].name, true
}

// Names lists the stack from bottom to top
func (c *Controller) Names() []string {
	names := make([]string, len(c.stack))
	for i, f := range c.stack {
		names[i] = f.name
	}
	return names
}

func (c *Controller) build(name string, args ...any) (frame, error) {
	canonical, factory, err := c.registry.Lookup(name)
	if err != nil {
		return frame{}, err
	}

	s, err := factory(Base{Window: c.window, ctl: c, name: canonical}, args...)
	if err != nil {
		return frame{}, errors.Wrapf(err, "failed to build scene %s", canonical)
	}
	return frame{name: canonical, scene: s}, nil
}

// Proceed builds the named scene with args and pushes it
func (c *Controller) Proceed(name string, args ...any) error {
	f, err := c.build(name, args...)
	if err != nil {
		return err
	}
	c.stack = append(c.stack, f)
	slog.Debug("Scene pushed", "scene", f.name, "depth", len(c.stack))
	return nil
}

// Finish pops the active scene. If the scene below wants re-entry results
// it receives the popped scene's name and result.
func (c *Controller) Finish(result any) error {
	if len(c.stack) == 0 {
		return errors.EmptyStack("finish called with no active scene")
	}

	popped := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	slog.Debug("Scene finished", "scene", popped.name, "depth", len(c.stack))

	if len(c.stack) == 0 {
		return nil
	}
	if r, ok := c.stack[len(c.stack)-1].scene.(Reenterer); ok {
		if err := r.Reenter(popped.name, result); err != nil {
			return errors.Wrapf(err, "failed to reenter after %s", popped.name)
		}
	}
	return nil
}

// Replace finishes the active scene and proceeds to each name in order
func (c *Controller) Replace(names ...string) error {
	if err := c.Finish(nil); err != nil {
		return err
	}
	for _, name := range names {
		if err := c.Proceed(name); err != nil {
			return err
		}
	}
	return nil
}

// Transition clears the stack and proceeds to name
func (c *Controller) Transition(name string, args ...any) error {
	f, err := c.build(name, args...)
	if err != nil {
		return err
	}
	c.stack = append(c.stack[:0], f)
	slog.Debug("Scene transition", "scene", f.name)
	return nil
}

// Run enters the top scene until the stack is empty. Before each entry the
// window is cleared. A closed input source or a cancelled context ends the
// loop with that error and an empty stack; callers treat it as a normal end
// of session.
func (c *Controller) Run(ctx context.Context) error {
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]

		c.window.Clear()
		err := c.enter(ctx, top)
		if err == nil {
			err = c.window.Err()
		}
		if err != nil {
			c.stack = nil
			if errors.IsDisconnected(err) || errors.IsCanceled(err) {
				slog.Info("Session ended by input", "scene", top.name, "reason", errors.GetCode(err).String())
				return err
			}
			return errors.Wrapf(err, "scene %s failed", top.name)
		}
	}
	return nil
}

func (c *Controller) enter(ctx context.Context, f frame) error {
	ctx, span := c.tracer.Start(ctx, "scene.enter", trace.WithAttributes(
		attribute.String("scene.name", f.name),
		attribute.Int("scene.depth", len(c.stack)),
	))
	defer span.End()

	if err := f.scene.Enter(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errors.GetCode(err).String())
		return err
	}
	return nil
}
