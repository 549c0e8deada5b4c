package scene

import (
	"regexp"
	"sort"
	"strings"

	"github.com/KirkDiggler/spix/internal/errors"
)

// Factory builds a scene. base carries the controller and the scene's
// canonical name; args come from Proceed (or the command line).
type Factory func(base Base, args ...any) (Scene, error)

// Registry maps canonical scene names to factories
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the canonical form of name, so both
// "IntroTown" and "intro_town" register the same scene. Registering a name
// twice is an error.
func (r *Registry) Register(name string, factory Factory) error {
	canonical := Underscore(name)
	if canonical == "" {
		return errors.InvalidArgument("scene name is required")
	}
	if factory == nil {
		return errors.InvalidArgumentf("factory for %s is nil", canonical)
	}
	if _, exists := r.factories[canonical]; exists {
		return errors.Newf(errors.CodeAlreadyExists, "scene %s already registered", canonical)
	}
	r.factories[canonical] = factory
	return nil
}

// MustRegister is Register for package init code
func (r *Registry) MustRegister(name string, factory Factory) *Registry {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves name to its canonical form and factory
func (r *Registry) Lookup(name string) (string, Factory, error) {
	canonical := Underscore(name)
	factory, ok := r.factories[canonical]
	if !ok {
		return "", nil, errors.UnknownScenef("unknown scene: %s", name).
			WithMeta("scene", canonical)
	}
	return canonical, factory, nil
}

// Names lists registered scenes in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	acronymBoundary = regexp.MustCompile(`([A-Z\d]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// Underscore renders a CamelCase type name as a lowercase, underscore
// separated scene name: IntroTownCasual -> intro_town_casual,
// PriceElectronics -> price_electronics. Already canonical names are
// returned unchanged.
func Underscore(name string) string {
	word := strings.TrimSpace(name)
	word = acronymBoundary.ReplaceAllString(word, "${1}_${2}")
	word = wordBoundary.ReplaceAllString(word, "${1}_${2}")
	word = strings.ReplaceAll(word, "-", "_")
	return strings.ToLower(word)
}
