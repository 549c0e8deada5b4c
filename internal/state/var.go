package state

import "reflect"

// Value is the set of types a scene variable may hold
type Value interface {
	~bool | ~int | ~string | ~float64
}

// Get reads scope.name as T, returning def when missing or of another type
func Get[T Value](s *Store, scope, name string, def T) T {
	raw, ok := s.Lookup(scope, name)
	if !ok {
		return def
	}
	if v, ok := raw.(T); ok {
		return v
	}
	if v, ok := convert[T](raw); ok {
		return v
	}
	return def
}

// convert handles values that lost their exact type in a JSON round trip:
// whole numbers restored as int for a float variable, and named types
// restored as their underlying kind
func convert[T Value](raw any) (T, bool) {
	var zero T
	want := reflect.TypeOf(zero)
	rv := reflect.ValueOf(raw)
	switch {
	case !rv.IsValid():
		return zero, false
	case rv.Kind() == want.Kind():
	case rv.Kind() == reflect.Int && want.Kind() == reflect.Float64:
	default:
		return zero, false
	}
	return rv.Convert(want).Interface().(T), true
}

// Set writes scope.name, deleting it when v equals def
func Set[T Value](s *Store, scope, name string, v, def T) {
	if v == def {
		s.Delete(scope, name)
		return
	}
	s.Put(scope, name, v, def)
}

// Var declares a persisted scene variable with a default. Shared variables
// live in GlobalScope; the rest are keyed by the owning scene's name.
type Var[T Value] struct {
	Name    string
	Default T
	Shared  bool
}

// NewVar declares a per-scene variable
func NewVar[T Value](name string, def T) Var[T] {
	return Var[T]{Name: name, Default: def}
}

// NewShared declares a variable visible to every scene
func NewShared[T Value](name string, def T) Var[T] {
	return Var[T]{Name: name, Default: def, Shared: true}
}

// Scope returns the key the variable is stored under for scene
func (v Var[T]) Scope(scene string) string {
	if v.Shared {
		return GlobalScope
	}
	return scene
}

// Get reads the variable for scene
func (v Var[T]) Get(s *Store, scene string) T {
	return Get(s, v.Scope(scene), v.Name, v.Default)
}

// Set writes the variable for scene
func (v Var[T]) Set(s *Store, scene string, value T) {
	Set(s, v.Scope(scene), v.Name, value, v.Default)
}

// Reset restores the default by deleting the entry
func (v Var[T]) Reset(s *Store, scene string) {
	s.Delete(v.Scope(scene), v.Name)
}
