// Package state is the keyed store behind persisted scene variables.
//
// Values live under a scope (a scene's canonical name or GlobalScope). Writing
// a variable's default deletes it, so a snapshot only holds what differs from
// the defaults and "reset" is implicit.
package state

import (
	"encoding/json"
	"maps"
	"math"

	"github.com/KirkDiggler/spix/internal/errors"
)

// GlobalScope is shared by every scene
const GlobalScope = "globals"

// Snapshot is the serialized form: scope -> variable -> value
type Snapshot map[string]map[string]any

// Store is owned by one session's controller and is not safe for
// concurrent use
type Store struct {
	scopes map[string]map[string]any
}

// New creates an empty store
func New() *Store {
	return &Store{scopes: make(map[string]map[string]any)}
}

// Lookup returns the raw value and whether it is stored
func (s *Store) Lookup(scope, name string) (any, bool) {
	vars, ok := s.scopes[scope]
	if !ok {
		return nil, false
	}
	v, ok := vars[name]
	return v, ok
}

// Put stores value, or deletes the entry when value equals def
func (s *Store) Put(scope, name string, value, def any) {
	if value == def {
		s.Delete(scope, name)
		return
	}
	vars, ok := s.scopes[scope]
	if !ok {
		vars = make(map[string]any)
		s.scopes[scope] = vars
	}
	vars[name] = value
}

// Delete removes an entry, dropping the scope once it is empty
func (s *Store) Delete(scope, name string) {
	vars, ok := s.scopes[scope]
	if !ok {
		return
	}
	delete(vars, name)
	if len(vars) == 0 {
		delete(s.scopes, scope)
	}
}

// Len returns the number of stored entries across all scopes
func (s *Store) Len() int {
	n := 0
	for _, vars := range s.scopes {
		n += len(vars)
	}
	return n
}

// Snapshot returns a deep copy of the stored entries
func (s *Store) Snapshot() Snapshot {
	out := make(Snapshot, len(s.scopes))
	for scope, vars := range s.scopes {
		out[scope] = maps.Clone(vars)
	}
	return out
}

// Restore replaces the store's content with snap. Whole JSON numbers are
// normalized to int; Get widens them back when the variable is a float.
func Restore(snap Snapshot) (*Store, error) {
	s := New()
	for scope, vars := range snap {
		if scope == "" {
			return nil, errors.InvalidSave("scene state has an empty scope")
		}
		for name, raw := range vars {
			value, err := normalize(raw)
			if err != nil {
				return nil, errors.WrapWithCodef(err, errors.CodeInvalidSave, "bad value for %s.%s", scope, name)
			}
			if value == nil {
				continue
			}
			if _, ok := s.scopes[scope]; !ok {
				s.scopes[scope] = make(map[string]any)
			}
			s.scopes[scope][name] = value
		}
	}
	return s, nil
}

func normalize(v any) (any, error) {
	switch n := v.(type) {
	case nil, bool, string, int:
		return v, nil
	case float64:
		if n == math.Trunc(n) && math.Abs(n) <= math.MaxInt32 {
			return int(n), nil
		}
		return n, nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, errors.InvalidSavef("unparseable number %s", n)
		}
		return f, nil
	case int64:
		return int(n), nil
	default:
		return nil, errors.InvalidSavef("unsupported state value of type %T", v)
	}
}
