package ui

import (
	"context"
	"strings"

	"github.com/KirkDiggler/spix/internal/errors"
)

// Action runs when its menu entry is picked
type Action func(ctx context.Context) error

type entry struct {
	text   string
	action Action
}

// Menu collects choices and dispatches the picked one
type Menu struct {
	window  *Window
	keys    []string
	entries map[string]entry
	err     error
}

// NewMenu starts an empty menu on w
func NewMenu(w *Window) *Menu {
	return &Menu{window: w, entries: make(map[string]entry)}
}

// Add registers text under the lowercased first character of text
func (m *Menu) Add(text string, action Action) *Menu {
	return m.Keyed(text, text, action)
}

// Keyed registers text under the lowercased first character of key.
// Reusing a key is a content bug and is reported by Run.
func (m *Menu) Keyed(key, text string, action Action) *Menu {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		if m.err == nil {
			m.err = errors.Internalf("menu entry %q has an empty key", text)
		}
		return m
	}
	k = string([]rune(k)[:1])

	if _, exists := m.entries[k]; exists {
		if m.err == nil {
			m.err = errors.Internalf("key %s used twice for choice", k)
		}
		return m
	}

	m.keys = append(m.keys, k)
	m.entries[k] = entry{text: text, action: action}
	return m
}

// Len is the number of entries
func (m *Menu) Len() int {
	return len(m.keys)
}

// Has reports whether key is registered
func (m *Menu) Has(key string) bool {
	_, ok := m.entries[strings.ToLower(key)]
	return ok
}

// Choices lists the entries in the order they were added
func (m *Menu) Choices() []Choice {
	choices := make([]Choice, 0, len(m.keys))
	for _, k := range m.keys {
		choices = append(choices, Choice{Key: k, Text: m.entries[k].text})
	}
	return choices
}

// Run shows the menu, waits for a valid key and runs its action
func (m *Menu) Run(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}

	key, err := m.window.Choose(ctx, m.Choices())
	if err != nil {
		return err
	}
	return m.dispatch(ctx, key)
}

// RunWith runs the action for key without asking
func (m *Menu) RunWith(ctx context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	if !m.Has(key) {
		return errors.InvalidChoicef("invalid selection: %s", key)
	}
	return m.dispatch(ctx, strings.ToLower(key))
}

func (m *Menu) dispatch(ctx context.Context, key string) error {
	e := m.entries[key]
	if e.action == nil {
		return nil
	}
	return e.action(ctx)
}
