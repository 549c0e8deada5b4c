package testutils

import (
	"sync"

	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/errors"
)

// ScriptedRoller replays a fixed sequence of die results. RollN consumes
// count values. Running out, or scripting a value larger than the die,
// returns an error so tests fail loudly.
type ScriptedRoller struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewScriptedRoller creates a roller that returns values in order
func NewScriptedRoller(values ...int) *ScriptedRoller {
	return &ScriptedRoller{values: values}
}

// Push appends more values to the script
func (r *ScriptedRoller) Push(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, values...)
}

// Remaining returns how many scripted values have not been used
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values) - r.pos
}

// Roll returns the next scripted value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next(size)
}

// RollN returns the next count scripted values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, count)
	for i := range out {
		v, err := r.next(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r *ScriptedRoller) next(size int) (int, error) {
	if r.pos >= len(r.values) {
		return 0, errors.Internalf("scripted roller exhausted after %d values", len(r.values))
	}
	v := r.values[r.pos]
	if v < 1 || v > size {
		return 0, errors.Internalf("scripted value %d at position %d does not fit a d%d", v, r.pos, size)
	}
	r.pos++
	return v, nil
}

var _ dice.Roller = (*ScriptedRoller)(nil)
