package dice

import (
	"math/rand"
	"sync"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/spix/internal/errors"
)

// DefaultRoller returns the toolkit's production roller
func DefaultRoller() Roller {
	return toolkitdice.DefaultRoller
}

// SeededRoller is a deterministic Roller for reproducible sessions and tests
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a roller whose sequence is fixed by seed
func NewSeeded(seed int64) *SeededRoller {
	return &SeededRoller{
		rng: rand.New(rand.NewSource(seed)), // #nosec G404 -- game dice, not crypto
	}
}

// Roll returns a uniform integer in [1, size]
func (s *SeededRoller) Roll(size int) (int, error) {
	if size < 1 {
		return 0, errors.InvalidSpecf("die size must be positive: %d", size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(size) + 1, nil
}

// RollN returns count uniform integers in [1, size]
func (s *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 1 {
		return nil, errors.InvalidSpecf("dice count must be positive: %d", count)
	}
	results := make([]int, count)
	for i := range results {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

var _ Roller = (*SeededRoller)(nil)

// Chance reports whether an event with probability p happens, resolved on a d100
func Chance(r Roller, p float64) (bool, error) {
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	v, err := r.Roll(100)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll chance")
	}
	return float64(v) <= p*100, nil
}

// Pick returns a uniform index in [0, n)
func Pick(r Roller, n int) (int, error) {
	if n < 1 {
		return 0, errors.InvalidArgumentf("cannot pick from %d options", n)
	}
	v, err := r.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to pick")
	}
	return v - 1, nil
}
