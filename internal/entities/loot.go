package entities

import (
	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/errors"
)

// LootEntry is one independent drop chance
type LootEntry struct {
	ItemID string
	Chance float64
}

// LootTable maps items to drop probabilities
type LootTable []LootEntry

// Roll resolves every entry independently and returns the dropped ids
func (t LootTable) Roll(r dice.Roller) ([]string, error) {
	var drops []string
	for _, entry := range t {
		hit, err := dice.Chance(r, entry.Chance)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll drop for %s", entry.ItemID)
		}
		if hit {
			drops = append(drops, entry.ItemID)
		}
	}
	return drops, nil
}
