// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/testutils"
)

// PlayerBuilder provides a fluent interface for building test players
type PlayerBuilder struct {
	data     *entities.PlayerData
	equipped string
}

// NewPlayerBuilder creates a builder holding a fresh character
func NewPlayerBuilder() *PlayerBuilder {
	return &PlayerBuilder{data: testutils.CreateTestPlayerData(testutils.TestPlayerName)}
}

// WithName sets the player name
func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.data.Name = name
	return b
}

// WithHP sets current and maximum hit points
func (b *PlayerBuilder) WithHP(hp, maxHP int) *PlayerBuilder {
	b.data.HP = hp
	b.data.MaxHP = maxHP
	return b
}

// WithCash sets the player's money
func (b *PlayerBuilder) WithCash(cash int) *PlayerBuilder {
	b.data.Cash = cash
	return b
}

// WithExp sets experience
func (b *PlayerBuilder) WithExp(exp int) *PlayerBuilder {
	b.data.Exp = exp
	return b
}

// WithLevel sets the character level
func (b *PlayerBuilder) WithLevel(level int) *PlayerBuilder {
	b.data.Level = level
	return b
}

// WithSkill sets a skill rating
func (b *PlayerBuilder) WithSkill(skill entities.Skill, rating int) *PlayerBuilder {
	switch skill {
	case entities.SkillMartial:
		b.data.Martial = rating
	case entities.SkillEvasion:
		b.data.Evasion = rating
	case entities.SkillFancy:
		b.data.Fancy = rating
	case entities.SkillUnarmed:
		b.data.Unarmed = rating
	case entities.SkillTech:
		b.data.Tech = rating
	}
	return b
}

// WithItem adds quantity of an item
func (b *PlayerBuilder) WithItem(id string, quantity int) *PlayerBuilder {
	if b.data.Inventory.Items == nil {
		b.data.Inventory.Items = map[string]int{}
	}
	b.data.Inventory.Items[id] += quantity
	return b
}

// WithEquipped adds one of the item if missing and equips it
func (b *PlayerBuilder) WithEquipped(id string) *PlayerBuilder {
	if b.data.Inventory.Items[id] == 0 {
		b.WithItem(id, 1)
	}
	b.equipped = id
	return b
}

// WithoutItems empties the inventory
func (b *PlayerBuilder) WithoutItems() *PlayerBuilder {
	b.data.Inventory = entities.InventoryData{}
	b.equipped = ""
	return b
}

// BuildData returns the persisted form
func (b *PlayerBuilder) BuildData() *entities.PlayerData {
	data := *b.data
	data.Inventory.Items = make(map[string]int, len(b.data.Inventory.Items))
	for id, n := range b.data.Inventory.Items {
		data.Inventory.Items[id] = n
	}
	if b.equipped != "" {
		eq := b.equipped
		data.Inventory.EqWeapon = &eq
	}
	return &data
}

// Build resolves the player's items against items
func (b *PlayerBuilder) Build(items entities.ItemLookup) (*entities.Player, error) {
	return entities.PlayerFromData(b.BuildData(), items)
}
