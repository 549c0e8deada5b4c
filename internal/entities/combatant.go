// Package entities holds the things that exist in the game world: the player,
// foes, items and inventories.
package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/spix/internal/dice"
)

// Entity types reported by GetType
const (
	TypePlayer = "player"
	TypeFoe    = "foe"
)

// Combatant is anything that can fight. Player and Foe both implement it.
type Combatant interface {
	core.Entity

	GetName() string
	HitPoints() int
	MaxHitPoints() int

	// SkillRating returns zero when untrained
	SkillRating(skill Skill) int
	WeaponSkill() Skill
	WeaponName() string
	WeaponDamage() dice.Dice
	DamageReduction() int

	CanEvade() bool
	ForfeitEvade()
	WasInjured() bool
	NewRound()

	Injure(amount int)
	Heal(amount int)
	Slain() bool
}

var (
	_ Combatant = (*Player)(nil)
	_ Combatant = (*Foe)(nil)
)
