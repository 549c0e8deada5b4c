package entities

import (
	"slices"

	"github.com/KirkDiggler/spix/internal/dice"
)

// FoeRecord is an immutable catalog entry for an adversary
type FoeRecord struct {
	ID           string
	Name         string
	HP           int
	Skills       Skills
	DR           int
	Exp          int
	Cash         int
	Level        int
	Weapon       string
	WeaponDamage dice.Dice
	AttackVerb   string
	Finisher     string
	Habitats     []string
	Tags         []string
	Loot         LootTable
}

// LivesIn reports whether the foe appears in habitat
func (r *FoeRecord) LivesIn(habitat string) bool {
	return slices.Contains(r.Habitats, habitat)
}

// Foe is a live adversary built fresh from a record for one encounter
type Foe struct {
	Vitals
	Skills

	record *FoeRecord
}

// NewFoe creates a foe at full health
func NewFoe(record *FoeRecord) *Foe {
	return &Foe{
		Vitals: NewVitals(record.HP, record.HP),
		Skills: record.Skills,
		record: record,
	}
}

// GetID returns the catalog id
func (f *Foe) GetID() string { return f.record.ID }

func (f *Foe) GetType() string { return TypeFoe }

func (f *Foe) GetName() string { return f.record.Name }

// Record returns the catalog entry the foe was built from
func (f *Foe) Record() *FoeRecord { return f.record }

// Tagged reports whether the foe carries tag
func (f *Foe) Tagged(tag string) bool {
	return slices.Contains(f.record.Tags, tag)
}

func (f *Foe) Exp() int           { return f.record.Exp }
func (f *Foe) Cash() int          { return f.record.Cash }
func (f *Foe) AttackVerb() string { return f.record.AttackVerb }
func (f *Foe) Finisher() string   { return f.record.Finisher }
func (f *Foe) Loot() LootTable    { return f.record.Loot }

func (f *Foe) WeaponName() string { return f.record.Weapon }

func (f *Foe) WeaponDamage() dice.Dice { return f.record.WeaponDamage }

func (f *Foe) DamageReduction() int { return f.record.DR }

// WeaponSkill is tech or fancy when tagged, otherwise martial
func (f *Foe) WeaponSkill() Skill {
	switch {
	case f.Tagged(TagTech):
		return SkillTech
	case f.Tagged(TagFancy):
		return SkillFancy
	default:
		return SkillMartial
	}
}
