package entities

import (
	"slices"

	"github.com/KirkDiggler/spix/internal/dice"
)

// Item tags with engine meaning
const (
	TagHeal    = "heal"
	TagGrenade = "grenade"
	TagWeapon  = "weapon"
	TagFancy   = "fancy"
	TagTech    = "tech"
	TagTotem   = "totem"
	TagPlot    = "plot"
)

// Item is an immutable catalog record
type Item struct {
	ID          string
	Name        string
	Description string
	Value       int
	Combat      bool
	EffectDice  dice.Dice
	Tags        []string
}

// Tagged reports whether the item carries any of the given tags
func (i *Item) Tagged(tags ...string) bool {
	for _, tag := range tags {
		if slices.Contains(i.Tags, tag) {
			return true
		}
	}
	return false
}

// HasEffect reports whether the item has combat effect dice
func (i *Item) HasEffect() bool {
	return !i.EffectDice.IsZero()
}

// SkillTag returns the first skill named in the item's tags
func (i *Item) SkillTag() (Skill, bool) {
	for _, skill := range AllSkills {
		if i.Tagged(string(skill)) {
			return skill, true
		}
	}
	return "", false
}

//go:generate mockgen -destination=mock/mock_item_lookup.go -package=entitiesmock github.com/KirkDiggler/spix/internal/entities ItemLookup

// ItemLookup resolves catalog item ids
type ItemLookup interface {
	// LookupItem fails with UnknownItem when id is not in the catalog
	LookupItem(id string) (*Item, error)
}
