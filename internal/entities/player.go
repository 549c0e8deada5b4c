package entities

import (
	"log/slog"
	"math"
	"strings"

	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/errors"
)

// Player is the protagonist
type Player struct {
	Vitals
	Skills

	Name  string
	Cash  int
	Level int
	Exp   int

	Inventory *Inventory

	items ItemLookup
}

// PlayerData is the persisted form of a Player
type PlayerData struct {
	Name      string        `json:"name"`
	Cash      int           `json:"cash"`
	HP        int           `json:"hp"`
	MaxHP     int           `json:"max_hp"`
	Level     int           `json:"level"`
	Exp       int           `json:"exp"`
	Martial   int           `json:"martial"`
	Evasion   int           `json:"evasion"`
	Fancy     int           `json:"fancy"`
	Unarmed   int           `json:"unarmed"`
	Tech      int           `json:"tech"`
	Inventory InventoryData `json:"inventory"`
}

// NewPlayer creates a fresh character straight off the boat
func NewPlayer(items ItemLookup) *Player {
	p := &Player{
		Vitals:    NewVitals(12, 12),
		Skills:    Skills{Martial: 9, Evasion: 7},
		Name:      "Doug",
		Cash:      5,
		Level:     1,
		Inventory: NewInventory(),
		items:     items,
	}
	p.Inventory.Add("first_aid", 1)
	p.Inventory.Add("road_chow", 2)
	return p
}

// PlayerFromData rebuilds a player from a snapshot. Every referenced item
// must resolve, otherwise InvalidSave is returned.
func PlayerFromData(data *PlayerData, items ItemLookup) (*Player, error) {
	if data == nil {
		return nil, errors.InvalidSave("player is missing from save")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", data.Name, vb)
	if data.MaxHP < 1 {
		vb.Fieldf("max_hp", "must be at least 1, got %d", data.MaxHP)
	}
	if data.HP < 0 {
		vb.Fieldf("hp", "must not be negative, got %d", data.HP)
	}
	if data.Level < 1 {
		vb.Fieldf("level", "must be at least 1, got %d", data.Level)
	}
	if err := vb.Build(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidSave, "malformed player")
	}

	inv, err := InventoryFromData(data.Inventory, items)
	if err != nil {
		return nil, err
	}

	p := &Player{
		Vitals: Vitals{hp: data.HP, maxHP: data.MaxHP, canEvade: true},
		Skills: Skills{
			Martial: data.Martial,
			Evasion: data.Evasion,
			Fancy:   data.Fancy,
			Unarmed: data.Unarmed,
			Tech:    data.Tech,
		},
		Name:      data.Name,
		Cash:      data.Cash,
		Level:     data.Level,
		Exp:       data.Exp,
		Inventory: inv,
		items:     items,
	}
	return p, nil
}

// Data returns the persisted form. HP above max from an overheal is kept.
func (p *Player) Data() *PlayerData {
	return &PlayerData{
		Name:      p.Name,
		Cash:      p.Cash,
		HP:        p.hp,
		MaxHP:     p.maxHP,
		Level:     p.Level,
		Exp:       p.Exp,
		Martial:   p.Martial,
		Evasion:   p.Evasion,
		Fancy:     p.Fancy,
		Unarmed:   p.Unarmed,
		Tech:      p.Tech,
		Inventory: p.Inventory.Data(),
	}
}

func (p *Player) GetID() string {
	return strings.ToLower(p.Name)
}

func (p *Player) GetType() string {
	return TypePlayer
}

func (p *Player) GetName() string {
	return p.Name
}

// Items returns the catalog the player's inventory resolves against
func (p *Player) Items() ItemLookup {
	return p.items
}

// Pay deducts amount, never leaving cash negative
func (p *Player) Pay(amount int) {
	p.Cash -= amount
	if p.Cash < 0 {
		p.Cash = 0
	}
}

// NextLevelExp is ceil(level^1.8) * 25
func (p *Player) NextLevelExp() int {
	return int(math.Ceil(math.Pow(float64(p.Level), 1.8))) * 25
}

// ReadyToLevelUp reports whether enough experience has been earned
func (p *Player) ReadyToLevelUp() bool {
	return p.Exp >= p.NextLevelExp()
}

// Weapon returns the equipped item or nil when fighting bare handed
func (p *Player) Weapon() *Item {
	id, ok := p.Inventory.Equipped()
	if !ok || p.items == nil {
		return nil
	}
	item, err := p.items.LookupItem(id)
	if err != nil {
		slog.Warn("Equipped weapon missing from catalog",
			"player", p.Name,
			"item_id", id,
			"error", err,
		)
		return nil
	}
	return item
}

// WeaponName is the equipped weapon's name, or "fists"
func (p *Player) WeaponName() string {
	if w := p.Weapon(); w != nil {
		return w.Name
	}
	return "fists"
}

// WeaponDamage is the equipped weapon's effect dice, or the unarmed table
func (p *Player) WeaponDamage() dice.Dice {
	if w := p.Weapon(); w != nil && w.HasEffect() {
		return w.EffectDice
	}
	return p.UnarmedDamage()
}

// UnarmedDamage scales with the unarmed rating
func (p *Player) UnarmedDamage() dice.Dice {
	switch {
	case !p.TrainedIn(SkillUnarmed), p.Unarmed < 10:
		return dice.D(4)
	case p.Unarmed == 10:
		return dice.D(6)
	case p.Unarmed == 11:
		return dice.D(8)
	case p.Unarmed == 12:
		return dice.D(10)
	case p.Unarmed == 13:
		return dice.MustParse("2d6")
	case p.Unarmed == 14:
		return dice.MustParse("2d8")
	case p.Unarmed == 15:
		return dice.MustParse("2d10")
	default:
		return dice.MustParse("3d8")
	}
}

// WeaponSkill is derived from the equipped weapon's tags
func (p *Player) WeaponSkill() Skill {
	w := p.Weapon()
	switch {
	case w == nil:
		return SkillUnarmed
	case w.Tagged(TagTech):
		return SkillTech
	case w.Tagged(TagFancy):
		return SkillFancy
	default:
		return SkillMartial
	}
}

// DamageReduction is always zero until armour exists
func (p *Player) DamageReduction() int {
	return 0
}
