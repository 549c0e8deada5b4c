// Package catalog loads foe and item definitions from tabular data.
//
// Records are parsed and cross-checked once at load time so a malformed row
// fails the process at start instead of mid-game.
package catalog

import (
	"bytes"
	"embed"
	"encoding/csv"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
)

//go:embed data/*.csv
var data embed.FS

var (
	itemColumns = []string{"id", "name", "description", "value", "combat", "effect_dice", "tags"}
	foeColumns  = []string{
		"id", "name", "hp", "martial", "evasion", "fancy", "unarmed", "tech", "dr", "exp", "cash", "level",
		"weapon", "weapon_dmg", "attack_verb", "finisher", "habitat", "tags", "drops",
	}
)

// LevelRange bounds the level of foes eligible for an encounter, inclusive
type LevelRange struct {
	Min int
	Max int
}

// Contains reports whether level is inside the range
func (r LevelRange) Contains(level int) bool {
	return level >= r.Min && level <= r.Max
}

// Catalog is an immutable lookup of items and foe records
type Catalog struct {
	items map[string]*entities.Item
	foes  map[string]*entities.FoeRecord
}

// Default loads the catalog embedded in the binary
func Default() (*Catalog, error) {
	items, err := data.ReadFile("data/items.csv")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read embedded items")
	}
	foes, err := data.ReadFile("data/foes.csv")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read embedded foes")
	}
	return Load(bytes.NewReader(items), bytes.NewReader(foes))
}

// Load parses item and foe tables. Wrong arity, non-numeric stats, bad dice
// and loot that references unknown items all fail with InvalidSpec.
func Load(itemsCSV, foesCSV io.Reader) (*Catalog, error) {
	c := &Catalog{
		items: make(map[string]*entities.Item),
		foes:  make(map[string]*entities.FoeRecord),
	}

	if err := readTable("items", itemsCSV, itemColumns, c.addItem); err != nil {
		return nil, err
	}
	if err := readTable("foes", foesCSV, foeColumns, c.addFoe); err != nil {
		return nil, err
	}

	slog.Debug("Catalog loaded",
		"items", len(c.items),
		"foes", len(c.foes),
	)

	return c, nil
}

type row map[string]string

func readTable(table string, r io.Reader, columns []string, add func(row) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(columns)

	header, err := reader.Read()
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidSpec, "failed to read %s header", table)
	}
	for i, name := range columns {
		if strings.TrimSpace(header[i]) != name {
			return errors.InvalidSpecf("%s column %d is %q, expected %q", table, i, header[i], name)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeInvalidSpec, "malformed %s row", table).
				WithMeta("line", line)
		}

		fields := make(row, len(columns))
		for i, name := range columns {
			fields[name] = strings.TrimSpace(record[i])
		}
		if err := add(fields); err != nil {
			var e *errors.Error
			if errors.As(err, &e) {
				return e.WithMeta("table", table).WithMeta("line", line)
			}
			return err
		}
	}
}

func (c *Catalog) addItem(fields row) error {
	id := fields["id"]
	if id == "" {
		return errors.InvalidSpecf("item without id")
	}
	if _, exists := c.items[id]; exists {
		return errors.InvalidSpecf("duplicate item %s", id)
	}

	value, err := atoi(fields, "value")
	if err != nil {
		return err
	}

	var effect dice.Dice
	if fields["effect_dice"] != "" {
		effect, err = dice.Parse(fields["effect_dice"])
		if err != nil {
			return errors.Wrapf(err, "item %s has bad effect dice", id)
		}
	}

	c.items[id] = &entities.Item{
		ID:          id,
		Name:        fields["name"],
		Description: fields["description"],
		Value:       value,
		Combat:      fields["combat"] == "true",
		EffectDice:  effect,
		Tags:        splitList(fields["tags"]),
	}
	return nil
}

func (c *Catalog) addFoe(fields row) error {
	id := fields["id"]
	if id == "" {
		return errors.InvalidSpecf("foe without id")
	}
	if _, exists := c.foes[id]; exists {
		return errors.InvalidSpecf("duplicate foe %s", id)
	}

	nums := make(map[string]int)
	for _, key := range []string{"hp", "martial", "evasion", "fancy", "unarmed", "tech", "dr", "exp", "cash", "level"} {
		n, err := atoi(fields, key)
		if err != nil {
			return errors.Wrapf(err, "foe %s", id)
		}
		nums[key] = n
	}
	if nums["hp"] < 1 {
		return errors.InvalidSpecf("foe %s must have positive hp", id)
	}

	weaponDmg, err := dice.Parse(fields["weapon_dmg"])
	if err != nil {
		return errors.Wrapf(err, "foe %s has bad weapon dice", id)
	}

	loot, err := c.parseLoot(fields["drops"])
	if err != nil {
		return errors.Wrapf(err, "foe %s has bad drops", id)
	}

	c.foes[id] = &entities.FoeRecord{
		ID:   id,
		Name: fields["name"],
		HP:   nums["hp"],
		Skills: entities.Skills{
			Martial: nums["martial"],
			Evasion: nums["evasion"],
			Fancy:   nums["fancy"],
			Unarmed: nums["unarmed"],
			Tech:    nums["tech"],
		},
		DR:           nums["dr"],
		Exp:          nums["exp"],
		Cash:         nums["cash"],
		Level:        nums["level"],
		Weapon:       fields["weapon"],
		WeaponDamage: weaponDmg,
		AttackVerb:   fields["attack_verb"],
		Finisher:     fields["finisher"],
		Habitats:     splitList(fields["habitat"]),
		Tags:         splitList(fields["tags"]),
		Loot:         loot,
	}
	return nil
}

// parseLoot reads "first_aid:0.5|frag:0.1"
func (c *Catalog) parseLoot(spec string) (entities.LootTable, error) {
	var table entities.LootTable
	for _, entry := range splitList(spec) {
		id, chance, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, errors.InvalidSpecf("loot entry %q is missing a probability", entry)
		}
		if _, known := c.items[id]; !known {
			return nil, errors.InvalidSpecf("loot references unknown item %s", id)
		}
		p, err := strconv.ParseFloat(chance, 64)
		if err != nil || p < 0 || p > 1 {
			return nil, errors.InvalidSpecf("loot probability %q for %s must be between 0 and 1", chance, id)
		}
		table = append(table, entities.LootEntry{ItemID: id, Chance: p})
	}
	return table, nil
}

func atoi(fields row, key string) (int, error) {
	n, err := strconv.Atoi(fields[key])
	if err != nil {
		return 0, errors.InvalidSpecf("%s must be numeric, got %q", key, fields[key])
	}
	return n, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LookupItem fails with UnknownItem when id is not in the catalog
func (c *Catalog) LookupItem(id string) (*entities.Item, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, errors.UnknownItemf("unknown item: %s", id).WithMeta("item_id", id)
	}
	return item, nil
}

// LookupFoe fails with UnknownFoe when id is not in the catalog
func (c *Catalog) LookupFoe(id string) (*entities.FoeRecord, error) {
	record, ok := c.foes[id]
	if !ok {
		return nil, errors.UnknownFoef("unknown foe: %s", id).WithMeta("foe_id", id)
	}
	return record, nil
}

// NewFoe builds a fresh foe from the record with id
func (c *Catalog) NewFoe(id string) (*entities.Foe, error) {
	record, err := c.LookupFoe(id)
	if err != nil {
		return nil, err
	}
	return entities.NewFoe(record), nil
}

// RandomEncounter picks uniformly among foes living in habitat whose level
// falls in levels. NoMatch is returned when nothing qualifies.
func (c *Catalog) RandomEncounter(r dice.Roller, habitat string, levels LevelRange) (*entities.FoeRecord, error) {
	var candidates []*entities.FoeRecord
	for _, id := range c.FoeIDs() {
		record := c.foes[id]
		if record.LivesIn(habitat) && levels.Contains(record.Level) {
			candidates = append(candidates, record)
		}
	}

	if len(candidates) == 0 {
		return nil, errors.NoMatchf("no foes in %s between levels %d and %d", habitat, levels.Min, levels.Max).
			WithMeta("habitat", habitat)
	}

	idx, err := dice.Pick(r, len(candidates))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pick encounter")
	}
	return candidates[idx], nil
}

// ItemIDs returns all item ids in sorted order
func (c *Catalog) ItemIDs() []string {
	return sortedKeys(c.items)
}

// FoeIDs returns all foe ids in sorted order
func (c *Catalog) FoeIDs() []string {
	return sortedKeys(c.foes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ entities.ItemLookup = (*Catalog)(nil)
