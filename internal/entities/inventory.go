package entities

import (
	"sort"

	"github.com/KirkDiggler/spix/internal/errors"
)

// Inventory is a multiset of item ids plus an optional equipped weapon.
// The equipped id is always a key of items when set.
type Inventory struct {
	items    map[string]int
	equipped string
}

// Stack is one inventory entry resolved against the catalog
type Stack struct {
	ID       string
	Item     *Item
	Quantity int
}

// InventoryData is the persisted form of an Inventory
type InventoryData struct {
	Items    map[string]int `json:"items"`
	EqWeapon *string        `json:"eq_weapon"`
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{items: make(map[string]int)}
}

// Add adds quantity units of id. Entries that drop to zero or below are removed.
func (inv *Inventory) Add(id string, quantity int) {
	if id == "" || quantity == 0 {
		return
	}
	inv.set(id, inv.items[id]+quantity)
}

// Remove takes up to quantity units of id and reports whether anything was removed
func (inv *Inventory) Remove(id string, quantity int) bool {
	if quantity <= 0 || !inv.Has(id) {
		return false
	}
	inv.set(id, inv.items[id]-quantity)
	return true
}

func (inv *Inventory) set(id string, quantity int) {
	if quantity > 0 {
		inv.items[id] = quantity
		return
	}
	delete(inv.items, id)
	if inv.equipped == id {
		inv.equipped = ""
	}
}

// Count returns the quantity held of id
func (inv *Inventory) Count(id string) int {
	return inv.items[id]
}

// Has reports whether at least one unit of id is held
func (inv *Inventory) Has(id string) bool {
	return inv.items[id] > 0
}

// Equip marks id as the equipped weapon. Equipping an item that is not
// owned is a no-op and returns false.
func (inv *Inventory) Equip(id string) bool {
	if !inv.Has(id) {
		return false
	}
	inv.equipped = id
	return true
}

// Unequip clears the equipped weapon
func (inv *Inventory) Unequip() {
	inv.equipped = ""
}

// Equipped returns the equipped weapon id
func (inv *Inventory) Equipped() (string, bool) {
	return inv.equipped, inv.equipped != ""
}

// IDs returns held item ids in sorted order
func (inv *Inventory) IDs() []string {
	ids := make([]string, 0, len(inv.items))
	for id := range inv.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether nothing is held
func (inv *Inventory) Empty() bool {
	return len(inv.items) == 0
}

// Stacks resolves held items against the catalog. With tags, only items
// carrying at least one of them are returned.
func (inv *Inventory) Stacks(lookup ItemLookup, tags ...string) ([]Stack, error) {
	stacks := make([]Stack, 0, len(inv.items))
	for _, id := range inv.IDs() {
		item, err := lookup.LookupItem(id)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve inventory item %s", id)
		}
		if len(tags) > 0 && !item.Tagged(tags...) {
			continue
		}
		stacks = append(stacks, Stack{ID: id, Item: item, Quantity: inv.items[id]})
	}
	return stacks, nil
}

// Data returns the persisted form
func (inv *Inventory) Data() InventoryData {
	data := InventoryData{Items: make(map[string]int, len(inv.items))}
	for id, n := range inv.items {
		data.Items[id] = n
	}
	if inv.equipped != "" {
		eq := inv.equipped
		data.EqWeapon = &eq
	}
	return data
}

// InventoryFromData rebuilds an inventory, failing with InvalidSave when an
// id does not resolve or the equipped weapon is not held
func InventoryFromData(data InventoryData, lookup ItemLookup) (*Inventory, error) {
	inv := NewInventory()
	for id, n := range data.Items {
		if _, err := lookup.LookupItem(id); err != nil {
			return nil, errors.InvalidSavef("unknown item in inventory: %s", id).WithMeta("item_id", id)
		}
		if n < 1 {
			return nil, errors.InvalidSavef("invalid quantity %d for item %s", n, id).WithMeta("item_id", id)
		}
		inv.items[id] = n
	}

	if data.EqWeapon != nil && *data.EqWeapon != "" {
		id := *data.EqWeapon
		if _, err := lookup.LookupItem(id); err != nil {
			return nil, errors.InvalidSavef("unknown equipped weapon: %s", id).WithMeta("item_id", id)
		}
		if !inv.Equip(id) {
			return nil, errors.InvalidSavef("equipped weapon %s is not in inventory", id).WithMeta("item_id", id)
		}
	}

	return inv, nil
}
