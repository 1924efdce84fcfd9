// Package types defines the shared data structures for the questrpg engine.
// Apart from value-level accessors (ID, Name, Kind, Clone, String) and
// the decoding checks that keep an Item well formed, this package holds no
// logic; rules live under engine/.
package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
	Target string // optional
}

// Event is emitted after a command changed game state.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single command step.
type Result struct {
	Events []Event
	Output []string
}

// Class is a fixed character class. It constrains which weapons a
// character may equip and selects default stats.
type Class string

const (
	Warrior  Class = "Warrior"
	Mage     Class = "Mage"
	Assassin Class = "Assassin"
)

// Classes lists every class in menu order.
var Classes = []Class{Warrior, Mage, Assassin}

// Durability tracks the wear of a single weapon or armor copy.
type Durability struct {
	Current uint32 `json:"current"`
	Max     uint32 `json:"max"`
}

// Weapon is an equippable weapon restricted to one class.
type Weapon struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Damage     uint32     `json:"damage"`
	Class      Class      `json:"class"`
	Effect     Effect     `json:"effect"`
	Rarity     string     `json:"rarity"`
	Durability Durability `json:"durability"`
}

// Armor is equippable protection. Any class may wear it.
type Armor struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Defense    uint32     `json:"defense"`
	Rarity     string     `json:"rarity"`
	Durability Durability `json:"durability"`
}

// Consumable is a single-use item that changes life when applied.
// LifeDelta may be negative. For the "Revive" consumable it is the
// life value a dead character is restored to.
type Consumable struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LifeDelta   int32     `json:"life_delta"`
	Effect      Effect    `json:"effect"`
	Description string    `json:"description"`
}

// NoneName is the name carried by the "nothing equipped" sentinels.
const NoneName = "None"

// ReviveName is the only consumable usable on a dead character.
const ReviveName = "Revive"

// IsNone reports whether w is the empty-hand sentinel.
func (w Weapon) IsNone() bool { return w.Name == NoneName }

// IsNone reports whether a is the no-armor sentinel.
func (a Armor) IsNone() bool { return a.Name == NoneName }

// ItemKind tags the active variant of an Item.
type ItemKind int

const (
	KindWeapon ItemKind = iota + 1
	KindArmor
	KindConsumable
)

func (k ItemKind) String() string {
	switch k {
	case KindWeapon:
		return "Weapon"
	case KindArmor:
		return "Armor"
	case KindConsumable:
		return "Consumable"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// MarshalText encodes the kind as its name so saves stay readable.
func (k ItemKind) MarshalText() ([]byte, error) {
	switch k {
	case KindWeapon, KindArmor, KindConsumable:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown item kind %d", int(k))
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *ItemKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Weapon":
		*k = KindWeapon
	case "Armor":
		*k = KindArmor
	case "Consumable":
		*k = KindConsumable
	default:
		return fmt.Errorf("unknown item kind %q", string(b))
	}
	return nil
}

// Item is the closed union of Weapon, Armor and Consumable. Exactly one
// of the variant pointers is set, matching Kind. Catalogs and
// inventories hold Items rather than concrete variants.
type Item struct {
	Kind       ItemKind    `json:"kind"`
	Weapon     *Weapon     `json:"weapon,omitempty"`
	Armor      *Armor      `json:"armor,omitempty"`
	Consumable *Consumable `json:"consumable,omitempty"`
}

// WeaponItem wraps a copy of w.
func WeaponItem(w Weapon) Item { return Item{Kind: KindWeapon, Weapon: &w} }

// ArmorItem wraps a copy of a.
func ArmorItem(a Armor) Item { return Item{Kind: KindArmor, Armor: &a} }

// ConsumableItem wraps a copy of c.
func ConsumableItem(c Consumable) Item { return Item{Kind: KindConsumable, Consumable: &c} }

// ID returns the item's identity. It never changes, including across Clone.
func (it Item) ID() uuid.UUID {
	switch it.Kind {
	case KindWeapon:
		return it.Weapon.ID
	case KindArmor:
		return it.Armor.ID
	case KindConsumable:
		return it.Consumable.ID
	}
	panic(unknownKind(it.Kind))
}

// Name returns the display name of the active variant.
func (it Item) Name() string {
	switch it.Kind {
	case KindWeapon:
		return it.Weapon.Name
	case KindArmor:
		return it.Armor.Name
	case KindConsumable:
		return it.Consumable.Name
	}
	panic(unknownKind(it.Kind))
}

// Clone returns an independent copy with the same id.
func (it Item) Clone() Item {
	switch it.Kind {
	case KindWeapon:
		return WeaponItem(*it.Weapon)
	case KindArmor:
		return ArmorItem(*it.Armor)
	case KindConsumable:
		return ConsumableItem(*it.Consumable)
	}
	panic(unknownKind(it.Kind))
}

// UnmarshalJSON decodes an item and rejects one whose kind is missing or
// does not match the single variant present, so a decoded Item never
// panics in ID, Name or Clone.
func (it *Item) UnmarshalJSON(b []byte) error {
	type plain Item
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	set := 0
	for _, ok := range []bool{p.Weapon != nil, p.Armor != nil, p.Consumable != nil} {
		if ok {
			set++
		}
	}
	var match bool
	switch p.Kind {
	case KindWeapon:
		match = p.Weapon != nil
	case KindArmor:
		match = p.Armor != nil
	case KindConsumable:
		match = p.Consumable != nil
	default:
		return errors.New("item has no kind")
	}
	if !match || set != 1 {
		return fmt.Errorf("%s item must carry exactly one %s payload", p.Kind, p.Kind)
	}
	*it = Item(p)
	return nil
}

func unknownKind(k ItemKind) string {
	return fmt.Sprintf("types: item with unknown kind %v", k)
}

// Character is a player-controlled actor. Equipped gear is owned by value
// and is never present in Inventory at the same time.
type Character struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Life      uint32             `json:"life"`
	Strength  uint32             `json:"strength"`
	Level     uint32             `json:"level"`
	Armor     Armor              `json:"armor"`
	Defense   uint32             `json:"defense"`
	Weapon    Weapon             `json:"weapon"`
	Class     Class              `json:"class"`
	Inventory map[uuid.UUID]Item `json:"inventory"`
}

// Clone returns a deep copy of c; inventory items are cloned too.
func (c Character) Clone() Character {
	out := c
	out.Inventory = make(map[uuid.UUID]Item, len(c.Inventory))
	for id, it := range c.Inventory {
		out.Inventory[id] = it.Clone()
	}
	return out
}
