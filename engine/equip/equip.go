// Package equip applies items to characters. It is the only place that
// changes a character's gear, life or inventory through an item, so the
// guards below hold for every caller.
//
// A failed Apply leaves the character untouched.
package equip

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/nathoo/questrpg/types"
)

// Apply dispatches on the item's kind and applies it to c. The item is
// copied into c; the caller's value is never aliased.
func Apply(c *types.Character, it types.Item) (bool, error) {
	switch it.Kind {
	case types.KindWeapon:
		return Weapon(c, *it.Weapon)
	case types.KindArmor:
		return Armor(c, *it.Armor)
	case types.KindConsumable:
		return Consumable(c, *it.Consumable)
	}
	panic(fmt.Sprintf("equip: apply unknown kind %v", it.Kind))
}

// Weapon equips w, stowing the current real weapon in the inventory.
func Weapon(c *types.Character, w types.Weapon) (bool, error) {
	if _, ok := c.Inventory[w.ID]; ok {
		return false, fmt.Errorf("%w: %s", types.ErrAlreadyOwned, w.Name)
	}
	if c.Weapon.Name == w.Name {
		return false, fmt.Errorf("%w: %s", types.ErrAlreadyInUse, w.Name)
	}
	if w.Class != c.Class {
		return false, fmt.Errorf("%w: %s requires %s, %s is %s",
			types.ErrIncompatibleWeapon, w.Name, w.Class, c.Name, c.Class)
	}
	if !c.Weapon.IsNone() {
		stow(c, types.WeaponItem(c.Weapon))
	}
	c.Weapon = w
	return true, nil
}

// Armor equips a, stowing the current real armor and recomputing defense.
func Armor(c *types.Character, a types.Armor) (bool, error) {
	if _, ok := c.Inventory[a.ID]; ok {
		return false, fmt.Errorf("%w: %s", types.ErrAlreadyOwned, a.Name)
	}
	if c.Armor.Name == a.Name {
		return false, fmt.Errorf("%w: %s", types.ErrAlreadyInUse, a.Name)
	}
	if !c.Armor.IsNone() {
		stow(c, types.ArmorItem(c.Armor))
	}
	c.Armor = a
	c.Defense = a.Defense
	return true, nil
}

// Consumable applies con's life delta. Dead characters can only take a
// Revive, which sets life rather than adding to it.
func Consumable(c *types.Character, con types.Consumable) (bool, error) {
	if _, ok := c.Inventory[con.ID]; ok {
		return false, fmt.Errorf("%w: %s", types.ErrAlreadyOwned, con.Name)
	}
	if c.Life == 0 {
		if con.Name != types.ReviveName {
			return false, fmt.Errorf("%w: %s cannot use %s", types.ErrNotUsable, c.Name, con.Name)
		}
		c.Life = clampLife(int64(con.LifeDelta))
		return true, nil
	}
	c.Life = clampLife(int64(c.Life) + int64(con.LifeDelta))
	return true, nil
}

func stow(c *types.Character, it types.Item) {
	if c.Inventory == nil {
		c.Inventory = map[uuid.UUID]types.Item{}
	}
	c.Inventory[it.ID()] = it
}

func clampLife(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
