// Package items builds Weapon, Armor and Consumable values and renders
// their descriptions. Every constructor mints a fresh id; copies made
// afterwards keep it.
package items

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/questrpg/types"
	"github.com/nathoo/questrpg/validation"
)

// DefaultDurability is used when a spec leaves durability at zero.
const DefaultDurability = 100

// WeaponSpec holds the attributes supplied when creating a weapon.
type WeaponSpec struct {
	Name       string       `validate:"required,max=64,notnone"`
	Damage     uint32       `validate:"-"`
	Class      types.Class  `validate:"class"`
	Effect     types.Effect `validate:"-"`
	Rarity     string       `validate:"max=32"`
	Durability uint32       `validate:"-"`
}

// ArmorSpec holds the attributes supplied when creating armor.
type ArmorSpec struct {
	Name       string `validate:"required,max=64,notnone"`
	Defense    uint32 `validate:"-"`
	Rarity     string `validate:"max=32"`
	Durability uint32 `validate:"-"`
}

// ConsumableSpec holds the attributes supplied when creating a consumable.
// A zero Effect renders as a heal of LifeDelta when LifeDelta is positive.
type ConsumableSpec struct {
	Name        string       `validate:"required,max=64"`
	LifeDelta   int32        `validate:"-"`
	Effect      types.Effect `validate:"-"`
	Description string       `validate:"max=256"`
}

// NewWeapon validates spec and returns a weapon with a new id.
func NewWeapon(spec WeaponSpec) (types.Weapon, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	if err := validation.Struct(spec); err != nil {
		return types.Weapon{}, err
	}
	eff := spec.Effect
	if eff.Kind == "" {
		eff = types.Physical()
	}
	return types.Weapon{
		ID:         uuid.New(),
		Name:       spec.Name,
		Damage:     spec.Damage,
		Class:      spec.Class,
		Effect:     eff,
		Rarity:     spec.Rarity,
		Durability: full(spec.Durability),
	}, nil
}

// NewArmor validates spec and returns armor with a new id.
func NewArmor(spec ArmorSpec) (types.Armor, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	if err := validation.Struct(spec); err != nil {
		return types.Armor{}, err
	}
	return types.Armor{
		ID:         uuid.New(),
		Name:       spec.Name,
		Defense:    spec.Defense,
		Rarity:     spec.Rarity,
		Durability: full(spec.Durability),
	}, nil
}

// NewConsumable validates spec and returns a consumable with a new id.
func NewConsumable(spec ConsumableSpec) (types.Consumable, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	if err := validation.Struct(spec); err != nil {
		return types.Consumable{}, err
	}
	eff := spec.Effect
	if eff.Kind == "" {
		eff = types.Physical()
		if spec.LifeDelta > 0 {
			eff = types.Heal(uint32(spec.LifeDelta))
		}
	}
	return types.Consumable{
		ID:          uuid.New(),
		Name:        spec.Name,
		LifeDelta:   spec.LifeDelta,
		Effect:      eff,
		Description: spec.Description,
	}, nil
}

func full(n uint32) types.Durability {
	if n == 0 {
		n = DefaultDurability
	}
	return types.Durability{Current: n, Max: n}
}

// NoneWeapon is the "nothing equipped" weapon sentinel.
func NoneWeapon() types.Weapon {
	return types.Weapon{Name: types.NoneName, Effect: types.Physical()}
}

// NoneArmor is the "nothing equipped" armor sentinel.
func NoneArmor() types.Armor {
	return types.Armor{Name: types.NoneName}
}

// Describe returns the multi-line description of an item.
func Describe(it types.Item) string {
	switch it.Kind {
	case types.KindWeapon:
		return DescribeWeapon(*it.Weapon)
	case types.KindArmor:
		return DescribeArmor(*it.Armor)
	case types.KindConsumable:
		c := it.Consumable
		return fmt.Sprintf("Name: %s\nLife: %+d\nEffect: %s\nDescription: %s",
			c.Name, c.LifeDelta, c.Effect, c.Description)
	}
	panic(fmt.Sprintf("items: describe unknown kind %v", it.Kind))
}

// DescribeWeapon renders a weapon.
func DescribeWeapon(w types.Weapon) string {
	return fmt.Sprintf("Name: %s\nDamage: %d\nClass: %s\nEffect: %s\nRarity: %s\nDurability: %d/%d",
		w.Name, w.Damage, w.Class, w.Effect, w.Rarity, w.Durability.Current, w.Durability.Max)
}

// DescribeArmor renders armor.
func DescribeArmor(a types.Armor) string {
	return fmt.Sprintf("Name: %s\nDefense: %d\nRarity: %s\nDurability: %d/%d",
		a.Name, a.Defense, a.Rarity, a.Durability.Current, a.Durability.Max)
}

// Summary is a one-line label: "Iron Sword [Weapon] <id>".
func Summary(it types.Item) string {
	return fmt.Sprintf("%s [%s] %s", it.Name(), it.Kind, it.ID())
}
