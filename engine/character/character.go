// Package character creates characters and answers questions about their
// class and condition. Gear changes go through engine/equip.
package character

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/questrpg/engine/items"
	"github.com/nathoo/questrpg/types"
	"github.com/nathoo/questrpg/validation"
)

// Spec holds the attributes supplied when creating a character. Nil
// Life or Strength takes the class default.
type Spec struct {
	Name     string      `validate:"required,max=64"`
	Class    types.Class `validate:"class"`
	Life     *uint32     `validate:"-"`
	Strength *uint32     `validate:"-"`
}

// Stats are the base life and strength of a class.
type Stats struct {
	Life     uint32
	Strength uint32
}

var classStats = map[types.Class]Stats{
	types.Warrior:  {Life: 100, Strength: 15},
	types.Mage:     {Life: 70, Strength: 20},
	types.Assassin: {Life: 60, Strength: 28},
}

// DefaultStats returns the base stats of class.
func DefaultStats(class types.Class) (Stats, error) {
	s, ok := classStats[class]
	if !ok {
		return Stats{}, fmt.Errorf("%w: %q", types.ErrInvalidClass, class)
	}
	return s, nil
}

// New builds a level 1 character with nothing equipped and an empty inventory.
func New(spec Spec) (types.Character, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	base, err := DefaultStats(spec.Class)
	if err != nil {
		return types.Character{}, err
	}
	if err := validation.Struct(spec); err != nil {
		return types.Character{}, err
	}
	if spec.Life != nil {
		base.Life = *spec.Life
	}
	if spec.Strength != nil {
		base.Strength = *spec.Strength
	}
	none := items.NoneArmor()
	return types.Character{
		ID:        uuid.New(),
		Name:      spec.Name,
		Life:      base.Life,
		Strength:  base.Strength,
		Level:     1,
		Armor:     none,
		Defense:   none.Defense,
		Weapon:    items.NoneWeapon(),
		Class:     spec.Class,
		Inventory: map[uuid.UUID]types.Item{},
	}, nil
}

// ClassFromChoice maps a 1-based menu index to a class.
func ClassFromChoice(choice int) (types.Class, error) {
	if choice < 1 || choice > len(types.Classes) {
		return "", fmt.Errorf("%w: choice %d is not between 1 and %d", types.ErrInvalidClass, choice, len(types.Classes))
	}
	return types.Classes[choice-1], nil
}

// ParseClass matches a class name case-insensitively.
func ParseClass(s string) (types.Class, error) {
	s = strings.TrimSpace(s)
	for _, c := range types.Classes {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", types.ErrInvalidClass, s)
}

// Alive reports whether c has life left. Death only gates consumables.
func Alive(c *types.Character) bool {
	return c.Life > 0
}

// Items returns the inventory sorted by name, then id.
func Items(c *types.Character) []types.Item {
	out := make([]types.Item, 0, len(c.Inventory))
	for _, it := range c.Inventory {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b types.Item) int {
		if n := cmp.Compare(a.Name(), b.Name()); n != 0 {
			return n
		}
		return cmp.Compare(a.ID().String(), b.ID().String())
	})
	return out
}

// Sheet renders a character for display.
func Sheet(c *types.Character) string {
	status := "alive"
	if !Alive(c) {
		status = "dead"
	}
	lines := []string{
		fmt.Sprintf("Name: %s (%s)", c.Name, status),
		fmt.Sprintf("Class: %s  Level: %d", c.Class, c.Level),
		fmt.Sprintf("Life: %d  Strength: %d  Defense: %d", c.Life, c.Strength, c.Defense),
		fmt.Sprintf("Weapon: %s", c.Weapon.Name),
		fmt.Sprintf("Armor: %s", c.Armor.Name),
	}
	inv := Items(c)
	if len(inv) == 0 {
		lines = append(lines, "Inventory: empty")
	} else {
		names := make([]string, 0, len(inv))
		for _, it := range inv {
			names = append(names, it.Name())
		}
		lines = append(lines, "Inventory: "+strings.Join(names, ", "))
	}
	return strings.Join(lines, "\n")
}
