package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nathoo/questrpg/engine/character"
	"github.com/nathoo/questrpg/engine/items"
	"github.com/nathoo/questrpg/engine/parser"
	"github.com/nathoo/questrpg/types"
)

var usages = map[string]string{
	"character":  "new character <Name> class=<Warrior|Mage|Assassin> [life=<n>] [strength=<n>]",
	"weapon":     "new weapon <Name> damage=<n> class=<Warrior|Mage|Assassin> [effect=<kind:params>] [rarity=<text>] [durability=<n>]",
	"armor":      "new armor <Name> defense=<n> [rarity=<text>] [durability=<n>]",
	"consumable": "new consumable <Name> life=<+/-n> [effect=<kind:params>] [description=<text>]",
}

var kindAliases = map[string]string{
	"char":   "character",
	"hero":   "character",
	"armour": "armor",
	"potion": "consumable",
}

// NewKind normalizes the word after "new": "armour" is "armor" and so on.
// It reports false for anything that cannot be created.
func NewKind(word string) (string, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if alias, ok := kindAliases[word]; ok {
		word = alias
	}
	_, ok := usages[word]
	return word, ok
}

// NewUsage returns the one-line syntax of "new <kind>".
func NewUsage(kind string) string {
	if u, ok := usages[kind]; ok {
		return "Usage: " + u
	}
	return "Usage: new character|weapon|armor|consumable <Name> key=value..."
}

func characterSpec(f parser.Form) (character.Spec, error) {
	if err := allowFields(f, "class", "life", "strength"); err != nil {
		return character.Spec{}, err
	}
	spec := character.Spec{Name: f.Name}
	if f.Has("class") {
		class, err := character.ParseClass(f.Fields["class"])
		if err != nil {
			return character.Spec{}, err
		}
		spec.Class = class
	}
	for _, field := range []struct {
		key string
		dst **uint32
	}{{"life", &spec.Life}, {"strength", &spec.Strength}} {
		if !f.Has(field.key) {
			continue
		}
		n, err := uintField(f, field.key)
		if err != nil {
			return character.Spec{}, err
		}
		*field.dst = &n
	}
	return spec, nil
}

func weaponSpec(f parser.Form) (items.WeaponSpec, error) {
	if err := allowFields(f, "damage", "class", "effect", "rarity", "durability"); err != nil {
		return items.WeaponSpec{}, err
	}
	spec := items.WeaponSpec{Name: f.Name, Rarity: f.Fields["rarity"]}
	var err error
	if spec.Damage, err = uintField(f, "damage"); err != nil {
		return items.WeaponSpec{}, err
	}
	if spec.Durability, err = uintField(f, "durability"); err != nil {
		return items.WeaponSpec{}, err
	}
	if f.Has("class") {
		if spec.Class, err = character.ParseClass(f.Fields["class"]); err != nil {
			return items.WeaponSpec{}, err
		}
	}
	if spec.Effect, err = effectField(f); err != nil {
		return items.WeaponSpec{}, err
	}
	return spec, nil
}

func armorSpec(f parser.Form) (items.ArmorSpec, error) {
	if err := allowFields(f, "defense", "rarity", "durability"); err != nil {
		return items.ArmorSpec{}, err
	}
	spec := items.ArmorSpec{Name: f.Name, Rarity: f.Fields["rarity"]}
	var err error
	if spec.Defense, err = uintField(f, "defense"); err != nil {
		return items.ArmorSpec{}, err
	}
	if spec.Durability, err = uintField(f, "durability"); err != nil {
		return items.ArmorSpec{}, err
	}
	return spec, nil
}

func consumableSpec(f parser.Form) (items.ConsumableSpec, error) {
	if err := allowFields(f, "life", "effect", "description"); err != nil {
		return items.ConsumableSpec{}, err
	}
	spec := items.ConsumableSpec{Name: f.Name, Description: f.Fields["description"]}
	if f.Has("life") {
		n, err := strconv.ParseInt(strings.TrimSpace(f.Fields["life"]), 10, 32)
		if err != nil {
			return items.ConsumableSpec{}, fmt.Errorf("%w: life %q is not a whole number", types.ErrInvalidInput, f.Fields["life"])
		}
		spec.LifeDelta = int32(n)
	}
	var err error
	if spec.Effect, err = effectField(f); err != nil {
		return items.ConsumableSpec{}, err
	}
	return spec, nil
}

// allowFields rejects any field not in allowed.
func allowFields(f parser.Form, allowed ...string) error {
	var unknown []string
	for key := range f.Fields {
		if !slices.Contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	return fmt.Errorf("%w: unknown field(s) %s for %s (expected %s)",
		types.ErrInvalidInput, strings.Join(unknown, ", "), f.Kind, strings.Join(allowed, ", "))
}

// uintField reads a non-negative number; a missing field is zero.
func uintField(f parser.Form, key string) (uint32, error) {
	v, ok := f.Fields[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a non-negative whole number", types.ErrInvalidInput, key, v)
	}
	return uint32(n), nil
}

// effectField reads "effect=burn:5:3". A missing field leaves the zero
// Effect so the constructor picks its default.
func effectField(f parser.Form) (types.Effect, error) {
	v, ok := f.Fields["effect"]
	if !ok {
		return types.Effect{}, nil
	}
	return items.ParseEffect(v)
}
