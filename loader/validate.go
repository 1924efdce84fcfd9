package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/questrpg/engine/character"
	"github.com/nathoo/questrpg/engine/items"
	"github.com/nathoo/questrpg/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate builds items from compiled entries. Every invalid entry is
// reported; unknown fields and repeated names only warn.
func validate(entries []entry) (*Catalog, error) {
	ve := &ValidationError{}
	cat := &Catalog{}
	seen := make(map[string]bool)

	for _, e := range entries {
		label := fmt.Sprintf("%s %q", e.kind, e.name)

		if unknown := unknownFields(e); len(unknown) > 0 {
			ve.Warnings = append(ve.Warnings,
				fmt.Sprintf("%s: unknown field(s) %s", label, strings.Join(unknown, ", ")))
		}

		it, err := build(e)
		if err != nil {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %v", label, err))
			continue
		}

		key := strings.ToLower(it.Name())
		if seen[key] {
			ve.Warnings = append(ve.Warnings,
				fmt.Sprintf("%s: name already used; lookups find the first one", label))
		}
		seen[key] = true
		cat.Items = append(cat.Items, it)
	}

	if len(ve.Errors) > 0 {
		return nil, ve
	}
	cat.Warnings = ve.Warnings
	return cat, nil
}

func unknownFields(e entry) []string {
	known := make(map[string]bool)
	for _, f := range knownFields[e.kind] {
		known[f] = true
	}
	var unknown []string
	for _, f := range e.fields {
		if !known[f] {
			unknown = append(unknown, f)
		}
	}
	return unknown
}

func build(e entry) (types.Item, error) {
	eff, err := resolveEffect(e.effect)
	if err != nil {
		return types.Item{}, err
	}

	switch e.kind {
	case types.KindWeapon:
		class, err := character.ParseClass(e.class)
		if err != nil {
			return types.Item{}, err
		}
		spec := e.weapon
		spec.Class = class
		spec.Effect = eff
		w, err := items.NewWeapon(spec)
		if err != nil {
			return types.Item{}, err
		}
		return types.WeaponItem(w), nil
	case types.KindArmor:
		a, err := items.NewArmor(e.armor)
		if err != nil {
			return types.Item{}, err
		}
		return types.ArmorItem(a), nil
	case types.KindConsumable:
		spec := e.consume
		spec.Effect = eff
		c, err := items.NewConsumable(spec)
		if err != nil {
			return types.Item{}, err
		}
		return types.ConsumableItem(c), nil
	default:
		return types.Item{}, fmt.Errorf("unknown item kind %d", e.kind)
	}
}

// resolveEffect returns the zero Effect when none was written, leaving the
// item constructors to pick their default.
func resolveEffect(src effectSource) (types.Effect, error) {
	switch {
	case !src.set:
		return types.Effect{}, nil
	case src.text != "":
		return items.ParseEffect(src.text)
	default:
		return items.BuildEffect(src.kind, src.params...)
	}
}
