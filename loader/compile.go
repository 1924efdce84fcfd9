// Package loader reads item catalogs written in Lua into item specs.
// The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/questrpg/engine/items"
	"github.com/nathoo/questrpg/types"
)

// rawItem holds a constructor call before compilation.
type rawItem struct {
	kind  types.ItemKind
	name  string
	table *lua.LTable
}

// effectSource is an effect as written in Lua, resolved during validation.
type effectSource struct {
	set    bool
	text   string // compact form, e.g. "burn:5:3"
	kind   types.EffectKind
	params []uint32
}

// entry is a compiled catalog definition.
type entry struct {
	kind    types.ItemKind
	name    string
	fields  []string
	effect  effectSource
	weapon  items.WeaponSpec
	armor   items.ArmorSpec
	consume items.ConsumableSpec
	class   string
}

// Fields each constructor understands.
var knownFields = map[types.ItemKind][]string{
	types.KindWeapon:     {"damage", "class", "effect", "rarity", "durability"},
	types.KindArmor:      {"defense", "rarity", "durability"},
	types.KindConsumable: {"life", "effect", "description"},
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) (string, error) {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return "", nil
	case lua.LString:
		return string(v), nil
	default:
		return "", fmt.Errorf("field %s must be a string, got %s", key, v.Type())
	}
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) (float64, error) {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return 0, nil
	case lua.LNumber:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("field %s must be a number, got %s", key, v.Type())
	}
}

// getUint returns a non-negative whole number field, or 0 if missing.
func getUint(tbl *lua.LTable, key string) (uint32, error) {
	n, err := getNumber(tbl, key)
	if err != nil {
		return 0, err
	}
	if n < 0 || n != math.Trunc(n) || n > math.MaxUint32 {
		return 0, fmt.Errorf("field %s must be a non-negative whole number, got %v", key, n)
	}
	return uint32(n), nil
}

// getInt returns a signed whole number field, or 0 if missing.
func getInt(tbl *lua.LTable, key string) (int32, error) {
	n, err := getNumber(tbl, key)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("field %s must be a whole number, got %v", key, n)
	}
	return int32(n), nil
}

// getEffect reads an effect written either as a helper call such as
// Burn(5, 3) or as the compact string "burn:5:3".
func getEffect(tbl *lua.LTable, key string) (effectSource, error) {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return effectSource{}, nil
	case lua.LString:
		return effectSource{set: true, text: string(v)}, nil
	case *lua.LTable:
		kind, err := getString(v, "kind")
		if err != nil {
			return effectSource{}, fmt.Errorf("%s: %w", key, err)
		}
		src := effectSource{set: true, kind: types.EffectKind(kind)}
		for _, p := range items.EffectParams(src.kind) {
			n, err := getUint(v, p)
			if err != nil {
				return effectSource{}, fmt.Errorf("%s: %w", key, err)
			}
			src.params = append(src.params, n)
		}
		return src, nil
	default:
		return effectSource{}, fmt.Errorf("field %s must be an effect or a string, got %s", key, v.Type())
	}
}

// tableKeys returns the string keys of tbl in sorted order.
func tableKeys(tbl *lua.LTable) []string {
	var keys []string
	tbl.ForEach(func(k, _ lua.LValue) {
		if s, ok := k.(lua.LString); ok {
			keys = append(keys, string(s))
		}
	})
	sort.Strings(keys)
	return keys
}

// compile converts collected Lua tables into entries, in definition order.
// Type errors fail fast; semantic checks are left to validate.
func compile(coll *collector) ([]entry, error) {
	entries := make([]entry, 0, len(coll.items))
	for _, raw := range coll.items {
		e, err := compileItem(raw)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", raw.kind, raw.name, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func compileItem(raw rawItem) (entry, error) {
	e := entry{
		kind:   raw.kind,
		name:   raw.name,
		fields: tableKeys(raw.table),
	}

	var err error
	switch raw.kind {
	case types.KindWeapon:
		err = compileWeapon(raw.table, &e)
	case types.KindArmor:
		err = compileArmor(raw.table, &e)
	case types.KindConsumable:
		err = compileConsumable(raw.table, &e)
	default:
		return entry{}, fmt.Errorf("unknown item kind %d", raw.kind)
	}
	return e, err
}

func compileWeapon(tbl *lua.LTable, e *entry) error {
	var err error
	e.weapon.Name = e.name
	if e.weapon.Damage, err = getUint(tbl, "damage"); err != nil {
		return err
	}
	if e.class, err = getString(tbl, "class"); err != nil {
		return err
	}
	if e.weapon.Rarity, err = getString(tbl, "rarity"); err != nil {
		return err
	}
	if e.weapon.Durability, err = getUint(tbl, "durability"); err != nil {
		return err
	}
	e.effect, err = getEffect(tbl, "effect")
	return err
}

func compileArmor(tbl *lua.LTable, e *entry) error {
	var err error
	e.armor.Name = e.name
	if e.armor.Defense, err = getUint(tbl, "defense"); err != nil {
		return err
	}
	if e.armor.Rarity, err = getString(tbl, "rarity"); err != nil {
		return err
	}
	e.armor.Durability, err = getUint(tbl, "durability")
	return err
}

func compileConsumable(tbl *lua.LTable, e *entry) error {
	var err error
	e.consume.Name = e.name
	if e.consume.LifeDelta, err = getInt(tbl, "life"); err != nil {
		return err
	}
	if e.consume.Description, err = getString(tbl, "description"); err != nil {
		return err
	}
	e.effect, err = getEffect(tbl, "effect")
	return err
}
