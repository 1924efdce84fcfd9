package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/questrpg/types"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Weapon "Name" { ... }, Armor "Name" { ... }, Consumable "Name" { ... }
	// are curried: Weapon("Name") returns a function that takes a table.
	for global, kind := range map[string]types.ItemKind{
		"Weapon":     types.KindWeapon,
		"Armor":      types.KindArmor,
		"Consumable": types.KindConsumable,
	} {
		kind := kind
		L.SetGlobal(global, L.NewFunction(func(L *lua.LState) int {
			name := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				coll.items = append(coll.items, rawItem{
					kind:  kind,
					name:  name,
					table: tbl,
				})
				return 0
			}))
			return 1
		}))
	}
}

func registerEffectHelpers(L *lua.LState) {
	// Physical(), Freeze()
	L.SetGlobal("Physical", effectHelper(L, types.EffectPhysical))
	L.SetGlobal("Freeze", effectHelper(L, types.EffectFreeze))

	// Burn(damage, rounds)
	L.SetGlobal("Burn", effectHelper(L, types.EffectBurn, "damage", "rounds"))

	// Poison(percent), Weaken(percent)
	L.SetGlobal("Poison", effectHelper(L, types.EffectPoison, "percent"))
	L.SetGlobal("Weaken", effectHelper(L, types.EffectWeaken, "percent"))

	// Shock(damage, probability), Bleed(damage, probability)
	L.SetGlobal("Shock", effectHelper(L, types.EffectShock, "damage", "probability"))
	L.SetGlobal("Bleed", effectHelper(L, types.EffectBleed, "damage", "probability"))

	// Heal(points)
	L.SetGlobal("Heal", effectHelper(L, types.EffectHeal, "points"))
}

// effectHelper returns a Lua function building { kind = ..., <param> = n, ... }
// from its positional number arguments.
func effectHelper(L *lua.LState, kind types.EffectKind, params ...string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString(kind))
		for i, p := range params {
			tbl.RawSetString(p, L.CheckNumber(i+1))
		}
		L.Push(tbl)
		return 1
	})
}
