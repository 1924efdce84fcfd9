package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/questrpg/types"
)

func TestLoad_Directory(t *testing.T) {
	cat, err := Load("testdata/armory")
	require.NoError(t, err)

	var names []string
	for _, it := range cat.Items {
		names = append(names, it.Name())
	}
	assert.Equal(t, []string{"Axe", "Staff", "Padded Vest", "Scale Mail", "Elixir"}, names)
	assert.Empty(t, cat.Warnings)

	axe := cat.Items[0].Weapon
	assert.Equal(t, types.Warrior, axe.Class)
	assert.Equal(t, types.Shock(3, 15), axe.Effect)
	assert.Equal(t, types.Burn(5, 3), cat.Items[1].Weapon.Effect)

	scale := cat.Items[3].Armor
	assert.Equal(t, uint32(20), scale.Defense)
	assert.Equal(t, uint32(100), scale.Durability.Max)
	assert.Equal(t, types.KindConsumable, cat.Items[4].Kind)
}

func TestLoad_SingleFile(t *testing.T) {
	cat, err := Load("testdata/armory/03_consumables.lua")
	require.NoError(t, err)
	require.Len(t, cat.Items, 1)
	assert.Equal(t, "Elixir", cat.Items[0].Name())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"testdata/missing", "reading catalog"},
		{"testdata/empty", "no .lua files"},
		{"testdata/broken", "executing items.lua"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadString_SandboxedCalls(t *testing.T) {
	_, err := LoadString("escape.lua", `dofile("/etc/passwd")`)
	require.Error(t, err, "calling a removed global must fail")
	assert.Contains(t, err.Error(), "executing escape.lua")
}

func TestLoadString_SyntaxError(t *testing.T) {
	_, err := LoadString("syntax.lua", `Weapon "Axe" {`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing syntax.lua")
}

func TestStarter(t *testing.T) {
	cat, err := Starter()
	require.NoError(t, err)
	assert.Empty(t, cat.Warnings)

	counts := make(map[types.ItemKind]int)
	classes := make(map[types.Class]bool)
	var revive bool
	for _, it := range cat.Items {
		counts[it.Kind]++
		if it.Kind == types.KindWeapon {
			classes[it.Weapon.Class] = true
		}
		if it.Name() == types.ReviveName {
			revive = true
		}
	}
	for _, k := range []types.ItemKind{types.KindWeapon, types.KindArmor, types.KindConsumable} {
		assert.NotZero(t, counts[k], "starter catalog has no %s", k)
	}
	for _, c := range types.Classes {
		assert.True(t, classes[c], "starter catalog has no weapon for %s", c)
	}
	assert.True(t, revive, "starter catalog has no %s", types.ReviveName)
}
