package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/questrpg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Basic verbs (no object)
		{
			name:  "characters",
			input: "characters",
			want:  types.Intent{Verb: "characters"},
		},
		{
			name:  "catalog",
			input: "catalog",
			want:  types.Intent{Verb: "catalog"},
		},
		{
			name:  "verb is case-insensitive",
			input: "CATALOG",
			want:  types.Intent{Verb: "catalog"},
		},

		// Verb aliases
		{
			name:  "party → characters",
			input: "party",
			want:  types.Intent{Verb: "characters"},
		},
		{
			name:  "items → catalog",
			input: "items",
			want:  types.Intent{Verb: "catalog"},
		},
		{
			name:  "i Thorin → inventory Thorin",
			input: "i Thorin",
			want:  types.Intent{Verb: "inventory", Object: "Thorin"},
		},
		{
			name:  "x Axe → examine Axe",
			input: "x Axe",
			want:  types.Intent{Verb: "examine", Object: "Axe"},
		},
		{
			name:  "wield → equip",
			input: "wield Axe on Thorin",
			want:  types.Intent{Verb: "equip", Object: "Axe", Target: "Thorin"},
		},
		{
			name:  "wear → equip",
			input: "wear Leather Armor on Aria",
			want:  types.Intent{Verb: "equip", Object: "Leather Armor", Target: "Aria"},
		},
		{
			name:  "drink → use",
			input: "drink Potion on Thorin",
			want:  types.Intent{Verb: "use", Object: "Potion", Target: "Thorin"},
		},
		{
			name:  "quaff → use",
			input: "quaff Potion for Aria",
			want:  types.Intent{Verb: "use", Object: "Potion", Target: "Aria"},
		},
		{
			name:  "hand → give",
			input: "hand Potion to Aria",
			want:  types.Intent{Verb: "give", Object: "Potion", Target: "Aria"},
		},

		// Multi-word verbs
		{
			name:  "look at → examine",
			input: "look at Iron Sword",
			want:  types.Intent{Verb: "examine", Object: "Iron Sword"},
		},
		{
			name:  "put on → equip",
			input: "put on Chainmail on Brom",
			want:  types.Intent{Verb: "equip", Object: "Chainmail", Target: "Brom"},
		},
		{
			name:  "hand over → give",
			input: "hand over Axe to Brom",
			want:  types.Intent{Verb: "give", Object: "Axe", Target: "Brom"},
		},
		{
			name:  "list party → characters",
			input: "list party",
			want:  types.Intent{Verb: "characters"},
		},

		// Articles and casing
		{
			name:  "articles are stripped",
			input: "give the Potion to a Thorin",
			want:  types.Intent{Verb: "give", Object: "Potion", Target: "Thorin"},
		},
		{
			name:  "names keep their casing",
			input: "Equip IRON sword ON thorin",
			want:  types.Intent{Verb: "equip", Object: "IRON sword", Target: "thorin"},
		},
		{
			name:  "extra whitespace",
			input: "  use   Potion   on   Thorin  ",
			want:  types.Intent{Verb: "use", Object: "Potion", Target: "Thorin"},
		},
		{
			name:  "first preposition splits",
			input: "examine Ring in Thorin with care",
			want:  types.Intent{Verb: "examine", Object: "Ring", Target: "Thorin with care"},
		},

		// New keeps every word
		{
			name:  "new keeps articles and prepositions",
			input: "new consumable The Draught description=on",
			want:  types.Intent{Verb: "new", Object: "consumable The Draught description=on"},
		},
		{
			name:  "create → new",
			input: "create weapon Axe damage=5",
			want:  types.Intent{Verb: "new", Object: "weapon Axe damage=5"},
		},

		// Unknown verbs pass through
		{
			name:  "unknown verb",
			input: "dance wildly",
			want:  types.Intent{Verb: "dance", Object: "wildly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input), "Parse(%q)", tt.input)
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`weapon Axe damage=5`, []string{"weapon", "Axe", "damage=5"}},
		{`  a   b  `, []string{"a", "b"}},
		{`"Iron Sword" rarity="Very Rare"`, []string{"Iron Sword", "rarity=Very Rare"}},
		{`description="" x`, []string{"description=", "x"}},
		{`""`, []string{""}},
		{``, nil},
	}
	for _, tt := range tests {
		got, err := Tokenize(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, "Tokenize(%q)", tt.input)
	}
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	_, err := Tokenize(`description="never closed`)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestParseForm(t *testing.T) {
	f, err := ParseForm(`Weapon Iron Sword damage=12 Class=Warrior effect=burn:5:3 rarity="Very Rare"`)
	require.NoError(t, err)
	assert.Equal(t, "weapon", f.Kind)
	assert.Equal(t, "Iron Sword", f.Name)
	assert.Equal(t, map[string]string{
		"damage": "12",
		"class":  "Warrior",
		"effect": "burn:5:3",
		"rarity": "Very Rare",
	}, f.Fields)
	assert.True(t, f.Has("class"))
	assert.False(t, f.Has("durability"))
}

func TestParseForm_KindOnly(t *testing.T) {
	f, err := ParseForm("armor")
	require.NoError(t, err)
	assert.Equal(t, "armor", f.Kind)
	assert.Empty(t, f.Name)
	assert.Empty(t, f.Fields)
}

func TestParseForm_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"duplicate field", "weapon Axe damage=1 damage=2"},
		{"nameless field", "weapon Axe =5"},
		{"open quote", `armor "Plate`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseForm(tt.input)
			assert.ErrorIs(t, err, types.ErrInvalidInput)
		})
	}
}
