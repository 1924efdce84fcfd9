package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/questrpg/types"
)

type sample struct {
	Name  string      `validate:"required,max=8,notnone"`
	Class types.Class `validate:"class"`
}

func TestStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		require.NoError(t, Struct(sample{Name: "Thorin", Class: types.Warrior}))
	})

	t.Run("missing name reports required", func(t *testing.T) {
		err := Struct(sample{Class: types.Mage})
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrInvalidInput))
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("unknown class is rejected", func(t *testing.T) {
		err := Struct(sample{Name: "Aria", Class: "Bard"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `class "Bard"`)
	})

	t.Run("sentinel name is reserved", func(t *testing.T) {
		err := Struct(sample{Name: "none", Class: types.Mage})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reserved")
	})

	t.Run("all failures are joined", func(t *testing.T) {
		err := Struct(sample{Name: "far too long a name", Class: ""})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at most 8")
		assert.Contains(t, err.Error(), "class")
	})
}
