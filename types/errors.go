package types

import (
	"errors"
	"fmt"
)

// Error message constants. Tests match on these with strings.Contains.
const (
	ErrMsgCharacterNotFound  = "character not found"
	ErrMsgItemNotFound       = "item not found"
	ErrMsgPersistence        = "persistence error"
	ErrMsgInvalidInput       = "invalid input"
	ErrMsgItemNotUsable      = "item not usable"
	ErrMsgIncompatibleWeapon = "incompatible weapon"
	ErrMsgInvalidClass       = "invalid class"
	ErrMsgInvalidEffect      = "invalid effect"
)

// Domain errors. Wrap with fmt.Errorf("%w: %s", types.ErrXxx, detail).
var (
	ErrCharacterNotFound  = errors.New(ErrMsgCharacterNotFound)
	ErrItemNotFound       = errors.New(ErrMsgItemNotFound)
	ErrPersistence        = errors.New(ErrMsgPersistence)
	ErrInvalidInput       = errors.New(ErrMsgInvalidInput)
	ErrItemNotUsable      = errors.New(ErrMsgItemNotUsable)
	ErrIncompatibleWeapon = errors.New(ErrMsgIncompatibleWeapon)
	ErrInvalidClass       = errors.New(ErrMsgInvalidClass)
	ErrInvalidEffect      = errors.New(ErrMsgInvalidEffect)
)

// Guard failures raised by item application. All match ErrItemNotUsable.
var (
	ErrAlreadyOwned = fmt.Errorf("%w: already in inventory", ErrItemNotUsable)
	ErrAlreadyInUse = fmt.Errorf("%w: already equipped", ErrItemNotUsable)
	ErrNotUsable    = fmt.Errorf("%w: character is dead", ErrItemNotUsable)
)
