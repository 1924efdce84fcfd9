// Package validation checks user-supplied specs with struct tags and maps
// failures onto types.ErrInvalidInput.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/nathoo/questrpg/types"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("class", validateClass)
		_ = v.RegisterValidation("notnone", validateNotNone)
		validate = v
	})
	return validate
}

// Struct validates s and returns an error wrapping types.ErrInvalidInput
// that names every failing field.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, describe(e))
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "class":
		return fmt.Sprintf("%s %q is not one of Warrior, Mage, Assassin", field, e.Value())
	case "notnone":
		return fmt.Sprintf("%s %q is reserved", field, types.NoneName)
	default:
		return field + " is invalid"
	}
}

func validateClass(fl validator.FieldLevel) bool {
	c := types.Class(fl.Field().String())
	for _, known := range types.Classes {
		if c == known {
			return true
		}
	}
	return false
}

func validateNotNone(fl validator.FieldLevel) bool {
	return !strings.EqualFold(strings.TrimSpace(fl.Field().String()), types.NoneName)
}
