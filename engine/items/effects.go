package items

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/questrpg/types"
)

// EffectChoices lists the effect kinds in menu order (1-based in menus).
var EffectChoices = []types.EffectKind{
	types.EffectPhysical,
	types.EffectFreeze,
	types.EffectBurn,
	types.EffectPoison,
	types.EffectShock,
	types.EffectBleed,
	types.EffectWeaken,
	types.EffectHeal,
}

// EffectParams names the parameters an effect kind takes, in order.
func EffectParams(kind types.EffectKind) []string {
	switch kind {
	case types.EffectBurn:
		return []string{"damage", "rounds"}
	case types.EffectPoison:
		return []string{"percent"}
	case types.EffectShock, types.EffectBleed:
		return []string{"damage", "probability"}
	case types.EffectWeaken:
		return []string{"percent"}
	case types.EffectHeal:
		return []string{"points"}
	default:
		return nil
	}
}

// EffectKindFromChoice maps a 1-based menu index to an effect kind.
func EffectKindFromChoice(choice int) (types.EffectKind, error) {
	if choice < 1 || choice > len(EffectChoices) {
		return "", fmt.Errorf("%w: choice %d is not between 1 and %d", types.ErrInvalidEffect, choice, len(EffectChoices))
	}
	return EffectChoices[choice-1], nil
}

// BuildEffect assembles an effect of kind from its parameters, in the
// order given by EffectParams, and validates the result.
func BuildEffect(kind types.EffectKind, params ...uint32) (types.Effect, error) {
	want := EffectParams(kind)
	if len(params) != len(want) {
		return types.Effect{}, fmt.Errorf("%w: %s takes %d parameter(s), got %d", types.ErrInvalidEffect, kind, len(want), len(params))
	}
	var e types.Effect
	switch kind {
	case types.EffectPhysical:
		e = types.Physical()
	case types.EffectFreeze:
		e = types.Freeze()
	case types.EffectBurn:
		e = types.Burn(params[0], params[1])
	case types.EffectPoison:
		e = types.Poison(params[0])
	case types.EffectShock:
		e = types.Shock(params[0], params[1])
	case types.EffectBleed:
		e = types.Bleed(params[0], params[1])
	case types.EffectWeaken:
		e = types.Weaken(params[0])
	case types.EffectHeal:
		e = types.Heal(params[0])
	default:
		return types.Effect{}, fmt.Errorf("%w: unknown kind %q", types.ErrInvalidEffect, kind)
	}
	if err := e.Validate(); err != nil {
		return types.Effect{}, err
	}
	return e, nil
}

// ParseEffect reads the compact "kind:p1:p2" form, e.g. "burn:5:3" or "freeze".
func ParseEffect(s string) (types.Effect, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), ":")
	kind := types.EffectKind(parts[0])
	params := make([]uint32, 0, len(parts)-1)
	for _, p := range parts[1:] {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return types.Effect{}, fmt.Errorf("%w: parameter %q of %s is not a number", types.ErrInvalidEffect, p, kind)
		}
		params = append(params, uint32(n))
	}
	return BuildEffect(kind, params...)
}
