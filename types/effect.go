package types

import "fmt"

// EffectKind tags the active variant of an Effect.
type EffectKind string

const (
	EffectPhysical EffectKind = "physical"
	EffectFreeze   EffectKind = "freeze" // stacks externally; three stacks skip a turn
	EffectBurn     EffectKind = "burn"
	EffectPoison   EffectKind = "poison"
	EffectShock    EffectKind = "shock"
	EffectBleed    EffectKind = "bleed"
	EffectWeaken   EffectKind = "weaken"
	EffectHeal     EffectKind = "heal"
)

// Effect is an immutable status or combat modifier. Only the parameters
// relevant to Kind are meaningful; the rest stay zero.
type Effect struct {
	Kind        EffectKind `json:"kind"`
	Damage      uint32     `json:"damage,omitempty"`
	Rounds      uint32     `json:"rounds,omitempty"`
	Percent     uint32     `json:"percent,omitempty"`
	Probability uint32     `json:"probability,omitempty"`
	Points      uint32     `json:"points,omitempty"`
}

// Physical is plain damage.
func Physical() Effect { return Effect{Kind: EffectPhysical} }

// Freeze adds one freeze stack.
func Freeze() Effect { return Effect{Kind: EffectFreeze} }

// Burn deals damage every round for a number of rounds.
func Burn(damage, rounds uint32) Effect {
	return Effect{Kind: EffectBurn, Damage: damage, Rounds: rounds}
}

// Poison deals a percentage of life every round until the fight ends.
func Poison(percent uint32) Effect { return Effect{Kind: EffectPoison, Percent: percent} }

// Shock gives the target a chance to take damage and miss when attacking.
func Shock(damage, probability uint32) Effect {
	return Effect{Kind: EffectShock, Damage: damage, Probability: probability}
}

// Bleed gives a hit a chance to deal extra critical damage.
func Bleed(damage, probability uint32) Effect {
	return Effect{Kind: EffectBleed, Damage: damage, Probability: probability}
}

// Weaken reduces the damage dealt by the target by a percentage.
func Weaken(percent uint32) Effect { return Effect{Kind: EffectWeaken, Percent: percent} }

// Heal restores life points.
func Heal(points uint32) Effect { return Effect{Kind: EffectHeal, Points: points} }

// String renders the tag and its parameters, e.g. "Burn; Damage: 5; Rounds: 3".
func (e Effect) String() string {
	switch e.Kind {
	case EffectPhysical, "":
		return "Physical"
	case EffectFreeze:
		return "Freeze"
	case EffectBurn:
		return fmt.Sprintf("Burn; Damage: %d; Rounds: %d", e.Damage, e.Rounds)
	case EffectPoison:
		return fmt.Sprintf("Poison; Damage per round: %d%%", e.Percent)
	case EffectShock:
		return fmt.Sprintf("Shock; Damage: %d; Probability: %d%%", e.Damage, e.Probability)
	case EffectBleed:
		return fmt.Sprintf("Bleed; Damage: %d; Probability: %d%%", e.Damage, e.Probability)
	case EffectWeaken:
		return fmt.Sprintf("Weaken; Damage reduced: %d%%", e.Percent)
	case EffectHeal:
		return fmt.Sprintf("Heal; Life: %d", e.Points)
	default:
		return string(e.Kind)
	}
}

// Validate rejects unknown kinds and percentages above 100. Constructors
// accept any value; callers validate at input boundaries.
func (e Effect) Validate() error {
	switch e.Kind {
	case EffectPhysical, EffectFreeze, EffectBurn, EffectHeal:
	case EffectPoison, EffectWeaken:
		if e.Percent > 100 {
			return fmt.Errorf("%w: %s percent %d is above 100", ErrInvalidEffect, e.Kind, e.Percent)
		}
	case EffectShock, EffectBleed:
		if e.Probability > 100 {
			return fmt.Errorf("%w: %s probability %d is above 100", ErrInvalidEffect, e.Kind, e.Probability)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEffect, e.Kind)
	}
	return nil
}
