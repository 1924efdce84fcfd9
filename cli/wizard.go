package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/questrpg/engine/character"
	"github.com/nathoo/questrpg/engine/items"
	"github.com/nathoo/questrpg/types"
)

// wizard asks for every attribute of a new character or item in turn.
// It returns an error only when input ends.
func (c *CLI) wizard(kind string) error {
	switch kind {
	case "character":
		return c.newCharacter()
	case "weapon":
		return c.newWeapon()
	case "armor":
		return c.newArmor()
	case "consumable":
		return c.newConsumable()
	default:
		return fmt.Errorf("no wizard for %q", kind)
	}
}

func (c *CLI) newCharacter() error {
	name, err := ReadValidated(c.prompt, "Name: ", required)
	if err != nil {
		return err
	}
	class, err := c.chooseClass()
	if err != nil {
		return err
	}
	base, err := character.DefaultStats(class)
	if err != nil {
		return err
	}
	life, err := ReadValidated(c.prompt, fmt.Sprintf("Life [%d]: ", base.Life), optionalWhole)
	if err != nil {
		return err
	}
	strength, err := ReadValidated(c.prompt, fmt.Sprintf("Strength [%d]: ", base.Strength), optionalWhole)
	if err != nil {
		return err
	}

	ch, err := c.Game.CreateCharacter(character.Spec{
		Name:     name,
		Class:    class,
		Life:     life,
		Strength: strength,
	})
	if err != nil {
		c.printLine(capitalize(err.Error()) + ".")
		return nil
	}
	c.printLine(fmt.Sprintf("%s the %s joins the party (%s).", ch.Name, ch.Class, ch.ID))
	return nil
}

func (c *CLI) newWeapon() error {
	name, err := ReadValidated(c.prompt, "Name: ", required)
	if err != nil {
		return err
	}
	damage, err := ReadValidated(c.prompt, "Damage: ", whole)
	if err != nil {
		return err
	}
	class, err := c.chooseClass()
	if err != nil {
		return err
	}
	effect, err := c.chooseEffect()
	if err != nil {
		return err
	}
	rarity, err := c.prompt.ReadLine("Rarity: ")
	if err != nil {
		return err
	}
	durability, err := ReadValidated(c.prompt, fmt.Sprintf("Durability [%d]: ", items.DefaultDurability), optionalWhole)
	if err != nil {
		return err
	}

	w, err := c.Game.CreateWeapon(items.WeaponSpec{
		Name:       name,
		Damage:     damage,
		Class:      class,
		Effect:     effect,
		Rarity:     rarity,
		Durability: valueOr(durability, 0),
	})
	if err != nil {
		c.printLine(capitalize(err.Error()) + ".")
		return nil
	}
	c.created(types.WeaponItem(w))
	return nil
}

func (c *CLI) newArmor() error {
	name, err := ReadValidated(c.prompt, "Name: ", required)
	if err != nil {
		return err
	}
	defense, err := ReadValidated(c.prompt, "Defense: ", whole)
	if err != nil {
		return err
	}
	rarity, err := c.prompt.ReadLine("Rarity: ")
	if err != nil {
		return err
	}
	durability, err := ReadValidated(c.prompt, fmt.Sprintf("Durability [%d]: ", items.DefaultDurability), optionalWhole)
	if err != nil {
		return err
	}

	a, err := c.Game.CreateArmor(items.ArmorSpec{
		Name:       name,
		Defense:    defense,
		Rarity:     rarity,
		Durability: valueOr(durability, 0),
	})
	if err != nil {
		c.printLine(capitalize(err.Error()) + ".")
		return nil
	}
	c.created(types.ArmorItem(a))
	return nil
}

func (c *CLI) newConsumable() error {
	name, err := ReadValidated(c.prompt, "Name: ", required)
	if err != nil {
		return err
	}
	life, err := ReadValidated(c.prompt, "Life change (+/-): ", signed)
	if err != nil {
		return err
	}
	effect, err := c.chooseEffect()
	if err != nil {
		return err
	}
	desc, err := c.prompt.ReadLine("Description: ")
	if err != nil {
		return err
	}

	cons, err := c.Game.CreateConsumable(items.ConsumableSpec{
		Name:        name,
		LifeDelta:   life,
		Effect:      effect,
		Description: desc,
	})
	if err != nil {
		c.printLine(capitalize(err.Error()) + ".")
		return nil
	}
	c.created(types.ConsumableItem(cons))
	return nil
}

func (c *CLI) created(it types.Item) {
	c.printLine(fmt.Sprintf("Created %s %s (%s).", strings.ToLower(it.Kind.String()), it.Name(), it.ID()))
}

func (c *CLI) chooseClass() (types.Class, error) {
	c.printLine("Class:")
	for i, cl := range types.Classes {
		c.printLine(fmt.Sprintf("  %d) %s", i+1, cl))
	}
	return ReadValidated(c.prompt, fmt.Sprintf("Choose 1-%d: ", len(types.Classes)), func(s string) (types.Class, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return character.ParseClass(s)
		}
		return character.ClassFromChoice(n)
	})
}

// chooseEffect returns the zero Effect when the answer is blank, leaving
// the item default in place.
func (c *CLI) chooseEffect() (types.Effect, error) {
	c.printLine("Effect:")
	for i, k := range items.EffectChoices {
		params := items.EffectParams(k)
		if len(params) == 0 {
			c.printLine(fmt.Sprintf("  %d) %s", i+1, k))
			continue
		}
		c.printLine(fmt.Sprintf("  %d) %s (%s)", i+1, k, strings.Join(params, ", ")))
	}

	for {
		kind, err := ReadValidated(c.prompt, "Choose effect [default]: ", func(s string) (types.EffectKind, error) {
			if s == "" {
				return "", nil
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return "", fmt.Errorf("%q is not a number", s)
			}
			return items.EffectKindFromChoice(n)
		})
		if err != nil || kind == "" {
			return types.Effect{}, err
		}

		var params []uint32
		for _, p := range items.EffectParams(kind) {
			n, err := ReadValidated(c.prompt, fmt.Sprintf("  %s: ", capitalize(p)), whole)
			if err != nil {
				return types.Effect{}, err
			}
			params = append(params, n)
		}
		eff, err := items.BuildEffect(kind, params...)
		if err == nil {
			return eff, nil
		}
		c.printLine(capitalize(err.Error()) + ".")
	}
}

func required(s string) (string, error) {
	if s == "" {
		return "", errors.New("a name is required")
	}
	return s, nil
}

func whole(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a non-negative whole number", s)
	}
	return uint32(n), nil
}

// optionalWhole returns nil for a blank answer.
func optionalWhole(s string) (*uint32, error) {
	if s == "" {
		return nil, nil
	}
	n, err := whole(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func signed(s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimPrefix(s, "+"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int32(n), nil
}

func valueOr(p *uint32, def uint32) uint32 {
	if p == nil {
		return def
	}
	return *p
}
