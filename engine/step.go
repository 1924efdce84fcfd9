package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nathoo/questrpg/engine/character"
	"github.com/nathoo/questrpg/engine/items"
	"github.com/nathoo/questrpg/engine/parser"
	"github.com/nathoo/questrpg/engine/resolve"
	"github.com/nathoo/questrpg/types"
)

// Event types emitted by Step.
const (
	EventCharacterCreated = "character_created"
	EventItemCreated      = "item_created"
	EventItemApplied      = "item_applied"
	EventItemGiven        = "item_given"
)

// HelpLines describes the game commands.
func HelpLines() []string {
	return []string{
		"Game commands:",
		"  characters (party)               List the party",
		"  catalog (items)                  List every known item",
		"  examine <thing> (x)              Describe a character or item",
		"  examine <item> in <character>    Describe an item someone carries",
		"  inventory <character> (i)        List what a character carries",
		"  equip <item> on <character>      Equip a weapon or armor (wield, wear)",
		"  use <item> on <character>        Use a consumable (drink, eat)",
		"  give <item> to <character>       Put a copy of an item in an inventory",
		"  outfit <character>               Put the default armor on",
		"  " + usages["character"],
		"  " + usages["weapon"],
		"  " + usages["armor"],
		"  " + usages["consumable"],
		"  Effects: physical, freeze, burn:<damage>:<rounds>, poison:<percent>,",
		"           shock:<damage>:<chance>, bleed:<damage>:<chance>, weaken:<percent>, heal:<points>",
	}
}

// Step processes one player command and returns the result.
func (g *Game) Step(input string) types.Result {
	intent := parser.Parse(input)

	switch intent.Verb {
	case "":
		return say("What do you want to do?")
	case "help":
		return say(HelpLines()...)
	case "characters":
		return g.stepCharacters()
	case "catalog":
		return g.stepCatalog()
	case "examine":
		return g.stepExamine(intent)
	case "inventory":
		return g.stepInventory(intent)
	case "equip", "use":
		return g.stepApply(intent)
	case "give":
		return g.stepGive(intent)
	case "outfit":
		return g.stepOutfit(intent)
	case "new":
		return g.stepNew(intent)
	default:
		return say(fmt.Sprintf("I don't know how to %q. Type \"help\" for a list of commands.", intent.Verb))
	}
}

func (g *Game) stepCharacters() types.Result {
	party := g.party()
	if len(party) == 0 {
		return say("No characters yet. Create one with: " + usages["character"])
	}
	var r types.Result
	for _, c := range party {
		line := fmt.Sprintf("%s - %s, level %d, life %d, weapon %s, armor %s",
			c.Name, c.Class, c.Level, c.Life, c.Weapon.Name, c.Armor.Name)
		if !character.Alive(c) {
			line += " (dead)"
		}
		r.Output = append(r.Output, line)
	}
	return r
}

func (g *Game) stepCatalog() types.Result {
	if len(g.order) == 0 {
		return say("The catalog is empty.")
	}
	r := say("Catalog:")
	for _, id := range g.order {
		r.Output = append(r.Output, "  "+items.Summary(g.catalog[id]))
	}
	return r
}

func (g *Game) stepExamine(intent types.Intent) types.Result {
	if intent.Object == "" {
		return say("Examine what?")
	}

	// "examine <item> in <character>" looks only in that inventory.
	if intent.Target != "" {
		c, err := resolve.Character(intent.Target, g.party())
		if err != nil {
			return fail(err)
		}
		it, _, err := resolve.Item(intent.Object, c, nil)
		if err != nil {
			if errors.Is(err, types.ErrItemNotFound) {
				return say(fmt.Sprintf("%s is not carrying %q.", c.Name, intent.Object))
			}
			return fail(err)
		}
		return say(lines(items.Describe(it))...)
	}

	c, cerr := resolve.Character(intent.Object, g.party())
	if cerr == nil {
		return say(lines(character.Sheet(c))...)
	}
	it, _, ierr := resolve.Item(intent.Object, nil, g.Catalog())
	if ierr == nil {
		return say(lines(items.Describe(it))...)
	}

	var amb *resolve.AmbiguityError
	switch {
	case errors.As(cerr, &amb), errors.As(ierr, &amb):
		return fail(amb)
	default:
		return say(fmt.Sprintf("There is nothing called %q.", intent.Object))
	}
}

func (g *Game) stepInventory(intent types.Intent) types.Result {
	if intent.Object == "" {
		return say("Whose inventory? (inventory <character>)")
	}
	c, err := resolve.Character(intent.Object, g.party())
	if err != nil {
		return fail(err)
	}
	inv := character.Items(c)
	if len(inv) == 0 {
		return say(c.Name + " is carrying nothing.")
	}
	r := say(c.Name + " is carrying:")
	for _, it := range inv {
		r.Output = append(r.Output, "  "+items.Summary(it))
	}
	return r
}

func (g *Game) stepApply(intent types.Intent) types.Result {
	verb := intent.Verb
	if intent.Object == "" {
		return say(capitalize(verb) + " what?")
	}
	if intent.Target == "" {
		return say(fmt.Sprintf("%s %s on whom? (%s <item> on <character>)", capitalize(verb), intent.Object, verb))
	}

	c, err := resolve.Character(intent.Target, g.party())
	if err != nil {
		return fail(err)
	}
	it, src, err := resolve.Item(intent.Object, c, g.Catalog())
	if err != nil {
		return fail(err)
	}

	isConsumable := it.Kind == types.KindConsumable
	if verb == "equip" && isConsumable {
		return say(fmt.Sprintf("%s is not something to equip. Try \"use %s on %s\".", it.Name(), it.Name(), c.Name))
	}
	if verb == "use" && !isConsumable {
		return say(fmt.Sprintf("%s is not something to use. Try \"equip %s on %s\".", it.Name(), it.Name(), c.Name))
	}

	lifeBefore := c.Life
	if src == resolve.FromInventory {
		_, err = g.ApplyFromInventory(c.ID, it.ID())
	} else {
		_, err = g.ApplyFromCatalog(c.ID, it.ID())
	}
	if err != nil {
		return say(applyFailure(c, it, err))
	}

	r := say(applySuccess(c, it, lifeBefore))
	r.Events = append(r.Events, types.Event{
		Type: EventItemApplied,
		Data: map[string]any{"character": c.ID.String(), "item": it.ID().String(), "kind": it.Kind.String()},
	})
	return r
}

func (g *Game) stepGive(intent types.Intent) types.Result {
	if intent.Object == "" {
		return say("Give what?")
	}
	if intent.Target == "" {
		return say(fmt.Sprintf("Give %s to whom? (give <item> to <character>)", intent.Object))
	}
	c, err := resolve.Character(intent.Target, g.party())
	if err != nil {
		return fail(err)
	}
	it, _, err := resolve.Item(intent.Object, nil, g.Catalog())
	if err != nil {
		return fail(err)
	}
	if err := g.GiveItem(c.ID, it.ID()); err != nil {
		return say(applyFailure(c, it, err))
	}
	r := say(fmt.Sprintf("%s receives %s.", c.Name, it.Name()))
	r.Events = append(r.Events, types.Event{
		Type: EventItemGiven,
		Data: map[string]any{"character": c.ID.String(), "item": it.ID().String()},
	})
	return r
}

func (g *Game) stepOutfit(intent types.Intent) types.Result {
	if intent.Object == "" {
		return say("Outfit whom? (outfit <character>)")
	}
	c, err := resolve.Character(intent.Object, g.party())
	if err != nil {
		return fail(err)
	}
	armor := types.ArmorItem(g.DefaultArmor())
	if _, err := g.Outfit(c.ID); err != nil {
		return say(applyFailure(c, armor, err))
	}
	r := say(applySuccess(c, armor, c.Life))
	r.Events = append(r.Events, types.Event{
		Type: EventItemApplied,
		Data: map[string]any{"character": c.ID.String(), "item": armor.ID().String(), "kind": armor.Kind.String()},
	})
	return r
}

func (g *Game) stepNew(intent types.Intent) types.Result {
	f, err := parser.ParseForm(intent.Object)
	if err != nil {
		return fail(err)
	}
	kind, ok := NewKind(f.Kind)
	if !ok {
		return say(fmt.Sprintf("Cannot create a %q.", f.Kind), NewUsage(""))
	}
	f.Kind = kind
	if f.Name == "" {
		return say(NewUsage(kind))
	}

	var (
		id   string
		name string
	)
	switch kind {
	case "character":
		spec, err := characterSpec(f)
		if err != nil {
			return fail(err)
		}
		c, err := g.CreateCharacter(spec)
		if err != nil {
			return fail(err)
		}
		r := say(fmt.Sprintf("%s the %s joins the party (%s).", c.Name, c.Class, c.ID))
		r.Events = append(r.Events, types.Event{
			Type: EventCharacterCreated,
			Data: map[string]any{"character": c.ID.String(), "class": string(c.Class)},
		})
		return r
	case "weapon":
		spec, err := weaponSpec(f)
		if err != nil {
			return fail(err)
		}
		w, err := g.CreateWeapon(spec)
		if err != nil {
			return fail(err)
		}
		id, name = w.ID.String(), w.Name
	case "armor":
		spec, err := armorSpec(f)
		if err != nil {
			return fail(err)
		}
		a, err := g.CreateArmor(spec)
		if err != nil {
			return fail(err)
		}
		id, name = a.ID.String(), a.Name
	case "consumable":
		spec, err := consumableSpec(f)
		if err != nil {
			return fail(err)
		}
		c, err := g.CreateConsumable(spec)
		if err != nil {
			return fail(err)
		}
		id, name = c.ID.String(), c.Name
	}

	r := say(fmt.Sprintf("Created %s %s (%s).", kind, name, id))
	r.Events = append(r.Events, types.Event{
		Type: EventItemCreated,
		Data: map[string]any{"item": id, "kind": kind},
	})
	return r
}

func applySuccess(c *types.Character, it types.Item, lifeBefore uint32) string {
	switch it.Kind {
	case types.KindWeapon:
		return fmt.Sprintf("%s wields %s.", c.Name, it.Name())
	case types.KindArmor:
		return fmt.Sprintf("%s puts on %s. Defense is now %d.", c.Name, it.Name(), c.Defense)
	case types.KindConsumable:
		if lifeBefore == 0 && c.Life > 0 {
			return fmt.Sprintf("%s is revived with %d life.", c.Name, c.Life)
		}
		msg := fmt.Sprintf("%s uses %s. Life is now %d.", c.Name, it.Name(), c.Life)
		if c.Life == 0 {
			msg += " " + c.Name + " falls."
		}
		return msg
	}
	panic(fmt.Sprintf("engine: apply unknown kind %v", it.Kind))
}

func applyFailure(c *types.Character, it types.Item, err error) string {
	switch {
	case errors.Is(err, types.ErrAlreadyOwned):
		return fmt.Sprintf("%s already carries %s.", c.Name, it.Name())
	case errors.Is(err, types.ErrAlreadyInUse):
		return fmt.Sprintf("%s already has %s equipped.", c.Name, it.Name())
	case errors.Is(err, types.ErrNotUsable):
		return fmt.Sprintf("%s is dead. Only a %s can help now.", c.Name, types.ReviveName)
	case errors.Is(err, types.ErrIncompatibleWeapon):
		return fmt.Sprintf("%s is a %s and cannot wield %s, which is made for a %s.",
			c.Name, c.Class, it.Name(), it.Weapon.Class)
	default:
		return sentence(err.Error())
	}
}

// say builds a result from output lines.
func say(out ...string) types.Result {
	return types.Result{Output: out}
}

func fail(err error) types.Result {
	return say(sentence(err.Error()))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// sentence upper-cases the first letter and ends s with a full stop.
func sentence(s string) string {
	if s == "" {
		return s
	}
	s = capitalize(s)
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "?") && !strings.HasSuffix(s, ")") {
		s += "."
	}
	return s
}

func lines(s string) []string {
	return strings.Split(s, "\n")
}
