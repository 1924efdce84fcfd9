// Package resolve maps the names in parsed intents to items and characters.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/questrpg/engine/character"
	"github.com/nathoo/questrpg/types"
)

// Source says where a resolved item was found.
type Source int

const (
	FromInventory Source = iota + 1
	FromCatalog
)

// AmbiguityError indicates several differently named things matched a
// partial name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates nothing matched a name. It unwraps to
// types.ErrItemNotFound or types.ErrCharacterNotFound.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	if errors.Is(e.Err, types.ErrCharacterNotFound) {
		return fmt.Sprintf("there is no one called %q", e.Name)
	}
	return fmt.Sprintf("there is no item called %q", e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Item finds name in the owner's inventory first, then in the catalog.
// owner may be nil. catalog must be in insertion order: among equal
// names the first one wins.
func Item(name string, owner *types.Character, catalog []types.Item) (types.Item, Source, error) {
	if owner != nil {
		inv := character.Items(owner)
		it, err := pick(name, inv, itemName, itemID)
		if err == nil {
			return it, FromInventory, nil
		}
		if !isNotFound(err) {
			return types.Item{}, 0, err
		}
	}
	it, err := pick(name, catalog, itemName, itemID)
	if err != nil {
		if isNotFound(err) {
			return types.Item{}, 0, &NotFoundError{Name: name, Err: types.ErrItemNotFound}
		}
		return types.Item{}, 0, err
	}
	return it, FromCatalog, nil
}

// Character finds name among chars.
func Character(name string, chars []*types.Character) (*types.Character, error) {
	c, err := pick(name, chars, characterName, characterID)
	if err != nil {
		if isNotFound(err) {
			return nil, &NotFoundError{Name: name, Err: types.ErrCharacterNotFound}
		}
		return nil, err
	}
	return c, nil
}

func itemName(it types.Item) string { return it.Name() }

func itemID(it types.Item) uuid.UUID { return it.ID() }

func characterName(c *types.Character) string { return c.Name }

func characterID(c *types.Character) uuid.UUID { return c.ID }

var errNoMatch = errors.New("no match")

func isNotFound(err error) bool { return errors.Is(err, errNoMatch) }

// pick matches, in order: exact id, exact name, case-insensitive name,
// then a single word of the name. The first three take the first hit;
// word matches with more than one distinct name are ambiguous.
func pick[T any](name string, candidates []T, nameOf func(T) string, idOf func(T) uuid.UUID) (T, error) {
	var zero T
	name = strings.TrimSpace(name)
	if name == "" {
		return zero, errNoMatch
	}

	if id, err := uuid.Parse(name); err == nil {
		for _, c := range candidates {
			if idOf(c) == id {
				return c, nil
			}
		}
		return zero, errNoMatch
	}

	for _, c := range candidates {
		if nameOf(c) == name {
			return c, nil
		}
	}
	for _, c := range candidates {
		if strings.EqualFold(nameOf(c), name) {
			return c, nil
		}
	}

	// Word-based partial match: "sword" matches "Iron Sword".
	var (
		matches []T
		names   []string
	)
	for _, c := range candidates {
		for _, word := range strings.Fields(nameOf(c)) {
			if strings.EqualFold(word, name) {
				if !containsStr(names, nameOf(c)) {
					names = append(names, nameOf(c))
				}
				matches = append(matches, c)
				break
			}
		}
	}

	switch len(names) {
	case 0:
		return zero, errNoMatch
	case 1:
		return matches[0], nil
	default:
		return zero, &AmbiguityError{Name: name, Candidates: names}
	}
}

func containsStr(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
