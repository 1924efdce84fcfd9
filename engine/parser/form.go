package parser

import (
	"fmt"
	"strings"

	"github.com/nathoo/questrpg/types"
)

// Form is the parsed body of a "new" command:
//
//	new weapon Iron Sword damage=12 class=Warrior effect=burn:5:3
//	new consumable Revive life=50 description="Back on your feet."
//
// Bare words after the kind make up the name; key=value words are fields.
// Keys are lower-cased, values keep their casing.
type Form struct {
	Kind   string
	Name   string
	Fields map[string]string
}

// Has reports whether key was supplied.
func (f Form) Has(key string) bool {
	_, ok := f.Fields[key]
	return ok
}

// ParseForm reads the text following "new".
func ParseForm(s string) (Form, error) {
	tokens, err := Tokenize(s)
	if err != nil {
		return Form{}, err
	}
	if len(tokens) == 0 {
		return Form{}, fmt.Errorf("%w: new what? (character, weapon, armor, consumable)", types.ErrInvalidInput)
	}

	f := Form{Kind: strings.ToLower(tokens[0]), Fields: map[string]string{}}
	var name []string
	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			name = append(name, tok)
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return Form{}, fmt.Errorf("%w: field %q has no name", types.ErrInvalidInput, tok)
		}
		if _, dup := f.Fields[key]; dup {
			return Form{}, fmt.Errorf("%w: field %q given twice", types.ErrInvalidInput, key)
		}
		f.Fields[key] = value
	}
	f.Name = strings.Join(name, " ")
	return f, nil
}

// Tokenize splits s on whitespace. Double quotes group words, including
// inside a key=value token, and are removed from the result.
func Tokenize(s string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			if started {
				tokens = append(tokens, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote", types.ErrInvalidInput)
	}
	if started {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
