// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching. Verbs are
// normalized to lower case; object and target keep the player's casing
// because item and character names are case-sensitive.
package parser

import (
	"strings"

	"github.com/nathoo/questrpg/types"
)

var verbAliases = map[string]string{
	// Examine
	"x":        "examine",
	"l":        "examine",
	"look":     "examine",
	"inspect":  "examine",
	"check":    "examine",
	"describe": "examine",
	"show":     "examine",

	// Equip
	"wield": "equip",
	"wear":  "equip",
	"don":   "equip",
	"arm":   "equip",
	"ready": "equip",

	// Use
	"drink":   "use",
	"eat":     "use",
	"quaff":   "use",
	"consume": "use",
	"sip":     "use",
	"swallow": "use",
	"apply":   "use",

	// Give
	"offer": "give",
	"hand":  "give",
	"grant": "give",

	// Listing
	"inv":       "inventory",
	"i":         "inventory",
	"party":     "characters",
	"chars":     "characters",
	"roster":    "characters",
	"heroes":    "characters",
	"items":     "catalog",
	"armory":    "catalog",
	"armoury":   "catalog",
	"shop":      "catalog",
	"catalogue": "catalog",

	// Creation
	"create": "new",
	"make":   "new",
	"forge":  "new",

	"?": "help",
}

var prepositions = map[string]bool{
	"on": true, "to": true, "for": true,
	"with": true, "in": true, "from": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(input)

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	verb := strings.ToLower(words[0])
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	rest := words[1:]

	// "new" keeps every word; ParseForm reads the rest.
	if verb == "new" {
		return types.Intent{Verb: verb, Object: strings.Join(rest, " ")}
	}

	// Strip articles ("the", "a", "an").
	rest = stripArticles(rest)

	// Use the first preposition as a delimiter between object and target.
	object, target := splitOnPreposition(rest)

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

// expandMultiWordVerbs handles "look at", "put on", "hand over" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	second := strings.ToLower(words[1])
	switch strings.ToLower(words[0]) {
	case "look":
		if second == "at" || second == "in" {
			return append([]string{"examine"}, words[2:]...)
		}
	case "put", "strap":
		if second == "on" {
			return append([]string{"equip"}, words[2:]...)
		}
	case "hand", "pass":
		if second == "over" {
			return append([]string{"give"}, words[2:]...)
		}
	case "list":
		switch second {
		case "characters", "party":
			return append([]string{"characters"}, words[2:]...)
		case "items", "catalog":
			return append([]string{"catalog"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[strings.ToLower(w)] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[strings.ToLower(w)] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}
