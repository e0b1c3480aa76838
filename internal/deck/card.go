// Package deck defines the card and deck value types shared by every
// analyzer, along with the deck feature extractor.
package deck

import (
	"sort"
	"strings"
)

// Card represents the minimal card data the engine works with. Prices and
// oracle text come from upstream card data sources and may be missing;
// zero values are treated as "unknown" rather than errors.
type Card struct {
	Name       string   `json:"name"`
	Colors     []string `json:"colors"`
	CMC        float64  `json:"cmc"`
	TypeLine   string   `json:"type_line"`
	OracleText string   `json:"oracle_text,omitempty"`
	Price      float64  `json:"price,omitempty"`
}

// Entry is a card together with how many copies the deck runs.
type Entry struct {
	Card     Card `json:"card"`
	Quantity int  `json:"quantity"`
}

// Deck is an ordered decklist with an optional commander and an optional
// declared archetype tag (aggro, control, combo, midrange, ...).
type Deck struct {
	Name      string  `json:"name"`
	Commander *Card   `json:"commander,omitempty"`
	Archetype string  `json:"archetype,omitempty"`
	Cards     []Entry `json:"cards"`
}

// basicLands are the basic land names (including Wastes and snow variants).
// Basic lands are excluded from card-overlap comparisons and contribute no
// color identity.
var basicLands = map[string]bool{
	"plains":               true,
	"island":               true,
	"swamp":                true,
	"mountain":             true,
	"forest":               true,
	"wastes":               true,
	"snow-covered plains":   true,
	"snow-covered island":   true,
	"snow-covered swamp":    true,
	"snow-covered mountain": true,
	"snow-covered forest":   true,
	"snow-covered wastes":   true,
}

// colorOrder is the canonical WUBRG ordering used for identity strings.
var colorOrder = []string{"W", "U", "B", "R", "G"}

// IsLand reports whether the card's type line contains the Land type.
func (c Card) IsLand() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "land")
}

// IsBasicLand reports whether the card is a basic land.
func (c Card) IsBasicLand() bool {
	return basicLands[strings.ToLower(c.Name)]
}

// PrimaryType returns the card's primary type token: the last
// whitespace-delimited word of the type line segment before the dash.
// "Legendary Creature — Zombie Wizard" yields "Creature".
func (c Card) PrimaryType() string {
	line := c.TypeLine
	if idx := strings.IndexAny(line, "—–"); idx >= 0 {
		line = line[:idx]
	} else if idx := strings.Index(line, " - "); idx >= 0 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// oracleLower returns the lowercased oracle text for substring heuristics.
func (c Card) oracleLower() string {
	return strings.ToLower(c.OracleText)
}

// Size returns the total number of cards including quantities.
func (d Deck) Size() int {
	total := 0
	for _, e := range d.Cards {
		total += e.Quantity
	}
	return total
}

// NameSet returns the set of lowercased card names in the deck.
// The commander is included when present.
func (d Deck) NameSet() map[string]bool {
	names := make(map[string]bool, len(d.Cards)+1)
	for _, e := range d.Cards {
		names[strings.ToLower(e.Card.Name)] = true
	}
	if d.Commander != nil {
		names[strings.ToLower(d.Commander.Name)] = true
	}
	return names
}

// AllCards returns every card in the deck, commander included, one element
// per distinct card (quantities are not expanded).
func (d Deck) AllCards() []Card {
	out := make([]Card, 0, len(d.Cards)+1)
	for _, e := range d.Cards {
		out = append(out, e.Card)
	}
	if d.Commander != nil {
		out = append(out, *d.Commander)
	}
	return out
}

// ColorIdentity returns the union of the commander's colors and all
// non-basic-land cards' colors, in WUBRG order. Basic lands contribute no
// identity under singleton deck-building rules.
func (d Deck) ColorIdentity() []string {
	present := make(map[string]bool)
	if d.Commander != nil {
		for _, c := range d.Commander.Colors {
			present[strings.ToUpper(c)] = true
		}
	}
	for _, e := range d.Cards {
		if e.Card.IsBasicLand() {
			continue
		}
		for _, c := range e.Card.Colors {
			present[strings.ToUpper(c)] = true
		}
	}

	var identity []string
	for _, c := range colorOrder {
		if present[c] {
			identity = append(identity, c)
		}
	}
	return identity
}

// AverageCMC returns the mean converted mana cost over non-land cards,
// weighted by quantity. Returns 0 for a deck with no non-land cards.
func (d Deck) AverageCMC() float64 {
	total := 0.0
	count := 0
	for _, e := range d.Cards {
		if e.Card.IsLand() {
			continue
		}
		total += e.Card.CMC * float64(e.Quantity)
		count += e.Quantity
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// SortedNames returns the deck's unique card names sorted alphabetically,
// excluding basic lands. Useful for deterministic output.
func (d Deck) SortedNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, e := range d.Cards {
		if e.Card.IsBasicLand() {
			continue
		}
		key := strings.ToLower(e.Card.Name)
		if !seen[key] {
			seen[key] = true
			names = append(names, e.Card.Name)
		}
	}
	sort.Strings(names)
	return names
}
