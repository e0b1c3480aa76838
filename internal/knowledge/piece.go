// Package knowledge holds the static card-knowledge tables every analyzer
// reads: curated card lists, synergy partners, combo definitions, budget
// alternatives, and counter-tech suggestions. It is data plus small
// predicates; no analyzer re-declares its own card lists.
package knowledge

import (
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
)

// PieceKind discriminates the closed set of combo/synergy piece variants.
type PieceKind int

const (
	// PieceLiteral matches a card by exact (case-insensitive) name.
	PieceLiteral PieceKind = iota
	// PieceAnyOfType matches any card whose type line contains Type and,
	// when Text is set, whose oracle text contains Text.
	PieceAnyOfType
	// PieceAnyWithTag matches any card satisfying a registered tag predicate.
	PieceAnyWithTag
)

// Piece is one required element of a combo or synergy partner slot.
// Wildcards are resolved by predicates over the full card set, never by
// string sniffing at the call site.
type Piece struct {
	Kind PieceKind
	Name string // literal card name (PieceLiteral)
	Type string // type line fragment (PieceAnyOfType)
	Text string // oracle text fragment (PieceAnyOfType)
	Tag  string // tag name (PieceAnyWithTag)
}

// LiteralCard builds a literal-name piece.
func LiteralCard(name string) Piece {
	return Piece{Kind: PieceLiteral, Name: name}
}

// AnyOfType builds a type-line wildcard piece with an optional oracle-text hint.
func AnyOfType(typeLine, textHint string) Piece {
	return Piece{Kind: PieceAnyOfType, Type: typeLine, Text: textHint}
}

// AnyWithTag builds a tag-predicate wildcard piece.
func AnyWithTag(tag string) Piece {
	return Piece{Kind: PieceAnyWithTag, Tag: tag}
}

// IsLiteral reports whether the piece names one specific card.
func (p Piece) IsLiteral() bool {
	return p.Kind == PieceLiteral
}

// Matches reports whether a card satisfies the piece.
func (p Piece) Matches(c deck.Card) bool {
	switch p.Kind {
	case PieceLiteral:
		return strings.EqualFold(c.Name, p.Name)
	case PieceAnyOfType:
		if !strings.Contains(strings.ToLower(c.TypeLine), strings.ToLower(p.Type)) {
			return false
		}
		if p.Text == "" {
			return true
		}
		return strings.Contains(strings.ToLower(c.OracleText), strings.ToLower(p.Text))
	case PieceAnyWithTag:
		if pred, ok := tagPredicates[p.Tag]; ok {
			return pred(c)
		}
		// Tribal tags are parameterized: "tribal:zombie", "tribal:goblin", ...
		if tribe, ok := strings.CutPrefix(p.Tag, "tribal:"); ok {
			typeLine := strings.ToLower(c.TypeLine)
			return strings.Contains(typeLine, "creature") && strings.Contains(typeLine, tribe)
		}
		return false
	}
	return false
}

// String renders the piece for justification text.
func (p Piece) String() string {
	switch p.Kind {
	case PieceLiteral:
		return p.Name
	case PieceAnyOfType:
		if p.Text != "" {
			return "any " + p.Type + " with \"" + p.Text + "\""
		}
		return "any " + p.Type
	case PieceAnyWithTag:
		return "any " + strings.ReplaceAll(p.Tag, "_", " ")
	}
	return ""
}

// tagPredicates are the registered wildcard predicates. Tags not listed
// here (other than tribal:*) match nothing.
var tagPredicates = map[string]func(deck.Card) bool{
	"mana_rock": func(c deck.Card) bool {
		typeLine := strings.ToLower(c.TypeLine)
		oracle := strings.ToLower(c.OracleText)
		return strings.Contains(typeLine, "artifact") &&
			!strings.Contains(typeLine, "creature") &&
			strings.Contains(oracle, "add {")
	},
	"mana_dork": func(c deck.Card) bool {
		typeLine := strings.ToLower(c.TypeLine)
		oracle := strings.ToLower(c.OracleText)
		return strings.Contains(typeLine, "creature") && strings.Contains(oracle, "add {")
	},
	"sac_outlet": func(c deck.Card) bool {
		oracle := strings.ToLower(c.OracleText)
		return strings.Contains(oracle, "sacrifice a creature:") ||
			strings.Contains(oracle, "sacrifice another creature:")
	},
	"free_counter": func(c deck.Card) bool {
		oracle := strings.ToLower(c.OracleText)
		return strings.Contains(oracle, "counter target") &&
			(strings.Contains(oracle, "without paying its mana cost") ||
				strings.Contains(oracle, "rather than pay"))
	},
	"token_generator": func(c deck.Card) bool {
		oracle := strings.ToLower(c.OracleText)
		return strings.Contains(oracle, "create") && strings.Contains(oracle, "token")
	},
	"haste_enabler": func(c deck.Card) bool {
		oracle := strings.ToLower(c.OracleText)
		return strings.Contains(oracle, "haste") && strings.Contains(oracle, "creatures you control")
	},
}
