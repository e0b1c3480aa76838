// Package synergy detects card synergies and multi-card combo patterns in
// a decklist using the static knowledge catalog.
package synergy

import (
	"math"
	"sort"
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/knowledge"
)

// Pair is a detected two-card synergy.
type Pair struct {
	CardA  string `json:"card_a"`
	CardB  string `json:"card_b"`
	Reason string `json:"reason"`
}

// ComboMatch is a combo whose every required piece is present in the deck.
// Pieces holds the resolved deck card names: wildcard pieces report the
// actual card that satisfied them.
type ComboMatch struct {
	MainCard string              `json:"main_card"`
	Pieces   []string            `json:"pieces"`
	Effect   string              `json:"effect"`
	Kind     knowledge.ComboKind `json:"type"`
}

// PartnerSuggestion is a catalogued partner the deck does not yet own,
// ranked by how many deck cards reference it.
type PartnerSuggestion struct {
	Card    string   `json:"card"`
	Weight  int      `json:"weight"`
	Sources []string `json:"sources"`
}

// DetectPairs returns the synergy pairs formed by catalogued literal
// partners present in the deck. Pairs are deduplicated and ordered
// alphabetically within and across pairs.
func DetectPairs(d deck.Deck) []Pair {
	names := d.NameSet()
	seen := make(map[string]bool)
	var pairs []Pair

	for _, c := range d.AllCards() {
		rec, ok := knowledge.Lookup(c.Name)
		if !ok {
			continue
		}
		for _, partner := range rec.Partners {
			if !partner.IsLiteral() {
				continue
			}
			if !names[strings.ToLower(partner.Name)] {
				continue
			}
			a, b := c.Name, partner.Name
			if strings.ToLower(a) > strings.ToLower(b) {
				a, b = b, a
			}
			key := strings.ToLower(a) + "|" + strings.ToLower(b)
			if key == "" || seen[key] || strings.EqualFold(a, b) {
				continue
			}
			seen[key] = true
			pairs = append(pairs, Pair{CardA: a, CardB: b, Reason: "Catalogued synergy partners"})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].CardA != pairs[j].CardA {
			return pairs[i].CardA < pairs[j].CardA
		}
		return pairs[i].CardB < pairs[j].CardB
	})
	return pairs
}

// Score converts the pair count into a 0-10 deck synergy score:
// min(10, round(pairs / max(1, deckSize) * 20)).
func Score(d deck.Deck) int {
	pairs := len(DetectPairs(d))
	size := d.Size()
	if size < 1 {
		size = 1
	}
	score := int(math.Round(float64(pairs) / float64(size) * 20))
	if score > 10 {
		score = 10
	}
	return score
}

// DetectCombos returns every catalogued combo whose pieces are all
// satisfied by the deck. Literal pieces are checked against the name set;
// wildcard pieces are resolved by scanning the full card set.
func DetectCombos(d deck.Deck) []ComboMatch {
	names := d.NameSet()
	all := d.AllCards()
	var matches []ComboMatch

	for _, c := range all {
		rec, ok := knowledge.Lookup(c.Name)
		if !ok {
			continue
		}
		for _, combo := range rec.Combos {
			resolved, ok := resolvePieces(combo.Pieces, c.Name, names, all)
			if !ok {
				continue
			}
			matches = append(matches, ComboMatch{
				MainCard: c.Name,
				Pieces:   resolved,
				Effect:   combo.Effect,
				Kind:     combo.Kind,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MainCard != matches[j].MainCard {
			return matches[i].MainCard < matches[j].MainCard
		}
		return strings.Join(matches[i].Pieces, ",") < strings.Join(matches[j].Pieces, ",")
	})
	return matches
}

// DetectInfiniteCombos returns the combos that end the game outright:
// unbounded loops and alternate-win lines. Finite locks are excluded.
func DetectInfiniteCombos(d deck.Deck) []ComboMatch {
	var out []ComboMatch
	for _, m := range DetectCombos(d) {
		if m.Kind != knowledge.ComboFinite {
			out = append(out, m)
		}
	}
	return out
}

// resolvePieces checks every piece of a combo against the deck. The main
// card itself cannot satisfy a wildcard slot.
func resolvePieces(pieces []knowledge.Piece, mainCard string, names map[string]bool, all []deck.Card) ([]string, bool) {
	resolved := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p.IsLiteral() {
			if !names[strings.ToLower(p.Name)] {
				return nil, false
			}
			resolved = append(resolved, p.Name)
			continue
		}
		found := ""
		for _, c := range all {
			if strings.EqualFold(c.Name, mainCard) {
				continue
			}
			if p.Matches(c) {
				found = c.Name
				break
			}
		}
		if found == "" {
			return nil, false
		}
		resolved = append(resolved, found)
	}
	return resolved, true
}

// SuggestPartners inverts the catalog: for every card in the deck, its
// literal partners not yet owned are proposed, ranked by how many deck
// cards reference them.
func SuggestPartners(d deck.Deck, limit int) []PartnerSuggestion {
	names := d.NameSet()
	weights := make(map[string]int)
	sources := make(map[string][]string)
	display := make(map[string]string)

	for _, c := range d.AllCards() {
		rec, ok := knowledge.Lookup(c.Name)
		if !ok {
			continue
		}
		for _, partner := range rec.Partners {
			if !partner.IsLiteral() {
				continue
			}
			key := strings.ToLower(partner.Name)
			if names[key] {
				continue
			}
			weights[key]++
			display[key] = partner.Name
			sources[key] = append(sources[key], c.Name)
		}
	}

	suggestions := make([]PartnerSuggestion, 0, len(weights))
	for key, w := range weights {
		srcs := sources[key]
		sort.Strings(srcs)
		suggestions = append(suggestions, PartnerSuggestion{
			Card:    display[key],
			Weight:  w,
			Sources: srcs,
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Weight != suggestions[j].Weight {
			return suggestions[i].Weight > suggestions[j].Weight
		}
		return suggestions[i].Card < suggestions[j].Card
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
