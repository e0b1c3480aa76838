// Package similarity ranks corpus decks by weighted feature similarity and
// aggregates neighbor decklists into card recommendation candidates.
package similarity

import (
	"math"
	"sort"
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
)

// Weights holds the sub-score weights. They must sum to 1.0 so the final
// score stays in [0, 1].
type Weights struct {
	ColorIdentity float64 `toml:"color_identity"`
	AvgCMC        float64 `toml:"avg_cmc"`
	TypeOverlap   float64 `toml:"type_overlap"`
	ThemeTags     float64 `toml:"theme_tags"`
	CardOverlap   float64 `toml:"card_overlap"`
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{
		ColorIdentity: 0.25,
		AvgCMC:        0.15,
		TypeOverlap:   0.20,
		ThemeTags:     0.25,
		CardOverlap:   0.15,
	}
}

// minSimilarity is the retention cutoff for neighbor results.
const minSimilarity = 0.3

// cmcSpread normalizes the average-CMC distance; decks more than five
// average mana apart share nothing on this axis.
const cmcSpread = 5.0

// Result is one ranked neighbor.
type Result struct {
	DeckName string  `json:"deck_name"`
	Score    float64 `json:"score"`
}

// CardCandidate is a card aggregated from the retained neighbor set,
// weighted by each contributing neighbor's similarity score.
type CardCandidate struct {
	Card    deck.Card `json:"card"`
	Score   float64   `json:"score"`
	Sources []string  `json:"sources"`
	Reasons []string  `json:"reasons"`
}

// Engine computes weighted deck similarity.
type Engine struct {
	weights Weights
}

// NewEngine builds an engine; zero-valued weights fall back to defaults.
func NewEngine(w Weights) *Engine {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &Engine{weights: w}
}

// Compare scores two feature vectors in [0, 1], rounded to three decimals.
// All sub-scores are symmetric, so Compare(a, b) == Compare(b, a).
func (e *Engine) Compare(a, b deck.FeatureVector) float64 {
	score := e.weights.ColorIdentity*jaccard(a.ColorIdentity, b.ColorIdentity) +
		e.weights.AvgCMC*cmcCloseness(a.AvgCMC, b.AvgCMC) +
		e.weights.TypeOverlap*typeOverlap(a.TypeCounts, b.TypeCounts) +
		e.weights.ThemeTags*jaccard(a.ThemeTags, b.ThemeTags) +
		e.weights.CardOverlap*jaccard(a.CardNames, b.CardNames)
	return math.Round(score*1000) / 1000
}

// Rank scores the target against every corpus deck, keeps entries scoring
// above the retention cutoff, and returns the top results.
func (e *Engine) Rank(target deck.Deck, corpus []deck.Deck, limit int) []Result {
	targetFV := deck.Extract(target)
	var results []Result
	for _, entry := range corpus {
		score := e.Compare(targetFV, deck.Extract(entry))
		if score > minSimilarity {
			results = append(results, Result{DeckName: entry.Name, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DeckName < results[j].DeckName
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SuggestCards aggregates card frequency across the retained neighbor set,
// weighted by each neighbor's similarity score. Cards already in the
// target deck and basic lands are excluded.
func (e *Engine) SuggestCards(target deck.Deck, corpus []deck.Deck, limit int) []CardCandidate {
	targetFV := deck.Extract(target)
	owned := target.NameSet()

	type accum struct {
		card    deck.Card
		weight  float64
		sources []string
	}
	byName := make(map[string]*accum)

	for _, entry := range corpus {
		score := e.Compare(targetFV, deck.Extract(entry))
		if score <= minSimilarity {
			continue
		}
		for _, ce := range entry.Cards {
			c := ce.Card
			key := strings.ToLower(c.Name)
			if owned[key] || c.IsBasicLand() || c.Name == "" {
				continue
			}
			a, ok := byName[key]
			if !ok {
				a = &accum{card: c}
				byName[key] = a
			}
			a.weight += score * float64(ce.Quantity)
			a.sources = append(a.sources, entry.Name)
		}
	}

	candidates := make([]CardCandidate, 0, len(byName))
	for _, a := range byName {
		sort.Strings(a.sources)
		candidates = append(candidates, CardCandidate{
			Card:    a.card,
			Score:   math.Round(a.weight*1000) / 1000,
			Sources: dedupe(a.sources),
			Reasons: []string{"Played in similar decks"},
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Card.Name < candidates[j].Card.Name
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// jaccard computes set overlap over string slices. Two empty sets are
// treated as identical so self-similarity stays 1.0.
func jaccard(a, b []string) float64 {
	setA := toLowerSet(a)
	setB := toLowerSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	intersection := 0
	union := len(setA)
	for s := range setB {
		if setA[s] {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

// toLowerSet folds a slice into a lowercased set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[strings.ToLower(s)] = true
	}
	return set
}

// cmcCloseness maps average-CMC distance onto [0, 1].
func cmcCloseness(a, b float64) float64 {
	return math.Max(0, 1-math.Abs(a-b)/cmcSpread)
}

// typeOverlap averages min/max count ratios over the union of types
// present in either histogram. Two empty histograms are identical.
func typeOverlap(a, b map[string]int) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	union := make(map[string]bool, len(a)+len(b))
	for t := range a {
		union[t] = true
	}
	for t := range b {
		union[t] = true
	}
	total := 0.0
	for t := range union {
		ca, cb := a[t], b[t]
		lo, hi := ca, cb
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi > 0 {
			total += float64(lo) / float64(hi)
		}
	}
	return total / float64(len(union))
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(sorted []string) []string {
	var out []string
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
