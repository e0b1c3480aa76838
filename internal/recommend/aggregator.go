package recommend

import (
	"math"
	"sort"

	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/meta"
	"github.com/cturner512/edh-advisor/internal/similarity"
)

// Recommendation is one final ranked candidate. Boost records the total
// multiplicative adjustment applied on top of the similarity base score.
type Recommendation struct {
	Card           deck.Card `json:"card"`
	Score          float64   `json:"score"`
	Boost          float64   `json:"boost"`
	Justifications []string  `json:"justifications,omitempty"`
	Sources        []string  `json:"sources,omitempty"`
}

// Aggregator merges the similarity engine's candidates with meta
// multipliers and the optional performance model.
type Aggregator struct {
	sim  *similarity.Engine
	perf *PerformanceModel
}

// NewAggregator builds an aggregator. perf may be nil, in which case no
// performance boost is applied.
func NewAggregator(sim *similarity.Engine, perf *PerformanceModel) *Aggregator {
	if sim == nil {
		sim = similarity.NewEngine(similarity.DefaultWeights())
	}
	return &Aggregator{sim: sim, perf: perf}
}

// Recommend produces the final ranked recommendation list for a deck.
// profile may be nil when no playgroup history exists.
func (a *Aggregator) Recommend(target deck.Deck, corpus []deck.Deck, profile *meta.Profile, limit int) []Recommendation {
	candidates := a.sim.SuggestCards(target, corpus, 0)
	themes := deck.Extract(target).ThemeTags

	out := make([]Recommendation, 0, len(candidates))
	for _, cand := range candidates {
		boost := 1.0
		justifications := append([]string(nil), cand.Reasons...)

		if profile != nil {
			mult, reasons := meta.Multiplier(cand.Card, *profile)
			boost *= mult
			justifications = append(justifications, reasons...)
		}
		if a.perf != nil {
			boost *= a.perf.Boost(cand.Card, themes)
		}

		out = append(out, Recommendation{
			Card:           cand.Card,
			Score:          math.Round(cand.Score*boost*1000) / 1000,
			Boost:          math.Round(boost*1000) / 1000,
			Justifications: justifications,
			Sources:        cand.Sources,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Card.Name < out[j].Card.Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
