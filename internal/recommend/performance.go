// Package recommend merges similarity candidates, playgroup meta
// multipliers, and an optional performance model into one ranked list.
package recommend

import (
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
)

// DeckPerformance is one row of the supplied performance dataset: how a
// deck with the given themes and colors has fared.
type DeckPerformance struct {
	Themes []string `json:"themes"`
	Colors []string `json:"colors"`
	Wins   int      `json:"wins"`
	Games  int      `json:"games"`
}

// PerformanceModel holds mean win/game ratios grouped by theme and by
// color. Ratios are raw arithmetic means with no small-sample
// regularization; see DESIGN.md for the open question.
type PerformanceModel struct {
	byTheme map[string]float64
	byColor map[string]float64
}

// Boost bounds applied when performance data exists for a candidate.
const (
	minPerfBoost = 0.75
	maxPerfBoost = 1.5
)

// BuildPerformanceModel aggregates the dataset. Rows with zero games are
// skipped (soft data error).
func BuildPerformanceModel(records []DeckPerformance) *PerformanceModel {
	type sum struct {
		ratio float64
		n     int
	}
	themes := make(map[string]*sum)
	colors := make(map[string]*sum)

	for _, r := range records {
		if r.Games <= 0 {
			continue
		}
		ratio := float64(r.Wins) / float64(r.Games)
		for _, t := range r.Themes {
			key := strings.ToLower(t)
			if themes[key] == nil {
				themes[key] = &sum{}
			}
			themes[key].ratio += ratio
			themes[key].n++
		}
		for _, c := range r.Colors {
			key := strings.ToUpper(c)
			if colors[key] == nil {
				colors[key] = &sum{}
			}
			colors[key].ratio += ratio
			colors[key].n++
		}
	}

	m := &PerformanceModel{
		byTheme: make(map[string]float64, len(themes)),
		byColor: make(map[string]float64, len(colors)),
	}
	for k, s := range themes {
		m.byTheme[k] = s.ratio / float64(s.n)
	}
	for k, s := range colors {
		m.byColor[k] = s.ratio / float64(s.n)
	}
	return m
}

// ThemeRatio returns the mean win ratio for a theme and whether data exists.
func (m *PerformanceModel) ThemeRatio(theme string) (float64, bool) {
	r, ok := m.byTheme[strings.ToLower(theme)]
	return r, ok
}

// ColorRatio returns the mean win ratio for a color and whether data exists.
func (m *PerformanceModel) ColorRatio(color string) (float64, bool) {
	r, ok := m.byColor[strings.ToUpper(color)]
	return r, ok
}

// Boost converts performance data relevant to a candidate card into a
// multiplicative boost: the mean of the available ratios mapped onto
// [minPerfBoost, maxPerfBoost] around a neutral 1.0 at a 50% win rate.
// Candidates with no relevant data boost by exactly 1.0.
func (m *PerformanceModel) Boost(c deck.Card, deckThemes []string) float64 {
	if m == nil {
		return 1.0
	}
	total, n := 0.0, 0
	for _, color := range c.Colors {
		if r, ok := m.ColorRatio(color); ok {
			total += r
			n++
		}
	}
	for _, theme := range deckThemes {
		if r, ok := m.ThemeRatio(theme); ok {
			total += r
			n++
		}
	}
	if n == 0 {
		return 1.0
	}
	boost := 0.5 + total/float64(n)
	if boost < minPerfBoost {
		boost = minPerfBoost
	}
	if boost > maxPerfBoost {
		boost = maxPerfBoost
	}
	return boost
}
