package recommend

import (
	"testing"

	"github.com/cturner512/edh-advisor/internal/deck"
)

func TestBuildPerformanceModel(t *testing.T) {
	m := BuildPerformanceModel([]DeckPerformance{
		{Themes: []string{"tribal-zombie"}, Colors: []string{"B"}, Wins: 6, Games: 10},
		{Themes: []string{"Tribal-Zombie"}, Colors: []string{"U"}, Wins: 2, Games: 10},
		{Themes: []string{"spellslinger"}, Colors: []string{"U"}, Wins: 0, Games: 0}, // skipped
	})

	if r, ok := m.ThemeRatio("TRIBAL-ZOMBIE"); !ok || r != 0.4 {
		t.Errorf("ThemeRatio = %v, %v; want mean 0.4", r, ok)
	}
	if r, ok := m.ColorRatio("b"); !ok || r != 0.6 {
		t.Errorf("ColorRatio = %v, %v; want 0.6", r, ok)
	}
	if _, ok := m.ThemeRatio("spellslinger"); ok {
		t.Error("zero-game row should be skipped")
	}
}

func TestBoost(t *testing.T) {
	m := BuildPerformanceModel([]DeckPerformance{
		{Colors: []string{"B"}, Wins: 6, Games: 10},
		{Colors: []string{"G"}, Wins: 10, Games: 10},
		{Colors: []string{"W"}, Wins: 0, Games: 10},
	})

	if got := m.Boost(deck.Card{Colors: []string{"B"}}, nil); got != 1.1 {
		t.Errorf("Boost(B) = %v, want 0.5 + 0.6", got)
	}
	if got := m.Boost(deck.Card{Colors: []string{"G"}}, nil); got != 1.5 {
		t.Errorf("Boost(G) = %v, want capped at 1.5", got)
	}
	if got := m.Boost(deck.Card{Colors: []string{"W"}}, nil); got != 0.75 {
		t.Errorf("Boost(W) = %v, want clamped to 0.75", got)
	}
	if got := m.Boost(deck.Card{Colors: []string{"R"}}, nil); got != 1.0 {
		t.Errorf("Boost with no data = %v, want neutral 1.0", got)
	}

	var nilModel *PerformanceModel
	if got := nilModel.Boost(deck.Card{Colors: []string{"B"}}, nil); got != 1.0 {
		t.Errorf("nil model Boost = %v, want 1.0", got)
	}
}
