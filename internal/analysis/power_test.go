package analysis

import (
	"testing"

	"github.com/cturner512/edh-advisor/internal/deck"
)

// focusedDeck carries one fast mana source, one tutor, six interaction
// pieces, a basics-only mana base, no combo pieces, and an average CMC just
// over 4.0.
func focusedDeck() deck.Deck {
	return deck.Deck{Cards: []deck.Entry{
		{Card: deck.Card{Name: "Sol Ring", CMC: 1, TypeLine: "Artifact"}, Quantity: 1},
		{Card: deck.Card{Name: "Demonic Tutor", CMC: 2, TypeLine: "Sorcery"}, Quantity: 1},
		{Card: deck.Card{Name: "Swords to Plowshares", CMC: 1, TypeLine: "Instant"}, Quantity: 6},
		{Card: deck.Card{Name: "Ancient Brass Dragon", CMC: 7, TypeLine: "Creature — Dragon"}, Quantity: 8},
		{Card: deck.Card{Name: "Mountain", TypeLine: "Basic Land — Mountain"}, Quantity: 10},
	}}
}

func TestAssessPowerFocusedDeck(t *testing.T) {
	a := AssessPower(focusedDeck())

	if a.FastMana != 1 {
		t.Errorf("FastMana = %d, want 1", a.FastMana)
	}
	if a.Tutors != 1 {
		t.Errorf("Tutors = %d, want 1", a.Tutors)
	}
	if a.Interaction != 6 {
		t.Errorf("Interaction = %d, want 6", a.Interaction)
	}
	if a.ComboPieces != 0 {
		t.Errorf("ComboPieces = %d, want 0", a.ComboPieces)
	}
	if a.ManaBaseTier != 1 {
		t.Errorf("ManaBaseTier = %d, want 1", a.ManaBaseTier)
	}
	if a.Score != 4 {
		t.Errorf("Score = %d, want 4", a.Score)
	}
	if a.Tier != "focused" {
		t.Errorf("Tier = %q, want focused", a.Tier)
	}
	if a.Confidence != "low" {
		t.Errorf("Confidence = %q, want low (26 cards)", a.Confidence)
	}
	if len(a.Factors) != 6 {
		t.Errorf("got %d factors, want 6", len(a.Factors))
	}
}

func TestAssessPowerEmptyDeck(t *testing.T) {
	a := AssessPower(deck.Deck{})
	if a.Score != 1 {
		t.Errorf("Score = %d, want 1", a.Score)
	}
	if a.Tier != "casual" {
		t.Errorf("Tier = %q, want casual", a.Tier)
	}
}

func TestPowerTierRanges(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{1, "casual"}, {3, "casual"},
		{4, "focused"}, {6, "focused"},
		{7, "optimized"}, {8, "optimized"},
		{9, "cedh"}, {10, "cedh"},
	}
	for _, tt := range tests {
		if got := powerTier(tt.score); got != tt.want {
			t.Errorf("powerTier(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestManaBaseTier(t *testing.T) {
	tests := []struct {
		premium int
		want    int
	}{
		{0, 1}, {1, 1}, {2, 2}, {4, 2}, {5, 3}, {9, 3}, {10, 4},
	}
	for _, tt := range tests {
		if got := manaBaseTier(tt.premium); got != tt.want {
			t.Errorf("manaBaseTier(%d) = %d, want %d", tt.premium, got, tt.want)
		}
	}
}

func TestSuggestPowerAdjustments(t *testing.T) {
	d := focusedDeck()

	if adj := SuggestPowerAdjustments(d, 4); adj != nil {
		t.Errorf("no adjustments expected at the current level, got %+v", adj)
	}

	up := SuggestPowerAdjustments(d, 9)
	if len(up) == 0 {
		t.Fatal("expected adjustments toward a higher target")
	}
	for _, a := range up {
		if a.Direction != "increase" {
			t.Errorf("direction = %q, want increase", a.Direction)
		}
	}
	// Examples never include cards the deck already runs.
	for _, a := range up {
		for _, ex := range a.Examples {
			if ex == "Sol Ring" || ex == "Demonic Tutor" {
				t.Errorf("owned card %q suggested", ex)
			}
		}
	}

	down := SuggestPowerAdjustments(d, 1)
	if len(down) == 0 {
		t.Fatal("expected adjustments toward a lower target")
	}
	for _, a := range down {
		if a.Direction != "decrease" {
			t.Errorf("direction = %q, want decrease", a.Direction)
		}
		if a.Examples != nil {
			t.Errorf("decrease suggestions should not carry examples: %+v", a)
		}
	}
}
