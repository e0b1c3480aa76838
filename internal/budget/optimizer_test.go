package budget

import (
	"math"
	"testing"

	"github.com/cturner512/edh-advisor/internal/deck"
)

func TestLookupTier(t *testing.T) {
	if tier := LookupTier("budget"); tier.MaxCardPrice != 5 || tier.MaxTotal != 100 {
		t.Errorf("budget tier = %+v", tier)
	}
	if tier := LookupTier("Moderate"); tier.Name != "moderate" {
		t.Errorf("tier lookup should be case-insensitive: %+v", tier)
	}
	if tier := LookupTier("unknown"); !math.IsInf(tier.MaxTotal, 1) {
		t.Errorf("unknown tier should default to nolimit: %+v", tier)
	}
}

func TestAnalyzeOverBudget(t *testing.T) {
	d := deck.Deck{Cards: []deck.Entry{
		{Card: deck.Card{Name: "Mana Crypt", Price: 470, TypeLine: "Artifact"}, Quantity: 1},
		{Card: deck.Card{Name: "Gaea's Cradle", Price: 150, TypeLine: "Legendary Land"}, Quantity: 1},
	}}

	report := Analyze(d, "moderate") // $25/card, $300 total

	if report.Total != 620 {
		t.Errorf("Total = %v, want 620", report.Total)
	}
	if report.OverBudget != 320 {
		t.Errorf("OverBudget = %v, want 320", report.OverBudget)
	}
	if report.Message != "exceeds budget by $320.00" {
		t.Errorf("Message = %q", report.Message)
	}
	if len(report.Flagged) != 2 || report.Flagged[0] != "Gaea's Cradle" {
		t.Errorf("Flagged = %v", report.Flagged)
	}

	// The single most expensive swap already covers the overage:
	// 470 - 25 = 445 >= 320.
	if len(report.Swaps) != 1 {
		t.Fatalf("Swaps = %+v, want exactly 1", report.Swaps)
	}
	swap := report.Swaps[0]
	if swap.Card != "Mana Crypt" {
		t.Errorf("swap.Card = %q, want the most expensive first", swap.Card)
	}
	if swap.Savings != 445 {
		t.Errorf("swap.Savings = %v, want 445", swap.Savings)
	}
	if swap.Replacement != "Sol Ring" {
		t.Errorf("swap.Replacement = %q, want the curated alternative", swap.Replacement)
	}
	if !report.CoversOverage {
		t.Error("CoversOverage = false, want true")
	}
}

func TestAnalyzeNeverSwapsCardsUnderTheCeiling(t *testing.T) {
	d := deck.Deck{Cards: []deck.Entry{
		{Card: deck.Card{Name: "Arcane Signet", Price: 25, TypeLine: "Artifact"}, Quantity: 1},
		{Card: deck.Card{Name: "Rhystic Study", Price: 290, TypeLine: "Enchantment"}, Quantity: 1},
	}}

	report := Analyze(d, "moderate")
	for _, name := range report.Flagged {
		if name == "Arcane Signet" {
			t.Error("card at the ceiling was flagged")
		}
	}
	for _, swap := range report.Swaps {
		if swap.Card == "Arcane Signet" {
			t.Error("card at the ceiling was swapped")
		}
	}
}

func TestAnalyzeWithinBudget(t *testing.T) {
	d := deck.Deck{Cards: []deck.Entry{
		{Card: deck.Card{Name: "Sol Ring", Price: 2, TypeLine: "Artifact"}, Quantity: 1},
		{Card: deck.Card{Name: "Arcane Signet", Price: 1, TypeLine: "Artifact"}, Quantity: 1},
	}}

	report := Analyze(d, "budget")
	if report.OverBudget != 0 || report.Message != "" || len(report.Swaps) != 0 {
		t.Errorf("within-budget deck produced complaints: %+v", report)
	}
	if !report.CoversOverage {
		t.Error("CoversOverage should be true when under budget")
	}
	if report.Average != 1.5 {
		t.Errorf("Average = %v, want 1.5", report.Average)
	}
}

func TestAnalyzeNolimitNeverFlags(t *testing.T) {
	d := deck.Deck{Cards: []deck.Entry{
		{Card: deck.Card{Name: "Black Lotus", Price: 100000, TypeLine: "Artifact"}, Quantity: 1},
	}}
	report := Analyze(d, "nolimit")
	if len(report.Flagged) != 0 || len(report.Swaps) != 0 || report.Message != "" {
		t.Errorf("nolimit tier flagged cards: %+v", report)
	}
}

func TestFindReplacementKeywordFallback(t *testing.T) {
	tests := []struct {
		card deck.Card
		want string
	}{
		{deck.Card{Name: "Some Tutor", OracleText: "Search your library for a card."}, "Diabolic Tutor"},
		{deck.Card{Name: "Some Rock", OracleText: "{T}: Add {C}."}, "Arcane Signet"},
		{deck.Card{Name: "Some Counter", OracleText: "Counter target spell."}, "Counterspell"},
		{deck.Card{Name: "Some Removal", OracleText: "Destroy target permanent."}, "Beast Within"},
		{deck.Card{Name: "Some Draw", OracleText: "Draw three cards."}, "Harmonize"},
		{deck.Card{Name: "Oddball", OracleText: "Flip a coin."}, ""},
	}
	for _, tt := range tests {
		if got, _ := findReplacement(tt.card); got != tt.want {
			t.Errorf("findReplacement(%s) = %q, want %q", tt.card.Name, got, tt.want)
		}
	}
}
