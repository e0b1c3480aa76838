package analysis

import (
	"testing"

	"github.com/cturner512/edh-advisor/internal/deck"
)

func wcEntry(name, typeLine string) deck.Entry {
	return deck.Entry{Card: deck.Card{Name: name, TypeLine: typeLine}, Quantity: 1}
}

func TestDetectWinConditionsRatingLadder(t *testing.T) {
	finishers := []deck.Entry{
		wcEntry("Craterhoof Behemoth", "Creature — Beast"),
		wcEntry("Overwhelming Stampede", "Sorcery"),
		wcEntry("Triumph of the Hordes", "Sorcery"),
	}

	tests := []struct {
		name       string
		cards      []deck.Entry
		wantCount  int
		wantRating string
	}{
		{"none", nil, 0, "critical"},
		{"one", finishers[:1], 1, "poor"},
		{"two", finishers[:2], 2, "adequate"},
		{"three same category", finishers, 3, "good"},
		{
			"three plus a second category",
			append(append([]deck.Entry{}, finishers...), wcEntry("Thassa's Oracle", "Creature — Merfolk Wizard")),
			4, "excellent",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := DetectWinConditions(deck.Deck{Cards: tt.cards})
			if report.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", report.Count, tt.wantCount)
			}
			if report.Rating != tt.wantRating {
				t.Errorf("Rating = %q, want %q", report.Rating, tt.wantRating)
			}
			if report.Recommendation == "" {
				t.Error("empty recommendation")
			}
		})
	}
}

func TestDetectWinConditionsMoreIsNeverWorse(t *testing.T) {
	rank := map[string]int{"critical": 0, "poor": 1, "adequate": 2, "good": 3, "excellent": 4}
	finishers := []deck.Entry{
		wcEntry("Craterhoof Behemoth", "Creature — Beast"),
		wcEntry("Overwhelming Stampede", "Sorcery"),
		wcEntry("Triumph of the Hordes", "Sorcery"),
		wcEntry("Insurrection", "Sorcery"),
	}
	prev := -1
	for n := 0; n <= len(finishers); n++ {
		report := DetectWinConditions(deck.Deck{Cards: finishers[:n]})
		r := rank[report.Rating]
		if r < prev {
			t.Fatalf("rating regressed at %d win conditions: %q", n, report.Rating)
		}
		prev = r
	}
}

func TestDetectWinConditionsVoltron(t *testing.T) {
	d := deck.Deck{Cards: []deck.Entry{
		{Card: deck.Card{Name: "Colossus Hammer", TypeLine: "Artifact — Equipment"}, Quantity: 6},
		{Card: deck.Card{Name: "Ethereal Armor", TypeLine: "Enchantment — Aura"}, Quantity: 4},
	}}
	report := DetectWinConditions(d)

	found := false
	for _, wc := range report.Conditions {
		if wc.Category == WinVoltron {
			found = true
		}
	}
	if !found {
		t.Errorf("voltron plan not inferred from %d equipment and auras: %+v", 10, report.Conditions)
	}
}

func TestDetectWinConditionsCombo(t *testing.T) {
	d := deck.Deck{Cards: []deck.Entry{
		wcEntry("Exquisite Blood", "Enchantment"),
		wcEntry("Sanguine Bond", "Enchantment"),
	}}
	report := DetectWinConditions(d)

	found := false
	for _, wc := range report.Conditions {
		if wc.Category == WinCombo && wc.Card == "Exquisite Blood" {
			found = true
		}
	}
	if !found {
		t.Errorf("combo win condition not detected: %+v", report.Conditions)
	}
}

func TestSuggestWinConditions(t *testing.T) {
	commander := deck.Card{Name: "Urza, Lord High Artificer", Colors: []string{"U"}, TypeLine: "Legendary Creature — Human Artificer"}
	d := deck.Deck{
		Commander: &commander,
		Archetype: "combo",
		Cards: []deck.Entry{
			wcEntry("Walking Ballista", "Artifact Creature — Construct"),
		},
	}

	suggestions := SuggestWinConditions(d)
	want := map[string]bool{"Thassa's Oracle": true, "Aetherflux Reservoir": true}
	for _, s := range suggestions {
		switch s.Card {
		case "Walking Ballista":
			t.Error("owned card suggested")
		case "Exquisite Blood":
			t.Error("off-color card suggested")
		default:
			delete(want, s.Card)
		}
	}
	if len(want) != 0 {
		t.Errorf("missing suggestions: %v (got %+v)", want, suggestions)
	}
}
