package analysis

import (
	"math"
	"testing"

	"github.com/cturner512/edh-advisor/internal/deck"
)

func TestAnalyzeCurveHistogram(t *testing.T) {
	d := deck.Deck{Archetype: "midrange", Cards: []deck.Entry{
		{Card: deck.Card{Name: "Sol Ring", CMC: 1, TypeLine: "Artifact"}, Quantity: 1},
		{Card: deck.Card{Name: "Cultivate", CMC: 3, TypeLine: "Sorcery"}, Quantity: 2},
		{Card: deck.Card{Name: "Expropriate", CMC: 9, TypeLine: "Sorcery"}, Quantity: 1},
		{Card: deck.Card{Name: "Forest", TypeLine: "Basic Land — Forest"}, Quantity: 30},
	}}

	report := AnalyzeCurve(d)
	if report.Histogram[1] != 1 || report.Histogram[3] != 2 {
		t.Errorf("histogram = %v", report.Histogram)
	}
	if report.Histogram[7] != 1 {
		t.Errorf("CMC 9 should land in the 7+ bucket: %v", report.Histogram)
	}
	if report.CurrentLands != 30 {
		t.Errorf("CurrentLands = %d, want 30", report.CurrentLands)
	}
	if report.NonLandCount != 4 {
		t.Errorf("NonLandCount = %d, want 4", report.NonLandCount)
	}
	if report.Archetype != "midrange" {
		t.Errorf("Archetype = %q", report.Archetype)
	}
}

func TestAnalyzeCurveUnknownArchetypeDefaults(t *testing.T) {
	d := deck.Deck{Archetype: "landfall-storm"}
	if report := AnalyzeCurve(d); report.Archetype != "default" {
		t.Errorf("Archetype = %q, want default", report.Archetype)
	}
}

func TestRecommendLands(t *testing.T) {
	tests := []struct {
		archetype string
		avgCMC    float64
		want      int
	}{
		{"aggro", 2.0, 34}, // fast curve trims a land
		{"aggro", 3.0, 35},
		{"control", 4.5, 39}, // slow curve adds a land
		{"midrange", 3.2, 36},
		{"default", 3.5, 37},
	}
	for _, tt := range tests {
		if got := recommendLands(tt.archetype, tt.avgCMC); got != tt.want {
			t.Errorf("recommendLands(%q, %.1f) = %d, want %d", tt.archetype, tt.avgCMC, got, tt.want)
		}
	}
}

func TestAllocateColorSources(t *testing.T) {
	alloc := allocateColorSources(map[string]int{"W": 30, "U": 10}, 36)
	if alloc["W"] != 27 || alloc["U"] != 9 {
		t.Errorf("alloc = %v, want W:27 U:9", alloc)
	}
}

func TestAllocateColorSourcesProperties(t *testing.T) {
	cases := []map[string]int{
		{"W": 10, "U": 10, "B": 10},
		{"W": 1, "U": 99},
		{"G": 7, "R": 5, "B": 3, "U": 2, "W": 1},
		{"G": 1},
	}
	const lands = 37
	for _, colorCounts := range cases {
		alloc := allocateColorSources(colorCounts, lands)

		total := 0
		symbolTotal := 0
		for _, n := range colorCounts {
			symbolTotal += n
		}
		for color, n := range alloc {
			total += n
			share := float64(colorCounts[color]) / float64(symbolTotal) * float64(lands)
			floor := int(math.Floor(0.7 * share))
			if n < floor {
				t.Errorf("%v: color %s got %d sources, floor is %d", colorCounts, color, n, floor)
			}
		}
		if total > lands {
			t.Errorf("%v: allocated %d sources for %d lands", colorCounts, total, lands)
		}
	}

	if alloc := allocateColorSources(nil, 37); alloc != nil {
		t.Errorf("empty color counts should allocate nothing, got %v", alloc)
	}
}

func TestAnalyzeCurveDeadZones(t *testing.T) {
	d := deck.Deck{Cards: []deck.Entry{
		{Card: deck.Card{Name: "Opt", CMC: 1, TypeLine: "Instant"}, Quantity: 5},
		{Card: deck.Card{Name: "Expropriate", CMC: 9, TypeLine: "Sorcery"}, Quantity: 5},
	}}
	report := AnalyzeCurve(d)

	want := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}
	if len(report.DeadZones) != len(want) {
		t.Fatalf("DeadZones = %v", report.DeadZones)
	}
	for _, z := range report.DeadZones {
		if !want[z] {
			t.Errorf("unexpected dead zone %d", z)
		}
	}
	if len(report.Deviations) == 0 {
		t.Error("expected deviations for a two-hump curve")
	}
}
