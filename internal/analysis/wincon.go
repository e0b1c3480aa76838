package analysis

import (
	"sort"
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/knowledge"
	"github.com/cturner512/edh-advisor/internal/synergy"
)

// Win condition categories.
const (
	WinCombat    = "combat"
	WinAlternate = "alternate"
	WinAttrition = "attrition"
	WinCombo     = "combo"
	WinVoltron   = "voltron"
)

// voltronThreshold is the equipment+aura count that implies a
// commander-damage plan even without named finishers.
const voltronThreshold = 10

// WinCondition is a single detected way the deck closes games.
type WinCondition struct {
	Card     string `json:"card,omitempty"`
	Category string `json:"category"`
	Detail   string `json:"detail"`
}

// WinConReport summarizes win-condition redundancy.
type WinConReport struct {
	Conditions     []WinCondition `json:"conditions"`
	Count          int            `json:"count"`
	Categories     []string       `json:"categories"`
	Rating         string         `json:"rating"`
	Recommendation string         `json:"recommendation"`
}

// WinConSuggestion proposes a win condition fitting the deck's archetype
// and color identity.
type WinConSuggestion struct {
	Card     string `json:"card"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// DetectWinConditions finds the deck's win conditions and rates their
// redundancy on the fixed ladder.
func DetectWinConditions(d deck.Deck) WinConReport {
	var report WinConReport

	equipmentAuras := 0
	for _, e := range d.Cards {
		c := e.Card
		typeLine := strings.ToLower(c.TypeLine)
		if strings.Contains(typeLine, "equipment") || strings.Contains(typeLine, "aura") {
			equipmentAuras += e.Quantity
		}
		switch {
		case knowledge.CombatFinishers.Contains(c.Name):
			report.Conditions = append(report.Conditions, WinCondition{
				Card: c.Name, Category: WinCombat, Detail: "Combat finisher",
			})
		case knowledge.AlternateWincons.Contains(c.Name):
			report.Conditions = append(report.Conditions, WinCondition{
				Card: c.Name, Category: WinAlternate, Detail: "Alternate win condition",
			})
		case knowledge.DrainWincons.Contains(c.Name):
			report.Conditions = append(report.Conditions, WinCondition{
				Card: c.Name, Category: WinAttrition, Detail: "Drain or attrition finisher",
			})
		}
	}

	for _, combo := range synergy.DetectInfiniteCombos(d) {
		report.Conditions = append(report.Conditions, WinCondition{
			Card:     combo.MainCard,
			Category: WinCombo,
			Detail:   combo.Effect,
		})
	}

	if equipmentAuras >= voltronThreshold {
		report.Conditions = append(report.Conditions, WinCondition{
			Category: WinVoltron,
			Detail:   "Commander damage plan implied by equipment and aura density",
		})
	}

	report.Count = len(report.Conditions)
	report.Categories = distinctCategories(report.Conditions)
	report.Rating = redundancyRating(report.Count, len(report.Categories))
	report.Recommendation = redundancyAdvice(report.Rating)
	return report
}

// distinctCategories returns the sorted set of categories present.
func distinctCategories(conditions []WinCondition) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, wc := range conditions {
		if !seen[wc.Category] {
			seen[wc.Category] = true
			cats = append(cats, wc.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// redundancyRating is the fixed ladder: more win conditions never rate
// worse, and category diversity lifts the top rung.
func redundancyRating(count, categories int) string {
	switch {
	case count == 0:
		return "critical"
	case count == 1:
		return "poor"
	case count == 2:
		return "adequate"
	case categories >= 2:
		return "excellent"
	default:
		return "good"
	}
}

// redundancyAdvice returns the canned recommendation text per rating.
func redundancyAdvice(rating string) string {
	switch rating {
	case "critical":
		return "The deck has no identified way to close a game. Add at least two win conditions."
	case "poor":
		return "A single win condition folds to one removal spell. Add a backup plan."
	case "adequate":
		return "Two win conditions is workable; a third from a different angle adds resilience."
	case "good":
		return "Good redundancy. Diversifying into another category would protect against hate."
	default:
		return "Excellent win-condition coverage across multiple angles."
	}
}

// archetypeWincons is the static suggestion table, gated by archetype and
// color identity.
var archetypeWincons = []struct {
	archetype string
	card      string
	category  string
	colors    []string // required colors; empty means colorless-friendly
}{
	{"aggro", "Craterhoof Behemoth", WinCombat, []string{"G"}},
	{"aggro", "Moraug, Fury of Akoum", WinCombat, []string{"R"}},
	{"aggro", "Triumph of the Hordes", WinCombat, []string{"G"}},
	{"aggro", "Finale of Glory", WinCombat, []string{"W"}},
	{"midrange", "Craterhoof Behemoth", WinCombat, []string{"G"}},
	{"midrange", "Gray Merchant of Asphodel", WinAttrition, []string{"B"}},
	{"midrange", "Insurrection", WinCombat, []string{"R"}},
	{"control", "Approach of the Second Sun", WinAlternate, []string{"W"}},
	{"control", "Torment of Hailfire", WinAttrition, []string{"B"}},
	{"control", "Thassa's Oracle", WinAlternate, []string{"U"}},
	{"combo", "Thassa's Oracle", WinAlternate, []string{"U"}},
	{"combo", "Exquisite Blood", WinAttrition, []string{"B"}},
	{"combo", "Aetherflux Reservoir", WinAttrition, nil},
	{"combo", "Walking Ballista", WinCombo, nil},
}

// SuggestWinConditions proposes win conditions from the static table that
// fit the deck's archetype and color identity and are not already owned.
func SuggestWinConditions(d deck.Deck) []WinConSuggestion {
	archetype := strings.ToLower(d.Archetype)
	if archetype == "" {
		archetype = "midrange"
	}
	identity := make(map[string]bool)
	for _, c := range d.ColorIdentity() {
		identity[c] = true
	}
	owned := d.NameSet()

	var out []WinConSuggestion
	for _, row := range archetypeWincons {
		if row.archetype != archetype {
			continue
		}
		if owned[strings.ToLower(row.card)] {
			continue
		}
		inColors := true
		for _, c := range row.colors {
			if !identity[c] {
				inColors = false
				break
			}
		}
		if !inColors {
			continue
		}
		out = append(out, WinConSuggestion{
			Card:     row.card,
			Category: row.category,
			Reason:   "Staple " + row.category + " finisher for " + archetype + " decks",
		})
	}
	return out
}
