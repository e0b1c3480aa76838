package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/knowledge"
)

// Interaction categories with fixed target counts and CMC efficiency
// ceilings. A card may count toward several categories.
var interactionCategories = []struct {
	name       string
	target     int
	cmcCeiling float64
}{
	{"spot_removal", 8, 2},
	{"board_wipes", 3, 4},
	{"counterspells", 5, 2},
	{"protection", 4, 2},
	{"graveyard_hate", 2, 2},
	{"artifact_enchantment_removal", 3, 3},
}

// Curated name lists checked before the oracle-text heuristics.
var (
	spotRemovalNames = knowledge.NewNameSet(
		"Swords to Plowshares", "Path to Exile", "Pongify",
		"Rapid Hybridization", "Beast Within", "Generous Gift",
		"Chaos Warp", "Assassin's Trophy", "Abrupt Decay",
		"Anguished Unmaking", "Deadly Rollick", "Feed the Swarm",
	)
	boardWipeNames = knowledge.NewNameSet(
		"Wrath of God", "Damnation", "Toxic Deluge", "Blasphemous Act",
		"Cyclonic Rift", "Evacuation", "Ezuri's Predation", "Farewell",
	)
	counterspellNames = knowledge.NewNameSet(
		"Counterspell", "Swan Song", "Dovin's Veto", "Force of Will",
		"Fierce Guardianship", "Mental Misstep", "Flusterstorm",
		"Negate", "Arcane Denial", "Pact of Negation",
	)
	protectionNames = knowledge.NewNameSet(
		"Teferi's Protection", "Heroic Intervention", "Flawless Maneuver",
		"Deflecting Swat", "Boros Charm", "Lightning Greaves",
		"Swiftfoot Boots",
	)
	graveyardHateNames = knowledge.NewNameSet(
		"Rest in Peace", "Bojuka Bog", "Soul-Guide Lantern",
		"Relic of Progenitus", "Grafdigger's Cage", "Dauthi Voidwalker",
		"Leyline of the Void",
	)
	artifactRemovalNames = knowledge.NewNameSet(
		"Vandalblast", "Nature's Claim", "Krosan Grip", "Disenchant",
		"Return to Dust", "Force of Vigor",
	)
)

// InteractionCategory is the per-category result.
type InteractionCategory struct {
	Category       string   `json:"category"`
	Count          int      `json:"count"`
	Target         int      `json:"target"`
	Score          float64  `json:"score"` // min(count/target, 1.5) * 10
	AvgCMC         float64  `json:"avg_cmc"`
	EfficientCount int      `json:"efficient_count"` // cards at or below the CMC ceiling
	Efficiency     string   `json:"efficiency"`      // excellent, good, poor
	Cards          []string `json:"cards,omitempty"`
}

// InteractionGap proposes cards to close a category deficit.
type InteractionGap struct {
	Category string   `json:"category"`
	Deficit  int      `json:"deficit"`
	Examples []string `json:"examples"`
}

// InteractionReport is the full interaction-density report.
type InteractionReport struct {
	Score       int                   `json:"score"` // 1-10
	Categories  []InteractionCategory `json:"categories"`
	Suggestions []InteractionGap      `json:"suggestions,omitempty"`
}

// classifyInteraction returns every category a card counts toward,
// combining curated lookup with oracle-text heuristics.
func classifyInteraction(c deck.Card) []string {
	oracle := strings.ToLower(c.OracleText)
	var cats []string

	if spotRemovalNames.Contains(c.Name) ||
		(strings.Contains(oracle, "destroy") && strings.Contains(oracle, "target") && !strings.Contains(oracle, "all")) ||
		(strings.Contains(oracle, "exile target") && !strings.Contains(oracle, "all")) {
		cats = append(cats, "spot_removal")
	}
	if boardWipeNames.Contains(c.Name) ||
		((strings.Contains(oracle, "destroy all") || strings.Contains(oracle, "exile all") || strings.Contains(oracle, "each creature")) &&
			strings.Contains(oracle, "creature")) {
		cats = append(cats, "board_wipes")
	}
	if counterspellNames.Contains(c.Name) || strings.Contains(oracle, "counter target") {
		cats = append(cats, "counterspells")
	}
	if protectionNames.Contains(c.Name) ||
		strings.Contains(oracle, "hexproof") || strings.Contains(oracle, "indestructible") ||
		strings.Contains(oracle, "protection from") || strings.Contains(oracle, "phase out") {
		cats = append(cats, "protection")
	}
	if graveyardHateNames.Contains(c.Name) ||
		(strings.Contains(oracle, "graveyard") && strings.Contains(oracle, "exile")) {
		cats = append(cats, "graveyard_hate")
	}
	if artifactRemovalNames.Contains(c.Name) ||
		((strings.Contains(oracle, "destroy") || strings.Contains(oracle, "exile")) &&
			strings.Contains(oracle, "target") &&
			(strings.Contains(oracle, "artifact") || strings.Contains(oracle, "enchantment"))) {
		cats = append(cats, "artifact_enchantment_removal")
	}
	return cats
}

// AnalyzeInteraction scores the deck's interaction suite against the fixed
// per-category targets.
func AnalyzeInteraction(d deck.Deck) InteractionReport {
	type tally struct {
		count     int
		cmcSum    float64
		efficient int
		cards     []string
	}
	tallies := make(map[string]*tally, len(interactionCategories))
	ceilings := make(map[string]float64, len(interactionCategories))
	for _, cat := range interactionCategories {
		tallies[cat.name] = &tally{}
		ceilings[cat.name] = cat.cmcCeiling
	}

	for _, e := range d.Cards {
		for _, cat := range classifyInteraction(e.Card) {
			t := tallies[cat]
			t.count += e.Quantity
			t.cmcSum += e.Card.CMC * float64(e.Quantity)
			if e.Card.CMC <= ceilings[cat] {
				t.efficient += e.Quantity
			}
			t.cards = append(t.cards, e.Card.Name)
		}
	}

	report := InteractionReport{}
	total := 0.0
	for _, cat := range interactionCategories {
		t := tallies[cat.name]
		score := math.Min(float64(t.count)/float64(cat.target), 1.5) * 10
		avgCMC := 0.0
		if t.count > 0 {
			avgCMC = t.cmcSum / float64(t.count)
		}
		sort.Strings(t.cards)
		report.Categories = append(report.Categories, InteractionCategory{
			Category:       cat.name,
			Count:          t.count,
			Target:         cat.target,
			Score:          score,
			AvgCMC:         avgCMC,
			EfficientCount: t.efficient,
			Efficiency:     efficiencyLabel(t.count, t.efficient),
			Cards:          t.cards,
		})
		total += score
	}

	avg := total / float64(len(interactionCategories))
	report.Score = clampScore(int(math.Round(avg)))
	report.Suggestions = interactionGaps(d, report.Categories)
	return report
}

// efficiencyLabel grades how much of a category sits at efficient costs.
func efficiencyLabel(count, efficient int) string {
	if count == 0 {
		return "poor"
	}
	ratio := float64(efficient) / float64(count)
	switch {
	case ratio >= 0.75:
		return "excellent"
	case ratio >= 0.5:
		return "good"
	default:
		return "poor"
	}
}

// clampScore clamps to the 1-10 reporting range.
func clampScore(s int) int {
	if s < 1 {
		return 1
	}
	if s > 10 {
		return 10
	}
	return s
}

// gapExamples are color-gated example cards per category.
var gapExamples = map[string][]struct {
	card  string
	color string // required color, "" for any identity
}{
	"spot_removal": {
		{"Swords to Plowshares", "W"}, {"Path to Exile", "W"},
		{"Pongify", "U"}, {"Feed the Swarm", "B"},
		{"Chaos Warp", "R"}, {"Beast Within", "G"},
	},
	"board_wipes": {
		{"Wrath of God", "W"}, {"Cyclonic Rift", "U"},
		{"Damnation", "B"}, {"Blasphemous Act", "R"},
		{"Ezuri's Predation", "G"},
	},
	"counterspells": {
		{"Counterspell", "U"}, {"Swan Song", "U"}, {"Negate", "U"},
		{"Arcane Denial", "U"},
	},
	"protection": {
		{"Teferi's Protection", "W"}, {"Heroic Intervention", "G"},
		{"Deflecting Swat", "R"}, {"Swiftfoot Boots", ""},
	},
	"graveyard_hate": {
		{"Rest in Peace", "W"}, {"Bojuka Bog", ""},
		{"Soul-Guide Lantern", ""}, {"Dauthi Voidwalker", "B"},
	},
	"artifact_enchantment_removal": {
		{"Disenchant", "W"}, {"Krosan Grip", "G"},
		{"Vandalblast", "R"}, {"Nature's Claim", "G"},
	},
}

// maxGapSuggestions caps how many category gaps are surfaced.
const maxGapSuggestions = 5

// interactionGaps builds color-filtered gap suggestions, largest deficit
// first, capped at maxGapSuggestions.
func interactionGaps(d deck.Deck, categories []InteractionCategory) []InteractionGap {
	identity := make(map[string]bool)
	for _, c := range d.ColorIdentity() {
		identity[c] = true
	}
	owned := d.NameSet()

	var gaps []InteractionGap
	for _, cat := range categories {
		deficit := cat.Target - cat.Count
		if deficit <= 0 {
			continue
		}
		var examples []string
		for _, ex := range gapExamples[cat.Category] {
			if ex.color != "" && !identity[ex.color] {
				continue
			}
			if owned[strings.ToLower(ex.card)] {
				continue
			}
			examples = append(examples, ex.card)
		}
		if len(examples) == 0 {
			continue
		}
		gaps = append(gaps, InteractionGap{
			Category: cat.Category,
			Deficit:  deficit,
			Examples: examples,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Deficit > gaps[j].Deficit
	})
	if len(gaps) > maxGapSuggestions {
		gaps = gaps[:maxGapSuggestions]
	}
	return gaps
}
