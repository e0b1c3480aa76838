// Package analysis contains the independent weighted heuristic scorers:
// power level, win conditions, interaction density, and mana curve.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/knowledge"
	"github.com/cturner512/edh-advisor/internal/synergy"
)

// Factor weights for the power level model. The theoretical maximum is a
// 10 in every bucket; the weighted sum is normalized against it.
const (
	weightAvgCMC      = 2.5
	weightFastMana    = 2.0
	weightTutors      = 2.0
	weightInteraction = 1.5
	weightManaBase    = 1.5
	weightCombos      = 1.5
)

// PowerFactor is one bucket-scored component of the assessment.
type PowerFactor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"` // 0-10 bucket score
	Weight float64 `json:"weight"`
	Detail string  `json:"detail"`
}

// PowerAssessment is the full power level report.
type PowerAssessment struct {
	Score      int           `json:"score"` // 1-10
	Tier       string        `json:"tier"`  // casual, focused, optimized, cedh
	Confidence string        `json:"confidence"`
	Factors    []PowerFactor `json:"factors"`

	AvgCMC       float64 `json:"avg_cmc"`
	FastMana     int     `json:"fast_mana"`
	Tutors       int     `json:"tutors"`
	Interaction  int     `json:"interaction"`
	ComboPieces  int     `json:"combo_pieces"`
	PremiumLands int     `json:"premium_lands"`
	ManaBaseTier int     `json:"mana_base_tier"`
}

// PowerAdjustment suggests moving one factor toward a target power level.
type PowerAdjustment struct {
	Factor    string   `json:"factor"`
	Direction string   `json:"direction"` // "increase" or "decrease"
	Impact    string   `json:"impact"`    // high, medium, low
	Examples  []string `json:"examples,omitempty"`
	Note      string   `json:"note"`
}

// AssessPower scores a deck's power level on the fixed 1-10 scale.
func AssessPower(d deck.Deck) PowerAssessment {
	a := PowerAssessment{AvgCMC: d.AverageCMC()}

	lands := 0
	for _, e := range d.Cards {
		c := e.Card
		if knowledge.FastMana.Contains(c.Name) {
			a.FastMana += e.Quantity
		}
		if knowledge.Tutors.Contains(c.Name) {
			a.Tutors += e.Quantity
		}
		if knowledge.InteractionStaples.Contains(c.Name) {
			a.Interaction += e.Quantity
		}
		if knowledge.ComboPieces.Contains(c.Name) {
			a.ComboPieces += e.Quantity
		}
		if c.IsLand() {
			lands += e.Quantity
			if knowledge.PremiumLands.Contains(c.Name) {
				a.PremiumLands += e.Quantity
			}
		}
	}
	a.ManaBaseTier = manaBaseTier(a.PremiumLands)

	a.Factors = []PowerFactor{
		{Name: "avg_cmc", Score: scoreAvgCMC(a.AvgCMC), Weight: weightAvgCMC,
			Detail: fmt.Sprintf("average CMC %.2f", a.AvgCMC)},
		{Name: "fast_mana", Score: countScore(a.FastMana), Weight: weightFastMana,
			Detail: fmt.Sprintf("%d fast mana sources", a.FastMana)},
		{Name: "tutors", Score: countScore(a.Tutors), Weight: weightTutors,
			Detail: fmt.Sprintf("%d tutors", a.Tutors)},
		{Name: "interaction", Score: scoreInteractionCount(a.Interaction), Weight: weightInteraction,
			Detail: fmt.Sprintf("%d premium interaction pieces", a.Interaction)},
		{Name: "mana_base", Score: float64(a.ManaBaseTier) * 2.5, Weight: weightManaBase,
			Detail: fmt.Sprintf("tier %d mana base (%d premium lands)", a.ManaBaseTier, a.PremiumLands)},
		{Name: "combos", Score: scoreComboCount(a.ComboPieces), Weight: weightCombos,
			Detail: fmt.Sprintf("%d combo pieces", a.ComboPieces)},
	}

	a.Score = normalizePower(a.Factors, d.Size())
	a.Tier = powerTier(a.Score)
	a.Confidence = powerConfidence(d.Size())
	return a
}

// manaBaseTier grades the mana base from the premium land count.
func manaBaseTier(premium int) int {
	switch {
	case premium >= 10:
		return 4
	case premium >= 5:
		return 3
	case premium >= 2:
		return 2
	default:
		return 1
	}
}

// scoreAvgCMC rewards lean curves; a low average CMC plays faster.
func scoreAvgCMC(avg float64) float64 {
	switch {
	case avg <= 2.0:
		return 10
	case avg <= 2.5:
		return 8
	case avg <= 3.0:
		return 7
	case avg <= 3.5:
		return 6
	case avg <= 4.0:
		return 5
	case avg <= 4.5:
		return 4
	default:
		return 2
	}
}

// countScore buckets small curated-list counts (fast mana, tutors).
func countScore(n int) float64 {
	if n >= 5 {
		return 10
	}
	return float64(n * 2)
}

// scoreInteractionCount buckets the premium interaction count.
func scoreInteractionCount(n int) float64 {
	switch {
	case n >= 12:
		return 10
	case n >= 10:
		return 8
	case n >= 8:
		return 6
	case n >= 6:
		return 4
	case n >= 4:
		return 3
	case n >= 2:
		return 2
	default:
		return 0
	}
}

// scoreComboCount buckets the combo-piece count. Even zero pieces scores
// above zero: any hundred-card deck stumbles into incidental synergy.
func scoreComboCount(n int) float64 {
	switch {
	case n >= 4:
		return 10
	case n == 3:
		return 8
	case n == 2:
		return 6
	case n == 1:
		return 4
	default:
		return 2
	}
}

// normalizePower maps the weighted factor sum onto the integer 1-10 scale.
// An empty decklist floors at 1.
func normalizePower(factors []PowerFactor, deckSize int) int {
	if deckSize == 0 {
		return 1
	}
	sum, maxSum := 0.0, 0.0
	for _, f := range factors {
		sum += f.Score * f.Weight
		maxSum += 10 * f.Weight
	}
	if maxSum == 0 {
		return 1
	}
	score := int(math.Round(sum/maxSum*9)) + 1
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

// powerTier maps a 1-10 score onto the fixed tier ranges.
func powerTier(score int) string {
	switch {
	case score <= 3:
		return "casual"
	case score <= 6:
		return "focused"
	case score <= 8:
		return "optimized"
	default:
		return "cedh"
	}
}

// powerConfidence labels result reliability by decklist completeness.
func powerConfidence(size int) string {
	switch {
	case size >= 70:
		return "high"
	case size >= 40:
		return "medium"
	default:
		return "low"
	}
}

// adjustmentRule is one row of the fixed adjustment table.
type adjustmentRule struct {
	factor   string
	examples []string
	upNote   string
	downNote string
	impact   string
}

var adjustmentRules = []adjustmentRule{
	{
		factor:   "fast_mana",
		examples: []string{"Sol Ring", "Mana Crypt", "Dark Ritual", "Jeweled Lotus"},
		upNote:   "Add fast mana to accelerate your opening turns",
		downNote: "Cut fast mana to slow explosive starts",
		impact:   "high",
	},
	{
		factor:   "tutors",
		examples: []string{"Demonic Tutor", "Vampiric Tutor", "Mystical Tutor", "Worldly Tutor"},
		upNote:   "Add tutors to raise consistency",
		downNote: "Cut tutors for more varied games",
		impact:   "high",
	},
	{
		factor:   "combos",
		examples: []string{"Thassa's Oracle", "Isochron Scepter", "Exquisite Blood"},
		upNote:   "Add a compact combo line as a clean finish",
		downNote: "Remove combo lines that end games abruptly",
		impact:   "high",
	},
	{
		factor:   "interaction",
		examples: []string{"Swords to Plowshares", "Counterspell", "Beast Within", "Toxic Deluge"},
		upNote:   "Add cheap interaction to contest faster tables",
		downNote: "Trim interaction if games stall out",
		impact:   "medium",
	},
	{
		factor:   "mana_base",
		examples: []string{"Command Tower", "Mana Confluence", "Polluted Delta"},
		upNote:   "Upgrade lands for smoother color access",
		downNote: "Swap premium lands for basics to lower the ceiling",
		impact:   "medium",
	},
	{
		factor:   "avg_cmc",
		examples: []string{"Swan Song", "Lotus Petal", "Esper Sentinel"},
		upNote:   "Lower the curve with cheaper versions of the same effects",
		downNote: "Raise the curve with bigger haymakers",
		impact:   "low",
	},
}

// SuggestPowerAdjustments compares the current assessment to a target score
// and emits per-factor suggestions from the fixed rule table, ordered by
// how far each factor sits from a tier-appropriate value. This is a lookup,
// not a search.
func SuggestPowerAdjustments(d deck.Deck, target int) []PowerAdjustment {
	if target < 1 {
		target = 1
	}
	if target > 10 {
		target = 10
	}
	current := AssessPower(d)
	if current.Score == target {
		return nil
	}

	direction := "increase"
	if current.Score > target {
		direction = "decrease"
	}
	// A tier-appropriate bucket score scales with the target.
	idealBucket := float64(target)

	type gap struct {
		rule adjustmentRule
		dist float64
	}
	var gaps []gap
	for _, rule := range adjustmentRules {
		for _, f := range current.Factors {
			if f.Name != rule.factor {
				continue
			}
			dist := idealBucket - f.Score
			if direction == "decrease" {
				dist = f.Score - idealBucket
			}
			if dist > 0 {
				gaps = append(gaps, gap{rule: rule, dist: dist})
			}
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].dist != gaps[j].dist {
			return gaps[i].dist > gaps[j].dist
		}
		return gaps[i].rule.factor < gaps[j].rule.factor
	})

	out := make([]PowerAdjustment, 0, len(gaps))
	for _, g := range gaps {
		note := g.rule.upNote
		if direction == "decrease" {
			note = g.rule.downNote
		}
		adj := PowerAdjustment{
			Factor:    g.rule.factor,
			Direction: direction,
			Impact:    g.rule.impact,
			Note:      note,
		}
		if direction == "increase" {
			adj.Examples = filterOwned(g.rule.examples, d)
		}
		out = append(out, adj)
	}
	return out
}

// filterOwned drops example cards the deck already runs.
func filterOwned(examples []string, d deck.Deck) []string {
	names := d.NameSet()
	var out []string
	for _, ex := range examples {
		if !names[strings.ToLower(ex)] {
			out = append(out, ex)
		}
	}
	return out
}

// ComboPieceCount re-exports the synergy detector's game-ending combo count
// for callers that only need the number.
func ComboPieceCount(d deck.Deck) int {
	return len(synergy.DetectInfiniteCombos(d))
}
