// Package budget analyzes a deck's price profile against a spending tier
// and proposes price-aware swaps.
package budget

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/knowledge"
)

// Tier is a fixed spending profile.
type Tier struct {
	Name         string  `json:"name"`
	MaxCardPrice float64 `json:"max_card_price"`
	MaxTotal     float64 `json:"max_total"`
}

// The fixed tier table.
var tiers = map[string]Tier{
	"budget":    {Name: "budget", MaxCardPrice: 5, MaxTotal: 100},
	"moderate":  {Name: "moderate", MaxCardPrice: 25, MaxTotal: 300},
	"optimized": {Name: "optimized", MaxCardPrice: 100, MaxTotal: 1500},
	"nolimit":   {Name: "nolimit", MaxCardPrice: math.Inf(1), MaxTotal: math.Inf(1)},
}

// LookupTier resolves a tier by name, defaulting to nolimit for unknown names.
func LookupTier(name string) Tier {
	if t, ok := tiers[strings.ToLower(name)]; ok {
		return t
	}
	return tiers["nolimit"]
}

// Swap proposes replacing one over-ceiling card.
type Swap struct {
	Card        string  `json:"card"`
	Price       float64 `json:"price"`
	Replacement string  `json:"replacement"`
	Note        string  `json:"note,omitempty"`
	Savings     float64 `json:"savings"`
}

// Report is the budget analysis result.
type Report struct {
	Tier          Tier               `json:"tier"`
	Total         float64            `json:"total"`
	Average       float64            `json:"average"`
	ByType        map[string]float64 `json:"by_type"`
	OverBudget    float64            `json:"over_budget"`
	Message       string             `json:"message,omitempty"`
	Flagged       []string           `json:"flagged,omitempty"`
	Swaps         []Swap             `json:"swaps,omitempty"`
	CoversOverage bool               `json:"covers_overage"`
}

// Analyze computes the price profile and, when over budget, greedily
// accumulates savings from the most expensive flagged cards until the
// overage is covered or candidates run out. Cards at or below the tier's
// per-card ceiling are never proposed for replacement.
func Analyze(d deck.Deck, tierName string) Report {
	tier := LookupTier(tierName)
	report := Report{Tier: tier, ByType: make(map[string]float64)}

	type priced struct {
		card  deck.Card
		price float64
	}
	var over []priced

	count := 0
	for _, e := range d.Cards {
		price := e.Card.Price * float64(e.Quantity)
		report.Total += price
		count += e.Quantity
		if t := e.Card.PrimaryType(); t != "" {
			report.ByType[t] += price
		}
		if e.Card.Price > tier.MaxCardPrice {
			report.Flagged = append(report.Flagged, e.Card.Name)
			over = append(over, priced{card: e.Card, price: e.Card.Price})
		}
	}
	if count > 0 {
		report.Average = report.Total / float64(count)
	}

	if math.IsInf(tier.MaxTotal, 1) || report.Total <= tier.MaxTotal {
		report.CoversOverage = true
		sort.Strings(report.Flagged)
		return report
	}

	report.OverBudget = report.Total - tier.MaxTotal
	report.Message = fmt.Sprintf("exceeds budget by $%.2f", report.OverBudget)
	sort.Strings(report.Flagged)

	// Most expensive first; the assumed replacement cost is the tier's
	// per-card ceiling.
	sort.SliceStable(over, func(i, j int) bool {
		if over[i].price != over[j].price {
			return over[i].price > over[j].price
		}
		return over[i].card.Name < over[j].card.Name
	})

	saved := 0.0
	for _, p := range over {
		if saved >= report.OverBudget {
			break
		}
		replacement, note := findReplacement(p.card)
		savings := p.price - tier.MaxCardPrice
		report.Swaps = append(report.Swaps, Swap{
			Card:        p.card.Name,
			Price:       p.price,
			Replacement: replacement,
			Note:        note,
			Savings:     savings,
		})
		saved += savings
	}
	report.CoversOverage = saved >= report.OverBudget
	return report
}

// findReplacement looks up the curated alternative table, falling back to
// a loose functional-keyword match over the oracle text.
func findReplacement(c deck.Card) (string, string) {
	if alt, ok := knowledge.BudgetAlternatives[strings.ToLower(c.Name)]; ok {
		return alt.Replacement, alt.Note
	}

	oracle := strings.ToLower(c.OracleText)
	switch {
	case strings.Contains(oracle, "search your library"):
		return "Diabolic Tutor", "Generic budget tutor effect"
	case strings.Contains(oracle, "add {"):
		return "Arcane Signet", "Generic budget mana source"
	case strings.Contains(oracle, "counter target"):
		return "Counterspell", "Generic budget permission"
	case strings.Contains(oracle, "destroy") || strings.Contains(oracle, "exile"):
		return "Beast Within", "Generic budget removal"
	case strings.Contains(oracle, "draw"):
		return "Harmonize", "Generic budget card draw"
	default:
		return "", "Look for a lower-cost card filling the same role"
	}
}
