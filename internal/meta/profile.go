// Package meta aggregates recorded game results into a playgroup profile
// and reweights recommendation candidates against it. Profiles are pure
// functions over a caller-supplied result slice; persistence of results
// belongs to the injected storage repository, never to package state.
package meta

import (
	"sort"
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/knowledge"
)

// GameResult is one recorded game against the playgroup.
type GameResult struct {
	DeckUsed           string   `json:"deck_used"`
	Result             string   `json:"result"` // "win" or "loss"
	Turns              int      `json:"turns"`
	OpponentCommanders []string `json:"opponent_commanders,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

// Profile is the aggregated playgroup picture.
type Profile struct {
	Games          int            `json:"games"`
	Wins           int            `json:"wins"`
	AvgTurns       float64        `json:"avg_turns"`
	EstimatedPower int            `json:"estimated_power"` // 0 when unknown
	StrategyTags   []string       `json:"strategy_tags,omitempty"`
	StrategyCounts map[string]int `json:"strategy_counts,omitempty"`
	ComboFrequency string         `json:"combo_frequency"` // high, medium, low
	HatedCards     []string       `json:"hated_cards,omitempty"`
	LongGames      bool           `json:"long_games"`
}

// Candidate reweighting multipliers.
const (
	hatedCardMultiplier   = 0.5
	powerMatchMultiplier  = 1.2
	powerMissMultiplier   = 0.8
	strategyMultiplier    = 1.3
	interactionMultiplier = 1.4
)

// strategyKeywords are searched in free-text game notes.
var strategyKeywords = []string{
	"combo", "aggro", "control", "stax", "graveyard",
	"tokens", "voltron", "ramp", "lifegain",
}

// negativeKeywords mark a note as complaining about a card.
var negativeKeywords = []string{
	"hate", "annoying", "unfair", "oppressive", "salt", "ban", "miserable",
}

// longGameTurns marks a playgroup as grindy when games average this long.
const longGameTurns = 12

// BuildProfile aggregates game results into a playgroup profile. An empty
// slice yields a zeroed profile with ComboFrequency "low".
func BuildProfile(results []GameResult) Profile {
	p := Profile{StrategyCounts: make(map[string]int), ComboFrequency: "low"}
	if len(results) == 0 {
		return p
	}

	turnsTotal := 0
	comboGames := 0
	hated := make(map[string]bool)

	for _, r := range results {
		p.Games++
		if strings.EqualFold(r.Result, "win") {
			p.Wins++
		}
		turnsTotal += r.Turns

		notes := strings.ToLower(r.Notes)
		for _, kw := range strategyKeywords {
			if strings.Contains(notes, kw) {
				p.StrategyCounts[kw]++
			}
		}
		if strings.Contains(notes, "combo") {
			comboGames++
		}
		if isNegative(notes) {
			for _, name := range mentionedCards(notes, r.OpponentCommanders) {
				hated[name] = true
			}
		}
	}

	p.AvgTurns = float64(turnsTotal) / float64(p.Games)
	p.EstimatedPower = powerFromTurns(p.AvgTurns)
	p.LongGames = p.AvgTurns >= longGameTurns
	p.ComboFrequency = comboFrequency(comboGames, p.Games)

	for tag := range p.StrategyCounts {
		p.StrategyTags = append(p.StrategyTags, tag)
	}
	sort.Slice(p.StrategyTags, func(i, j int) bool {
		a, b := p.StrategyTags[i], p.StrategyTags[j]
		if p.StrategyCounts[a] != p.StrategyCounts[b] {
			return p.StrategyCounts[a] > p.StrategyCounts[b]
		}
		return a < b
	})

	for name := range hated {
		p.HatedCards = append(p.HatedCards, name)
	}
	sort.Strings(p.HatedCards)
	return p
}

// powerFromTurns buckets average turns-to-finish into a power estimate.
func powerFromTurns(avgTurns float64) int {
	switch {
	case avgTurns <= 0:
		return 0
	case avgTurns <= 6:
		return 9
	case avgTurns <= 8:
		return 8
	case avgTurns <= 10:
		return 7
	case avgTurns <= 12:
		return 5
	default:
		return 4
	}
}

// comboFrequency buckets the share of combo-flavored games.
func comboFrequency(comboGames, games int) string {
	if games == 0 {
		return "low"
	}
	share := float64(comboGames) / float64(games)
	switch {
	case share >= 0.5:
		return "high"
	case share >= 0.25:
		return "medium"
	default:
		return "low"
	}
}

// isNegative reports whether a lowercased note contains a complaint keyword.
func isNegative(notes string) bool {
	for _, kw := range negativeKeywords {
		if strings.Contains(notes, kw) {
			return true
		}
	}
	return false
}

// mentionedCards finds card mentions in a lowercased note: opponent
// commanders from the result record plus any knowledge-catalog name
// appearing as a substring.
func mentionedCards(notes string, commanders []string) []string {
	var out []string
	for _, cmd := range commanders {
		if cmd != "" && strings.Contains(notes, strings.ToLower(cmd)) {
			out = append(out, cmd)
		}
	}
	for _, name := range knowledge.CatalogNames() {
		if strings.Contains(notes, name) {
			out = append(out, name)
		}
	}
	return out
}

// Multiplier computes the meta reweighting multiplier for a candidate card
// and the justification strings behind it. Multipliers compose
// multiplicatively.
func Multiplier(c deck.Card, p Profile) (float64, []string) {
	mult := 1.0
	var reasons []string

	if p.Games == 0 {
		return mult, reasons
	}

	lowered := strings.ToLower(c.Name)
	for _, hated := range p.HatedCards {
		if strings.ToLower(hated) == lowered {
			mult *= hatedCardMultiplier
			reasons = append(reasons, "Your playgroup dislikes this card")
			break
		}
	}

	if p.EstimatedPower > 0 {
		diff := knowledge.CardPowerEstimate(c) - p.EstimatedPower
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff <= 1:
			mult *= powerMatchMultiplier
			reasons = append(reasons, "Matches your playgroup's power level")
		case diff > 3:
			mult *= powerMissMultiplier
			reasons = append(reasons, "Off your playgroup's power level")
		}
	}

	if matchesStrategy(c, p.StrategyTags) {
		mult *= strategyMultiplier
		reasons = append(reasons, "Lines up with a common playgroup strategy")
	}

	if p.ComboFrequency == "high" && knowledge.IsInteractionCard(c) {
		mult *= interactionMultiplier
		reasons = append(reasons, "Interaction is at a premium against combo tables")
	}

	return mult, reasons
}

// matchesStrategy checks a card against the profile's common strategies
// through its catalog categories and oracle text.
func matchesStrategy(c deck.Card, tags []string) bool {
	rec, hasRec := knowledge.Lookup(c.Name)
	oracle := strings.ToLower(c.OracleText)
	for _, tag := range tags {
		if hasRec && rec.HasCategory(tag) {
			return true
		}
		if tag == "graveyard" && strings.Contains(oracle, "graveyard") {
			return true
		}
		if tag == "tokens" && strings.Contains(oracle, "token") {
			return true
		}
		if tag == "lifegain" && strings.Contains(oracle, "gain") && strings.Contains(oracle, "life") {
			return true
		}
	}
	return false
}

// TechSuggestion is a static counter-tech proposal gated by profile flags.
type TechSuggestion struct {
	Card   string `json:"card"`
	Reason string `json:"reason"`
}

// SuggestCounterTech emits counter-tech from the static tables based on
// what the profile shows: free counters against combo tables, graveyard
// hate against graveyard tables, fast mana against high power, card draw
// for long games.
func SuggestCounterTech(p Profile) []TechSuggestion {
	var out []TechSuggestion

	if p.ComboFrequency == "high" {
		for _, card := range knowledge.FreeCounters {
			out = append(out, TechSuggestion{Card: card, Reason: "Free interaction against combo-heavy tables"})
		}
	}
	if hasTag(p.StrategyTags, "graveyard") {
		for _, card := range knowledge.GraveyardHate {
			out = append(out, TechSuggestion{Card: card, Reason: "Graveyard hate against recursion decks"})
		}
	}
	if p.EstimatedPower >= 8 {
		for _, card := range []string{"Sol Ring", "Mana Crypt", "Jeweled Lotus"} {
			out = append(out, TechSuggestion{Card: card, Reason: "Fast mana to keep pace with a high-power table"})
		}
	}
	if p.LongGames {
		for _, card := range knowledge.CardDraw {
			out = append(out, TechSuggestion{Card: card, Reason: "Sustained card advantage for long games"})
		}
	}
	return out
}

// hasTag reports tag membership.
func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
