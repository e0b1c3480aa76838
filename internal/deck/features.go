package deck

import (
	"sort"
	"strings"
)

// FeatureVector is the derived structural summary of a decklist. It is a
// pure function of the deck snapshot: identical decklists (in any order)
// produce identical vectors. Vectors are recomputed on demand and never
// persisted.
type FeatureVector struct {
	ColorIdentity []string       `json:"color_identity"`
	AvgCMC        float64        `json:"avg_cmc"`
	TypeCounts    map[string]int `json:"type_counts"`
	ThemeTags     []string       `json:"theme_tags"`
	CardNames     []string       `json:"card_names"` // unique non-basic names, lowercased
	DeckSize      int            `json:"deck_size"`
}

// Theme detection thresholds. These are fixed heuristics, not learned.
const (
	tribalThreshold       = 10
	wheelsThreshold       = 3
	superfriendsThreshold = 10
	countersThreshold     = 8
	tokensThreshold       = 8
	sacrificeThreshold    = 8
	graveyardThreshold    = 8
	lifegainThreshold     = 8
	spellslingerThreshold = 12
	artifactsThreshold    = 15
	landfallThreshold     = 5
	reanimatorThreshold   = 5
)

// tribes are the creature types checked for a tribal theme.
var tribes = []string{
	"Zombie", "Goblin", "Elf", "Vampire", "Dragon",
	"Human", "Merfolk", "Spirit", "Sliver", "Wizard",
}

// Extract computes the feature vector for a deck.
func Extract(d Deck) FeatureVector {
	fv := FeatureVector{
		ColorIdentity: d.ColorIdentity(),
		AvgCMC:        d.AverageCMC(),
		TypeCounts:    make(map[string]int),
		DeckSize:      d.Size(),
	}

	nameSeen := make(map[string]bool)
	for _, e := range d.Cards {
		if t := e.Card.PrimaryType(); t != "" {
			fv.TypeCounts[t] += e.Quantity
		}
		if e.Card.IsBasicLand() {
			continue
		}
		key := strings.ToLower(e.Card.Name)
		if !nameSeen[key] {
			nameSeen[key] = true
			fv.CardNames = append(fv.CardNames, key)
		}
	}
	sort.Strings(fv.CardNames)

	fv.ThemeTags = detectThemes(d)
	return fv
}

// detectThemes applies the fixed threshold rules for theme tags.
func detectThemes(d Deck) []string {
	var (
		wheels        int
		planeswalkers int
		counters      int
		tokens        int
		sacrifice     int
		graveyard     int
		lifegain      int
		spells        int
		artifacts     int
		landfall      int
		reanimator    int
		tribeCounts   = make(map[string]int)
	)

	for _, e := range d.Cards {
		c := e.Card
		name := strings.ToLower(c.Name)
		typeLine := strings.ToLower(c.TypeLine)
		oracle := c.oracleLower()
		qty := e.Quantity

		for _, tribe := range tribes {
			if strings.Contains(typeLine, strings.ToLower(tribe)) {
				tribeCounts[tribe] += qty
			}
		}
		if strings.Contains(name, "wheel") {
			wheels += qty
		}
		if strings.Contains(typeLine, "planeswalker") {
			planeswalkers += qty
		}
		if strings.Contains(oracle, "+1/+1 counter") || strings.Contains(oracle, "proliferate") {
			counters += qty
		}
		if strings.Contains(oracle, "create") && strings.Contains(oracle, "token") {
			tokens += qty
		}
		if strings.Contains(oracle, "sacrifice a creature") || strings.Contains(oracle, "sacrifice another creature") {
			sacrifice += qty
		}
		if strings.Contains(oracle, "from your graveyard") || strings.Contains(oracle, "in your graveyard") {
			graveyard += qty
		}
		if strings.Contains(oracle, "gain") && strings.Contains(oracle, "life") {
			lifegain += qty
		}
		if strings.Contains(typeLine, "instant") || strings.Contains(typeLine, "sorcery") {
			spells += qty
		}
		if strings.Contains(typeLine, "artifact") {
			artifacts += qty
		}
		if strings.Contains(oracle, "landfall") || strings.Contains(oracle, "whenever a land enters") {
			landfall += qty
		}
		if strings.Contains(oracle, "return") && strings.Contains(oracle, "graveyard to the battlefield") {
			reanimator += qty
		}
	}

	var tags []string
	for tribe, count := range tribeCounts {
		if count >= tribalThreshold {
			tags = append(tags, "tribal-"+strings.ToLower(tribe))
		}
	}
	if wheels >= wheelsThreshold {
		tags = append(tags, "wheels")
	}
	if planeswalkers >= superfriendsThreshold {
		tags = append(tags, "superfriends")
	}
	if counters >= countersThreshold {
		tags = append(tags, "counters")
	}
	if tokens >= tokensThreshold {
		tags = append(tags, "tokens")
	}
	if sacrifice >= sacrificeThreshold {
		tags = append(tags, "aristocrats")
	}
	if graveyard >= graveyardThreshold {
		tags = append(tags, "graveyard")
	}
	if lifegain >= lifegainThreshold {
		tags = append(tags, "lifegain")
	}
	if spells >= spellslingerThreshold {
		tags = append(tags, "spellslinger")
	}
	if artifacts >= artifactsThreshold {
		tags = append(tags, "artifacts")
	}
	if landfall >= landfallThreshold {
		tags = append(tags, "landfall")
	}
	if reanimator >= reanimatorThreshold {
		tags = append(tags, "reanimator")
	}

	sort.Strings(tags)
	return tags
}
