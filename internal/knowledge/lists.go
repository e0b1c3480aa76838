package knowledge

import (
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
)

// NameSet is a case-insensitive card name set.
type NameSet map[string]bool

// NewNameSet builds a NameSet from card names.
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

// Contains reports whether the set holds the name, case-insensitively.
func (s NameSet) Contains(name string) bool {
	return s[strings.ToLower(name)]
}

// FastMana is the curated list of accelerants that signal high power.
var FastMana = NewNameSet(
	"Sol Ring", "Mana Crypt", "Mana Vault", "Chrome Mox", "Mox Diamond",
	"Mox Opal", "Lotus Petal", "Jeweled Lotus", "Grim Monolith",
	"Ancient Tomb", "City of Traitors", "Dark Ritual", "Cabal Ritual",
	"Rite of Flame", "Simian Spirit Guide", "Elvish Spirit Guide",
	"Jeska's Will", "Mana Drain",
)

// Tutors is the curated list of unconditional and near-unconditional tutors.
var Tutors = NewNameSet(
	"Demonic Tutor", "Vampiric Tutor", "Imperial Seal", "Mystical Tutor",
	"Worldly Tutor", "Enlightened Tutor", "Grim Tutor", "Diabolic Intent",
	"Gamble", "Chord of Calling", "Green Sun's Zenith",
	"Finale of Devastation", "Eladamri's Call", "Fabricate",
	"Whir of Invention", "Tooth and Nail", "Demonic Consultation",
	"Tainted Pact", "Scheming Symmetry", "Diabolic Tutor",
)

// InteractionStaples is the curated list of premium interaction pieces.
var InteractionStaples = NewNameSet(
	"Swords to Plowshares", "Path to Exile", "Counterspell", "Swan Song",
	"Dovin's Veto", "Cyclonic Rift", "Chaos Warp", "Beast Within",
	"Generous Gift", "Assassin's Trophy", "Abrupt Decay", "Toxic Deluge",
	"Wrath of God", "Damnation", "Blasphemous Act", "Force of Will",
	"Fierce Guardianship", "Deflecting Swat", "Mental Misstep",
	"Pongify", "Rapid Hybridization", "Anguished Unmaking", "Vandalblast",
	"Nature's Claim", "Krosan Grip", "Flusterstorm", "Deadly Rollick",
	"Teferi's Protection", "Heroic Intervention", "Flawless Maneuver",
)

// PremiumLands is the curated list of premium and fetch lands used to
// grade mana-base quality.
var PremiumLands = NewNameSet(
	"Command Tower", "City of Brass", "Mana Confluence", "Ancient Tomb",
	"Gaea's Cradle", "Cavern of Souls", "Exotic Orchard", "Reflecting Pool",
	// Fetches
	"Flooded Strand", "Polluted Delta", "Bloodstained Mire",
	"Wooded Foothills", "Windswept Heath", "Marsh Flats", "Scalding Tarn",
	"Verdant Catacombs", "Arid Mesa", "Misty Rainforest", "Prismatic Vista",
	// Original duals
	"Tundra", "Underground Sea", "Badlands", "Taiga", "Savannah",
	"Scrubland", "Volcanic Island", "Bayou", "Plateau", "Tropical Island",
	// Shocks
	"Hallowed Fountain", "Watery Grave", "Blood Crypt", "Stomping Ground",
	"Temple Garden", "Godless Shrine", "Steam Vents", "Overgrown Tomb",
	"Sacred Foundry", "Breeding Pool",
)

// ComboPieces is the curated list of cards that enable unbounded loops or
// direct alternate wins.
var ComboPieces = NewNameSet(
	"Thassa's Oracle", "Demonic Consultation", "Tainted Pact",
	"Laboratory Maniac", "Jace, Wielder of Mysteries", "Isochron Scepter",
	"Dramatic Reversal", "Dockside Extortionist", "Temur Sabertooth",
	"Kiki-Jiki, Mirror Breaker", "Zealous Conscripts", "Splinter Twin",
	"Pestermite", "Deceiver Exarch", "Worldgorger Dragon", "Animate Dead",
	"Food Chain", "Squee, the Immortal", "Exquisite Blood", "Sanguine Bond",
	"Mikaeus, the Unhallowed", "Triskelion", "Walking Ballista",
	"Heliod, Sun-Crowned", "Basalt Monolith", "Rings of Brighthearth",
	"Grim Monolith", "Power Artifact", "Devoted Druid", "Vizier of Remedies",
	"Deadeye Navigator", "Peregrine Drake", "Godo, Bandit Warlord",
	"Helm of the Host", "Gravecrawler", "Phyrexian Altar",
	"Helm of Obedience", "Bolas's Citadel",
)

// CombatFinishers are cards that close games through combat.
var CombatFinishers = NewNameSet(
	"Craterhoof Behemoth", "Overwhelming Stampede", "Triumph of the Hordes",
	"Moraug, Fury of Akoum", "Aurelia, the Warleader", "Blightsteel Colossus",
	"Master of Cruelties", "Insurrection", "Finale of Glory", "Overrun",
	"Etali, Primal Conqueror", "Craterhoof Monument", "Pathbreaker Ibex",
)

// AlternateWincons are cards that win outside of combat damage.
var AlternateWincons = NewNameSet(
	"Thassa's Oracle", "Laboratory Maniac", "Jace, Wielder of Mysteries",
	"Approach of the Second Sun", "Maze's End", "Revel in Riches",
	"Mechanized Production", "Simic Ascendancy", "Felidar Sovereign",
	"Test of Endurance", "Helix Pinnacle", "Mortal Combat",
	"Liliana's Contract", "Coalition Victory",
)

// DrainWincons win through repeated drain, burn, or attrition.
var DrainWincons = NewNameSet(
	"Exsanguinate", "Torment of Hailfire", "Gray Merchant of Asphodel",
	"Aetherflux Reservoir", "Comet Storm", "Crackle with Power",
	"Blood Artist", "Zulaport Cutthroat", "Syr Konrad, the Grim",
	"Debt to the Deathless",
)

// FreeCounters are zero-cost permission spells suggested against
// combo-heavy playgroups.
var FreeCounters = []string{
	"Fierce Guardianship", "Swan Song", "Flusterstorm", "Dovin's Veto",
	"Force of Will", "Pact of Negation",
}

// GraveyardHate is suggested against graveyard-centric playgroups.
var GraveyardHate = []string{
	"Rest in Peace", "Bojuka Bog", "Soul-Guide Lantern",
	"Relic of Progenitus", "Grafdigger's Cage", "Dauthi Voidwalker",
}

// CardDraw is suggested for playgroups with long, grindy games.
var CardDraw = []string{
	"Rhystic Study", "Mystic Remora", "Phyrexian Arena", "Esper Sentinel",
	"Sylvan Library", "The One Ring",
}

// BudgetAlternative is a cheaper functional stand-in for an expensive card.
type BudgetAlternative struct {
	Replacement string
	Note        string
}

// BudgetAlternatives maps lowercased expensive card names to a curated
// cheaper swap. Cards without an entry fall back to a keyword-based
// generic suggestion.
var BudgetAlternatives = map[string]BudgetAlternative{
	"mana crypt":          {Replacement: "Sol Ring", Note: "Slower but still zero-cost acceleration for most tables"},
	"mana vault":          {Replacement: "Worn Powerstone", Note: "Less explosive, far cheaper"},
	"demonic tutor":       {Replacement: "Diabolic Tutor", Note: "Twice the mana, same effect"},
	"vampiric tutor":      {Replacement: "Scheming Symmetry", Note: "Symmetrical, but a fraction of the price"},
	"imperial seal":       {Replacement: "Scheming Symmetry", Note: "Near-identical effect at sorcery speed"},
	"force of will":       {Replacement: "Counterspell", Note: "Not free, but reliable permission"},
	"fierce guardianship": {Replacement: "Swan Song", Note: "One mana is close to free"},
	"cyclonic rift":       {Replacement: "Evacuation", Note: "Symmetrical, still resets the board"},
	"mana drain":          {Replacement: "Counterspell", Note: "Loses the mana bonus only"},
	"jeweled lotus":       {Replacement: "Lotus Petal", Note: "Any color once, much cheaper"},
	"gaea's cradle":       {Replacement: "Growing Rites of Itlimoc", Note: "Transforms into a Cradle"},
	"wheel of fortune":    {Replacement: "Magus of the Wheel", Note: "Same wheel on a creature"},
	"the great henge":     {Replacement: "Colossal Majesty", Note: "Slower card advantage for big decks"},
	"dockside extortionist": {Replacement: "Treasure Nabber", Note: "Different angle on stolen mana"},
	"grim monolith":       {Replacement: "Basalt Monolith", Note: "Same ramp pattern, untaps for more"},
	"scalding tarn":       {Replacement: "Evolving Wilds", Note: "Fetches basics only, enters the same"},
	"underground sea":     {Replacement: "Drowned Catacomb", Note: "Check land covering the same colors"},
	"volcanic island":     {Replacement: "Sulfur Falls", Note: "Check land covering the same colors"},
	"tundra":              {Replacement: "Glacial Fortress", Note: "Check land covering the same colors"},
	"bayou":               {Replacement: "Woodland Cemetery", Note: "Check land covering the same colors"},
	"craterhoof behemoth": {Replacement: "Overwhelming Stampede", Note: "The trigger as a sorcery"},
	"rhystic study":       {Replacement: "Mystic Remora", Note: "A few turns of the same tax"},
	"smothering tithe":    {Replacement: "Monologue Tax", Note: "Slower treasure accumulation"},
}

// CardPowerEstimate returns a 1-10 heuristic power estimate for a single
// card, used when reweighting candidates against a playgroup's power level.
func CardPowerEstimate(c deck.Card) int {
	name := strings.ToLower(c.Name)
	switch {
	case ComboPieces.Contains(name) || FastMana.Contains(name):
		return 9
	case Tutors.Contains(name):
		return 8
	case InteractionStaples.Contains(name) || PremiumLands.Contains(name):
		return 7
	case c.CMC <= 2:
		return 6
	default:
		return 5
	}
}

// IsInteractionCard reports whether a card reads as interaction, either by
// curated list membership or by an oracle-text heuristic. Used by the meta
// layer's combo-frequency boost.
func IsInteractionCard(c deck.Card) bool {
	if InteractionStaples.Contains(c.Name) {
		return true
	}
	oracle := strings.ToLower(c.OracleText)
	return strings.Contains(oracle, "counter target") ||
		(strings.Contains(oracle, "destroy") && strings.Contains(oracle, "target")) ||
		(strings.Contains(oracle, "exile") && strings.Contains(oracle, "target"))
}
