package knowledge

import "strings"

// ComboKind classifies what a completed combo does.
type ComboKind string

const (
	// ComboInfinite loops without bound (mana, damage, tokens, turns).
	ComboInfinite ComboKind = "infinite"
	// ComboAlternate wins the game directly through an alternate condition.
	ComboAlternate ComboKind = "alternate"
	// ComboFinite is a strong but bounded interaction (locks, one-shot value).
	ComboFinite ComboKind = "finite"
)

// Combo is a multi-card pattern attached to a main card. Every piece must
// be satisfied simultaneously for the combo to be reported.
type Combo struct {
	Pieces []Piece
	Effect string
	Kind   ComboKind
}

// Record is the knowledge-base entry for one card: its functional
// categories, its known synergy partners, and the combos it anchors.
type Record struct {
	Categories []string
	Partners   []Piece
	Combos     []Combo
}

// HasCategory reports whether the record carries the given category.
func (r Record) HasCategory(cat string) bool {
	for _, c := range r.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Lookup returns the catalog record for a card name, case-insensitively.
func Lookup(name string) (Record, bool) {
	rec, ok := catalog[strings.ToLower(name)]
	return rec, ok
}

// CatalogNames returns every card name keyed in the catalog (lowercased).
func CatalogNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return names
}

// catalog is keyed by lowercased card name.
var catalog = map[string]Record{
	"thassa's oracle": {
		Categories: []string{"combo", "wincon"},
		Partners:   []Piece{LiteralCard("Demonic Consultation"), LiteralCard("Tainted Pact")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Demonic Consultation")}, Effect: "Exile your library, then win with Thassa's Oracle's trigger", Kind: ComboAlternate},
			{Pieces: []Piece{LiteralCard("Tainted Pact")}, Effect: "Exile your library, then win with Thassa's Oracle's trigger", Kind: ComboAlternate},
		},
	},
	"laboratory maniac": {
		Categories: []string{"combo", "wincon"},
		Partners:   []Piece{LiteralCard("Demonic Consultation"), LiteralCard("Tainted Pact")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Demonic Consultation")}, Effect: "Exile your library, then draw to win", Kind: ComboAlternate},
		},
	},
	"jace, wielder of mysteries": {
		Categories: []string{"combo", "wincon"},
		Partners:   []Piece{LiteralCard("Demonic Consultation")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Demonic Consultation")}, Effect: "Exile your library, then draw to win", Kind: ComboAlternate},
		},
	},
	"demonic consultation": {
		Categories: []string{"combo", "tutor"},
		Partners:   []Piece{LiteralCard("Thassa's Oracle"), LiteralCard("Laboratory Maniac")},
	},
	"tainted pact": {
		Categories: []string{"combo", "tutor"},
		Partners:   []Piece{LiteralCard("Thassa's Oracle")},
	},
	"isochron scepter": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Dramatic Reversal")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Dramatic Reversal"), AnyWithTag("mana_rock")}, Effect: "Untap your rocks every activation for unbounded mana", Kind: ComboInfinite},
		},
	},
	"dramatic reversal": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Isochron Scepter")},
	},
	"kiki-jiki, mirror breaker": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Zealous Conscripts"), LiteralCard("Deceiver Exarch"), LiteralCard("Pestermite")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Zealous Conscripts")}, Effect: "Unbounded hasty token copies", Kind: ComboInfinite},
			{Pieces: []Piece{LiteralCard("Deceiver Exarch")}, Effect: "Unbounded hasty token copies", Kind: ComboInfinite},
			{Pieces: []Piece{LiteralCard("Pestermite")}, Effect: "Unbounded hasty token copies", Kind: ComboInfinite},
		},
	},
	"splinter twin": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Deceiver Exarch"), LiteralCard("Pestermite")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Deceiver Exarch")}, Effect: "Unbounded hasty token copies", Kind: ComboInfinite},
		},
	},
	"exquisite blood": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Sanguine Bond"), LiteralCard("Vito, Thorn of the Dusk Rose")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Sanguine Bond")}, Effect: "Unbounded life drain loop", Kind: ComboInfinite},
			{Pieces: []Piece{LiteralCard("Vito, Thorn of the Dusk Rose")}, Effect: "Unbounded life drain loop", Kind: ComboInfinite},
		},
	},
	"sanguine bond": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Exquisite Blood")},
	},
	"mikaeus, the unhallowed": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Triskelion"), LiteralCard("Walking Ballista")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Triskelion")}, Effect: "Unbounded damage from undying loops", Kind: ComboInfinite},
			{Pieces: []Piece{LiteralCard("Walking Ballista")}, Effect: "Unbounded damage from undying loops", Kind: ComboInfinite},
		},
	},
	"heliod, sun-crowned": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Walking Ballista")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Walking Ballista")}, Effect: "Unbounded pings backed by lifelink counters", Kind: ComboInfinite},
		},
	},
	"basalt monolith": {
		Categories: []string{"combo", "fast_mana"},
		Partners:   []Piece{LiteralCard("Rings of Brighthearth")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Rings of Brighthearth")}, Effect: "Unbounded colorless mana", Kind: ComboInfinite},
		},
	},
	"grim monolith": {
		Categories: []string{"combo", "fast_mana"},
		Partners:   []Piece{LiteralCard("Power Artifact")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Power Artifact")}, Effect: "Unbounded colorless mana", Kind: ComboInfinite},
		},
	},
	"devoted druid": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Vizier of Remedies")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Vizier of Remedies")}, Effect: "Unbounded green mana", Kind: ComboInfinite},
		},
	},
	"worldgorger dragon": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Animate Dead")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Animate Dead")}, Effect: "Unbounded enter/leave loop, unbounded mana", Kind: ComboInfinite},
		},
	},
	"deadeye navigator": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Peregrine Drake"), LiteralCard("Dockside Extortionist")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Peregrine Drake")}, Effect: "Unbounded mana from flicker loops", Kind: ComboInfinite},
		},
	},
	"food chain": {
		Categories: []string{"combo", "ramp"},
		Partners:   []Piece{LiteralCard("Squee, the Immortal"), LiteralCard("Eternal Scourge")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Squee, the Immortal")}, Effect: "Unbounded creature mana", Kind: ComboInfinite},
			{Pieces: []Piece{LiteralCard("Eternal Scourge")}, Effect: "Unbounded creature mana", Kind: ComboInfinite},
		},
	},
	"godo, bandit warlord": {
		Categories: []string{"combo", "wincon"},
		Partners:   []Piece{LiteralCard("Helm of the Host")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Helm of the Host")}, Effect: "Unbounded combat steps", Kind: ComboInfinite},
		},
	},
	"gravecrawler": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Phyrexian Altar")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Phyrexian Altar"), AnyWithTag("tribal:zombie")}, Effect: "Unbounded sacrifice and recast loop", Kind: ComboInfinite},
		},
	},
	"phyrexian altar": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Gravecrawler")},
	},
	"karn, the great creator": {
		Categories: []string{"combo", "interaction"},
		Partners:   []Piece{LiteralCard("Mycosynth Lattice")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Mycosynth Lattice")}, Effect: "Opponents cannot activate or untap permanents", Kind: ComboFinite},
		},
	},
	"helm of obedience": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Rest in Peace"), LiteralCard("Leyline of the Void")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Rest in Peace")}, Effect: "Exile target player's entire library", Kind: ComboAlternate},
			{Pieces: []Piece{LiteralCard("Leyline of the Void")}, Effect: "Exile target player's entire library", Kind: ComboAlternate},
		},
	},
	"bolas's citadel": {
		Categories: []string{"combo", "draw"},
		Partners:   []Piece{LiteralCard("Sensei's Divining Top"), LiteralCard("Aetherflux Reservoir")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Sensei's Divining Top"), LiteralCard("Aetherflux Reservoir")}, Effect: "Recast Top from the library top for unbounded storm and life", Kind: ComboInfinite},
		},
	},
	"dockside extortionist": {
		Categories: []string{"combo", "fast_mana"},
		Partners:   []Piece{LiteralCard("Temur Sabertooth"), LiteralCard("Deadeye Navigator")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Temur Sabertooth")}, Effect: "Rebounce Dockside for unbounded treasures", Kind: ComboInfinite},
		},
	},
	"niv-mizzet, parun": {
		Categories: []string{"combo", "wincon"},
		Partners:   []Piece{LiteralCard("Curiosity"), LiteralCard("Ophidian Eye"), LiteralCard("Tandem Lookout")},
		Combos: []Combo{
			{Pieces: []Piece{LiteralCard("Curiosity")}, Effect: "Each draw pings, each ping draws", Kind: ComboInfinite},
			{Pieces: []Piece{LiteralCard("Ophidian Eye")}, Effect: "Each draw pings, each ping draws", Kind: ComboInfinite},
		},
	},
	"krenko, mob boss": {
		Categories: []string{"wincon"},
		Partners: []Piece{
			LiteralCard("Skirk Prospector"),
			LiteralCard("Goblin Chieftain"),
			LiteralCard("Impact Tremors"),
			LiteralCard("Purphoros, God of the Forge"),
		},
	},
	"impact tremors": {
		Categories: []string{"wincon"},
		Partners:   []Piece{LiteralCard("Purphoros, God of the Forge"), AnyWithTag("token_generator")},
	},
	"grave pact": {
		Categories: []string{"interaction"},
		Partners:   []Piece{LiteralCard("Dictate of Erebos"), AnyWithTag("sac_outlet")},
	},
	"dictate of erebos": {
		Categories: []string{"interaction"},
		Partners:   []Piece{LiteralCard("Grave Pact"), AnyWithTag("sac_outlet")},
	},
	"aetherflux reservoir": {
		Categories: []string{"wincon"},
		Partners:   []Piece{LiteralCard("Bolas's Citadel"), LiteralCard("Sensei's Divining Top")},
	},
	"rest in peace": {
		Categories: []string{"interaction"},
		Partners:   []Piece{LiteralCard("Helm of Obedience")},
	},
	"animate dead": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Worldgorger Dragon")},
	},
	"walking ballista": {
		Categories: []string{"combo", "wincon"},
		Partners:   []Piece{LiteralCard("Heliod, Sun-Crowned"), LiteralCard("Mikaeus, the Unhallowed")},
	},
	"rings of brighthearth": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Basalt Monolith")},
	},
	"sensei's divining top": {
		Categories: []string{"draw"},
		Partners:   []Piece{LiteralCard("Bolas's Citadel")},
	},
	"temur sabertooth": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Dockside Extortionist")},
	},
	"peregrine drake": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Deadeye Navigator")},
	},
	"triskelion": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Mikaeus, the Unhallowed")},
	},
	"zealous conscripts": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Kiki-Jiki, Mirror Breaker")},
	},
	"deceiver exarch": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Kiki-Jiki, Mirror Breaker"), LiteralCard("Splinter Twin")},
	},
	"pestermite": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Kiki-Jiki, Mirror Breaker"), LiteralCard("Splinter Twin")},
	},
	"vizier of remedies": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Devoted Druid")},
	},
	"curiosity": {
		Categories: []string{"combo"},
		Partners:   []Piece{LiteralCard("Niv-Mizzet, Parun")},
	},
}
