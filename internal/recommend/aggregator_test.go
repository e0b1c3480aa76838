package recommend

import (
	"testing"

	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/meta"
	"github.com/cturner512/edh-advisor/internal/similarity"
)

func recTarget() deck.Deck {
	return deck.Deck{Name: "Mine", Cards: []deck.Entry{
		{Card: deck.Card{Name: "Counterspell", Colors: []string{"U"}, CMC: 2, TypeLine: "Instant"}, Quantity: 1},
		{Card: deck.Card{Name: "Opt", Colors: []string{"U"}, CMC: 1, TypeLine: "Instant"}, Quantity: 1},
		{Card: deck.Card{Name: "Island", TypeLine: "Basic Land — Island"}, Quantity: 30},
	}}
}

func recCorpus() []deck.Deck {
	d := recTarget()
	d.Name = "Neighbor"
	d.Cards = append(d.Cards, deck.Entry{
		Card:     deck.Card{Name: "Rhystic Study", Colors: []string{"U"}, CMC: 3, TypeLine: "Enchantment"},
		Quantity: 1,
	})
	return []deck.Deck{d}
}

func TestRecommendFromSimilarDecks(t *testing.T) {
	agg := NewAggregator(similarity.NewEngine(similarity.DefaultWeights()), nil)
	recs := agg.Recommend(recTarget(), recCorpus(), nil, 0)

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1: %+v", len(recs), recs)
	}
	r := recs[0]
	if r.Card.Name != "Rhystic Study" {
		t.Errorf("Card = %q", r.Card.Name)
	}
	if r.Boost != 1.0 {
		t.Errorf("Boost = %v, want 1.0 without profile or model", r.Boost)
	}
	if r.Score != 0.868 {
		t.Errorf("Score = %v, want the bare similarity weight 0.868", r.Score)
	}
	if len(r.Justifications) == 0 || len(r.Sources) == 0 {
		t.Errorf("missing justifications or sources: %+v", r)
	}
}

func TestRecommendAppliesMetaMultiplier(t *testing.T) {
	agg := NewAggregator(nil, nil)
	profile := meta.Profile{Games: 4, HatedCards: []string{"rhystic study"}}
	recs := agg.Recommend(recTarget(), recCorpus(), &profile, 0)

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations: %+v", len(recs), recs)
	}
	r := recs[0]
	if r.Boost != 0.5 {
		t.Errorf("Boost = %v, want halved for a hated card", r.Boost)
	}
	if r.Score != 0.434 {
		t.Errorf("Score = %v, want 0.868 * 0.5", r.Score)
	}
	found := false
	for _, j := range r.Justifications {
		if j == "Your playgroup dislikes this card" {
			found = true
		}
	}
	if !found {
		t.Errorf("meta justification missing: %v", r.Justifications)
	}
}

func TestRecommendLimit(t *testing.T) {
	corpus := recCorpus()
	corpus[0].Cards = append(corpus[0].Cards,
		deck.Entry{Card: deck.Card{Name: "Brainstorm", Colors: []string{"U"}, CMC: 1, TypeLine: "Instant"}, Quantity: 1},
	)
	agg := NewAggregator(nil, nil)
	if recs := agg.Recommend(recTarget(), corpus, nil, 1); len(recs) != 1 {
		t.Errorf("limit not applied: %d results", len(recs))
	}
}
