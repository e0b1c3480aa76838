package prices

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cturner512/edh-advisor/internal/deck"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	c := NewClient("test-agent")
	c.baseURL = server.URL
	return c, server
}

func TestGetCardPrice(t *testing.T) {
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.URL.Query().Get("exact"); got != "Sol Ring" {
			t.Errorf("exact = %q", got)
		}
		w.Write([]byte(`{"name":"Sol Ring","prices":{"usd":"1.99","usd_foil":"15.00"}}`))
	})
	defer server.Close()

	price, err := c.GetCardPrice(context.Background(), "Sol Ring")
	if err != nil {
		t.Fatalf("GetCardPrice: %v", err)
	}
	if price != 1.99 {
		t.Errorf("price = %v, want 1.99", price)
	}
}

func TestGetCardPriceFoilFallback(t *testing.T) {
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Foil Only","prices":{"usd":"","usd_foil":"8.50"}}`))
	})
	defer server.Close()

	price, err := c.GetCardPrice(context.Background(), "Foil Only")
	if err != nil {
		t.Fatalf("GetCardPrice: %v", err)
	}
	if price != 8.5 {
		t.Errorf("price = %v, want foil fallback 8.5", price)
	}
}

func TestGetCardPriceUnpriced(t *testing.T) {
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Digital Card","prices":{"usd":"","usd_foil":""}}`))
	})
	defer server.Close()

	price, err := c.GetCardPrice(context.Background(), "Digital Card")
	if err != nil {
		t.Fatalf("GetCardPrice: %v", err)
	}
	if price != 0 {
		t.Errorf("price = %v, want 0 for unpriced cards", price)
	}
}

func TestGetCardPriceNotFound(t *testing.T) {
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := c.GetCardPrice(context.Background(), "Storm Crow II")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if notFound.Name != "Storm Crow II" {
		t.Errorf("NotFoundError.Name = %q, want the card name", notFound.Name)
	}
}

func TestHydratePricesSkipsFailures(t *testing.T) {
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("exact") == "Unknown Card" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"name":"x","prices":{"usd":"3.00","usd_foil":""}}`))
	})
	defer server.Close()

	commander := deck.Card{Name: "Wilhelt, the Rotcleaver"}
	d := deck.Deck{
		Commander: &commander,
		Cards: []deck.Entry{
			{Card: deck.Card{Name: "Unknown Card"}, Quantity: 1},
			{Card: deck.Card{Name: "Counterspell"}, Quantity: 1},
			{Card: deck.Card{Name: "Pre-Priced", Price: 9.99}, Quantity: 1},
		},
	}

	skipped, err := c.HydratePrices(context.Background(), &d)
	if err != nil {
		t.Fatalf("HydratePrices: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if d.Commander.Price != 3 {
		t.Errorf("commander price = %v, want 3", d.Commander.Price)
	}
	if d.Cards[0].Card.Price != 0 {
		t.Errorf("unknown card price = %v, want untouched 0", d.Cards[0].Card.Price)
	}
	if d.Cards[1].Card.Price != 3 {
		t.Errorf("hydrated price = %v, want 3", d.Cards[1].Card.Price)
	}
	if d.Cards[2].Card.Price != 9.99 {
		t.Errorf("pre-priced card changed: %v", d.Cards[2].Card.Price)
	}
}

func TestHydratePricesHonorsContext(t *testing.T) {
	c, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"x","prices":{"usd":"1.00","usd_foil":""}}`))
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := deck.Deck{Cards: []deck.Entry{{Card: deck.Card{Name: "Opt"}, Quantity: 1}}}
	if _, err := c.HydratePrices(ctx, &d); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
