// Package prices fetches card prices from the Scryfall API to feed the
// budget analyzer. All calls are rate limited per Scryfall's guidance.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/cturner512/edh-advisor/internal/deck"
)

const (
	baseURL        = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond // 10 req/sec
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// Client is a rate-limited Scryfall price client.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	baseURL     string
}

// NewClient creates a new price client. userAgent identifies the
// application to Scryfall; an empty string gets a default.
func NewClient(userAgent string) *Client {
	if userAgent == "" {
		userAgent = "edh-advisor/1.0"
	}
	return &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   userAgent,
		baseURL:     baseURL,
	}
}

// NotFoundError indicates a card name Scryfall doesn't recognize.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("card not found: %s", e.Name)
}

// namedCard is the slice of Scryfall's card object this package needs.
type namedCard struct {
	Name   string `json:"name"`
	Prices struct {
		USD     string `json:"usd"`
		USDFoil string `json:"usd_foil"`
	} `json:"prices"`
}

// GetCardPrice fetches the USD price for an exact card name. Cards with no
// non-foil USD price fall back to the foil price; cards with neither
// return 0.
func (c *Client) GetCardPrice(ctx context.Context, name string) (float64, error) {
	u := fmt.Sprintf("%s/cards/named?exact=%s", c.baseURL, url.QueryEscape(name))

	var card namedCard
	if err := c.doRequest(ctx, u, name, &card); err != nil {
		return 0, fmt.Errorf("failed to get price for %q: %w", name, err)
	}

	raw := card.Prices.USD
	if raw == "" {
		raw = card.Prices.USDFoil
	}
	if raw == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q for %q: %w", raw, name, err)
	}
	return price, nil
}

// HydratePrices fills in the Price field of every card in a deck that is
// missing one. Lookups that fail are skipped so a flaky network or an
// unrecognized name never blocks analysis; the count of cards left
// unpriced is returned.
func (c *Client) HydratePrices(ctx context.Context, d *deck.Deck) (int, error) {
	skipped := 0

	hydrate := func(card *deck.Card) {
		if card.Price > 0 || card.Name == "" {
			return
		}
		price, err := c.GetCardPrice(ctx, card.Name)
		if err != nil {
			skipped++
			return
		}
		card.Price = price
	}

	if d.Commander != nil {
		hydrate(d.Commander)
	}
	for i := range d.Cards {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}
		hydrate(&d.Cards[i].Card)
	}
	return skipped, nil
}

// doRequest performs an HTTP GET with rate limiting and retry logic. name
// is the card the request is about, used for not-found errors.
func (c *Client) doRequest(ctx context.Context, u, name string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("failed to read response body: %w", readErr)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse JSON response: %w", err)
			}
			return nil

		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			if attempt < maxRetries {
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if duration, err := time.ParseDuration(retryAfter + "s"); err == nil {
						time.Sleep(duration)
						backoff = minDuration(backoff*2, maxBackoff)
						continue
					}
				}
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		case http.StatusNotFound:
			return &NotFoundError{Name: name}

		default:
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
