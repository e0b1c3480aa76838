// Package repository implements the data-access layer over the storage
// schema, converting between row types and the engine's deck types.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/storage/models"
)

const timeLayout = "2006-01-02 15:04:05.999999"

// CorpusRepository handles database operations for the deck corpus.
type CorpusRepository interface {
	// SaveDeck inserts a deck or replaces it when one with the same name
	// already exists.
	SaveDeck(ctx context.Context, d deck.Deck) error

	// GetDeck retrieves a deck by name. Returns sql.ErrNoRows when absent.
	GetDeck(ctx context.Context, name string) (deck.Deck, error)

	// ListDecks retrieves the full corpus ordered by name.
	ListDecks(ctx context.Context) ([]deck.Deck, error)

	// DeleteDeck removes a deck and its cards by name.
	DeleteDeck(ctx context.Context, name string) error

	// Count returns the number of corpus decks.
	Count(ctx context.Context) (int, error)
}

// corpusRepository is the concrete implementation of CorpusRepository.
type corpusRepository struct {
	db *sql.DB
}

// NewCorpusRepository creates a new corpus repository.
func NewCorpusRepository(db *sql.DB) CorpusRepository {
	return &corpusRepository{db: db}
}

// SaveDeck inserts a deck or replaces it when one with the same name exists.
func (r *corpusRepository) SaveDeck(ctx context.Context, d deck.Deck) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(timeLayout)

	var deckID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM decks WHERE name = ?`, d.Name).Scan(&deckID)
	switch {
	case err == sql.ErrNoRows:
		res, insErr := tx.ExecContext(ctx, `
			INSERT INTO decks (name, commander, archetype, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, d.Name, commanderName(d), d.Archetype, now, now)
		if insErr != nil {
			return fmt.Errorf("insert deck: %w", insErr)
		}
		deckID, insErr = res.LastInsertId()
		if insErr != nil {
			return fmt.Errorf("deck id: %w", insErr)
		}
	case err != nil:
		return fmt.Errorf("lookup deck: %w", err)
	default:
		if _, err := tx.ExecContext(ctx, `
			UPDATE decks SET commander = ?, archetype = ?, updated_at = ? WHERE id = ?
		`, commanderName(d), d.Archetype, now, deckID); err != nil {
			return fmt.Errorf("update deck: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, deckID); err != nil {
			return fmt.Errorf("clear deck cards: %w", err)
		}
	}

	insert := `
		INSERT INTO deck_cards (deck_id, name, colors, cmc, type_line, oracle_text, price, quantity, is_commander)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if d.Commander != nil {
		c := *d.Commander
		if _, err := tx.ExecContext(ctx, insert,
			deckID, c.Name, strings.Join(c.Colors, ","), c.CMC, c.TypeLine, c.OracleText, c.Price, 1, 1,
		); err != nil {
			return fmt.Errorf("insert commander: %w", err)
		}
	}
	for _, e := range d.Cards {
		c := e.Card
		if _, err := tx.ExecContext(ctx, insert,
			deckID, c.Name, strings.Join(c.Colors, ","), c.CMC, c.TypeLine, c.OracleText, c.Price, e.Quantity, 0,
		); err != nil {
			return fmt.Errorf("insert card %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetDeck retrieves a deck by name.
func (r *corpusRepository) GetDeck(ctx context.Context, name string) (deck.Deck, error) {
	var (
		deckID    int64
		archetype string
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, archetype FROM decks WHERE name = ?`, name).
		Scan(&deckID, &archetype)
	if err != nil {
		return deck.Deck{}, err
	}

	d := deck.Deck{Name: name, Archetype: archetype}
	if err := r.loadCards(ctx, deckID, &d); err != nil {
		return deck.Deck{}, err
	}
	return d, nil
}

// ListDecks retrieves the full corpus ordered by name.
func (r *corpusRepository) ListDecks(ctx context.Context) ([]deck.Deck, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, archetype FROM decks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var headers []models.DeckRow
	for rows.Next() {
		var h models.DeckRow
		if err := rows.Scan(&h.ID, &h.Name, &h.Archetype); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decks: %w", err)
	}

	decks := make([]deck.Deck, 0, len(headers))
	for _, h := range headers {
		d := deck.Deck{Name: h.Name, Archetype: h.Archetype}
		if err := r.loadCards(ctx, h.ID, &d); err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

// DeleteDeck removes a deck and its cards by name.
func (r *corpusRepository) DeleteDeck(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	return nil
}

// Count returns the number of corpus decks.
func (r *corpusRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count decks: %w", err)
	}
	return n, nil
}

// loadCards fills a deck's commander and card entries from deck_cards.
func (r *corpusRepository) loadCards(ctx context.Context, deckID int64, d *deck.Deck) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, colors, cmc, type_line, oracle_text, price, quantity, is_commander
		FROM deck_cards
		WHERE deck_id = ?
		ORDER BY name
	`, deckID)
	if err != nil {
		return fmt.Errorf("load deck cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var row models.DeckCardRow
		if err := rows.Scan(&row.Name, &row.Colors, &row.CMC, &row.TypeLine, &row.OracleText, &row.Price, &row.Quantity, &row.IsCommander); err != nil {
			return fmt.Errorf("scan deck card: %w", err)
		}
		c := cardFromRow(row)
		if row.IsCommander {
			d.Commander = &c
			continue
		}
		d.Cards = append(d.Cards, deck.Entry{Card: c, Quantity: row.Quantity})
	}
	return rows.Err()
}

// cardFromRow converts a deck_cards row into an engine card.
func cardFromRow(row models.DeckCardRow) deck.Card {
	return deck.Card{
		Name:       row.Name,
		Colors:     splitColors(row.Colors),
		CMC:        row.CMC,
		TypeLine:   row.TypeLine,
		OracleText: row.OracleText,
		Price:      row.Price,
	}
}

// commanderName extracts the commander name or empty string.
func commanderName(d deck.Deck) string {
	if d.Commander == nil {
		return ""
	}
	return d.Commander.Name
}

// splitColors parses a comma-joined color string; empty input means colorless.
func splitColors(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
