package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cturner512/edh-advisor/internal/meta"
	"github.com/cturner512/edh-advisor/internal/storage/models"
)

// ResultsRepository handles database operations for recorded game results.
type ResultsRepository interface {
	// Append records one game result for a player.
	Append(ctx context.Context, player string, result meta.GameResult) error

	// ListByPlayer retrieves a player's results oldest first.
	ListByPlayer(ctx context.Context, player string) ([]meta.GameResult, error)

	// CountByPlayer returns how many results a player has recorded.
	CountByPlayer(ctx context.Context, player string) (int, error)
}

// resultsRepository is the concrete implementation of ResultsRepository.
type resultsRepository struct {
	db *sql.DB
}

// NewResultsRepository creates a new game results repository.
func NewResultsRepository(db *sql.DB) ResultsRepository {
	return &resultsRepository{db: db}
}

// Append records one game result for a player.
func (r *resultsRepository) Append(ctx context.Context, player string, result meta.GameResult) error {
	commanders, err := json.Marshal(result.OpponentCommanders)
	if err != nil {
		return fmt.Errorf("encode opponent commanders: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO game_results (player, deck_used, result, turns, opponent_commanders, notes, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		player,
		result.DeckUsed,
		result.Result,
		result.Turns,
		string(commanders),
		result.Notes,
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert game result: %w", err)
	}
	return nil
}

// ListByPlayer retrieves a player's results oldest first.
func (r *resultsRepository) ListByPlayer(ctx context.Context, player string) ([]meta.GameResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT deck_used, result, turns, opponent_commanders, notes
		FROM game_results
		WHERE player = ?
		ORDER BY id
	`, player)
	if err != nil {
		return nil, fmt.Errorf("list game results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []meta.GameResult
	for rows.Next() {
		var row models.GameResultRow
		if err := rows.Scan(&row.DeckUsed, &row.Result, &row.Turns, &row.OpponentCommanders, &row.Notes); err != nil {
			return nil, fmt.Errorf("scan game result: %w", err)
		}
		gr := meta.GameResult{
			DeckUsed: row.DeckUsed,
			Result:   row.Result,
			Turns:    row.Turns,
			Notes:    row.Notes,
		}
		if row.OpponentCommanders != "" {
			if err := json.Unmarshal([]byte(row.OpponentCommanders), &gr.OpponentCommanders); err != nil {
				return nil, fmt.Errorf("decode opponent commanders: %w", err)
			}
		}
		results = append(results, gr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game results: %w", err)
	}
	return results, nil
}

// CountByPlayer returns how many results a player has recorded.
func (r *resultsRepository) CountByPlayer(ctx context.Context, player string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_results WHERE player = ?`, player).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count game results: %w", err)
	}
	return n, nil
}
