// Package models defines the database row types for the storage layer.
package models

import "time"

// DeckRow is a corpus deck as stored in the decks table.
type DeckRow struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Commander string    `json:"commander"`
	Archetype string    `json:"archetype"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeckCardRow is one card of a corpus deck as stored in the deck_cards
// table. Colors is a comma-joined WUBRG string.
type DeckCardRow struct {
	ID          int64   `json:"id"`
	DeckID      int64   `json:"deck_id"`
	Name        string  `json:"name"`
	Colors      string  `json:"colors"`
	CMC         float64 `json:"cmc"`
	TypeLine    string  `json:"type_line"`
	OracleText  string  `json:"oracle_text"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	IsCommander bool    `json:"is_commander"`
}

// GameResultRow is a recorded game as stored in the game_results table.
// OpponentCommanders holds a JSON-encoded string array.
type GameResultRow struct {
	ID                 int64     `json:"id"`
	Player             string    `json:"player"`
	DeckUsed           string    `json:"deck_used"`
	Result             string    `json:"result"`
	Turns              int       `json:"turns"`
	OpponentCommanders string    `json:"opponent_commanders"`
	Notes              string    `json:"notes"`
	PlayedAt           time.Time `json:"played_at"`
}
