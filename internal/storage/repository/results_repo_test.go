package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cturner512/edh-advisor/internal/meta"
)

func TestResultsRepositoryAppendAndList(t *testing.T) {
	repo := NewResultsRepository(setupDB(t))
	ctx := context.Background()

	first := meta.GameResult{
		DeckUsed:           "Zombies",
		Result:             "win",
		Turns:              9,
		OpponentCommanders: []string{"Atraxa, Praetors' Voice", "Krenko, Mob Boss"},
		Notes:              "combo table",
	}
	second := meta.GameResult{DeckUsed: "Zombies", Result: "loss", Turns: 12}

	require.NoError(t, repo.Append(ctx, "alice", first))
	require.NoError(t, repo.Append(ctx, "alice", second))
	require.NoError(t, repo.Append(ctx, "bob", meta.GameResult{DeckUsed: "Dragons", Result: "win", Turns: 8}))

	results, err := repo.ListByPlayer(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, first, results[0])
	assert.Equal(t, "loss", results[1].Result)
	assert.Empty(t, results[1].OpponentCommanders)

	n, err := repo.CountByPlayer(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountByPlayer(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestResultsRepositoryListUnknownPlayer(t *testing.T) {
	repo := NewResultsRepository(setupDB(t))

	results, err := repo.ListByPlayer(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, results)
}
