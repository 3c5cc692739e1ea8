package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
	"github.com/rocketscienceinc/mindgames-backend/internal/repository/storage"
)

func newResultRepo(t *testing.T) ResultRepository {
	t.Helper()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Init(context.Background()))

	return NewResultRepository(st.Connection)
}

func TestResultRepository_BestByPlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Summarises each game", func(t *testing.T) {
		// Given: several finished games for one player and one for another
		repo := newResultRepo(t)

		results := []*entity.Result{
			{PlayerID: "p1", Kind: entity.KindScramble, Score: 2},
			{PlayerID: "p1", Kind: entity.KindScramble, Score: 5},
			{PlayerID: "p1", Kind: entity.KindMemory, Score: 8, Moves: 14},
			{PlayerID: "p1", Kind: entity.KindMemory, Score: 8, Moves: 11},
			{PlayerID: "p1", Kind: entity.KindTicTacToe, Winner: "X"},
			{PlayerID: "p1", Kind: entity.KindTicTacToe, Winner: entity.WinnerDraw},
			{PlayerID: "p1", Kind: entity.KindTicTacToe, Winner: "O"},
			{PlayerID: "p2", Kind: entity.KindScramble, Score: 9},
		}
		for _, result := range results {
			require.NoError(t, repo.Save(ctx, result))
		}

		// When: the best values of p1 are read
		scores, err := repo.BestByPlayer(ctx, "p1")

		// Then: each kind uses its own measure
		require.NoError(t, err)
		assert.Equal(t, []entity.Best{
			{Kind: entity.KindMemory, Best: 11, Played: 2},
			{Kind: entity.KindScramble, Best: 5, Played: 2},
			{Kind: entity.KindTicTacToe, Best: 3, Played: 3},
		}, scores)
	})

	t.Run("Player without results", func(t *testing.T) {
		repo := newResultRepo(t)

		scores, err := repo.BestByPlayer(ctx, "nobody")

		require.NoError(t, err)
		assert.Empty(t, scores)
	})
}
