package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage_Init(t *testing.T) {
	ctx := context.Background()

	// Given: a fresh database file
	st, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	// When: Init runs twice
	require.NoError(t, st.Init(ctx))
	require.NoError(t, st.Init(ctx))

	// Then: the results table exists
	var name string
	err = st.Connection.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'results'`).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "results", name)
}
