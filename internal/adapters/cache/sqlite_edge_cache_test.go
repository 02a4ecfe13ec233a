package cache

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"itinerary-engine/internal/adapters/repositories"
	"itinerary-engine/internal/ports"
)

func newTestCache(t *testing.T) *SqliteEdgeCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repositories.InitSchema(db))
	return NewSqliteEdgeCache(db)
}

func TestEdgeCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	put := map[string]ports.RouteResult{
		"48.86000,2.34000": {DurationSeconds: 300, Instructions: "walk for about 5 min"},
		"48.87000,2.35000": {DurationSeconds: 600, Instructions: "walk for about 10 min", Estimated: true},
	}
	require.NoError(t, c.PutMany(ctx, "48.85000,2.35000", put))

	got, err := c.GetMany(ctx, "48.85000,2.35000", []string{
		"48.86000,2.34000", "48.87000,2.35000", "48.99000,2.99000",
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, put["48.86000,2.34000"], got["48.86000,2.34000"])
	assert.Equal(t, put["48.87000,2.35000"], got["48.87000,2.35000"])
	_, miss := got["48.99000,2.99000"]
	assert.False(t, miss, "uncached key must be absent, not zero-valued")
}

func TestEdgeCacheReplaceOnSecondPut(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	from, to := "a", "b"
	require.NoError(t, c.PutMany(ctx, from, map[string]ports.RouteResult{
		to: {DurationSeconds: 900, Instructions: "estimated", Estimated: true},
	}))
	// Live data later replaces the fallback row.
	require.NoError(t, c.PutMany(ctx, from, map[string]ports.RouteResult{
		to: {DurationSeconds: 240, Instructions: "walk for about 4 min"},
	}))

	got, err := c.GetMany(ctx, from, []string{to})
	require.NoError(t, err)
	require.Contains(t, got, to)
	assert.Equal(t, 240, got[to].DurationSeconds)
	assert.False(t, got[to].Estimated)
}

func TestEdgeCacheEmptyInputs(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	got, err := c.GetMany(ctx, "a", nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, c.PutMany(ctx, "a", nil))

	_, err = c.GetMany(ctx, "", []string{"b"})
	assert.Error(t, err)
}
