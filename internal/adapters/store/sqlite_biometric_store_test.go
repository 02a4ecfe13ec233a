package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"itinerary-engine/internal/adapters/repositories"
	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
)

func newBiometricStore(t *testing.T) *SqliteBiometricStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repositories.InitSchema(db))
	return NewSqliteBiometricStore(db)
}

func TestBiometricStoreRoundTrip(t *testing.T) {
	s := newBiometricStore(t)
	ctx := context.Background()

	profile := domain.BiometricProfile{Gender: "female", Age: 28, WeightKg: 62, HeightCm: 168}
	require.NoError(t, s.Set(ctx, "u1", profile))

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestBiometricStoreMissingUser(t *testing.T) {
	s := newBiometricStore(t)

	_, err := s.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestBiometricStoreReplace(t *testing.T) {
	s := newBiometricStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "u1", domain.BiometricProfile{Gender: "male", Age: 30, WeightKg: 80, HeightCm: 182}))
	require.NoError(t, s.Set(ctx, "u1", domain.BiometricProfile{Gender: "male", Age: 31, WeightKg: 78, HeightCm: 182}))

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 31, got.Age)
	assert.Equal(t, 78.0, got.WeightKg)
}
