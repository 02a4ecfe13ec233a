package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
)

// SQLite-backed implementation of the BiometricStore port.
type SqliteBiometricStore struct{ DB *sql.DB }

func NewSqliteBiometricStore(db *sql.DB) *SqliteBiometricStore {
	return &SqliteBiometricStore{DB: db}
}

// Get returns the stored profile for userID, or ports.ErrNotFound.
func (s *SqliteBiometricStore) Get(ctx context.Context, userID string) (domain.BiometricProfile, error) {
	var p domain.BiometricProfile

	if s.DB == nil {
		return p, errors.New("biometric store: DB is nil")
	}

	query := `
	SELECT gender, age, weight_kg, height_cm
	FROM biometric_profiles
	WHERE user_id = ?;
	`
	row := s.DB.QueryRowContext(ctx, query, userID)
	err := row.Scan(&p.Gender, &p.Age, &p.WeightKg, &p.HeightCm)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ports.ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("get biometric profile: scan row: %w", err)
	}

	return p, nil
}

// Set stores or replaces the profile for userID.
func (s *SqliteBiometricStore) Set(ctx context.Context, userID string, p domain.BiometricProfile) error {
	if s.DB == nil {
		return errors.New("biometric store: DB is nil")
	}

	query := `
	INSERT OR REPLACE INTO biometric_profiles (user_id, gender, age, weight_kg, height_cm)
	VALUES (?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, userID, p.Gender, p.Age, p.WeightKg, p.HeightCm); err != nil {
		return fmt.Errorf("set biometric profile: %w", err)
	}
	return nil
}
