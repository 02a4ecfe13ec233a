package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"itinerary-engine/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		place_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		visit_minutes INTEGER NOT NULL,
		rating REAL NOT NULL DEFAULT 0,
		open_minute INTEGER,
		close_minute INTEGER
	);
	`

	// estimated is BOOLEAN so the flag binds as a Go bool on both engines:
	// Postgres (pgx) rejects bool against an integer column, SQLite treats
	// BOOLEAN as numeric affinity.
	createEdgeCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_edges (
        from_key TEXT NOT NULL,
        to_key TEXT NOT NULL,
        duration_seconds INTEGER NOT NULL,
        instructions TEXT NOT NULL DEFAULT '',
        estimated BOOLEAN NOT NULL DEFAULT FALSE,
        PRIMARY KEY (from_key, to_key)
    );
	`

	createBiometricsQuery := `
	CREATE TABLE IF NOT EXISTS biometric_profiles (
        user_id TEXT PRIMARY KEY,
        gender TEXT NOT NULL,
        age INTEGER NOT NULL,
        weight_kg REAL NOT NULL,
        height_cm REAL NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_travel_edges_to_from
    ON travel_edges(to_key, from_key);
	`

	statements := []string{
		createPlacesQuery,
		createEdgeCacheQuery,
		createBiometricsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PlaceSeed struct {
	PlaceID  string  `json:"place_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Rating   float64 `json:"rating"`
	// Duration is free-form and parsed tolerantly ("1 hr 30 mins", "45").
	Duration string `json:"recommended_duration"`
	Opens    string `json:"opens,omitempty"`
	Closes   string `json:"closes,omitempty"`
}

// Populate the database with place data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO places (
		place_id, name, category, lat, lon, visit_minutes, rating, open_minute, close_minute
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range data {
		id := strings.TrimSpace(p.PlaceID)
		if id == "" {
			return fmt.Errorf("seed places: item at index %d: place_id cannot be empty", i+1)
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}

		var openMinute, closeMinute any
		if p.Opens != "" && p.Closes != "" {
			om, oerr := domain.ParseClock(p.Opens)
			cm, cerr := domain.ParseClock(p.Closes)
			if oerr == nil && cerr == nil && cm > om {
				openMinute, closeMinute = om, cm
			}
		}

		_, err := stmt.Exec(
			id, name, strings.TrimSpace(p.Category),
			p.Lat, p.Lng,
			domain.ParseVisitMinutes(p.Duration), p.Rating,
			openMinute, closeMinute,
		)
		if err != nil {
			return fmt.Errorf("seed places: insert place_id=%s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}
