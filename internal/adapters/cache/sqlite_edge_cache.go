package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"itinerary-engine/internal/ports"
)

// SQLite backed cache for from->to travel estimates. Keys are expected to be
// consistent (domain.Coordinates.Key output) by the caller.
type SqliteEdgeCache struct {
	DB *sql.DB
}

func NewSqliteEdgeCache(db *sql.DB) *SqliteEdgeCache {
	return &SqliteEdgeCache{DB: db}
}

// Fetch cached edges for one origin and multiple destinations.
func (s *SqliteEdgeCache) GetMany(
	ctx context.Context,
	fromKey string,
	toKeys []string,
) (map[string]ports.RouteResult, error) {
	if s.DB == nil {
		return nil, errors.New("edge cache: db is nil")
	}
	if fromKey == "" {
		return nil, errors.New("get edge cache: fromKey must not be empty")
	}
	if len(toKeys) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	uniq := dedupeKeys(toKeys)
	if len(uniq) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	ph := make([]string, len(uniq))
	args := make([]any, 0, 1+len(uniq))
	args = append(args, fromKey)
	for i, k := range uniq {
		ph[i] = "?"
		args = append(args, k)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain
	// parameterized.
	q := fmt.Sprintf(`
	SELECT to_key, duration_seconds, instructions, estimated
    FROM travel_edges
    WHERE from_key = ?
        AND to_key IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get edge cache: query travel_edges table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.RouteResult, len(uniq))
	for rows.Next() {
		var (
			toKey        string
			seconds      int
			instructions string
			estimated    bool
		)
		if err := rows.Scan(&toKey, &seconds, &instructions, &estimated); err != nil {
			return nil, fmt.Errorf("get edge cache: scan rows: %w", err)
		}
		out[toKey] = ports.RouteResult{
			DurationSeconds: seconds,
			Instructions:    instructions,
			Estimated:       estimated,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get edge cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached edges for a single origin.
func (s *SqliteEdgeCache) PutMany(
	ctx context.Context,
	fromKey string,
	results map[string]ports.RouteResult,
) error {
	if s.DB == nil {
		return errors.New("edge cache: db is nil")
	}
	if fromKey == "" {
		return errors.New("insert edge cache: fromKey must not be empty")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert edge cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO travel_edges (from_key, to_key, duration_seconds, instructions, estimated)
    VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert edge cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for toKey, r := range results {
		if strings.TrimSpace(toKey) == "" {
			return fmt.Errorf("insert edge cache: empty destination key")
		}
		if _, err := stmt.ExecContext(ctx, fromKey, toKey, r.DurationSeconds, r.Instructions, r.Estimated); err != nil {
			return fmt.Errorf("insert edge cache to_key=%q: %w", toKey, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert edge cache commit: %w", err)
	}

	return nil
}
