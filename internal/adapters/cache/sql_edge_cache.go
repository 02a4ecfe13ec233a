package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"itinerary-engine/internal/platform/obs"
	"itinerary-engine/internal/ports"
)

// SQLEdgeCache is a Postgres-backed cache for from->to travel estimates.
// Keys are coordinate strings produced by domain.Coordinates.Key.
type SQLEdgeCache struct {
	DB *sql.DB
}

func NewSQLEdgeCache(db *sql.DB) *SQLEdgeCache {
	return &SQLEdgeCache{DB: db}
}

// Fetch cached edges for one origin and multiple destinations.
func (s *SQLEdgeCache) GetMany(
	ctx context.Context,
	fromKey string,
	toKeys []string,
) (_ map[string]ports.RouteResult, err error) {
	defer obs.Time(ctx, "edge.cache.GetMany")(&err)

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

	q := `
	SELECT to_key, duration_seconds, instructions, estimated
    FROM travel_edges
    WHERE from_key = $1
        AND to_key = ANY($2::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, fromKey, uniq)
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
func (s *SQLEdgeCache) PutMany(
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
	INSERT INTO travel_edges (from_key, to_key, duration_seconds, instructions, estimated)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (from_key, to_key) DO UPDATE
	SET duration_seconds = EXCLUDED.duration_seconds,
		instructions = EXCLUDED.instructions,
		estimated = EXCLUDED.estimated;
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

func dedupeKeys(keys []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return uniq
}
