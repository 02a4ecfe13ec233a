package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"itinerary-engine/internal/domain"
)

// SQLite-backed implementation of the PlaceRepository port.
type SqlitePlaceRepository struct{ DB *sql.DB }

func NewSqlitePlaceRepository(db *sql.DB) *SqlitePlaceRepository {
	return &SqlitePlaceRepository{DB: db}
}

// Return all seeded places, ordered by id.
func (s *SqlitePlaceRepository) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite place repository: DB is nil")
	}

	query := `
	SELECT
		place_id,
		name,
		category,
		lat,
		lon,
		visit_minutes,
		rating,
		open_minute,
		close_minute
	FROM places
	ORDER BY place_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 64)
	for rows.Next() {
		var (
			p          domain.Place
			openMinute sql.NullInt64
			closeMin   sql.NullInt64
		)
		err := rows.Scan(
			&p.ID, &p.Name, &p.Category,
			&p.Coordinates.Lat, &p.Coordinates.Lon,
			&p.VisitMinutes, &p.Rating,
			&openMinute, &closeMin,
		)
		if err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}

		if openMinute.Valid && closeMin.Valid {
			p.Hours = &domain.OpeningWindow{
				OpenMinute:  int(openMinute.Int64),
				CloseMinute: int(closeMin.Int64),
			}
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}
