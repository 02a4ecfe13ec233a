package ports

import (
	"context"

	"itinerary-engine/internal/domain"
)

// Port: a boundary for discovering candidate places near a point.
type PlaceCatalog interface {
	// Search returns places within radiusMeters of the given point,
	// optionally filtered by category. Results include rating and opening
	// windows when the catalog knows them.
	Search(ctx context.Context, center domain.Coordinates, radiusMeters int, category string) ([]domain.Place, error)
}

// Port: a boundary for retrieving stored Place entities (seeded catalogs,
// user favorites) from a data source.
type PlaceRepository interface {
	ListPlaces(ctx context.Context) ([]domain.Place, error)
}
