package places

import (
	"context"
	"errors"

	"itinerary-engine/internal/domain"
)

// MockPlaceCatalog serves a fixed result set for tests, optionally filtered
// by category.
type MockPlaceCatalog struct {
	Results []domain.Place
	Err     error
}

func (m *MockPlaceCatalog) Search(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	category string,
) ([]domain.Place, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if category == "" {
		return m.Results, nil
	}

	out := make([]domain.Place, 0, len(m.Results))
	for _, p := range m.Results {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// FailingCatalog is a catalog that always errors, for fallback-path tests.
func FailingCatalog() *MockPlaceCatalog {
	return &MockPlaceCatalog{Err: errors.New("catalog unavailable")}
}
