package ports

import (
	"context"

	"itinerary-engine/internal/domain"
)

// RouteResult is the travel estimate between two points.
type RouteResult struct {
	DurationSeconds int
	Instructions    string
	// Estimated marks a fallback value substituted when live routing data
	// was unavailable.
	Estimated bool
}

// Contract for retrieving travel time between two coordinates.
type RoutingProvider interface {
	// Route returns the travel estimate from origin to destination for the
	// given travel mode (e.g. "foot-walking", "driving-car").
	Route(ctx context.Context, origin, destination domain.Coordinates, mode string) (RouteResult, error)
}

// Optional extension of RoutingProvider that supports batched lookups.
type RouteMatrixProvider interface {
	RoutingProvider
	// Routes returns travel estimates from one origin to many destinations,
	// in destination order.
	Routes(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates, mode string) ([]RouteResult, error)
}
