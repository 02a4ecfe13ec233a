package ports

import (
	"context"

	"itinerary-engine/internal/domain"
)

// Contract for current weather and short-horizon change forecasts.
type WeatherProvider interface {
	// Current returns a coarse condition string ("clear", "rain", ...).
	Current(ctx context.Context, at domain.Coordinates) (string, error)
	// ForecastChangeETA returns the estimated minutes until the current
	// condition changes. A negative value means no change in the horizon.
	ForecastChangeETA(ctx context.Context, at domain.Coordinates) (int, error)
}
