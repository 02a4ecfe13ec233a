package weather

import (
	"context"

	"itinerary-engine/internal/domain"
)

// MockWeatherProvider serves fixed conditions for tests.
type MockWeatherProvider struct {
	Condition  string
	ChangeETA  int
	CurrentErr error
	ETAErr     error
}

func (m *MockWeatherProvider) Current(ctx context.Context, at domain.Coordinates) (string, error) {
	if m.CurrentErr != nil {
		return "", m.CurrentErr
	}
	return m.Condition, nil
}

func (m *MockWeatherProvider) ForecastChangeETA(ctx context.Context, at domain.Coordinates) (int, error) {
	if m.ETAErr != nil {
		return 0, m.ETAErr
	}
	return m.ChangeETA, nil
}
