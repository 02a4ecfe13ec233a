package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/platform/obs"
)

// OpenMeteoProvider implements the WeatherProvider port against the
// Open-Meteo forecast API, which needs no API key.
type OpenMeteoProvider struct {
	session *http.Client
	baseURL string
}

func NewOpenMeteoProvider() *OpenMeteoProvider {
	return &OpenMeteoProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.open-meteo.com",
	}
}

type forecastResponse struct {
	Current struct {
		WeatherCode int `json:"weather_code"`
	} `json:"current"`
	Hourly struct {
		Time        []string `json:"time"`
		WeatherCode []int    `json:"weather_code"`
	} `json:"hourly"`
}

// Current returns a coarse condition string for the given point.
func (p *OpenMeteoProvider) Current(ctx context.Context, at domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "weather.Current")(&err)

	fc, err := p.fetch(ctx, at)
	if err != nil {
		return "", err
	}
	return conditionForCode(fc.Current.WeatherCode), nil
}

// ForecastChangeETA returns the estimated minutes until the current
// condition changes, or -1 when no change appears within the horizon.
func (p *OpenMeteoProvider) ForecastChangeETA(ctx context.Context, at domain.Coordinates) (_ int, err error) {
	defer obs.Time(ctx, "weather.ForecastChangeETA")(&err)

	fc, err := p.fetch(ctx, at)
	if err != nil {
		return 0, err
	}

	current := conditionForCode(fc.Current.WeatherCode)
	now := time.Now()

	for i, stamp := range fc.Hourly.Time {
		if i >= len(fc.Hourly.WeatherCode) {
			break
		}
		if conditionForCode(fc.Hourly.WeatherCode[i]) == current {
			continue
		}

		t, perr := time.Parse("2006-01-02T15:04", stamp)
		if perr != nil {
			continue
		}
		minutes := int(t.Sub(now).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		return minutes, nil
	}

	return -1, nil
}

func (p *OpenMeteoProvider) fetch(ctx context.Context, at domain.Coordinates) (*forecastResponse, error) {
	endpoint := p.baseURL + "/v1/forecast"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create forecast request: %w", err)
	}

	q := req.URL.Query()
	q.Set("latitude", strconv.FormatFloat(at.Lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(at.Lon, 'f', 4, 64))
	q.Set("current", "weather_code")
	q.Set("hourly", "weather_code")
	q.Set("forecast_hours", "12")
	req.URL.RawQuery = q.Encode()

	resp, err := p.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast: unexpected status %d", resp.StatusCode)
	}

	var fc forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	return &fc, nil
}

// conditionForCode collapses WMO weather codes into the coarse buckets the
// scheduling engine cares about.
func conditionForCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "cloudy"
	case code >= 45 && code <= 48:
		return "fog"
	case code >= 51 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain"
	case code >= 85 && code <= 86:
		return "snow"
	case code >= 95:
		return "storm"
	default:
		return "unknown"
	}
}
