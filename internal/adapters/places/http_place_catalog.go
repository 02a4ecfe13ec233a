package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/platform/obs"
)

// HTTPPlaceCatalog implements the PlaceCatalog port against a JSON place
// API (GET {base}/places/search). The catalog service owns vendor specifics;
// this adapter only speaks its response shape.
type HTTPPlaceCatalog struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewHTTPPlaceCatalog(baseURL, apiKey string) (*HTTPPlaceCatalog, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("place catalog base URL is empty")
	}

	return &HTTPPlaceCatalog{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type searchResponse struct {
	Places []struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
		Rating   float64 `json:"rating"`
		// Duration is free-form ("1 hr 20 mins", "90 min", "75").
		Duration string `json:"recommended_duration"`
		Opens    string `json:"opens,omitempty"`
		Closes   string `json:"closes,omitempty"`
	} `json:"places"`
}

// Search returns rated places near the given point. Opening windows and
// visit durations are parsed tolerantly; a place with unusable hours is
// returned without an opening constraint rather than dropped.
func (c *HTTPPlaceCatalog) Search(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	category string,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "places.Search")(&err)

	endpoint := c.baseURL + "/places/search"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("lat", strconv.FormatFloat(center.Lat, 'f', 6, 64))
	q.Set("lng", strconv.FormatFloat(center.Lon, 'f', 6, 64))
	q.Set("radius", strconv.Itoa(radiusMeters))
	if category != "" {
		q.Set("category", category)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("place search: unexpected status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]domain.Place, 0, len(decoded.Places))
	for _, p := range decoded.Places {
		place := domain.Place{
			ID:           p.ID,
			Name:         p.Name,
			Category:     p.Category,
			Coordinates:  domain.Coordinates{Lat: p.Lat, Lon: p.Lng},
			Rating:       p.Rating,
			VisitMinutes: domain.ParseVisitMinutes(p.Duration),
			Hours:        parseHours(p.Opens, p.Closes),
		}
		out = append(out, place)
	}

	return out, nil
}

func parseHours(opens, closes string) *domain.OpeningWindow {
	if opens == "" || closes == "" {
		return nil
	}
	openMin, err := domain.ParseClock(opens)
	if err != nil {
		return nil
	}
	closeMin, err := domain.ParseClock(closes)
	if err != nil || closeMin <= openMin {
		return nil
	}
	return &domain.OpeningWindow{OpenMinute: openMin, CloseMinute: closeMin}
}
