package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrixRow retrieves travel durations from one origin to many
// destinations using the OpenRouteService matrix endpoint. Results are
// returned in destination order.
func (o *ORSRoutingProvider) fetchMatrixRow(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
	mode string,
) ([]ports.RouteResult, error) {
	if len(destinations) == 0 {
		return []ports.RouteResult{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, mode)

	locations := make([][]float64, 0, 1+len(destinations))
	locations = append(locations, origin.CoordsToList())
	for _, c := range destinations {
		locations = append(locations, c.CoordsToList())
	}

	destIdx := make([]int, 0, len(destinations))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	bodyObj := matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"duration"},
		Sources:      []int{0},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Durations) != 1 {
		return nil, fmt.Errorf("expected 1 source row; got %d", len(mr.Durations))
	}

	row := mr.Durations[0]
	if len(row) != len(destinations) {
		return nil, fmt.Errorf(
			"row length does not match destinations: durations=%d destinations=%d",
			len(row), len(destinations),
		)
	}

	out := make([]ports.RouteResult, len(destinations))
	for i, secondsPtr := range row {
		if secondsPtr == nil {
			return nil, fmt.Errorf("matrix returned no duration for destination %d", i)
		}

		seconds := int(math.Round(*secondsPtr))
		out[i] = ports.RouteResult{
			DurationSeconds: seconds,
			Instructions:    fmt.Sprintf("%s for about %d min", modeVerb(mode), (seconds+59)/60),
		}
	}

	return out, nil
}

func modeVerb(mode string) string {
	switch mode {
	case "driving-car":
		return "drive"
	case "cycling-regular":
		return "cycle"
	default:
		return "walk"
	}
}
