package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/platform/obs"
	"itinerary-engine/internal/ports"
)

// EdgeCache is the persistence contract the provider uses to avoid repeated
// matrix calls. Satisfied by both the Postgres and SQLite caches.
type EdgeCache interface {
	GetMany(ctx context.Context, fromKey string, toKeys []string) (map[string]ports.RouteResult, error)
	PutMany(ctx context.Context, fromKey string, results map[string]ports.RouteResult) error
}

// ORSRoutingProvider implements RoutingProvider using OpenRouteService.
//
// It coordinates persistent edge caching and external matrix calls with
// retry/backoff. The provider is safe for concurrent use.
type ORSRoutingProvider struct {
	session   *http.Client
	apiKey    string
	baseURL   string
	edgeCache EdgeCache
}

func NewORSRoutingProvider(apiKey string, edgeCache EdgeCache) (*ORSRoutingProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRoutingProvider{
		session:   &http.Client{Timeout: 10 * time.Second},
		apiKey:    apiKey,
		baseURL:   "https://api.openrouteservice.org",
		edgeCache: edgeCache,
	}, nil
}

// Route delegates to the batched path to reuse caching and matrix logic.
func (o *ORSRoutingProvider) Route(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode string,
) (ports.RouteResult, error) {
	results, err := o.Routes(ctx, origin, []domain.Coordinates{destination}, mode)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf(
			"route %s -> %s: %w", origin.Key(), destination.Key(), err,
		)
	}
	if len(results) != 1 {
		return ports.RouteResult{}, fmt.Errorf(
			"route %s -> %s: expected 1 result, got %d", origin.Key(), destination.Key(), len(results),
		)
	}
	return results[0], nil
}

// Routes returns travel estimates from one origin to many destinations, in
// destination order, consulting the edge cache before the network.
func (o *ORSRoutingProvider) Routes(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
	mode string,
) (_ []ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.Routes")(&err)

	if len(destinations) == 0 {
		return []ports.RouteResult{}, nil
	}
	if mode == "" {
		mode = "foot-walking"
	}

	originKey := origin.Key()
	destKeys := make([]string, len(destinations))
	for i, d := range destinations {
		destKeys[i] = d.Key()
	}

	hits := make(map[string]ports.RouteResult)
	if o.edgeCache != nil {
		// A cache read failure only costs the network round trip.
		cached, cerr := o.edgeCache.GetMany(ctx, originKey, destKeys)
		if cerr != nil {
			log.Printf("edge cache read failed, fetching all: %v", cerr)
		} else {
			hits = cached
		}
	}

	var (
		missIdx    []int
		missCoords []domain.Coordinates
	)
	for i, k := range destKeys {
		if _, ok := hits[k]; !ok {
			missIdx = append(missIdx, i)
			missCoords = append(missCoords, destinations[i])
		}
	}

	if len(missIdx) > 0 {
		fetched, ferr := o.fetchMatrixRow(ctx, origin, missCoords, mode)
		if ferr != nil {
			return nil, fmt.Errorf("fetching matrix row: %w", ferr)
		}

		toCache := make(map[string]ports.RouteResult, len(fetched))
		for i, r := range fetched {
			key := missCoords[i].Key()
			hits[key] = r
			toCache[key] = r
		}

		if o.edgeCache != nil && len(toCache) > 0 {
			if cerr := o.edgeCache.PutMany(ctx, originKey, toCache); cerr != nil {
				log.Printf("edge cache write failed: %v", cerr)
			}
		}
	}

	out := make([]ports.RouteResult, len(destinations))
	for i, k := range destKeys {
		r, ok := hits[k]
		if !ok {
			return nil, fmt.Errorf("missing route result for %q", k)
		}
		out[i] = r
	}
	return out, nil
}
