package services

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
)

const (
	// OriginNodeID is the synthetic node id for the traveler's start point.
	OriginNodeID = "origin"

	// MaxGraphCandidates bounds the O(N^2) pairwise lookup cost and the
	// exposure to provider rate limits. Callers passing more places get the
	// overflow back for the day pool.
	MaxGraphCandidates = 8

	// Fallback edge substituted for any failed pairwise lookup.
	fallbackEdgeSeconds  = 15 * 60
	fallbackInstructions = "estimated"

	routeLookupTimeout = 10 * time.Second
	maxParallelLookups = 5
)

// TravelGraph is the complete directed travel-time graph over the origin and
// all candidate places. Every ordered pair has an edge; failed lookups are
// filled with the fallback edge, never left missing.
type TravelGraph struct {
	Origin domain.Coordinates
	Places []domain.Place

	edges map[string]ports.RouteResult // keyed "fromID|toID"
}

// Edge returns the travel estimate from one node to another. Unknown pairs
// return the fallback edge so callers never observe a missing edge.
func (g *TravelGraph) Edge(fromID, toID string) ports.RouteResult {
	if r, ok := g.edges[fromID+"|"+toID]; ok {
		return r
	}
	return fallbackEdge()
}

// EdgeCount returns the number of directed edges in the graph.
func (g *TravelGraph) EdgeCount() int { return len(g.edges) }

func fallbackEdge() ports.RouteResult {
	return ports.RouteResult{
		DurationSeconds: fallbackEdgeSeconds,
		Instructions:    fallbackInstructions,
		Estimated:       true,
	}
}

type graphNode struct {
	id     string
	coords domain.Coordinates
}

// BuildTravelGraph queries the routing provider for every ordered node pair
// and returns a complete graph. Construction never fails: any single lookup
// error, timeout, or short batch is replaced with the fallback edge.
//
// Lookups run one batch per origin node with bounded parallelism to respect
// provider rate limits.
func BuildTravelGraph(
	ctx context.Context,
	origin domain.Coordinates,
	places []domain.Place,
	provider ports.RoutingProvider,
	mode string,
) *TravelGraph {
	if len(places) > MaxGraphCandidates {
		places = places[:MaxGraphCandidates]
	}

	nodes := make([]graphNode, 0, 1+len(places))
	nodes = append(nodes, graphNode{id: OriginNodeID, coords: origin})
	for _, p := range places {
		nodes = append(nodes, graphNode{id: p.ID, coords: p.Coordinates})
	}

	g := &TravelGraph{
		Origin: origin,
		Places: places,
		edges:  make(map[string]ports.RouteResult, len(nodes)*(len(nodes)-1)),
	}

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelLookups)

	for _, from := range nodes {
		targets := make([]graphNode, 0, len(nodes)-1)
		for _, to := range nodes {
			if to.id != from.id {
				targets = append(targets, to)
			}
		}

		eg.Go(func() error {
			row := fetchRow(egCtx, provider, from, targets, mode)

			mu.Lock()
			for toID, r := range row {
				g.edges[from.id+"|"+toID] = r
			}
			mu.Unlock()
			return nil
		})
	}

	// Workers only degrade, they never fail.
	_ = eg.Wait()

	return g
}

// fetchRow resolves all edges out of a single node, preferring a batched
// matrix lookup when the provider supports one. Every failure path yields
// fallback edges for the whole row.
func fetchRow(
	ctx context.Context,
	provider ports.RoutingProvider,
	from graphNode,
	targets []graphNode,
	mode string,
) map[string]ports.RouteResult {
	row := make(map[string]ports.RouteResult, len(targets))

	if mp, ok := provider.(ports.RouteMatrixProvider); ok {
		lookupCtx, cancel := context.WithTimeout(ctx, routeLookupTimeout)
		defer cancel()

		coords := make([]domain.Coordinates, len(targets))
		for i, t := range targets {
			coords[i] = t.coords
		}

		results, err := mp.Routes(lookupCtx, from.coords, coords, mode)
		if err != nil || len(results) != len(targets) {
			if err != nil {
				log.Printf("travel graph: matrix row from=%s failed, using fallback: %v", from.id, err)
			}
			for _, t := range targets {
				row[t.id] = fallbackEdge()
			}
			return row
		}

		for i, t := range targets {
			row[t.id] = results[i]
		}
		return row
	}

	for _, t := range targets {
		lookupCtx, cancel := context.WithTimeout(ctx, routeLookupTimeout)
		r, err := provider.Route(lookupCtx, from.coords, t.coords, mode)
		cancel()
		if err != nil {
			log.Printf("travel graph: route %s->%s failed, using fallback: %v", from.id, t.id, err)
			r = fallbackEdge()
		}
		row[t.id] = r
	}
	return row
}
