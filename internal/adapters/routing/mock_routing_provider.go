package routing

import (
	"context"
	"fmt"

	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
)

type MockLeg struct {
	From, To     domain.Coordinates
	Seconds      int
	Instructions string
}

// MockRoutingProvider serves canned pair lookups for tests. Pairs absent
// from the table return an error, which exercises fallback paths.
type MockRoutingProvider struct {
	m map[string]ports.RouteResult
}

func NewMockRoutingProvider(legs []MockLeg) *MockRoutingProvider {
	m := make(map[string]ports.RouteResult, len(legs))
	for _, l := range legs {
		m[l.From.Key()+"|"+l.To.Key()] = ports.RouteResult{
			DurationSeconds: l.Seconds,
			Instructions:    l.Instructions,
		}
	}
	return &MockRoutingProvider{m: m}
}

func (p *MockRoutingProvider) Route(ctx context.Context, origin, destination domain.Coordinates, mode string) (ports.RouteResult, error) {
	r, ok := p.m[origin.Key()+"|"+destination.Key()]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing leg %q -> %q", origin.Key(), destination.Key())
	}
	return r, nil
}
