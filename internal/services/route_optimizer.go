package services

import (
	"time"

	"itinerary-engine/internal/domain"
)

// RouteStop is one sequenced stop with its provisional clock, before the
// timeline constructor applies opening-hour and meal constraints.
type RouteStop struct {
	Place            domain.Place
	TravelSeconds    int
	Instructions     string
	EstimatedTravel  bool
	ProvisionalStart time.Time
	ProvisionalEnd   time.Time
}

// OptimizeRoute sequences the graph's candidate places with a greedy
// nearest-neighbor walk from the origin node.
//
// The algorithm minimizes immediate travel duration at each step and breaks
// ties by first candidate found, which is deterministic over the graph's
// place order. It does not attempt an optimal tour; candidate counts are
// small (<= MaxGraphCandidates) and exactness is a non-goal.
//
// The provisional clock accumulates travel time then preferred visit
// duration per stop, starting at dayStart.
func OptimizeRoute(graph *TravelGraph, dayStart time.Time) []RouteStop {
	remaining := make([]domain.Place, len(graph.Places))
	copy(remaining, graph.Places)

	stops := make([]RouteStop, 0, len(remaining))
	currentID := OriginNodeID
	clock := dayStart

	for len(remaining) > 0 {
		best := 0
		bestEdge := graph.Edge(currentID, remaining[0].ID)

		// Select next stop by minimum travel duration (greedy step).
		for i := 1; i < len(remaining); i++ {
			edge := graph.Edge(currentID, remaining[i].ID)
			if edge.DurationSeconds < bestEdge.DurationSeconds {
				best = i
				bestEdge = edge
			}
		}

		place := remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)

		clock = clock.Add(time.Duration(bestEdge.DurationSeconds) * time.Second)
		start := clock
		clock = clock.Add(time.Duration(place.VisitMinutes) * time.Minute)

		stops = append(stops, RouteStop{
			Place:            place,
			TravelSeconds:    bestEdge.DurationSeconds,
			Instructions:     bestEdge.Instructions,
			EstimatedTravel:  bestEdge.Estimated,
			ProvisionalStart: start,
			ProvisionalEnd:   clock,
		})

		currentID = place.ID
	}

	return stops
}
