package services

import (
	"context"
	"time"

	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
)

// DefaultTravelMode is used when a request does not name one.
const DefaultTravelMode = "foot-walking"

type PlanDayRequest struct {
	Date           time.Time
	DayStartMinute int
	Origin         domain.Coordinates
	Candidates     []domain.Place
	Mode           string
}

// PlanDay runs the full planning pipeline for one day: travel graph over the
// candidates, greedy sequencing, then timeline construction.
//
// The pipeline is degrade-only: routing failures become fallback edges and
// timeline failures become the placeholder plan, so PlanDay always returns a
// usable result. An empty candidate list yields an empty plan.
// Candidates beyond the graph bound are kept as the day's pool of alternates.
func PlanDay(ctx context.Context, req PlanDayRequest, provider ports.RoutingProvider) TimelineResult {
	dayStartMinute := req.DayStartMinute
	if dayStartMinute <= 0 {
		dayStartMinute = DefaultDayStartMinute
	}
	mode := req.Mode
	if mode == "" {
		mode = DefaultTravelMode
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayStart := date.Add(time.Duration(dayStartMinute) * time.Minute)

	if len(req.Candidates) == 0 {
		return TimelineResult{Day: domain.DayPlan{Date: date, Items: []domain.ItineraryItem{}}}
	}

	candidates := req.Candidates
	var pool []domain.Place
	if len(candidates) > MaxGraphCandidates {
		pool = candidates[MaxGraphCandidates:]
		candidates = candidates[:MaxGraphCandidates]
	}

	graph := BuildTravelGraph(ctx, req.Origin, candidates, provider, mode)
	stops := OptimizeRoute(graph, dayStart)
	return BuildTimeline(dayStart, stops, pool)
}

// NewTripPlan creates an empty trip document with one day per date in
// [startDate, endDate].
func NewTripPlan(tripID string, startDate, endDate time.Time) *domain.TripPlan {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, endDate.Location())

	trip := &domain.TripPlan{TripID: tripID, StartDate: start, EndDate: end}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		trip.Days = append(trip.Days, domain.DayPlan{Date: d, Items: []domain.ItineraryItem{}})
	}
	return trip
}
