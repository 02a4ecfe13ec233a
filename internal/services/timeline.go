package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"itinerary-engine/internal/domain"
)

const (
	// DefaultDayStartMinute anchors a day plan at 09:00 local time.
	DefaultDayStartMinute = 9 * 60
	// fallbackDayEndMinute bounds the placeholder window used when timeline
	// construction fails internally.
	fallbackDayEndMinute = 17 * 60

	// Minimum visit length a closing-hour shrink may produce. A stop that
	// cannot fit max(minShrunkVisit, half its duration) before closing is
	// dropped from the day.
	minShrunkVisitMinutes = 45

	lunchStartMinute  = 12 * 60
	lunchEndMinute    = 14 * 60
	dinnerStartMinute = 18 * 60
	dinnerEndMinute   = 20 * 60
)

// TimelineResult is a fully timed day plan plus the soft-warning surface the
// caller is expected to present: stops dropped for lack of a feasible slot
// and human-readable notes about clamps and fallback travel estimates.
type TimelineResult struct {
	Day      domain.DayPlan
	Dropped  []domain.Place
	Warnings []string
}

// BuildTimeline converts an optimized stop sequence into concrete clock
// times under opening-hour, closing-hour, and meal-window rules.
//
// This boundary never fails: any internal error collapses into a trivial
// placeholder plan (original stops in order across a 09:00-17:00 window) so
// callers always receive a usable, possibly degraded, plan.
func BuildTimeline(dayStart time.Time, stops []RouteStop, pool []domain.Place) TimelineResult {
	res, err := buildTimeline(dayStart, stops)
	if err != nil {
		log.Printf("timeline: construction failed, returning placeholder plan: %v", err)
		return placeholderPlan(dayStart, stops, pool)
	}
	res.Day.Pool = pool
	return res
}

func buildTimeline(dayStart time.Time, stops []RouteStop) (TimelineResult, error) {
	if dayStart.IsZero() {
		return TimelineResult{}, fmt.Errorf("day start is zero")
	}

	day := domain.DayPlan{
		Date:  time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, 0, 0, 0, dayStart.Location()),
		Items: make([]domain.ItineraryItem, 0, len(stops)),
	}

	var (
		dropped  []domain.Place
		warnings []string
	)

	cursor := dayStart
	lunchNoted := false
	dinnerNoted := false

	for _, stop := range stops {
		travelMin := int(math.Round(float64(stop.TravelSeconds) / 60))
		arrival := cursor.Add(time.Duration(travelMin) * time.Minute)

		visit := stop.Place.VisitMinutes
		if visit <= 0 {
			visit = domain.DefaultVisitMinutes
		}

		open, close, constrained := stop.Place.HoursOn(day.Date)
		if constrained && !close.After(open) {
			return TimelineResult{}, fmt.Errorf(
				"place %s: closing time %s not after opening time %s",
				stop.Place.ID, close.Format("15:04"), open.Format("15:04"),
			)
		}

		// Opening clamp: wait for the venue, pushing all later stops.
		if constrained && arrival.Before(open) {
			warnings = append(warnings, fmt.Sprintf(
				"%s opens at %s; start delayed from %s",
				stop.Place.Name, open.Format("15:04"), arrival.Format("15:04"),
			))
			arrival = open
		}

		// Closing clamp: shrink the visit, or drop the stop when even the
		// shrunk visit cannot finish before closing. Dropped stops are not
		// retried elsewhere in this run.
		if constrained {
			end := arrival.Add(time.Duration(visit) * time.Minute)
			if end.After(close) {
				shrunk := visit / 2
				if shrunk < minShrunkVisitMinutes {
					shrunk = minShrunkVisitMinutes
				}
				if !arrival.Add(time.Duration(shrunk) * time.Minute).After(close) {
					warnings = append(warnings, fmt.Sprintf(
						"%s closes at %s; visit shortened from %d to %d minutes",
						stop.Place.Name, close.Format("15:04"), visit, shrunk,
					))
					visit = shrunk
				} else {
					warnings = append(warnings, fmt.Sprintf(
						"%s dropped: closes at %s, not enough time for a %d-minute visit",
						stop.Place.Name, close.Format("15:04"), shrunk,
					))
					dropped = append(dropped, stop.Place)
					continue
				}
			}
		}

		end := arrival.Add(time.Duration(visit) * time.Minute)

		item := domain.ItineraryItem{
			ID:            uuid.NewString(),
			PlaceID:       stop.Place.ID,
			Name:          stop.Place.Name,
			Category:      stop.Place.Category,
			Rating:        stop.Place.Rating,
			Coordinates:   stop.Place.Coordinates,
			Start:         arrival,
			End:           end,
			Status:        domain.StatusPending,
			TravelMinutes: travelMin,
			TravelNote:    stop.Instructions,
			VisitMinutes:  visit,
		}

		// Meal annotation: a non-blocking suggestion on the first stop that
		// overlaps each meal window. No time block is reserved.
		if !lunchNoted && overlapsWindow(day.Date, arrival, end, lunchStartMinute, lunchEndMinute) {
			item.MealNote = "overlaps the lunch window; consider eating nearby"
			lunchNoted = true
		} else if !dinnerNoted && overlapsWindow(day.Date, arrival, end, dinnerStartMinute, dinnerEndMinute) {
			item.MealNote = "overlaps the dinner window; consider eating nearby"
			dinnerNoted = true
		}

		day.Items = append(day.Items, item)
		cursor = end
	}

	renumber(day.Items)

	return TimelineResult{Day: day, Dropped: dropped, Warnings: warnings}, nil
}

// overlapsWindow reports whether [start, end) intersects the minute-of-day
// window [fromMinute, toMinute) on the given date.
func overlapsWindow(date, start, end time.Time, fromMinute, toMinute int) bool {
	winStart := date.Add(time.Duration(fromMinute) * time.Minute)
	winEnd := date.Add(time.Duration(toMinute) * time.Minute)
	return start.Before(winEnd) && end.After(winStart)
}

func renumber(items []domain.ItineraryItem) {
	for i := range items {
		items[i].Order = i + 1
	}
}

// placeholderPlan lays the original stops across a 09:00-17:00 window in
// their given order, ignoring venue constraints. It is the degraded value
// returned when real timeline construction fails.
func placeholderPlan(dayStart time.Time, stops []RouteStop, pool []domain.Place) TimelineResult {
	date := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, 0, 0, 0, dayStart.Location())
	if dayStart.IsZero() {
		date = time.Now().Truncate(24 * time.Hour)
	}

	day := domain.DayPlan{Date: date, Pool: pool}
	cursor := date.Add(time.Duration(DefaultDayStartMinute) * time.Minute)
	dayEnd := date.Add(time.Duration(fallbackDayEndMinute) * time.Minute)

	for _, stop := range stops {
		visit := stop.Place.VisitMinutes
		if visit <= 0 {
			visit = domain.DefaultVisitMinutes
		}
		end := cursor.Add(time.Duration(visit) * time.Minute)
		if end.After(dayEnd) {
			end = dayEnd
		}

		day.Items = append(day.Items, domain.ItineraryItem{
			ID:           uuid.NewString(),
			PlaceID:      stop.Place.ID,
			Name:         stop.Place.Name,
			Category:     stop.Place.Category,
			Rating:       stop.Place.Rating,
			Coordinates:  stop.Place.Coordinates,
			Start:        cursor,
			End:          end,
			Status:       domain.StatusPending,
			VisitMinutes: visit,
		})
		cursor = end
	}

	renumber(day.Items)

	return TimelineResult{
		Day:      day,
		Warnings: []string{"timeline construction failed; placeholder 09:00-17:00 schedule in effect"},
	}
}
