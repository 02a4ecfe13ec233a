package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"itinerary-engine/internal/domain"
)

const (
	// The packing window for redistributed items: 09:00-22:00.
	redistributeWindowStartMinute = 9 * 60
	redistributeWindowEndMinute   = 22 * 60
)

// RedistributionResult summarizes one abandon-remainder operation.
type RedistributionResult struct {
	CanceledCount int                    `json:"canceled_count"`
	PlacedCount   int                    `json:"placed_count"`
	Postponed     []domain.ItineraryItem `json:"postponed,omitempty"`
}

// RedistributeRemaining abandons the rest of a day and packs the abandoned
// activities into free capacity on future days.
//
// Remaining items are marked canceled in place with the given reason and are
// never removed; they are the audit trail. Placement into future days is
// strictly append-only: existing items on those days are never reordered,
// shortened, or canceled. Items that fit nowhere land on the trip's
// postponed queue for manual rescheduling.
//
// The trip is mutated as a whole under the caller's single-writer discipline;
// the caller persists the document after the call returns.
func RedistributeRemaining(trip *domain.TripPlan, dayIndex, fromItemIndex int, reason string) (RedistributionResult, error) {
	var res RedistributionResult

	day := trip.Day(dayIndex)
	if day == nil {
		return res, fmt.Errorf("redistribute: day index %d out of range", dayIndex)
	}
	if fromItemIndex < 0 {
		fromItemIndex = 0
	}

	// Cancel in place, preserving order and times for the audit trail.
	var abandoned []domain.ItineraryItem
	for i := fromItemIndex; i < len(day.Items); i++ {
		it := &day.Items[i]
		if !it.Status.Active() || it.Status == domain.StatusCompleted {
			continue
		}
		if err := it.Cancel(reason); err != nil {
			continue
		}
		res.CanceledCount++
		abandoned = append(abandoned, *it)
	}

	for _, it := range abandoned {
		placed := false

		for di := dayIndex + 1; di < len(trip.Days); di++ {
			future := &trip.Days[di]

			if trip.HasActivePlace(it.PlaceID) {
				break // duplicate elsewhere would break anchor-uniqueness
			}

			// Capacity is the window minus all active minutes on the day.
			// UsedMinutes already counts items appended earlier in this
			// operation, so no separate running total is kept.
			gap := (redistributeWindowEndMinute - redistributeWindowStartMinute) - future.UsedMinutes()
			if it.VisitMinutes > gap {
				continue
			}

			start := windowStart(future.Date)
			if last, ok := lastActiveEnd(future.Items); ok && last.After(start) {
				start = last
			}
			dayEnd := future.Date.Add(redistributeWindowEndMinute * time.Minute)
			remaining := int(dayEnd.Sub(start).Minutes())
			if it.VisitMinutes > remaining {
				continue
			}

			moved := it
			moved.ID = uuid.NewString()
			moved.Status = domain.StatusPending
			moved.CancelReason = ""
			moved.MealNote = ""
			moved.TravelMinutes = 0
			moved.TravelNote = ""
			moved.Start = start
			moved.End = start.Add(time.Duration(it.VisitMinutes) * time.Minute)
			moved.Order = len(future.Items) + 1

			future.Items = append(future.Items, moved)
			res.PlacedCount++
			placed = true
			break
		}

		if !placed {
			queued := it
			queued.ID = uuid.NewString()
			queued.Status = domain.StatusPending
			queued.CancelReason = ""
			queued.Start = time.Time{}
			queued.End = time.Time{}
			queued.Order = 0
			trip.Postponed = append(trip.Postponed, queued)
			res.Postponed = append(res.Postponed, queued)
		}
	}

	return res, nil
}

func windowStart(date time.Time) time.Time {
	return date.Add(redistributeWindowStartMinute * time.Minute)
}

// lastActiveEnd returns the latest end time among active items.
func lastActiveEnd(items []domain.ItineraryItem) (time.Time, bool) {
	var last time.Time
	found := false
	for _, it := range items {
		if it.Status.Active() && it.End.After(last) {
			last = it.End
			found = true
		}
	}
	return last, found
}
