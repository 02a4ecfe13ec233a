package domain

import (
	"fmt"
	"time"
)

// TripPlan is the root document for a multi-day trip. It is the only shared
// mutable state in the engine: callers mutate it single-writer and persist
// the whole document after every mutation.
type TripPlan struct {
	TripID    string    `json:"trip_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      []DayPlan `json:"days"`

	// Postponed holds items that could not be fit into any future day's
	// remaining capacity and await manual rescheduling.
	Postponed []ItineraryItem `json:"postponed,omitempty"`
}

// HasActivePlace reports whether placeID already appears as a non-canceled,
// non-skipped item on any day. Used to enforce anchor-uniqueness: a place
// must not repeat as an active item across days within one trip.
func (t *TripPlan) HasActivePlace(placeID string) bool {
	for _, day := range t.Days {
		for _, it := range day.Items {
			if it.PlaceID == placeID && it.Status.Active() {
				return true
			}
		}
	}
	return false
}

// ValidateAnchorUniqueness returns an error naming the first place that
// appears active on more than one day.
func (t *TripPlan) ValidateAnchorUniqueness() error {
	seen := make(map[string]int) // placeID -> day index
	for di, day := range t.Days {
		for _, it := range day.Items {
			if !it.Status.Active() || it.PlaceID == "" {
				continue
			}
			if prev, ok := seen[it.PlaceID]; ok && prev != di {
				return fmt.Errorf(
					"trip %s: place %q active on day %d and day %d",
					t.TripID, it.PlaceID, prev, di,
				)
			}
			seen[it.PlaceID] = di
		}
	}
	return nil
}

// Day returns a pointer to the day at index i, or nil when out of range.
func (t *TripPlan) Day(i int) *DayPlan {
	if i < 0 || i >= len(t.Days) {
		return nil
	}
	return &t.Days[i]
}
