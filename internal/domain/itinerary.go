package domain

import (
	"fmt"
	"time"
)

// ItemStatus is the lifecycle state of a single itinerary item.
// Transitions are owned by the plan document, not by transient UI state.
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusInProgress ItemStatus = "in-progress"
	StatusCompleted  ItemStatus = "completed"
	StatusSkipped    ItemStatus = "skipped"
	StatusCanceled   ItemStatus = "canceled"
)

// validTransitions maps each status to the states it may move into.
// Canceled and completed are terminal.
var validTransitions = map[ItemStatus][]ItemStatus{
	StatusPending:    {StatusInProgress, StatusSkipped, StatusCanceled},
	StatusInProgress: {StatusCompleted, StatusSkipped, StatusCanceled},
	StatusCompleted:  {},
	StatusSkipped:    {},
	StatusCanceled:   {},
}

// CanTransition reports whether moving from s to next is a legal step.
func (s ItemStatus) CanTransition(next ItemStatus) bool {
	for _, t := range validTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Active reports whether the item still occupies time in its day.
func (s ItemStatus) Active() bool {
	return s != StatusCanceled && s != StatusSkipped
}

// ItineraryItem is one timed visit within a day plan.
//
// Canceled items are retained with a reason and never deleted; they form the
// plan's audit trail.
type ItineraryItem struct {
	ID          string      `json:"id"`
	PlaceID     string      `json:"place_id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Rating      float64     `json:"rating"`
	Coordinates Coordinates `json:"coordinates"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Order       int         `json:"order"`
	Status      ItemStatus  `json:"status"`

	// TravelMinutes is the transit time from the previous stop.
	TravelMinutes int    `json:"travel_minutes"`
	TravelNote    string `json:"travel_note,omitempty"`

	// VisitMinutes is the planned visit duration, after any closing-hour
	// shrink applied by the timeline.
	VisitMinutes int `json:"visit_minutes"`

	MealNote     string `json:"meal_note,omitempty"`
	CancelReason string `json:"cancel_reason,omitempty"`
}

// Transition moves the item to the given status, enforcing the state machine.
func (it *ItineraryItem) Transition(next ItemStatus) error {
	if !it.Status.CanTransition(next) {
		return fmt.Errorf("itinerary item %s: illegal transition %s -> %s", it.ID, it.Status, next)
	}
	it.Status = next
	return nil
}

// Cancel marks the item canceled with an audit reason. Cancel is idempotent
// for already-canceled items and fails for terminal completed/skipped states.
func (it *ItineraryItem) Cancel(reason string) error {
	if it.Status == StatusCanceled {
		return nil
	}
	if err := it.Transition(StatusCanceled); err != nil {
		return err
	}
	it.CancelReason = reason
	return nil
}

// Duration returns the item's scheduled visit length.
func (it ItineraryItem) Duration() time.Duration {
	return time.Duration(it.VisitMinutes) * time.Minute
}

// DayPlan is one day's ordered itinerary plus a pool of unused alternates
// kept around for fast replacement.
type DayPlan struct {
	Date  time.Time       `json:"date"`
	Items []ItineraryItem `json:"items"`
	Pool  []Place         `json:"pool,omitempty"`
}

// ActiveItems returns the items that still occupy time in the day.
func (d DayPlan) ActiveItems() []ItineraryItem {
	out := make([]ItineraryItem, 0, len(d.Items))
	for _, it := range d.Items {
		if it.Status.Active() {
			out = append(out, it)
		}
	}
	return out
}

// UsedMinutes sums the visit durations of all active items.
func (d DayPlan) UsedMinutes() int {
	total := 0
	for _, it := range d.Items {
		if it.Status.Active() {
			total += it.VisitMinutes
		}
	}
	return total
}
