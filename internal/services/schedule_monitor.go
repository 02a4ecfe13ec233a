package services

import (
	"time"

	"itinerary-engine/internal/domain"
)

// Being this many minutes past the required departure is still "on time".
const lateToleranceMinutes = 10

// ScheduleStatus is the derived, per-tick view of whether the traveler can
// still make their next commitment. It is recomputed on every monitoring
// tick and never persisted.
type ScheduleStatus struct {
	CurrentIndex      int       `json:"current_index"`
	IsBehindSchedule  bool      `json:"is_behind_schedule"`
	DelayMinutes      int       `json:"delay_minutes"`
	NextActivityStart time.Time `json:"next_activity_start,omitzero"`
}

// CheckSchedule computes lateness relative to the next commitment, not the
// current stop's own end time: finishing the current stop late is harmless
// while slack remains before the next obligation. Only when no next stop
// exists does lateness fall back to the current stop's end.
//
// requiredDeparture = nextStart - transitionMinutes; the traveler is behind
// once now exceeds requiredDeparture by more than the tolerance.
func CheckSchedule(items []domain.ItineraryItem, currentIndex int, now time.Time) ScheduleStatus {
	status := ScheduleStatus{CurrentIndex: currentIndex}

	if len(items) == 0 || currentIndex < 0 || currentIndex >= len(items) {
		return status
	}

	current := items[currentIndex]
	next, hasNext := nextActiveItem(items, currentIndex)

	var requiredDeparture time.Time
	if hasNext {
		requiredDeparture = next.Start.Add(-time.Duration(next.TravelMinutes) * time.Minute)
		status.NextActivityStart = next.Start
	} else {
		requiredDeparture = current.End
	}

	if now.After(requiredDeparture) {
		status.DelayMinutes = int(now.Sub(requiredDeparture).Minutes())
	}
	status.IsBehindSchedule = status.DelayMinutes > lateToleranceMinutes

	return status
}

// nextActiveItem finds the first item after index that still occupies time.
func nextActiveItem(items []domain.ItineraryItem, index int) (domain.ItineraryItem, bool) {
	for i := index + 1; i < len(items); i++ {
		if items[i].Status.Active() {
			return items[i], true
		}
	}
	return domain.ItineraryItem{}, false
}
