package domain

import (
	"fmt"
	"time"
)

// OpeningWindow is a venue's open interval within a single day,
// expressed as minutes since midnight local time.
type OpeningWindow struct {
	OpenMinute  int
	CloseMinute int
}

// OnDate projects the window onto concrete clock times for the given date.
func (w OpeningWindow) OnDate(date time.Time) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(w.OpenMinute) * time.Minute),
		day.Add(time.Duration(w.CloseMinute) * time.Minute)
}

// ParseClock converts an "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return h*60 + m, nil
}

// Represents a visitable venue fetched from the place catalog.
// A Place is read-only within a planning session; scheduling state lives on
// the ItineraryItem that references it.
type Place struct {
	ID           string
	Name         string
	Category     string
	Coordinates  Coordinates
	VisitMinutes int
	Rating       float64
	// Hours is nil when the venue has no known opening constraint.
	Hours *OpeningWindow
}

// HoursOn returns the venue's open/close times for the given date.
// The second return value is false when the venue is always open.
func (p Place) HoursOn(date time.Time) (open, close time.Time, ok bool) {
	if p.Hours == nil {
		return time.Time{}, time.Time{}, false
	}
	open, close = p.Hours.OnDate(date)
	return open, close, true
}
