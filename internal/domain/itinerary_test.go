package domain

import (
	"testing"
	"time"
)

func TestItemStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ItemStatus
		ok       bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusSkipped, true},
		{StatusPending, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCanceled, true},
		{StatusCompleted, StatusPending, false},
		{StatusCanceled, StatusPending, false},
		{StatusSkipped, StatusInProgress, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.ok {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestItemCancelKeepsAuditTrail(t *testing.T) {
	it := ItineraryItem{ID: "i1", Status: StatusPending}

	if err := it.Cancel("rain"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Status != StatusCanceled {
		t.Fatalf("status = %s, want canceled", it.Status)
	}
	if it.CancelReason != "rain" {
		t.Fatalf("reason = %q, want rain", it.CancelReason)
	}

	// Cancel again: idempotent, reason untouched.
	if err := it.Cancel("other"); err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if it.CancelReason != "rain" {
		t.Fatalf("reason overwritten to %q", it.CancelReason)
	}

	done := ItineraryItem{ID: "i2", Status: StatusCompleted}
	if err := done.Cancel("late"); err == nil {
		t.Fatal("expected error canceling a completed item")
	}
}

func TestDayPlanUsedMinutesSkipsInactive(t *testing.T) {
	day := DayPlan{
		Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Items: []ItineraryItem{
			{VisitMinutes: 60, Status: StatusPending},
			{VisitMinutes: 90, Status: StatusCanceled},
			{VisitMinutes: 30, Status: StatusCompleted},
			{VisitMinutes: 45, Status: StatusSkipped},
		},
	}

	if got := day.UsedMinutes(); got != 90 {
		t.Fatalf("UsedMinutes = %d, want 90", got)
	}
	if got := len(day.ActiveItems()); got != 2 {
		t.Fatalf("ActiveItems = %d, want 2", got)
	}
}

func TestParseClock(t *testing.T) {
	if m, err := ParseClock("09:30"); err != nil || m != 570 {
		t.Fatalf("ParseClock(09:30) = %d, %v", m, err)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatal("expected error for 25:00")
	}
	if _, err := ParseClock("bogus"); err == nil {
		t.Fatal("expected error for bogus input")
	}
}
