package services

import (
	"context"
	"testing"
	"time"

	"itinerary-engine/internal/adapters/places"
	"itinerary-engine/internal/domain"
)

func adjustmentItems() []domain.ItineraryItem {
	return []domain.ItineraryItem{
		{
			ID: "i1", PlaceID: "museum", Name: "Museum", Category: "museum",
			Status: domain.StatusInProgress, Order: 1,
			Start: at(10, 0), End: at(12, 0), VisitMinutes: 120,
		},
		{
			ID: "i2", PlaceID: "gallery", Name: "Gallery", Category: "gallery",
			Status: domain.StatusPending, Order: 2, TravelMinutes: 15,
			Start: at(12, 30), End: at(14, 0), VisitMinutes: 90,
			Coordinates: domain.Coordinates{Lat: 48.86, Lon: 2.34},
		},
		{
			ID: "i3", PlaceID: "park", Name: "Park", Category: "park",
			Status: domain.StatusPending, Order: 3, TravelMinutes: 10,
			Start: at(14, 30), End: at(15, 30), VisitMinutes: 60,
		},
	}
}

func findCandidate(t *testing.T, cands []AdjustmentCandidate, typ AdjustmentType) AdjustmentCandidate {
	t.Helper()
	for _, c := range cands {
		if c.Type == typ {
			return c
		}
	}
	t.Fatalf("no %s candidate in %d results", typ, len(cands))
	return AdjustmentCandidate{}
}

func TestGenerateAdjustmentsDelayWithinTolerance(t *testing.T) {
	cands := GenerateAdjustments(context.Background(), adjustmentItems(), 0, at(12, 10), 10, nil)
	if cands != nil {
		t.Fatalf("delay of 10 must produce no candidates, got %d", len(cands))
	}
}

func TestGenerateAdjustmentsModerateDelay(t *testing.T) {
	cands := GenerateAdjustments(context.Background(), adjustmentItems(), 0, at(12, 20), 20, nil)

	if len(cands) == 0 {
		t.Fatal("delay of 20 must produce candidates")
	}
	for _, c := range cands {
		if c.Type == AdjustRescheduleRemaining {
			t.Fatal("reschedule_remaining requires delay above 30")
		}
	}

	extend := findCandidate(t, cands, AdjustExtendCurrent)
	if !extend.Items[0].End.Equal(at(12, 20)) {
		t.Fatalf("extended end = %v, want 12:20", extend.Items[0].End)
	}
	if !extend.Items[1].Start.Equal(at(12, 50)) {
		t.Fatalf("shifted next start = %v, want 12:50", extend.Items[1].Start)
	}

	skip := findCandidate(t, cands, AdjustSkipNext)
	if skip.TimeSavedMinutes != 90 {
		t.Fatalf("skip_next saved = %d, want 90", skip.TimeSavedMinutes)
	}
	if skip.Items[1].Status != domain.StatusSkipped {
		t.Fatalf("next item status = %s, want skipped", skip.Items[1].Status)
	}
	if skip.Items[2].Order != 2 {
		t.Fatalf("park order = %d, want renumbered to 2", skip.Items[2].Order)
	}
}

func TestGenerateAdjustmentsRescheduleOnSevereDelay(t *testing.T) {
	now := at(12, 35)
	cands := GenerateAdjustments(context.Background(), adjustmentItems(), 0, now, 35, nil)

	resched := findCandidate(t, cands, AdjustRescheduleRemaining)

	// Remaining stops re-linearize from now+delay with 15-minute buffers.
	wantFirst := now.Add(35 * time.Minute)
	if !resched.Items[1].Start.Equal(wantFirst) {
		t.Fatalf("gallery start = %v, want %v", resched.Items[1].Start, wantFirst)
	}
	wantSecond := resched.Items[1].End.Add(15 * time.Minute)
	if !resched.Items[2].Start.Equal(wantSecond) {
		t.Fatalf("park start = %v, want %v", resched.Items[2].Start, wantSecond)
	}
}

func TestGenerateAdjustmentsReplaceNext(t *testing.T) {
	catalog := &places.MockPlaceCatalog{Results: []domain.Place{
		// Shorter and well rated: eligible.
		{ID: "g2", Name: "Small Gallery", Category: "gallery", Rating: 4.2, VisitMinutes: 60},
		// Higher rated but not materially shorter (90-15=75 is the cutoff).
		{ID: "g3", Name: "Grand Gallery", Category: "gallery", Rating: 4.8, VisitMinutes: 80},
		// Short but below the rating floor.
		{ID: "g4", Name: "Dingy Gallery", Category: "gallery", Rating: 3.0, VisitMinutes: 30},
		// Eligible and best rated: should win.
		{ID: "g5", Name: "Modern Gallery", Category: "gallery", Rating: 4.6, VisitMinutes: 45},
	}}

	cands := GenerateAdjustments(context.Background(), adjustmentItems(), 0, at(12, 20), 20, catalog)

	replace := findCandidate(t, cands, AdjustReplaceNext)
	if replace.Items[1].PlaceID != "g5" {
		t.Fatalf("replacement = %s, want g5", replace.Items[1].PlaceID)
	}
	if replace.TimeSavedMinutes != 45 {
		t.Fatalf("saved = %d, want 45", replace.TimeSavedMinutes)
	}
	// The slot keeps its start; the end reflects the shorter visit.
	if !replace.Items[1].Start.Equal(at(12, 30)) || !replace.Items[1].End.Equal(at(13, 15)) {
		t.Fatalf("slot = %v-%v, want 12:30-13:15", replace.Items[1].Start, replace.Items[1].End)
	}
}

func TestGenerateAdjustmentsCatalogFailureOmitsReplace(t *testing.T) {
	cands := GenerateAdjustments(context.Background(), adjustmentItems(), 0, at(12, 20), 20, places.FailingCatalog())

	if len(cands) == 0 {
		t.Fatal("other candidates must survive a catalog failure")
	}
	for _, c := range cands {
		if c.Type == AdjustReplaceNext {
			t.Fatal("replace_next must be omitted when the catalog errors")
		}
	}
}

func TestGenerateAdjustmentsRankedByTimeSaved(t *testing.T) {
	cands := GenerateAdjustments(context.Background(), adjustmentItems(), 0, at(12, 35), 35, nil)

	for i := 1; i < len(cands); i++ {
		if cands[i].TimeSavedMinutes > cands[i-1].TimeSavedMinutes {
			t.Fatalf("candidates not sorted by time saved: %d before %d",
				cands[i-1].TimeSavedMinutes, cands[i].TimeSavedMinutes)
		}
	}
}

func TestGenerateAdjustmentsDoesNotMutateInput(t *testing.T) {
	items := adjustmentItems()
	_ = GenerateAdjustments(context.Background(), items, 0, at(12, 35), 35, nil)

	if items[1].Status != domain.StatusPending {
		t.Fatal("input items must not be mutated")
	}
	if !items[1].Start.Equal(at(12, 30)) {
		t.Fatalf("input start changed to %v", items[1].Start)
	}
}
