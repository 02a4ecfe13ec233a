package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
	"itinerary-engine/internal/platform/obs"
)

// AdjustmentType tags a schedule-repair strategy.
type AdjustmentType string

const (
	AdjustExtendCurrent       AdjustmentType = "extend_current"
	AdjustSkipNext            AdjustmentType = "skip_next"
	AdjustReplaceNext         AdjustmentType = "replace_next"
	AdjustRescheduleRemaining AdjustmentType = "reschedule_remaining"
)

const (
	// Delay thresholds that gate candidate generation.
	adjustTriggerMinutes     = 10
	rescheduleTriggerMinutes = 30

	// Buffer inserted between stops when re-linearizing the remainder.
	interStopBufferMinutes = 15

	// replace_next search parameters.
	replaceSearchRadiusMeters = 2000
	minReplacementRating      = 3.5
	materiallyShorterMinutes  = 15

	dayEndMinute = 22 * 60
)

// AdjustmentCandidate is one proposed repair: the full resulting itinerary,
// a human-readable impact description, and the minutes it recovers.
// Candidates are ephemeral; selection and application belong to the caller.
type AdjustmentCandidate struct {
	Type             AdjustmentType         `json:"type"`
	Items            []domain.ItineraryItem `json:"items"`
	Impact           string                 `json:"impact"`
	TimeSavedMinutes int                    `json:"time_saved_minutes"`
}

// GenerateAdjustments proposes ranked repair candidates for a slipping
// schedule. It returns nil while the delay is within the trigger threshold.
//
// The generator never applies anything and never fails: a catalog error
// simply omits the replace_next candidate. Candidates are ranked by minutes
// recovered, most first.
func GenerateAdjustments(
	ctx context.Context,
	items []domain.ItineraryItem,
	currentIndex int,
	now time.Time,
	delayMinutes int,
	catalog ports.PlaceCatalog,
) []AdjustmentCandidate {
	if delayMinutes <= adjustTriggerMinutes {
		return nil
	}
	if currentIndex < 0 || currentIndex >= len(items) {
		return nil
	}

	var candidates []AdjustmentCandidate

	if c, ok := extendCurrent(items, currentIndex, delayMinutes); ok {
		candidates = append(candidates, c)
	}

	nextIdx, hasNext := nextActiveIndex(items, currentIndex)
	if hasNext {
		candidates = append(candidates, skipNext(items, nextIdx))

		if c, ok := replaceNext(ctx, items, nextIdx, catalog); ok {
			candidates = append(candidates, c)
		}
	}

	if delayMinutes > rescheduleTriggerMinutes {
		if c, ok := rescheduleRemaining(items, currentIndex, now, delayMinutes); ok {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TimeSavedMinutes > candidates[j].TimeSavedMinutes
	})

	return candidates
}

func nextActiveIndex(items []domain.ItineraryItem, index int) (int, bool) {
	for i := index + 1; i < len(items); i++ {
		if items[i].Status.Active() {
			return i, true
		}
	}
	return -1, false
}

func cloneItems(items []domain.ItineraryItem) []domain.ItineraryItem {
	out := make([]domain.ItineraryItem, len(items))
	copy(out, items)
	return out
}

// extendCurrent pushes the current stop's end by the delay and shifts every
// subsequent stop by the same delta.
func extendCurrent(items []domain.ItineraryItem, currentIndex, delayMinutes int) (AdjustmentCandidate, bool) {
	delta := time.Duration(delayMinutes) * time.Minute
	out := cloneItems(items)

	out[currentIndex].End = out[currentIndex].End.Add(delta)
	out[currentIndex].VisitMinutes += delayMinutes
	for i := currentIndex + 1; i < len(out); i++ {
		if !out[i].Status.Active() {
			continue
		}
		out[i].Start = out[i].Start.Add(delta)
		out[i].End = out[i].End.Add(delta)
	}

	return AdjustmentCandidate{
		Type:   AdjustExtendCurrent,
		Items:  out,
		Impact: fmt.Sprintf("stay at %s; everything after shifts %d minutes later", items[currentIndex].Name, delayMinutes),
	}, true
}

// skipNext removes the immediate next stop, recovering its full duration.
func skipNext(items []domain.ItineraryItem, nextIdx int) AdjustmentCandidate {
	out := cloneItems(items)
	out[nextIdx].Status = domain.StatusSkipped
	renumberActive(out)

	return AdjustmentCandidate{
		Type:             AdjustSkipNext,
		Items:            out,
		Impact:           fmt.Sprintf("skip %s entirely", items[nextIdx].Name),
		TimeSavedMinutes: items[nextIdx].VisitMinutes,
	}
}

// replaceNext queries the catalog for a same-category alternative with a
// materially shorter visit and an acceptable rating, and substitutes the
// best-rated one into the next slot.
func replaceNext(
	ctx context.Context,
	items []domain.ItineraryItem,
	nextIdx int,
	catalog ports.PlaceCatalog,
) (_ AdjustmentCandidate, ok bool) {
	if catalog == nil {
		return AdjustmentCandidate{}, false
	}

	next := items[nextIdx]

	var err error
	defer obs.Time(ctx, "adjustments.replaceNext")(&err)

	found, err := catalog.Search(ctx, next.Coordinates, replaceSearchRadiusMeters, next.Category)
	if err != nil {
		// Degrade by omitting the candidate; catalog failures must not
		// escape the generator.
		log.Printf("adjustments: catalog search failed, omitting replace_next: %v", err)
		return AdjustmentCandidate{}, false
	}

	var best *domain.Place
	for i := range found {
		p := found[i]
		if p.ID == next.PlaceID {
			continue
		}
		if p.Rating < minReplacementRating {
			continue
		}
		if p.VisitMinutes <= 0 || p.VisitMinutes > next.VisitMinutes-materiallyShorterMinutes {
			continue
		}
		if best == nil || p.Rating > best.Rating {
			best = &p
		}
	}
	if best == nil {
		return AdjustmentCandidate{}, false
	}

	out := cloneItems(items)
	out[nextIdx] = domain.ItineraryItem{
		ID:            uuid.NewString(),
		PlaceID:       best.ID,
		Name:          best.Name,
		Category:      best.Category,
		Rating:        best.Rating,
		Coordinates:   best.Coordinates,
		Start:         next.Start,
		End:           next.Start.Add(time.Duration(best.VisitMinutes) * time.Minute),
		Order:         next.Order,
		Status:        domain.StatusPending,
		TravelMinutes: next.TravelMinutes,
		VisitMinutes:  best.VisitMinutes,
	}

	saved := next.VisitMinutes - best.VisitMinutes
	return AdjustmentCandidate{
		Type:             AdjustReplaceNext,
		Items:            out,
		Impact:           fmt.Sprintf("swap %s for %s (%.1f stars, %d minutes shorter)", next.Name, best.Name, best.Rating, saved),
		TimeSavedMinutes: saved,
	}, true
}

// rescheduleRemaining re-linearizes every remaining stop from now plus the
// delay, with a fixed buffer between stops. The result may overrun the day
// end; the overrun is reported, not trimmed.
func rescheduleRemaining(items []domain.ItineraryItem, currentIndex int, now time.Time, delayMinutes int) (AdjustmentCandidate, bool) {
	out := cloneItems(items)
	cursor := now.Add(time.Duration(delayMinutes) * time.Minute)

	var oldLastEnd, newLastEnd time.Time
	moved := 0
	for i := currentIndex + 1; i < len(out); i++ {
		if !out[i].Status.Active() {
			continue
		}
		oldLastEnd = out[i].End
		out[i].Start = cursor
		out[i].End = cursor.Add(time.Duration(out[i].VisitMinutes) * time.Minute)
		cursor = out[i].End.Add(interStopBufferMinutes * time.Minute)
		newLastEnd = out[i].End
		moved++
	}
	if moved == 0 {
		return AdjustmentCandidate{}, false
	}

	impact := fmt.Sprintf("push all %d remaining stops later with %d-minute buffers", moved, interStopBufferMinutes)
	date := out[currentIndex].Start
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(dayEndMinute * time.Minute)
	if newLastEnd.After(dayEnd) {
		impact += fmt.Sprintf("; day overruns %s by %d minutes",
			dayEnd.Format("15:04"), int(newLastEnd.Sub(dayEnd).Minutes()))
	}

	saved := 0
	if oldLastEnd.After(newLastEnd) {
		saved = int(oldLastEnd.Sub(newLastEnd).Minutes())
	}

	return AdjustmentCandidate{
		Type:             AdjustRescheduleRemaining,
		Items:            out,
		Impact:           impact,
		TimeSavedMinutes: saved,
	}, true
}

// renumberActive reassigns order indexes over active items only.
func renumberActive(items []domain.ItineraryItem) {
	n := 0
	for i := range items {
		if items[i].Status.Active() {
			n++
			items[i].Order = n
		}
	}
}
