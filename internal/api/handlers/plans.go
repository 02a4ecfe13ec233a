package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"itinerary-engine/internal/api/dto"
	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/platform/obs"
	"itinerary-engine/internal/ports"
	"itinerary-engine/internal/services"
)

// PlanHandler runs the day-planning pipeline and persists the result into
// the trip document.
type PlanHandler struct {
	Repo     ports.PlaceRepository
	Provider ports.RoutingProvider
	Store    ports.DocumentStore
}

func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.PlanDayRequest
	if !readJSON(w, r, &req) {
		return
	}

	tripID := strings.TrimSpace(req.TripID)
	if tripID == "" {
		writeError(w, r, http.StatusBadRequest, "trip_id is required")
		return
	}
	if req.Origin.Lat == 0 && req.Origin.Lng == 0 {
		writeError(w, r, http.StatusBadRequest, "origin is required")
		return
	}

	trip, ok := loadTrip(w, r, h.Store, tripID)
	if !ok {
		return
	}
	day := trip.Day(req.DayIndex)
	if day == nil {
		writeError(w, r, http.StatusBadRequest, "day_index out of range")
		return
	}

	ctx := context.WithValue(r.Context(), obs.TripIDKey, tripID)

	candidates, err := h.candidates(ctx, trip, req.Category)
	if err != nil {
		log.Printf("plan day failed: trip_id=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	result := services.PlanDay(ctx, services.PlanDayRequest{
		Date:           day.Date,
		DayStartMinute: req.DayStartMinute,
		Origin:         domain.Coordinates{Lat: req.Origin.Lat, Lon: req.Origin.Lng},
		Candidates:     candidates,
		Mode:           req.Mode,
	}, h.Provider)

	trip.Days[req.DayIndex] = result.Day
	if err := h.Store.Set(ctx, ports.TripKey(tripID), trip); err != nil {
		log.Printf("persist plan failed: trip_id=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PlanDayResponse{
		TripID:   tripID,
		DayIndex: req.DayIndex,
		Items:    itemsResponse(result.Day.Items),
		Warnings: result.Warnings,
	}
	for _, p := range result.Dropped {
		res.Dropped = append(res.Dropped, dto.DroppedPlaceResponse{
			PlaceID: p.ID,
			Name:    p.Name,
			Reason:  "no feasible slot before closing",
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// candidates lists seeded places minus any already active elsewhere in the
// trip, keeping each place unique across days.
func (h *PlanHandler) candidates(ctx context.Context, trip *domain.TripPlan, category string) ([]domain.Place, error) {
	places, err := h.Repo.ListPlaces(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Place, 0, len(places))
	for _, p := range places {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if trip.HasActivePlace(p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
