package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"itinerary-engine/internal/api/dto"
	"itinerary-engine/internal/platform/obs"
	"itinerary-engine/internal/ports"
	"itinerary-engine/internal/services"
)

// AdjustmentHandler generates ranked schedule-repair candidates. Candidates
// are returned, never applied; the client applies one by re-planning.
type AdjustmentHandler struct {
	Store   ports.DocumentStore
	Catalog ports.PlaceCatalog
}

func (h *AdjustmentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.AdjustmentsRequest
	if !readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.TripID) == "" {
		writeError(w, r, http.StatusBadRequest, "trip_id is required")
		return
	}
	if req.DelayMinutes < 0 {
		writeError(w, r, http.StatusBadRequest, "delay_minutes must not be negative")
		return
	}

	trip, ok := loadTrip(w, r, h.Store, req.TripID)
	if !ok {
		return
	}
	day := trip.Day(req.DayIndex)
	if day == nil {
		writeError(w, r, http.StatusBadRequest, "day_index out of range")
		return
	}
	if req.CurrentIndex < 0 || req.CurrentIndex >= len(day.Items) {
		writeError(w, r, http.StatusBadRequest, "current_index out of range")
		return
	}

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}

	ctx := context.WithValue(r.Context(), obs.TripIDKey, req.TripID)
	candidates := services.GenerateAdjustments(ctx, day.Items, req.CurrentIndex, now, req.DelayMinutes, h.Catalog)

	res := dto.AdjustmentsResponse{
		Candidates: make([]dto.AdjustmentCandidateResponse, 0, len(candidates)),
	}
	for _, c := range candidates {
		res.Candidates = append(res.Candidates, dto.AdjustmentCandidateResponse{
			Type:             string(c.Type),
			Impact:           c.Impact,
			TimeSavedMinutes: c.TimeSavedMinutes,
			Items:            itemsResponse(c.Items),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
