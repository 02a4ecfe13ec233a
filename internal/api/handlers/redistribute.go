package handlers

import (
	"log"
	"net/http"
	"strings"

	"itinerary-engine/internal/api/dto"
	"itinerary-engine/internal/ports"
	"itinerary-engine/internal/services"
)

// RedistributeHandler abandons the rest of a day and packs the abandoned
// activities into later days, persisting the mutated trip document.
type RedistributeHandler struct {
	Store ports.DocumentStore
}

func (h *RedistributeHandler) Redistribute(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.RedistributeRequest
	if !readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.TripID) == "" {
		writeError(w, r, http.StatusBadRequest, "trip_id is required")
		return
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		writeError(w, r, http.StatusBadRequest, "reason is required")
		return
	}

	trip, ok := loadTrip(w, r, h.Store, req.TripID)
	if !ok {
		return
	}

	result, err := services.RedistributeRemaining(trip, req.DayIndex, req.FromItemIndex, reason)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.Set(r.Context(), ports.TripKey(req.TripID), trip); err != nil {
		log.Printf("persist redistribution failed: trip_id=%s err=%v", req.TripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RedistributeResponse{
		CanceledCount: result.CanceledCount,
		PlacedCount:   result.PlacedCount,
		Postponed:     itemsResponse(result.Postponed),
	})
}
