package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"itinerary-engine/internal/api/dto"
	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
	"itinerary-engine/internal/services"
)

// TripHandler owns trip document lifecycle: creation and retrieval.
type TripHandler struct {
	Store ports.DocumentStore
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.CreateTripRequest
	if !readJSON(w, r, &req) {
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		writeError(w, r, http.StatusBadRequest, "end_date must not precede start_date")
		return
	}

	tripID := strings.TrimSpace(req.TripID)
	if tripID == "" {
		tripID = uuid.NewString()
	}

	trip := services.NewTripPlan(tripID, start, end)
	if err := h.Store.Set(r.Context(), ports.TripKey(tripID), trip); err != nil {
		log.Printf("create trip failed: trip_id=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, tripResponse(trip))
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tripID := strings.TrimSpace(r.URL.Query().Get("trip_id"))
	if tripID == "" {
		writeError(w, r, http.StatusBadRequest, "trip_id is required")
		return
	}

	trip, ok := loadTrip(w, r, h.Store, tripID)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, tripResponse(trip))
}

// loadTrip fetches a trip document, writing the error response on failure.
func loadTrip(w http.ResponseWriter, r *http.Request, store ports.DocumentStore, tripID string) (*domain.TripPlan, bool) {
	var trip domain.TripPlan
	err := store.Get(r.Context(), ports.TripKey(tripID), &trip)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return nil, false
	}
	if err != nil {
		log.Printf("load trip failed: trip_id=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return &trip, true
}

func tripResponse(trip *domain.TripPlan) dto.TripResponse {
	res := dto.TripResponse{
		TripID:    trip.TripID,
		StartDate: trip.StartDate,
		EndDate:   trip.EndDate,
		Days:      make([]dto.TripDayResponse, 0, len(trip.Days)),
		Postponed: itemsResponse(trip.Postponed),
	}
	for _, day := range trip.Days {
		res.Days = append(res.Days, dto.TripDayResponse{
			Date:  day.Date,
			Items: itemsResponse(day.Items),
		})
	}
	return res
}
