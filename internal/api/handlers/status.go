package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"itinerary-engine/internal/api/dto"
	"itinerary-engine/internal/ports"
	"itinerary-engine/internal/services"
)

// StatusHandler answers monitoring ticks: lateness against the next
// commitment plus an optional weather advisory for the current location.
type StatusHandler struct {
	Store   ports.DocumentStore
	Weather ports.WeatherProvider
}

func (h *StatusHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.StatusRequest
	if !readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.TripID) == "" {
		writeError(w, r, http.StatusBadRequest, "trip_id is required")
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

	status := services.CheckSchedule(day.Items, req.CurrentIndex, now)

	res := dto.StatusResponse{
		CurrentIndex:     status.CurrentIndex,
		IsBehindSchedule: status.IsBehindSchedule,
		DelayMinutes:     status.DelayMinutes,
	}
	if !status.NextActivityStart.IsZero() {
		next := status.NextActivityStart
		res.NextActivityStart = &next
	}

	// Weather is advisory only; a provider failure never fails the tick.
	if h.Weather != nil {
		at := day.Items[req.CurrentIndex].Coordinates
		condition, err := h.Weather.Current(r.Context(), at)
		if err != nil {
			log.Printf("weather lookup failed: trip_id=%s err=%v", req.TripID, err)
		} else {
			eta, err := h.Weather.ForecastChangeETA(r.Context(), at)
			if err != nil {
				eta = -1
			}
			res.Weather = &dto.WeatherAdvisory{Condition: condition, ChangeETAMinutes: eta}
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
