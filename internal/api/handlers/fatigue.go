package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"itinerary-engine/internal/api/dto"
	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
	"itinerary-engine/internal/services"
)

// FatigueHandler records heart-rate samples and rest recovery against the
// traveler's persisted fatigue snapshot.
type FatigueHandler struct {
	Profiles ports.BiometricStore
	Store    ports.DocumentStore
}

func (h *FatigueHandler) Sample(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.FatigueSampleRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.HeartRateBPM <= 0 || req.SpanMinutes <= 0 {
		writeError(w, r, http.StatusBadRequest, "heart_rate_bpm and span_minutes must be positive")
		return
	}

	tracker, ok := h.tracker(w, r, req.TripID, req.UserID)
	if !ok {
		return
	}

	now := time.Now()
	state, crossed := tracker.RecordHeartRate(req.HeartRateBPM, time.Duration(req.SpanMinutes)*time.Minute, now)

	if !h.persist(w, r, req.TripID, state) {
		return
	}
	writeJSON(w, r, http.StatusOK, fatigueResponse(state, crossed))
}

func (h *FatigueHandler) Rest(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.FatigueRestRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.RestMinutes <= 0 {
		writeError(w, r, http.StatusBadRequest, "rest_minutes must be positive")
		return
	}

	tracker, ok := h.tracker(w, r, req.TripID, req.UserID)
	if !ok {
		return
	}

	state := tracker.ApplyRest(req.RestMinutes, req.VenueType, time.Now())

	if !h.persist(w, r, req.TripID, state) {
		return
	}
	writeJSON(w, r, http.StatusOK, fatigueResponse(state, false))
}

// tracker loads the biometric profile and resumes the persisted snapshot. A
// missing snapshot starts fresh; a missing profile is a client error.
func (h *FatigueHandler) tracker(w http.ResponseWriter, r *http.Request, tripID, userID string) (*services.FatigueTracker, bool) {
	if strings.TrimSpace(tripID) == "" || strings.TrimSpace(userID) == "" {
		writeError(w, r, http.StatusBadRequest, "trip_id and user_id are required")
		return nil, false
	}

	profile, err := h.Profiles.Get(r.Context(), userID)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "biometric profile not found")
		return nil, false
	}
	if err != nil {
		log.Printf("load profile failed: user_id=%s err=%v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	tracker := services.NewFatigueTracker(profile, time.Now())

	var snapshot domain.FatigueState
	err = h.Store.Get(r.Context(), ports.FatigueKey(tripID), &snapshot)
	if err == nil {
		tracker.Restore(snapshot)
	} else if !errors.Is(err, ports.ErrNotFound) {
		log.Printf("load fatigue snapshot failed: trip_id=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	return tracker, true
}

func (h *FatigueHandler) persist(w http.ResponseWriter, r *http.Request, tripID string, state domain.FatigueState) bool {
	if err := h.Store.Set(r.Context(), ports.FatigueKey(tripID), state); err != nil {
		log.Printf("persist fatigue failed: trip_id=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return false
	}
	return true
}

func fatigueResponse(state domain.FatigueState, crossed bool) dto.FatigueResponse {
	return dto.FatigueResponse{
		Percentage:            state.Percentage,
		Level:                 state.Level.String(),
		SpentTodayKcal:        state.SpentTodayKcal,
		DailyBudgetKcal:       state.DailyBudgetKcal,
		UpdatedAt:             state.UpdatedAt,
		AdjustmentRecommended: crossed,
	}
}
