package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"itinerary-engine/internal/api/dto"
	"itinerary-engine/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// readJSON decodes a single strict JSON object into v. On failure it writes
// the error response and returns false.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func itemResponse(it domain.ItineraryItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            it.ID,
		PlaceID:       it.PlaceID,
		Name:          it.Name,
		Category:      it.Category,
		Rating:        it.Rating,
		Start:         it.Start,
		End:           it.End,
		Order:         it.Order,
		Status:        string(it.Status),
		TravelMinutes: it.TravelMinutes,
		TravelNote:    it.TravelNote,
		VisitMinutes:  it.VisitMinutes,
		MealNote:      it.MealNote,
		CancelReason:  it.CancelReason,
	}
}

func itemsResponse(items []domain.ItineraryItem) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemResponse(it))
	}
	return out
}
