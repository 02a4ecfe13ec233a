package dto

import "time"

type CreateTripRequest struct {
	TripID    string `json:"trip_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`
}

type TripDayResponse struct {
	Date  time.Time      `json:"date"`
	Items []ItemResponse `json:"items"`
}

type TripResponse struct {
	TripID    string            `json:"trip_id"`
	StartDate time.Time         `json:"start_date"`
	EndDate   time.Time         `json:"end_date"`
	Days      []TripDayResponse `json:"days"`
	Postponed []ItemResponse    `json:"postponed,omitempty"`
}

type ItemResponse struct {
	ID            string    `json:"id"`
	PlaceID       string    `json:"place_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Order         int       `json:"order"`
	Status        string    `json:"status"`
	TravelMinutes int       `json:"travel_minutes"`
	TravelNote    string    `json:"travel_note,omitempty"`
	VisitMinutes  int       `json:"visit_minutes"`
	MealNote      string    `json:"meal_note,omitempty"`
	CancelReason  string    `json:"cancel_reason,omitempty"`
}
