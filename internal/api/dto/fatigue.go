package dto

import "time"

type FatigueSampleRequest struct {
	TripID       string `json:"trip_id"`
	UserID       string `json:"user_id"`
	HeartRateBPM int    `json:"heart_rate_bpm"`
	SpanMinutes  int    `json:"span_minutes"`
}

type FatigueRestRequest struct {
	TripID      string `json:"trip_id"`
	UserID      string `json:"user_id"`
	RestMinutes int    `json:"rest_minutes"`
	VenueType   string `json:"venue_type"`
}

type FatigueResponse struct {
	Percentage      float64   `json:"percentage"`
	Level           string    `json:"level"`
	SpentTodayKcal  float64   `json:"spent_today_kcal"`
	DailyBudgetKcal float64   `json:"daily_budget_kcal"`
	UpdatedAt       time.Time `json:"updated_at"`
	// AdjustmentRecommended is set when this sample pushed fatigue into the
	// high or exhausted band.
	AdjustmentRecommended bool `json:"adjustment_recommended,omitempty"`
}
