package dto

import "time"

type StatusRequest struct {
	TripID       string     `json:"trip_id"`
	DayIndex     int        `json:"day_index"`
	CurrentIndex int        `json:"current_index"`
	Now          *time.Time `json:"now"`
}

type WeatherAdvisory struct {
	Condition        string `json:"condition"`
	ChangeETAMinutes int    `json:"change_eta_minutes"`
}

type StatusResponse struct {
	CurrentIndex      int              `json:"current_index"`
	IsBehindSchedule  bool             `json:"is_behind_schedule"`
	DelayMinutes      int              `json:"delay_minutes"`
	NextActivityStart *time.Time       `json:"next_activity_start,omitempty"`
	Weather           *WeatherAdvisory `json:"weather,omitempty"`
}

type AdjustmentsRequest struct {
	TripID       string     `json:"trip_id"`
	DayIndex     int        `json:"day_index"`
	CurrentIndex int        `json:"current_index"`
	DelayMinutes int        `json:"delay_minutes"`
	Now          *time.Time `json:"now"`
}

type AdjustmentCandidateResponse struct {
	Type             string         `json:"type"`
	Impact           string         `json:"impact"`
	TimeSavedMinutes int            `json:"time_saved_minutes"`
	Items            []ItemResponse `json:"items"`
}

type AdjustmentsResponse struct {
	Candidates []AdjustmentCandidateResponse `json:"candidates"`
}

type RedistributeRequest struct {
	TripID        string `json:"trip_id"`
	DayIndex      int    `json:"day_index"`
	FromItemIndex int    `json:"from_item_index"`
	Reason        string `json:"reason"`
}

type RedistributeResponse struct {
	CanceledCount int            `json:"canceled_count"`
	PlacedCount   int            `json:"placed_count"`
	Postponed     []ItemResponse `json:"postponed,omitempty"`
}
