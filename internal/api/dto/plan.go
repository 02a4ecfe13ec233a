package dto

type CoordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PlanDayRequest struct {
	TripID         string         `json:"trip_id"`
	DayIndex       int            `json:"day_index"`
	Origin         CoordinatesDTO `json:"origin"`
	Mode           string         `json:"mode"`
	DayStartMinute int            `json:"day_start_minute"`
	// Category limits candidates to one place category; empty means all.
	Category string `json:"category"`
}

type DroppedPlaceResponse struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
	Reason  string `json:"reason,omitempty"`
}

type PlanDayResponse struct {
	TripID   string                 `json:"trip_id"`
	DayIndex int                    `json:"day_index"`
	Items    []ItemResponse         `json:"items"`
	Dropped  []DroppedPlaceResponse `json:"dropped,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
}
