package api

import (
	"net/http"

	"itinerary-engine/internal/api/handlers"
	"itinerary-engine/internal/ports"
)

// Deps are the ports the HTTP surface needs. Handlers stay unaware of the
// concrete adapters behind them.
type Deps struct {
	Places   ports.PlaceRepository
	Routing  ports.RoutingProvider
	Catalog  ports.PlaceCatalog
	Weather  ports.WeatherProvider
	Store    ports.DocumentStore
	Profiles ports.BiometricStore
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{Store: d.Store}
	planHandler := &handlers.PlanHandler{Repo: d.Places, Provider: d.Routing, Store: d.Store}
	statusHandler := &handlers.StatusHandler{Store: d.Store, Weather: d.Weather}
	adjustHandler := &handlers.AdjustmentHandler{Store: d.Store, Catalog: d.Catalog}
	redistHandler := &handlers.RedistributeHandler{Store: d.Store}
	fatigueHandler := &handlers.FatigueHandler{Profiles: d.Profiles, Store: d.Store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trips", tripHandler.Create)
	mux.HandleFunc("/trip", tripHandler.Get)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/status", statusHandler.Check)
	mux.HandleFunc("/adjustments", adjustHandler.Generate)
	mux.HandleFunc("/redistribute", redistHandler.Redistribute)
	mux.HandleFunc("/fatigue/sample", fatigueHandler.Sample)
	mux.HandleFunc("/fatigue/recovery", fatigueHandler.Rest)

	return loggingMiddleware(mux)
}
