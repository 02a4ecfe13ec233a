package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary-engine/internal/adapters/places"
	"itinerary-engine/internal/adapters/routing"
	"itinerary-engine/internal/adapters/store"
	"itinerary-engine/internal/adapters/weather"
	"itinerary-engine/internal/domain"
	"itinerary-engine/internal/ports"
)

type stubPlaceRepo struct{ places []domain.Place }

func (r *stubPlaceRepo) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	return r.places, nil
}

type stubBiometricStore struct{ profiles map[string]domain.BiometricProfile }

func (s *stubBiometricStore) Get(ctx context.Context, userID string) (domain.BiometricProfile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return domain.BiometricProfile{}, ports.ErrNotFound
	}
	return p, nil
}

func (s *stubBiometricStore) Set(ctx context.Context, userID string, p domain.BiometricProfile) error {
	s.profiles[userID] = p
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *store.RedisDocumentStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	docStore, err := store.NewRedisDocumentStore(mr.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = docStore.Close() })

	repo := &stubPlaceRepo{places: []domain.Place{
		{ID: "p1", Name: "Museum", Category: "museum", VisitMinutes: 90, Rating: 4.5,
			Coordinates: domain.Coordinates{Lat: 48.86, Lon: 2.34}},
		{ID: "p2", Name: "Garden", Category: "park", VisitMinutes: 60, Rating: 4.2,
			Coordinates: domain.Coordinates{Lat: 48.87, Lon: 2.35}},
	}}

	router := NewRouter(Deps{
		Places:   repo,
		Routing:  routing.NewMockRoutingProvider(nil), // fallback edges everywhere
		Catalog:  &places.MockPlaceCatalog{},
		Weather:  &weather.MockWeatherProvider{Condition: "rain", ChangeETA: 45},
		Store:    docStore,
		Profiles: &stubBiometricStore{profiles: map[string]domain.BiometricProfile{
			"u1": {Gender: "male", Age: 30, WeightKg: 75, HeightCm: 180},
		}},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, docStore
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response, v any) {
	t.Helper()
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCreateAndFetchTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	res := postJSON(t, srv.URL+"/trips", map[string]string{
		"trip_id":    "t1",
		"start_date": "2026-05-01",
		"end_date":   "2026-05-03",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created struct {
		TripID string `json:"trip_id"`
		Days   []any  `json:"days"`
	}
	decodeBody(t, res, &created)
	assert.Equal(t, "t1", created.TripID)
	assert.Len(t, created.Days, 3)

	got, err := http.Get(srv.URL + "/trip?trip_id=t1")
	require.NoError(t, err)
	got.Body.Close()
	assert.Equal(t, http.StatusOK, got.StatusCode)

	missing, err := http.Get(srv.URL + "/trip?trip_id=nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestPlanDayEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	res := postJSON(t, srv.URL+"/trips", map[string]string{
		"trip_id": "t2", "start_date": "2026-05-01", "end_date": "2026-05-01",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res.Body.Close()

	res = postJSON(t, srv.URL+"/plans", map[string]any{
		"trip_id":   "t2",
		"day_index": 0,
		"origin":    map[string]float64{"lat": 48.85, "lng": 2.35},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var plan struct {
		Items []struct {
			PlaceID string `json:"place_id"`
			Order   int    `json:"order"`
			Status  string `json:"status"`
		} `json:"items"`
	}
	decodeBody(t, res, &plan)
	require.Len(t, plan.Items, 2)
	assert.Equal(t, 1, plan.Items[0].Order)
	assert.Equal(t, "pending", plan.Items[0].Status)

	// The plan must be visible on the persisted trip document.
	got, err := http.Get(srv.URL + "/trip?trip_id=t2")
	require.NoError(t, err)
	var trip struct {
		Days []struct {
			Items []any `json:"items"`
		} `json:"days"`
	}
	decodeBody(t, got, &trip)
	require.Len(t, trip.Days, 1)
	assert.Len(t, trip.Days[0].Items, 2)
}

func seedTrip(t *testing.T, docStore *store.RedisDocumentStore, trip *domain.TripPlan) {
	t.Helper()
	require.NoError(t, docStore.Set(context.Background(), ports.TripKey(trip.TripID), trip))
}

func TestStatusEndpoint(t *testing.T) {
	srv, docStore := newTestServer(t)

	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	seedTrip(t, docStore, &domain.TripPlan{
		TripID: "t3", StartDate: date, EndDate: date,
		Days: []domain.DayPlan{{Date: date, Items: []domain.ItineraryItem{
			{ID: "i1", PlaceID: "p1", Name: "Museum", Status: domain.StatusInProgress,
				Start: date.Add(11 * time.Hour), End: date.Add(13 * time.Hour), Order: 1},
			{ID: "i2", PlaceID: "p2", Name: "Garden", Status: domain.StatusPending,
				Start: date.Add(14 * time.Hour), End: date.Add(15 * time.Hour), Order: 2, TravelMinutes: 15},
		}}},
	})

	now := date.Add(14*time.Hour + 5*time.Minute) // 20 past the 13:45 departure
	res := postJSON(t, srv.URL+"/status", map[string]any{
		"trip_id": "t3", "day_index": 0, "current_index": 0, "now": now,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var status struct {
		IsBehindSchedule bool `json:"is_behind_schedule"`
		DelayMinutes     int  `json:"delay_minutes"`
		Weather          *struct {
			Condition        string `json:"condition"`
			ChangeETAMinutes int    `json:"change_eta_minutes"`
		} `json:"weather"`
	}
	decodeBody(t, res, &status)
	assert.True(t, status.IsBehindSchedule)
	assert.Equal(t, 20, status.DelayMinutes)
	require.NotNil(t, status.Weather)
	assert.Equal(t, "rain", status.Weather.Condition)
	assert.Equal(t, 45, status.Weather.ChangeETAMinutes)
}

func TestRedistributeEndpointPersists(t *testing.T) {
	srv, docStore := newTestServer(t)

	day1 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	seedTrip(t, docStore, &domain.TripPlan{
		TripID: "t4", StartDate: day1, EndDate: day2,
		Days: []domain.DayPlan{
			{Date: day1, Items: []domain.ItineraryItem{
				{ID: "i1", PlaceID: "p1", Name: "Museum", Status: domain.StatusPending,
					Start: day1.Add(10 * time.Hour), End: day1.Add(11 * time.Hour), Order: 1, VisitMinutes: 60},
			}},
			{Date: day2},
		},
	})

	res := postJSON(t, srv.URL+"/redistribute", map[string]any{
		"trip_id": "t4", "day_index": 0, "from_item_index": 0, "reason": "storm warning",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out struct {
		CanceledCount int `json:"canceled_count"`
		PlacedCount   int `json:"placed_count"`
	}
	decodeBody(t, res, &out)
	assert.Equal(t, 1, out.CanceledCount)
	assert.Equal(t, 1, out.PlacedCount)

	var trip domain.TripPlan
	require.NoError(t, docStore.Get(context.Background(), ports.TripKey("t4"), &trip))
	require.Len(t, trip.Days[0].Items, 1)
	assert.Equal(t, domain.StatusCanceled, trip.Days[0].Items[0].Status)
	assert.Equal(t, "storm warning", trip.Days[0].Items[0].CancelReason)
	require.Len(t, trip.Days[1].Items, 1)
	assert.Equal(t, "p1", trip.Days[1].Items[0].PlaceID)
}

func TestFatigueSampleAndRecovery(t *testing.T) {
	srv, _ := newTestServer(t)

	res := postJSON(t, srv.URL+"/fatigue/sample", map[string]any{
		"trip_id": "t5", "user_id": "u1", "heart_rate_bpm": 120, "span_minutes": 60,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var sampled struct {
		Percentage float64 `json:"percentage"`
		Level      string  `json:"level"`
	}
	decodeBody(t, res, &sampled)
	assert.Greater(t, sampled.Percentage, 0.0)

	res = postJSON(t, srv.URL+"/fatigue/recovery", map[string]any{
		"trip_id": "t5", "user_id": "u1", "rest_minutes": 60, "venue_type": "spa",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var rested struct {
		Percentage float64 `json:"percentage"`
	}
	decodeBody(t, res, &rested)
	assert.Less(t, rested.Percentage, sampled.Percentage)

	unknown := postJSON(t, srv.URL+"/fatigue/sample", map[string]any{
		"trip_id": "t5", "user_id": "nobody", "heart_rate_bpm": 100, "span_minutes": 10,
	})
	unknown.Body.Close()
	assert.Equal(t, http.StatusNotFound, unknown.StatusCode)
}

func TestStrictRequestDecoding(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := http.Post(srv.URL+"/trips", "application/json",
		bytes.NewReader([]byte(`{"trip_id":"x","bogus":true}`)))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	get, err := http.Get(srv.URL + "/plans")
	require.NoError(t, err)
	get.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, get.StatusCode)
}
