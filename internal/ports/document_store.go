package ports

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document key is absent. Corrupt stored
// documents are also reported as absent so the engine reinitializes defaults
// instead of failing the caller.
var ErrNotFound = errors.New("document not found")

// Port: generic JSON document persistence keyed by the caller.
type DocumentStore interface {
	// Get unmarshals the document at key into v, or returns ErrNotFound.
	Get(ctx context.Context, key string, v any) error
	// Set marshals v and stores it at key, replacing any prior value.
	Set(ctx context.Context, key string, v any) error
}

// TripKey is the document key for a whole trip plan.
func TripKey(tripID string) string { return "trip:" + tripID }

// TripDayKey is the document key for one day of a trip.
func TripDayKey(tripID string, dayIndex int) string {
	return fmt.Sprintf("trip:%s:day:%d", tripID, dayIndex)
}

// FatigueKey is the document key for a traveler's fatigue snapshot.
func FatigueKey(tripID string) string { return "trip:" + tripID + ":fatigue" }
