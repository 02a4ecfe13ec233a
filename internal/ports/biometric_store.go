package ports

import (
	"context"

	"itinerary-engine/internal/domain"
)

// Port: persistence for the traveler's biometric profile.
type BiometricStore interface {
	// Get returns the stored profile, or ErrNotFound when none exists.
	Get(ctx context.Context, userID string) (domain.BiometricProfile, error)
	Set(ctx context.Context, userID string, profile domain.BiometricProfile) error
}
