package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// TripIDKey carries the trip being operated on through external call paths.
const TripIDKey ctxKey = "trip_id"

// Time logs the duration and outcome of an operation when the returned
// function runs. Use as: defer obs.Time(ctx, "ors.Routes")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	tripID, _ := ctx.Value(TripIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("trip_id=%s op=%s dur=%dms err=%v", tripID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("trip_id=%s op=%s dur=%dms", tripID, name, dur.Milliseconds())
	}
}
