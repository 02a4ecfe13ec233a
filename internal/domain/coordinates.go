package domain

import "fmt"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// CoordsToList returns [lon, lat] in the order external routing APIs expect.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Key returns a stable string form used as a routing cache key.
// Five decimals is roughly meter precision, enough to dedupe lookups.
func (c Coordinates) Key() string { return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon) }
