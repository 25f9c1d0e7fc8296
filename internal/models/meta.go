package models

import "time"

// SeedMarker records a completed demo-data pass in the meta collection. The
// version lets a later boot detect drift between the marker and the seed set
// it would write today.
type SeedMarker struct {
	Version  int       `json:"version"`
	SeededAt time.Time `json:"seededAt"`
}
