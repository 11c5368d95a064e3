// pkg/core/parking.go
package core

import "time"

// ParkingLine is one configured parking row: a middle line plus packing
// constraints. Supplied by the caller, read-only during processing.
type ParkingLine struct {
	Segment    LineSegment `json:"segment"`
	Side       Side        `json:"side"`
	Count      int         `json:"count"`      // requested vehicles, >= 0
	MinSpacing float64     `json:"minSpacing"` // metres, > 0
	Exclude    []string    `json:"exclude,omitempty"` // case-insensitive name substrings
}

// Candidate is one entry of the vehicle blueprint pool. The placement
// pipeline treats it as an opaque token; ID is only used for keyword
// filtering and persistence.
type Candidate struct {
	ID string `json:"id"`
}

// SpawnRecord is the persistence unit for one produced slot. A saved batch
// of records is sufficient to replay identical placements without
// re-running the packer's randomization.
type SpawnRecord struct {
	LineIndex int        `json:"lineIndex"`
	Candidate string     `json:"candidate"`
	Side      Side       `json:"side"`
	Location  Position3D `json:"location"`
	Rotation  Rotation   `json:"rotation"`
}

// BatchInfo is the metadata of one generation run. Together with the
// run's spawn records it fully describes a reproducible batch.
type BatchInfo struct {
	StartTime     time.Time `json:"startTime"`
	Seed          int64     `json:"seed"`
	SpawnHeight   float64   `json:"spawnHeight"`
	ParkingOffset float64   `json:"parkingOffset"`
}

// LineReport summarises one line's processing outcome.
type LineReport struct {
	LineIndex int      `json:"lineIndex"`
	Requested int      `json:"requested"`
	Effective int      `json:"effective"` // after capacity clamping
	Produced  int      `json:"produced"`  // actually spawned
	Skipped   bool     `json:"skipped"`   // empty candidate pool after filtering
	Exclude   []string `json:"exclude,omitempty"`
}
