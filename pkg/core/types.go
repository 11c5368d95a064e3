// pkg/core/types.go
package core

import "fmt"

// Position3D represents a 3D coordinate in the simulator's local frame (metres)
type Position3D struct {
	X float64 `json:"x"` // easting
	Y float64 `json:"y"` // northing
	Z float64 `json:"z"` // elevation
}

// Vector3D represents a direction in the simulator's local frame.
// Not necessarily unit length; normalize before using as a direction.
type Vector3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// LineSegment is the painted middle line of a parking row.
// Degenerate (start ≈ end) segments are valid input and must not panic.
type LineSegment struct {
	Start Position3D `json:"start"`
	End   Position3D `json:"end"`
}

// Side specifies which lateral offset direction slots are placed on,
// relative to the line's direction of travel.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	// SideBoth assigns each generated slot independently to left or right.
	SideBoth Side = "both"
)

// ParseSide converts a config string to a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideLeft, SideRight, SideBoth:
		return Side(s), nil
	default:
		return "", fmt.Errorf("invalid side %q: must be left, right or both", s)
	}
}

// SlotPlacement is one packed slot along a line, before pose synthesis.
// Side is always left or right here; "both" is resolved by the packer.
type SlotPlacement struct {
	Distance float64 `json:"distance"` // metres from segment start, in [0, length]
	Side     Side    `json:"side"`
}

// Rotation holds a simulator rotation in degrees.
type Rotation struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// Pose is the final placement unit: one per spawned entity.
type Pose struct {
	Location Position3D `json:"location"`
	Rotation Rotation   `json:"rotation"`
}

// GroundHit is the result of a vertical ray cast through a position.
type GroundHit struct {
	Z float64 `json:"z"`
}
