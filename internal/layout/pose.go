package layout

import (
	"math"
	"math/rand"

	"github.com/carlaops/carpark/pkg/core"
)

// yawJitterDegrees is the half-width of the random yaw variation applied to
// every pose so rows of vehicles are not perfectly aligned.
const yawJitterDegrees = 2.0

// GroundQuery resolves terrain height at a position via a vertical ray cast
// spanning generously above and below the queried point. ok is false when
// the ray hit nothing.
type GroundQuery interface {
	QueryGround(p core.Position3D) (hit core.GroundHit, ok bool)
}

// PoseOptions carries the placement configuration shared by all lines.
type PoseOptions struct {
	SpawnHeight   float64 // metres above resolved ground
	ParkingOffset float64 // perpendicular metres from the middle line
}

// SynthesizePose converts one packed placement into a full spawn pose:
// interpolated point on the line, perpendicular offset to the slot's side,
// terrain-conforming height and a side-dependent yaw.
//
// A ground-query miss is not an error: the pose keeps the interpolated z
// (plus spawn height) as a silent fallback.
func SynthesizePose(seg core.LineSegment, dir, perp core.Vector3D, placement core.SlotPlacement, opts PoseOptions, ground GroundQuery, rng *rand.Rand) core.Pose {
	point := PointAt(seg, placement.Distance)

	offsetSign := -1.0
	if placement.Side == core.SideRight {
		offsetSign = 1.0
	}
	location := core.Position3D{
		X: point.X + offsetSign*opts.ParkingOffset*perp.X,
		Y: point.Y + offsetSign*opts.ParkingOffset*perp.Y,
		Z: point.Z,
	}

	if hit, ok := ground.QueryGround(location); ok {
		location.Z = hit.Z + opts.SpawnHeight
	} else {
		location.Z += opts.SpawnHeight
	}

	// Vehicles park perpendicular to the line, nose away from it.
	yaw := math.Atan2(dir.Y, dir.X) * 180 / math.Pi
	if placement.Side == core.SideLeft {
		yaw += 90
	} else {
		yaw -= 90
	}
	yaw += (rng.Float64()*2 - 1) * yawJitterDegrees

	return core.Pose{
		Location: location,
		Rotation: core.Rotation{Yaw: yaw},
	}
}
