// Package layout generates parking slot placements along middle lines:
// line geometry decomposition, variable-spacing packing and pose synthesis.
package layout

import (
	"math"

	"github.com/carlaops/carpark/pkg/core"
)

// degenerateEpsilon is the length below which a segment or horizontal
// projection is treated as degenerate.
const degenerateEpsilon = 0.001

// fallbackAxis is returned for degenerate and near-vertical lines so that
// callers get a stable, arbitrary orientation instead of a division by zero.
var fallbackAxis = core.Vector3D{X: 1, Y: 0, Z: 0}

// SegmentLength returns the Euclidean length of the middle line.
func SegmentLength(seg core.LineSegment) float64 {
	dx := seg.End.X - seg.Start.X
	dy := seg.End.Y - seg.Start.Y
	dz := seg.End.Z - seg.Start.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ResolveAxes computes the unit line direction and the unit horizontal-plane
// perpendicular of a segment. Degenerate segments (length < 0.001) and
// near-vertical lines fall back to (1,0,0); ResolveAxes never fails.
func ResolveAxes(seg core.LineSegment) (dir, perp core.Vector3D) {
	length := SegmentLength(seg)
	if length < degenerateEpsilon {
		return fallbackAxis, fallbackAxis
	}

	dir = core.Vector3D{
		X: (seg.End.X - seg.Start.X) / length,
		Y: (seg.End.Y - seg.Start.Y) / length,
		Z: (seg.End.Z - seg.Start.Z) / length,
	}

	// 90° rotation restricted to the horizontal plane: (x,y) -> (-y,x).
	perp = core.Vector3D{X: -dir.Y, Y: dir.X, Z: 0}
	horiz := math.Sqrt(perp.X*perp.X + perp.Y*perp.Y)
	if horiz < degenerateEpsilon {
		// Nearly vertical line, no meaningful horizontal perpendicular.
		return dir, fallbackAxis
	}
	perp.X /= horiz
	perp.Y /= horiz

	return dir, perp
}

// PointAt interpolates the point at distance d along the segment.
// A zero-length segment maps every distance to the start point.
func PointAt(seg core.LineSegment, d float64) core.Position3D {
	length := SegmentLength(seg)
	var t float64
	if length > 0 {
		t = d / length
	}
	return core.Position3D{
		X: seg.Start.X + t*(seg.End.X-seg.Start.X),
		Y: seg.Start.Y + t*(seg.End.Y-seg.Start.Y),
		Z: seg.Start.Z + t*(seg.End.Z-seg.Start.Z),
	}
}
