package geo

import (
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/carlaops/carpark/pkg/core"
)

// SegmentLineString converts a parking middle line to a simplefeatures
// LineString for geometry-column storage.
func SegmentLineString(seg core.LineSegment) geom.LineString {
	coords := []float64{
		seg.Start.X, seg.Start.Y, seg.Start.Z,
		seg.End.X, seg.End.Y, seg.End.Z,
	}
	return geom.NewLineString(geom.NewSequence(coords, geom.DimXYZ))
}

// SegmentFromLineString rebuilds a parking middle line from a stored
// LineString. Only the first and last points are used.
func SegmentFromLineString(ls geom.LineString) core.LineSegment {
	seq := ls.Coordinates()
	if seq.Length() < 2 {
		return core.LineSegment{}
	}
	first := seq.Get(0)
	last := seq.Get(seq.Length() - 1)
	return core.LineSegment{
		Start: core.Position3D{X: first.XY.X, Y: first.XY.Y, Z: first.Z},
		End:   core.Position3D{X: last.XY.X, Y: last.XY.Y, Z: last.Z},
	}
}
