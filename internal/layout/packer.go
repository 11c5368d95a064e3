package layout

import (
	"errors"
	"math"
	"math/rand"

	"github.com/carlaops/carpark/pkg/core"
)

// Caller contract violations. These are returned, never coerced.
var (
	ErrInvalidSide    = errors.New("invalid side: must be left, right or both")
	ErrInvalidSpacing = errors.New("minimum spacing must be positive")
	ErrNegativeCount  = errors.New("requested count must not be negative")
)

// PackReport describes non-fatal packing outcomes.
type PackReport struct {
	Capacity  int  // floor(length / minSpacing)
	Effective int  // requested count after clamping to capacity
	Clamped   bool // requested count exceeded capacity
}

// Pack produces an ordered sequence of slot placements along a line of the
// given length. Spacing between consecutive slots is drawn uniformly from
// [minSpacing, 2*minSpacing); a backfill pass retries with tighter spacing
// from [minSpacing, 1.5*minSpacing) when the first pass fell short. The
// result may still hold fewer slots than requested: under-fill is an
// accepted outcome, reported via PackReport rather than an error.
//
// All randomness comes from rng, so a fixed seed reproduces the exact
// placement sequence.
func Pack(length float64, side core.Side, count int, minSpacing float64, rng *rand.Rand) ([]core.SlotPlacement, PackReport, error) {
	switch side {
	case core.SideLeft, core.SideRight, core.SideBoth:
	default:
		return nil, PackReport{}, ErrInvalidSide
	}
	if minSpacing <= 0 {
		return nil, PackReport{}, ErrInvalidSpacing
	}
	if count < 0 {
		return nil, PackReport{}, ErrNegativeCount
	}

	report := PackReport{
		Capacity:  int(math.Floor(length / minSpacing)),
		Effective: count,
	}
	if count > report.Capacity {
		report.Effective = report.Capacity
		report.Clamped = true
	}

	// Primary pass: greedy fill with loose random spacing.
	distances := make([]float64, 0, report.Effective)
	cursor := 0.0
	for i := 0; i < report.Effective; i++ {
		spacing := minSpacing + rng.Float64()*minSpacing
		if cursor+spacing > length {
			break
		}
		distances = append(distances, cursor)
		cursor += spacing
	}

	// Backfill pass: tighter spacing, best effort only.
	for len(distances) < report.Effective && cursor < length {
		spacing := minSpacing + rng.Float64()*minSpacing*0.5
		if cursor+spacing > length {
			break
		}
		distances = append(distances, cursor)
		cursor += spacing
	}

	placements := make([]core.SlotPlacement, len(distances))
	for i, d := range distances {
		s := side
		if side == core.SideBoth {
			if rng.Intn(2) == 0 {
				s = core.SideLeft
			} else {
				s = core.SideRight
			}
		}
		placements[i] = core.SlotPlacement{Distance: d, Side: s}
	}

	return placements, report, nil
}
