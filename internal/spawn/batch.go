// Package spawn orchestrates parked-vehicle placement across all configured
// parking lines and hands the resulting poses to the simulator boundary.
package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"go.opentelemetry.io/otel/metric"

	"github.com/carlaops/carpark/internal/catalog"
	"github.com/carlaops/carpark/internal/layout"
	"github.com/carlaops/carpark/internal/sim"
	"github.com/carlaops/carpark/pkg/core"
)

// ActorSpawner is the simulation boundary. A failed spawn drops that slot
// only; it never aborts the batch.
type ActorSpawner interface {
	Spawn(c core.Candidate, pose core.Pose) (sim.ActorID, error)
}

// Dependencies holds all collaborators of the batch service.
type Dependencies struct {
	Ground layout.GroundQuery
	Actors ActorSpawner
	Logger *slog.Logger
	Rand   *rand.Rand
}

// Service processes parking lines sequentially and accumulates the batch
// result. It holds no mutable state besides the running output list.
type Service struct {
	deps Dependencies
	opts layout.PoseOptions

	// OTEL metrics
	slotsProduced metric.Int64Counter
	linesSkipped  metric.Int64Counter
	spawnFailures metric.Int64Counter
}

// NewService creates a batch service with the given collaborators and
// placement options. Uses the global OTel meter for metrics (no-op if not
// configured).
func NewService(deps Dependencies, opts layout.PoseOptions) (*Service, error) {
	s := &Service{deps: deps, opts: opts}

	m := meter()
	var err error

	s.slotsProduced, err = m.Int64Counter(
		"carpark.slots.produced",
		metric.WithDescription("Total parking slots produced and spawned"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating slots counter: %w", err)
	}

	s.linesSkipped, err = m.Int64Counter(
		"carpark.lines.skipped",
		metric.WithDescription("Parking lines skipped for lack of candidates"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}

	s.spawnFailures, err = m.Int64Counter(
		"carpark.spawn.failures",
		metric.WithDescription("Individual spawn calls that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	return s, nil
}

// ProcessLines generates and spawns placements for every line in order.
// Lines are independent: a skipped or partially filled line never affects
// the ones after it. Contract violations in a line's parameters abort the
// batch, matching the fail-fast policy for caller mistakes.
func (s *Service) ProcessLines(ctx context.Context, lines []core.ParkingLine, pool []core.Candidate) ([]core.SpawnRecord, []core.LineReport, error) {
	records := make([]core.SpawnRecord, 0)
	reports := make([]core.LineReport, 0, len(lines))

	for i, line := range lines {
		report := core.LineReport{
			LineIndex: i,
			Requested: line.Count,
			Exclude:   line.Exclude,
		}

		linePool := catalog.ExcludeKeywords(pool, line.Exclude)
		if len(linePool) == 0 {
			s.deps.Logger.Warn("no candidates left after filtering, skipping line",
				"line", i, "exclude", line.Exclude)
			report.Skipped = true
			reports = append(reports, report)
			s.linesSkipped.Add(ctx, 1)
			continue
		}

		produced, err := s.processLine(ctx, i, line, linePool, &report)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i, err)
		}
		records = append(records, produced...)
		reports = append(reports, report)
	}

	return records, reports, nil
}

func (s *Service) processLine(ctx context.Context, index int, line core.ParkingLine, pool []core.Candidate, report *core.LineReport) ([]core.SpawnRecord, error) {
	length := layout.SegmentLength(line.Segment)
	dir, perp := layout.ResolveAxes(line.Segment)

	placements, packReport, err := layout.Pack(length, line.Side, line.Count, line.MinSpacing, s.deps.Rand)
	if err != nil {
		return nil, err
	}
	report.Effective = packReport.Effective
	if packReport.Clamped {
		s.deps.Logger.Warn("requested count exceeds line capacity",
			"line", index,
			"requested", line.Count,
			"capacity", packReport.Capacity)
	}

	records := make([]core.SpawnRecord, 0, len(placements))
	for _, placement := range placements {
		pose := layout.SynthesizePose(line.Segment, dir, perp, placement, s.opts, s.deps.Ground, s.deps.Rand)
		candidate := catalog.Pick(pool, s.deps.Rand)

		if _, err := s.deps.Actors.Spawn(candidate, pose); err != nil {
			s.deps.Logger.Error("failed to spawn vehicle, dropping slot",
				"line", index, "candidate", candidate.ID, "error", err)
			s.spawnFailures.Add(ctx, 1)
			continue
		}

		records = append(records, core.SpawnRecord{
			LineIndex: index,
			Candidate: candidate.ID,
			Side:      placement.Side,
			Location:  pose.Location,
			Rotation:  pose.Rotation,
		})
	}

	report.Produced = len(records)
	s.slotsProduced.Add(ctx, int64(len(records)))

	s.deps.Logger.Info("processed parking line",
		"line", index,
		"requested", report.Requested,
		"effective", report.Effective,
		"produced", report.Produced)

	return records, nil
}
