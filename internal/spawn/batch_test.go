package spawn

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlaops/carpark/internal/layout"
	"github.com/carlaops/carpark/internal/sim"
	"github.com/carlaops/carpark/pkg/core"
)

// fakeSpawner records every spawn call and can be told to fail some of them.
type fakeSpawner struct {
	calls   []core.Candidate
	poses   []core.Pose
	failIdx map[int]bool
	next    sim.ActorID
}

func (f *fakeSpawner) Spawn(c core.Candidate, pose core.Pose) (sim.ActorID, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, c)
	f.poses = append(f.poses, pose)
	if f.failIdx[idx] {
		return 0, errors.New("actor rejected")
	}
	f.next++
	return f.next, nil
}

type flatGround struct{ z float64 }

func (g flatGround) QueryGround(core.Position3D) (core.GroundHit, bool) {
	return core.GroundHit{Z: g.z}, true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, actors ActorSpawner, seed int64) *Service {
	t.Helper()
	svc, err := NewService(Dependencies{
		Ground: flatGround{z: 0},
		Actors: actors,
		Logger: discardLogger(),
		Rand:   rand.New(rand.NewSource(seed)),
	}, layout.PoseOptions{SpawnHeight: 1.5, ParkingOffset: 3})
	require.NoError(t, err)
	return svc
}

func testLine(count int) core.ParkingLine {
	return core.ParkingLine{
		Segment: core.LineSegment{
			Start: core.Position3D{X: 0, Y: 0, Z: 0},
			End:   core.Position3D{X: 100, Y: 0, Z: 0},
		},
		Side:       core.SideLeft,
		Count:      count,
		MinSpacing: 10,
	}
}

func testPool() []core.Candidate {
	return []core.Candidate{{ID: "vehicle.audi.a2"}, {ID: "vehicle.tesla.model3"}, {ID: "vehicle.ford.mustang"}}
}

func TestProcessLines_SingleLine(t *testing.T) {
	actors := &fakeSpawner{}
	svc := newService(t, actors, 42)

	records, reports, err := svc.ProcessLines(context.Background(), []core.ParkingLine{testLine(5)}, testPool())
	require.NoError(t, err)
	require.Len(t, reports, 1)

	assert.Equal(t, 5, reports[0].Requested)
	assert.Equal(t, 5, reports[0].Effective)
	assert.Equal(t, len(records), reports[0].Produced)
	assert.Len(t, actors.calls, len(records))
	assert.False(t, reports[0].Skipped)

	for _, rec := range records {
		assert.Equal(t, 0, rec.LineIndex)
		assert.Equal(t, core.SideLeft, rec.Side)
		assert.InDelta(t, -3.0, rec.Location.Y, 1e-9)
		assert.InDelta(t, 1.5, rec.Location.Z, 1e-9)
	}
}

func TestProcessLines_SkipsLineWithEmptyPool(t *testing.T) {
	actors := &fakeSpawner{}
	svc := newService(t, actors, 42)

	line := testLine(3)
	line.Exclude = []string{"vehicle"}
	second := testLine(2)

	records, reports, err := svc.ProcessLines(context.Background(), []core.ParkingLine{line, second}, testPool())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.True(t, reports[0].Skipped)
	assert.Zero(t, reports[0].Produced)
	assert.False(t, reports[1].Skipped)
	assert.Positive(t, reports[1].Produced)

	for _, rec := range records {
		assert.Equal(t, 1, rec.LineIndex)
	}
}

func TestProcessLines_ExcludeFiltersPerLine(t *testing.T) {
	actors := &fakeSpawner{}
	svc := newService(t, actors, 7)

	line := testLine(10)
	line.Exclude = []string{"audi", "tesla"}

	_, reports, err := svc.ProcessLines(context.Background(), []core.ParkingLine{line}, testPool())
	require.NoError(t, err)
	require.False(t, reports[0].Skipped)

	for _, c := range actors.calls {
		assert.Equal(t, "vehicle.ford.mustang", c.ID)
	}
}

func TestProcessLines_SpawnFailureDropsSlotOnly(t *testing.T) {
	actors := &fakeSpawner{failIdx: map[int]bool{0: true}}
	svc := newService(t, actors, 42)

	records, reports, err := svc.ProcessLines(context.Background(), []core.ParkingLine{testLine(5)}, testPool())
	require.NoError(t, err)

	assert.Equal(t, len(actors.calls)-1, len(records))
	assert.Equal(t, reports[0].Effective-1, reports[0].Produced)
}

func TestProcessLines_ContractViolationAborts(t *testing.T) {
	svc := newService(t, &fakeSpawner{}, 42)

	line := testLine(5)
	line.MinSpacing = 0

	_, _, err := svc.ProcessLines(context.Background(), []core.ParkingLine{line}, testPool())
	assert.ErrorIs(t, err, layout.ErrInvalidSpacing)
}

func TestProcessLines_ClampsToCapacity(t *testing.T) {
	actors := &fakeSpawner{}
	svc := newService(t, actors, 42)

	// 20m line with 5m spacing caps at 4 slots
	line := core.ParkingLine{
		Segment: core.LineSegment{
			Start: core.Position3D{X: 0, Y: 0, Z: 0},
			End:   core.Position3D{X: 20, Y: 0, Z: 0},
		},
		Side:       core.SideRight,
		Count:      50,
		MinSpacing: 5,
	}

	_, reports, err := svc.ProcessLines(context.Background(), []core.ParkingLine{line}, testPool())
	require.NoError(t, err)
	assert.Equal(t, 50, reports[0].Requested)
	assert.Equal(t, 4, reports[0].Effective)
	assert.LessOrEqual(t, reports[0].Produced, 4)
}

func TestProcessLines_SeededRunsMatch(t *testing.T) {
	lines := []core.ParkingLine{testLine(8), testLine(4)}

	first := &fakeSpawner{}
	recordsA, _, err := newService(t, first, 1234).ProcessLines(context.Background(), lines, testPool())
	require.NoError(t, err)

	second := &fakeSpawner{}
	recordsB, _, err := newService(t, second, 1234).ProcessLines(context.Background(), lines, testPool())
	require.NoError(t, err)

	assert.Equal(t, recordsA, recordsB)
}

func TestProcessLines_NoLines(t *testing.T) {
	svc := newService(t, &fakeSpawner{}, 42)

	records, reports, err := svc.ProcessLines(context.Background(), nil, testPool())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, reports)
}
