package spawn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlaops/carpark/pkg/core"
)

func TestReplay_ReproducesRecordedPoses(t *testing.T) {
	live := &fakeSpawner{}
	svc := newService(t, live, 42)

	records, _, err := svc.ProcessLines(context.Background(), []core.ParkingLine{testLine(6)}, testPool())
	require.NoError(t, err)
	require.NotEmpty(t, records)

	replayed := &fakeSpawner{}
	reports := Replay(records, replayed, discardLogger())

	require.Len(t, replayed.poses, len(records))
	for i, rec := range records {
		assert.Equal(t, rec.Location, replayed.poses[i].Location)
		assert.Equal(t, rec.Rotation, replayed.poses[i].Rotation)
		assert.Equal(t, rec.Candidate, replayed.calls[i].ID)
	}

	require.Len(t, reports, 1)
	assert.Equal(t, len(records), reports[0].Produced)
}

func TestReplay_GroupsReportsByLineInFirstSeenOrder(t *testing.T) {
	records := []core.SpawnRecord{
		{LineIndex: 2, Candidate: "a"},
		{LineIndex: 0, Candidate: "b"},
		{LineIndex: 2, Candidate: "c"},
		{LineIndex: 0, Candidate: "d"},
	}

	reports := Replay(records, &fakeSpawner{}, discardLogger())

	require.Len(t, reports, 2)
	assert.Equal(t, 2, reports[0].LineIndex)
	assert.Equal(t, 2, reports[0].Produced)
	assert.Equal(t, 0, reports[1].LineIndex)
	assert.Equal(t, 2, reports[1].Produced)
}

func TestReplay_SpawnFailureSkipsSlot(t *testing.T) {
	records := []core.SpawnRecord{
		{LineIndex: 0, Candidate: "a"},
		{LineIndex: 0, Candidate: "b"},
		{LineIndex: 0, Candidate: "c"},
	}

	actors := &fakeSpawner{failIdx: map[int]bool{1: true}}
	reports := Replay(records, actors, discardLogger())

	require.Len(t, reports, 1)
	assert.Equal(t, 3, reports[0].Requested)
	assert.Equal(t, 2, reports[0].Produced)
}

func TestReplay_Empty(t *testing.T) {
	reports := Replay(nil, &fakeSpawner{}, discardLogger())
	assert.Empty(t, reports)
}
