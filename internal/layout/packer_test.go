package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlaops/carpark/pkg/core"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestPack_ContractViolations(t *testing.T) {
	tests := []struct {
		name       string
		side       core.Side
		count      int
		minSpacing float64
		wantErr    error
	}{
		{"invalid side", core.Side("middle"), 5, 2.0, ErrInvalidSide},
		{"empty side", core.Side(""), 5, 2.0, ErrInvalidSide},
		{"zero spacing", core.SideLeft, 5, 0, ErrInvalidSpacing},
		{"negative spacing", core.SideLeft, 5, -1.5, ErrInvalidSpacing},
		{"negative count", core.SideLeft, -1, 2.0, ErrNegativeCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Pack(100, tt.side, tt.count, tt.minSpacing, newTestRand())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPack_CapacityBound(t *testing.T) {
	// capacity = floor(100/10) = 10, request is not clamped
	placements, report, err := Pack(100, core.SideLeft, 10, 10, newTestRand())
	require.NoError(t, err)

	assert.Equal(t, 10, report.Capacity)
	assert.Equal(t, 10, report.Effective)
	assert.False(t, report.Clamped)
	assert.LessOrEqual(t, len(placements), 10)

	for _, p := range placements {
		assert.GreaterOrEqual(t, p.Distance, 0.0)
		assert.LessOrEqual(t, p.Distance, 100.0)
		assert.Equal(t, core.SideLeft, p.Side)
	}
}

func TestPack_ClampsOverflowingRequest(t *testing.T) {
	placements, report, err := Pack(20, core.SideRight, 50, 5, newTestRand())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Capacity)
	assert.Equal(t, 4, report.Effective)
	assert.True(t, report.Clamped)
	assert.LessOrEqual(t, len(placements), 4)
}

func TestPack_DistancesStrictlyIncreasing(t *testing.T) {
	placements, _, err := Pack(200, core.SideBoth, 30, 4, newTestRand())
	require.NoError(t, err)
	require.NotEmpty(t, placements)

	for i := 1; i < len(placements); i++ {
		assert.Greater(t, placements[i].Distance, placements[i-1].Distance,
			"placement %d not after %d", i, i-1)
	}
}

func TestPack_SideAssignment(t *testing.T) {
	tests := []struct {
		name string
		side core.Side
	}{
		{"left only", core.SideLeft},
		{"right only", core.SideRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placements, _, err := Pack(100, tt.side, 10, 5, newTestRand())
			require.NoError(t, err)
			for _, p := range placements {
				assert.Equal(t, tt.side, p.Side)
			}
		})
	}
}

func TestPack_BothResolvesToLeftOrRight(t *testing.T) {
	placements, _, err := Pack(300, core.SideBoth, 40, 4, newTestRand())
	require.NoError(t, err)
	require.NotEmpty(t, placements)

	seen := map[core.Side]int{}
	for _, p := range placements {
		assert.Contains(t, []core.Side{core.SideLeft, core.SideRight}, p.Side)
		seen[p.Side]++
	}
	// long line with many slots, both sides should appear
	assert.Greater(t, seen[core.SideLeft], 0)
	assert.Greater(t, seen[core.SideRight], 0)
}

func TestPack_ZeroCount(t *testing.T) {
	placements, report, err := Pack(100, core.SideLeft, 0, 5, newTestRand())
	require.NoError(t, err)
	assert.Empty(t, placements)
	assert.Equal(t, 0, report.Effective)
}

func TestPack_ZeroLengthLine(t *testing.T) {
	placements, report, err := Pack(0, core.SideLeft, 5, 2, newTestRand())
	require.NoError(t, err)
	assert.Empty(t, placements)
	assert.Equal(t, 0, report.Capacity)
	assert.True(t, report.Clamped)
}

func TestPack_SameSeedSameOutput(t *testing.T) {
	first, _, err := Pack(150, core.SideBoth, 25, 4, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	second, _, err := Pack(150, core.SideBoth, 25, 4, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPack_SpacingNeverBelowMinimum(t *testing.T) {
	placements, _, err := Pack(500, core.SideLeft, 100, 5, newTestRand())
	require.NoError(t, err)
	require.NotEmpty(t, placements)

	for i := 1; i < len(placements); i++ {
		gap := placements[i].Distance - placements[i-1].Distance
		assert.GreaterOrEqual(t, gap, 5.0)
	}
}
