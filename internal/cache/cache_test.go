package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlaops/carpark/pkg/core"
)

type countingGround struct {
	calls int
	z     float64
	ok    bool
}

func (g *countingGround) QueryGround(core.Position3D) (core.GroundHit, bool) {
	g.calls++
	return core.GroundHit{Z: g.z}, g.ok
}

func TestGroundCache_SameCellQueriesOnce(t *testing.T) {
	inner := &countingGround{z: 3, ok: true}
	c := NewGroundCache(inner)

	first, ok := c.QueryGround(core.Position3D{X: 0.1, Y: 0.1})
	require.True(t, ok)
	second, ok := c.QueryGround(core.Position3D{X: 0.3, Y: 0.4})
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, c.Len())
}

func TestGroundCache_DifferentCellsQuerySeparately(t *testing.T) {
	inner := &countingGround{z: 3, ok: true}
	c := NewGroundCache(inner)

	c.QueryGround(core.Position3D{X: 0.1, Y: 0.1})
	c.QueryGround(core.Position3D{X: 10, Y: 10})

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2, c.Len())
}

func TestGroundCache_CachesMisses(t *testing.T) {
	inner := &countingGround{ok: false}
	c := NewGroundCache(inner)

	_, ok := c.QueryGround(core.Position3D{X: 1, Y: 1})
	assert.False(t, ok)
	_, ok = c.QueryGround(core.Position3D{X: 1, Y: 1})
	assert.False(t, ok)

	assert.Equal(t, 1, inner.calls)
}

func TestGroundCache_Reset(t *testing.T) {
	inner := &countingGround{z: 3, ok: true}
	c := NewGroundCache(inner)

	c.QueryGround(core.Position3D{X: 1, Y: 1})
	require.Equal(t, 1, c.Len())

	c.Reset()
	assert.Zero(t, c.Len())

	c.QueryGround(core.Position3D{X: 1, Y: 1})
	assert.Equal(t, 2, inner.calls)
}
