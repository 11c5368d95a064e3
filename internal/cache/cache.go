// Package cache memoises ground-height queries. Ray casts into the
// simulator are the most expensive call in the pipeline, and neighbouring
// slots frequently land in the same terrain cell.
package cache

import (
	"sync"

	"github.com/carlaops/carpark/internal/layout"
	"github.com/carlaops/carpark/pkg/core"
)

// cellSize quantises query positions; results within the same half-metre
// cell share one ray cast. Misses are cached too.
const cellSize = 0.5

type cellKey struct {
	X, Y int64
}

type cellResult struct {
	hit core.GroundHit
	ok  bool
}

// GroundCache wraps a GroundQuery with a quantised result cache.
type GroundCache struct {
	m       sync.Mutex
	inner   layout.GroundQuery
	results map[cellKey]cellResult
}

// NewGroundCache creates a cache in front of the given ground query.
func NewGroundCache(inner layout.GroundQuery) *GroundCache {
	return &GroundCache{
		inner:   inner,
		results: make(map[cellKey]cellResult),
	}
}

// QueryGround resolves the height for p's cell, consulting the inner query
// at most once per cell.
func (c *GroundCache) QueryGround(p core.Position3D) (core.GroundHit, bool) {
	key := cellKey{
		X: int64(p.X / cellSize),
		Y: int64(p.Y / cellSize),
	}

	c.m.Lock()
	defer c.m.Unlock()
	if r, ok := c.results[key]; ok {
		return r.hit, r.ok
	}

	hit, ok := c.inner.QueryGround(p)
	c.results[key] = cellResult{hit: hit, ok: ok}
	return hit, ok
}

// Reset discards all cached results.
func (c *GroundCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.results = make(map[cellKey]cellResult)
}

// Len returns the number of cached cells.
func (c *GroundCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.results)
}
