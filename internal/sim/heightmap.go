// Package sim provides stand-in implementations of the simulator
// collaborators: terrain height queries and actor spawning.
package sim

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/carlaops/carpark/pkg/core"
)

// raySpan is how far above and below the queried point the vertical ray
// nominally extends. Hits outside the span are treated as misses.
const raySpan = 1000.0

// Terrain is a regular-grid heightmap implementing ground queries by
// nearest-cell lookup. Cells are row-major, north row first.
type Terrain struct {
	OriginX  float64     `json:"originX"`
	OriginY  float64     `json:"originY"`
	CellSize float64     `json:"cellSize"`
	Heights  [][]float64 `json:"heights"`
}

// LoadTerrain reads a heightmap JSON file.
func LoadTerrain(path string) (*Terrain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read terrain file: %w", err)
	}
	var t Terrain
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse terrain file: %w", err)
	}
	if t.CellSize <= 0 {
		return nil, fmt.Errorf("terrain cell size must be positive, got %v", t.CellSize)
	}
	if len(t.Heights) == 0 {
		return nil, fmt.Errorf("terrain has no height rows")
	}
	return &t, nil
}

// QueryGround resolves the terrain height at p. Positions outside the grid,
// or whose cell height is outside the vertical ray span around p.Z, miss.
func (t *Terrain) QueryGround(p core.Position3D) (core.GroundHit, bool) {
	col := int(math.Floor((p.X - t.OriginX) / t.CellSize))
	row := int(math.Floor((p.Y - t.OriginY) / t.CellSize))
	if row < 0 || row >= len(t.Heights) {
		return core.GroundHit{}, false
	}
	if col < 0 || col >= len(t.Heights[row]) {
		return core.GroundHit{}, false
	}
	z := t.Heights[row][col]
	if z < p.Z-raySpan || z > p.Z+raySpan {
		return core.GroundHit{}, false
	}
	return core.GroundHit{Z: z}, true
}

// FlatGround is a trivial ground query returning a constant elevation.
type FlatGround struct {
	Z float64
}

func (g FlatGround) QueryGround(core.Position3D) (core.GroundHit, bool) {
	return core.GroundHit{Z: g.Z}, true
}

// NoGround always misses. Used where terrain data is unavailable; poses then
// keep their interpolated height.
type NoGround struct{}

func (NoGround) QueryGround(core.Position3D) (core.GroundHit, bool) {
	return core.GroundHit{}, false
}
