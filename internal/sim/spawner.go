package sim

import (
	"log/slog"
	"sync/atomic"

	"github.com/carlaops/carpark/internal/catalog"
	"github.com/carlaops/carpark/pkg/core"
)

// ActorID identifies one spawned actor within the simulator.
type ActorID uint64

// DryRunSpawner stands in for the live simulator connection. It assigns
// sequential actor IDs and logs each placement instead of spawning.
type DryRunSpawner struct {
	logger *slog.Logger
	meshes catalog.MeshMapping
	nextID atomic.Uint64
}

// NewDryRunSpawner creates a spawner that only logs placements.
func NewDryRunSpawner(logger *slog.Logger) *DryRunSpawner {
	return &DryRunSpawner{logger: logger}
}

// SetMeshes installs the candidate-to-mesh table. Candidates with an entry
// are placed as static props rather than physics vehicles.
func (s *DryRunSpawner) SetMeshes(m catalog.MeshMapping) {
	s.meshes = m
}

// Spawn records the placement and returns a fresh actor ID. It never fails.
func (s *DryRunSpawner) Spawn(c core.Candidate, pose core.Pose) (ActorID, error) {
	id := ActorID(s.nextID.Add(1))
	attrs := []any{
		"actor", uint64(id),
		"candidate", c.ID,
		"x", pose.Location.X,
		"y", pose.Location.Y,
		"z", pose.Location.Z,
		"yaw", pose.Rotation.Yaw,
	}
	if mesh, ok := s.meshes.Lookup(c.ID); ok {
		attrs = append(attrs, "mesh", mesh)
	}
	s.logger.Info("spawned vehicle", attrs...)
	return id, nil
}
