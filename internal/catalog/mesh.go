package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// MeshMapping maps candidate IDs to static mesh asset paths, used when
// placements are materialised as static props instead of physics vehicles.
type MeshMapping map[string]string

// LoadMeshMapping reads a candidate-to-mesh table from a JSON file.
func LoadMeshMapping(path string) (MeshMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mesh mapping: %w", err)
	}
	var m MeshMapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mesh mapping: %w", err)
	}
	return m, nil
}

// Lookup returns the mesh path for a candidate. A missing entry is not an
// error; callers fall back to the physics-vehicle spawn path.
func (m MeshMapping) Lookup(candidateID string) (string, bool) {
	path, ok := m[candidateID]
	return path, ok
}
