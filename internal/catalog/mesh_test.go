package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMeshMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshes.json")
	content := `{"vehicle.audi.a2": "/Game/Carla/Static/Car/SM_AudiA2.SM_AudiA2"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadMeshMapping(path)
	require.NoError(t, err)

	mesh, ok := m.Lookup("vehicle.audi.a2")
	assert.True(t, ok)
	assert.Equal(t, "/Game/Carla/Static/Car/SM_AudiA2.SM_AudiA2", mesh)

	_, ok = m.Lookup("vehicle.tesla.model3")
	assert.False(t, ok)
}

func TestLoadMeshMapping_MissingFile(t *testing.T) {
	_, err := LoadMeshMapping(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadMeshMapping_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := LoadMeshMapping(path)
	assert.Error(t, err)
}
