package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultTerrainIsValid checks the shipped defaults pass validation.
func TestDefaultTerrainIsValid(t *testing.T) {
	require.NoError(t, DefaultTerrain().Validate())
}

// TestValidateRejects covers every field Validate refuses.
func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Terrain){
		"zero edge":          func(c *Terrain) { c.ChunkEdgeLength = 0 },
		"negative edge":      func(c *Terrain) { c.ChunkEdgeLength = -50 },
		"zero resolution":    func(c *Terrain) { c.Resolution = 0 },
		"coarse resolution":  func(c *Terrain) { c.Resolution = c.ChunkEdgeLength + 1 },
		"zero octaves":       func(c *Terrain) { c.Octaves = 0 },
		"zero window":        func(c *Terrain) { c.WindowSize = 0 },
		"flat amplitude":     func(c *Terrain) { c.HeightAmplitude = 0 },
		"zero texture tile":  func(c *Terrain) { c.TextureTileSize = 0 },
		"negative workers":   func(c *Terrain) { c.AsyncWorkers = -1 },
		"negative retention": func(c *Terrain) { c.RetentionRadius = -1 },
		"tight retention":    func(c *Terrain) { c.WindowSize = 9; c.RetentionRadius = 2 },
		"culling":            func(c *Terrain) { c.Culling = "occlusion" },
		"grid":               func(c *Terrain) { c.GridConvention = "round" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultTerrain()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

// TestValidateAcceptsRetentionAtWindowEdge accepts a retention radius of exactly half the window.
func TestValidateAcceptsRetentionAtWindowEdge(t *testing.T) {
	cfg := DefaultTerrain()
	cfg.WindowSize = 9
	cfg.RetentionRadius = 4
	assert.NoError(t, cfg.Validate())
}

// TestLoadTerrain overlays a YAML file on the defaults.
func TestLoadTerrain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.yaml")
	data := `
height_amplitude: 40
chunk_edge_length: 25
window_size: 7
culling: facing
noise:
  seed: 42
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadTerrain(path)
	require.NoError(t, err)
	assert.Equal(t, float32(40), cfg.HeightAmplitude)
	assert.Equal(t, 25, cfg.ChunkEdgeLength)
	assert.Equal(t, 7, cfg.WindowSize)
	assert.Equal(t, CullFacing, cfg.Culling)
	assert.Equal(t, int64(42), cfg.Noise.Seed)

	// Unset keys keep their defaults
	def := DefaultTerrain()
	assert.Equal(t, def.Octaves, cfg.Octaves)
	assert.Equal(t, def.Noise.Frequency, cfg.Noise.Frequency)
	assert.Equal(t, GridFloor, cfg.GridConvention)
}

// TestLoadTerrainErrors wraps read, parse and validation failures.
func TestLoadTerrainErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTerrain(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("octaves: [1, 2"), 0o644))
	_, err = LoadTerrain(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("octaves: 0\n"), 0o644))
	_, err = LoadTerrain(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// TestRenderSettingsClamp clamps window size and FPS limit into range.
func TestRenderSettingsClamp(t *testing.T) {
	prev := GetWindowSize()
	t.Cleanup(func() { SetWindowSize(prev) })

	SetWindowSize(0)
	assert.Equal(t, 1, GetWindowSize())
	SetWindowSize(100)
	assert.Equal(t, 31, GetWindowSize())
	SetWindowSize(7)
	assert.Equal(t, 7, GetWindowSize())

	prevFPS := GetFPSLimit()
	t.Cleanup(func() { SetFPSLimit(prevFPS) })
	SetFPSLimit(-5)
	assert.Equal(t, 0, GetFPSLimit())
}

// TestToggleWireframe flips the wireframe flag.
func TestToggleWireframe(t *testing.T) {
	start := GetWireframe()
	assert.Equal(t, !start, ToggleWireframe())
	assert.Equal(t, start, ToggleWireframe())
}

// TestShippedConfigLoads loads configs/terrain.yaml.
func TestShippedConfigLoads(t *testing.T) {
	cfg, err := LoadTerrain(filepath.Join("..", "..", "configs", "terrain.yaml"))
	require.NoError(t, err)
	assert.Equal(t, CullFrustum, cfg.Culling)
	assert.Equal(t, 4, cfg.AsyncWorkers)
	assert.Equal(t, 7, cfg.WindowSize)
}
