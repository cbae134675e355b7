package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid terrain config")

// Culling modes for the streaming draw list.
const (
	CullNone    = "none"
	CullFacing  = "facing"
	CullFrustum = "frustum"
)

// Grid conventions for mapping world positions to chunk cells.
const (
	GridFloor  = "floor"
	GridMirror = "mirror"
)

// Terrain holds the construction-time parameters of the terrain system.
type Terrain struct {
	HeightAmplitude float32 `yaml:"height_amplitude"`
	Resolution      int     `yaml:"resolution"`
	Lacunarity      float64 `yaml:"lacunarity"`
	Persistence     float64 `yaml:"persistence"`
	Octaves         int     `yaml:"octaves"`
	WindowSize      int     `yaml:"window_size"`
	ChunkEdgeLength int     `yaml:"chunk_edge_length"`

	Noise Noise `yaml:"noise"`

	WaterLevelFraction  float32 `yaml:"water_level_fraction"`
	TextureTileSize     float32 `yaml:"texture_tile_size"`
	VisibilityThreshold float32 `yaml:"visibility_threshold"`

	Culling         string `yaml:"culling"`
	GridConvention  string `yaml:"grid_convention"`
	RetentionRadius int    `yaml:"retention_radius"`
	AsyncWorkers    int    `yaml:"async_workers"`
}

// Noise holds the base layer of the fractal height field.
type Noise struct {
	Seed      int64   `yaml:"seed"`
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
}

// DefaultTerrain returns the parameters the demo ships with.
func DefaultTerrain() Terrain {
	return Terrain{
		HeightAmplitude: 100,
		Resolution:      1,
		Lacunarity:      2,
		Persistence:     0.5,
		Octaves:         6,
		WindowSize:      5,
		ChunkEdgeLength: 50,
		Noise: Noise{
			Frequency: 0.1 / 50,
			Amplitude: 0.5,
		},
		WaterLevelFraction: 0.4,
		TextureTileSize:    10,
		Culling:            CullNone,
		GridConvention:     GridFloor,
	}
}

// LoadTerrain reads a YAML file on top of DefaultTerrain and validates it.
func LoadTerrain(path string) (Terrain, error) {
	t := DefaultTerrain()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate rejects parameters that would yield degenerate meshes or loops.
func (t Terrain) Validate() error {
	switch {
	case t.ChunkEdgeLength <= 0:
		return fmt.Errorf("chunk_edge_length must be positive, got %d: %w", t.ChunkEdgeLength, ErrInvalidConfig)
	case t.Resolution <= 0:
		return fmt.Errorf("resolution must be positive, got %d: %w", t.Resolution, ErrInvalidConfig)
	case t.Resolution > t.ChunkEdgeLength:
		return fmt.Errorf("resolution %d exceeds chunk_edge_length %d: %w", t.Resolution, t.ChunkEdgeLength, ErrInvalidConfig)
	case t.Octaves <= 0:
		return fmt.Errorf("octaves must be positive, got %d: %w", t.Octaves, ErrInvalidConfig)
	case t.WindowSize <= 0:
		return fmt.Errorf("window_size must be positive, got %d: %w", t.WindowSize, ErrInvalidConfig)
	case t.HeightAmplitude <= 0:
		return fmt.Errorf("height_amplitude must be positive, got %g: %w", t.HeightAmplitude, ErrInvalidConfig)
	case t.TextureTileSize <= 0:
		return fmt.Errorf("texture_tile_size must be positive, got %g: %w", t.TextureTileSize, ErrInvalidConfig)
	case t.AsyncWorkers < 0:
		return fmt.Errorf("async_workers must not be negative, got %d: %w", t.AsyncWorkers, ErrInvalidConfig)
	case t.RetentionRadius < 0:
		return fmt.Errorf("retention_radius must not be negative, got %d: %w", t.RetentionRadius, ErrInvalidConfig)
	case t.RetentionRadius > 0 && t.RetentionRadius < t.WindowSize/2:
		return fmt.Errorf("retention_radius %d would evict cells inside a window of %d: %w", t.RetentionRadius, t.WindowSize, ErrInvalidConfig)
	}

	switch t.Culling {
	case CullNone, CullFacing, CullFrustum:
	default:
		return fmt.Errorf("unknown culling mode %q: %w", t.Culling, ErrInvalidConfig)
	}
	switch t.GridConvention {
	case GridFloor, GridMirror:
	default:
		return fmt.Errorf("unknown grid convention %q: %w", t.GridConvention, ErrInvalidConfig)
	}
	return nil
}
