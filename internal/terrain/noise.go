package terrain

import (
	"github.com/ojrac/opensimplex-go"
)

// HeightField maps a world XZ position to a height, nominally in [-1, 1].
// Implementations must be pure so chunks can be meshed concurrently.
type HeightField interface {
	Height(x, z float64) float64
}

// NoiseParams describes a fractal stack of simplex layers.
type NoiseParams struct {
	Seed        int64
	Frequency   float64 // base layer frequency
	Amplitude   float64 // base layer amplitude
	Lacunarity  float64 // per-octave frequency multiplier
	Persistence float64 // per-octave amplitude multiplier
	Octaves     int
}

// FractalNoise sums Octaves layers of 2D OpenSimplex noise, normalized by the
// total amplitude so the result stays in [-1, 1].
type FractalNoise struct {
	params  NoiseParams
	simplex opensimplex.Noise
}

// NewFractalNoise creates a fractal height field. The simplex tables are read
// only after construction, so the value is safe for concurrent use.
func NewFractalNoise(p NoiseParams) *FractalNoise {
	return &FractalNoise{
		params:  p,
		simplex: opensimplex.New(p.Seed),
	}
}

func (n *FractalNoise) Height(x, z float64) float64 {
	frequency := n.params.Frequency
	amplitude := n.params.Amplitude
	sum := 0.0
	norm := 0.0
	for range n.params.Octaves {
		sum += amplitude * n.simplex.Eval2(x*frequency, z*frequency)
		norm += amplitude
		frequency *= n.params.Lacunarity
		amplitude *= n.params.Persistence
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// ConstantHeight is a flat field, handy for pinning mesher behaviour.
type ConstantHeight float64

func (c ConstantHeight) Height(_, _ float64) float64 {
	return float64(c)
}

// HeightFunc adapts a plain function to HeightField.
type HeightFunc func(x, z float64) float64

func (f HeightFunc) Height(x, z float64) float64 {
	return f(x, z)
}
