package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMesher(field HeightField) *Mesher {
	return &Mesher{
		Field:           field,
		HeightAmplitude: 10,
		WaterLevel:      WaterLevelFor(10, 0.4),
		TextureTileSize: 10,
	}
}

type vertex struct {
	x, y, z    float32
	nx, ny, nz float32
	u, v       float32
}

func vertexAt(m Mesh, i int) vertex {
	f := m.Vertices[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
	return vertex{f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[7]}
}

// TestWaterLevelFor measures the water line up from the lowest height.
func TestWaterLevelFor(t *testing.T) {
	assert.InDelta(t, -60.0, WaterLevelFor(100, 0.4), 1e-4)
	assert.InDelta(t, -6.0, WaterLevelFor(10, 0.4), 1e-5)
}

// TestMesherBufferLayout emits six vertices and six indices per cell.
func TestMesherBufferLayout(t *testing.T) {
	m := newTestMesher(ConstantHeight(0)).Generate(0, 0, 4, 1)

	cells := 4 * 4
	require.Len(t, m.Vertices, cells*VerticesPerCell*FloatsPerVertex)
	require.Len(t, m.Indices, cells*VerticesPerCell)
	for i, idx := range m.Indices {
		assert.Equal(t, uint32(i), idx, "cells must index their own contiguous vertices")
	}
}

// TestMesherResolutionStep steps cells by the resolution.
func TestMesherResolutionStep(t *testing.T) {
	m := newTestMesher(ConstantHeight(0)).Generate(0, 0, 8, 2)
	assert.Len(t, m.Indices, 4*4*VerticesPerCell)

	// Every cell spans exactly one resolution step.
	for c := 0; c < len(m.Indices)/VerticesPerCell; c++ {
		a := vertexAt(m, c*VerticesPerCell)
		cc := vertexAt(m, c*VerticesPerCell+2)
		assert.Equal(t, a.x+2, cc.x)
		assert.Equal(t, a.z+2, cc.z)
	}
}

// TestMesherCellCorners places corners and UVs on the world grid.
func TestMesherCellCorners(t *testing.T) {
	field := HeightFunc(func(x, z float64) float64 { return (x + 10*z) / 1000 })
	m := newTestMesher(field).Generate(100, -50, 2, 1)

	// First cell is anchored at the origin; triangles are (a,b,c) and (a,c,d).
	a, b, c := vertexAt(m, 0), vertexAt(m, 1), vertexAt(m, 2)
	a2, c2, d := vertexAt(m, 3), vertexAt(m, 4), vertexAt(m, 5)

	assert.Equal(t, []float32{100, -50}, []float32{a.x, a.z})
	assert.Equal(t, []float32{100, -49}, []float32{b.x, b.z})
	assert.Equal(t, []float32{101, -49}, []float32{c.x, c.z})
	assert.Equal(t, []float32{101, -50}, []float32{d.x, d.z})
	assert.Equal(t, a.y, a2.y)
	assert.Equal(t, c.y, c2.y)
	assert.InDelta(t, (100.0-500.0)/1000*10, a.y, 1e-5)

	// Texture coordinates repeat every tile
	assert.InDelta(t, 10.0, a.u, 1e-6)
	assert.InDelta(t, -5.0, a.v, 1e-6)
	assert.InDelta(t, 10.1, c.u, 1e-6)
	assert.InDelta(t, -4.9, c.v, 1e-6)
	assert.Equal(t, c.u, d.u)
	assert.Equal(t, a.v, d.v)
}

// TestMesherNormalsPointUp yields upward normals on rough terrain.
func TestMesherNormalsPointUp(t *testing.T) {
	n := NewFractalNoise(defaultNoiseParams())
	m := newTestMesher(n).Generate(-20, 35, 20, 1)
	for i := 0; i < vertexCount(m); i++ {
		v := vertexAt(m, i)
		require.Greater(t, v.ny, float32(0), "vertex %d normal points down", i)
		l := v.nx*v.nx + v.ny*v.ny + v.nz*v.nz
		require.InDelta(t, 1.0, l, 1e-4, "vertex %d normal not unit length", i)
	}
}

// TestMesherFlatNormals yields +Y normals on a flat field.
func TestMesherFlatNormals(t *testing.T) {
	m := newTestMesher(ConstantHeight(0.3)).Generate(0, 0, 3, 1)
	for i := 0; i < vertexCount(m); i++ {
		v := vertexAt(m, i)
		assert.Equal(t, float32(0), v.nx)
		assert.Equal(t, float32(1), v.ny)
		assert.Equal(t, float32(0), v.nz)
		assert.InDelta(t, 3.0, v.y, 1e-5)
	}
}

// TestMesherHasWater flags chunks with a corner below the water line.
func TestMesherHasWater(t *testing.T) {
	// waterLevel is -6 for amplitude 10
	assert.True(t, newTestMesher(ConstantHeight(-0.9)).Generate(0, 0, 4, 1).HasWater)
	assert.False(t, newTestMesher(ConstantHeight(0)).Generate(0, 0, 4, 1).HasWater)
	assert.False(t, newTestMesher(ConstantHeight(-0.5)).Generate(0, 0, 4, 1).HasWater, "low but above the water level")

	// A single low corner is enough, and only chunks sampling it get water.
	pit := HeightFunc(func(x, z float64) float64 {
		if x == 3 && z == 3 {
			return -1
		}
		return 0
	})
	assert.True(t, newTestMesher(pit).Generate(0, 0, 4, 1).HasWater)
	assert.True(t, newTestMesher(pit).Generate(3, 3, 4, 1).HasWater)
	assert.False(t, newTestMesher(pit).Generate(8, 8, 4, 1).HasWater)
}

// Two neighbouring chunks sample their shared edge at the same world
// positions, so the heights must match exactly.
func TestMesherSeamConsistency(t *testing.T) {
	mesher := newTestMesher(NewFractalNoise(defaultNoiseParams()))
	const edge = 16

	heights := func(m Mesh) map[[2]float32]float32 {
		out := make(map[[2]float32]float32)
		for i := 0; i < vertexCount(m); i++ {
			v := vertexAt(m, i)
			out[[2]float32{v.x, v.z}] = v.y
		}
		return out
	}

	left := heights(mesher.Generate(0, 0, edge, 1))
	right := heights(mesher.Generate(edge, 0, edge, 1))
	below := heights(mesher.Generate(0, edge, edge, 1))

	for z := 0; z <= edge; z++ {
		key := [2]float32{edge, float32(z)}
		require.Contains(t, left, key)
		require.Contains(t, right, key)
		assert.Equal(t, left[key], right[key], "seam mismatch at x=%d z=%d", edge, z)
	}
	for x := 0; x <= edge; x++ {
		key := [2]float32{float32(x), edge}
		require.Contains(t, below, key)
		assert.Equal(t, left[key], below[key], "seam mismatch at x=%d z=%d", x, edge)
	}
}

func vertexCount(m Mesh) int {
	return len(m.Vertices) / FloatsPerVertex
}

// BenchmarkMesherGenerate measures meshing one default chunk.
func BenchmarkMesherGenerate(b *testing.B) {
	mesher := newTestMesher(NewFractalNoise(defaultNoiseParams()))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = mesher.Generate(i*50, 0, 50, 1)
	}
}
