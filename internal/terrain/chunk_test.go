package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewChunkLayout derives origin, size and strip counts from the cell.
func TestNewChunkLayout(t *testing.T) {
	ch := newChunk(GridCoord{X: -2, Z: 3}, 50)
	assert.Equal(t, -100, ch.PosX)
	assert.Equal(t, 150, ch.PosZ)
	assert.Equal(t, 51, ch.Size)
	assert.Equal(t, 153, ch.NumStrips)
	assert.Equal(t, 153, ch.NumVertsPerStrip)
	assert.False(t, ch.Generated)
}

// TestChunkApplyMesh installs buffers and flags.
func TestChunkApplyMesh(t *testing.T) {
	ch := newChunk(GridCoord{}, 4)
	mesh := newTestMesher(ConstantHeight(-1)).Generate(0, 0, 4, 1)
	ch.applyMesh(mesh, -6)

	assert.True(t, ch.Generated)
	assert.True(t, ch.HasWater)
	assert.Equal(t, float32(-6), ch.WaterLevel())
	assert.Equal(t, 16*VerticesPerCell, ch.VertexCount())
}

// TestChunkWaterPlane spans the chunk footprint at the water level.
func TestChunkWaterPlane(t *testing.T) {
	ch := newChunk(GridCoord{X: 1, Z: -1}, 10)
	ch.applyMesh(Mesh{}, -4)

	plane := ch.WaterPlane()
	require.Len(t, plane, 6*3)
	for i := 0; i < len(plane); i += 3 {
		assert.Equal(t, float32(-4), plane[i+1], "vertex %d off the water level", i/3)
		assert.GreaterOrEqual(t, plane[i], float32(10))
		assert.LessOrEqual(t, plane[i], float32(21))
		assert.GreaterOrEqual(t, plane[i+2], float32(-10))
		assert.LessOrEqual(t, plane[i+2], float32(1))
	}
	// Opposite corners of the quad
	assert.Equal(t, []float32{10, -4, -10}, plane[0:3])
	assert.Equal(t, []float32{21, -4, 1}, plane[6:9])
}

// TestChunkString dumps identity and flags on one line.
func TestChunkString(t *testing.T) {
	ch := newChunk(GridCoord{X: 1, Z: 2}, 50)
	ch.ID = 7
	ch.Visible = true
	s := ch.String()
	assert.Contains(t, s, "chunk 7")
	assert.Contains(t, s, "origin X 50 Z 100")
	assert.Contains(t, s, "generated=false visible=true water=false")
}
