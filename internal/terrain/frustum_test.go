package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// TestFrustumOrthoBox classifies boxes against an orthographic frustum.
func TestFrustumOrthoBox(t *testing.T) {
	f := NewFrustum(mgl32.Ortho(-1, 1, -1, 1, -1, 1))

	assert.True(t, f.IntersectsAABB(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}))
	assert.True(t, f.IntersectsAABB(mgl32.Vec3{0.9, 0, 0}, mgl32.Vec3{3, 1, 1}), "straddling box")
	assert.False(t, f.IntersectsAABB(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{3, 1, 1}))
	assert.False(t, f.IntersectsAABB(mgl32.Vec3{0, -5, 0}, mgl32.Vec3{1, -2, 1}))
}

// TestNormalizePlane scales the normal to unit length.
func TestNormalizePlane(t *testing.T) {
	p := normalizePlane(plane{3, 0, 4, 10})
	assert.InDelta(t, 0.6, p.a, 1e-6)
	assert.InDelta(t, 0.8, p.c, 1e-6)
	assert.InDelta(t, 2.0, p.d, 1e-6)

	zero := normalizePlane(plane{0, 0, 0, 1})
	assert.Equal(t, plane{0, 0, 0, 1}, zero)
}

// TestChunkBounds spans the footprint and the full amplitude.
func TestChunkBounds(t *testing.T) {
	ch := newChunk(GridCoord{X: -1, Z: 2}, 8)
	lo, hi := chunkBounds(ch, 8, 30)
	assert.Equal(t, mgl32.Vec3{-8, -30, 16}, lo)
	assert.Equal(t, mgl32.Vec3{0, 30, 24}, hi)
}
