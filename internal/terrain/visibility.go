package terrain

import "github.com/go-gl/mathgl/mgl32"

// facingVisible is the loose "in front of or beside the viewer" test: the
// direction from the viewer to the chunk origin, flattened onto XZ, dotted
// with the facing vector.
func facingVisible(ch *Chunk, viewerX, viewerZ float32, facing mgl32.Vec3, threshold float32) bool {
	dir := mgl32.Vec3{float32(ch.PosX) - viewerX, 0, float32(ch.PosZ) - viewerZ}
	return facing.Dot(dir) > threshold
}

// chunkBounds returns the world AABB a chunk can occupy given the terrain
// amplitude.
func chunkBounds(ch *Chunk, edge int, amplitude float32) (mgl32.Vec3, mgl32.Vec3) {
	min := mgl32.Vec3{float32(ch.PosX), -amplitude, float32(ch.PosZ)}
	max := mgl32.Vec3{float32(ch.PosX + edge), amplitude, float32(ch.PosZ + edge)}
	return min, max
}
