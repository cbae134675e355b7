package terrain

import "fmt"

// Chunk is one square tile of terrain mesh. Its buffers are written once,
// when the chunk is published to the store, and never change afterwards.
type Chunk struct {
	ID    int
	Coord GridCoord

	// World-space origin of the footprint
	PosX, PosZ int
	// Samples per edge: chunk edge + 1 so neighbours share their seam
	Size int

	Vertices []float32
	Indices  []uint32

	// Draw-loop bounds handed to the renderer
	NumStrips        int
	NumVertsPerStrip int

	Generated bool
	Visible   bool
	HasWater  bool

	waterLevel float32
}

// newChunk lays out an empty chunk for a cell.
func newChunk(c GridCoord, edge int) *Chunk {
	size := edge + 1
	return &Chunk{
		Coord:            c,
		PosX:             c.X * edge,
		PosZ:             c.Z * edge,
		Size:             size,
		NumStrips:        size * 3,
		NumVertsPerStrip: size * 3,
	}
}

// applyMesh installs generated buffers and marks the chunk generated.
func (c *Chunk) applyMesh(m Mesh, waterLevel float32) {
	c.Vertices = m.Vertices
	c.Indices = m.Indices
	c.HasWater = m.HasWater
	c.waterLevel = waterLevel
	c.Generated = true
}

// VertexCount returns the number of vertices in the buffer.
func (c *Chunk) VertexCount() int {
	return len(c.Vertices) / FloatsPerVertex
}

// WaterLevel returns the absolute height of the water surface for this chunk.
func (c *Chunk) WaterLevel() float32 {
	return c.waterLevel
}

// WaterPlane returns two triangles (xyz per vertex) covering the chunk
// footprint at the water level.
func (c *Chunk) WaterPlane() []float32 {
	x1, z1 := float32(c.PosX), float32(c.PosZ)
	x2, z2 := float32(c.PosX+c.Size), float32(c.PosZ+c.Size)
	y := c.waterLevel
	return []float32{
		x1, y, z1,
		x1, y, z2,
		x2, y, z2,

		x1, y, z1,
		x2, y, z2,
		x2, y, z1,
	}
}

// String dumps identity, origin and flags on one line.
func (c *Chunk) String() string {
	return fmt.Sprintf("chunk %d cell %v origin X %d Z %d generated=%t visible=%t water=%t",
		c.ID, c.Coord, c.PosX, c.PosZ, c.Generated, c.Visible, c.HasWater)
}
