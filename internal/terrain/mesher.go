package terrain

import (
	"mini-terrain/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FloatsPerVertex is position(3) + normal(3) + texcoord(2)
	FloatsPerVertex = 8
	// VerticesPerCell is two independent triangles
	VerticesPerCell = 6
)

// Mesh is the CPU-side output of one chunk generation.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
	HasWater bool
}

// Mesher triangulates square chunk footprints from a height field.
type Mesher struct {
	Field           HeightField
	HeightAmplitude float32
	WaterLevel      float32
	TextureTileSize float32
}

// WaterLevelFor returns the absolute water height for a terrain amplitude:
// fraction of the amplitude measured up from the lowest possible height.
func WaterLevelFor(amplitude, fraction float32) float32 {
	return amplitude*fraction - amplitude
}

// sample returns the scaled height at an integer world position.
func (m *Mesher) sample(x, z int) float32 {
	return float32(m.Field.Height(float64(x), float64(z))) * m.HeightAmplitude
}

// Generate builds the triangle list for the footprint
// [originX, originX+edge) x [originZ, originZ+edge) stepped by resolution.
// Each cell contributes 6 contiguous vertices and 6 indices.
func (m *Mesher) Generate(originX, originZ, edge, resolution int) Mesh {
	defer profiling.Track("terrain.Mesher.Generate")()

	cellsPerSide := (edge + resolution - 1) / resolution
	cells := cellsPerSide * cellsPerSide
	mesh := Mesh{
		Vertices: make([]float32, 0, cells*VerticesPerCell*FloatsPerVertex),
		Indices:  make([]uint32, 0, cells*VerticesPerCell),
	}

	var base uint32
	for x := originX; x < originX+edge; x += resolution {
		for z := originZ; z < originZ+edge; z += resolution {
			x2, z2 := x+resolution, z+resolution

			a := mgl32.Vec3{float32(x), m.sample(x, z), float32(z)}
			b := mgl32.Vec3{float32(x), m.sample(x, z2), float32(z2)}
			c := mgl32.Vec3{float32(x2), m.sample(x2, z2), float32(z2)}
			d := mgl32.Vec3{float32(x2), m.sample(x2, z), float32(z)}

			// With corners ordered a(x,z) b(x,z+r) c(x+r,z+r) d(x+r,z)
			// both cross products have y = r*r, so neither needs flipping.
			n1 := triangleNormal(a, b, c)
			n2 := triangleNormal(a, c, d)

			u1, v1 := float32(x)/m.TextureTileSize, float32(z)/m.TextureTileSize
			u2, v2 := float32(x2)/m.TextureTileSize, float32(z2)/m.TextureTileSize

			mesh.Vertices = appendVertex(mesh.Vertices, a, n1, u1, v1)
			mesh.Vertices = appendVertex(mesh.Vertices, b, n1, u1, v2)
			mesh.Vertices = appendVertex(mesh.Vertices, c, n1, u2, v2)

			mesh.Vertices = appendVertex(mesh.Vertices, a, n2, u1, v1)
			mesh.Vertices = appendVertex(mesh.Vertices, c, n2, u2, v2)
			mesh.Vertices = appendVertex(mesh.Vertices, d, n2, u2, v1)

			for i := range uint32(VerticesPerCell) {
				mesh.Indices = append(mesh.Indices, base+i)
			}
			base += VerticesPerCell

			if a.Y() < m.WaterLevel || b.Y() < m.WaterLevel || c.Y() < m.WaterLevel || d.Y() < m.WaterLevel {
				mesh.HasWater = true
			}
		}
	}
	return mesh
}

func triangleNormal(v1, v2, v3 mgl32.Vec3) mgl32.Vec3 {
	return v2.Sub(v1).Cross(v3.Sub(v1)).Normalize()
}

func appendVertex(dst []float32, p, n mgl32.Vec3, u, v float32) []float32 {
	return append(dst, p[0], p[1], p[2], n[0], n[1], n[2], u, v)
}
