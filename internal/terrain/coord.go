package terrain

import (
	"fmt"

	"github.com/chewxy/math32"
)

// GridCoord identifies one chunk in the infinite XZ lattice.
type GridCoord struct {
	X, Z int
}

func (c GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// cellFunc maps a world position to its chunk cell for a given chunk edge.
type cellFunc func(x, z float32, edge int) GridCoord

// floorCell assigns cells with floor division, so x=-0.5 lands in cell -1.
func floorCell(x, z float32, edge int) GridCoord {
	e := float32(edge)
	return GridCoord{
		X: int(math32.Floor(x / e)),
		Z: int(math32.Floor(z / e)),
	}
}

// mirrorCell truncates toward zero and mirrors around the origin, so cells 0
// cover (-edge, edge) on each axis.
func mirrorCell(x, z float32, edge int) GridCoord {
	cx := int(math32.Abs(x)) / edge
	cz := int(math32.Abs(z)) / edge
	if x < 0 {
		cx = -cx
	}
	if z < 0 {
		cz = -cz
	}
	return GridCoord{X: cx, Z: cz}
}

// chebyshev is the ring distance between two cells.
func chebyshev(a, b GridCoord) int {
	return max(abs(a.X-b.X), abs(a.Z-b.Z))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
