package renderer

import (
	"mini-terrain/internal/camera"
	"mini-terrain/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameContext provides shared per-frame state for all renderables
type FrameContext struct {
	Camera  *camera.Camera
	Terrain *terrain.Terrain
	// Cells returned by the last VisibleChunks call, in draw order
	Draw []terrain.GridCoord
	DT   float64
	View mgl32.Mat4
	Proj mgl32.Mat4

	Wireframe bool
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx FrameContext)
	Dispose()
}
