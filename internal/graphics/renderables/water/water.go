package water

import (
	"path/filepath"

	"mini-terrain/internal/graphics"
	renderer "mini-terrain/internal/graphics/renderer"
	"mini-terrain/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir = "assets/shaders/water"

	// two triangles, xyz each
	floatsPerPlane = 18
)

var (
	WaterVertShader = filepath.Join(ShadersDir, "water.vert")
	WaterFragShader = filepath.Join(ShadersDir, "water.frag")
)

// Water draws a translucent plane over every visible chunk whose surface
// dips below the water level.
type Water struct {
	shader  *graphics.Shader
	vao     uint32
	vbo     uint32
	scratch []float32
	// capacity of vbo in floats
	capacity int
	Color    mgl32.Vec3
	Alpha    float32
}

// NewWater creates a new water renderable
func NewWater() *Water {
	return &Water{
		Color: mgl32.Vec3{0.12, 0.35, 0.6},
		Alpha: 0.6,
	}
}

// Init compiles the water shader and allocates a streaming buffer
func (w *Water) Init() error {
	var err error
	w.shader, err = graphics.NewShader(WaterVertShader, WaterFragShader)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return nil
}

// Render batches the water planes of the drawn chunks into one draw call
func (w *Water) Render(ctx renderer.FrameContext) {
	defer profiling.Track("renderer.renderWater")()

	w.scratch = w.scratch[:0]
	for _, coord := range ctx.Draw {
		ch, ok := ctx.Terrain.Chunk(coord)
		if !ok || !ch.HasWater {
			continue
		}
		w.scratch = append(w.scratch, ch.WaterPlane()...)
	}
	if len(w.scratch) == 0 {
		return
	}

	gl.BindVertexArray(w.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	if len(w.scratch) > w.capacity {
		w.capacity = len(w.scratch)
		gl.BufferData(gl.ARRAY_BUFFER, w.capacity*4, gl.Ptr(w.scratch), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(w.scratch)*4, gl.Ptr(w.scratch))
	}

	w.shader.Use()
	w.shader.SetMat4("proj", ctx.Proj)
	w.shader.SetMat4("view", ctx.View)
	w.shader.SetVec3("color", w.Color)
	w.shader.SetFloat("alpha", w.Alpha)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(false)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(w.scratch)/3))
	gl.DepthMask(true)
	if !ctx.Wireframe {
		gl.Enable(gl.CULL_FACE)
	}
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

// Planes returns how many water planes were batched in the last frame.
func (w *Water) Planes() int {
	return len(w.scratch) / floatsPerPlane
}

// Dispose cleans up OpenGL resources
func (w *Water) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}
