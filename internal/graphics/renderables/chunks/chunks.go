package chunks

import (
	"path/filepath"

	"mini-terrain/internal/graphics"
	renderer "mini-terrain/internal/graphics/renderer"
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/terrain"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir  = "assets/shaders/terrain"
	TexturePath = "assets/textures/grass.png"

	// position(3) + normal(3) + uv(2), float32
	vertexStride = terrain.FloatsPerVertex * 4
)

var (
	TerrainVertShader = filepath.Join(ShadersDir, "terrain.vert")
	TerrainFragShader = filepath.Join(ShadersDir, "terrain.frag")
)

type chunkMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Chunks draws terrain chunk meshes, uploading each chunk once.
type Chunks struct {
	shader  *graphics.Shader
	texture uint32
	meshes  map[terrain.GridCoord]*chunkMesh
}

// NewChunks creates a new chunk renderable
func NewChunks() *Chunks {
	return &Chunks{meshes: make(map[terrain.GridCoord]*chunkMesh)}
}

// Init compiles the terrain shader and loads the ground texture
func (c *Chunks) Init() error {
	var err error
	c.shader, err = graphics.NewShader(TerrainVertShader, TerrainFragShader)
	if err != nil {
		return err
	}
	c.texture = graphics.LoadTextureOrChecker(TexturePath)

	c.shader.Use()
	c.shader.SetInt("groundTex", 0)
	c.shader.SetVec3("lightDir", mgl32.Vec3{0.3, 1.0, 0.3}.Normalize())
	return nil
}

// Render draws every cell in ctx.Draw that has a mesh
func (c *Chunks) Render(ctx renderer.FrameContext) {
	defer profiling.Track("renderer.renderChunks")()

	c.shader.Use()
	c.shader.SetMat4("proj", ctx.Proj)
	c.shader.SetMat4("view", ctx.View)
	c.shader.SetVec3("viewPos", ctx.Camera.Position)
	c.shader.SetFloat("waterLevel", ctx.Terrain.WaterLevel())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.texture)

	for _, coord := range ctx.Draw {
		ch, ok := ctx.Terrain.Chunk(coord)
		if !ok || !ch.Generated {
			continue
		}
		m := c.ensure(ch)
		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// ensure uploads a chunk's buffers on first sight. Chunk buffers are
// immutable once published, so an existing upload is always current.
func (c *Chunks) ensure(ch *terrain.Chunk) *chunkMesh {
	if m, ok := c.meshes[ch.Coord]; ok {
		return m
	}
	defer profiling.Track("renderer.renderChunks.upload")()

	m := &chunkMesh{indexCount: int32(len(ch.Indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(ch.Vertices)*4, gl.Ptr(ch.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(ch.Indices)*4, gl.Ptr(ch.Indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*4)

	gl.BindVertexArray(0)
	c.meshes[ch.Coord] = m
	return m
}

// Release frees the GPU buffers of an evicted chunk. Wire it to
// terrain.Terrain.OnEvict.
func (c *Chunks) Release(ch *terrain.Chunk) {
	m, ok := c.meshes[ch.Coord]
	if !ok {
		return
	}
	m.delete()
	delete(c.meshes, ch.Coord)
}

// Uploaded reports how many chunks currently hold GPU buffers.
func (c *Chunks) Uploaded() int {
	return len(c.meshes)
}

// Dispose cleans up OpenGL resources
func (c *Chunks) Dispose() {
	for coord, m := range c.meshes {
		m.delete()
		delete(c.meshes, coord)
	}
	if c.texture != 0 {
		gl.DeleteTextures(1, &c.texture)
	}
	if c.shader != nil {
		c.shader.Delete()
	}
}

func (m *chunkMesh) delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
}
