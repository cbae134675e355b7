package main

import (
	"mini-terrain/internal/camera"
	"mini-terrain/internal/graphics/renderables/chunks"
	"mini-terrain/internal/graphics/renderables/water"
	renderer "mini-terrain/internal/graphics/renderer"
	"mini-terrain/internal/input"
	"mini-terrain/internal/terrain"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	winW = 1280
	winH = 720

	// camera height above the ground at spawn
	spawnClearance = 30
)

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winW, winH, "mini-terrain", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}

	// V-Sync off; the loop runs its own limiter
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

// Viewer holds the initialized viewer components
type Viewer struct {
	Renderer *renderer.Renderer
	Chunks   *chunks.Chunks
	Water    *water.Water
	Camera   *camera.Camera
	Terrain  *terrain.Terrain
	Input    *input.Manager
}

func setupViewer(window *glfw.Window, terr *terrain.Terrain) (*Viewer, error) {
	chunkRenderer := chunks.NewChunks()
	waterRenderer := water.NewWater()

	r, err := renderer.NewRenderer(chunkRenderer, waterRenderer)
	if err != nil {
		return nil, err
	}

	// GPU buffers follow the terrain's retention policy
	terr.OnEvict = chunkRenderer.Release

	// Spawn above the middle of the origin chunk
	mid := float32(terr.Config().ChunkEdgeLength) / 2
	ground := terr.HeightAt(float64(mid), float64(mid))
	width, height := window.GetSize()
	cam := camera.New(mgl32.Vec3{mid, ground + spawnClearance, mid}, width, height)

	return &Viewer{
		Renderer: r,
		Chunks:   chunkRenderer,
		Water:    waterRenderer,
		Camera:   cam,
		Terrain:  terr,
		Input:    input.NewManager(),
	}, nil
}
