package main

import (
	"log"
	"time"

	"mini-terrain/internal/config"
	renderer "mini-terrain/internal/graphics/renderer"
	"mini-terrain/internal/input"
	"mini-terrain/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// boostFactor multiplies camera speed while the boost key is held
const boostFactor = 4

// ViewerLoop manages the main loop state
type ViewerLoop struct {
	window *glfw.Window
	v      *Viewer

	paused     bool
	fpsLimiter *FPSLimiter

	// Timing
	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

// NewViewerLoop wires window callbacks and returns a loop ready to run
func NewViewerLoop(window *glfw.Window, v *Viewer) *ViewerLoop {
	l := &ViewerLoop{
		window:           window,
		v:                v,
		fpsLimiter:       NewFPSLimiter(),
		lastFPSCheckTime: time.Now(),
		lastTime:         time.Now(),
	}
	l.setupCallbacks()
	return l
}

func (l *ViewerLoop) setupCallbacks() {
	l.v.Input.Attach(l.window)

	l.window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if !l.paused {
			l.v.Camera.HandleMouseMovement(xpos, ypos)
		}
	})

	l.window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		width, height := w.GetSize()
		l.v.Camera.SetViewport(width, height)
	})
}

// Run drives frames until the window closes
func (l *ViewerLoop) Run() {
	for !l.window.ShouldClose() {
		l.tick()
	}
}

func (l *ViewerLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	l.handleInputActions()
	if !l.paused {
		l.moveCamera(dt)
	}

	ctx := l.buildFrame(dt)

	renderStart := time.Now()
	l.v.Renderer.Render(ctx)
	renderDur := time.Since(renderStart)

	func() { defer profiling.Track("glfw.SwapBuffers")(); l.window.SwapBuffers() }()
	l.v.Input.PostUpdate()

	l.frames++
	if time.Since(l.lastFPSCheckTime) >= time.Second {
		log.Printf("FPS: %d chunks: %d uploaded: %d pending: %d water: %d",
			l.frames, l.v.Terrain.Len(), l.v.Chunks.Uploaded(), l.v.Terrain.Pending(), l.v.Water.Planes())
		l.frames = 0
		l.lastFPSCheckTime = time.Now()
	}

	if budget := frameBudget(l.paused); budget > 0 && time.Since(now) > budget {
		log.Printf("Frame too slow: %.2fms render %.2fms (target %.2fms) top: %s",
			float64(time.Since(now).Microseconds())/1000,
			float64(renderDur.Microseconds())/1000,
			float64(budget.Microseconds())/1000,
			profiling.TopN(3))
	}

	l.fpsLimiter.Wait(l.paused)
}

func (l *ViewerLoop) handleInputActions() {
	im := l.v.Input

	if im.JustPressed(input.ActionPause) {
		l.paused = !l.paused
		if l.paused {
			l.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			l.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			l.v.Camera.ResetMouse()
		}
	}

	if im.JustPressed(input.ActionToggleWireframe) {
		config.ToggleWireframe()
	}

	if im.JustPressed(input.ActionWindowGrow) {
		config.SetWindowSize(config.GetWindowSize() + 1)
		log.Printf("window size %d", config.GetWindowSize())
	}
	if im.JustPressed(input.ActionWindowShrink) {
		config.SetWindowSize(config.GetWindowSize() - 1)
		log.Printf("window size %d", config.GetWindowSize())
	}

	if im.JustPressed(input.ActionDumpChunk) {
		l.v.Terrain.LogChunkInfo(l.v.Terrain.ActiveCell())
	}
}

func (l *ViewerLoop) moveCamera(dt float64) {
	defer profiling.Track("camera.Move")()

	im := l.v.Input
	cam := l.v.Camera

	speed := cam.Speed
	if im.IsActive(input.ActionBoost) {
		cam.Speed *= boostFactor
	}
	cam.Move(
		im.Axis(input.ActionMoveBackward, input.ActionMoveForward),
		im.Axis(input.ActionStrafeLeft, input.ActionStrafeRight),
		im.Axis(input.ActionDescend, input.ActionAscend),
		dt,
	)
	cam.Speed = speed
}

// buildFrame streams terrain around the camera and assembles the per-frame
// context shared by the renderables.
func (l *ViewerLoop) buildFrame(dt float64) renderer.FrameContext {
	cam := l.v.Camera
	terr := l.v.Terrain

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	terr.SetFrustum(proj.Mul4(view))

	draw := terr.VisibleChunks(config.GetWindowSize(), cam.Position.X(), cam.Position.Z(), cam.Front())

	return renderer.FrameContext{
		Camera:    cam,
		Terrain:   terr,
		Draw:      draw,
		DT:        dt,
		View:      view,
		Proj:      proj,
		Wireframe: config.GetWireframe(),
	}
}
