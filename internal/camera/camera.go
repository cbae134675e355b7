package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-fly camera driven by yaw/pitch mouse look.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float64 // degrees, -90 looks down -Z
	Pitch    float64 // degrees, clamped to +-89

	Speed       float32 // world units per second
	Sensitivity float64

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	firstMouse bool
	lastX      float64
	lastY      float64
}

// New creates a camera at pos looking down -Z.
func New(pos mgl32.Vec3, width, height int) *Camera {
	c := &Camera{
		Position:    pos,
		Yaw:         -90,
		Speed:       40,
		Sensitivity: 0.1,
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    2000.0,
		firstMouse:  true,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	yaw := mgl32.DegToRad(float32(c.Yaw))
	pitch := mgl32.DegToRad(float32(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(float64(yaw)) * math.Cos(float64(pitch))),
		float32(math.Sin(float64(pitch))),
		float32(math.Sin(float64(yaw)) * math.Cos(float64(pitch))),
	}.Normalize()
}

// Right returns the unit vector to the camera's right on the XZ plane.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// HandleMouseMovement applies a cursor position sample to yaw and pitch.
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	xoffset := (xpos - c.lastX) * c.Sensitivity
	yoffset := (c.lastY - ypos) * c.Sensitivity
	c.lastX = xpos
	c.lastY = ypos

	c.Yaw += xoffset
	c.Pitch += yoffset

	// Constrain pitch
	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}
}

// ResetMouse makes the next cursor sample a new reference point, so
// recapturing the cursor does not jerk the view.
func (c *Camera) ResetMouse() {
	c.firstMouse = true
}

// Move flies the camera; forward, strafe and up are in [-1, 1].
func (c *Camera) Move(forward, strafe, up float32, dt float64) {
	step := c.Speed * float32(dt)
	delta := c.Front().Mul(forward).
		Add(c.Right().Mul(strafe)).
		Add(mgl32.Vec3{0, up, 0})
	if delta.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(delta.Normalize().Mul(step))
}
