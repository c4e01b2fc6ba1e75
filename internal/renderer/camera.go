// camera.go
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch bounds the pitch when clamping is enabled.
var MaxPitch = mgl32.DegToRad(89)

// CameraState is the camera pose plus the last sampled cursor position. The
// scene owns exactly one and mutates it once per frame from polled input.
type CameraState struct {
	Position mgl32.Vec3
	Yaw      float32 // radians
	Pitch    float32 // radians

	CursorX, CursorY float64

	// ClampPitch keeps the pitch within ±MaxPitch. Off by default: an unclamped
	// pitch lets the view roll over the top.
	ClampPitch bool
}

func DefaultCameraState() CameraState {
	return CameraState{
		Position: mgl32.Vec3{0, 2, -3},
		Yaw:      3.14,
		Pitch:    0,
	}
}

// SeedCursor records the cursor position without moving the camera, so the
// first frame does not jump.
func (c *CameraState) SeedCursor(x, y float64) {
	c.CursorX, c.CursorY = x, y
}

// ApplyCursor turns the camera by the cursor movement since the last sample.
func (c *CameraState) ApplyCursor(x, y float64, sensitivity float32) {
	c.Yaw -= float32(x-c.CursorX) * sensitivity
	c.Pitch -= float32(y-c.CursorY) * sensitivity
	c.CursorX, c.CursorY = x, y

	if c.ClampPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	}
}

func (c *CameraState) ViewMatrix() mgl32.Mat4 {
	return ViewMatrix(c.Position.X(), c.Position.Y(), c.Position.Z(), c.Yaw, c.Pitch)
}
