package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FieldOfView = 65.0 // vertical, degrees
	NearPlane   = 1.0
	FarPlane    = 1000.0

	// The transforms were tuned with this value of pi; keep it so the sky framing
	// stays the same.
	pi = 3.14
)

// ProjectionMatrix is a right-handed perspective projection with OpenGL depth
// range. width and height must be positive.
func ProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(width) / float32(height)
	t := float32(math.Tan(float64(FieldOfView * pi / 180.0 / 2.0)))

	var m mgl32.Mat4
	m[0] = 1.0 / (aspect * t)
	m[5] = 1.0 / t
	m[10] = -(FarPlane + NearPlane) / (FarPlane - NearPlane)
	m[11] = -1.0
	m[14] = -(2.0 * FarPlane * NearPlane) / (FarPlane - NearPlane)
	return m
}

// ViewMatrix rotates by yaw, then pitch, after translating by the negated camera
// position. There is no roll. Pitch past ±90° flips the up vector.
func ViewMatrix(x, y, z, yaw, pitch float32) mgl32.Mat4 {
	cosy, siny := float32(math.Cos(float64(yaw))), float32(math.Sin(float64(yaw)))
	cosp, sinp := float32(math.Cos(float64(pitch))), float32(math.Sin(float64(pitch)))

	return mgl32.Mat4{
		cosy, siny * sinp, siny * cosp, 0,
		0, cosp, -sinp, 0,
		-siny, cosy * sinp, cosp * cosy, 0,
		-(cosy*x - siny*z),
		-(siny*sinp*x + cosp*y + cosy*sinp*z),
		-(siny*cosp*x - sinp*y + cosp*cosy*z),
		1,
	}
}

// Forward is the world-space direction the view matrix looks along.
func Forward(yaw, pitch float32) mgl32.Vec3 {
	cosy, siny := float32(math.Cos(float64(yaw))), float32(math.Sin(float64(yaw)))
	cosp, sinp := float32(math.Cos(float64(pitch))), float32(math.Sin(float64(pitch)))
	return mgl32.Vec3{-siny * cosp, sinp, -cosp * cosy}
}
