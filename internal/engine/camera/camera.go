// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch limits how far the fly camera looks up or down (radians).
const MaxPitch = 0.35 * gomath.Pi

// FlyCamera moves freely through the scene.
// With both angles at zero it looks down -Z.
type FlyCamera struct {
	Position mgl32.Vec3

	AngXZ float32 // Yaw around +Y (radians)
	AngY  float32 // Pitch (radians), clamped to ±MaxPitch

	// Projection
	FOV  float32 // Vertical field of view (degrees)
	Near float32
	Far  float32
}

// NewFlyCamera creates a fly camera at position looking down -Z.
func NewFlyCamera(position mgl32.Vec3) *FlyCamera {
	return &FlyCamera{
		Position: position,
		FOV:      70,
		Near:     10,
		Far:      100000,
	}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	sinY, cosY := gomath.Sincos(float64(c.AngY))
	sinXZ, cosXZ := gomath.Sincos(float64(c.AngXZ))
	return mgl32.Vec3{
		float32(-cosY * sinXZ),
		float32(sinY),
		float32(-cosY * cosXZ),
	}
}

// Up returns world up made orthogonal to Forward.
func (c *FlyCamera) Up() mgl32.Vec3 {
	f := c.Forward()
	up := mgl32.Vec3{0, 1, 0}
	return up.Sub(f.Mul(up.Dot(f))).Normalize()
}

// Right returns Forward × Up.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.Forward().Cross(c.Up())
}

// Drag rotates the camera by a pointer delta in normalized screen units
// ([-1, 1] across the window, Y up). Dragging right turns left, as if
// grabbing the scene.
func (c *FlyCamera) Drag(dx, dy, factor float32) {
	c.AngXZ -= factor * dx
	c.AngY += factor * dy

	if c.AngY > MaxPitch {
		c.AngY = MaxPitch
	}
	if c.AngY < -MaxPitch {
		c.AngY = -MaxPitch
	}
}

// Move translates the camera along its own axes. Each direction is
// typically -1, 0 or 1.
func (c *FlyCamera) Move(forward, right, up, speed float32) {
	delta := c.Forward().Mul(forward).
		Add(c.Right().Mul(right)).
		Add(c.Up().Mul(up))
	c.Position = c.Position.Add(delta.Mul(speed))
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	target := c.Position.Add(c.Forward())
	return mgl32.LookAtV(c.Position, target, c.Up())
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *FlyCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns projection × view.
func (c *FlyCamera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

// DragFactor scales a base sensitivity by the smaller window dimension, so a
// drag across the same number of pixels turns the same amount on any window.
func DragFactor(base float32, width, height int) float32 {
	return base * 1000 / float32(max(1, min(width, height)))
}
