// Package scene draws the viewer's terrain and models with OpenGL.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/engine/lighting"
)

// Frame carries the per-frame state every renderable needs.
type Frame struct {
	ViewProj mgl32.Mat4
	Camera   mgl32.Vec3 // World-space eye position
	Lighting lighting.Environment
}

// Renderable is anything the scene can draw.
type Renderable interface {
	ModelMatrix() mgl32.Mat4
	Render(frame Frame)
}

// Destroyer is implemented by renderables that own GPU resources.
type Destroyer interface {
	Destroy()
}

// Scene draws its renderables in insertion order.
type Scene struct {
	items []Renderable
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends r to the draw list.
func (s *Scene) Add(r Renderable) {
	s.items = append(s.items, r)
}

// Len returns the number of renderables.
func (s *Scene) Len() int {
	return len(s.items)
}

// Render draws every renderable.
func (s *Scene) Render(frame Frame) {
	for _, r := range s.items {
		r.Render(frame)
	}
}

// Clear destroys and removes every renderable.
func (s *Scene) Clear() {
	for _, r := range s.items {
		if d, ok := r.(Destroyer); ok {
			d.Destroy()
		}
	}
	s.items = nil
}

// mvp returns the combined matrix for a renderable's model matrix.
func (f Frame) mvp(model mgl32.Mat4) mgl32.Mat4 {
	return f.ViewProj.Mul4(model)
}
