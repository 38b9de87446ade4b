// Package model builds renderable meshes from Wavefront OBJ models.
package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a model vertex: position, normal and diffuse color
// (attribute locations 0, 1 and 2).
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
}

// Mesh holds an indexed model mesh ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// FloatsPerVertex is the stride of Interleaved in floats.
const FloatsPerVertex = 9

// Interleaved flattens vertices to pos.xyz, normal.xyz, color.rgb.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.Color[:]...)
	}
	return out
}
