// Package terrain builds flat-shaded ground meshes from 16-bit heightmaps
// and answers height queries that agree with the generated geometry.
package terrain

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrEmptyField is returned when a height field has no rows or no columns.
	ErrEmptyField = errors.New("terrain: empty height field")
	// ErrNotRectangular is returned when source rows differ in length.
	ErrNotRectangular = errors.New("terrain: height field is not rectangular")
	// ErrSampleCount is returned when the sample slice does not match rows*cols.
	ErrSampleCount = errors.New("terrain: sample count does not match dimensions")
	// ErrInvalidScale is returned when a scale factor is not positive.
	ErrInvalidScale = errors.New("terrain: scale factors must be positive")
)

// FloatsPerVertex is the stride of Mesh.Interleaved: position.xyz + normal.xyz.
const FloatsPerVertex = 6

// Vertex is a terrain vertex. The layout matches the GPU attribute layout
// (location 0 = position, location 1 = normal).
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Mesh holds terrain geometry ready for upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Scale converts grid units into world units.
type Scale struct {
	Horizontal float32 // world units per grid step on X and Z
	Vertical   float32 // world units per height unit on Y
}

// Validate reports whether both factors are usable.
func (s Scale) Validate() error {
	if !(s.Horizontal > 0) || !(s.Vertical > 0) {
		return fmt.Errorf("%w: horizontal=%v vertical=%v", ErrInvalidScale, s.Horizontal, s.Vertical)
	}
	return nil
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Interleaved flattens the vertices into pos.xyz, normal.xyz order.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
		)
	}
	return out
}
