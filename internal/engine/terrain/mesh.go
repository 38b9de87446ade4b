package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BuildMesh triangulates the height field into a flat-shaded mesh.
//
// Grid corner (row, sample, col) is centered on the origin by subtracting
// (rows/2, 0, cols/2), then X/Z are multiplied by scale.Horizontal and Y by
// scale.Vertical. Each 2x2 block of samples yields two triangles split along
// the p01-p10 diagonal. Vertices are not shared between triangles.
func BuildMesh(field *HeightField, scale Scale) *Mesh {
	rows, cols := field.Rows(), field.Cols()

	cells := 0
	if rows > 1 && cols > 1 {
		cells = (rows - 1) * (cols - 1)
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, cells*6),
		Indices:  make([]uint32, 0, cells*6),
	}
	if cells == 0 {
		return mesh
	}

	halfRows := float32(rows) / 2
	halfCols := float32(cols) / 2
	corner := func(i, j int) mgl32.Vec3 {
		return mgl32.Vec3{
			(float32(i) - halfRows) * scale.Horizontal,
			float32(field.At(i, j)) * scale.Vertical,
			(float32(j) - halfCols) * scale.Horizontal,
		}
	}

	mesh.Bounds = Bounds{
		Min: mgl32.Vec3{1e30, 1e30, 1e30},
		Max: mgl32.Vec3{-1e30, -1e30, -1e30},
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			p00 := corner(i-1, j-1)
			p01 := corner(i-1, j)
			p10 := corner(i, j-1)
			p11 := corner(i, j)

			mesh.addTriangle(p00, p01, p10, p01.Sub(p00).Cross(p10.Sub(p00)))
			mesh.addTriangle(p11, p01, p10, p01.Sub(p11).Cross(p10.Sub(p11)).Mul(-1))
		}
	}

	return mesh
}

func (m *Mesh) addTriangle(a, b, c, n mgl32.Vec3) {
	n = normalize(n)
	for _, p := range [3]mgl32.Vec3{a, b, c} {
		m.Indices = append(m.Indices, uint32(len(m.Vertices)))
		m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: n})
		m.Bounds.extend(p)
	}
}

func (b *Bounds) extend(p mgl32.Vec3) {
	for k := range 3 {
		b.Min[k] = min(b.Min[k], p[k])
		b.Max[k] = max(b.Max[k], p[k])
	}
}

// normalize falls back to straight up for degenerate triangles.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}
