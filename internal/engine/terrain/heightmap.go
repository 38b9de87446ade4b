package terrain

import (
	"fmt"
	"math"
)

// QueryHeight returns the world-space height of the sample nearest to (x, z).
//
// It inverts the BuildMesh transform (row from X, column from Z), rounds half
// away from zero and clamps into the grid, so points outside the terrain get
// the nearest edge sample. There is no interpolation between samples.
func QueryHeight(field *HeightField, scale Scale, x, z float32) float32 {
	row := float64(x)/float64(scale.Horizontal) + float64(field.Rows())/2
	col := float64(z)/float64(scale.Horizontal) + float64(field.Cols())/2

	i := clampIndex(row, field.Rows())
	j := clampIndex(col, field.Cols())

	return float32(field.At(i, j)) * scale.Vertical
}

func clampIndex(v float64, n int) int {
	r := math.Round(v)
	if !(r > 0) { // also catches NaN
		return 0
	}
	if r > float64(n-1) {
		return n - 1
	}
	return int(r)
}

// Terrain couples a height field with its scale and generated mesh.
type Terrain struct {
	Field *HeightField
	Scale Scale
	Mesh  *Mesh
}

// New validates scale and builds the terrain mesh.
func New(field *HeightField, scale Scale) (*Terrain, error) {
	if field == nil {
		return nil, ErrEmptyField
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}

	return &Terrain{
		Field: field,
		Scale: scale,
		Mesh:  BuildMesh(field, scale),
	}, nil
}

// HeightAt returns the terrain height at world (x, z).
func (t *Terrain) HeightAt(x, z float32) float32 {
	return QueryHeight(t.Field, t.Scale, x, z)
}

// Extent returns the world-space size of the terrain on X and Z.
func (t *Terrain) Extent() (sizeX, sizeZ float32) {
	return float32(t.Field.Rows()-1) * t.Scale.Horizontal, float32(t.Field.Cols()-1) * t.Scale.Horizontal
}

func (t *Terrain) String() string {
	return fmt.Sprintf("terrain %dx%d (h=%g v=%g, %d triangles)",
		t.Field.Rows(), t.Field.Cols(), t.Scale.Horizontal, t.Scale.Vertical, t.Mesh.TriangleCount())
}
