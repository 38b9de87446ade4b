package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// rampField creates a field whose samples grow with row and column.
func rampField(t *testing.T, rows, cols int) *HeightField {
	t.Helper()
	samples := make([]uint16, rows*cols)
	for i := range rows {
		for j := range cols {
			samples[i*cols+j] = uint16(i*7 + j*3)
		}
	}
	f, err := NewHeightField(rows, cols, samples)
	if err != nil {
		t.Fatalf("NewHeightField: %v", err)
	}
	return f
}

func TestBuildMesh_Counts(t *testing.T) {
	sizes := []struct{ rows, cols int }{
		{2, 2}, {2, 5}, {5, 2}, {3, 3}, {4, 7}, {16, 9},
	}

	for _, sz := range sizes {
		field := rampField(t, sz.rows, sz.cols)
		mesh := BuildMesh(field, Scale{Horizontal: 1.5, Vertical: 0.25})

		cells := (sz.rows - 1) * (sz.cols - 1)
		if got := mesh.TriangleCount(); got != 2*cells {
			t.Errorf("%dx%d: expected %d triangles, got %d", sz.rows, sz.cols, 2*cells, got)
		}
		if len(mesh.Vertices) != 6*cells {
			t.Errorf("%dx%d: expected %d vertices, got %d", sz.rows, sz.cols, 6*cells, len(mesh.Vertices))
		}
		if len(mesh.Indices)%3 != 0 {
			t.Errorf("%dx%d: index count %d not a multiple of 3", sz.rows, sz.cols, len(mesh.Indices))
		}
		if cap(mesh.Vertices) != 6*cells {
			t.Errorf("%dx%d: vertex buffer capacity %d, want exact %d", sz.rows, sz.cols, cap(mesh.Vertices), 6*cells)
		}
		for k, idx := range mesh.Indices {
			if int(idx) >= len(mesh.Vertices) {
				t.Fatalf("%dx%d: index %d = %d out of range", sz.rows, sz.cols, k, idx)
			}
			if int(idx) != k {
				t.Fatalf("%dx%d: index %d = %d, want sequential", sz.rows, sz.cols, k, idx)
			}
		}
	}
}

func TestBuildMesh_DegenerateGrid(t *testing.T) {
	field, err := FromRows([][]uint16{{1, 2, 3, 4}})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	mesh := BuildMesh(field, Scale{Horizontal: 1, Vertical: 1})
	if len(mesh.Vertices) != 0 || len(mesh.Indices) != 0 {
		t.Errorf("expected empty mesh for single row, got %d vertices", len(mesh.Vertices))
	}
}

func TestBuildMesh_NormalsFaceUp(t *testing.T) {
	tests := []struct {
		name  string
		field *HeightField
	}{
		{"flat", mustRows(t, [][]uint16{{5, 5, 5}, {5, 5, 5}, {5, 5, 5}})},
		{"ramp", rampField(t, 6, 5)},
		{"cliff", mustRows(t, [][]uint16{{0, 0, 0}, {0, 65535, 0}, {0, 0, 0}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := BuildMesh(tt.field, Scale{Horizontal: 3, Vertical: 2})
			for k, v := range mesh.Vertices {
				if v.Normal.Y() <= 0 {
					t.Fatalf("vertex %d normal %v does not face up", k, v.Normal)
				}
				if l := v.Normal.Len(); l < 0.999 || l > 1.001 {
					t.Fatalf("vertex %d normal %v is not unit length (%f)", k, v.Normal, l)
				}
			}
		})
	}
}

func TestBuildMesh_FlatShading(t *testing.T) {
	mesh := BuildMesh(rampField(t, 4, 4), Scale{Horizontal: 1, Vertical: 1})

	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		n := mesh.Vertices[tri*3].Normal
		for k := 1; k < 3; k++ {
			if mesh.Vertices[tri*3+k].Normal != n {
				t.Fatalf("triangle %d has differing vertex normals", tri)
			}
		}
	}
}

func TestBuildMesh_FirstCell(t *testing.T) {
	field := mustRows(t, [][]uint16{{1, 2}, {3, 4}})
	mesh := BuildMesh(field, Scale{Horizontal: 10, Vertical: 2})

	// rows/2 = cols/2 = 1
	want := []mgl32.Vec3{
		{-10, 2, -10}, {-10, 4, 0}, {0, 6, -10}, // p00 p01 p10
		{0, 8, 0}, {-10, 4, 0}, {0, 6, -10},     // p11 p01 p10
	}
	if len(mesh.Vertices) != len(want) {
		t.Fatalf("expected %d vertices, got %d", len(want), len(mesh.Vertices))
	}
	for k, w := range want {
		if !mesh.Vertices[k].Position.ApproxEqual(w) {
			t.Errorf("vertex %d: expected %v, got %v", k, w, mesh.Vertices[k].Position)
		}
	}
}

func TestBuildMesh_Centered(t *testing.T) {
	for _, sz := range []struct{ rows, cols int }{{2, 2}, {3, 3}, {5, 8}, {9, 4}} {
		field := rampField(t, sz.rows, sz.cols)
		mesh := BuildMesh(field, Scale{Horizontal: 1, Vertical: 1})

		var sumX, sumZ float64
		for _, v := range mesh.Vertices {
			sumX += float64(v.Position.X())
			sumZ += float64(v.Position.Z())
		}
		n := float64(len(mesh.Vertices))
		if mx := sumX / n; mx < -1 || mx > 1 {
			t.Errorf("%dx%d: mean X %f not within one cell of zero", sz.rows, sz.cols, mx)
		}
		if mz := sumZ / n; mz < -1 || mz > 1 {
			t.Errorf("%dx%d: mean Z %f not within one cell of zero", sz.rows, sz.cols, mz)
		}
	}
}

func TestBuildMesh_FlatScenario(t *testing.T) {
	field := mustRows(t, [][]uint16{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})
	mesh := BuildMesh(field, Scale{Horizontal: 2, Vertical: 5})

	if mesh.TriangleCount() != 8 {
		t.Fatalf("expected 8 triangles, got %d", mesh.TriangleCount())
	}
	up := mgl32.Vec3{0, 1, 0}
	for k, v := range mesh.Vertices {
		if v.Position.Y() != 0 {
			t.Errorf("vertex %d: expected Y=0, got %f", k, v.Position.Y())
		}
		if !v.Normal.ApproxEqual(up) {
			t.Errorf("vertex %d: expected normal %v, got %v", k, up, v.Normal)
		}
	}
}

func TestBuildMesh_Bounds(t *testing.T) {
	field := mustRows(t, [][]uint16{{0, 10}, {20, 30}})
	mesh := BuildMesh(field, Scale{Horizontal: 4, Vertical: 0.5})

	wantMin := mgl32.Vec3{-4, 0, -4}
	wantMax := mgl32.Vec3{0, 15, 0}
	if !mesh.Bounds.Min.ApproxEqual(wantMin) || !mesh.Bounds.Max.ApproxEqual(wantMax) {
		t.Errorf("bounds = %v..%v, want %v..%v", mesh.Bounds.Min, mesh.Bounds.Max, wantMin, wantMax)
	}
}

func TestMeshInterleaved(t *testing.T) {
	mesh := BuildMesh(rampField(t, 3, 4), Scale{Horizontal: 1, Vertical: 1})
	flat := mesh.Interleaved()

	if len(flat) != len(mesh.Vertices)*FloatsPerVertex {
		t.Fatalf("expected %d floats, got %d", len(mesh.Vertices)*FloatsPerVertex, len(flat))
	}
	v := mesh.Vertices[7]
	got := flat[7*FloatsPerVertex : 8*FloatsPerVertex]
	want := []float32{v.Position[0], v.Position[1], v.Position[2], v.Normal[0], v.Normal[1], v.Normal[2]}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("component %d: expected %f, got %f", k, want[k], got[k])
		}
	}
}

func mustRows(t *testing.T, grid [][]uint16) *HeightField {
	t.Helper()
	f, err := FromRows(grid)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return f
}
