package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/pkg/formats"
)

func mustParse(t *testing.T, src string) *formats.OBJ {
	t.Helper()
	obj, err := formats.ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	return obj
}

const quadOBJ = `
v 10 0 4
v 12 0 4
v 12 2 4
v 10 2 4
vn 0 0 1
usemtl red
f 1//1 2//1 3//1 4//1
`

func TestBuildMesh_RecentersOnBoundingBox(t *testing.T) {
	mesh := BuildMesh(mustParse(t, quadOBJ), nil)
	if mesh == nil {
		t.Fatal("expected mesh, got nil")
	}

	wantMin := mgl32.Vec3{-1, -1, 0}
	wantMax := mgl32.Vec3{1, 1, 0}
	if !mesh.Bounds.Min.ApproxEqual(wantMin) || !mesh.Bounds.Max.ApproxEqual(wantMax) {
		t.Errorf("bounds = %v..%v, want %v..%v", mesh.Bounds.Min, mesh.Bounds.Max, wantMin, wantMax)
	}
	if size := mesh.Bounds.Size(); !size.ApproxEqual(mgl32.Vec3{2, 2, 0}) {
		t.Errorf("expected size (2,2,0), got %v", size)
	}
}

func TestBuildMesh_SharesVertices(t *testing.T) {
	mesh := BuildMesh(mustParse(t, quadOBJ), nil)

	// Two triangles over four corners with one normal and material.
	if len(mesh.Vertices) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 6 {
		t.Errorf("expected 6 indices, got %d", len(mesh.Indices))
	}
}

func TestBuildMesh_MaterialColor(t *testing.T) {
	materials := map[string]*formats.Material{
		"red": {Name: "red", Diffuse: [3]float32{1, 0, 0}},
	}

	mesh := BuildMesh(mustParse(t, quadOBJ), materials)
	for k, v := range mesh.Vertices {
		if v.Color != (mgl32.Vec3{1, 0, 0}) {
			t.Errorf("vertex %d: expected red, got %v", k, v.Color)
		}
	}

	mesh = BuildMesh(mustParse(t, quadOBJ), nil)
	if got := mesh.Vertices[0].Color; got != mgl32.Vec3(formats.DefaultDiffuse) {
		t.Errorf("expected default diffuse, got %v", got)
	}
}

func TestBuildMesh_SplitsByMaterial(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vn 0 0 1
usemtl a
f 1//1 2//1 3//1
usemtl b
f 2//1 4//1 3//1
`
	mesh := BuildMesh(mustParse(t, src), nil)

	// Corners 2 and 3 appear under both materials.
	if len(mesh.Vertices) != 6 {
		t.Errorf("expected 6 vertices, got %d", len(mesh.Vertices))
	}
}

func TestBuildMesh_FlatNormals(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 0 -1
f 1 2 3
`
	mesh := BuildMesh(mustParse(t, src), nil)
	if mesh == nil {
		t.Fatal("expected mesh, got nil")
	}
	up := mgl32.Vec3{0, 1, 0}
	for k, v := range mesh.Vertices {
		if !v.Normal.ApproxEqual(up) {
			t.Errorf("vertex %d: expected normal %v, got %v", k, up, v.Normal)
		}
	}
}

func TestBuildMesh_SkipsDegenerate(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 2 0 0
f 1 2 3
`
	if mesh := BuildMesh(mustParse(t, src), nil); mesh != nil {
		t.Errorf("expected nil mesh for collinear face, got %d vertices", len(mesh.Vertices))
	}
}

func TestBuildMesh_Empty(t *testing.T) {
	if mesh := BuildMesh(&formats.OBJ{}, nil); mesh != nil {
		t.Error("expected nil mesh for empty OBJ")
	}
}

func TestLoad_WithMaterialLibrary(t *testing.T) {
	dir := t.TempDir()
	obj := "mtllib tower.mtl\n" + quadOBJ
	mtl := "newmtl red\nKd 0.9 0.1 0.1\n"

	if err := os.WriteFile(filepath.Join(dir, "tower.obj"), []byte(obj), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tower.mtl"), []byte(mtl), 0644); err != nil {
		t.Fatal(err)
	}

	mesh, err := Load(filepath.Join(dir, "tower.obj"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := mesh.Vertices[0].Color; !got.ApproxEqual(mgl32.Vec3{0.9, 0.1, 0.1}) {
		t.Errorf("expected material color, got %v", got)
	}
}

func TestLoad_MissingMaterialLibrary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tower.obj")
	if err := os.WriteFile(path, []byte("mtllib missing.mtl\n"+quadOBJ), 0644); err != nil {
		t.Fatal(err)
	}

	mesh, err := Load(path, os.ReadFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := mesh.Vertices[0].Color; got != mgl32.Vec3(formats.DefaultDiffuse) {
		t.Errorf("expected default diffuse, got %v", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.obj"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}
