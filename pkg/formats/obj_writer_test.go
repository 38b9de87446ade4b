package formats

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteOBJ_RoundTrip(t *testing.T) {
	src, err := ParseOBJ([]byte(testCubeFace))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, src); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	got, err := ParseOBJ(buf.Bytes())
	if err != nil {
		t.Fatalf("re-parse failed: %v\n%s", err, buf.String())
	}

	if len(got.Vertices) != len(src.Vertices) || len(got.Normals) != len(src.Normals) || len(got.TexCoords) != len(src.TexCoords) {
		t.Errorf("attribute counts changed: %d/%d/%d", len(got.Vertices), len(got.Normals), len(got.TexCoords))
	}
	if len(got.Faces) != len(src.Faces) {
		t.Fatalf("expected %d faces, got %d", len(src.Faces), len(got.Faces))
	}
	for i := range src.Faces {
		if got.Faces[i] != src.Faces[i] {
			t.Errorf("face %d: expected %+v, got %+v", i, src.Faces[i], got.Faces[i])
		}
	}
}

func TestWriteOBJ_CornerFormats(t *testing.T) {
	obj := &OBJ{
		Vertices:  [][3]float32{{0, 0, 0}, {1.5, 0, 0}, {0, 0, -2}},
		Normals:   [][3]float32{{0, 1, 0}},
		TexCoords: [][2]float32{{0.5, 1}},
		Faces: []OBJFace{
			{Corners: [3]OBJIndex{{0, -1, -1}, {1, 0, -1}, {2, -1, 0}}},
		},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, obj); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"v 1.5 0 0\n", "v 0 0 -2\n", "vt 0.5 1\n", "vn 0 1 0\n", "f 1 2/1 3//1\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteOBJ_InvalidIndex(t *testing.T) {
	obj := &OBJ{
		Vertices: [][3]float32{{0, 0, 0}},
		Faces:    []OBJFace{{Corners: [3]OBJIndex{{0, -1, -1}, {1, -1, -1}, {2, -1, -1}}}},
	}
	if err := WriteOBJ(&bytes.Buffer{}, obj); !errors.Is(err, ErrOBJIndex) {
		t.Errorf("expected ErrOBJIndex, got %v", err)
	}
}
