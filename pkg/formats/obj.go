package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrInvalidOBJ   = errors.New("invalid OBJ data")
	ErrOBJIndex     = errors.New("OBJ index out of range")
	ErrInvalidMTL   = errors.New("invalid MTL data")
	errMissingValue = errors.New("missing value")
)

// OBJIndex references the attributes of one face corner.
// Indices are zero-based; -1 means the attribute is absent.
type OBJIndex struct {
	Vertex   int
	TexCoord int
	Normal   int
}

// OBJFace is a triangle. Polygons are fan-triangulated while parsing.
type OBJFace struct {
	Corners  [3]OBJIndex
	Material string // active usemtl name, empty if none
	Group    string // active o/g name
}

// OBJ holds parsed Wavefront OBJ geometry.
type OBJ struct {
	Vertices     [][3]float32
	Normals      [][3]float32
	TexCoords    [][2]float32
	Faces        []OBJFace
	MaterialLibs []string
}

// ParseOBJ parses Wavefront OBJ text.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	var material, group string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		var err error
		switch fields[0] {
		case "v":
			var v [3]float32
			if v, err = parseVec3(fields[1:]); err == nil {
				obj.Vertices = append(obj.Vertices, v)
			}
		case "vn":
			var n [3]float32
			if n, err = parseVec3(fields[1:]); err == nil {
				obj.Normals = append(obj.Normals, n)
			}
		case "vt":
			var uv [2]float32
			if uv, err = parseVec2(fields[1:]); err == nil {
				obj.TexCoords = append(obj.TexCoords, uv)
			}
		case "f":
			err = obj.parseFace(fields[1:], material, group)
		case "usemtl":
			material = restOfLine(line, fields[0])
		case "mtllib":
			obj.MaterialLibs = append(obj.MaterialLibs, fields[1:]...)
		case "o", "g":
			group = restOfLine(line, fields[0])
		default:
			// s, l, p and vendor extensions are ignored
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q: %v", ErrInvalidOBJ, lineNo, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if err := obj.validate(); err != nil {
		return nil, err
	}
	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func (o *OBJ) parseFace(corners []string, material, group string) error {
	if len(corners) < 3 {
		return fmt.Errorf("face needs at least 3 corners, got %d", len(corners))
	}

	idx := make([]OBJIndex, len(corners))
	for i, c := range corners {
		var err error
		if idx[i], err = o.parseCorner(c); err != nil {
			return err
		}
	}

	for i := 1; i+1 < len(idx); i++ {
		o.Faces = append(o.Faces, OBJFace{
			Corners:  [3]OBJIndex{idx[0], idx[i], idx[i+1]},
			Material: material,
			Group:    group,
		})
	}
	return nil
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn.
func (o *OBJ) parseCorner(s string) (OBJIndex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return OBJIndex{}, fmt.Errorf("bad face corner %q", s)
	}

	out := OBJIndex{Vertex: -1, TexCoord: -1, Normal: -1}
	counts := [3]int{len(o.Vertices), len(o.TexCoords), len(o.Normals)}
	dst := [3]*int{&out.Vertex, &out.TexCoord, &out.Normal}

	for k, p := range parts {
		if p == "" {
			if k == 0 {
				return OBJIndex{}, fmt.Errorf("face corner %q has no vertex", s)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return OBJIndex{}, fmt.Errorf("bad index %q: %w", p, err)
		}
		switch {
		case n > 0:
			*dst[k] = n - 1
		case n < 0:
			*dst[k] = counts[k] + n
		default:
			return OBJIndex{}, fmt.Errorf("index 0 in %q", s)
		}
	}
	return out, nil
}

func (o *OBJ) validate() error {
	for fi, f := range o.Faces {
		for _, c := range f.Corners {
			if c.Vertex < 0 || c.Vertex >= len(o.Vertices) ||
				c.TexCoord >= len(o.TexCoords) || c.Normal >= len(o.Normals) ||
				c.TexCoord < -1 || c.Normal < -1 {
				return fmt.Errorf("%w: face %d corner %+v", ErrOBJIndex, fi, c)
			}
		}
	}
	return nil
}

// HasNormals reports whether every face corner references a normal.
func (o *OBJ) HasNormals() bool {
	for _, f := range o.Faces {
		for _, c := range f.Corners {
			if c.Normal < 0 {
				return false
			}
		}
	}
	return len(o.Faces) > 0
}

func parseVec3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, errMissingValue
	}
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseVec2(fields []string) ([2]float32, error) {
	var v [2]float32
	if len(fields) < 1 {
		return v, errMissingValue
	}
	for i := 0; i < 2 && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// restOfLine returns everything after the keyword, so names may contain spaces.
func restOfLine(line, keyword string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, keyword))
}
