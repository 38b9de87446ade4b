package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteOBJ writes obj as Wavefront OBJ text. Faces are written with the
// attributes their corners reference (v, v/vt, v//vn or v/vt/vn).
func WriteOBJ(w io.Writer, obj *OBJ) error {
	if err := obj.validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, lib := range obj.MaterialLibs {
		fmt.Fprintf(bw, "mtllib %s\n", lib)
	}
	for _, v := range obj.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(v[0]), ftoa(v[1]), ftoa(v[2]))
	}
	for _, uv := range obj.TexCoords {
		fmt.Fprintf(bw, "vt %s %s\n", ftoa(uv[0]), ftoa(uv[1]))
	}
	for _, n := range obj.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(n[0]), ftoa(n[1]), ftoa(n[2]))
	}

	var group, material string
	for _, f := range obj.Faces {
		if f.Group != group {
			group = f.Group
			fmt.Fprintf(bw, "g %s\n", group)
		}
		if f.Material != material {
			material = f.Material
			fmt.Fprintf(bw, "usemtl %s\n", material)
		}
		bw.WriteString("f")
		for _, c := range f.Corners {
			bw.WriteByte(' ')
			bw.WriteString(formatCorner(c))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func formatCorner(c OBJIndex) string {
	s := strconv.Itoa(c.Vertex + 1)
	switch {
	case c.TexCoord >= 0 && c.Normal >= 0:
		return s + "/" + strconv.Itoa(c.TexCoord+1) + "/" + strconv.Itoa(c.Normal+1)
	case c.TexCoord >= 0:
		return s + "/" + strconv.Itoa(c.TexCoord+1)
	case c.Normal >= 0:
		return s + "//" + strconv.Itoa(c.Normal+1)
	}
	return s
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
