package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/logger"
	"github.com/Faultbox/terrainview/pkg/formats"
)

// ReadFunc returns the contents of a named file.
type ReadFunc func(path string) ([]byte, error)

// Load parses an OBJ file and the material libraries it references,
// reading both through read (os.ReadFile when nil). Library paths are
// relative to the OBJ file. Missing or broken libraries are logged and
// skipped.
func Load(path string, read ReadFunc) (*Mesh, error) {
	if read == nil {
		read = os.ReadFile
	}

	data, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	materials := make(map[string]*formats.Material)
	for _, lib := range obj.MaterialLibs {
		libPath := filepath.Join(filepath.Dir(path), lib)
		mats, err := loadMaterials(libPath, read)
		if err != nil {
			logger.Warn("skipping material library", zap.String("path", libPath), zap.Error(err))
			continue
		}
		for name, m := range mats {
			materials[name] = m
		}
	}

	mesh := BuildMesh(obj, materials)
	if mesh == nil {
		return nil, fmt.Errorf("model %s has no faces", path)
	}
	return mesh, nil
}

func loadMaterials(path string, read ReadFunc) (map[string]*formats.Material, error) {
	data, err := read(path)
	if err != nil {
		return nil, err
	}
	return formats.ParseMTL(data)
}

// vertexKey identifies a unique output vertex. flat is the face normal
// for corners that have no normal of their own.
type vertexKey struct {
	vertex   int
	normal   int
	material string
	flat     mgl32.Vec3
}

// BuildMesh converts parsed OBJ data to an indexed mesh.
//
// Every axis is recentered on the midpoint of its bounding range, so the
// model's box is centered on the origin. Corners sharing position, normal
// and material are merged. Returns nil if the model has no usable faces.
func BuildMesh(obj *formats.OBJ, materials map[string]*formats.Material) *Mesh {
	if len(obj.Faces) == 0 || len(obj.Vertices) == 0 {
		return nil
	}

	center := midpoint(obj.Vertices)

	mesh := &Mesh{}
	ids := make(map[vertexKey]uint32)

	for _, face := range obj.Faces {
		var p [3]mgl32.Vec3
		for k, c := range face.Corners {
			p[k] = mgl32.Vec3(obj.Vertices[c.Vertex]).Sub(center)
		}

		var flat mgl32.Vec3
		needFlat := false
		for _, c := range face.Corners {
			if c.Normal < 0 {
				needFlat = true
			}
		}
		if needFlat {
			n := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
			if n.Len() < 1e-12 {
				continue
			}
			flat = n.Normalize()
		}

		color := mgl32.Vec3(formats.DefaultDiffuse)
		if m, ok := materials[face.Material]; ok {
			color = mgl32.Vec3(m.Diffuse)
		}

		for k, c := range face.Corners {
			key := vertexKey{vertex: c.Vertex, normal: c.Normal, material: face.Material}
			normal := flat
			if c.Normal >= 0 {
				normal = mgl32.Vec3(obj.Normals[c.Normal])
			} else {
				key.flat = flat
			}

			id, ok := ids[key]
			if !ok {
				id = uint32(len(mesh.Vertices))
				ids[key] = id
				mesh.Vertices = append(mesh.Vertices, Vertex{Position: p[k], Normal: normal, Color: color})
			}
			mesh.Indices = append(mesh.Indices, id)
		}
	}

	if len(mesh.Indices) == 0 {
		return nil
	}

	mesh.Bounds = boundsOf(mesh.Vertices)
	return mesh
}

func midpoint(vertices [][3]float32) mgl32.Vec3 {
	lo := mgl32.Vec3(vertices[0])
	hi := lo
	for _, v := range vertices[1:] {
		for k := range 3 {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	return lo.Add(hi).Mul(0.5)
}

func boundsOf(vertices []Vertex) Bounds {
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for k := range 3 {
			b.Min[k] = min(b.Min[k], v.Position[k])
			b.Max[k] = max(b.Max[k], v.Position[k])
		}
	}
	return b
}
