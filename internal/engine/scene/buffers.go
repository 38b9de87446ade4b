package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// gpuMesh is an indexed, interleaved float mesh on the GPU.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// uploadMesh uploads interleaved vertices. layout lists the component count
// of each attribute in location order, e.g. {3, 3} for position + normal.
// An empty mesh uploads nothing and draws nothing.
func uploadMesh(vertices []float32, indices []uint32, layout []int32) *gpuMesh {
	m := &gpuMesh{}
	if len(vertices) == 0 || len(indices) == 0 {
		return m
	}

	var stride int32
	for _, n := range layout {
		stride += n * 4
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	var offset uintptr
	for loc, n := range layout {
		gl.VertexAttribPointerWithOffset(uint32(loc), n, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(loc))
		offset += uintptr(n * 4)
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	m.indexCount = int32(len(indices))
	return m
}

func (m *gpuMesh) draw() {
	if m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (m *gpuMesh) destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	m.indexCount = 0
}
