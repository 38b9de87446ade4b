package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/engine/model"
	"github.com/Faultbox/terrainview/internal/engine/scene/shaders"
	"github.com/Faultbox/terrainview/internal/engine/shader"
)

// ModelRenderer draws a vertex-colored model placed by offset and uniform scale.
type ModelRenderer struct {
	program *shader.Program
	mesh    *gpuMesh

	placement
}

// placement is a translation plus uniform scale.
type placement struct {
	offset mgl32.Vec3
	scale  float32
}

// SetOffset moves the model origin to offset.
func (p *placement) SetOffset(offset mgl32.Vec3) {
	p.offset = offset
}

// SetScale sets the uniform scale factor.
func (p *placement) SetScale(scale float32) {
	p.scale = scale
}

// Offset returns the model origin in world space.
func (p *placement) Offset() mgl32.Vec3 {
	return p.offset
}

// ModelMatrix returns translate(offset) × scale.
func (p *placement) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(p.offset[0], p.offset[1], p.offset[2]).
		Mul4(mgl32.Scale3D(p.scale, p.scale, p.scale))
}

// NewModelRenderer compiles the model shader and uploads mesh.
// Requires a current GL context.
func NewModelRenderer(mesh *model.Mesh) (*ModelRenderer, error) {
	program, err := shader.NewProgram(shaders.ModelVertexShader, shaders.ModelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}

	return &ModelRenderer{
		program:   program,
		mesh:      uploadMesh(mesh.Interleaved(), mesh.Indices, []int32{3, 3, 3}),
		placement: placement{scale: 1},
	}, nil
}

// Render draws the model.
func (mr *ModelRenderer) Render(frame Frame) {
	p := mr.program
	m := mr.ModelMatrix()

	p.Use()
	p.SetMat4("u_mvp", frame.mvp(m))
	p.SetMat4("u_model", m)
	p.SetVec3("u_sun_direction", frame.Lighting.SunDirection)
	p.SetFloat("u_light_ambient", frame.Lighting.Ambient)
	p.SetFloat("u_light_diffuse", frame.Lighting.Diffuse)

	mr.mesh.draw()
}

// Destroy releases all resources.
func (mr *ModelRenderer) Destroy() {
	mr.mesh.destroy()
	mr.program.Delete()
}
