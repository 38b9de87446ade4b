package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/engine/scene/shaders"
	"github.com/Faultbox/terrainview/internal/engine/shader"
	"github.com/Faultbox/terrainview/internal/engine/terrain"
)

// TerrainRenderer draws a height-field mesh with sun and water lighting.
type TerrainRenderer struct {
	program *shader.Program
	mesh    *gpuMesh
}

// NewTerrainRenderer compiles the ground shader and uploads mesh.
// Requires a current GL context.
func NewTerrainRenderer(mesh *terrain.Mesh) (*TerrainRenderer, error) {
	program, err := shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	return &TerrainRenderer{
		program: program,
		mesh:    uploadMesh(mesh.Interleaved(), mesh.Indices, []int32{3, 3}),
	}, nil
}

// ModelMatrix returns identity: terrain vertices are already in world space.
func (tr *TerrainRenderer) ModelMatrix() mgl32.Mat4 {
	return mgl32.Ident4()
}

// Render draws the terrain.
func (tr *TerrainRenderer) Render(frame Frame) {
	p := tr.program
	model := tr.ModelMatrix()
	light := frame.Lighting

	p.Use()
	p.SetMat4("u_mvp", frame.mvp(model))
	p.SetMat4("u_model", model)
	p.SetVec4("u_color", light.Color)
	p.SetVec3("u_sun_direction", light.SunDirection)
	p.SetFloat("u_light_ambient", light.Ambient)
	p.SetFloat("u_light_diffuse", light.Diffuse)
	p.SetFloat("u_light_wat_diff", light.WaterDiffuse)
	p.SetFloat("u_light_wat_spec", light.WaterSpecular)
	p.SetVec3("u_camera", frame.Camera)
	p.SetFloat("u_water_level", light.WaterLevel)
	p.SetVec4("u_water_color", light.WaterColor)

	tr.mesh.draw()
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.mesh.destroy()
	tr.program.Delete()
}
