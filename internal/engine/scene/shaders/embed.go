// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for the height-field ground.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader lights the ground and tints it below the water level.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// ModelVertexShader is the vertex shader for vertex-colored models.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader is the fragment shader for vertex-colored models.
//
//go:embed model.frag
var ModelFragmentShader string
