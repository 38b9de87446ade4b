// Package lighting holds the light parameters shared by the scene shaders.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/config"
)

// Environment is the sun and water lighting applied to the ground.
type Environment struct {
	Color        mgl32.Vec4 // Base ground color
	SunDirection mgl32.Vec3 // Unit vector pointing towards the sun
	Ambient      float32
	Diffuse      float32

	WaterDiffuse  float32
	WaterSpecular float32
	WaterLevel    float32 // World Y below which the ground is tinted as water
	WaterColor    mgl32.Vec4
}

// FromConfig builds an Environment from config values.
func FromConfig(c config.LightingConfig) Environment {
	return Environment{
		Color:         mgl32.Vec4(c.Color),
		SunDirection:  SunDirection(mgl32.Vec3(c.SunDirection)),
		Ambient:       c.Ambient,
		Diffuse:       c.Diffuse,
		WaterDiffuse:  c.WaterDiffuse,
		WaterSpecular: c.WaterSpecular,
		WaterLevel:    c.WaterLevel,
		WaterColor:    mgl32.Vec4(c.WaterColor),
	}
}

// SunDirection normalizes dir. A zero vector means a sun straight overhead.
func SunDirection(dir mgl32.Vec3) mgl32.Vec3 {
	if dir.Len() < 1e-6 {
		return mgl32.Vec3{0, 1, 0}
	}
	return dir.Normalize()
}
