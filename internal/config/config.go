// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrMissingScale is returned when a terrain scale is not set to a positive value.
var ErrMissingScale = errors.New("terrain scale must be set and positive")

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Terrain     TerrainConfig     `yaml:"terrain"`
	Lighthouse  LighthouseConfig  `yaml:"lighthouse"`
	Camera      CameraConfig      `yaml:"camera"`
	Lighting    LightingConfig    `yaml:"lighting"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
	Logging     LoggingConfig     `yaml:"logging"`

	// Source is the file the config was read from, empty for pure defaults.
	// Relative asset paths resolve against its directory.
	Source string `yaml:"-"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// TerrainConfig describes the heightmap and how it is scaled into world units.
// The scales have no defaults.
type TerrainConfig struct {
	Heightmap       string  `yaml:"heightmap"`
	HorizontalScale float32 `yaml:"horizontal_scale"`
	VerticalScale   float32 `yaml:"vertical_scale"`
	FlipVertical    bool    `yaml:"flip_vertical"` // image rows bottom-up
}

// LighthouseConfig places the landmark model on the terrain.
type LighthouseConfig struct {
	Model   string  `yaml:"model"` // empty disables the model
	X       float32 `yaml:"x"`
	Z       float32 `yaml:"z"`
	YAdjust float32 `yaml:"y_adjust"`
	Scale   float32 `yaml:"scale"`
}

// CameraConfig holds the initial camera and projection settings.
type CameraConfig struct {
	Position   [3]float32 `yaml:"position"`
	Speed      float32    `yaml:"speed"` // world units per frame
	FOV        float32    `yaml:"fov"`   // degrees
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	DragFactor float32    `yaml:"drag_factor"` // scaled by 1000/min(width, height)
}

// LightingConfig holds the ground shader parameters.
type LightingConfig struct {
	Color         [4]float32 `yaml:"color"`
	SunDirection  [3]float32 `yaml:"sun_direction"`
	Ambient       float32    `yaml:"ambient"`
	Diffuse       float32    `yaml:"diffuse"`
	WaterDiffuse  float32    `yaml:"water_diffuse"`
	WaterSpecular float32    `yaml:"water_specular"`
	WaterLevel    float32    `yaml:"water_level"`
	WaterColor    [4]float32 `yaml:"water_color"`
}

// ScreenshotsConfig holds screenshot output settings.
type ScreenshotsConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
// Terrain scales are left at zero and must come from a file or flags.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Terrain: TerrainConfig{
			Heightmap:    "heightmap.png",
			FlipVertical: true,
		},
		Lighthouse: LighthouseConfig{
			Model: "lighthouse/lighthouse.obj",
			Scale: 1,
		},
		Camera: CameraConfig{
			Position:   [3]float32{0, 500, 0},
			Speed:      40,
			FOV:        70,
			Near:       10,
			Far:        100000,
			DragFactor: 2,
		},
		Lighting: LightingConfig{
			Color:         [4]float32{0.0, 0.8, 0.1, 1.0},
			SunDirection:  [3]float32{0.1, 0.8, 0.1},
			Ambient:       0.2,
			Diffuse:       0.8,
			WaterDiffuse:  0.6,
			WaterSpecular: 0.4,
			WaterLevel:    45,
			WaterColor:    [4]float32{0.3, 0.3, 1.0, 1.0},
		},
		Screenshots: ScreenshotsConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	if !(c.Terrain.HorizontalScale > 0) {
		return fmt.Errorf("%w: terrain.horizontal_scale = %g", ErrMissingScale, c.Terrain.HorizontalScale)
	}
	if !(c.Terrain.VerticalScale > 0) {
		return fmt.Errorf("%w: terrain.vertical_scale = %g", ErrMissingScale, c.Terrain.VerticalScale)
	}
	if c.Terrain.Heightmap == "" {
		return errors.New("terrain.heightmap is not set")
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if !(c.Camera.Near > 0) || !(c.Camera.Far > c.Camera.Near) {
		return fmt.Errorf("invalid clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	return nil
}
