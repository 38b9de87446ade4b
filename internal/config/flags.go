package config

import "flag"

// Command-line overrides. Zero values mean "not set".
var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagHeightmap  = flag.String("heightmap", "", "Heightmap image (png, tiff, bmp, tga)")
	flagHScale     = flag.Float64("hscale", 0, "Horizontal terrain scale (world units per sample)")
	flagVScale     = flag.Float64("vscale", 0, "Vertical terrain scale (world units per height unit)")
	flagModel      = flag.String("model", "", "Landmark model (.obj)")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the --config value, empty when not given.
func ConfigPath() string {
	return *flagConfig
}

func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}

	if *flagHeightmap != "" {
		cfg.Terrain.Heightmap = *flagHeightmap
	}
	if *flagHScale > 0 {
		cfg.Terrain.HorizontalScale = float32(*flagHScale)
	}
	if *flagVScale > 0 {
		cfg.Terrain.VerticalScale = float32(*flagVScale)
	}
	if *flagModel != "" {
		cfg.Lighthouse.Model = *flagModel
	}

	switch {
	case *flagFullscreen:
		cfg.Graphics.Fullscreen = true
	case *flagWindowed:
		cfg.Graphics.Fullscreen = false
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
