// Package viewer implements the interactive terrain viewer: window, main
// loop, camera controls and config reload.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/assets"
	"github.com/Faultbox/terrainview/internal/config"
	"github.com/Faultbox/terrainview/internal/engine/camera"
	"github.com/Faultbox/terrainview/internal/engine/debug"
	"github.com/Faultbox/terrainview/internal/engine/input"
	"github.com/Faultbox/terrainview/internal/engine/lighting"
	"github.com/Faultbox/terrainview/internal/engine/renderer"
	"github.com/Faultbox/terrainview/internal/engine/scene"
	"github.com/Faultbox/terrainview/internal/engine/window"
	"github.com/Faultbox/terrainview/internal/logger"
)

// Title is the window title prefix.
const Title = "terrainview"

// Loader produces a fresh config snapshot for a reload.
type Loader func() (*config.Config, error)

// App is the viewer instance.
type App struct {
	cfg    *config.Config
	reload Loader
	log    *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	files    *assets.Manager
	shots    *debug.ScreenshotCapture

	camera *camera.FlyCamera
	world  *World
	scene  *scene.Scene
	light  lighting.Environment

	mouseX, mouseY   float32 // last pointer position, normalized
	captureRequested bool
	running          bool
}

// New creates the window and GL context and loads the world described by cfg.
// reload is called when the user asks to reload the configuration.
func New(cfg *config.Config, reload Loader) (*App, error) {
	a := &App{
		cfg:    cfg,
		reload: reload,
		log:    logger.Named("viewer"),
		files:  assets.NewManager(assetRoots(cfg)...),
		shots:  debug.NewScreenshotCapture(cfg.Screenshots.Dir, "terrain"),
		scene:  scene.New(),
		light:  lighting.FromConfig(cfg.Lighting),
	}
	world, err := LoadWorld(cfg, a.files)
	if err != nil {
		return nil, err
	}
	a.world = world

	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := a.upload(world); err != nil {
		a.Close()
		return nil, err
	}

	a.input = input.New()
	a.camera = newCamera(cfg.Camera)

	a.log.Info("viewer initialized")
	return a, nil
}

// assetRoots lists the asset search directories for cfg: the working
// directory, then the directory of the config file that was loaded.
func assetRoots(cfg *config.Config) []string {
	roots := []string{"."}
	if cfg.Source != "" {
		roots = append(roots, filepath.Dir(cfg.Source))
	}
	return roots
}

func newCamera(c config.CameraConfig) *camera.FlyCamera {
	cam := camera.NewFlyCamera(mgl32.Vec3(c.Position))
	cam.FOV = c.FOV
	cam.Near = c.Near
	cam.Far = c.Far
	return cam
}

// upload replaces the scene with GPU copies of world.
func (a *App) upload(world *World) error {
	next := scene.New()

	tr, err := scene.NewTerrainRenderer(world.Terrain.Mesh)
	if err != nil {
		return err
	}
	next.Add(tr)

	if world.Landmark != nil {
		mr, err := scene.NewModelRenderer(world.Landmark)
		if err != nil {
			next.Clear()
			return err
		}
		mr.SetOffset(world.LandmarkPos)
		mr.SetScale(world.LandmarkScale)
		next.Add(mr)
	}

	a.scene.Clear()
	a.scene = next
	return nil
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	lastTitle := time.Time{}
	frameCount := 0
	fpsTimer := time.Now()
	fps := 0

	a.log.Info("starting main loop")

	for a.running {
		if a.input.Update() {
			break
		}
		a.handleEvents()
		a.update()
		a.render()

		if a.captureRequested {
			a.captureRequested = false
			a.screenshot()
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			fps = frameCount
			a.log.Debug("fps", zap.Int("count", fps))
			frameCount = 0
			fpsTimer = time.Now()
		}
		if time.Since(lastTitle) >= 100*time.Millisecond {
			a.window.SetTitle(windowTitle(a.camera.Position, fps))
			lastTitle = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	width, height := a.window.GetSize()

	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.renderer.Resize(a.window.DrawableSize())

		case input.EventMouseDown:
			a.mouseX, a.mouseY = input.Normalize(event.MouseX, event.MouseY, width, height)

		case input.EventMouseMove:
			x, y := input.Normalize(event.MouseX, event.MouseY, width, height)
			if a.input.Dragging() {
				factor := camera.DragFactor(a.cfg.Camera.DragFactor, width, height)
				a.camera.Drag(x-a.mouseX, y-a.mouseY, factor)
			}
			a.mouseX, a.mouseY = x, y

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_R:
				a.Reload()
			case sdl.SCANCODE_F12:
				a.captureRequested = true
			}
		}
	}
}

// update moves the camera while movement keys are held.
func (a *App) update() {
	in := a.input
	a.camera.Move(
		in.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
		in.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A),
		in.Axis(sdl.SCANCODE_Q, sdl.SCANCODE_Z),
		a.cfg.Camera.Speed,
	)
}

func (a *App) render() {
	a.renderer.Begin()
	a.scene.Render(scene.Frame{
		ViewProj: a.camera.ViewProjection(a.renderer.AspectRatio()),
		Camera:   a.camera.Position,
		Lighting: a.light,
	})
}

// Reload re-reads the configuration, heightmap and model. On any failure
// the current world stays on screen. The camera keeps its position.
func (a *App) Reload() {
	a.log.Info("reloading configuration")

	cfg, err := a.reload()
	if err != nil {
		a.log.Warn("reload failed, keeping current world", zap.Error(err))
		return
	}
	if cfg.Source != "" && cfg.Source != a.cfg.Source {
		a.files.AddRoot(filepath.Dir(cfg.Source))
	}
	world, err := LoadWorld(cfg, a.files)
	if err != nil {
		a.log.Warn("reload failed, keeping current world", zap.Error(err))
		return
	}
	if err := a.upload(world); err != nil {
		a.log.Warn("reload failed, keeping current world", zap.Error(err))
		return
	}

	a.cfg = cfg
	a.world = world
	a.light = lighting.FromConfig(cfg.Lighting)
	a.shots.SetOutputDir(cfg.Screenshots.Dir)
	a.camera.FOV, a.camera.Near, a.camera.Far = cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU and window resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.scene != nil {
		a.scene.Clear()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	a.files.Close()
}

func windowTitle(pos mgl32.Vec3, fps int) string {
	return fmt.Sprintf("%s  x=%.2f y=%.2f z=%.2f  %d fps", Title, pos.X(), pos.Y(), pos.Z(), fps)
}
