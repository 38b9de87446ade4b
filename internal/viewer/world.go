package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/assets"
	"github.com/Faultbox/terrainview/internal/config"
	"github.com/Faultbox/terrainview/internal/engine/model"
	"github.com/Faultbox/terrainview/internal/engine/terrain"
	"github.com/Faultbox/terrainview/internal/engine/texture"
	"github.com/Faultbox/terrainview/internal/logger"
)

// World is the CPU-side content of the viewer: the terrain and the
// landmark model placed on it. A reload builds a new World.
type World struct {
	Terrain *terrain.Terrain

	Landmark      *model.Mesh // nil when no model is configured
	LandmarkPos   mgl32.Vec3
	LandmarkScale float32
}

// LoadWorld reads the heightmap and landmark model named by cfg.
func LoadWorld(cfg *config.Config, files *assets.Manager) (*World, error) {
	field, err := LoadHeightField(files, cfg.Terrain.Heightmap, cfg.Terrain.FlipVertical)
	if err != nil {
		return nil, err
	}

	terr, err := terrain.New(field, terrain.Scale{
		Horizontal: cfg.Terrain.HorizontalScale,
		Vertical:   cfg.Terrain.VerticalScale,
	})
	if err != nil {
		return nil, fmt.Errorf("building terrain: %w", err)
	}
	logger.Info("terrain built", zap.Stringer("terrain", terr))

	w := &World{Terrain: terr}

	lh := cfg.Lighthouse
	if lh.Model != "" {
		w.Landmark, err = model.Load(lh.Model, files.Load)
		if err != nil {
			return nil, fmt.Errorf("loading model: %w", err)
		}
		w.LandmarkPos = PlaceOnTerrain(terr, lh.X, lh.Z, lh.YAdjust)
		w.LandmarkScale = lh.Scale
		logger.Info("model placed",
			zap.String("model", lh.Model),
			zap.Float32("x", w.LandmarkPos.X()),
			zap.Float32("y", w.LandmarkPos.Y()),
			zap.Float32("z", w.LandmarkPos.Z()),
			zap.Int("vertices", len(w.Landmark.Vertices)),
		)
	}

	return w, nil
}

// LoadHeightField decodes a heightmap image into a height field.
func LoadHeightField(files *assets.Manager, path string, flipY bool) (*terrain.HeightField, error) {
	data, err := files.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading heightmap: %w", err)
	}
	img, err := texture.Decode(data, path)
	if err != nil {
		return nil, err
	}
	field, err := terrain.FromImage(texture.ToGray16(img), flipY)
	if err != nil {
		return nil, fmt.Errorf("heightmap %s: %w", path, err)
	}
	return field, nil
}
