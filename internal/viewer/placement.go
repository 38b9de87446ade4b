package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/engine/terrain"
)

// PlaceOnTerrain returns the world position of an object standing on the
// terrain at (x, z), raised by yAdjust.
func PlaceOnTerrain(t *terrain.Terrain, x, z, yAdjust float32) mgl32.Vec3 {
	return mgl32.Vec3{x, t.HeightAt(x, z) + yAdjust, z}
}
