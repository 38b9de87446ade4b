package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

// near compares component-wise with an absolute tolerance. mgl32's
// ApproxEqualThreshold squares the tolerance when one side is zero.
func near(got, want mgl32.Vec3, tol float64) bool {
	for k := range 3 {
		if math.Abs(float64(got[k]-want[k])) > tol {
			return false
		}
	}
	return true
}

func TestFlyCamera_DefaultOrientation(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{1, 2, 3})

	if f := c.Forward(); !near(f, mgl32.Vec3{0, 0, -1}, eps) {
		t.Errorf("expected forward (0,0,-1), got %v", f)
	}
	if u := c.Up(); !near(u, mgl32.Vec3{0, 1, 0}, eps) {
		t.Errorf("expected up (0,1,0), got %v", u)
	}
	if r := c.Right(); !near(r, mgl32.Vec3{1, 0, 0}, eps) {
		t.Errorf("expected right (1,0,0), got %v", r)
	}
}

func TestFlyCamera_BasisIsOrthonormal(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	angles := [][2]float32{{0.3, 0.2}, {-2.1, -0.9}, {4, 1.0}, {0, -1.0}}

	for _, a := range angles {
		c.AngXZ, c.AngY = a[0], a[1]
		f, u, r := c.Forward(), c.Up(), c.Right()

		for name, v := range map[string]mgl32.Vec3{"forward": f, "up": u, "right": r} {
			if l := v.Len(); l < 1-eps || l > 1+eps {
				t.Errorf("angles %v: %s not unit length (%f)", a, name, l)
			}
		}
		if d := f.Dot(u); d > eps || d < -eps {
			t.Errorf("angles %v: forward·up = %f", a, d)
		}
		if d := f.Dot(r); d > eps || d < -eps {
			t.Errorf("angles %v: forward·right = %f", a, d)
		}
		if u.Y() <= 0 {
			t.Errorf("angles %v: up %v points down", a, u)
		}
	}
}

func TestFlyCamera_DragClampsPitch(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})

	c.Drag(0, 10, 1)
	if c.AngY != MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", float32(MaxPitch), c.AngY)
	}
	c.Drag(0, -100, 1)
	if c.AngY != -MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", float32(-MaxPitch), c.AngY)
	}
}

func TestFlyCamera_DragYaw(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	c.Drag(0.25, 0, 2)

	if c.AngXZ != -0.5 {
		t.Errorf("expected yaw -0.5, got %f", c.AngXZ)
	}
	// Turning with negative yaw looks toward +X.
	if f := c.Forward(); f.X() <= 0 {
		t.Errorf("expected forward to turn toward +X, got %v", f)
	}
}

func TestFlyCamera_Move(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{0, 100, 0})

	c.Move(1, 0, 0, 40)
	if !near(c.Position, mgl32.Vec3{0, 100, -40}, 1e-3) {
		t.Errorf("after forward: %v", c.Position)
	}
	c.Move(0, -1, 0, 40)
	if !near(c.Position, mgl32.Vec3{-40, 100, -40}, 1e-3) {
		t.Errorf("after left: %v", c.Position)
	}
	c.Move(0, 0, 1, 10)
	if !near(c.Position, mgl32.Vec3{-40, 110, -40}, 1e-3) {
		t.Errorf("after up: %v", c.Position)
	}
}

func TestFlyCamera_ViewMatrix(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{5, 6, 7})
	c.AngXZ, c.AngY = 0.7, -0.3

	view := c.ViewMatrix()

	// The camera position maps to the eye-space origin.
	if p := mgl32.TransformCoordinate(c.Position, view); !near(p, mgl32.Vec3{}, 1e-4) {
		t.Errorf("expected camera at origin in eye space, got %v", p)
	}
	// A point ahead lies on -Z in eye space.
	ahead := c.Position.Add(c.Forward().Mul(10))
	if p := mgl32.TransformCoordinate(ahead, view); !near(p, mgl32.Vec3{0, 0, -10}, 1e-3) {
		t.Errorf("expected point ahead at (0,0,-10), got %v", p)
	}
}

func TestDragFactor(t *testing.T) {
	if got := DragFactor(2, 1280, 1000); got != 2 {
		t.Errorf("expected 2, got %f", got)
	}
	if got := DragFactor(2, 500, 800); got != 4 {
		t.Errorf("expected 4, got %f", got)
	}
	if got := DragFactor(2, 0, 0); got != 2000 {
		t.Errorf("expected 2000 for empty window, got %f", got)
	}
}
