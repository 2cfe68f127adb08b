package renderer

import (
	"math"
	"testing"

	"Tracer3D/internal/math3d"
)

func almostEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestNewCameraDefaultsUp(t *testing.T) {
	cam := NewCamera(800, 600, math.Pi/3)
	if cam.Up != math3d.V3(0, 1, 0) {
		t.Fatalf("expected default up (0,1,0), got %+v", cam.Up)
	}
}

func TestRayForPixelCenterPointsStraightAhead(t *testing.T) {
	cam := NewCamera(201, 101, math.Pi/2)
	cam.From = math3d.Zero3
	cam.To = math3d.V3(0, 0, -1)

	r := cam.RayForPixel(100, 50)
	if !almostEqual(r.Origin.X, 0, 1e-9) || !almostEqual(r.Origin.Y, 0, 1e-9) || !almostEqual(r.Origin.Z, 0, 1e-9) {
		t.Fatalf("expected origin at (0,0,0), got %+v", r.Origin)
	}
	if !almostEqual(r.Direction.X, 0, 1e-9) || !almostEqual(r.Direction.Y, 0, 1e-9) || !almostEqual(r.Direction.Z, -1, 1e-9) {
		t.Fatalf("expected direction (0,0,-1), got %+v", r.Direction)
	}
}

func TestRayForPixelCornerOfCanvas(t *testing.T) {
	cam := NewCamera(201, 101, math.Pi/2)
	cam.From = math3d.Zero3
	cam.To = math3d.V3(0, 0, -1)

	r := cam.RayForPixel(0, 0)
	if !almostEqual(r.Origin.X, 0, 1e-9) {
		t.Fatalf("expected origin at (0,0,0), got %+v", r.Origin)
	}
	if r.Direction.X <= 0 || r.Direction.Y <= 0 {
		t.Fatalf("expected the top-left ray to point up and to the left, got %+v", r.Direction)
	}
}

func TestRayForPixelAspectBelowOne(t *testing.T) {
	// A tall, narrow canvas (aspect < 1) should still produce a unit
	// direction vector through the transform's half_width/half_height
	// branch for aspect < 1.
	cam := NewCamera(100, 200, math.Pi/2)
	cam.From = math3d.Zero3
	cam.To = math3d.V3(0, 0, -1)

	r := cam.RayForPixel(50, 100)
	if !almostEqual(r.Direction.Magnitude(), 1, 1e-9) {
		t.Fatalf("expected unit-length direction, got magnitude %v", r.Direction.Magnitude())
	}
}
