package renderer

import (
	"testing"

	"Tracer3D/internal/math3d"
)

func TestRayPositionAt(t *testing.T) {
	r := Ray{Origin: math3d.V3(2, 3, 4), Direction: math3d.V3(1, 0, 0)}
	p := r.PositionAt(3)
	if p != math3d.V3(5, 3, 4) {
		t.Fatalf("expected (5,3,4), got %+v", p)
	}
}
