package renderer

import (
	"testing"

	"Tracer3D/internal/math3d"
)

func TestNewLightDefaultsToWhiteAndShadowing(t *testing.T) {
	l := NewLight(math3d.V3(1, 2, 3))
	if l.Intensity != math3d.V3(1, 1, 1) {
		t.Fatalf("expected default white intensity, got %+v", l.Intensity)
	}
	if !l.CastsShadows {
		t.Fatal("expected NewLight to cast shadows by default")
	}
}
