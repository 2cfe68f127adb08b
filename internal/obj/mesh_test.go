package obj

import (
	"math"
	"testing"

	"Tracer3D/internal/math3d"
)

func vecAlmostEqual(a, b math3d.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestComputeAppliesTranslationAndScale(t *testing.T) {
	m := NewMesh()
	m.Triangles = []Triangle{{
		P1: math3d.V3(-1, -1, 0),
		P2: math3d.V3(1, -1, 0),
		P3: math3d.V3(0, 1, 0),
		Material: DefaultMaterial(),
	}}
	m.Position = math3d.V3(0, 0, 5)
	m.Scale = math3d.V3(2, 2, 2)

	computed := m.Compute()
	tri := computed.Triangles[0]
	// Translate is applied before scale, so a point at (-1,-1,0)
	// becomes (-1,-1,5) then (-2,-2,10).
	want := math3d.V3(-2, -2, 10)
	if !vecAlmostEqual(tri.P1, want, 1e-9) {
		t.Fatalf("expected %+v, got %+v", want, tri.P1)
	}
}

func TestComputeSkipsZeroScale(t *testing.T) {
	m := &Mesh{
		Triangles: []Triangle{{
			P1: math3d.V3(1, 2, 3), P2: math3d.V3(4, 5, 6), P3: math3d.V3(7, 8, 9),
			Material: DefaultMaterial(),
		}},
		Scale: math3d.Zero3,
	}
	computed := m.Compute()
	if !vecAlmostEqual(computed.Triangles[0].P1, math3d.V3(1, 2, 3), 1e-9) {
		t.Fatalf("expected all-zero scale to be skipped, got %+v", computed.Triangles[0].P1)
	}
}

func TestComputedTriangleDerivesGeometricNormal(t *testing.T) {
	tri := Triangle{
		P1: math3d.V3(-1, -1, 0),
		P2: math3d.V3(1, -1, 0),
		P3: math3d.V3(0, 1, 0),
		Material: DefaultMaterial(),
	}
	ct := tri.compute()
	want := tri.P3.Sub(tri.P1).Cross(tri.P2.Sub(tri.P1)).Normalize()
	if !vecAlmostEqual(ct.GeometricNormal, want, 1e-9) {
		t.Fatalf("expected geometric normal %+v, got %+v", want, ct.GeometricNormal)
	}
	if !vecAlmostEqual(ct.E1, math3d.V3(2, 0, 0), 1e-9) {
		t.Fatalf("expected e1 = p2-p1, got %+v", ct.E1)
	}
}

func TestNewMeshDefaultsScaleToOne(t *testing.T) {
	m := NewMesh()
	if m.Scale != math3d.V3(1, 1, 1) {
		t.Fatalf("expected default scale (1,1,1), got %+v", m.Scale)
	}
}
