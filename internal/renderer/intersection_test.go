package renderer

import (
	"testing"

	"Tracer3D/internal/math3d"
	"Tracer3D/internal/obj"
)

func testTriangle() *obj.ComputedTriangle {
	p1 := math3d.V3(-1, -1, 0)
	p2 := math3d.V3(1, -1, 0)
	p3 := math3d.V3(0, 1, 0)
	e1 := p2.Sub(p1)
	e2 := p3.Sub(p1)
	return &obj.ComputedTriangle{
		P1:              p1,
		E1:              e1,
		E2:              e2,
		GeometricNormal: e2.Cross(e1).Normalize(),
		Material:        obj.DefaultMaterial(),
	}
}

func TestIntersectTriangleHitsCenter(t *testing.T) {
	tri := testTriangle()
	ray := Ray{Origin: math3d.V3(0, 0, -5), Direction: math3d.V3(0, 0, 1)}
	tVal, u, v, ok := intersectTriangle(ray, tri)
	if !ok {
		t.Fatal("expected a hit through the triangle's center")
	}
	if tVal <= 0 {
		t.Fatalf("expected positive t, got %v", tVal)
	}
	if u < 0 || v < 0 || u+v > 1 {
		t.Fatalf("expected valid barycentric coordinates, got u=%v v=%v", u, v)
	}
}

func TestIntersectTriangleMissesParallelRay(t *testing.T) {
	tri := testTriangle()
	// A ray travelling parallel to the triangle's plane (along X) never
	// crosses it given this origin.
	ray := Ray{Origin: math3d.V3(-5, 0, 5), Direction: math3d.V3(1, 0, 0)}
	_, _, _, ok := intersectTriangle(ray, tri)
	if ok {
		t.Fatal("expected a miss for a ray parallel to the triangle plane")
	}
}

func TestIntersectTriangleRejectsNegativeT(t *testing.T) {
	tri := testTriangle()
	ray := Ray{Origin: math3d.V3(0, 0, -5), Direction: math3d.V3(0, 0, -1)}
	_, _, _, ok := intersectTriangle(ray, tri)
	if ok {
		t.Fatal("expected reversing the ray direction to produce a miss (t < 0)")
	}
}

func TestIntersectSceneSortsAscendingByTime(t *testing.T) {
	near := &obj.ComputedMesh{Triangles: []obj.ComputedTriangle{*testTriangle()}}
	far := &obj.ComputedMesh{Triangles: []obj.ComputedTriangle{*testTriangle()}}
	// shift far triangle's plane away from the ray origin
	for i := range far.Triangles {
		far.Triangles[i].P1 = far.Triangles[i].P1.Add(math3d.V3(0, 0, 10))
	}

	ray := Ray{Origin: math3d.V3(0, 0, -5), Direction: math3d.V3(0, 0, 1)}
	hits := IntersectScene(ray, []*obj.ComputedMesh{far, near})
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Time > hits[1].Time {
		t.Fatalf("expected hits sorted ascending by time, got %v then %v", hits[0].Time, hits[1].Time)
	}
}
