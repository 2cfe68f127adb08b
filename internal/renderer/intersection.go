package renderer

import (
	"sort"

	"Tracer3D/internal/math3d"
	"Tracer3D/internal/obj"
)

// MACHEPS is the epsilon used both to reject near-parallel ray-plane
// intersections (Möller-Trumbore) and to bias shadow-ray origins off
// the surface (the "over point").
const MACHEPS = 1e-5

// Intersection records a ray-triangle hit. Triangle is referenced by
// (MeshIndex, TriangleIndex) rather than a borrowed pointer — Go has no
// lifetime types, so this pair stands in for the "borrowed, non-owning
// reference bounded by the ComputedMesh sequence" the design calls for.
type Intersection struct {
	Time          float64
	U, V          float64
	MeshIndex     int
	TriangleIndex int
}

// Triangle resolves an Intersection back to the ComputedTriangle it hit.
func (i Intersection) Triangle(meshes []*obj.ComputedMesh) *obj.ComputedTriangle {
	return &meshes[i.MeshIndex].Triangles[i.TriangleIndex]
}

// intersectTriangle is the Möller-Trumbore ray-triangle test. It returns
// ok=false for a miss: a ray parallel to the triangle's plane (|det| <
// MACHEPS), a hit outside the triangle's barycentric range, or a hit
// behind the ray's origin (t < 0).
func intersectTriangle(ray Ray, tri *obj.ComputedTriangle) (t, u, v float64, ok bool) {
	h := ray.Direction.Cross(tri.E2)
	det := tri.E1.Dot(h)
	if det > -MACHEPS && det < MACHEPS {
		return 0, 0, 0, false
	}
	f := 1 / det

	s := ray.Origin.Sub(tri.P1)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(tri.E1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = f * tri.E2.Dot(q)
	if t < 0 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// IntersectScene tests ray against every triangle of every mesh and
// returns all hits sorted ascending by t. Brute-force: no acceleration
// structure partitions the search.
func IntersectScene(ray Ray, meshes []*obj.ComputedMesh) []Intersection {
	var hits []Intersection
	for mi, mesh := range meshes {
		for ti := range mesh.Triangles {
			t, u, v, ok := intersectTriangle(ray, &mesh.Triangles[ti])
			if !ok {
				continue
			}
			hits = append(hits, Intersection{Time: t, U: u, V: v, MeshIndex: mi, TriangleIndex: ti})
		}
	}
	sort.Slice(hits, func(a, b int) bool {
		return hits[a].Time < hits[b].Time
	})
	return hits
}

// shadowed reports whether point is occluded from light by any
// triangle in meshes, biased by MACHEPS to avoid self-intersection.
func shadowed(point math3d.Vec3, light Light, meshes []*obj.ComputedMesh) bool {
	toLight := light.Position.Sub(point)
	distance := toLight.Magnitude()
	direction := toLight.Normalize()
	ray := Ray{Origin: point, Direction: direction}

	for _, mesh := range meshes {
		for ti := range mesh.Triangles {
			t, _, _, ok := intersectTriangle(ray, &mesh.Triangles[ti])
			if ok && t >= 0 && t < distance {
				return true
			}
		}
	}
	return false
}
