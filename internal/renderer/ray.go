package renderer

import "Tracer3D/internal/math3d"

// Ray is a world-space ray: an origin point and a unit-length direction.
type Ray struct {
	Origin    math3d.Vec3
	Direction math3d.Vec3
}

// PositionAt returns the point reached by travelling distance t along
// the ray.
func (r Ray) PositionAt(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
