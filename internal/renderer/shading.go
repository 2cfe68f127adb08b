package renderer

import (
	"math"

	"Tracer3D/internal/math3d"
	"Tracer3D/internal/obj"
)

// Shade computes the color of the nearest hit under every light in the
// scene, combining per-light contributions by componentwise
// MULTIPLICATION rather than addition — a deliberate choice that
// darkens composites as more lights are added. A scene with zero
// lights has no "unlit" default: every pixel is black.
func Shade(ray Ray, hit Intersection, meshes []*obj.ComputedMesh, lights []Light) math3d.Vec3 {
	if len(lights) == 0 {
		return math3d.Zero3
	}

	tri := hit.Triangle(meshes)
	point := ray.PositionAt(hit.Time)
	normV := vertexNormal(tri, hit.U, hit.V)
	surfaceColour := surfaceColourAt(tri, hit.U, hit.V)
	overPoint := point.Sub(normV.Scale(MACHEPS))
	eyeV := ray.Direction.Negate()

	contribution := math3d.V3(1, 1, 1)
	for _, light := range lights {
		isShadowed := light.CastsShadows && shadowed(overPoint, light, meshes)
		contribution = contribution.Mul(lightContribution(light, tri.Material, surfaceColour, point, normV, eyeV, isShadowed))
	}
	return contribution
}

// vertexNormal interpolates the triangle's vertex normals at barycentric
// (u, v) using n2*u + n3*v + n1*(1-u-v) — note the index ordering: u
// weights n2 and v weights n3, which must be preserved exactly. Falls
// back to the precomputed geometric normal when the triangle has no
// vertex normals.
func vertexNormal(tri *obj.ComputedTriangle, u, v float64) math3d.Vec3 {
	if tri.Normals == nil {
		return tri.GeometricNormal
	}
	n := tri.Normals
	return n.N2.Scale(u).Add(n.N3.Scale(v)).Add(n.N1.Scale(1 - u - v))
}

// surfaceColourAt returns the triangle's UVMap sample at (u, v) if it
// has a texture binding, otherwise its material color.
func surfaceColourAt(tri *obj.ComputedTriangle, u, v float64) math3d.Vec3 {
	if tri.UVMap != nil {
		return tri.UVMap.ColourAt(u, v)
	}
	return tri.Material.Colour
}

func lightContribution(light Light, mat obj.Material, surfaceColour, point, normV, eyeV math3d.Vec3, isShadowed bool) math3d.Vec3 {
	effective := light.Intensity.Mul(surfaceColour)
	ambient := effective.Scale(mat.Ambient)

	lightV := point.Sub(light.Position).Normalize()
	ldotn := lightV.Dot(normV)

	var diffuse, specular math3d.Vec3
	if !isShadowed && ldotn >= 0 {
		diffuse = effective.Scale(mat.Diffuse * ldotn)

		reflectV := lightV.Sub(normV.Scale(2 * ldotn))
		rdote := reflectV.Dot(eyeV)
		if rdote > 0 {
			specular = light.Intensity.Scale(mat.Specular * math.Pow(rdote, mat.Shininess))
		}
	}

	return ambient.Add(diffuse).Add(specular)
}
