package obj

import (
	"math"

	"Tracer3D/internal/math3d"
)

// UVMap binds a triangle's three vertices to texture coordinates on a
// shared Map. Only the x,y components of t1,t2,t3 are used.
type UVMap struct {
	Image      *Map
	T1, T2, T3 math3d.Vec3
}

// ColourAt samples the map at the pixel derived from barycentric (u,v):
// coord = t1 + (t2-t1)*u + (t3-t1)*v, with a vertical flip when mapping
// coord.y to a pixel row (OBJ's v=0 is the bottom row; images index rows
// from the top).
func (uv *UVMap) ColourAt(u, v float64) math3d.Vec3 {
	coord := uv.T1.Add(uv.T2.Sub(uv.T1).Scale(u)).Add(uv.T3.Sub(uv.T1).Scale(v))
	px := int(math.Floor(coord.X * float64(uv.Image.Width-1)))
	py := int(math.Floor((1 - coord.Y) * float64(uv.Image.Height-1)))
	return uv.Image.ColourAt(px, py)
}

// VertexNormals holds the optional per-vertex normals of a triangle.
type VertexNormals struct {
	N1, N2, N3 math3d.Vec3
}

// Triangle is an authored, mutable triangle: raw vertex positions plus
// optional vertex normals, a material, and an optional texture binding.
type Triangle struct {
	P1, P2, P3 math3d.Vec3
	Normals    *VertexNormals
	Material   Material
	UVMap      *UVMap
}

// TransformPositions applies m to the triangle's three vertex positions.
func (t *Triangle) TransformPositions(m math3d.Matrix4) {
	t.P1 = m.MultiplyPoint(t.P1)
	t.P2 = m.MultiplyPoint(t.P2)
	t.P3 = m.MultiplyPoint(t.P3)
}

// TransformNormals applies m to the triangle's vertex normals, if
// present, using the same matrix used for positions — per the compute
// pipeline's design, only rotations are ever passed here, so treating
// normals as directions (no translation component) is safe.
func (t *Triangle) TransformNormals(m math3d.Matrix4) {
	if t.Normals == nil {
		return
	}
	t.Normals.N1 = m.MultiplyVector(t.Normals.N1)
	t.Normals.N2 = m.MultiplyVector(t.Normals.N2)
	t.Normals.N3 = m.MultiplyVector(t.Normals.N3)
}

// compute turns this authored triangle into its immutable, render-ready
// form: edges and geometric normal precomputed.
func (t *Triangle) compute() ComputedTriangle {
	e1 := t.P2.Sub(t.P1)
	e2 := t.P3.Sub(t.P1)
	ct := ComputedTriangle{
		P1:              t.P1,
		E1:              e1,
		E2:              e2,
		GeometricNormal: e2.Cross(e1).Normalize(),
		Material:        t.Material,
		UVMap:           t.UVMap,
	}
	if t.Normals != nil {
		ct.Normals = t.Normals
	}
	return ct
}

// Mesh is an authored mesh: a triangle list plus a position/rotation/
// scale transform and a set of shared texture maps keyed by filename.
// Scale defaults to (1,1,1) when built via NewMesh; rotation components
// default to 0.
type Mesh struct {
	Triangles []Triangle
	Position  math3d.Vec3
	Scale     math3d.Vec3
	Rotation  math3d.Vec3
	Maps      map[string]*Map
}

// NewMesh returns an authored mesh with scale defaulted to (1,1,1).
// A Mesh literal that leaves Scale at its zero value is not scaled at
// all by Compute, which skips an all-zero scale.
func NewMesh() *Mesh {
	return &Mesh{
		Scale: math3d.V3(1, 1, 1),
		Maps:  make(map[string]*Map),
	}
}

// Compute applies this mesh's rotation, translation, and scale to a copy
// of every triangle, in that strict order, then precomputes each
// resulting ComputedTriangle. Any rotation component that is exactly
// zero is skipped; translation is skipped only if all three position
// components are zero; scale is skipped only if all three scale
// components are zero (the defensive fallback for hand-built meshes
// that leave Scale at its Go zero value instead of going through NewMesh).
func (m *Mesh) Compute() *ComputedMesh {
	// A shallow copy would share each triangle's *VertexNormals with the
	// authored mesh; since this mesh is re-computed on every render
	// call, mutating that shared pointer in place would rotate the
	// normals again on the next render. Clone it per triangle instead.
	triangles := make([]Triangle, len(m.Triangles))
	copy(triangles, m.Triangles)
	for i := range triangles {
		if triangles[i].Normals != nil {
			cloned := *triangles[i].Normals
			triangles[i].Normals = &cloned
		}
	}

	if m.Rotation.X != 0 {
		r := math3d.RotX(m.Rotation.X)
		applyToAll(triangles, r)
	}
	if m.Rotation.Y != 0 {
		r := math3d.RotY(m.Rotation.Y)
		applyToAll(triangles, r)
	}
	if m.Rotation.Z != 0 {
		r := math3d.RotZ(m.Rotation.Z)
		applyToAll(triangles, r)
	}
	if m.Position.X != 0 || m.Position.Y != 0 || m.Position.Z != 0 {
		tr := math3d.Translate(m.Position.X, m.Position.Y, m.Position.Z)
		for i := range triangles {
			triangles[i].TransformPositions(tr)
		}
	}
	if m.Scale.X != 0 || m.Scale.Y != 0 || m.Scale.Z != 0 {
		sc := math3d.Scale(m.Scale.X, m.Scale.Y, m.Scale.Z)
		for i := range triangles {
			triangles[i].TransformPositions(sc)
		}
	}

	computed := make([]ComputedTriangle, len(triangles))
	for i := range triangles {
		computed[i] = triangles[i].compute()
	}
	return &ComputedMesh{Triangles: computed}
}

func applyToAll(triangles []Triangle, m math3d.Matrix4) {
	for i := range triangles {
		triangles[i].TransformPositions(m)
		triangles[i].TransformNormals(m)
	}
}

// ComputedTriangle is the immutable, render-ready form of a Triangle:
// edges and geometric normal are derived invariants, precomputed once.
type ComputedTriangle struct {
	P1              math3d.Vec3
	E1, E2          math3d.Vec3
	GeometricNormal math3d.Vec3
	Normals         *VertexNormals
	Material        Material
	UVMap           *UVMap
}

// ComputedMesh is an immutable sequence of ComputedTriangle, safe to
// share by reference across worker goroutines without locking — nothing
// ever mutates it after Mesh.Compute returns it.
type ComputedMesh struct {
	Triangles []ComputedTriangle
}
