package renderer

import "Tracer3D/internal/math3d"

// Light is a point light: a world-space position, a per-channel
// intensity in [0,1] (defaulting to white), and whether it participates
// in shadow testing.
type Light struct {
	Position     math3d.Vec3
	Intensity    math3d.Vec3
	CastsShadows bool
}

// NewLight builds a white point light at position that casts shadows.
func NewLight(position math3d.Vec3) Light {
	return Light{
		Position:     position,
		Intensity:    math3d.V3(1, 1, 1),
		CastsShadows: true,
	}
}
