package renderer

import (
	"math"

	"Tracer3D/internal/math3d"
)

// Camera describes a pinhole camera: output resolution, field of view in
// radians (spanning the width when width >= height, otherwise the
// height), and a from/to/up view basis. Up defaults to
// (0,1,0) when built via NewCamera.
type Camera struct {
	Width, Height int
	FOV           float64
	From, To, Up  math3d.Vec3

	// cached, recomputed lazily whenever dirty, matching the teacher's
	// camera: view/projection state is only rebuilt when a parameter
	// actually changes rather than on every ray. Not safe for concurrent
	// use while dirty — callers that render from multiple goroutines
	// must call ensureComputed (or RayForPixel once) synchronously first
	// so every worker sees an already-clean camera.
	dirty      bool
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
	transform  math3d.Matrix4
}

// NewCamera builds a camera with the given resolution and field of view,
// up defaulted to (0,1,0).
func NewCamera(width, height int, fov float64) *Camera {
	return &Camera{
		Width:  width,
		Height: height,
		FOV:    fov,
		Up:     math3d.V3(0, 1, 0),
		dirty:  true,
	}
}

// MarkDirty forces the next RayForPixel call to recompute the cached
// view transform. Call this after mutating From/To/Up/FOV/Width/Height
// directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

func (c *Camera) recompute() {
	halfView := math.Tan(c.FOV / 2)
	aspect := float64(c.Width) / float64(c.Height)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = (c.halfWidth * 2) / float64(c.Width)
	c.transform = math3d.ViewTransform(c.To, c.From, c.Up)
	c.dirty = false
}

func (c *Camera) ensureComputed() {
	if c.dirty {
		c.recompute()
	}
}

// RayForPixel returns the world-space ray passing through the center of
// pixel (x, y).
func (c *Camera) RayForPixel(x, y int) Ray {
	c.ensureComputed()
	worldX := c.halfWidth - (float64(x)+0.5)*c.pixelSize
	worldY := c.halfHeight - (float64(y)+0.5)*c.pixelSize

	pixel := c.transform.MultiplyPoint(math3d.V3(worldX, worldY, -1))
	origin := c.transform.MultiplyPoint(math3d.Zero3)
	direction := pixel.Sub(origin).Normalize()

	return Ray{Origin: origin, Direction: direction}
}
