package renderer

// rayIterator is a stateful, pull-based producer of camera rays over a
// horizontal band [startY, endY). It scans left-to-right, then
// top-to-bottom, so pixels are emitted in strict row-major order within
// the band — the contract a worker's shading step composes against:
// single producer, no buffering beyond one ray at a time.
type rayIterator struct {
	camera       *Camera
	x, y         int
	startY, endY int
}

func newRayIterator(camera *Camera, startY, endY int) *rayIterator {
	return &rayIterator{camera: camera, x: 0, y: startY, startY: startY, endY: endY}
}

// next returns the next ray and the pixel coordinates it was generated
// for, or ok=false once the band is exhausted.
func (it *rayIterator) next() (ray Ray, x, y int, ok bool) {
	if it.y >= it.endY {
		return Ray{}, 0, 0, false
	}
	x, y = it.x, it.y
	ray = it.camera.RayForPixel(x, y)

	it.x++
	if it.x >= it.camera.Width {
		it.x = 0
		it.y++
	}
	return ray, x, y, true
}
