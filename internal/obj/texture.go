package obj

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"Tracer3D/internal/math3d"
)

// Map is a loaded RGBA texture: width/height plus a linear, row-major
// array of Vec3 colour samples in [0,1]. Sampling is nearest-neighbor
// with coordinates clamped to the valid pixel range.
type Map struct {
	Width, Height int
	Pixels        []math3d.Vec3
}

// LoadMap decodes an image file (any format registered with the image
// package — png and jpeg are registered by this file's blank imports)
// into a Map. 16-bit channels are scaled down to 8-bit precision before
// being normalized to [0,1], matching how image.Image.At always reports
// colors at 16-bit depth regardless of the source format.
func LoadMap(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]math3d.Vec3, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*w+x] = math3d.V3(
				float64(r>>8)/255,
				float64(g>>8)/255,
				float64(b>>8)/255,
			)
		}
	}
	return &Map{Width: w, Height: h, Pixels: pixels}, nil
}

// ColourAt returns the pixel at (x, y), with both coordinates clamped
// to [0, dimension-1] — the spec's tolerated clamp-to-edge policy: an
// out-of-range coordinate samples the last column/row rather than
// wrapping or erroring.
func (m *Map) ColourAt(x, y int) math3d.Vec3 {
	x = clampInt(x, 0, m.Width-1)
	y = clampInt(y, 0, m.Height-1)
	return m.Pixels[y*m.Width+x]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
