package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"Tracer3D/internal/logger"
	"Tracer3D/internal/math3d"
	"Tracer3D/internal/obj"
)

// World composes a camera, a set of lights, and a set of authored
// meshes. Lights and meshes are additive and never removed mid-scene;
// authored meshes are recomputed into a fresh, immutable ComputedMesh
// set on every render call.
type World struct {
	Camera *Camera
	Lights []Light
	Meshes []*obj.Mesh
}

// NewWorld returns an empty world with the given camera.
func NewWorld(camera *Camera) *World {
	return &World{Camera: camera}
}

func (w *World) AddLight(l Light) {
	w.Lights = append(w.Lights, l)
}

func (w *World) AddMesh(m *obj.Mesh) {
	w.Meshes = append(w.Meshes, m)
}

// RenderImage renders the scene with the given worker count and returns
// the image dimensions and a flat row-major RGBA byte buffer. The
// output is deterministic: identical for any thread_count, since each
// band writes into a slot of a pre-sized slice indexed by band number —
// worker completion order never affects assembly order.
func (w *World) RenderImage(threadCount int) (width, height int, pixels []byte) {
	computedMeshes := make([]*obj.ComputedMesh, len(w.Meshes))
	for i, m := range w.Meshes {
		computedMeshes[i] = m.Compute()
	}

	height = w.Camera.Height
	width = w.Camera.Width

	if threadCount < 1 {
		threadCount = 1
	}
	step := height / threadCount
	if step < 1 {
		step = 1
	}

	type band struct {
		startY, endY int
	}
	var bands []band
	for y := 0; y < height; y += step {
		end := y + step
		if end > height {
			end = height
		}
		bands = append(bands, band{startY: y, endY: end})
	}

	results := make([][]byte, len(bands))

	// Compute the camera's view transform once, synchronously, before any
	// worker goroutine touches it. Camera.RayForPixel lazily recomputes
	// cached state on first use and is not safe for concurrent callers;
	// every band must see an already-clean camera.
	w.Camera.ensureComputed()

	pool := pond.NewPool(threadCount)
	defer pool.StopAndWait()

	var wg sync.WaitGroup
	wg.Add(len(bands))
	for i, b := range bands {
		i, b := i, b
		pool.Submit(func() {
			defer wg.Done()
			results[i] = renderBand(w.Camera, computedMeshes, w.Lights, b.startY, b.endY)
		})
	}
	wg.Wait()

	for _, bytesForBand := range results {
		pixels = append(pixels, bytesForBand...)
	}
	return width, height, pixels
}

// renderBand renders one Y-band of the image, producing a flat RGBA
// byte buffer in row-major order, one ray at a time.
func renderBand(camera *Camera, meshes []*obj.ComputedMesh, lights []Light, startY, endY int) []byte {
	it := newRayIterator(camera, startY, endY)
	out := make([]byte, 0, camera.Width*(endY-startY)*4)
	for {
		ray, _, _, ok := it.next()
		if !ok {
			break
		}
		colour := math3d.Zero3
		hits := IntersectScene(ray, meshes)
		if len(hits) > 0 {
			colour = Shade(ray, hits[0], meshes, lights)
		}
		out = append(out, colourToBytes(colour)...)
	}
	return out
}

// colourToBytes maps a linear [0,1]-ish color to RGBA8: round_down(|c| *
// 255) per channel, alpha always 255. Absolute value guards against
// negative intermediate shading values.
func colourToBytes(c math3d.Vec3) [4]byte {
	c = c.Abs()
	return [4]byte{
		byte(math.Floor(c.X * 255)),
		byte(math.Floor(c.Y * 255)),
		byte(math.Floor(c.Z * 255)),
		255,
	}
}

// Render renders the scene and writes the result as a PNG to path,
// logging a single summary line on success.
func (w *World) Render(path string, threadCount int) error {
	start := time.Now()
	width, height, pixels := w.RenderImage(threadCount)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	logger.Log.Info(fmt.Sprintf("rendered %s (%dx%d) using %d threads in %.3fs",
		path, width, height, threadCount, time.Since(start).Seconds()),
		zap.String("path", path),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("threads", threadCount),
	)
	return nil
}
