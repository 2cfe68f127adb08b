// Command tracer3d renders a Wavefront OBJ file to a PNG image using the
// Tracer3D CPU ray tracer. It is a thin convenience wrapper — the
// programmatic Scene API (internal/renderer.World) is the fully
// configurable entry point; this CLI covers the common case of
// rendering a single OBJ from a default camera position.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"Tracer3D/internal/logger"
	"Tracer3D/internal/math3d"
	"Tracer3D/internal/obj"
	"Tracer3D/internal/renderer"
)

func main() {
	width := flag.Int("width", 800, "output image width in pixels")
	height := flag.Int("height", 600, "output image height in pixels")
	fovDeg := flag.Float64("fov", 60, "camera field of view in degrees")
	threads := flag.Int("threads", 4, "number of parallel render workers")
	out := flag.String("out", "out.png", "output PNG path")
	verbose := flag.Bool("verbose", false, "enable development (console) logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tracer3d [flags] model.obj")
		flag.PrintDefaults()
		os.Exit(2)
	}
	objPath := flag.Arg(0)

	if *verbose {
		if err := logger.InitDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, "logger init:", err)
			os.Exit(1)
		}
	} else {
		if err := logger.Init(); err != nil {
			fmt.Fprintln(os.Stderr, "logger init:", err)
			os.Exit(1)
		}
	}

	mesh, err := obj.LoadOBJ(objPath)
	if err != nil {
		logger.Log.Error("failed to load obj", zap.String("path", objPath), zap.Error(err))
		os.Exit(1)
	}

	cam := renderer.NewCamera(*width, *height, *fovDeg*math.Pi/180)
	cam.From = math3d.V3(0, 0, -5)
	cam.To = math3d.Zero3

	world := renderer.NewWorld(cam)
	world.AddMesh(mesh)
	world.AddLight(renderer.NewLight(math3d.V3(cam.From.X-2, cam.From.Y+5, cam.From.Z-5)))

	if err := world.Render(*out, *threads); err != nil {
		logger.Log.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}
