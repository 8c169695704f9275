// Command pgarender renders a scene script to a PNG image.
//
// A scene script is a sequence of multivector assignments; every
// assigned variable that encodes a line or a point becomes a scene
// object, layered in assignment order:
//
//	horizon = e2;
//	p = e12 + 2*e01 - 3*e02;
//	q = normalize(!horizon);
//
// Without -script a small built-in demo scene is rendered.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/gasandbox/pga"
	"github.com/gasandbox/pga/render"
	"github.com/gasandbox/pga/script"

	// Register the GPU backend; rendering falls back to the CPU when
	// no device is available.
	_ "github.com/gasandbox/pga/backend/wgpu"
)

var defaultPalette = []render.RGB{
	render.White,
	render.Red,
	render.Green,
	render.Blue,
	{R: 1, G: 1},           // yellow
	{G: 1, B: 1},           // cyan
	{R: 1, B: 1},           // magenta
	{R: 1, G: 0.5},         // orange
	{R: 0.5, G: 0.5, B: 1}, // light blue
}

func main() {
	var (
		width      = flag.Int("width", 800, "image width")
		height     = flag.Int("height", 600, "image height")
		output     = flag.String("output", "scene.png", "output file")
		scriptPath = flag.String("script", "", "scene script file (built-in demo scene if empty)")
		cx         = flag.Float64("x", 0, "camera x position")
		cy         = flag.Float64("y", 0, "camera y position")
		viewHeight = flag.Float64("view-height", 10, "world-space height of the view")
		thickness  = flag.Float64("line-thickness", 0.05, "world-space line thickness")
		radius     = flag.Float64("point-radius", 0.1, "world-space point radius")
		scale      = flag.Int("scale", 1, "integer output upscale factor")
		workers    = flag.Int("workers", 0, "CPU render workers (0 = all cores)")
		colors     = flag.String("colors", "", "comma-separated hex palette, e.g. #ff0000,#0f0")
		background = flag.String("background", "000", "background color as a hex string")
		verbose    = flag.Bool("v", false, "log render diagnostics to stderr")
	)
	flag.Parse()

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	pal, err := parsePalette(*colors)
	if err != nil {
		log.Fatalf("Invalid -colors: %v", err)
	}

	scene, err := loadScene(*scriptPath, pal)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	cam := &render.Camera{
		Transform:      pga.Translator(float32(*cx), float32(*cy)),
		VerticalHeight: float32(*viewHeight),
		Aspect:         float32(*width) / float32(*height),
		LineThickness:  float32(*thickness),
		PointRadius:    float32(*radius),
	}

	r := render.New(*width, *height,
		render.WithWorkers(*workers),
		render.WithBackground(render.Hex(*background)))
	img := r.Render(cam, scene)

	if *scale > 1 {
		img = upscale(img, *scale)
	}

	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Scene saved to %s (%dx%d, %d objects)\n",
		*output, img.Bounds().Dx(), img.Bounds().Dy(), scene.Count)
}

// parsePalette parses a comma-separated list of hex colors. An empty
// list selects the default palette.
func parsePalette(list string) ([]render.RGB, error) {
	if list == "" {
		return defaultPalette, nil
	}
	var pal []render.RGB
	for _, entry := range strings.Split(list, ",") {
		hex := strings.TrimPrefix(strings.TrimSpace(entry), "#")
		if len(hex) != 3 && len(hex) != 6 {
			return nil, fmt.Errorf("bad hex color %q", entry)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return nil, fmt.Errorf("bad hex color %q", entry)
		}
		pal = append(pal, render.Hex(hex))
	}
	return pal, nil
}

// loadScene evaluates the script and turns its variables into scene
// objects in assignment order, cycling through the palette.
func loadScene(path string, pal []render.RGB) (*render.Scene, error) {
	if path == "" {
		return demoScene(), nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	prog, err := script.Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	env := script.NewEnv()
	if err := env.Run(prog); err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}

	var objects []render.Object
	for i, name := range env.Names() {
		value, _ := env.Get(name)
		objects = append(objects, render.Object{
			Value: value,
			Color: pal[i%len(pal)],
			Layer: float32(i),
		})
	}
	return render.NewScene(objects...), nil
}

func demoScene() *render.Scene {
	rot := pga.Rotor(0.5)
	return render.NewScene(
		render.Object{Value: pga.Line(0, 1, 0), Color: render.Gray, Layer: 0},
		render.Object{Value: pga.Line(1, 0, 0), Color: render.Gray, Layer: 0},
		render.Object{Value: rot.Transform(pga.Line(1, 0, -2)), Color: render.Green, Layer: 1},
		render.Object{Value: pga.Origin, Color: render.White, Layer: 2},
		render.Object{Value: pga.Point(2, 1), Color: render.Red, Layer: 2},
		render.Object{Value: pga.Point(-1.5, -2), Color: render.Blue, Layer: 2},
	)
}

// upscale enlarges the image by an integer factor with nearest
// neighbor so pixels stay crisp.
func upscale(img *image.RGBA, factor int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
