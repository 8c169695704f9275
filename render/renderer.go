package render

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
)

const defaultTileSize = 32

// Renderer evaluates scenes into images. It carries only sizing and
// scheduling configuration; all per-frame inputs are passed to Render,
// so one Renderer can be reused across frames and is safe for
// concurrent use.
type Renderer struct {
	width, height int
	opts          options
}

// New creates a renderer for the given output size.
func New(width, height int, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{width: width, height: height, opts: o}
}

// Render draws the scene as seen by the camera and returns a new
// image. Pixels with no hit are transparent unless a background was
// configured.
func (r *Renderer) Render(cam *Camera, scene *Scene) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	// RenderInto only fails on bounds mismatch, which cannot happen here.
	_ = r.RenderInto(cam, scene, img)
	return img
}

// RenderInto draws the scene into the provided image, which must match
// the renderer's dimensions.
func (r *Renderer) RenderInto(cam *Camera, scene *Scene, img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != r.width || b.Dy() != r.height {
		return fmt.Errorf("render: image is %dx%d, renderer is %dx%d",
			b.Dx(), b.Dy(), r.width, r.height)
	}

	r.clear(img)

	if bk := RegisteredBackend(); bk != nil {
		target := Target{
			Data:   img.Pix,
			Width:  r.width,
			Height: r.height,
			Stride: img.Stride,
		}
		err := bk.Render(target, cam, scene)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrFallbackToCPU) {
			Logger().Warn("backend render failed, falling back to CPU",
				"backend", bk.Name(), "err", err)
		}
	}

	r.renderCPU(cam, scene, img)
	return nil
}

// clear initializes every pixel to the background, or to transparent
// when none is configured.
func (r *Renderer) clear(img *image.RGBA) {
	if r.opts.background == nil {
		clearBytes(img.Pix)
		return
	}
	c := r.opts.background.NRGBA()
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = 255
	}
}

func clearBytes(p []uint8) {
	for i := range p {
		p[i] = 0
	}
}

type tile struct {
	x0, y0, x1, y1 int
}

// renderCPU evaluates every pixel across a pool of workers. Tiles keep
// writes cache-local; pixel evaluations are independent, so the
// schedule never affects the output.
func (r *Renderer) renderCPU(cam *Camera, scene *Scene, img *image.RGBA) {
	workers := r.opts.workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	size := r.opts.tileSize

	tilesX := (r.width + size - 1) / size
	tilesY := (r.height + size - 1) / size
	tiles := make(chan tile, tilesX*tilesY)
	for ty := 0; ty < r.height; ty += size {
		for tx := 0; tx < r.width; tx += size {
			x1 := tx + size
			if x1 > r.width {
				x1 = r.width
			}
			y1 := ty + size
			if y1 > r.height {
				y1 = r.height
			}
			tiles <- tile{x0: tx, y0: ty, x1: x1, y1: y1}
		}
	}
	close(tiles)

	Logger().Debug("CPU render",
		"width", r.width, "height", r.height,
		"workers", workers, "tiles", tilesX*tilesY)

	invW := 2 / float32(r.width)
	invH := 2 / float32(r.height)
	pix := img.Pix
	stride := img.Stride

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tiles {
				for y := t.y0; y < t.y1; y++ {
					// Pixel centers, +v up.
					v := 1 - (float32(y)+0.5)*invH
					row := y * stride
					for x := t.x0; x < t.x1; x++ {
						u := (float32(x)+0.5)*invW - 1
						point := cam.Project(u, v)
						c, hit := Composite(cam, point, scene)
						if !hit {
							continue
						}
						n := c.NRGBA()
						idx := row + x*4
						pix[idx] = n.R
						pix[idx+1] = n.G
						pix[idx+2] = n.B
						pix[idx+3] = 255
					}
				}
			}
		}()
	}
	wg.Wait()
}
