package wgpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gasandbox/pga"
	"github.com/gasandbox/pga/render"
)

func f32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestPackParams(t *testing.T) {
	buf := packParams(640, 480, 3)
	if len(buf) != paramsSize {
		t.Fatalf("len = %d, want %d", len(buf), paramsSize)
	}
	if got := binary.LittleEndian.Uint32(buf[0:]); got != 640 {
		t.Errorf("width = %d", got)
	}
	if got := binary.LittleEndian.Uint32(buf[4:]); got != 480 {
		t.Errorf("height = %d", got)
	}
	if got := binary.LittleEndian.Uint32(buf[8:]); got != 3 {
		t.Errorf("object index = %d", got)
	}
}

func TestPackCamera(t *testing.T) {
	cam := &render.Camera{
		Transform:      pga.Multivector{S: 1, E01: -0.5},
		VerticalHeight: 2,
		Aspect:         1.5,
		LineThickness:  0.1,
		PointRadius:    0.2,
	}
	buf := packCamera(cam)
	if len(buf) != cameraSize {
		t.Fatalf("len = %d, want %d", len(buf), cameraSize)
	}
	if got := f32At(t, buf, 0); got != 1 {
		t.Errorf("s = %v", got)
	}
	if got := f32At(t, buf, 4*4); got != -0.5 {
		t.Errorf("e01 = %v", got)
	}
	if got := f32At(t, buf, 8*4); got != 2 {
		t.Errorf("vertical height = %v", got)
	}
	if got := f32At(t, buf, 11*4); got != 0.2 {
		t.Errorf("point radius = %v", got)
	}
}

func TestPackObjects(t *testing.T) {
	objects := []render.Object{
		{Value: pga.Line(1, 0, -2), Color: render.Blue, Layer: 0},
		{Value: pga.Point(3, 4), Color: render.Red, Layer: 2},
	}
	buf := packObjects(objects)
	if len(buf) != 2*objectSize {
		t.Fatalf("len = %d, want %d", len(buf), 2*objectSize)
	}

	// First object: line coefficients land in the e0, e1, e2 slots.
	if got := f32At(t, buf, 1*4); got != -2 {
		t.Errorf("e0 = %v", got)
	}
	if got := f32At(t, buf, 2*4); got != 1 {
		t.Errorf("e1 = %v", got)
	}
	if got := f32At(t, buf, 10*4); got != 1 {
		t.Errorf("blue = %v", got)
	}

	// Second object starts at a 48-byte stride.
	base := objectSize
	if got := f32At(t, buf, base+6*4); got != 1 {
		t.Errorf("e12 = %v", got)
	}
	if got := f32At(t, buf, base+11*4); got != 2 {
		t.Errorf("layer = %v", got)
	}
}

func TestUnpackState(t *testing.T) {
	// 2x2 target; only pixel (1, 0) has a hit.
	target := render.Target{
		Data:   make([]uint8, 2*2*4),
		Width:  2,
		Height: 2,
		Stride: 2 * 4,
	}
	state := make([]byte, 2*2*stateSize)
	packed := uint32(10) | uint32(20)<<8 | uint32(30)<<16 | uint32(255)<<24
	binary.LittleEndian.PutUint32(state[1*stateSize:], packed)

	unpackState(state, target)

	idx := 1 * 4
	if target.Data[idx] != 10 || target.Data[idx+1] != 20 ||
		target.Data[idx+2] != 30 || target.Data[idx+3] != 255 {
		t.Errorf("hit pixel = %v", target.Data[idx:idx+4])
	}
	for _, i := range []int{0, 2 * 4, 3 * 4} {
		if target.Data[i+3] != 0 {
			t.Errorf("pixel at %d written without a hit", i)
		}
	}
}

func TestRenderNotReadyFallsBack(t *testing.T) {
	var b Backend
	target := render.Target{Data: make([]uint8, 4), Width: 1, Height: 1, Stride: 4}
	scene := render.NewScene(render.Object{Value: pga.Origin, Color: render.Red})
	if err := b.Render(target, &render.Camera{VerticalHeight: 2, Aspect: 1}, scene); err != render.ErrFallbackToCPU {
		t.Errorf("err = %v, want ErrFallbackToCPU", err)
	}
}
