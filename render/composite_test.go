package render

import (
	"testing"

	"github.com/gasandbox/pga"
)

func TestCompositePointAtCenter(t *testing.T) {
	// The screen-center edge case: the projection must special-case
	// r = 0 and still report a hit on a point at the origin.
	cam := testCamera()
	scene := NewScene(Object{Value: pga.Origin, Color: Red, Layer: 0})

	c, hit := Composite(cam, cam.Project(0, 0), scene)
	if !hit {
		t.Fatal("expected a hit at the screen center")
	}
	if c != Red {
		t.Errorf("color = %+v, want red", c)
	}
}

func TestCompositeLayerOrder(t *testing.T) {
	cam := testCamera()
	line := Object{Value: pga.Line(1, 0, 0), Color: Blue, Layer: 0}
	point := Object{Value: pga.Origin, Color: Red, Layer: 1}

	// Both objects cover the origin; the higher layer must win
	// regardless of scan order.
	for name, scene := range map[string]*Scene{
		"line first":  NewScene(line, point),
		"point first": NewScene(point, line),
	} {
		c, hit := Composite(cam, pga.Origin, scene)
		if !hit {
			t.Fatalf("%s: expected a hit", name)
		}
		if c != Red {
			t.Errorf("%s: color = %+v, want the layer-1 point's red", name, c)
		}
	}
}

func TestCompositeNegativeLayerExcluded(t *testing.T) {
	// The running depth starts at 0, so a layer below 0 is never
	// considered even when it geometrically hits.
	cam := testCamera()
	scene := NewScene(Object{Value: pga.Origin, Color: Red, Layer: -1})

	if _, hit := Composite(cam, pga.Origin, scene); hit {
		t.Error("negative-layer object must never be drawn")
	}
}

func TestCompositeEmptyScene(t *testing.T) {
	cam := testCamera()
	if _, hit := Composite(cam, pga.Origin, NewScene()); hit {
		t.Error("empty scene must yield no color")
	}
}

func TestCompositeCountLimit(t *testing.T) {
	cam := testCamera()
	scene := &Scene{
		Count: 1,
		Objects: []Object{
			{Value: pga.Line(1, 0, 5), Color: Blue, Layer: 0},
			{Value: pga.Origin, Color: Red, Layer: 0},
		},
	}

	// The second entry hits but sits beyond Count.
	if _, hit := Composite(cam, pga.Origin, scene); hit {
		t.Error("entries at index >= Count must be ignored")
	}
}

func TestCompositeSameLayerLaterWins(t *testing.T) {
	// The skip comparison is strict, so a later entry on the same
	// layer overwrites an earlier hit.
	cam := testCamera()
	scene := NewScene(
		Object{Value: pga.Origin, Color: Red, Layer: 2},
		Object{Value: pga.Origin, Color: Green, Layer: 2},
	)

	c, hit := Composite(cam, pga.Origin, scene)
	if !hit {
		t.Fatal("expected a hit")
	}
	if c != Green {
		t.Errorf("color = %+v, want the later entry's green", c)
	}
}

func TestCompositeOcclusionSkip(t *testing.T) {
	// After a layer-2 hit, a layer-1 object is occluded even though it
	// geometrically covers the point.
	cam := testCamera()
	scene := NewScene(
		Object{Value: pga.Origin, Color: Red, Layer: 2},
		Object{Value: pga.Origin, Color: Blue, Layer: 1},
	)

	c, _ := Composite(cam, pga.Origin, scene)
	if c != Red {
		t.Errorf("color = %+v, want the higher layer's red", c)
	}
}

func TestCompositeNearZeroGradeSkipped(t *testing.T) {
	cam := testCamera()
	// Squared magnitude 5e-5 is below the 1e-4 tolerance: the grade is
	// treated as absent even though the line passes through the point.
	faint := pga.Line(1, 0, 0).MulScalar(0.00707)
	scene := NewScene(Object{Value: faint, Color: Blue, Layer: 0})

	if _, hit := Composite(cam, pga.Origin, scene); hit {
		t.Error("near-zero primitive must be skipped as absent")
	}
}

func TestCompositeMixedValue(t *testing.T) {
	// One value carrying both a line and a point: both tests run, and
	// either can produce the hit.
	cam := testCamera()
	mixed := pga.Line(1, 0, -1).Add(pga.Origin) // line x=1 plus point at origin
	scene := NewScene(Object{Value: mixed, Color: Green, Layer: 0})

	c, hit := Composite(cam, pga.Origin, scene)
	if !hit {
		t.Fatal("point component must hit at the origin")
	}
	if c != Green {
		t.Errorf("color = %+v, want green", c)
	}

	// At (1, 0) only the line component is incident.
	if _, hit := Composite(cam, pga.Point(1, 0), scene); !hit {
		t.Error("line component must hit at (1, 0)")
	}
}

func TestCompositeLineThickness(t *testing.T) {
	cam := testCamera() // LineThickness 0.1 → half-width 0.05
	scene := NewScene(Object{Value: pga.Line(1, 0, 0), Color: Blue, Layer: 0})

	tests := []struct {
		name string
		x    float32
		hit  bool
	}{
		{"on the line", 0, true},
		{"inside halfwidth", 0.04, true},
		{"outside halfwidth", 0.06, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, hit := Composite(cam, pga.Point(tt.x, 0.5), scene)
			if hit != tt.hit {
				t.Errorf("hit = %v, want %v", hit, tt.hit)
			}
		})
	}
}
