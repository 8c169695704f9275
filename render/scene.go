package render

import "github.com/gasandbox/pga"

// Object is one scene entry: a multivector value expected to encode a
// line (grade 1) or a point (grade 2), its color, and a layer used as
// draw-order priority (higher layer wins).
type Object struct {
	Value pga.Multivector
	Color RGB
	Layer float32
}

// Scene is an ordered collection of objects, read-only for the whole
// frame. Entries at index ≥ Count are ignored; the iteration order of
// the remaining entries is significant, because later same-layer hits
// overwrite earlier ones.
type Scene struct {
	Count   int
	Objects []Object
}

// NewScene builds a scene drawing all given objects in order.
func NewScene(objects ...Object) *Scene {
	return &Scene{Count: len(objects), Objects: objects}
}
