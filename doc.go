// Package pga implements 2D Projective Geometric Algebra in Go.
//
// # Overview
//
// pga provides the eight-component multivector algebra Cl(2,0,1):
// three generators e0, e1, e2 with e0·e0 = 0 (the ideal, projective
// direction) and e1·e1 = e2·e2 = 1. Points, lines and rigid motions of
// the Euclidean plane are all elements of this one algebra, and
// geometric queries (incidence, distance, transformation) reduce to a
// handful of products on the Multivector type.
//
// # Quick Start
//
//	import "github.com/gasandbox/pga"
//
//	p := pga.Point(1, 2)              // the point (1, 2)
//	l := pga.Line(1, -1, 0)           // the line x - y = 0
//	d := l.Normalized().Regressive(p) // incidence; its magnitude is the distance
//
//	// Rigid motions are motors applied with the sandwich product.
//	m := pga.Translator(3, 0).Mul(pga.Rotor(math.Pi / 2))
//	q := m.Mul(p).Mul(m.Reverse())
//
// # Representation
//
// A Multivector stores one component per basis blade, partitioned into
// four grades: the scalar, the vectors e0/e1/e2 (lines), the bivectors
// e01/e02/e12 (points), and the pseudoscalar e012. Grade projections
// are mutually exclusive and sum back to the original element.
//
// The geometric product is table-driven: the Cayley table is derived
// at init time from the generator bitmasks and the metric, so there is
// no hand-maintained sign table to drift out of sync.
//
// # Rendering
//
// The render subpackage turns a Scene of lines and points into an
// image by evaluating a camera projection and incidence test per
// pixel. The backend/wgpu subpackage runs the same algorithm as a
// WGSL compute shader.
package pga
