// Package render rasterizes scenes of PGA lines and points.
//
// A Scene is an ordered list of objects, each carrying a multivector
// value (a line or a point), a color and a draw-order layer. A Camera
// describes the view: a motor encoding the pose plus field-of-view and
// primitive-size parameters. Rendering is a pure per-pixel function:
// the camera projects each screen coordinate to the world-space point
// it observes, and the compositor scans the scene in order, testing
// incidence against that point.
//
// The built-in renderer evaluates pixels on the CPU across a pool of
// workers. A GPU execution engine can be plugged in through
// RegisterBackend; see backend/wgpu.
//
// Camera and Scene are frame-scoped inputs: they are never mutated by
// this package, and a frame's pixel evaluations share no state, so the
// same inputs always produce the same image regardless of worker
// count.
package render
