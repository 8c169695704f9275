package render

import "github.com/gasandbox/pga"

// minSqrMagnitude is the data-quality tolerance below which a grade's
// content is treated as absent rather than as a degenerate primitive.
const minSqrMagnitude = 1e-4

// Composite scans the scene in collection order and resolves the color
// visible at the given world-space point. The second return value is
// false when no object covers the point.
//
// The scan threads a running depth: an object must reach the current
// depth to be considered at all, and a hit raises the depth to the
// object's layer. The comparison is strict, so later entries sharing a
// layer can still overwrite earlier hits. The scan must stay
// sequential; the running depth makes hit order semantically
// load-bearing.
func Composite(cam *Camera, point pga.Multivector, scene *Scene) (RGB, bool) {
	var (
		depth float32
		color RGB
		hit   bool
	)

	n := scene.Count
	if n > len(scene.Objects) {
		n = len(scene.Objects)
	}

	for i := 0; i < n; i++ {
		obj := &scene.Objects[i]
		if obj.Layer < depth {
			continue
		}

		if line := obj.Value.Grade(1); line.SqrMagnitude() > minSqrMagnitude {
			if line.Normalized().Regressive(point).Magnitude() <= cam.LineThickness/2 {
				hit = true
				color = obj.Color
				depth = obj.Layer
			}
		}

		// A value may encode both a line and a point; the tests are
		// independent and may both fire for the same object.
		if p := obj.Value.Grade(2); p.SqrMagnitude() > minSqrMagnitude {
			if p.Normalized().Regressive(point).Magnitude() <= cam.PointRadius {
				hit = true
				color = obj.Color
				depth = obj.Layer
			}
		}
	}

	return color, hit
}
