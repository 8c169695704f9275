package render

import (
	"github.com/chewxy/math32"

	"github.com/gasandbox/pga"
)

// Camera is the immutable per-frame view description. Transform is a
// motor encoding the camera's rigid pose; the remaining fields scale
// the field of view and the on-screen size of primitives.
type Camera struct {
	Transform      pga.Multivector
	VerticalHeight float32
	Aspect         float32
	LineThickness  float32
	PointRadius    float32
}

// Project returns the world-space point the camera observes at the
// normalized screen coordinate (u, v) ∈ [−1, 1]², +v up.
//
// The screen offset is encoded as a motor: the ideal point in the
// pixel's direction, scaled by the field of view, exponentiates to a
// translation-like rotor that is composed with the camera pose and
// applied to the canonical origin with the sandwich product.
func (c *Camera) Project(u, v float32) pga.Multivector {
	pose := c.Transform.Normalized()

	r := math32.Hypot(u, v)
	if r == 0 {
		// The pixel direction is undefined at the screen center; the
		// offset rotor degenerates to identity, so apply the pose alone.
		return pose.Transform(pga.Origin).Normalized()
	}

	pixelLine := pga.Multivector{E1: u / r * c.Aspect, E2: v / r}
	infPoint := pixelLine.Wedge(pga.Multivector{E0: 1})
	rotor := infPoint.MulScalar(r * c.VerticalHeight * 0.5).Exp().Normalized()

	motor := pose.Mul(rotor)
	return motor.Transform(pga.Origin).Normalized()
}
