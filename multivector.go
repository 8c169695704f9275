package pga

import "github.com/chewxy/math32"

// Multivector is an element of the 2D projective geometric algebra,
// with one float32 component per basis blade. Depending on which grade
// is populated it represents a scalar, a line (grade 1), a point
// (grade 2), the pseudoscalar, or a motor (mixed even grades).
type Multivector struct {
	S    float32 // scalar
	E0   float32 // ideal direction, e0·e0 = 0
	E1   float32
	E2   float32
	E01  float32
	E02  float32
	E12  float32 // Euclidean bivector; the canonical origin point
	E012 float32 // pseudoscalar
}

// Zero is the additive identity.
var Zero Multivector

// Origin is the canonical origin point e12.
var Origin = Multivector{E12: 1}

// Scalar returns a pure grade-0 multivector.
func Scalar(s float32) Multivector {
	return Multivector{S: s}
}

// comps returns the components in canonical slot order:
// s, e0, e1, e2, e01, e02, e12, e012.
func (m Multivector) comps() [8]float32 {
	return [8]float32{m.S, m.E0, m.E1, m.E2, m.E01, m.E02, m.E12, m.E012}
}

func fromComps(c [8]float32) Multivector {
	return Multivector{
		S: c[0], E0: c[1], E1: c[2], E2: c[3],
		E01: c[4], E02: c[5], E12: c[6], E012: c[7],
	}
}

// Add returns the component-wise sum m + o.
func (m Multivector) Add(o Multivector) Multivector {
	return Multivector{
		S:    m.S + o.S,
		E0:   m.E0 + o.E0,
		E1:   m.E1 + o.E1,
		E2:   m.E2 + o.E2,
		E01:  m.E01 + o.E01,
		E02:  m.E02 + o.E02,
		E12:  m.E12 + o.E12,
		E012: m.E012 + o.E012,
	}
}

// Sub returns the component-wise difference m - o.
func (m Multivector) Sub(o Multivector) Multivector {
	return m.Add(o.Neg())
}

// Neg returns the component-wise negation of m.
func (m Multivector) Neg() Multivector {
	return m.MulScalar(-1)
}

// MulScalar returns m scaled by s.
func (m Multivector) MulScalar(s float32) Multivector {
	return Multivector{
		S:    m.S * s,
		E0:   m.E0 * s,
		E1:   m.E1 * s,
		E2:   m.E2 * s,
		E01:  m.E01 * s,
		E02:  m.E02 * s,
		E12:  m.E12 * s,
		E012: m.E012 * s,
	}
}

// DivScalar returns m scaled by 1/s.
func (m Multivector) DivScalar(s float32) Multivector {
	return m.MulScalar(1 / s)
}

// Grade returns m with every component outside grade k zeroed.
// Grades outside [0, 3] yield the zero multivector.
func (m Multivector) Grade(k int) Multivector {
	switch k {
	case 0:
		return Multivector{S: m.S}
	case 1:
		return Multivector{E0: m.E0, E1: m.E1, E2: m.E2}
	case 2:
		return Multivector{E01: m.E01, E02: m.E02, E12: m.E12}
	case 3:
		return Multivector{E012: m.E012}
	default:
		return Zero
	}
}

// Reverse returns the reversion anti-automorphism of m: grade-2 and
// grade-3 components are negated, grade-0 and grade-1 are unchanged.
func (m Multivector) Reverse() Multivector {
	return Multivector{
		S: m.S, E0: m.E0, E1: m.E1, E2: m.E2,
		E01: -m.E01, E02: -m.E02, E12: -m.E12, E012: -m.E012,
	}
}

// Dual maps each grade-k blade to its complementary grade-(3-k) blade:
// s ↔ e012, e0 ↔ e12, e1 ↔ -e02, e2 ↔ e01.
func (m Multivector) Dual() Multivector {
	return Multivector{
		S:    m.E012,
		E0:   m.E12,
		E1:   -m.E02,
		E2:   m.E01,
		E01:  m.E2,
		E02:  -m.E1,
		E12:  m.E0,
		E012: m.S,
	}
}

// DualInverse undoes Dual. For this algebra's signature the permutation
// is its own inverse, so DualInverse is identical to Dual; the dual
// round-trip property is covered by tests.
func (m Multivector) DualInverse() Multivector {
	return m.Dual()
}

// SqrMagnitude returns the scalar part of m·reverse(m). The norm is
// indefinite, so the result may be negative.
func (m Multivector) SqrMagnitude() float32 {
	return m.Mul(m.Reverse()).S
}

// Magnitude returns sqrt(|SqrMagnitude|).
func (m Multivector) Magnitude() float32 {
	return math32.Sqrt(math32.Abs(m.SqrMagnitude()))
}

// Normalized returns m scaled to unit magnitude. Null elements (zero
// magnitude) are returned unchanged rather than dividing by zero.
func (m Multivector) Normalized() Multivector {
	mag := m.Magnitude()
	if mag == 0 {
		return m
	}
	return m.DivScalar(mag)
}

// Exp is the exponential map of a bivector generator. The branch is
// selected by the sign of the scalar part of m·m: negative gives an
// elliptic (rotation) rotor, positive a hyperbolic one, and zero the
// exact nilpotent result 1 + m, which is how ideal bivectors become
// exact translations with no series truncation.
func (m Multivector) Exp() Multivector {
	s := m.Mul(m).S
	switch {
	case s < 0:
		a := math32.Sqrt(-s)
		return Scalar(math32.Cos(a)).Add(m.MulScalar(math32.Sin(a) / a))
	case s > 0:
		a := math32.Sqrt(s)
		return Scalar(math32.Cosh(a)).Add(m.MulScalar(math32.Sinh(a) / a))
	default:
		return Scalar(1).Add(m)
	}
}
