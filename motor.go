package pga

// Point returns the grade-2 element representing the Euclidean point
// (x, y), normalized so that its e12 component is 1.
func Point(x, y float32) Multivector {
	return Multivector{E01: y, E02: -x, E12: 1}
}

// Line returns the grade-1 element representing the line
// a·x + b·y + c = 0.
func Line(a, b, c float32) Multivector {
	return Multivector{E0: c, E1: a, E2: b}
}

// Translator returns the motor translating by (dx, dy). It is the
// exponential of the ideal bivector half the displacement, which is
// nilpotent, so the result is exact.
func Translator(dx, dy float32) Multivector {
	ideal := Multivector{E1: dx, E2: dy}.Wedge(Multivector{E0: 1})
	return ideal.MulScalar(0.5).Exp()
}

// Rotor returns the motor rotating counter-clockwise by angle radians
// about the origin.
func Rotor(angle float32) Multivector {
	return Multivector{E12: -angle / 2}.Exp()
}

// Transform applies the motor m to x via the sandwich product
// m·x·reverse(m).
func (m Multivector) Transform(x Multivector) Multivector {
	return m.Mul(x).Mul(m.Reverse())
}
