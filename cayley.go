package pga

import "math/bits"

// Each basis blade is a bitmask of generators: bit 0 = e0, bit 1 = e1,
// bit 2 = e2. blades maps component slot order (s, e0, e1, e2, e01,
// e02, e12, e012) to bitmasks; slotOf is the inverse.
var blades = [8]uint8{0b000, 0b001, 0b010, 0b100, 0b011, 0b101, 0b110, 0b111}

var slotOf [8]int

// cayley[i][j] holds the destination slot and sign of the product of
// the i-th and j-th basis blades. A sign of zero means the product
// vanishes (both factors contain the degenerate generator e0).
type cayleyEntry struct {
	slot int
	sign float32
}

var cayley [8][8]cayleyEntry

func init() {
	for slot, b := range blades {
		slotOf[b] = slot
	}
	for i, a := range blades {
		for j, b := range blades {
			sign, out := basisProduct(a, b)
			cayley[i][j] = cayleyEntry{slot: slotOf[out], sign: sign}
		}
	}
}

// basisProduct multiplies two basis blades. Generators of b are merged
// into a one at a time in ascending order; each transposition past a
// higher generator of a flips the sign, and a repeated generator
// squares away to its metric (0 for e0, +1 for e1 and e2).
func basisProduct(a, b uint8) (float32, uint8) {
	sign := float32(1)
	for g := uint8(0); g < 3; g++ {
		bit := uint8(1) << g
		if b&bit == 0 {
			continue
		}
		if bits.OnesCount8(a>>(g+1))%2 == 1 {
			sign = -sign
		}
		if a&bit != 0 {
			if g == 0 {
				return 0, 0 // e0·e0 = 0
			}
			a &^= bit
		} else {
			a |= bit
		}
	}
	return sign, a
}

// Mul returns the geometric product m·o, the full bilinear product
// over the Cayley table.
func (m Multivector) Mul(o Multivector) Multivector {
	a := m.comps()
	b := o.comps()
	var out [8]float32
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			if y == 0 {
				continue
			}
			e := cayley[i][j]
			if e.sign != 0 {
				out[e.slot] += e.sign * x * y
			}
		}
	}
	return fromComps(out)
}

// Wedge returns the exterior (grade-raising) product m∧o: for every
// grade pair (j, k) the grade-(j+k) part of the geometric product of
// the projections.
func (m Multivector) Wedge(o Multivector) Multivector {
	result := Zero
	for j := 0; j <= 3; j++ {
		for k := 0; k <= 3; k++ {
			result = result.Add(m.Grade(j).Mul(o.Grade(k)).Grade(j + k))
		}
	}
	return result
}

// Inner returns the grade-lowering inner product, projecting each
// grade pair's product onto grade |j−k|.
func (m Multivector) Inner(o Multivector) Multivector {
	result := Zero
	for j := 0; j <= 3; j++ {
		for k := 0; k <= 3; k++ {
			d := j - k
			if d < 0 {
				d = -d
			}
			result = result.Add(m.Grade(j).Mul(o.Grade(k)).Grade(d))
		}
	}
	return result
}

// Regressive returns the regressive product m∨o, the dual of the
// wedge of the duals. It joins points into the line through them; for
// normalized primitives its magnitude measures incidence, e.g. the
// Euclidean distance between two points.
func (m Multivector) Regressive(o Multivector) Multivector {
	return m.Dual().Wedge(o.Dual()).DualInverse()
}
