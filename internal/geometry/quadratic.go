package geometry

import "math"

// Quadratic holds the coefficients of a·t² + b·t + c = 0.
type Quadratic struct {
	A, B, C float64
}

// Discriminant returns b² − 4ac.
func (q Quadratic) Discriminant() float64 {
	return q.B*q.B - 4*q.A*q.C
}

// Roots returns the real roots of the equation and how many there are.
// A negative discriminant yields no roots. When a is zero the equation is
// solved as linear; when a and b are both zero there is no isolated root.
// No path divides by zero.
func (q Quadratic) Roots() (r1, r2 float64, n int) {
	if q.A == 0 {
		if q.B == 0 {
			return 0, 0, 0
		}
		r := -q.C / q.B
		return r, r, 1
	}
	disc := q.Discriminant()
	if disc < 0 {
		return 0, 0, 0
	}
	sq := math.Sqrt(disc)
	r1 = (-q.B + sq) / (2 * q.A)
	r2 = (-q.B - sq) / (2 * q.A)
	if disc == 0 {
		return r1, r1, 1
	}
	return r1, r2, 2
}

// FirstRootInUnitInterval returns the first root that lies in [0,1].
func (q Quadratic) FirstRootInUnitInterval() (float64, bool) {
	r1, r2, n := q.Roots()
	if n >= 1 && InUnitInterval(r1) {
		return r1, true
	}
	if n == 2 && InUnitInterval(r2) {
		return r2, true
	}
	return 0, false
}

// BisectorQuadratic returns the equation, in the free coordinate t of border
// b, of the points of b's line that are equidistant from p1 and p2. It is the
// expansion of |q(t)−p1|² − |q(t)−p2|² = 0: the t² terms cancel, leaving
//
//	a = 0
//	b = −2·(p1.t − p2.t)
//	c = p1.t² − p2.t² + (f−p1.s)² − (f−p2.s)²
//
// where t is the free axis, s the fixed axis and f the border value.
func BisectorQuadratic(p1, p2 Point, b Border) Quadratic {
	t1, t2, s1, s2 := p1.Y, p2.Y, p1.X, p2.X
	if b.Axis == AxisY {
		t1, t2, s1, s2 = p1.X, p2.X, p1.Y, p2.Y
	}
	f := b.Fixed
	return Quadratic{
		A: 0,
		B: -2 * (t1 - t2),
		C: t1*t1 - t2*t2 + (f-s1)*(f-s1) - (f-s2)*(f-s2),
	}
}
