// Package geometry implements the per-trial algorithms of the estimator:
// nearest-border selection in the unit square, the perpendicular bisector
// predicates (closed-form slope and quadratic-root variants) and the scalar
// integrand used in integral mode.
//
// Every function in this package is pure and allocation-free so that it can
// be called billions of times from concurrent workers.
package geometry

import "math"

// Epsilon is the degeneracy tolerance used when two coordinates are
// considered equal (points sharing an x or a y).
const Epsilon = 2.220446049250313e-16 // math.Nextafter(1, 2) - 1

// Point is a location in the closed unit square.
type Point struct {
	X float64
	Y float64
}

// Midpoint returns the midpoint of the segment p1p2.
func Midpoint(p1, p2 Point) Point {
	return Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
}

// InUnitInterval reports whether v lies in [0,1].
func InUnitInterval(v float64) bool {
	return v >= 0 && v <= 1
}

// InUnitSquare reports whether both coordinates of p lie in [0,1].
func (p Point) InUnitSquare() bool {
	return InUnitInterval(p.X) && InUnitInterval(p.Y)
}

// Equal reports whether p and q are the same point up to Epsilon.
func (p Point) Equal(q Point) bool {
	return math.Abs(p.X-q.X) < Epsilon && math.Abs(p.Y-q.Y) < Epsilon
}
