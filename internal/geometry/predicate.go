package geometry

import "math"

// Predicate decides, for one trial, whether the perpendicular bisector of
// p1p2 meets the boundary of the unit square within [0,1].
type Predicate interface {
	// Name identifies the strategy.
	Name() string
	// Holds evaluates the predicate for the trial (p1, p2).
	Holds(p1, p2 Point) bool
}

// Locator is a Predicate that can also return the accepted intersection.
type Locator interface {
	Predicate
	// Locate returns the accepted intersection point and true, or the zero
	// Point and false when no border yields a valid root.
	Locate(p1, p2 Point) (Point, bool)
}

// SlopePredicate is the nearest-border, closed-form-slope variant. It picks
// the border nearest to p1 and evaluates the bisector line
// y = m·(x − mid.x) + mid.y with m = −dx/dy on it.
type SlopePredicate struct{}

// Name returns "nearest-slope".
func (SlopePredicate) Name() string { return "nearest-slope" }

// Holds implements Predicate.
func (s SlopePredicate) Holds(p1, p2 Point) bool {
	_, ok := s.Locate(p1, p2)
	return ok
}

// Locate implements Locator.
func (SlopePredicate) Locate(p1, p2 Point) (Point, bool) {
	b := NearestBorder(p1)
	t, ok := slopeCrossing(p1, p2, b)
	if !ok || !InUnitInterval(t) {
		return Point{}, false
	}
	return b.At(t), true
}

// slopeCrossing returns the free coordinate at which the bisector crosses the
// line of border b. It reports false when the free coordinates of p1 and p2
// coincide (the bisector is parallel to b, or the points are equal).
func slopeCrossing(p1, p2 Point, b Border) (float64, bool) {
	mid := Midpoint(p1, p2)
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	if b.Axis == AxisX {
		if math.Abs(dy) < Epsilon {
			return 0, false
		}
		m := -dx / dy
		return m*(b.Fixed-mid.X) + mid.Y, true
	}
	if math.Abs(dx) < Epsilon {
		return 0, false
	}
	m := -dx / dy
	return (b.Fixed-mid.Y)/m + mid.X, true
}

// QuadraticPredicate is the quadratic-root variant. With Scan unset only the
// border nearest to p1 is evaluated; with Scan set the borders are tried in
// ScanOrder and the first one yielding a root in [0,1] is accepted.
type QuadraticPredicate struct {
	Scan bool
}

// Name returns "nearest-quadratic" or "scan-quadratic".
func (q QuadraticPredicate) Name() string {
	if q.Scan {
		return "scan-quadratic"
	}
	return "nearest-quadratic"
}

// Holds implements Predicate.
func (q QuadraticPredicate) Holds(p1, p2 Point) bool {
	_, ok := q.Locate(p1, p2)
	return ok
}

// Locate implements Locator.
func (q QuadraticPredicate) Locate(p1, p2 Point) (Point, bool) {
	if !q.Scan {
		return quadraticCrossing(p1, p2, NearestBorder(p1))
	}
	for _, b := range ScanOrder {
		if pt, ok := quadraticCrossing(p1, p2, b); ok {
			return pt, true
		}
	}
	return Point{}, false
}

func quadraticCrossing(p1, p2 Point, b Border) (Point, bool) {
	gap := p2.Y - p1.Y
	if b.Axis == AxisY {
		gap = p2.X - p1.X
	}
	if math.Abs(gap) < Epsilon {
		return Point{}, false
	}
	t, ok := BisectorQuadratic(p1, p2, b).FirstRootInUnitInterval()
	if !ok {
		return Point{}, false
	}
	return b.At(t), true
}

// Predicates returns one instance of every predicate strategy.
func Predicates() []Locator {
	return []Locator{
		SlopePredicate{},
		QuadraticPredicate{},
		QuadraticPredicate{Scan: true},
	}
}
