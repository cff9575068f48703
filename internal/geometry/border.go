package geometry

import "fmt"

// Axis identifies which coordinate a border fixes.
type Axis uint8

const (
	// AxisX marks a vertical border (x is fixed).
	AxisX Axis = iota
	// AxisY marks a horizontal border (y is fixed).
	AxisY
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Border is one edge of the unit square, given by the axis it fixes and the
// fixed value (0 or 1).
type Border struct {
	Axis  Axis
	Fixed float64
}

// The four edges of the unit square.
var (
	Left   = Border{Axis: AxisX, Fixed: 0}
	Right  = Border{Axis: AxisX, Fixed: 1}
	Bottom = Border{Axis: AxisY, Fixed: 0}
	Top    = Border{Axis: AxisY, Fixed: 1}
)

// ScanOrder is the fixed fallback order used by the four-border scan.
var ScanOrder = [4]Border{Left, Right, Bottom, Top}

// String renders the border as "x=0", "y=1", etc.
func (b Border) String() string {
	return fmt.Sprintf("%s=%g", b.Axis, b.Fixed)
}

// Distance returns the distance from p to the border line.
func (b Border) Distance(p Point) float64 {
	c := p.X
	if b.Axis == AxisY {
		c = p.Y
	}
	if b.Fixed == 0 {
		return c
	}
	return b.Fixed - c
}

// At returns the point of the border line whose free coordinate is t.
func (b Border) At(t float64) Point {
	if b.Axis == AxisX {
		return Point{X: b.Fixed, Y: t}
	}
	return Point{X: t, Y: b.Fixed}
}

// NearestBorder returns the edge of the unit square closest to p.
// Ties resolve to the first candidate in ScanOrder; callers must not rely on
// any particular tie-break.
func NearestBorder(p Point) Border {
	best := ScanOrder[0]
	bestDist := best.Distance(p)
	for _, b := range ScanOrder[1:] {
		if d := b.Distance(p); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}
