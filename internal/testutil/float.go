package testutil

import "math"

// ApproxEqual reports whether a and b differ by at most tol, either
// absolutely or relative to the larger magnitude.
func ApproxEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	if diff <= tol {
		return true
	}
	return diff <= tol*math.Max(math.Abs(a), math.Abs(b))
}
