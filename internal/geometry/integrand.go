package geometry

import "math"

const piOver4 = math.Pi / 4

// Fold maps (u, v) in the unit square to the (x, y) at which the integrand
// is evaluated. Samples with u+v > 1 are folded back into the lower triangle.
func Fold(u, v float64) (x, y float64) {
	if u+v > 1 {
		return 0.5*u + v - 0.5, 0.5 * (1 - u)
	}
	return 0.5*u + v, 0.5 * u
}

// Integrand is the contribution of one trial to the integral estimate:
//
//	π/4·(2y² + x² + (1−x)²) − ½·(atan(y/x)·(x²+y²) + atan(y/(1−x))·((1−x)²+y²))
//
// evaluated at (x, y) = Fold(u, v).
func Integrand(u, v float64) float64 {
	x, y := Fold(u, v)
	x2 := x * x
	y2 := y * y
	xi := 1 - x
	xi2 := xi * xi
	return piOver4*(2*y2+x2+xi2) - 0.5*(atanRatio(y, x)*(x2+y2)+atanRatio(y, xi)*(xi2+y2))
}

// atanRatio returns atan(num/den). The 0/0 case, reached at the corners of
// the fold, yields 0; its weight in Integrand is zero there as well.
func atanRatio(num, den float64) float64 {
	if den == 0 {
		if num == 0 {
			return 0
		}
		return math.Copysign(math.Pi/2, num)
	}
	return math.Atan(num / den)
}
