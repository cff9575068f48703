package geometry

import "testing"

func TestQuadraticRoots(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		q      Quadratic
		n      int
		r1, r2 float64
	}{
		{"two roots", Quadratic{1, -3, 2}, 2, 2, 1},
		{"double root", Quadratic{1, -2, 1}, 1, 1, 1},
		{"negative discriminant", Quadratic{1, 0, 1}, 0, 0, 0},
		{"linear", Quadratic{0, 2, -1}, 1, 0.5, 0.5},
		{"fully degenerate", Quadratic{0, 0, 0}, 0, 0, 0},
		{"degenerate constant", Quadratic{0, 0, 3}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r1, r2, n := tt.q.Roots()
			if n != tt.n || r1 != tt.r1 || r2 != tt.r2 {
				t.Errorf("Roots() = (%v, %v, %d), want (%v, %v, %d)", r1, r2, n, tt.r1, tt.r2, tt.n)
			}
		})
	}
}

func TestFirstRootInUnitInterval(t *testing.T) {
	t.Parallel()
	if r, ok := (Quadratic{1, -3, 2}).FirstRootInUnitInterval(); !ok || r != 1 {
		t.Errorf("got (%v, %v), want (1, true)", r, ok)
	}
	if _, ok := (Quadratic{1, -5, 6}).FirstRootInUnitInterval(); ok {
		t.Error("roots 2 and 3 must be rejected")
	}
}

func TestBisectorQuadratic_CoincidentPoints(t *testing.T) {
	t.Parallel()
	p := Point{0.25, 0.75}
	for _, b := range ScanOrder {
		q := BisectorQuadratic(p, p, b)
		if q.A != 0 || q.B != 0 || q.C != 0 {
			t.Errorf("BisectorQuadratic(p, p, %v) = %+v, want all zero", b, q)
		}
		if _, _, n := q.Roots(); n != 0 {
			t.Errorf("coincident points on %v produced %d roots", b, n)
		}
	}
}

func TestBisectorQuadratic_RootIsEquidistant(t *testing.T) {
	t.Parallel()
	p1, p2 := Point{0.2, 0.3}, Point{0.6, 0.9}
	for _, b := range ScanOrder {
		root, ok := BisectorQuadratic(p1, p2, b).FirstRootInUnitInterval()
		if !ok {
			continue
		}
		q := b.At(root)
		d1 := (q.X-p1.X)*(q.X-p1.X) + (q.Y-p1.Y)*(q.Y-p1.Y)
		d2 := (q.X-p2.X)*(q.X-p2.X) + (q.Y-p2.Y)*(q.Y-p2.Y)
		if diff := d1 - d2; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("%v: root %v is not equidistant (%v vs %v)", b, root, d1, d2)
		}
	}
}
