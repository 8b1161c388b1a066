package predicate

import (
	"math"
	"testing"

	"github.com/formlabs-oss/stepmesh/geom"
)

func TestOrient2DSign(t *testing.T) {
	a := geom.Pt(0, 0)
	b := geom.Pt(1, 0)
	left := geom.Pt(0, 1)
	right := geom.Pt(0, -1)

	if v := Orient2D(a, b, left); v <= 0 {
		t.Fatalf("expected positive orientation, got %v", v)
	}
	if v := Orient2D(a, b, right); v >= 0 {
		t.Fatalf("expected negative orientation, got %v", v)
	}
}

func TestOrient2DCollinear(t *testing.T) {
	a := geom.Pt(0, 0)
	b := geom.Pt(2, 2)
	c := geom.Pt(1, 1)
	if v := Orient2D(a, b, c); v != 0 {
		t.Fatalf("expected exact zero for collinear points, got %v", v)
	}
}

func TestOrient2DNearDegenerate(t *testing.T) {
	// Nearly collinear points at large magnitude: the float64
	// determinant (about 1e6) survives heavy cancellation and still
	// clears the fast path's error bound, so its sign is positive.
	a := geom.Pt(0, 0)
	b := geom.Pt(1e16, 1)
	c := geom.Pt(2e16, 2+1e-10)
	v := Orient2D(a, b, c)
	if v <= 0 {
		t.Fatalf("expected positive orientation from exact fallback, got %v", v)
	}
}

func TestInCircleUnitCircle(t *testing.T) {
	a := geom.Pt(1, 0)
	b := geom.Pt(0, 1)
	c := geom.Pt(-1, 0)
	inside := geom.Pt(0, 0.5)
	outside := geom.Pt(0, 2)
	onCircle := geom.Pt(0, -1)

	if v := InCircle(a, b, c, inside); v <= 0 {
		t.Fatalf("expected point inside circumcircle, got %v", v)
	}
	if v := InCircle(a, b, c, outside); v >= 0 {
		t.Fatalf("expected point outside circumcircle, got %v", v)
	}
	if v := InCircle(a, b, c, onCircle); v != 0 {
		t.Fatalf("expected exact zero for cocircular point, got %v", v)
	}
}

func TestAcute(t *testing.T) {
	b := geom.Pt(0, 0)
	a := geom.Pt(1, 0)
	rightAngle := geom.Pt(0, 1)
	obtuse := geom.Pt(-1, 0.01)

	if v := Acute(a, b, rightAngle); v != 0 {
		t.Fatalf("expected zero at right angle, got %v", v)
	}
	if v := Acute(a, b, obtuse); v >= 0 {
		t.Fatalf("expected negative (obtuse) value, got %v", v)
	}
}

func TestPseudoAngleMonotone(t *testing.T) {
	// Walk the unit circle clockwise from the negative X axis and
	// confirm PseudoAngle is non-decreasing, i.e. it preserves angular
	// ordering even though it isn't the angle.
	const n = 360
	prev := math.Inf(-1)
	for i := 0; i < n; i++ {
		theta := math.Pi - 2*math.Pi*float64(i)/n
		dx, dy := math.Cos(theta), math.Sin(theta)
		if dx == 0 && dy == 0 {
			continue
		}
		pa := PseudoAngle(dx, dy)
		if pa < prev {
			t.Fatalf("pseudo-angle not monotone at i=%d: prev=%v cur=%v", i, prev, pa)
		}
		prev = pa
	}
}

func TestPseudoAngleRange(t *testing.T) {
	dirs := [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}, {-1, -1}}
	for _, d := range dirs {
		v := PseudoAngle(d[0], d[1])
		if v < 0 || v >= 1 {
			t.Fatalf("pseudo-angle out of [0,1) range: %v for %v", v, d)
		}
	}
}
