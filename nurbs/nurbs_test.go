package nurbs

import (
	"math"
	"testing"

	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/nurbs/knot"
)

func clampedCubicKnots() knot.Vector {
	return knot.FromKnots(3, []float64{0, 0, 0, 0, 0.5, 1, 1, 1, 1})
}

// TestSurfaceRoundTripUVInversion implements scenario S6: a 4x4
// control net P[i][j] = (i, j, sin(i+j)) over clamped cubic x cubic
// knots, inverted at a known interior (u, v) and checked to recover
// it within tolerance.
func TestSurfaceRoundTripUVInversion(t *testing.T) {
	uKnots := knot.FromKnots(3, []float64{0, 0, 0, 0, 1, 1, 1, 1})
	vKnots := knot.FromKnots(3, []float64{0, 0, 0, 0, 1, 1, 1, 1})

	points := make([][]geom.Point3, 4)
	for i := range points {
		points[i] = make([]geom.Point3, 4)
		for j := range points[i] {
			points[i][j] = geom.Pt3(float64(i), float64(j), math.Sin(float64(i+j)))
		}
	}
	surf := NewSurface[geom.Point3](true, true, uKnots, vKnots, points)

	const u0, v0 = 0.37, 0.62
	p := surf.Point(u0, v0)

	ss := NewSampledSurface(surfaceAdapter{surf}, uKnots, vKnots)
	u, v, err := ss.UVFromPoint(p)
	if err != nil {
		t.Fatalf("UVFromPoint failed: %v", err)
	}
	if math.Abs(u-u0) > 1e-5 || math.Abs(v-v0) > 1e-5 {
		t.Fatalf("uv = (%v, %v), want (%v, %v)", u, v, u0, v0)
	}

	back := surf.Point(u, v)
	if back.Distance(p) > 1e-6 {
		t.Fatalf("S(uv') = %v, want within 1e-6 of %v", back, p)
	}
}

// surfaceAdapter satisfies AbstractSurface for a non-rational Surface.
type surfaceAdapter struct {
	s Surface[geom.Point3]
}

func (a surfaceAdapter) MinU() float64 { return a.s.MinU() }
func (a surfaceAdapter) MaxU() float64 { return a.s.MaxU() }
func (a surfaceAdapter) MinV() float64 { return a.s.MinV() }
func (a surfaceAdapter) MaxV() float64 { return a.s.MaxV() }
func (a surfaceAdapter) UOpen() bool   { return a.s.UOpen }
func (a surfaceAdapter) VOpen() bool   { return a.s.VOpen }
func (a surfaceAdapter) Point(u, v float64) geom.Point3 { return a.s.Point(u, v) }
func (a surfaceAdapter) PointFromBasis(uspan int, nu []float64, vspan int, nv []float64) geom.Point3 {
	return a.s.PointFromBasis(uspan, nu, vspan, nv)
}
func (a surfaceAdapter) Derivs(u, v float64, e int) [][]geom.Point3 { return a.s.Derivs(u, v, e) }

func TestCurveDerivsZerothOrderMatchesPoint(t *testing.T) {
	points := []geom.Point3{
		geom.Pt3(0, 0, 0),
		geom.Pt3(1, 1, 0),
		geom.Pt3(2, -1, 0),
		geom.Pt3(3, 0, 0),
		geom.Pt3(4, 1, 0),
	}
	c := NewCurve[geom.Point3](true, clampedCubicKnots(), points)
	u := 0.33
	p := c.Point(u)
	d := c.Derivs(u, 2)
	if d[0].Distance(p) > 1e-12 {
		t.Fatalf("0th derivative %v does not match Point %v", d[0], p)
	}
}

func TestCurveAsPolylineIncludesEndpoints(t *testing.T) {
	points := []geom.Point3{
		geom.Pt3(0, 0, 0),
		geom.Pt3(1, 1, 0),
		geom.Pt3(2, -1, 0),
		geom.Pt3(3, 0, 0),
		geom.Pt3(4, 1, 0),
	}
	c := NewCurve[geom.Point3](true, clampedCubicKnots(), points)
	poly := c.AsPolyline(c.MinU(), c.MaxU(), 4)
	if poly[0].Distance(c.Point(c.MinU())) > 1e-12 {
		t.Fatalf("polyline does not start at MinU point")
	}
	if poly[len(poly)-1].Distance(c.Point(c.MaxU())) > 1e-12 {
		t.Fatalf("polyline does not end at MaxU point")
	}
}

func TestCurveAsPolylineReversedWhenRangeFlipped(t *testing.T) {
	points := []geom.Point3{
		geom.Pt3(0, 0, 0),
		geom.Pt3(1, 1, 0),
		geom.Pt3(2, -1, 0),
		geom.Pt3(3, 0, 0),
		geom.Pt3(4, 1, 0),
	}
	c := NewCurve[geom.Point3](true, clampedCubicKnots(), points)
	fwd := c.AsPolyline(c.MinU(), c.MaxU(), 4)
	rev := c.AsPolyline(c.MaxU(), c.MinU(), 4)
	if len(fwd) != len(rev) {
		t.Fatalf("forward/reverse polyline length mismatch: %d vs %d", len(fwd), len(rev))
	}
	if fwd[0].Distance(rev[len(rev)-1]) > 1e-12 {
		t.Fatalf("reversed polyline does not mirror forward one")
	}
}

// TestRationalCircleQuarterArc checks a textbook NURBS quarter-circle
// (weight 1/sqrt(2) at the middle control point) passes through the
// unit circle at its midpoint parameter.
func TestRationalCircleQuarterArc(t *testing.T) {
	w := 1.0 / math.Sqrt2
	ctrl := []Vec4{
		NewVec4(geom.Pt3(1, 0, 0), 1),
		NewVec4(geom.Pt3(1, 1, 0), w),
		NewVec4(geom.Pt3(0, 1, 0), 1),
	}
	knots := knot.FromKnots(2, []float64{0, 0, 0, 1, 1, 1})
	rc := NewRationalCurve(true, knots, ctrl)

	mid := rc.Point(0.5)
	if math.Abs(mid.Length()-1.0) > 1e-9 {
		t.Fatalf("midpoint of rational quarter-circle has radius %v, want 1", mid.Length())
	}
}

func TestAspectRatioUnitGridIsOne(t *testing.T) {
	uKnots := knot.FromKnots(1, []float64{0, 0, 1, 1})
	vKnots := knot.FromKnots(1, []float64{0, 0, 1, 1})
	points := [][]geom.Point3{
		{geom.Pt3(0, 0, 0), geom.Pt3(0, 1, 0)},
		{geom.Pt3(1, 0, 0), geom.Pt3(1, 1, 0)},
	}
	s := NewSurface[geom.Point3](true, true, uKnots, vKnots, points)
	if r := s.AspectRatio(); math.Abs(r-1.0) > 1e-12 {
		t.Fatalf("aspect ratio of a unit grid = %v, want 1", r)
	}
}
