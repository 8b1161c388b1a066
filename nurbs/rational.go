package nurbs

import (
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/nurbs/knot"
)

// RationalCurve is a NURBS curve: a Curve[Vec4] over homogeneous
// control points, evaluated with the perspective divide and the
// rational-derivative recurrence.
type RationalCurve struct {
	inner Curve[Vec4]
}

// NewRationalCurve builds a NURBS curve from homogeneous control points.
func NewRationalCurve(open bool, knots knot.Vector, points []Vec4) RationalCurve {
	return RationalCurve{inner: NewCurve(open, knots, points)}
}

func (c RationalCurve) MinU() float64 { return c.inner.MinU() }
func (c RationalCurve) MaxU() float64 { return c.inner.MaxU() }
func (c RationalCurve) Open() bool    { return c.inner.Open }

// Point evaluates the curve at u, dividing out the homogeneous weight.
func (c RationalCurve) Point(u float64) geom.Point3 {
	return c.inner.Point(u).Dehomogenize()
}

// Derivs computes the 0th through d-th derivatives of the curve in
// true 3D space, applying the standard rational-derivative recurrence
// (binomial-weighted subtraction of lower-order w-derivatives) to the
// homogeneous derivatives.
func (c RationalCurve) Derivs(u float64, d int) []geom.Point3 {
	h := c.inner.Derivs(u, d)
	ck := make([]geom.Point3, d+1)
	for k := 0; k <= d; k++ {
		v := geom.Pt3(h[k].X, h[k].Y, h[k].Z)
		for i := 1; i <= k; i++ {
			v = v.Sub(ck[k-i].Mul(binomial(k, i) * h[i].W))
		}
		ck[k] = v.Div(h[0].W)
	}
	return ck
}

// RationalSurface is a NURBS surface: a Surface[Vec4] over homogeneous
// control points, evaluated with the perspective divide and the 2D
// rational-derivative recurrence.
type RationalSurface struct {
	inner Surface[Vec4]
}

// NewRationalSurface builds a NURBS surface from homogeneous control points.
func NewRationalSurface(uOpen, vOpen bool, uKnots, vKnots knot.Vector, points [][]Vec4) RationalSurface {
	return RationalSurface{inner: NewSurface(uOpen, vOpen, uKnots, vKnots, points)}
}

func (s RationalSurface) MinU() float64 { return s.inner.MinU() }
func (s RationalSurface) MaxU() float64 { return s.inner.MaxU() }
func (s RationalSurface) MinV() float64 { return s.inner.MinV() }
func (s RationalSurface) MaxV() float64 { return s.inner.MaxV() }
func (s RationalSurface) UOpen() bool   { return s.inner.UOpen }
func (s RationalSurface) VOpen() bool   { return s.inner.VOpen }
func (s RationalSurface) AspectRatio() float64 { return s.inner.AspectRatio() }

func (s RationalSurface) Point(u, v float64) geom.Point3 {
	return s.inner.Point(u, v).Dehomogenize()
}

func (s RationalSurface) PointFromBasis(uspan int, nu []float64, vspan int, nv []float64) geom.Point3 {
	return s.inner.PointFromBasis(uspan, nu, vspan, nv).Dehomogenize()
}

// Derivs computes SKL[k][l] in true 3D space via the rational
// derivative recurrence: subtract the binomial-weighted contribution
// of lower-order homogeneous derivatives (in both u and v) before
// dividing by the 0th-order weight.
func (s RationalSurface) Derivs(u, v float64, e int) [][]geom.Point3 {
	h := s.inner.Derivs(u, v, e)
	skl := make([][]geom.Point3, e+1)
	for i := range skl {
		skl[i] = make([]geom.Point3, e+1)
	}

	for k := 0; k <= e; k++ {
		for l := 0; l <= e-k; l++ {
			val := geom.Pt3(h[k][l].X, h[k][l].Y, h[k][l].Z)
			for j := 1; j <= l; j++ {
				val = val.Sub(skl[k][l-j].Mul(binomial(l, j) * h[0][j].W))
			}
			for i := 1; i <= k; i++ {
				val = val.Sub(skl[k-i][l].Mul(binomial(k, i) * h[i][0].W))
				var v2 geom.Point3
				for j := 1; j <= l; j++ {
					v2 = v2.Add(skl[k-i][l-j].Mul(binomial(l, j) * h[i][j].W))
				}
				val = val.Sub(v2.Mul(binomial(k, i)))
			}
			skl[k][l] = val.Div(h[0][0].W)
		}
	}
	return skl
}
