package nurbs

import "github.com/formlabs-oss/stepmesh/nurbs/knot"

// Curve is an N-dimensional B-spline curve: a degree (carried by
// Knots), an open/closed flag, and a control-point net. Non-rational
// curves instantiate V as geom.Point3; RationalCurve wraps a
// Curve[Vec4] and divides out the homogeneous weight.
type Curve[V vector[V]] struct {
	Open   bool
	Knots  knot.Vector
	Points []V
}

// NewCurve builds a curve from an explicit knot vector and control net.
func NewCurve[V vector[V]](open bool, knots knot.Vector, points []V) Curve[V] {
	return Curve[V]{Open: open, Knots: knots, Points: points}
}

func (c Curve[V]) MinU() float64 { return c.Knots.MinT() }
func (c Curve[V]) MaxU() float64 { return c.Knots.MaxT() }

// Point evaluates the curve at u. ALGORITHM A3.1.
func (c Curve[V]) Point(u float64) V {
	p := c.Knots.Degree()
	span := c.Knots.FindSpan(u)
	n := c.Knots.BasisFunsForSpan(span, u)

	var acc V
	for i := 0; i <= p; i++ {
		acc = acc.Add(c.Points[span-p+i].Mul(n[i]))
	}
	return acc
}

// Derivs computes the 0th through d-th derivatives of the curve at u.
// ALGORITHM A3.2.
func (c Curve[V]) Derivs(u float64, d int) []V {
	p := c.Knots.Degree()
	du := d
	if p < du {
		du = p
	}
	span := c.Knots.FindSpan(u)
	nDeriv := c.Knots.BasisFunsDerivsForSpan(span, u, du)

	ck := make([]V, d+1)
	for k := 0; k <= du; k++ {
		var acc V
		for j := 0; j <= p; j++ {
			acc = acc.Add(c.Points[span-p+j].Mul(nDeriv[k][j]))
		}
		ck[k] = acc
	}
	return ck
}

// AsPolyline samples the curve between uStart and uEnd, emitting the
// endpoints plus numPointsPerKnot interior samples per spanned knot
// interval. The result is reversed if uStart > uEnd.
func (c Curve[V]) AsPolyline(uStart, uEnd float64, numPointsPerKnot int) []V {
	uMin, uMax := uStart, uEnd
	if uMin > uMax {
		uMin, uMax = uMax, uMin
	}

	result := []V{c.Point(uMin)}
	for i := 0; i < c.Knots.Len()-1; i++ {
		if c.Knots.At(i) == c.Knots.At(i+1) {
			continue
		}
		for s := 0; s < numPointsPerKnot; s++ {
			frac := float64(s) / float64(numPointsPerKnot)
			u := c.Knots.At(i)*(1-frac) + c.Knots.At(i+1)*frac
			if u > uMin && u < uMax {
				result = append(result, c.Point(u))
			}
		}
	}
	result = append(result, c.Point(uMax))

	if uStart > uEnd {
		for l, r := 0, len(result)-1; l < r; l, r = l+1, r-1 {
			result[l], result[r] = result[r], result[l]
		}
	}
	return result
}
