package nurbs

import "github.com/formlabs-oss/stepmesh/geom"

// AbstractCurve is the evaluation surface SampledCurve needs: point
// and derivative evaluation in true 3D space. Curve[geom.Point3] and
// RationalCurve both satisfy it.
type AbstractCurve interface {
	MinU() float64
	MaxU() float64
	Point(u float64) geom.Point3
	Derivs(u float64, d int) []geom.Point3
}

const curveSampleCount = 8

type curveSample struct {
	u float64
	p geom.Point3
}

// SampledCurve wraps a curve evaluator with a precomputed sample grid,
// used to seed Newton iteration when inverting a 3D point back to its
// curve parameter (The NURBS Book, section 6.1).
type SampledCurve struct {
	curve   AbstractCurve
	open    bool
	knots   []float64
	samples []curveSample
}

// NewSampledCurve builds the sample grid: curveSampleCount samples per
// non-degenerate knot span.
func NewSampledCurve(curve AbstractCurve, open bool, knots []float64) *SampledCurve {
	sc := &SampledCurve{curve: curve, open: open, knots: knots}
	for i := 0; i < len(knots)-1; i++ {
		if knots[i] == knots[i+1] {
			continue
		}
		for s := 0; s < curveSampleCount; s++ {
			frac := float64(s) / float64(curveSampleCount-1)
			u := knots[i]*(1-frac) + knots[i+1]*frac
			sc.samples = append(sc.samples, curveSample{u: u, p: curve.Point(u)})
		}
	}
	return sc
}

// UFromPoint finds the curve parameter nearest to P: it seeds Newton
// iteration from the closest precomputed sample.
func (sc *SampledCurve) UFromPoint(p geom.Point3) (float64, error) {
	best := sc.samples[0]
	bestDist := best.p.Distance(p)
	for _, s := range sc.samples[1:] {
		if d := s.p.Distance(p); d < bestDist {
			best, bestDist = s, d
		}
	}
	return sc.uFromPointNewtonsMethod(p, best.u)
}

// uFromPointNewtonsMethod implements The NURBS Book section 6.1's
// point-inversion iteration for curves, clamping or reflecting the
// parameter back into range at each step depending on whether the
// curve is open or closed.
func (sc *SampledCurve) uFromPointNewtonsMethod(p geom.Point3, u0 float64) (float64, error) {
	const eps1 = 0.01
	const eps2 = 0.01
	const maxIter = 256

	minU, maxU := sc.curve.MinU(), sc.curve.MaxU()
	ui := u0
	for iter := 0; iter < maxIter; iter++ {
		d := sc.curve.Derivs(ui, 2)
		c, cp, cpp := d[0], d[1], d[2]
		r := c.Sub(p)

		rLen := r.Length()
		cpLen := cp.Length()
		if rLen <= eps1 && (cpLen == 0 || rLen == 0 || cp.Dot(r)/cpLen/rLen <= eps2) {
			return ui, nil
		}

		denom := cpp.Dot(r) + cp.LengthSquared()
		if denom == 0 {
			return 0, &CouldNotLowerError{Iterations: iter, Reason: "singular Newton denominator"}
		}
		delta := -cp.Dot(r) / denom
		uip1 := ui + delta

		if uip1 < minU {
			if sc.open {
				uip1 = minU
			} else {
				uip1 = maxU - (minU - uip1)
			}
		}
		if uip1 > maxU {
			if sc.open {
				uip1 = maxU
			} else {
				uip1 = minU + (uip1 - maxU)
			}
		}

		if cp.Mul(uip1 - ui).Length() <= eps1 {
			return uip1, nil
		}
		ui = uip1
	}
	return 0, &CouldNotLowerError{Iterations: maxIter, Reason: "exceeded iteration cap"}
}

// AsPolyline samples the curve between uStart and uEnd via its
// underlying evaluator.
func (sc *SampledCurve) AsPolyline(uStart, uEnd float64, numPointsPerKnot int) []geom.Point3 {
	uMin, uMax := uStart, uEnd
	if uMin > uMax {
		uMin, uMax = uMax, uMin
	}

	result := []geom.Point3{sc.curve.Point(uMin)}
	for i := 0; i < len(sc.knots)-1; i++ {
		if sc.knots[i] == sc.knots[i+1] {
			continue
		}
		for s := 0; s < numPointsPerKnot; s++ {
			frac := float64(s) / float64(numPointsPerKnot)
			u := sc.knots[i]*(1-frac) + sc.knots[i+1]*frac
			if u > uMin && u < uMax {
				result = append(result, sc.curve.Point(u))
			}
		}
	}
	result = append(result, sc.curve.Point(uMax))

	if uStart > uEnd {
		for l, r := 0, len(result)-1; l < r; l, r = l+1, r-1 {
			result[l], result[r] = result[r], result[l]
		}
	}
	return result
}
