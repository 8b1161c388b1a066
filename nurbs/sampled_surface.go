package nurbs

import (
	"gonum.org/v1/gonum/mat"

	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/nurbs/knot"
)

// AbstractSurface is the evaluation surface SampledSurface needs:
// point and derivative evaluation in true 3D space. Surface[geom.Point3]
// and RationalSurface both satisfy it.
type AbstractSurface interface {
	MinU() float64
	MaxU() float64
	MinV() float64
	MaxV() float64
	UOpen() bool
	VOpen() bool
	Point(u, v float64) geom.Point3
	PointFromBasis(uspan int, nu []float64, vspan int, nv []float64) geom.Point3
	Derivs(u, v float64, e int) [][]geom.Point3
}

const surfaceSampleCount = 8

type surfaceSample struct {
	u, v float64
	p    geom.Point3
}

// SampledSurface wraps a surface evaluator with a precomputed 8x8
// sample grid per non-degenerate knot-span pair, used to seed Newton
// iteration when inverting a 3D point back to its (u, v) parameters
// (The NURBS Book, section 6.1).
type SampledSurface struct {
	surf    AbstractSurface
	uKnots  knot.Vector
	vKnots  knot.Vector
	samples []surfaceSample
}

// NewSampledSurface builds the sample grid via the surface's
// PointFromBasis, caching the U-direction basis across each V sweep
// exactly as the reference grid builder does.
func NewSampledSurface(surf AbstractSurface, uKnots, vKnots knot.Vector) *SampledSurface {
	ss := &SampledSurface{surf: surf, uKnots: uKnots, vKnots: vKnots}
	for i := 0; i < uKnots.Len()-1; i++ {
		if uKnots.At(i) == uKnots.At(i+1) {
			continue
		}
		for j := 0; j < vKnots.Len()-1; j++ {
			if vKnots.At(j) == vKnots.At(j+1) {
				continue
			}
			for su := 0; su < surfaceSampleCount; su++ {
				fracU := float64(su) / float64(surfaceSampleCount-1)
				u := uKnots.At(i)*(1-fracU) + uKnots.At(i+1)*fracU
				uspan := uKnots.FindSpan(u)
				uBasis := uKnots.BasisFunsForSpan(uspan, u)
				for sv := 0; sv < surfaceSampleCount; sv++ {
					fracV := float64(sv) / float64(surfaceSampleCount-1)
					v := vKnots.At(j)*(1-fracV) + vKnots.At(j+1)*fracV
					vspan := vKnots.FindSpan(v)
					vBasis := vKnots.BasisFunsForSpan(vspan, v)
					q := surf.PointFromBasis(uspan, uBasis, vspan, vBasis)
					ss.samples = append(ss.samples, surfaceSample{u: u, v: v, p: q})
				}
			}
		}
	}
	return ss
}

// UVFromPoint finds the (u, v) parameters nearest to P: it seeds
// Newton iteration from the closest precomputed sample.
func (ss *SampledSurface) UVFromPoint(p geom.Point3) (float64, float64, error) {
	best := ss.samples[0]
	bestDist := best.p.Distance(p)
	for _, s := range ss.samples[1:] {
		if d := s.p.Distance(p); d < bestDist {
			best, bestDist = s, d
		}
	}
	return ss.uvFromPointNewtonsMethod(p, best.u, best.v)
}

// uvFromPointNewtonsMethod implements The NURBS Book section 6.1's
// point-inversion iteration for surfaces. The per-step linear solve
// for the 2x2 Jacobian uses gonum/mat; a singular Jacobian is
// reported as a CouldNotLowerError rather than panicking.
func (ss *SampledSurface) uvFromPointNewtonsMethod(p geom.Point3, u0, v0 float64) (float64, float64, error) {
	const eps1 = 0.01
	const eps2 = 0.01
	const maxIter = 256

	minU, maxU := ss.surf.MinU(), ss.surf.MaxU()
	minV, maxV := ss.surf.MinV(), ss.surf.MaxV()
	uOpen, vOpen := ss.surf.UOpen(), ss.surf.VOpen()

	ui, vi := u0, v0
	for iter := 0; iter < maxIter; iter++ {
		d := ss.surf.Derivs(ui, vi, 2)
		s := d[0][0]
		su := d[1][0]
		sv := d[0][1]
		suu := d[2][0]
		suv := d[1][1]
		svv := d[0][2]
		r := s.Sub(p)

		rLen := r.Length()
		suLen := su.Length()
		svLen := sv.Length()
		if rLen < eps1 &&
			(suLen == 0 || absf(r.Dot(su))/suLen/rLen < eps2) &&
			(svLen == 0 || absf(r.Dot(sv))/svLen/rLen < eps2) {
			return ui, vi, nil
		}

		f := r.Dot(su)
		g := r.Dot(sv)
		a := su.LengthSquared() + r.Dot(suu)
		b := su.Dot(sv) + r.Dot(suv)
		dd := sv.LengthSquared() + r.Dot(svv)

		jac := mat.NewDense(2, 2, []float64{a, b, b, dd})
		var jacInv mat.Dense
		if err := jacInv.Inverse(jac); err != nil {
			return 0, 0, &CouldNotLowerError{Iterations: iter, Reason: "singular surface Jacobian"}
		}
		k := mat.NewVecDense(2, []float64{-f, -g})
		var delta mat.VecDense
		delta.MulVec(&jacInv, k)

		uip1 := ui + delta.AtVec(0)
		vip1 := vi + delta.AtVec(1)

		if uip1 < minU {
			if uOpen {
				uip1 = minU
			} else {
				uip1 = maxU - (minU - uip1)
			}
		}
		if uip1 > maxU {
			if uOpen {
				uip1 = maxU
			} else {
				uip1 = minU + (uip1 - maxU)
			}
		}
		if vip1 < minV {
			if vOpen {
				vip1 = minV
			} else {
				vip1 = maxV - (minV - vip1)
			}
		}
		if vip1 > maxV {
			if vOpen {
				vip1 = maxV
			} else {
				vip1 = minV + (vip1 - maxV)
			}
		}

		du, dv := uip1-ui, vip1-vi
		step := su.Mul(du).Add(sv.Mul(dv))
		if step.Length() < eps1 {
			return uip1, vip1, nil
		}
		ui, vi = uip1, vip1
	}
	return 0, 0, &CouldNotLowerError{Iterations: maxIter, Reason: "exceeded iteration cap"}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
