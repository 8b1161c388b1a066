package nurbs

import "github.com/formlabs-oss/stepmesh/nurbs/knot"

// Surface is an N-dimensional tensor-product B-spline surface over
// independent U and V knot vectors. Points[i][j] is indexed by its
// U-direction control index i, then its V-direction index j.
type Surface[V vector[V]] struct {
	UOpen, VOpen   bool
	UKnots, VKnots knot.Vector
	Points         [][]V
}

// NewSurface builds a surface from explicit knot vectors and a
// rectangular control net.
func NewSurface[V vector[V]](uOpen, vOpen bool, uKnots, vKnots knot.Vector, points [][]V) Surface[V] {
	return Surface[V]{UOpen: uOpen, VOpen: vOpen, UKnots: uKnots, VKnots: vKnots, Points: points}
}

func (s Surface[V]) MinU() float64 { return s.UKnots.MinT() }
func (s Surface[V]) MaxU() float64 { return s.UKnots.MaxT() }
func (s Surface[V]) MinV() float64 { return s.VKnots.MinT() }
func (s Surface[V]) MaxV() float64 { return s.VKnots.MaxT() }

// Point evaluates the surface at (u, v). ALGORITHM A3.5.
func (s Surface[V]) Point(u, v float64) V {
	uspan := s.UKnots.FindSpan(u)
	nu := s.UKnots.BasisFunsForSpan(uspan, u)
	vspan := s.VKnots.FindSpan(v)
	nv := s.VKnots.BasisFunsForSpan(vspan, v)
	return s.PointFromBasis(uspan, nu, vspan, nv)
}

// PointFromBasis evaluates the surface given already-computed basis
// rows, letting a caller reuse one direction's basis across several
// evaluations (e.g. the sampled-surface grid builder).
func (s Surface[V]) PointFromBasis(uspan int, nu []float64, vspan int, nv []float64) V {
	p := s.UKnots.Degree()
	q := s.VKnots.Degree()
	uind := uspan - p

	var acc V
	for l := 0; l <= q; l++ {
		vind := vspan - q + l
		var temp V
		for k := 0; k <= p; k++ {
			temp = temp.Add(s.Points[uind+k][vind].Mul(nu[k]))
		}
		acc = acc.Add(temp.Mul(nv[l]))
	}
	return acc
}

// Derivs computes SKL[k][l], the surface differentiated k times in u
// and l times in v, for 0 <= k, l <= e. ALGORITHM A3.6.
func (s Surface[V]) Derivs(u, v float64, e int) [][]V {
	p := s.UKnots.Degree()
	q := s.VKnots.Degree()
	du, dv := e, e
	if p < du {
		du = p
	}
	if q < dv {
		dv = q
	}

	skl := make([][]V, e+1)
	for i := range skl {
		skl[i] = make([]V, e+1)
	}

	uspan := s.UKnots.FindSpan(u)
	nuDeriv := s.UKnots.BasisFunsDerivsForSpan(uspan, u, du)
	vspan := s.VKnots.FindSpan(v)
	nvDeriv := s.VKnots.BasisFunsDerivsForSpan(vspan, v, dv)

	p_ := s.UKnots.Degree()
	q_ := s.VKnots.Degree()
	temp := make([]V, q_+1)
	for k := 0; k <= du; k++ {
		for t := 0; t <= q_; t++ {
			var acc V
			for r := 0; r <= p_; r++ {
				acc = acc.Add(s.Points[uspan-p_+r][vspan-q_+t].Mul(nuDeriv[k][r]))
			}
			temp[t] = acc
		}
		dd := e - k
		if dv < dd {
			dd = dv
		}
		for l := 0; l <= dd; l++ {
			var acc V
			for t := 0; t <= q_; t++ {
				acc = acc.Add(temp[t].Mul(nvDeriv[l][t]))
			}
			skl[k][l] = acc
		}
	}
	return skl
}

// AspectRatio compares the control net's extent along its two indices:
// the summed length of the polygon segments along j (the V index) in
// each row, averaged over rows, divided by the summed length of the
// segments along i (the U index) in each column, averaged over
// columns. The face pipeline multiplies the 2D Y (V) coordinate by it
// so triangulation distances approximate 3D ones.
func (s Surface[V]) AspectRatio() float64 {
	rows := len(s.Points)
	cols := len(s.Points[0])
	var uSum, vSum float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if i > 0 {
				vSum += s.Points[i-1][j].Distance(s.Points[i][j])
			}
			if j > 0 {
				uSum += s.Points[i][j-1].Distance(s.Points[i][j])
			}
		}
	}
	uMean := uSum / float64(rows)
	vMean := vSum / float64(cols)
	return uMean / vMean
}
