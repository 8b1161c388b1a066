package surface

import (
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/nurbs"
	"github.com/formlabs-oss/stepmesh/nurbs/knot"
)

// nonRationalAdapter exposes a nurbs.Surface[geom.Point3] as a
// nurbs.AbstractSurface: Surface[V]'s UOpen/VOpen are exported fields,
// which would collide with method names of the same identity on the
// same type, so the method forwarding lives on this separate adapter.
type nonRationalAdapter struct {
	s nurbs.Surface[geom.Point3]
}

func (a nonRationalAdapter) MinU() float64 { return a.s.MinU() }
func (a nonRationalAdapter) MaxU() float64 { return a.s.MaxU() }
func (a nonRationalAdapter) MinV() float64 { return a.s.MinV() }
func (a nonRationalAdapter) MaxV() float64 { return a.s.MaxV() }
func (a nonRationalAdapter) UOpen() bool   { return a.s.UOpen }
func (a nonRationalAdapter) VOpen() bool   { return a.s.VOpen }
func (a nonRationalAdapter) Point(u, v float64) geom.Point3 {
	return a.s.Point(u, v)
}
func (a nonRationalAdapter) PointFromBasis(uspan int, nu []float64, vspan int, nv []float64) geom.Point3 {
	return a.s.PointFromBasis(uspan, nu, vspan, nv)
}
func (a nonRationalAdapter) Derivs(u, v float64, e int) [][]geom.Point3 {
	return a.s.Derivs(u, v, e)
}

// BSpline is a non-rational tensor-product B-spline surface, inverted
// via a precomputed Newton-seed grid (§4.I) rather than a closed form.
type BSpline struct {
	surf     nurbs.Surface[geom.Point3]
	sampled  *nurbs.SampledSurface
}

// NewBSpline builds a B-spline surface from explicit knot vectors and
// a rectangular, non-rational control net.
func NewBSpline(uOpen, vOpen bool, uKnots, vKnots knot.Vector, points [][]geom.Point3) *BSpline {
	surf := nurbs.NewSurface[geom.Point3](uOpen, vOpen, uKnots, vKnots, points)
	sampled := nurbs.NewSampledSurface(nonRationalAdapter{surf}, uKnots, vKnots)
	return &BSpline{surf: surf, sampled: sampled}
}

func (b *BSpline) Prepare([]geom.Point3) error { return nil }

func (b *BSpline) Lower(p geom.Point3) (geom.Point, error) {
	u, v, err := b.sampled.UVFromPoint(p)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(u, v), nil
}

func (b *BSpline) Raise(uv geom.Point) (geom.Point3, bool) {
	return b.surf.Point(uv.X, uv.Y), true
}

func (b *BSpline) Normal(_ geom.Point3, uv geom.Point) geom.Point3 {
	d := b.surf.Derivs(uv.X, uv.Y, 1)
	return d[1][0].Cross(d[0][1]).Normalize()
}

func (b *BSpline) AspectRatio() (float64, bool) { return b.surf.AspectRatio(), true }

func (b *BSpline) AddSteinerPoints(Bounds) []SteinerPoint { return nil }

func (b *BSpline) Sign() bool { return false }

// NURBS is a rational tensor-product B-spline surface.
type NURBS struct {
	surf    nurbs.RationalSurface
	sampled *nurbs.SampledSurface
}

// NewNURBS builds a NURBS surface from explicit knot vectors and a
// rectangular homogeneous control net.
func NewNURBS(uOpen, vOpen bool, uKnots, vKnots knot.Vector, points [][]nurbs.Vec4) *NURBS {
	surf := nurbs.NewRationalSurface(uOpen, vOpen, uKnots, vKnots, points)
	sampled := nurbs.NewSampledSurface(surf, uKnots, vKnots)
	return &NURBS{surf: surf, sampled: sampled}
}

func (n *NURBS) Prepare([]geom.Point3) error { return nil }

func (n *NURBS) Lower(p geom.Point3) (geom.Point, error) {
	u, v, err := n.sampled.UVFromPoint(p)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(u, v), nil
}

func (n *NURBS) Raise(uv geom.Point) (geom.Point3, bool) {
	return n.surf.Point(uv.X, uv.Y), true
}

func (n *NURBS) Normal(_ geom.Point3, uv geom.Point) geom.Point3 {
	d := n.surf.Derivs(uv.X, uv.Y, 1)
	return d[1][0].Cross(d[0][1]).Normalize()
}

func (n *NURBS) AspectRatio() (float64, bool) { return n.surf.AspectRatio(), true }

func (n *NURBS) AddSteinerPoints(Bounds) []SteinerPoint { return nil }

func (n *NURBS) Sign() bool { return false }
