// Package nurbs implements N-dimensional B-spline and NURBS curve and
// surface evaluation (The NURBS Book, chapters 3-4), plus the sampled
// Newton-inversion machinery (chapter 6) used to map a 3D point back
// to its surface or curve parameter.
package nurbs

import (
	"math"

	"github.com/formlabs-oss/stepmesh/geom"
)

// vector is the small numeric interface Curve[V]/Surface[V] need from
// their control-point type: enough to evaluate the Cox-de Boor
// recurrence (Add, Mul) and to measure control-polygon spacing
// (Distance) for the surface aspect ratio. Non-rational curves and
// surfaces instantiate V as geom.Point3; rational ones instantiate V
// as Vec4 and divide out the homogeneous weight afterward.
type vector[V any] interface {
	Add(V) V
	Mul(float64) V
	Distance(V) float64
}

// Vec4 is a homogeneous rational control point (wx, wy, wz, w).
type Vec4 struct {
	X, Y, Z, W float64
}

// NewVec4 lifts a 3D point and its weight into homogeneous form.
func NewVec4(p geom.Point3, w float64) Vec4 {
	return Vec4{X: p.X * w, Y: p.Y * w, Z: p.Z * w, W: w}
}

func (v Vec4) Add(o Vec4) Vec4    { return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }
func (v Vec4) Sub(o Vec4) Vec4    { return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W} }
func (v Vec4) Mul(s float64) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }

// Distance ignores W: it measures 3D control-polygon spacing
// regardless of a rational surface's per-point weights, matching the
// xyz-only distance the aspect-ratio computation needs.
func (v Vec4) Distance(o Vec4) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Dehomogenize divides by W to recover the 3D point.
func (v Vec4) Dehomogenize() geom.Point3 {
	return geom.Pt3(v.X/v.W, v.Y/v.W, v.Z/v.W)
}

// binomial returns the binomial coefficient C(n, k), used by the
// rational derivative recurrence.
func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return result
}
