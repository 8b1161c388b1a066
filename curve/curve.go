// Package curve implements the curve abstraction the face pipeline
// uses to turn a STEP edge (whose endpoints are always the true 3D
// vertex points, never recomputed) into a polyline approximation.
package curve

import (
	"math"

	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/nurbs"
	"github.com/formlabs-oss/stepmesh/nurbs/knot"
)

// Curve is implemented by every supported curve kind.
type Curve interface {
	// Build approximates the curve from u to v (both true 3D
	// endpoints) as a polyline whose first and last points are
	// exactly u and v.
	Build(u, v geom.Point3) []geom.Point3
}

// Line is a straight edge: its polyline is just its two endpoints.
type Line struct{}

func (Line) Build(u, v geom.Point3) []geom.Point3 { return []geom.Point3{u, v} }

// pointsPerKnot is the sampling density used for B-spline/NURBS edges.
const pointsPerKnot = 8

// BSpline is a non-rational B-spline edge curve.
type BSpline struct {
	sampled *nurbs.SampledCurve
}

// NewBSpline builds a B-spline edge curve from an explicit knot vector
// and control net.
func NewBSpline(open bool, knots knot.Vector, points []geom.Point3) *BSpline {
	c := nurbs.NewCurve[geom.Point3](open, knots, points)
	raw := make([]float64, knots.Len())
	for i := range raw {
		raw[i] = knots.At(i)
	}
	sampled := nurbs.NewSampledCurve(c, open, raw)
	return &BSpline{sampled: sampled}
}

func (b *BSpline) Build(u, v geom.Point3) []geom.Point3 {
	return sampledBuild(b.sampled, u, v)
}

// NURBS is a rational B-spline edge curve.
type NURBS struct {
	sampled *nurbs.SampledCurve
}

// NewNURBS builds a NURBS edge curve from an explicit knot vector and
// homogeneous control net.
func NewNURBS(open bool, knots knot.Vector, points []nurbs.Vec4) *NURBS {
	c := nurbs.NewRationalCurve(open, knots, points)
	raw := make([]float64, knots.Len())
	for i := range raw {
		raw[i] = knots.At(i)
	}
	sampled := nurbs.NewSampledCurve(c, open, raw)
	return &NURBS{sampled: sampled}
}

func (n *NURBS) Build(u, v geom.Point3) []geom.Point3 {
	return sampledBuild(n.sampled, u, v)
}

// sampledBuild inverts u and v to curve parameters, samples the
// polyline between them, then snaps the endpoints back to the exact
// 3D vertex positions for numerical accuracy.
func sampledBuild(sampled *nurbs.SampledCurve, u, v geom.Point3) []geom.Point3 {
	tStart, errStart := sampled.UFromPoint(u)
	tEnd, errEnd := sampled.UFromPoint(v)
	if errStart != nil || errEnd != nil {
		return []geom.Point3{u, v}
	}

	c := sampled.AsPolyline(tStart, tEnd, pointsPerKnot)
	if len(c) == 0 {
		return []geom.Point3{u, v}
	}
	c[0] = u
	c[len(c)-1] = v
	return c
}

// Ellipse is an ellipse or circle (radius1 == radius2) edge curve.
type Ellipse struct {
	worldFromEplane geom.Mat4
	eplaneFromWorld geom.Mat4
	closed          bool
	dir             bool
}

// NewEllipse builds an ellipse edge curve. closed marks a full-sweep
// loop (as opposed to an arc bounded by u and v); dir is the curve's
// stored angular direction flag.
func NewEllipse(location, axis, refDirection geom.Point3, radius1, radius2 float64, closed, dir bool) (*Ellipse, error) {
	worldFromEplane := geom.RigidFromAxes(
		refDirection.Mul(radius1),
		axis.Cross(refDirection).Mul(radius2),
		axis,
		location,
	)
	eplaneFromWorld, ok := worldFromEplane.Invert()
	if !ok {
		return nil, &NonInvertibleFrameError{}
	}
	return &Ellipse{worldFromEplane: worldFromEplane, eplaneFromWorld: eplaneFromWorld, closed: closed, dir: dir}, nil
}

// NewCircle is an ellipse with equal radii.
func NewCircle(location, axis, refDirection geom.Point3, radius float64, closed, dir bool) (*Ellipse, error) {
	return NewEllipse(location, axis, refDirection, radius, radius, closed, dir)
}

func (e *Ellipse) Build(u, v geom.Point3) []geom.Point3 {
	uEplane := e.eplaneFromWorld.Apply(u)
	vEplane := e.eplaneFromWorld.Apply(v)

	uAng := math.Atan2(uEplane.Y, uEplane.X)
	vAng := math.Atan2(vEplane.Y, vEplane.X)
	const twoPi = 2 * math.Pi

	switch {
	case e.closed && e.dir:
		vAng = uAng + twoPi
	case e.closed && !e.dir:
		vAng = uAng - twoPi
	case !e.closed && e.dir && vAng <= uAng:
		vAng += twoPi
	case !e.closed && !e.dir && vAng >= uAng:
		vAng -= twoPi
	}

	const samplesPerRevolution = 64
	count := int(math.Round(samplesPerRevolution * math.Abs(uAng-vAng) / twoPi))
	if count < 4 {
		count = 4
	}

	out := []geom.Point3{u}
	for i := 1; i < count-1; i++ {
		frac := float64(i) / float64(count-1)
		ang := uAng*(1-frac) + vAng*frac
		posEplane := geom.Pt3(math.Cos(ang), math.Sin(ang), 0)
		out = append(out, e.worldFromEplane.Apply(posEplane))
	}
	out = append(out, v)
	return out
}
