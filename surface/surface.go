// Package surface implements the analytic and B-spline/NURBS surface
// abstraction the face pipeline lowers loop vertices against: each
// kind knows how to project a 3D model-space point into a 2D
// parameter space suitable for triangulation (Lower), invert that
// projection for Steiner-point placement (Raise), and report an
// outward unit normal (Normal).
package surface

import (
	"math"

	"github.com/formlabs-oss/stepmesh/geom"
)

// Surface is implemented by every supported surface kind (plane,
// cylinder, cone, sphere, torus, B-spline, NURBS).
type Surface interface {
	// Prepare is called once with every loop vertex position before
	// any Lower call, for surface kinds whose parameter frame depends
	// on the vertex set (cylinder's Z range, sphere's and torus'
	// derived axis frame).
	Prepare(positions []geom.Point3) error

	// Lower projects a 3D point already known to lie on the surface
	// into its 2D parameter space.
	Lower(p geom.Point3) (geom.Point, error)

	// Raise inverts Lower, used to place Steiner points. Surface
	// kinds that do not support inversion (plane, cone, cylinder)
	// report ok=false.
	Raise(uv geom.Point) (p geom.Point3, ok bool)

	// Normal reports the outward unit normal at a point, given both
	// its 3D position and already-lowered 2D parameter.
	Normal(p geom.Point3, uv geom.Point) geom.Point3

	// AspectRatio reports the control-net aspect ratio used to
	// rescale the 2D Y axis after lowering. Only B-spline and NURBS
	// surfaces report ok=true.
	AspectRatio() (ratio float64, ok bool)

	// AddSteinerPoints appends interior parameter-domain samples
	// (with their raised 3D position and normal) to improve
	// triangulation fidelity on strongly curved surfaces.
	AddSteinerPoints(bounds Bounds) []SteinerPoint

	// Sign reports whether this surface kind's parametrization
	// flips orientation relative to its outward normal, so the face
	// pipeline can correct triangle winding via same_sense XOR Sign.
	Sign() bool
}

// epsilon matches the reference implementation's use of f64::EPSILON
// as a near-zero threshold for degenerate axis/angle computations.
const epsilon = 2.220446049250313e-16

// SteinerPoint is an internal parameter-domain sample added after the
// main loop vertices have been lowered.
type SteinerPoint struct {
	UV     geom.Point
	Pos    geom.Point3
	Normal geom.Point3
}

// Bounds is the 2D axis-aligned bounding box of a set of lowered
// points, used to place Steiner-point grids.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// BoundsOf computes the bounding box of a set of 2D points.
func BoundsOf(pts []geom.Point) Bounds {
	b := Bounds{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
	for _, p := range pts {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// steinerGrid samples a numPts x numPts grid over bounds, raising
// each (u, v) back to 3D and keeping only the ones the surface
// reports as valid (e.g. within the sphere's angular domain).
func steinerGrid(s Surface, bounds Bounds, numPts int) []SteinerPoint {
	var out []SteinerPoint
	for x := 0; x < numPts; x++ {
		xFrac := (float64(x) + 1.0) / (float64(numPts) + 1.0)
		u := xFrac*bounds.MaxX + (1-xFrac)*bounds.MinX
		for y := 0; y < numPts; y++ {
			yFrac := (float64(y) + 1.0) / (float64(numPts) + 1.0)
			v := yFrac*bounds.MaxY + (1-yFrac)*bounds.MinY

			uv := geom.Pt(u, v)
			pos, ok := s.Raise(uv)
			if !ok {
				continue
			}
			out = append(out, SteinerPoint{UV: uv, Pos: pos, Normal: s.Normal(pos, uv)})
		}
	}
	return out
}

// LowerVerts lowers every position onto the surface's 2D parameter
// space, computing a normal for each, then (for B-spline/NURBS
// surfaces) rescales the Y axis by the control net's aspect ratio so
// that 2D distances better approximate 3D ones.
func LowerVerts(s Surface, positions []geom.Point3) (uvs []geom.Point, normals []geom.Point3, err error) {
	if err := s.Prepare(positions); err != nil {
		return nil, nil, err
	}

	uvs = make([]geom.Point, len(positions))
	normals = make([]geom.Point3, len(positions))
	for i, p := range positions {
		uv, err := s.Lower(p)
		if err != nil {
			return nil, nil, err
		}
		uvs[i] = uv
		normals[i] = s.Normal(p, uv)
	}

	if ratio, ok := s.AspectRatio(); ok {
		for i := range uvs {
			uvs[i].Y *= ratio
		}
	}
	return uvs, normals, nil
}
