// Package geom provides the 2D and 3D point/vector and affine-transform
// primitives shared by every package in the module: the CDT works in
// Point (2D parameter space), the surface and curve abstractions map
// between Point and Point3 (3D model space), and assembly uses Mat4 to
// chain instance transforms.
package geom

import "math"

// Point is a 2D point or vector, used throughout parameter-space code:
// the CDT, the hull, and the lowered loop vertices of a face.
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Mul(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }
func (p Point) Div(s float64) Point { return Point{X: p.X / s, Y: p.Y / s} }

func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the 2D scalar cross product p x q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

func (p Point) Length() float64        { return math.Sqrt(p.X*p.X + p.Y*p.Y) }
func (p Point) LengthSquared() float64 { return p.X*p.X + p.Y*p.Y }
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Finite reports whether both coordinates are finite (not NaN/Inf); the
// CDT fails closed on any input point that is not.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
