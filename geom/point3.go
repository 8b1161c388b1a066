package geom

import "math"

// Point3 is a 3D point or vector in model space.
type Point3 struct {
	X, Y, Z float64
}

func Pt3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

func (p Point3) Add(q Point3) Point3 { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }
func (p Point3) Sub(q Point3) Point3 { return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }
func (p Point3) Mul(s float64) Point3 { return Point3{p.X * s, p.Y * s, p.Z * s} }
func (p Point3) Div(s float64) Point3 { return Point3{p.X / s, p.Y / s, p.Z / s} }

func (p Point3) Dot(q Point3) float64 { return p.X*q.X + p.Y*q.Y + p.Z*q.Z }

func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

func (p Point3) Length() float64        { return math.Sqrt(p.Dot(p)) }
func (p Point3) LengthSquared() float64 { return p.Dot(p) }
func (p Point3) Distance(q Point3) float64 { return p.Sub(q).Length() }

func (p Point3) Normalize() Point3 {
	l := p.Length()
	if l == 0 {
		return Point3{}
	}
	return Point3{p.X / l, p.Y / l, p.Z / l}
}

func (p Point3) Lerp(q Point3, t float64) Point3 {
	return Point3{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

func (p Point3) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}
