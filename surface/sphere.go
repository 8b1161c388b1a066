package surface

import (
	"math"

	"github.com/formlabs-oss/stepmesh/geom"
)

// Sphere lowers a point via its colatitude/azimuth: the 2D parameter
// is the azimuth direction scaled by the colatitude angle, so the
// origin is a pole and the domain is the disk of radius pi. Before
// lowering, Prepare derives a rigid frame from the loop vertices
// themselves, since a sphere entity carries no natural in-plane
// reference direction.
type Sphere struct {
	location geom.Point3
	radius   float64
	mat      geom.Mat4
	matInv   geom.Mat4
}

// NewSphere builds a sphere from its center and radius; its frame is
// completed later by Prepare.
func NewSphere(location geom.Point3, radius float64) *Sphere {
	return &Sphere{location: location, radius: radius, mat: geom.Identity4(), matInv: geom.Identity4()}
}

func (s *Sphere) Prepare(positions []geom.Point3) error {
	refDirection := positions[0].Sub(s.location).Normalize()
	last := positions[len(positions)-1].Sub(s.location).Normalize()
	axis := refDirection.Cross(last).Normalize()

	mat := geom.RigidFromZX(axis, refDirection, s.location)
	inv, ok := mat.Invert()
	if !ok {
		return &NonInvertibleFrameError{Kind: "sphere"}
	}
	s.mat, s.matInv = mat, inv
	return nil
}

func (s *Sphere) Lower(p geom.Point3) (geom.Point, error) {
	local := s.matInv.Apply(p).Div(s.radius)
	yz := geom.Pt(local.Y, local.Z)
	r := yz.Length()
	angle := math.Atan2(r, local.X)
	if yz.Length() < epsilon {
		return yz, nil
	}
	return yz.Mul(angle / yz.Length()), nil
}

func (s *Sphere) Raise(uv geom.Point) (geom.Point3, bool) {
	angle := uv.Length()
	if angle > math.Pi {
		return geom.Point3{}, false
	}
	x := math.Cos(angle)

	var local geom.Point3
	if uv.Length() < epsilon {
		local = geom.Pt3(x, 0, 0)
	} else {
		n := uv.Normalize()
		yzLen := math.Sin(angle)
		local = geom.Pt3(x, n.X*yzLen, n.Y*yzLen)
	}
	local = local.Mul(s.radius)
	return s.mat.Apply(local), true
}

func (s *Sphere) Normal(p geom.Point3, _ geom.Point) geom.Point3 {
	return p.Sub(s.location).Normalize()
}

func (s *Sphere) AspectRatio() (float64, bool) { return 0, false }

func (s *Sphere) AddSteinerPoints(bounds Bounds) []SteinerPoint {
	return steinerGrid(s, bounds, 6)
}

func (s *Sphere) Sign() bool { return false }
