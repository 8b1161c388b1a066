package surface

import (
	"math"

	"github.com/formlabs-oss/stepmesh/geom"
)

// Cone is an infinite right circular cone. It shares the plane's rigid
// frame construction but negates the lowered X coordinate to preserve
// winding, since the cone's apex inverts the local handedness of the
// plane frame relative to the outward normal.
type Cone struct {
	mat, matInv geom.Mat4
	angle       float64
}

// NewCone builds a cone from its STEP axis2-placement plus half-angle.
func NewCone(axis, refDirection, location geom.Point3, angle float64) (*Cone, error) {
	mat := geom.RigidFromZX(axis, refDirection, location)
	inv, ok := mat.Invert()
	if !ok {
		return nil, &NonInvertibleFrameError{Kind: "cone"}
	}
	return &Cone{mat: mat, matInv: inv, angle: angle}, nil
}

func (c *Cone) Prepare([]geom.Point3) error { return nil }

func (c *Cone) Lower(p geom.Point3) (geom.Point, error) {
	local := c.matInv.Apply(p)
	return geom.Pt(-local.X, local.Y), nil
}

func (c *Cone) Raise(geom.Point) (geom.Point3, bool) { return geom.Point3{}, false }

func (c *Cone) Normal(p geom.Point3, _ geom.Point) geom.Point3 {
	local := c.matInv.Apply(p)
	xy := geom.Pt(local.X, local.Y)
	if xy.Length() <= epsilon {
		return geom.Point3{}
	}
	xy = xy.Normalize()
	localNormal := geom.Pt3(xy.X*math.Cos(c.angle), xy.Y*math.Cos(c.angle), -math.Sin(c.angle))
	return c.mat.ApplyVector(localNormal)
}

func (c *Cone) AspectRatio() (float64, bool) { return 0, false }

func (c *Cone) AddSteinerPoints(Bounds) []SteinerPoint { return nil }

func (c *Cone) Sign() bool { return false }
