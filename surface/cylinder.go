package surface

import (
	"math"

	"github.com/formlabs-oss/stepmesh/geom"
)

// Cylinder is an infinite right circular cylinder. Before lowering,
// Prepare scans every loop vertex to find the Z extent of its
// projection onto the axis frame; Lower then maps the cylindrical
// strip to a bounded annular region in 2D (instead of theta-z
// coordinates, which wrap awkwardly) by scaling X/Y down as Z
// increases.
type Cylinder struct {
	mat, matInv geom.Mat4
	zMin, zMax  float64
}

// NewCylinder builds a cylinder from its STEP axis2-placement plus radius.
func NewCylinder(axis, refDirection, location geom.Point3, radius float64) (*Cylinder, error) {
	mat := geom.RigidFromZX(axis, refDirection, location)
	inv, ok := mat.Invert()
	if !ok {
		return nil, &NonInvertibleFrameError{Kind: "cylinder"}
	}
	_ = radius // radius does not enter the lowering/normal formulas; kept for API symmetry
	return &Cylinder{mat: mat, matInv: inv}, nil
}

func (c *Cylinder) Prepare(positions []geom.Point3) error {
	zMin, zMax := math.Inf(1), math.Inf(-1)
	for _, p := range positions {
		z := c.matInv.Apply(p).Z
		if z < zMin {
			zMin = z
		}
		if z > zMax {
			zMax = z
		}
	}
	c.zMin, c.zMax = zMin, zMax
	return nil
}

func (c *Cylinder) Lower(p geom.Point3) (geom.Point, error) {
	local := c.matInv.Apply(p)
	z := (local.Z - c.zMin) / (c.zMax - c.zMin)
	scale := 1.0 / (1.0 + z)
	return geom.Pt(local.X*scale, local.Y*scale), nil
}

func (c *Cylinder) Raise(geom.Point) (geom.Point3, bool) { return geom.Point3{}, false }

func (c *Cylinder) Normal(p geom.Point3, _ geom.Point) geom.Point3 {
	local := c.matInv.Apply(p)
	localNormal := geom.Pt3(local.X, local.Y, 0).Normalize()
	return c.mat.ApplyVector(localNormal)
}

func (c *Cylinder) AspectRatio() (float64, bool) { return 0, false }

func (c *Cylinder) AddSteinerPoints(Bounds) []SteinerPoint { return nil }

func (c *Cylinder) Sign() bool { return false }
