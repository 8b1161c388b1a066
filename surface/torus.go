package surface

import (
	"math"

	"github.com/formlabs-oss/stepmesh/geom"
)

// Torus lowers a point as nested "circles" in the minor-angle plane,
// whose radii scale with the major angle so that the 2D map is
// locally quasi-isometric. Before lowering, Prepare builds a local
// frame whose Z axis is the mean direction of the loop vertices,
// perpendicularized against the torus axis, and whose X axis is the
// torus axis.
type Torus struct {
	axis, location           geom.Point3
	majorRadius, minorRadius float64
	mat, matInv              geom.Mat4
}

// NewTorus builds a torus from its center, axis, and major/minor radii.
func NewTorus(location, axis geom.Point3, majorRadius, minorRadius float64) *Torus {
	return &Torus{
		axis: axis, location: location,
		majorRadius: majorRadius, minorRadius: minorRadius,
		mat: geom.Identity4(), matInv: geom.Identity4(),
	}
}

func (t *Torus) Prepare(positions []geom.Point3) error {
	var meanDir geom.Point3
	for _, p := range positions {
		meanDir = meanDir.Add(p.Sub(t.location))
	}
	meanDir = meanDir.Normalize()
	meanPerpDir := meanDir.Sub(t.axis.Mul(meanDir.Dot(t.axis))).Normalize()

	mat := geom.RigidFromZX(meanPerpDir, t.axis, t.location)
	inv, ok := mat.Invert()
	if !ok {
		return &NonInvertibleFrameError{Kind: "torus"}
	}
	t.mat, t.matInv = mat, inv
	return nil
}

func (t *Torus) Lower(p geom.Point3) (geom.Point, error) {
	local := t.matInv.Apply(p)
	majorAngle := math.Atan2(local.Y, local.Z)

	zDir := geom.Pt3(0, math.Sin(majorAngle), math.Cos(majorAngle))
	ringMat := geom.RigidFromZX(zDir, geom.Pt3(1, 0, 0), zDir.Mul(t.majorRadius))
	ringInv, ok := ringMat.Invert()
	if !ok {
		return geom.Point{}, &NonInvertibleFrameError{Kind: "torus minor-ring"}
	}
	newP := ringInv.Apply(local)

	minorAngle := math.Atan2(newP.X, newP.Z)
	scale := 1.0 + (t.majorRadius/t.minorRadius)*(majorAngle+math.Pi)/(2*math.Pi)

	x := math.Cos(minorAngle)
	if t.majorRadius > 0 {
		x = -x
	}
	return geom.Pt(scale*x, scale*math.Sin(minorAngle)), nil
}

func (t *Torus) Raise(uv geom.Point) (geom.Point3, bool) {
	if t.majorRadius > 0 {
		uv.X *= -1
	}
	minorAngle := math.Atan2(uv.Y, uv.X)
	majorAngle := (uv.Length()-1.0)/(t.majorRadius/t.minorRadius)*2*math.Pi - math.Pi

	newP := geom.Pt3(math.Sin(minorAngle), 0, math.Cos(minorAngle)).Mul(t.minorRadius)

	zDir := geom.Pt3(0, math.Sin(majorAngle), math.Cos(majorAngle))
	ringMat := geom.RigidFromZX(zDir, geom.Pt3(1, 0, 0), zDir.Mul(t.majorRadius))
	local := ringMat.Apply(newP)

	return t.mat.Apply(local), true
}

func (t *Torus) Normal(p geom.Point3, _ geom.Point) geom.Point3 {
	local := t.matInv.Apply(p)
	majorAngle := math.Atan2(local.Y, local.Z)
	ring := geom.Pt3(0, math.Sin(majorAngle), math.Cos(majorAngle)).Mul(t.majorRadius)
	localNormal := local.Sub(ring).Normalize()
	return t.mat.ApplyVector(localNormal)
}

func (t *Torus) AspectRatio() (float64, bool) { return 0, false }

func (t *Torus) AddSteinerPoints(bounds Bounds) []SteinerPoint {
	return steinerGrid(t, bounds, 32)
}

// Sign reports whether the 2D chart is reversed relative to the outward
// normal. Lower/Raise mirror the X axis whenever majorRadius is
// positive, which brings the chart into agreement with the normal; when
// majorRadius <= 0 no mirror is applied and Sign reports true.
func (t *Torus) Sign() bool { return t.majorRadius <= 0 }
