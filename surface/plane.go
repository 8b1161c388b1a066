package surface

import "github.com/formlabs-oss/stepmesh/geom"

// Plane is an unbounded planar surface, lowered by the inverse rigid
// transform and dropping the local Z coordinate.
type Plane struct {
	normal geom.Point3
	matInv geom.Mat4
}

// NewPlane builds a plane from its STEP axis2-placement: axis is the
// surface normal, refDirection the in-plane X reference, location the
// placement origin.
func NewPlane(axis, refDirection, location geom.Point3) (*Plane, error) {
	mat := geom.RigidFromZX(axis, refDirection, location)
	inv, ok := mat.Invert()
	if !ok {
		return nil, &NonInvertibleFrameError{Kind: "plane"}
	}
	return &Plane{normal: axis, matInv: inv}, nil
}

func (p *Plane) Prepare([]geom.Point3) error { return nil }

func (p *Plane) Lower(q geom.Point3) (geom.Point, error) {
	local := p.matInv.Apply(q)
	return geom.Pt(local.X, local.Y), nil
}

func (p *Plane) Raise(geom.Point) (geom.Point3, bool) { return geom.Point3{}, false }

func (p *Plane) Normal(geom.Point3, geom.Point) geom.Point3 { return p.normal }

func (p *Plane) AspectRatio() (float64, bool) { return 0, false }

func (p *Plane) AddSteinerPoints(Bounds) []SteinerPoint { return nil }

func (p *Plane) Sign() bool { return false }
