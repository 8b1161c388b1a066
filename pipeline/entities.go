package pipeline

import (
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/step"
)

// pointOf resolves a CARTESIAN_POINT reference to a Point3.
func pointOf(f *step.File, id int) (geom.Point3, error) {
	cp, ok := f.At(id).(*step.CartesianPoint)
	if !ok {
		return geom.Point3{}, &EntityTypeError{ID: id, Want: "CartesianPoint"}
	}
	c := cp.Coordinates
	var x, y, z float64
	if len(c) > 0 {
		x = c[0]
	}
	if len(c) > 1 {
		y = c[1]
	}
	if len(c) > 2 {
		z = c[2]
	}
	return geom.Pt3(x, y, z), nil
}

// directionOf resolves a DIRECTION reference to a unit Point3.
func directionOf(f *step.File, id int) (geom.Point3, error) {
	d, ok := f.At(id).(*step.Direction)
	if !ok {
		return geom.Point3{}, &EntityTypeError{ID: id, Want: "Direction"}
	}
	r := d.DirectionRatios
	var x, y, z float64
	if len(r) > 0 {
		x = r[0]
	}
	if len(r) > 1 {
		y = r[1]
	}
	if len(r) > 2 {
		z = r[2]
	}
	return geom.Pt3(x, y, z).Normalize(), nil
}

// directionOrDefault is directionOf, but returns def for an omitted
// (-1) reference instead of an error.
func directionOrDefault(f *step.File, id int, def geom.Point3) geom.Point3 {
	if id < 0 {
		return def
	}
	if d, err := directionOf(f, id); err == nil {
		return d
	}
	return def
}

// axis2Placement resolves an AXIS2_PLACEMENT_3D into its location,
// axis (Z) and reference (X) directions, defaulting the axis and
// reference direction to the world Z/X axes when omitted, matching
// STEP's own default semantics for an unspecified axis2_placement_3d.
func axis2Placement(f *step.File, id int) (location, axis, ref geom.Point3, err error) {
	ap, ok := f.At(id).(*step.Axis2Placement3D)
	if !ok {
		return geom.Point3{}, geom.Point3{}, geom.Point3{}, &EntityTypeError{ID: id, Want: "Axis2Placement3D"}
	}
	location, err = pointOf(f, ap.Location)
	if err != nil {
		return geom.Point3{}, geom.Point3{}, geom.Point3{}, err
	}
	axis = directionOrDefault(f, ap.Axis, geom.Pt3(0, 0, 1))
	ref = directionOrDefault(f, ap.RefDirection, geom.Pt3(1, 0, 0))
	return location, axis, ref, nil
}

// vertexPoint3 resolves a VERTEX_POINT to its 3D position.
func vertexPoint3(f *step.File, id int) (geom.Point3, error) {
	vp, ok := f.At(id).(*step.VertexPoint)
	if !ok {
		return geom.Point3{}, &EntityTypeError{ID: id, Want: "VertexPoint"}
	}
	return pointOf(f, vp.VertexGeometry)
}
