package pipeline

import (
	"github.com/formlabs-oss/stepmesh/curve"
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/nurbs"
	"github.com/formlabs-oss/stepmesh/nurbs/knot"
	"github.com/formlabs-oss/stepmesh/step"
)

// edgeEndpoints resolves an oriented edge's true traversal direction:
// orientation flips which of the edge curve's two named endpoints
// comes first, but the curve's own angular direction (for circles and
// ellipses) always follows the edge curve's SameSense flag, not the
// oriented edge wrapping it.
func edgeEndpoints(ec *step.EdgeCurve, orientation bool) (startID, endID int, dir bool) {
	dir = ec.SameSense
	if ec.SameSense == orientation {
		return ec.EdgeStart, ec.EdgeEnd, dir
	}
	return ec.EdgeEnd, ec.EdgeStart, dir
}

// buildCurve dispatches an edge curve's geometry entity to the
// matching curve.Curve implementation, returning the 3D start/end
// points the caller should pass to Build. An unrecognized curve kind
// reports ErrUnsupportedCurve so the owning face can be abandoned.
func buildCurve(f *step.File, ec *step.EdgeCurve, orientation bool) (curve.Curve, geom.Point3, geom.Point3, error) {
	startID, endID, dir := edgeEndpoints(ec, orientation)
	u, err := vertexPoint3(f, startID)
	if err != nil {
		return nil, geom.Point3{}, geom.Point3{}, err
	}
	v, err := vertexPoint3(f, endID)
	if err != nil {
		return nil, geom.Point3{}, geom.Point3{}, err
	}
	closed := startID == endID

	switch e := f.At(ec.EdgeGeometry).(type) {
	case *step.Line:
		return curve.Line{}, u, v, nil
	case *step.Circle:
		location, axis, ref, err := axis2Placement(f, e.Position)
		if err != nil {
			return nil, geom.Point3{}, geom.Point3{}, err
		}
		c, err := curve.NewCircle(location, axis, ref, e.Radius, closed, dir)
		return c, u, v, err
	case *step.Ellipse:
		location, axis, ref, err := axis2Placement(f, e.Position)
		if err != nil {
			return nil, geom.Point3{}, geom.Point3{}, err
		}
		c, err := curve.NewEllipse(location, axis, ref, e.SemiAxis1, e.SemiAxis2, closed, dir)
		return c, u, v, err
	case *step.BSplineCurveWithKnots:
		c, err := buildBSplineCurve(f, e)
		return c, u, v, err
	default:
		return nil, geom.Point3{}, geom.Point3{}, ErrUnsupportedCurve
	}
}

func buildBSplineCurve(f *step.File, e *step.BSplineCurveWithKnots) (curve.Curve, error) {
	knots := knot.FromMultiplicities(e.Degree, e.Knots, e.KnotMultiplicities)
	open := !e.ClosedCurve

	points := make([]geom.Point3, len(e.ControlPointsList))
	for i, id := range e.ControlPointsList {
		p, err := pointOf(f, id)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}

	if e.Weights == nil {
		return curve.NewBSpline(open, knots, points), nil
	}

	hom := make([]nurbs.Vec4, len(points))
	for i, p := range points {
		w := 1.0
		if i < len(e.Weights) {
			w = e.Weights[i]
		}
		hom[i] = nurbs.NewVec4(p, w)
	}
	return curve.NewNURBS(open, knots, hom), nil
}
