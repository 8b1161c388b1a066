package pipeline

import (
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/nurbs"
	"github.com/formlabs-oss/stepmesh/nurbs/knot"
	"github.com/formlabs-oss/stepmesh/step"
	"github.com/formlabs-oss/stepmesh/surface"
)

// buildSurface dispatches a face's underlying surface descriptor to
// the matching surface.Surface implementation. An unrecognized
// surface kind reports ErrUnsupportedSurface so the caller can
// abandon the owning face without aborting the rest of the shell.
func buildSurface(f *step.File, id int) (surface.Surface, error) {
	switch e := f.At(id).(type) {
	case *step.Plane:
		location, axis, ref, err := axis2Placement(f, e.Position)
		if err != nil {
			return nil, err
		}
		return surface.NewPlane(axis, ref, location)
	case *step.CylindricalSurface:
		location, axis, ref, err := axis2Placement(f, e.Position)
		if err != nil {
			return nil, err
		}
		return surface.NewCylinder(axis, ref, location, e.Radius)
	case *step.ConicalSurface:
		location, axis, ref, err := axis2Placement(f, e.Position)
		if err != nil {
			return nil, err
		}
		return surface.NewCone(axis, ref, location, e.SemiAngle)
	case *step.SphericalSurface:
		location, _, _, err := axis2Placement(f, e.Position)
		if err != nil {
			return nil, err
		}
		return surface.NewSphere(location, e.Radius), nil
	case *step.ToroidalSurface:
		location, axis, _, err := axis2Placement(f, e.Position)
		if err != nil {
			return nil, err
		}
		return surface.NewTorus(location, axis, e.MajorRadius, e.MinorRadius), nil
	case *step.BSplineSurfaceWithKnots:
		return buildBSplineSurface(f, e)
	default:
		return nil, ErrUnsupportedSurface
	}
}

func buildBSplineSurface(f *step.File, e *step.BSplineSurfaceWithKnots) (surface.Surface, error) {
	uKnots := knot.FromMultiplicities(e.UDegree, e.UKnots, e.UMultiplicities)
	vKnots := knot.FromMultiplicities(e.VDegree, e.VKnots, e.VMultiplicities)
	uOpen, vOpen := !e.UClosed, !e.VClosed

	net := make([][]geom.Point3, len(e.ControlPointsList))
	for i, row := range e.ControlPointsList {
		net[i] = make([]geom.Point3, len(row))
		for j, id := range row {
			p, err := pointOf(f, id)
			if err != nil {
				return nil, err
			}
			net[i][j] = p
		}
	}

	if e.Weights == nil {
		return surface.NewBSpline(uOpen, vOpen, uKnots, vKnots, net), nil
	}

	homNet := make([][]nurbs.Vec4, len(net))
	for i, row := range net {
		homNet[i] = make([]nurbs.Vec4, len(row))
		for j, p := range row {
			w := 1.0
			if i < len(e.Weights) && j < len(e.Weights[i]) {
				w = e.Weights[i][j]
			}
			homNet[i][j] = nurbs.NewVec4(p, w)
		}
	}
	return surface.NewNURBS(uOpen, vOpen, uKnots, vKnots, homNet), nil
}
