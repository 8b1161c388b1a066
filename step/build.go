package step

import "fmt"

// buildEntity constructs a concrete Entity from a simple instance's
// keyword and argument list, in the field order the source schema's
// generated tuple variants use. Unrecognized keywords produce an
// Unsupported entity rather than an error, matching the source
// decoder's "parse what we understand, ignore the rest" posture.
func buildEntity(name string, args []value) (Entity, error) {
	arg := func(i int) value {
		if i < len(args) {
			return args[i]
		}
		return nil
	}
	switch name {
	case "CARTESIAN_POINT":
		return &CartesianPoint{Name: asString(arg(0)), Coordinates: asFloatList(arg(1))}, nil
	case "DIRECTION":
		return &Direction{Name: asString(arg(0)), DirectionRatios: asFloatList(arg(1))}, nil
	case "VECTOR":
		return &Vector{Name: asString(arg(0)), Orientation: asOptionalRef(arg(1)), Magnitude: asFloat(arg(2))}, nil
	case "AXIS2_PLACEMENT_3D":
		return &Axis2Placement3D{
			Name:         asString(arg(0)),
			Location:     asOptionalRef(arg(1)),
			Axis:         asOptionalRef(arg(2)),
			RefDirection: asOptionalRef(arg(3)),
		}, nil
	case "VERTEX_POINT":
		return &VertexPoint{Name: asString(arg(0)), VertexGeometry: asOptionalRef(arg(1))}, nil
	case "VERTEX_LOOP":
		return &VertexLoop{Name: asString(arg(0)), LoopVertex: asOptionalRef(arg(1))}, nil
	case "LINE":
		return &Line{Name: asString(arg(0)), Pnt: asOptionalRef(arg(1)), Dir: asOptionalRef(arg(2))}, nil
	case "CIRCLE":
		return &Circle{Name: asString(arg(0)), Position: asOptionalRef(arg(1)), Radius: asFloat(arg(2))}, nil
	case "ELLIPSE":
		return &Ellipse{
			Name: asString(arg(0)), Position: asOptionalRef(arg(1)),
			SemiAxis1: asFloat(arg(2)), SemiAxis2: asFloat(arg(3)),
		}, nil
	case "B_SPLINE_CURVE_WITH_KNOTS":
		return buildBSplineCurve(args), nil
	case "EDGE_CURVE":
		return &EdgeCurve{
			Name: asString(arg(0)), EdgeStart: asOptionalRef(arg(1)), EdgeEnd: asOptionalRef(arg(2)),
			EdgeGeometry: asOptionalRef(arg(3)), SameSense: asBool(arg(4)),
		}, nil
	case "ORIENTED_EDGE":
		return &OrientedEdge{Name: asString(arg(0)), EdgeElement: asOptionalRef(arg(1)), Orientation: asBool(arg(2))}, nil
	case "EDGE_LOOP":
		return &EdgeLoop{Name: asString(arg(0)), EdgeList: asRefList(arg(1))}, nil
	case "FACE_BOUND":
		return &FaceBound{Name: asString(arg(0)), Bound: asOptionalRef(arg(1)), Orientation: asBool(arg(2))}, nil
	case "FACE_OUTER_BOUND":
		return &FaceBound{Name: asString(arg(0)), Bound: asOptionalRef(arg(1)), Orientation: asBool(arg(2)), IsOuter: true}, nil
	case "ADVANCED_FACE":
		return &AdvancedFace{
			Name: asString(arg(0)), Bounds: asRefList(arg(1)),
			FaceGeometry: asOptionalRef(arg(2)), SameSense: asBool(arg(3)),
		}, nil
	case "PLANE":
		return &Plane{Name: asString(arg(0)), Position: asOptionalRef(arg(1))}, nil
	case "CYLINDRICAL_SURFACE":
		return &CylindricalSurface{Name: asString(arg(0)), Position: asOptionalRef(arg(1)), Radius: asFloat(arg(2))}, nil
	case "CONICAL_SURFACE":
		return &ConicalSurface{
			Name: asString(arg(0)), Position: asOptionalRef(arg(1)),
			Radius: asFloat(arg(2)), SemiAngle: asFloat(arg(3)),
		}, nil
	case "SPHERICAL_SURFACE":
		return &SphericalSurface{Name: asString(arg(0)), Position: asOptionalRef(arg(1)), Radius: asFloat(arg(2))}, nil
	case "TOROIDAL_SURFACE":
		return &ToroidalSurface{
			Name: asString(arg(0)), Position: asOptionalRef(arg(1)),
			MajorRadius: asFloat(arg(2)), MinorRadius: asFloat(arg(3)),
		}, nil
	case "B_SPLINE_SURFACE_WITH_KNOTS":
		return buildBSplineSurface(args), nil
	case "CLOSED_SHELL":
		return &ClosedShell{Name: asString(arg(0)), CfsFaces: asRefList(arg(1))}, nil
	case "MANIFOLD_SOLID_BREP":
		return &ManifoldSolidBrep{Name: asString(arg(0)), Outer: asOptionalRef(arg(1))}, nil
	case "SHAPE_REPRESENTATION", "ADVANCED_BREP_SHAPE_REPRESENTATION", "MANIFOLD_SURFACE_SHAPE_REPRESENTATION":
		return &ShapeRepresentation{Name: asString(arg(0)), Items: asRefList(arg(1)), ContextOfItems: asOptionalRef(arg(2))}, nil
	case "ITEM_DEFINED_TRANSFORMATION":
		return &ItemDefinedTransformation{
			Name: asString(arg(0)), Description: asString(arg(1)),
			TransformItem1: asOptionalRef(arg(2)), TransformItem2: asOptionalRef(arg(3)),
		}, nil
	case "STYLED_ITEM":
		return &StyledItem{Name: asString(arg(0)), Styles: asRefList(arg(1)), Item: asOptionalRef(arg(2))}, nil
	case "PRESENTATION_STYLE_ASSIGNMENT":
		return &PresentationStyleAssignment{Styles: asRefList(arg(0))}, nil
	case "SURFACE_STYLE_USAGE":
		return &SurfaceStyleUsage{Side: string(enumOf(arg(0))), Style: asOptionalRef(arg(1))}, nil
	case "SURFACE_SIDE_STYLE":
		return &SurfaceSideStyle{Name: asString(arg(0)), Styles: asRefList(arg(1))}, nil
	case "SURFACE_STYLE_FILL_AREA":
		return &SurfaceStyleFillArea{FillArea: asOptionalRef(arg(0))}, nil
	case "FILL_AREA_STYLE":
		return &FillAreaStyle{Name: asString(arg(0)), FillStyles: asRefList(arg(1))}, nil
	case "FILL_AREA_STYLE_COLOUR":
		return &FillAreaStyleColour{Name: asString(arg(0)), FillColour: asOptionalRef(arg(1))}, nil
	case "COLOUR_RGB":
		return &ColourRgb{Name: asString(arg(0)), Red: asFloat(arg(1)), Green: asFloat(arg(2)), Blue: asFloat(arg(3))}, nil
	case "MECHANICAL_DESIGN_GEOMETRIC_PRESENTATION_REPRESENTATION":
		return &MechanicalDesignGeometricPresentationRepresentation{
			Name: asString(arg(0)), Items: asRefList(arg(1)), ContextOfItems: asOptionalRef(arg(2)),
		}, nil
	default:
		return &Unsupported{Keyword: name}, nil
	}
}

func enumOf(v value) Enum {
	e, _ := v.(Enum)
	return e
}

func buildBSplineCurve(args []value) *BSplineCurveWithKnots {
	arg := func(i int) value {
		if i < len(args) {
			return args[i]
		}
		return nil
	}
	return &BSplineCurveWithKnots{
		Name:               asString(arg(0)),
		Degree:             int(asFloat(arg(1))),
		ControlPointsList:  asRefList(arg(2)),
		CurveForm:          string(enumOf(arg(3))),
		ClosedCurve:        asBool(arg(4)),
		SelfIntersect:      asBool(arg(5)),
		KnotMultiplicities: asIntList(arg(6)),
		Knots:              asFloatList(arg(7)),
		KnotSpec:           string(enumOf(arg(8))),
	}
}

func buildBSplineSurface(args []value) *BSplineSurfaceWithKnots {
	arg := func(i int) value {
		if i < len(args) {
			return args[i]
		}
		return nil
	}
	return &BSplineSurfaceWithKnots{
		Name:              asString(arg(0)),
		UDegree:           int(asFloat(arg(1))),
		VDegree:           int(asFloat(arg(2))),
		ControlPointsList: asRefListList(arg(3)),
		SurfaceForm:       string(enumOf(arg(4))),
		UClosed:           asBool(arg(5)),
		VClosed:           asBool(arg(6)),
		SelfIntersect:     asBool(arg(7)),
		UMultiplicities:   asIntList(arg(8)),
		VMultiplicities:   asIntList(arg(9)),
		UKnots:            asFloatList(arg(10)),
		VKnots:            asFloatList(arg(11)),
		KnotSpec:          string(enumOf(arg(12))),
	}
}

// buildComplexEntity merges the named groups of an AP214 complex
// instance into a single Entity. The two cases the pipeline actually
// needs are rational B-spline curves/surfaces (a
// B_SPLINE_*_WITH_KNOTS group plus a RATIONAL_B_SPLINE_* group
// carrying weights) and representation-relationship-with-transformation
// (a REPRESENTATION_RELATIONSHIP group plus a
// REPRESENTATION_RELATIONSHIP_WITH_TRANSFORMATION group); every other
// supertype group in a complex instance (CURVE, SURFACE,
// GEOMETRIC_REPRESENTATION_ITEM, BOUNDED_CURVE, REPRESENTATION_ITEM,
// and similar EXPRESS supertypes) carries no data the pipeline reads
// and is ignored.
func buildComplexEntity(order []string, groups map[string][]value) (Entity, error) {
	if args, ok := groups["B_SPLINE_CURVE_WITH_KNOTS"]; ok {
		c := buildBSplineCurve(args)
		if w, ok := groups["RATIONAL_B_SPLINE_CURVE"]; ok && len(w) > 0 {
			c.Weights = asFloatList(w[0])
		}
		return c, nil
	}
	if args, ok := groups["B_SPLINE_SURFACE_WITH_KNOTS"]; ok {
		s := buildBSplineSurface(args)
		if w, ok := groups["RATIONAL_B_SPLINE_SURFACE"]; ok && len(w) > 0 {
			rows, _ := w[0].([]value)
			s.Weights = make([][]float64, 0, len(rows))
			for _, row := range rows {
				s.Weights = append(s.Weights, asFloatList(row))
			}
		}
		return s, nil
	}
	if rrArgs, ok := groups["REPRESENTATION_RELATIONSHIP"]; ok {
		r := &RepresentationRelationshipWithTransformation{}
		arg := func(i int) value {
			if i < len(rrArgs) {
				return rrArgs[i]
			}
			return nil
		}
		r.Name = asString(arg(0))
		r.Description = asString(arg(1))
		r.Rep1 = asOptionalRef(arg(2))
		r.Rep2 = asOptionalRef(arg(3))
		if t, ok := groups["REPRESENTATION_RELATIONSHIP_WITH_TRANSFORMATION"]; ok && len(t) > 0 {
			r.TransformationOperator = asOptionalRef(t[0])
		} else if t, ok := groups["SHAPE_REPRESENTATION_RELATIONSHIP_WITH_TRANSFORMATION"]; ok && len(t) > 0 {
			r.TransformationOperator = asOptionalRef(t[0])
		}
		return r, nil
	}
	// Fall back to the first recognizable simple group in declaration
	// order (e.g. a MANIFOLD_SOLID_BREP wrapped with bookkeeping
	// supertypes), or an Unsupported marker if none of them are ones we
	// model.
	for _, name := range order {
		if ent, err := buildEntity(name, groups[name]); err == nil {
			if _, unsupported := ent.(*Unsupported); !unsupported {
				return ent, nil
			}
		}
	}
	return &Unsupported{Keyword: fmt.Sprintf("complex(%v)", order)}, nil
}
