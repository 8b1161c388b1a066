package step

// Entity is implemented by every instance type the decoder produces.
// It carries no methods beyond the marker: all field access is by type
// switch or assertion at the call site, matching the entity graph's
// read-only, forward-reference-by-index design.
type Entity interface {
	isEntity()
}

type baseEntity struct{}

func (baseEntity) isEntity() {}

// CartesianPoint is a CARTESIAN_POINT.
type CartesianPoint struct {
	baseEntity
	Name        string
	Coordinates []float64
}

// Direction is a DIRECTION.
type Direction struct {
	baseEntity
	Name            string
	DirectionRatios []float64
}

// Vector is a VECTOR.
type Vector struct {
	baseEntity
	Name        string
	Orientation int
	Magnitude   float64
}

// Axis2Placement3D is an AXIS2_PLACEMENT_3D. Axis and RefDirection are
// -1 when the file omits them ("$").
type Axis2Placement3D struct {
	baseEntity
	Name         string
	Location     int
	Axis         int
	RefDirection int
}

// VertexPoint is a VERTEX_POINT.
type VertexPoint struct {
	baseEntity
	Name           string
	VertexGeometry int
}

// VertexLoop is a VERTEX_LOOP: an edge loop degenerated to a single
// point, used by cone apexes.
type VertexLoop struct {
	baseEntity
	Name       string
	LoopVertex int
}

// Line is a LINE; Pnt and Dir are ignored by the curve builder, which
// reconstructs the segment directly from its edge's two endpoints.
type Line struct {
	baseEntity
	Name string
	Pnt  int
	Dir  int
}

// Circle is a CIRCLE.
type Circle struct {
	baseEntity
	Name     string
	Position int
	Radius   float64
}

// Ellipse is an ELLIPSE.
type Ellipse struct {
	baseEntity
	Name      string
	Position  int
	SemiAxis1 float64
	SemiAxis2 float64
}

// BSplineCurveWithKnots is a (possibly complex) B_SPLINE_CURVE_WITH_KNOTS
// instance. Weights is non-nil when the same instance also carries a
// RATIONAL_B_SPLINE_CURVE group, in which case the curve is rational.
type BSplineCurveWithKnots struct {
	baseEntity
	Name               string
	Degree             int
	ControlPointsList  []int
	CurveForm          string
	ClosedCurve        bool
	SelfIntersect      bool
	KnotMultiplicities []int
	Knots              []float64
	KnotSpec           string
	Weights            []float64
}

// EdgeCurve is an EDGE_CURVE.
type EdgeCurve struct {
	baseEntity
	Name         string
	EdgeStart    int
	EdgeEnd      int
	EdgeGeometry int
	SameSense    bool
}

// OrientedEdge is an ORIENTED_EDGE.
type OrientedEdge struct {
	baseEntity
	Name        string
	EdgeElement int
	Orientation bool
}

// EdgeLoop is an EDGE_LOOP.
type EdgeLoop struct {
	baseEntity
	Name     string
	EdgeList []int
}

// FaceBound is a FACE_BOUND or FACE_OUTER_BOUND; IsOuter records which.
type FaceBound struct {
	baseEntity
	Name        string
	Bound       int
	Orientation bool
	IsOuter     bool
}

// AdvancedFace is an ADVANCED_FACE.
type AdvancedFace struct {
	baseEntity
	Name         string
	Bounds       []int
	FaceGeometry int
	SameSense    bool
}

// Plane is a PLANE.
type Plane struct {
	baseEntity
	Name     string
	Position int
}

// CylindricalSurface is a CYLINDRICAL_SURFACE.
type CylindricalSurface struct {
	baseEntity
	Name     string
	Position int
	Radius   float64
}

// ConicalSurface is a CONICAL_SURFACE.
type ConicalSurface struct {
	baseEntity
	Name      string
	Position  int
	Radius    float64
	SemiAngle float64
}

// SphericalSurface is a SPHERICAL_SURFACE.
type SphericalSurface struct {
	baseEntity
	Name     string
	Position int
	Radius   float64
}

// ToroidalSurface is a TOROIDAL_SURFACE.
type ToroidalSurface struct {
	baseEntity
	Name        string
	Position    int
	MajorRadius float64
	MinorRadius float64
}

// BSplineSurfaceWithKnots is a (possibly complex)
// B_SPLINE_SURFACE_WITH_KNOTS instance. Weights is non-nil when the
// same instance also carries a RATIONAL_B_SPLINE_SURFACE group.
type BSplineSurfaceWithKnots struct {
	baseEntity
	Name                string
	UDegree             int
	VDegree             int
	ControlPointsList   [][]int
	SurfaceForm         string
	UClosed             bool
	VClosed             bool
	SelfIntersect       bool
	UMultiplicities     []int
	VMultiplicities     []int
	UKnots              []float64
	VKnots              []float64
	KnotSpec            string
	Weights             [][]float64
}

// ClosedShell is a CLOSED_SHELL.
type ClosedShell struct {
	baseEntity
	Name     string
	CfsFaces []int
}

// ManifoldSolidBrep is a MANIFOLD_SOLID_BREP.
type ManifoldSolidBrep struct {
	baseEntity
	Name  string
	Outer int
}

// ShapeRepresentation covers SHAPE_REPRESENTATION,
// ADVANCED_BREP_SHAPE_REPRESENTATION and
// MANIFOLD_SURFACE_SHAPE_REPRESENTATION, which all carry the same two
// fields the pipeline needs: the representation items and its context.
type ShapeRepresentation struct {
	baseEntity
	Name           string
	Items          []int
	ContextOfItems int
}

// ItemDefinedTransformation is an ITEM_DEFINED_TRANSFORMATION.
type ItemDefinedTransformation struct {
	baseEntity
	Name            string
	Description     string
	TransformItem1  int
	TransformItem2  int
}

// RepresentationRelationshipWithTransformation is the complex instance
// combining REPRESENTATION_RELATIONSHIP and
// (SHAPE_)REPRESENTATION_RELATIONSHIP_WITH_TRANSFORMATION: the edge of
// the assembly transform tree, from Rep1 (child) to Rep2 (parent) via
// TransformationOperator (an ItemDefinedTransformation).
type RepresentationRelationshipWithTransformation struct {
	baseEntity
	Name                   string
	Description            string
	Rep1                   int
	Rep2                   int
	TransformationOperator int
}

// StyledItem is a STYLED_ITEM.
type StyledItem struct {
	baseEntity
	Name   string
	Styles []int
	Item   int
}

// PresentationStyleAssignment is a PRESENTATION_STYLE_ASSIGNMENT.
type PresentationStyleAssignment struct {
	baseEntity
	Styles []int
}

// SurfaceStyleUsage is a SURFACE_STYLE_USAGE.
type SurfaceStyleUsage struct {
	baseEntity
	Side  string
	Style int
}

// SurfaceSideStyle is a SURFACE_SIDE_STYLE.
type SurfaceSideStyle struct {
	baseEntity
	Name   string
	Styles []int
}

// SurfaceStyleFillArea is a SURFACE_STYLE_FILL_AREA.
type SurfaceStyleFillArea struct {
	baseEntity
	FillArea int
}

// FillAreaStyle is a FILL_AREA_STYLE.
type FillAreaStyle struct {
	baseEntity
	Name       string
	FillStyles []int
}

// FillAreaStyleColour is a FILL_AREA_STYLE_COLOUR.
type FillAreaStyleColour struct {
	baseEntity
	Name       string
	FillColour int
}

// ColourRgb is a COLOUR_RGB.
type ColourRgb struct {
	baseEntity
	Name               string
	Red, Green, Blue float64
}

// MechanicalDesignGeometricPresentationRepresentation is a
// MECHANICAL_DESIGN_GEOMETRIC_PRESENTATION_REPRESENTATION.
type MechanicalDesignGeometricPresentationRepresentation struct {
	baseEntity
	Name           string
	Items          []int
	ContextOfItems int
}

// Unsupported is produced for instance keywords the decoder recognizes
// by name but does not need to model (e.g. application/administrative
// bookkeeping entities); its presence in a slot distinguishes "parsed,
// uninteresting" from "could not parse at all" (a nil slot).
type Unsupported struct {
	baseEntity
	Keyword string
}
