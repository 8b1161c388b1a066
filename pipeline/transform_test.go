package pipeline

import (
	"testing"

	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/step"
)

// twoLevelAssemblyFile builds a child representation placed once under
// a parent representation via a single item_defined_transformation
// that translates by (dx, dy, dz), with no rotation.
func twoLevelAssemblyFile(dx, dy, dz float64) (f *step.File, childRepID, parentRepID, transformID int) {
	var ff step.File
	add := func(e step.Entity) int {
		ff.Entities = append(ff.Entities, e)
		return len(ff.Entities) - 1
	}

	zero := add(&step.CartesianPoint{Coordinates: []float64{0, 0, 0}})
	translated := add(&step.CartesianPoint{Coordinates: []float64{dx, dy, dz}})
	axisZ := add(&step.Direction{DirectionRatios: []float64{0, 0, 1}})
	axisX := add(&step.Direction{DirectionRatios: []float64{1, 0, 0}})

	childFrame := add(&step.Axis2Placement3D{Location: zero, Axis: axisZ, RefDirection: axisX})
	parentFrame := add(&step.Axis2Placement3D{Location: translated, Axis: axisZ, RefDirection: axisX})

	idt := add(&step.ItemDefinedTransformation{TransformItem1: childFrame, TransformItem2: parentFrame})

	childRep := add(&step.ShapeRepresentation{})
	parentRep := add(&step.ShapeRepresentation{})
	add(&step.RepresentationRelationshipWithTransformation{
		Rep1: childRep, Rep2: parentRep, TransformationOperator: idt,
	})

	return &ff, childRep, parentRep, idt
}

func TestResolveTransformsAppliesTranslation(t *testing.T) {
	f, childRep, _, _ := twoLevelAssemblyFile(3, 4, 5)
	rels := relationshipsByRep1(f)

	transforms := resolveTransforms(f, rels, childRep)
	if len(transforms) != 1 {
		t.Fatalf("expected exactly one placement, got %d", len(transforms))
	}
	got := transforms[0].Apply(geom.Pt3(0, 0, 0))
	want := geom.Pt3(3, 4, 5)
	if got.Distance(want) > 1e-9 {
		t.Fatalf("resolveTransforms: got %+v, want %+v", got, want)
	}
}

func TestResolveTransformsNoIncomingEdgeIsIdentity(t *testing.T) {
	f, _, parentRep, _ := twoLevelAssemblyFile(3, 4, 5)
	rels := relationshipsByRep1(f)

	transforms := resolveTransforms(f, rels, parentRep)
	if len(transforms) != 1 {
		t.Fatalf("expected exactly one placement, got %d", len(transforms))
	}
	if transforms[0] != geom.Identity4() {
		t.Fatalf("expected identity for a representation with no parent, got %+v", transforms[0])
	}
}

func TestResolveTransformsBreaksCycles(t *testing.T) {
	var f step.File
	add := func(e step.Entity) int {
		f.Entities = append(f.Entities, e)
		return len(f.Entities) - 1
	}
	zero := add(&step.CartesianPoint{Coordinates: []float64{0, 0, 0}})
	axisZ := add(&step.Direction{DirectionRatios: []float64{0, 0, 1}})
	axisX := add(&step.Direction{DirectionRatios: []float64{1, 0, 0}})
	frame := add(&step.Axis2Placement3D{Location: zero, Axis: axisZ, RefDirection: axisX})
	idt := add(&step.ItemDefinedTransformation{TransformItem1: frame, TransformItem2: frame})

	repA := add(&step.ShapeRepresentation{})
	repB := add(&step.ShapeRepresentation{})
	add(&step.RepresentationRelationshipWithTransformation{Rep1: repA, Rep2: repB, TransformationOperator: idt})
	add(&step.RepresentationRelationshipWithTransformation{Rep1: repB, Rep2: repA, TransformationOperator: idt})

	rels := relationshipsByRep1(&f)
	// Must terminate rather than recurse forever.
	transforms := resolveTransforms(&f, rels, repA)
	if len(transforms) == 0 {
		t.Fatal("expected resolveTransforms to return at least the identity fallback")
	}
}

func TestShapeRepresentationOfMapsItemsToOwner(t *testing.T) {
	var f step.File
	add := func(e step.Entity) int {
		f.Entities = append(f.Entities, e)
		return len(f.Entities) - 1
	}
	brep := add(&step.ManifoldSolidBrep{})
	rep := add(&step.ShapeRepresentation{Items: []int{brep}})

	m := shapeRepresentationOf(&f)
	if m[brep] != rep {
		t.Fatalf("shapeRepresentationOf[%d] = %d, want %d", brep, m[brep], rep)
	}
}
