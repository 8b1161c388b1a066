package pipeline

import (
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/step"
)

// frameOf resolves an axis2_placement_3d id into the rigid transform
// mapping its local frame into world space.
func frameOf(f *step.File, id int) (geom.Mat4, error) {
	location, axis, ref, err := axis2Placement(f, id)
	if err != nil {
		return geom.Mat4{}, err
	}
	return geom.RigidFromZX(axis, ref, location), nil
}

// placementTransform resolves an item_defined_transformation's two
// named items (each an axis2_placement_3d) into the rigid transform
// mapping the first item's frame onto the second's.
func placementTransform(f *step.File, idt *step.ItemDefinedTransformation) (geom.Mat4, error) {
	from, err := frameOf(f, idt.TransformItem1)
	if err != nil {
		return geom.Mat4{}, err
	}
	to, err := frameOf(f, idt.TransformItem2)
	if err != nil {
		return geom.Mat4{}, err
	}
	fromInv, ok := from.Invert()
	if !ok {
		return geom.Mat4{}, &EntityTypeError{ID: idt.TransformItem1, Want: "invertible placement"}
	}
	return to.Mul(fromInv), nil
}

// relationshipsByRep1 indexes every representation-relationship-with-
// transformation entity in f by its child (Rep1) representation id,
// the edges of the assembly transform tree.
func relationshipsByRep1(f *step.File) map[int][]*step.RepresentationRelationshipWithTransformation {
	out := map[int][]*step.RepresentationRelationshipWithTransformation{}
	for _, ent := range f.Entities {
		rel, ok := ent.(*step.RepresentationRelationshipWithTransformation)
		if !ok {
			continue
		}
		out[rel.Rep1] = append(out[rel.Rep1], rel)
	}
	return out
}

// resolveTransforms returns every accumulated root-to-leaf transform
// placing shape representation repID in world space, by walking
// relsByRep1 edges upward. A representation with no incoming
// relationship is its own single, identity-placed instance; one with
// several parents yields one transform per placement, so the caller
// can tile a component's mesh under each assembly instance.
func resolveTransforms(f *step.File, relsByRep1 map[int][]*step.RepresentationRelationshipWithTransformation, repID int) []geom.Mat4 {
	return resolveTransformsVisiting(f, relsByRep1, repID, map[int]bool{})
}

func resolveTransformsVisiting(f *step.File, relsByRep1 map[int][]*step.RepresentationRelationshipWithTransformation, repID int, seen map[int]bool) []geom.Mat4 {
	rels := relsByRep1[repID]
	if len(rels) == 0 || seen[repID] {
		return []geom.Mat4{geom.Identity4()}
	}
	seen = cloneSeen(seen)
	seen[repID] = true

	var out []geom.Mat4
	for _, rel := range rels {
		idt, ok := f.At(rel.TransformationOperator).(*step.ItemDefinedTransformation)
		if !ok {
			continue
		}
		local, err := placementTransform(f, idt)
		if err != nil {
			continue
		}
		for _, parent := range resolveTransformsVisiting(f, relsByRep1, rel.Rep2, seen) {
			out = append(out, parent.Mul(local))
		}
	}
	if len(out) == 0 {
		return []geom.Mat4{geom.Identity4()}
	}
	return out
}

func cloneSeen(seen map[int]bool) map[int]bool {
	out := make(map[int]bool, len(seen)+1)
	for k, v := range seen {
		out[k] = v
	}
	return out
}

// shapeRepresentationOf indexes every item id referenced by any
// SHAPE_REPRESENTATION (or one of its AP214 aliases) to that
// representation's own entity id, so a manifold solid brep can find
// the representation it is positioned through.
func shapeRepresentationOf(f *step.File) map[int]int {
	out := map[int]int{}
	for id, ent := range f.Entities {
		rep, ok := ent.(*step.ShapeRepresentation)
		if !ok {
			continue
		}
		for _, item := range rep.Items {
			out[item] = id
		}
	}
	return out
}
