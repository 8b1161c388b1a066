package pipeline

import (
	"testing"

	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/step"
)

func TestResolveColorDefaultsWithNoStyledItem(t *testing.T) {
	var f step.File
	got := resolveColor(&f, 0)
	if got != defaultColor {
		t.Fatalf("resolveColor with no styled item: got %+v, want default %+v", got, defaultColor)
	}
}

func TestResolveColorFollowsFullChain(t *testing.T) {
	var f step.File
	add := func(e step.Entity) int {
		f.Entities = append(f.Entities, e)
		return len(f.Entities) - 1
	}

	brep := add(&step.ManifoldSolidBrep{})

	rgb := add(&step.ColourRgb{Red: 0.25, Green: 0.5, Blue: 0.75})
	fillColour := add(&step.FillAreaStyleColour{FillColour: rgb})
	fillStyle := add(&step.FillAreaStyle{FillStyles: []int{fillColour}})
	fillArea := add(&step.SurfaceStyleFillArea{FillArea: fillStyle})
	side := add(&step.SurfaceSideStyle{Styles: []int{fillArea}})
	usage := add(&step.SurfaceStyleUsage{Style: side})
	psa := add(&step.PresentationStyleAssignment{Styles: []int{usage}})
	add(&step.StyledItem{Item: brep, Styles: []int{psa}})

	got := resolveColor(&f, brep)
	want := geom.Pt3(0.25, 0.5, 0.75)
	if got != want {
		t.Fatalf("resolveColor: got %+v, want %+v", got, want)
	}
}

func TestResolveColorDefaultsOnBrokenLink(t *testing.T) {
	var f step.File
	add := func(e step.Entity) int {
		f.Entities = append(f.Entities, e)
		return len(f.Entities) - 1
	}
	brep := add(&step.ManifoldSolidBrep{})
	// A styled item whose presentation style assignment is missing
	// entirely (points past the end of the entity table).
	add(&step.StyledItem{Item: brep, Styles: []int{999}})

	got := resolveColor(&f, brep)
	if got != defaultColor {
		t.Fatalf("resolveColor on broken link: got %+v, want default %+v", got, defaultColor)
	}
}
