package pipeline

import (
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/step"
)

// defaultColor is used whenever the styled-item chain below is absent
// or cannot be fully resolved; color resolution is best-effort, per
// the entity graph's ambiguous surface-side style disambiguation.
var defaultColor = geom.Pt3(0.5, 0.5, 0.5)

// resolveColor walks the presentation-style chain from a styled
// item (targetID is usually a manifold_solid_brep or closed_shell id)
// down to its RGB fill colour: styled_item -> presentation_style_assignment
// -> surface_style_usage -> surface_side_style -> surface_style_fill_area
// -> fill_area_style -> fill_area_style_colour -> colour_rgb. Any broken
// or ambiguous link along the way falls back to defaultColor.
func resolveColor(f *step.File, targetID int) geom.Point3 {
	styled := findStyledItem(f, targetID)
	if styled == nil {
		return defaultColor
	}
	psa := firstOfType[*step.PresentationStyleAssignment](f, styled.Styles)
	if psa == nil {
		return defaultColor
	}
	usage := firstOfType[*step.SurfaceStyleUsage](f, psa.Styles)
	if usage == nil {
		return defaultColor
	}
	side, ok := f.At(usage.Style).(*step.SurfaceSideStyle)
	if !ok {
		return defaultColor
	}
	fillArea := firstOfType[*step.SurfaceStyleFillArea](f, side.Styles)
	if fillArea == nil {
		return defaultColor
	}
	style, ok := f.At(fillArea.FillArea).(*step.FillAreaStyle)
	if !ok {
		return defaultColor
	}
	colourRef := firstOfType[*step.FillAreaStyleColour](f, style.FillStyles)
	if colourRef == nil {
		return defaultColor
	}
	rgb, ok := f.At(colourRef.FillColour).(*step.ColourRgb)
	if !ok {
		return defaultColor
	}
	return geom.Pt3(rgb.Red, rgb.Green, rgb.Blue)
}

// findStyledItem returns the first STYLED_ITEM entity whose Item
// field names targetID, or nil if none does.
func findStyledItem(f *step.File, targetID int) *step.StyledItem {
	for _, ent := range f.Entities {
		if s, ok := ent.(*step.StyledItem); ok && s.Item == targetID {
			return s
		}
	}
	return nil
}

// firstOfType resolves ids in order and returns the first one whose
// entity is of type T, or nil if none is.
func firstOfType[T any](f *step.File, ids []int) T {
	var zero T
	for _, id := range ids {
		if v, ok := f.At(id).(T); ok {
			return v
		}
	}
	return zero
}
