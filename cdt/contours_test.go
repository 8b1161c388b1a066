package cdt

import (
	"testing"

	"github.com/formlabs-oss/stepmesh/geom"
)

// TestBuildFromContoursUnitSquare triangulates a single closed square
// contour (last index repeating the first) into two triangles.
func TestBuildFromContoursUnitSquare(t *testing.T) {
	points := []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(1, 0),
		geom.Pt(1, 1),
		geom.Pt(0, 1),
	}
	tri, err := BuildFromContours(points, [][]int{{0, 1, 2, 3, 0}})
	if err != nil {
		t.Fatalf("BuildFromContours: %v", err)
	}
	tri.Check()
	if got := countTriangles(t, tri); got != 2 {
		t.Fatalf("expected 2 triangles, got %d", got)
	}
}

// TestBuildFromContoursAnnulus triangulates the region between an outer
// and an inner closed square contour, mirroring
// TestNestedSquaresConstrainedAnnulus but built from contours instead
// of explicit edges.
func TestBuildFromContoursAnnulus(t *testing.T) {
	outer := []geom.Point{
		geom.Pt(-2, -2), geom.Pt(2, -2), geom.Pt(2, 2), geom.Pt(-2, 2),
	}
	inner := []geom.Point{
		geom.Pt(-1, -1), geom.Pt(1, -1), geom.Pt(1, 1), geom.Pt(-1, 1),
	}
	points := append(append([]geom.Point{}, outer...), inner...)
	contours := [][]int{
		{0, 1, 2, 3, 0},
		{4, 5, 6, 7, 4},
	}

	tri, err := BuildFromContours(points, contours)
	if err != nil {
		t.Fatalf("BuildFromContours: %v", err)
	}
	tri.Check()

	if tri.Inside(geom.Pt(0, 0)) {
		t.Fatalf("inner square's interior must not be triangulated")
	}
	if !tri.Inside(geom.Pt(1.5, 0)) {
		t.Fatalf("a point in the annulus must be triangulated")
	}
}

// TestNewFromContoursOpenContour confirms a contour whose last index
// doesn't loop back to its first is rejected.
func TestNewFromContoursOpenContour(t *testing.T) {
	points := []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(1, 0),
		geom.Pt(1, 1),
		geom.Pt(0, 1),
	}
	_, err := NewFromContours(points, [][]int{{0, 1, 2, 3}})
	if err != ErrOpenContour {
		t.Fatalf("err = %v, want ErrOpenContour", err)
	}
}

// TestNewFromContoursSkipsDegenerateContour confirms a contour with
// fewer than two indices contributes no edges and no error, rather
// than panicking on an out-of-range slice access.
func TestNewFromContoursSkipsDegenerateContour(t *testing.T) {
	points := []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(1, 0),
		geom.Pt(1, 1),
	}
	tri, err := NewFromContours(points, [][]int{{0}, nil})
	if err != nil {
		t.Fatalf("NewFromContours: %v", err)
	}
	if tri == nil {
		t.Fatal("expected a non-nil triangulation")
	}
}
