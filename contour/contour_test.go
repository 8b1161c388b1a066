package contour

import (
	"testing"

	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/halfedge"
	"github.com/formlabs-oss/stepmesh/hull"
	"github.com/formlabs-oss/stepmesh/index"
)

func pt(v uint32) index.Point { return index.FromRaw[index.PointTag](v) }

// TestPushClipsConvexFan pushes a five-point zigzag (a mountain
// contour) and checks that its convex turns clip in as ears, leaving
// at least one triangle in the graph.
func TestPushClipsConvexFan(t *testing.T) {
	half := halfedge.New(5)
	h := hull.New(false)
	noopLegalize := func(index.Edge) {}

	coords := []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(1, -1),
		geom.Pt(2, 0),
		geom.Pt(3, -1),
		geom.Pt(4, 0),
	}

	c := New(half, h, noopLegalize, 1, pt(0), coords[0])
	for i := 1; i < len(coords); i++ {
		c.Push(pt(uint32(i)), coords[i], Data{Kind: None})
	}

	count := 0
	half.IterTriangles(func(a, b, cc index.Point) { count++ })
	if count == 0 {
		t.Fatalf("expected at least one clipped ear to produce a triangle")
	}
}

func TestPushNoClipOnConcaveTurn(t *testing.T) {
	half := halfedge.New(5)
	h := hull.New(false)
	noopLegalize := func(index.Edge) {}

	// A strictly concave (for a mountain) turn should never clip.
	coords := []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(1, 1),
		geom.Pt(2, 0),
	}
	c := New(half, h, noopLegalize, 1, pt(0), coords[0])
	c.Push(pt(1), coords[1], Data{Kind: None})
	c.Push(pt(2), coords[2], Data{Kind: None})

	count := 0
	half.IterTriangles(func(a, b, cc index.Point) { count++ })
	if count != 0 {
		t.Fatalf("expected no ear clipped for a concave mountain turn, got %d triangles", count)
	}
	if c.Len() != 3 {
		t.Fatalf("expected all 3 nodes to remain, got %d", c.Len())
	}
}
