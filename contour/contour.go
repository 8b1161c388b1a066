// Package contour implements monotone-mountain ear clipping: the
// pseudopolygon triangulation step the CDT driver uses while walking a
// fixed edge across the triangulation. A contour grows one point at a
// time and eagerly clips ears as soon as they become valid, so by the
// time the walk closes, almost all of the triangulation work for that
// side of the fixed edge is already done.
package contour

import (
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/halfedge"
	"github.com/formlabs-oss/stepmesh/hull"
	"github.com/formlabs-oss/stepmesh/index"
	"github.com/formlabs-oss/stepmesh/predicate"
)

// DataKind tags what a contour node's outward-facing neighbor edge is
// connected to, so a clipped ear knows how to rewire it.
type DataKind int

const (
	// None means the node has no outward connection to wire up (used
	// at the seed point, which starts with no prior neighbor).
	None DataKind = iota
	// Buddy means the node's outward edge should be linked (via
	// halfedge.LinkNew) to the given edge.
	Buddy
	// HullRef means the node's outward edge sits on the triangulation's
	// hull at the given node, carrying the given sign to restore on
	// the edge that replaces it.
	HullRef
)

// Data describes the outward wiring for one contour node.
type Data struct {
	Kind DataKind
	Edge index.Edge // valid when Kind == Buddy
	Hull index.Hull // valid when Kind == HullRef
	Sign *bool      // valid when Kind == HullRef
}

type contourNode struct {
	point index.Point
	coord geom.Point
	data  Data
}

// Legalizer performs Delaunay repair on an edge just introduced into
// the half-edge graph, recursing across flips as needed. The CDT
// driver supplies this since legalize needs the point-coordinate
// lookup that only it owns.
type Legalizer func(e index.Edge)

// Contour is one side of the fixed-edge walk's pseudopolygon: a
// positive-sign contour triangulates on the side below its growing
// polyline ("mountain"), a negative-sign one triangulates above
// ("valley").
type Contour struct {
	half     *halfedge.Graph
	hull     *hull.Hull
	legalize Legalizer
	sign     float64 // +1 mountain, -1 valley
	nodes    []contourNode
}

// New returns a contour seeded at src with the given sign (positive
// for a mountain, negative for a valley).
func New(half *halfedge.Graph, h *hull.Hull, legalize Legalizer, sign float64, src index.Point, srcCoord geom.Point) *Contour {
	return &Contour{
		half:     half,
		hull:     h,
		legalize: legalize,
		sign:     sign,
		nodes:    []contourNode{{point: src, coord: srcCoord, data: Data{Kind: None}}},
	}
}

// Push appends a new node at the end, then repeatedly attempts to clip
// an ear at the tip until no further ear is valid. It returns the
// diagonal edge of the last triangle created by a clip (the empty edge
// if none was created), per the walk-closing contract: the final Push
// on each side of a fixed-edge walk returns the edge that becomes the
// new fixed diagonal.
func (c *Contour) Push(point index.Point, coord geom.Point, data Data) index.Edge {
	c.nodes = append(c.nodes, contourNode{point: point, coord: coord, data: data})

	lastDiagonal := index.EmptyEdge()
	for {
		e, clipped := c.tryClip()
		if !clipped {
			break
		}
		lastDiagonal = e
	}
	return lastDiagonal
}

// tryClip inspects the ear (a, c, b) at the tip (the last three nodes)
// and clips it if the signed area is strictly positive for the
// contour's sign.
func (c *Contour) tryClip() (index.Edge, bool) {
	n := len(c.nodes)
	if n < 3 {
		return index.EmptyEdge(), false
	}
	a := c.nodes[n-3]
	cc := c.nodes[n-2]
	b := c.nodes[n-1]

	area := predicate.Orient2D(a.coord, cc.coord, b.coord) * c.sign
	if area <= 0 {
		return index.EmptyEdge(), false
	}

	eAB := c.half.Insert(a.point, b.point, cc.point, index.EmptyEdge(), index.EmptyEdge(), index.EmptyEdge())
	eBC := c.half.Edge(eAB).Next // b->c
	eCA := c.half.Edge(eAB).Prev // c->a

	// eCA (c->a) is the a-c segment, whose neighbor data c carries;
	// eBC (b->c) is the c-b segment, whose neighbor data b carries.
	c.wireNeighbor(cc.data, eCA)
	c.wireNeighbor(b.data, eBC)

	c.legalize(eCA)
	c.legalize(eBC)

	// c (the ear tip) is clipped out of the contour; b persists as the
	// new tip, now carrying a Buddy tag on the freshly cut diagonal
	// a->b so the next ear's far side pairs against it.
	newB := contourNode{point: b.point, coord: b.coord, data: Data{Kind: Buddy, Edge: eAB}}
	c.nodes = append(c.nodes[:n-2], newB)

	return eAB, true
}

func (c *Contour) wireNeighbor(d Data, newEdge index.Edge) {
	switch d.Kind {
	case Buddy:
		c.half.LinkNew(d.Edge, newEdge)
	case HullRef:
		c.hull.Update(d.Hull, newEdge)
		c.half.SetSign(newEdge, d.Sign)
	case None:
	}
}

// Len returns the number of active nodes remaining in the contour.
func (c *Contour) Len() int {
	return len(c.nodes)
}
