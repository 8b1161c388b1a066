// Package halfedge implements the triangle-mesh topology the CDT
// builds and repairs incrementally: a flat arena of directed edges,
// each carrying its triangle-cycle links (next/prev), its opposite
// edge in the neighboring triangle (buddy), and a three-state fixed
// flag (sign) used to mark constrained edges. Every reference is an
// index.Edge, never a pointer, so erase/swap/flood-fill are array
// operations with no reference bookkeeping.
package halfedge

import (
	"fmt"

	"github.com/formlabs-oss/stepmesh/index"
)

// Edge is one directed half-edge a->b of a triangle a->b->c.
type Edge struct {
	Src, Dst index.Point
	Next     index.Edge
	Prev     index.Edge
	Buddy    index.Edge

	// Sign is nil when the edge is unconstrained, Some(true)/Some(false)
	// once toggle-locked; both states mean the edge is fixed. Modeled as
	// *bool rather than a three-value enum to match the "Option<bool>"
	// shape the CDT's lock-toggling logic needs.
	Sign *bool

	erased bool
}

// Fixed reports whether e carries a sign at all (locked, either way).
func (e Edge) Fixed() bool {
	return e.Sign != nil
}

// Graph is the arena of all edges belonging to one triangulation.
type Graph struct {
	edges *index.Arena[index.EdgeTag, Edge]
}

// New returns an empty graph with room for a planar triangulation of
// the given point count (an upper bound of 6 edges per point covers
// both interior triangles and the hull boundary).
func New(pointCount int) *Graph {
	return &Graph{edges: index.NewArena[index.EdgeTag, Edge](6 * pointCount)}
}

// Insert appends three consecutive edges forming triangle a->b->c,
// wiring prev/next into a cycle and linking each to its supplied
// buddy when non-empty. A linked edge inherits its buddy's sign. It
// returns the edge a->b.
func (g *Graph) Insert(a, b, c index.Point, buddyCA, buddyAB, buddyBC index.Edge) index.Edge {
	eAB := g.edges.NextIndex()
	eBC := index.FromRaw[index.EdgeTag](eAB.Raw() + 1)
	eCA := index.FromRaw[index.EdgeTag](eAB.Raw() + 2)

	g.edges.Push(Edge{Src: a, Dst: b, Next: eBC, Prev: eCA, Buddy: index.EmptyEdge()})
	g.edges.Push(Edge{Src: b, Dst: c, Next: eCA, Prev: eAB, Buddy: index.EmptyEdge()})
	g.edges.Push(Edge{Src: c, Dst: a, Next: eAB, Prev: eBC, Buddy: index.EmptyEdge()})

	g.linkIfPresent(eAB, buddyAB)
	g.linkIfPresent(eBC, buddyBC)
	g.linkIfPresent(eCA, buddyCA)
	return eAB
}

func (g *Graph) linkIfPresent(newEdge, buddy index.Edge) {
	if buddy.IsEmpty() {
		return
	}
	b := g.edges.Get(buddy)
	ne := g.edges.Get(newEdge)
	ne.Sign = b.Sign
	g.edges.Set(newEdge, ne)
	g.link(newEdge, buddy)
}

// Edge returns the edge record at e.
func (g *Graph) Edge(e index.Edge) Edge {
	return g.edges.Get(e)
}

// Next returns the index of the edge following e around its triangle.
func (g *Graph) Next(e index.Edge) index.Edge {
	return g.edges.Get(e).Next
}

// Prev returns the index of the edge preceding e around its triangle.
func (g *Graph) Prev(e index.Edge) index.Edge {
	return g.edges.Get(e).Prev
}

// SetSign overwrites the sign of e and, if present, its buddy.
func (g *Graph) SetSign(e index.Edge, s *bool) {
	ed := g.edges.Get(e)
	ed.Sign = s
	g.edges.Set(e, ed)
	if !ed.Buddy.IsEmpty() {
		bud := g.edges.Get(ed.Buddy)
		bud.Sign = s
		g.edges.Set(ed.Buddy, bud)
	}
}

// ToggleLockSign flips e's lock state: absent becomes true, true
// becomes false, false becomes true; the new state propagates to e's
// buddy.
func (g *Graph) ToggleLockSign(e index.Edge) {
	ed := g.edges.Get(e)
	var next bool
	if ed.Sign == nil {
		next = true
	} else {
		next = !*ed.Sign
	}
	g.SetSign(e, &next)
}

// Swap performs an edge flip of diagonal a<->b (edge eBA, b->a) inside
// quadrilateral c,b,d,a (c and d are the third vertices of the two
// triangles sharing the diagonal). It is a no-op if eBA is fixed. The
// new diagonal c<->d has its sign cleared, since flipping across a
// fixed edge is never legal.
func (g *Graph) Swap(eBA index.Edge) (eCD, eAD, eDB index.Edge, ok bool) {
	ba := g.edges.Get(eBA)
	if ba.Fixed() {
		return index.EmptyEdge(), index.EmptyEdge(), index.EmptyEdge(), false
	}
	// Triangle 1 is (a,b,c): edges AB(=eBA's buddy), BC, CA.
	// Triangle 2 is (b,a,d): edges BA(=eBA), AD, DB.
	// The quad boundary (non-diagonal edges), walked in order, is
	// b -> c -> a -> d -> b, i.e. edges BC, CA, AD, DB. Replacing the
	// diagonal a-b with c-d splits it instead into (c,a,d) and (d,b,c).
	eAB := ba.Buddy
	eBC := g.edges.Get(eAB).Next
	eCA := g.edges.Get(eAB).Prev
	eAD = ba.Next
	eDB = ba.Prev

	bc := g.edges.Get(eBC)
	ca := g.edges.Get(eCA)
	ad := g.edges.Get(eAD)
	db := g.edges.Get(eDB)

	c := ca.Src
	d := ad.Dst

	// Reuse the two diagonal slots: eAB becomes the new edge c->d,
	// eBA becomes the new edge d->c.
	eCD = eAB
	eDC := eBA

	g.edges.Set(eCD, Edge{Src: c, Dst: d, Next: eDB, Prev: eBC, Buddy: index.EmptyEdge()})
	g.edges.Set(eDC, Edge{Src: d, Dst: c, Next: eCA, Prev: eAD, Buddy: index.EmptyEdge()})

	// Triangle (d,b,c): DB -> BC -> CD -> DB.
	bc.Next, bc.Prev = eCD, eDB
	db.Next, db.Prev = eBC, eCD
	g.edges.Set(eBC, bc)
	g.edges.Set(eDB, db)

	// Triangle (c,a,d): CA -> AD -> DC -> CA.
	ca.Next, ca.Prev = eAD, eDC
	ad.Next, ad.Prev = eDC, eCA
	g.edges.Set(eCA, ca)
	g.edges.Set(eAD, ad)

	g.link(eCD, eDC)

	return eCD, eAD, eDB, true
}

// Erase marks the three edges of the triangle containing e as empty
// and breaks the buddy links on their former partners.
func (g *Graph) Erase(e index.Edge) {
	first := e
	cur := e
	for i := 0; i < 3; i++ {
		ed := g.edges.Get(cur)
		if !ed.Buddy.IsEmpty() {
			bud := g.edges.Get(ed.Buddy)
			bud.Buddy = index.EmptyEdge()
			g.edges.Set(ed.Buddy, bud)
		}
		ed.erased = true
		ed.Buddy = index.EmptyEdge()
		g.edges.Set(cur, ed)
		cur = ed.Next
		if cur == first {
			break
		}
	}
}

// Erased reports whether e has been erased.
func (g *Graph) Erased(e index.Edge) bool {
	return g.edges.Get(e).erased
}

// link declares a and b as buddies, after asserting they have
// consistent (reversed) endpoints, no prior buddy, and matching Fixed
// state.
func (g *Graph) link(a, b index.Edge) {
	ea := g.edges.Get(a)
	eb := g.edges.Get(b)
	if ea.Src != eb.Dst || ea.Dst != eb.Src {
		panic(fmt.Sprintf("halfedge: link endpoint mismatch %v<->%v", ea, eb))
	}
	if !ea.Buddy.IsEmpty() || !eb.Buddy.IsEmpty() {
		panic("halfedge: link on edge that already has a buddy")
	}
	if ea.Fixed() != eb.Fixed() {
		panic("halfedge: link between edges with mismatched fixed state")
	}
	ea.Buddy = b
	eb.Buddy = a
	g.edges.Set(a, ea)
	g.edges.Set(b, eb)
}

// Link is the exported form of link, used by the CDT driver to pair
// two diagonals produced by independent contour walks.
func (g *Graph) Link(a, b index.Edge) {
	g.link(a, b)
}

// LinkNew links old and new as buddies after copying old's sign onto
// new, used when a fresh edge takes over the role of one being retired
// (e.g. during an ear clip against a contour's Buddy tag).
func (g *Graph) LinkNew(old, new_ index.Edge) {
	oldEdge := g.edges.Get(old)
	ne := g.edges.Get(new_)
	ne.Sign = oldEdge.Sign
	g.edges.Set(new_, ne)
	g.link(old, new_)
}

// FloodEraseFrom performs a breadth-first walk starting outside the
// triangulation at e, toggling an "inside" parity flag whenever it
// crosses a fixed edge whose sign is true, and erasing every triangle
// visited while the parity is "outside". It is used after a
// constrained CDT run to strip triangles outside the constrained
// boundary.
func (g *Graph) FloodEraseFrom(e index.Edge) {
	type frame struct {
		e      index.Edge
		inside bool
	}
	seenTri := make(map[index.Edge]bool)
	queue := []frame{{e: e, inside: false}}
	toErase := make([]index.Edge, 0)

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if g.Erased(f.e) {
			continue
		}
		canon := g.canonicalEdge(f.e)
		if seenTri[canon] {
			continue
		}
		seenTri[canon] = true
		if !f.inside {
			toErase = append(toErase, f.e)
		}

		cur := f.e
		for i := 0; i < 3; i++ {
			ed := g.edges.Get(cur)
			if !ed.Buddy.IsEmpty() {
				nextInside := f.inside
				if ed.Sign != nil && *ed.Sign {
					nextInside = !f.inside
				}
				queue = append(queue, frame{e: ed.Buddy, inside: nextInside})
			}
			cur = ed.Next
		}
	}

	for _, e := range toErase {
		if !g.Erased(e) {
			g.Erase(e)
		}
	}
}

// canonicalEdge returns the smallest-index edge of e's triangle, used
// to deduplicate triangle visits during a flood walk.
func (g *Graph) canonicalEdge(e index.Edge) index.Edge {
	ed := g.edges.Get(e)
	min := e
	if ed.Next.Raw() < min.Raw() {
		min = ed.Next
	}
	nn := g.edges.Get(ed.Next).Next
	if nn.Raw() < min.Raw() {
		min = nn
	}
	return min
}

// IterTriangles calls fn once per live triangle, each as its three
// vertex indices in a->b->c order.
func (g *Graph) IterTriangles(fn func(a, b, c index.Point)) {
	seen := make([]bool, g.edges.Len())
	for i := 0; i < g.edges.Len(); i++ {
		e := index.FromRaw[index.EdgeTag](uint32(i))
		if seen[i] || g.Erased(e) {
			continue
		}
		ed := g.edges.Get(e)
		n := g.edges.Get(ed.Next)
		p := g.edges.Get(ed.Prev)
		seen[i] = true
		seen[ed.Next.Raw()] = true
		seen[ed.Prev.Raw()] = true
		fn(ed.Src, n.Src, p.Src)
	}
}

// Check validates the structural invariants of the graph: triangle
// closure (next/prev cycles of length 3), buddy symmetry, and fixed
// state agreement between buddies. It panics on violation; intended
// for debug builds and tests, not the hot insertion path.
func (g *Graph) Check() {
	for i := 0; i < g.edges.Len(); i++ {
		e := index.FromRaw[index.EdgeTag](uint32(i))
		if g.Erased(e) {
			continue
		}
		ed := g.edges.Get(e)
		nnn := g.edges.Get(g.edges.Get(ed.Next).Next).Next
		if nnn != e {
			panic(fmt.Sprintf("halfedge: triangle closure violated at edge %d", i))
		}
		if !ed.Buddy.IsEmpty() {
			bud := g.edges.Get(ed.Buddy)
			if bud.Buddy != e {
				panic(fmt.Sprintf("halfedge: asymmetric buddy link at edge %d", i))
			}
			if bud.Src != ed.Dst || bud.Dst != ed.Src {
				panic(fmt.Sprintf("halfedge: buddy endpoint mismatch at edge %d", i))
			}
			if ed.Fixed() != bud.Fixed() {
				panic(fmt.Sprintf("halfedge: fixed-state mismatch across buddies at edge %d", i))
			}
		}
	}
}

// Len returns the number of edge slots allocated (including erased
// ones), for callers sizing parallel seen-bitmaps.
func (g *Graph) Len() int {
	return g.edges.Len()
}
