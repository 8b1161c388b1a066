// Package cdt implements the incremental sweep-hull Constrained
// Delaunay Triangulator: seed-triangle selection, presorted point
// insertion, hull-edge walking, fixed-edge insertion via contour ear
// clipping, and Delaunay legalization.
package cdt

import (
	"math"
	"sort"

	"github.com/formlabs-oss/stepmesh/contour"
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/halfedge"
	"github.com/formlabs-oss/stepmesh/hull"
	"github.com/formlabs-oss/stepmesh/index"
	"github.com/formlabs-oss/stepmesh/predicate"
)

// dedupEpsilon is the coordinate tolerance under which two points are
// treated as duplicates during seed selection and presort dedup.
const dedupEpsilon = 1e-9

// Edge is a caller-facing fixed edge, indexing into the original input
// point slice (not the presorted internal order).
type Edge struct {
	Src, Dst int
}

// Triangulation holds the state of one CDT build, either stepped
// incrementally via Step or run to completion via Run.
type Triangulation struct {
	pts  *index.Arena[index.PointTag, geom.Point]
	half *halfedge.Graph
	hull *hull.Hull

	centroid geom.Point

	// forward[callerIdx] is the presorted index a caller point maps to
	// (after dedup, possibly an earlier occurrence's index).
	forward []int
	// callerOf[presortedIdx] is a representative original caller index,
	// used to translate Triangles() output back to caller indexing.
	callerOf []int

	// order lists presorted indices awaiting insertion, in insertion
	// order; the first three points (the seed triangle) are already
	// inserted and excluded from order.
	order  []int
	cursor int

	angle map[int]float64 // presorted idx -> pseudo-angle around centroid
	hullOf map[int]index.Hull // presorted idx -> its current hull node, when on hull

	constrained bool
	// endingsByDst[dst] lists src presorted indices with src < dst,
	// i.e. fixed edges ending at dst that must be processed once dst
	// is inserted.
	endingsByDst map[int][]int

	done bool
	errs []error
}

func sqDist(a, b geom.Point) float64 {
	return a.Sub(b).LengthSquared()
}

// New builds a triangulation with no fixed edges.
func New(points []geom.Point) (*Triangulation, error) {
	return NewWithEdges(points, nil)
}

// NewWithEdges builds a triangulation honoring the given fixed edges
// (indices into points).
func NewWithEdges(points []geom.Point, edges []Edge) (*Triangulation, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	if len(points) < 3 {
		return nil, ErrTooFewPoints
	}
	for i, p := range points {
		if !p.Finite() {
			return nil, &InvalidInputError{PointIndex: i}
		}
	}
	for i, e := range edges {
		if e.Src < 0 || e.Src >= len(points) || e.Dst < 0 || e.Dst >= len(points) || e.Src == e.Dst {
			return nil, &InvalidEdgeError{EdgeIndex: i, Src: e.Src, Dst: e.Dst}
		}
	}

	t := &Triangulation{
		pts:          index.NewArena[index.PointTag, geom.Point](len(points)),
		half:         halfedge.New(len(points)),
		hull:         hull.New(len(edges) > 0),
		angle:        make(map[int]float64, len(points)),
		hullOf:       make(map[int]index.Hull, len(points)),
		endingsByDst: make(map[int][]int),
		constrained:  len(edges) > 0,
	}

	minP, maxP := points[0], points[0]
	for _, p := range points[1:] {
		minP.X = math.Min(minP.X, p.X)
		minP.Y = math.Min(minP.Y, p.Y)
		maxP.X = math.Max(maxP.X, p.X)
		maxP.Y = math.Max(maxP.Y, p.Y)
	}
	center := geom.Pt((minP.X+maxP.X)/2, (minP.Y+maxP.Y)/2)

	byDist := make([]int, len(points))
	for i := range byDist {
		byDist[i] = i
	}
	sort.Slice(byDist, func(i, j int) bool {
		return sqDist(points[byDist[i]], center) < sqDist(points[byDist[j]], center)
	})

	pa := byDist[0]
	pb := -1
	for _, cand := range byDist[1:] {
		if sqDist(points[pa], points[cand]) > dedupEpsilon*dedupEpsilon {
			pb = cand
			break
		}
	}
	if pb == -1 {
		return nil, ErrCannotInitialize
	}
	pc := -1
	for _, cand := range byDist {
		if cand == pa || cand == pb {
			continue
		}
		if sqDist(points[pa], points[cand]) <= dedupEpsilon*dedupEpsilon ||
			sqDist(points[pb], points[cand]) <= dedupEpsilon*dedupEpsilon {
			continue
		}
		if math.Abs(predicate.Orient2D(points[pa], points[pb], points[cand])) > dedupEpsilon {
			pc = cand
			break
		}
	}
	if pc == -1 {
		return nil, ErrCannotInitialize
	}

	t.centroid = geom.Pt(
		(points[pa].X+points[pb].X+points[pc].X)/3,
		(points[pa].Y+points[pb].Y+points[pc].Y)/3,
	)

	rest := make([]int, 0, len(points)-3)
	for _, i := range byDist {
		if i == pa || i == pb || i == pc {
			continue
		}
		rest = append(rest, i)
	}
	sort.Slice(rest, func(i, j int) bool {
		di := sqDist(points[rest[i]], t.centroid)
		dj := sqDist(points[rest[j]], t.centroid)
		if di != dj {
			return di < dj
		}
		ai := predicate.PseudoAngle(points[rest[i]].X-t.centroid.X, points[rest[i]].Y-t.centroid.Y)
		aj := predicate.PseudoAngle(points[rest[j]].X-t.centroid.X, points[rest[j]].Y-t.centroid.Y)
		return ai < aj
	})

	// forward[callerIdx] = presorted index; build incrementally while
	// deduping against the immediately preceding sorted point and the
	// three seed points.
	t.forward = make([]int, len(points))
	t.callerOf = make([]int, 0, len(points))

	seedCoords := []geom.Point{points[pa], points[pb], points[pc]}
	seedCallers := []int{pa, pb, pc}
	presortedOf := make(map[int]int, len(points)) // caller idx -> presorted idx, for seeds+prior

	for i, caller := range seedCallers {
		presortedIdx := t.pts.Push(seedCoords[i])
		t.forward[caller] = int(presortedIdx.Raw())
		t.callerOf = append(t.callerOf, caller)
		presortedOf[caller] = int(presortedIdx.Raw())
	}

	prevCaller := -1
	for _, caller := range rest {
		p := points[caller]
		dup := -1
		if prevCaller != -1 && sqDist(points[prevCaller], p) <= dedupEpsilon*dedupEpsilon {
			dup = prevCaller
		} else {
			for _, sc := range seedCallers {
				if sqDist(points[sc], p) <= dedupEpsilon*dedupEpsilon {
					dup = sc
					break
				}
			}
		}
		if dup != -1 {
			t.forward[caller] = presortedOf[dup]
		} else {
			presortedIdx := t.pts.Push(p)
			t.forward[caller] = int(presortedIdx.Raw())
			t.callerOf = append(t.callerOf, caller)
			presortedOf[caller] = int(presortedIdx.Raw())
			t.order = append(t.order, int(presortedIdx.Raw()))
		}
		prevCaller = caller
	}

	for i := 0; i < t.pts.Len(); i++ {
		p := t.pts.Get(index.FromRaw[index.PointTag](uint32(i)))
		t.angle[i] = predicate.PseudoAngle(p.X-t.centroid.X, p.Y-t.centroid.Y)
	}

	iPA, iPB, iPC := presortedOf[pa], presortedOf[pb], presortedOf[pc]
	if predicate.Orient2D(points[pa], points[pb], points[pc]) < 0 {
		iPB, iPC = iPC, iPB
	}
	seedEdge := t.half.Insert(
		index.FromRaw[index.PointTag](uint32(iPA)),
		index.FromRaw[index.PointTag](uint32(iPB)),
		index.FromRaw[index.PointTag](uint32(iPC)),
		index.EmptyEdge(), index.EmptyEdge(), index.EmptyEdge(),
	)
	hA := t.hull.Initialize(index.FromRaw[index.PointTag](uint32(iPA)), t.angle[iPA], seedEdge)
	eBC := t.half.Edge(seedEdge).Next
	eCA := t.half.Edge(seedEdge).Prev
	hB := t.hull.Insert(hA, t.angle[iPB], index.FromRaw[index.PointTag](uint32(iPB)), eBC)
	hC := t.hull.Insert(hB, t.angle[iPC], index.FromRaw[index.PointTag](uint32(iPC)), eCA)
	t.hullOf[iPA], t.hullOf[iPB], t.hullOf[iPC] = hA, hB, hC
	if t.constrained {
		t.hull.RegisterPoint(points[pa], hA)
		t.hull.RegisterPoint(points[pb], hB)
		t.hull.RegisterPoint(points[pc], hC)
	}

	for _, e := range edges {
		src := t.forward[e.Src]
		dst := t.forward[e.Dst]
		if src == dst {
			continue // collapsed to a single point by dedup
		}
		if src > dst {
			src, dst = dst, src
		}
		if (src == iPA || src == iPB || src == iPC) && (dst == iPA || dst == iPB || dst == iPC) {
			if e2 := t.findSeedEdge(src, dst, seedEdge); !e2.IsEmpty() {
				t.half.ToggleLockSign(e2)
				continue
			}
		}
		t.endingsByDst[dst] = append(t.endingsByDst[dst], src)
	}

	return t, nil
}

func (t *Triangulation) findSeedEdge(srcIdx, dstIdx int, seedEdge index.Edge) index.Edge {
	cur := seedEdge
	for i := 0; i < 3; i++ {
		ed := t.half.Edge(cur)
		if int(ed.Src.Raw()) == srcIdx && int(ed.Dst.Raw()) == dstIdx {
			return cur
		}
		if int(ed.Dst.Raw()) == srcIdx && int(ed.Src.Raw()) == dstIdx {
			return cur
		}
		cur = ed.Next
	}
	return index.EmptyEdge()
}

// Done reports whether every point has been inserted.
func (t *Triangulation) Done() bool {
	return t.cursor >= len(t.order)
}

// Step inserts the next pending point, if any.
func (t *Triangulation) Step() error {
	if t.Done() {
		return ErrNoMorePoints
	}
	pIdx := t.order[t.cursor]
	t.cursor++
	p := index.FromRaw[index.PointTag](uint32(pIdx))
	pCoord := t.pts.Get(p)
	pAngle := t.angle[pIdx]

	hAB := t.hull.Get(pAngle)
	eAB := t.hull.Edge(hAB)
	edge := t.half.Edge(eAB)
	a, b := edge.Src, edge.Dst
	aCoord, bCoord := t.pts.Get(a), t.pts.Get(b)

	o := predicate.Orient2D(bCoord, aCoord, pCoord)

	var newHullNode index.Hull
	if o <= 0 {
		c := t.half.Edge(edge.Next).Dst
		// buddyBC is the buddy of the old triangle's b->c edge;
		// buddyCA is the buddy of its c->a edge. Both carry over
		// unchanged onto whichever new triangle keeps that boundary.
		buddyBC := t.half.Edge(edge.Next).Buddy
		buddyCA := t.half.Edge(edge.Prev).Buddy

		t.half.Erase(eAB)

		// Triangle (p,c,a): its c->a edge (the BC slot, vertices
		// b=c,c_vertex=a) is the old c->a edge, so it inherits buddyCA.
		ePCA := t.half.Insert(p, c, a, index.EmptyEdge(), index.EmptyEdge(), buddyCA)
		// Triangle (c,p,b): its b->c edge (the CA slot, vertices
		// c_vertex=b,a=c) is the old b->c edge, so it inherits buddyBC.
		eCPB := t.half.Insert(c, p, b, buddyBC, index.EmptyEdge(), index.EmptyEdge())
		ePC := ePCA                   // p->c
		eCP := eCPB                   // c->p
		t.half.Link(ePC, eCP)

		eOuterPCA := t.half.Edge(ePCA).Prev // a->p, a's new outward hull edge
		eOuterCPB := t.half.Edge(eCPB).Next // p->b, p's outward hull edge

		// hAB is node 'a'; it stays on the hull but its outward edge
		// now points at p instead of the erased a->b. A fresh node for
		// p is spliced in between 'a' and 'b' with edge p->b.
		t.hull.Update(hAB, eOuterPCA)
		newHullNode = t.hull.Insert(hAB, pAngle, p, eOuterCPB)
		t.hullOf[pIdx] = newHullNode
		if t.constrained {
			t.hull.RegisterPoint(pCoord, newHullNode)
		}

		t.legalize(eOuterPCA)
		t.legalize(eOuterCPB)

		if edge.Fixed() && o == 0 {
			t.errs = append(t.errs, &PointOnFixedEdgeError{CallerIndex: t.callerIndex(pIdx)})
		}
	} else {
		// Triangle (b,a,p): its b->a edge is the reverse of the erased
		// (but not actually erased here — a->b stays as the live hull
		// edge's buddy) a->b, so it inherits eAB as its AB-slot buddy.
		eBAP := t.half.Insert(b, a, p, index.EmptyEdge(), eAB, index.EmptyEdge())
		bap := t.half.Edge(eBAP)
		eAP := bap.Next // a->p, a's new outward hull edge
		ePB := bap.Prev // p->b, p's outward hull edge

		aAngle := t.angle[int(a.Raw())]
		if aAngle != pAngle {
			t.hull.Update(hAB, eAP)
			newHullNode = t.hull.Insert(hAB, pAngle, p, ePB)
			t.hullOf[pIdx] = newHullNode
			if t.constrained {
				t.hull.RegisterPoint(pCoord, newHullNode)
			}
			t.legalize(eBAP)
		} else {
			// p shares a's pseudo-angle exactly: a itself is effectively
			// relocated to p, and a second triangle is cut against the
			// next hull edge (a,c,p) so the hull advances past c too.
			hCA := t.hull.LeftHull(hAB)
			eCA := t.hull.Edge(hCA)
			c := t.half.Edge(eCA).Src
			eACP := t.half.Insert(a, c, p, index.EmptyEdge(), eCA, index.EmptyEdge())
			t.hull.Update(hCA, t.half.Edge(eACP).Next)

			t.hull.MovePoint(aCoord, pCoord)
			delete(t.hullOf, int(a.Raw()))
			t.hull.SetPoint(hAB, p)
			t.hull.Update(hAB, ePB)
			t.hullOf[pIdx] = hAB
			newHullNode = hAB
			t.legalize(eBAP)
			t.legalize(eACP)
		}
	}

	t.walkLeft(newHullNode)
	t.walkRight(newHullNode)

	for _, s := range t.endingsByDst[pIdx] {
		t.handleFixedEdge(s, pIdx)
	}

	return nil
}

func (t *Triangulation) callerIndex(presortedIdx int) int {
	if presortedIdx < len(t.callerOf) {
		return t.callerOf[presortedIdx]
	}
	return -1
}

// walkLeft erases reflex wedges to the left of hn (check_acute_left).
func (t *Triangulation) walkLeft(hn index.Hull) {
	for {
		left := t.hull.LeftHull(hn)
		if left == hn {
			return
		}
		leftLeft := t.hull.LeftHull(left)
		if leftLeft == left {
			return
		}
		p := t.hull.Point(hn)
		b := t.hull.Point(left)
		q := t.hull.Point(leftLeft)
		pC, bC, qC := t.pts.Get(p), t.pts.Get(b), t.pts.Get(q)

		o := predicate.Orient2D(pC, bC, qC)
		wedge := false
		if t.constrained {
			wedge = o >= 0
		} else {
			wedge = predicate.Acute(pC, bC, qC) <= 0 && o >= 0
		}
		if !wedge {
			return
		}

		eHB := t.hull.Edge(left)
		eQH := t.hull.Edge(leftLeft)

		t.half.Erase(eHB)
		newEdge := t.half.Insert(p, q, b, index.EmptyEdge(), eQH, index.EmptyEdge())
		t.hull.Erase(left)
		t.hull.Update(leftLeft, t.half.Edge(newEdge).Prev)
		t.legalize(newEdge)
	}
}

// walkRight erases reflex wedges to the right of hn (check_acute_right).
func (t *Triangulation) walkRight(hn index.Hull) {
	for {
		right := t.hull.RightHull(hn)
		if right == hn {
			return
		}
		rightRight := t.hull.RightHull(right)
		if rightRight == right {
			return
		}
		p := t.hull.Point(hn)
		b := t.hull.Point(right)
		q := t.hull.Point(rightRight)
		pC, bC, qC := t.pts.Get(p), t.pts.Get(b), t.pts.Get(q)

		o := predicate.Orient2D(qC, bC, pC)
		wedge := false
		if t.constrained {
			wedge = o >= 0
		} else {
			wedge = predicate.Acute(qC, bC, pC) <= 0 && o >= 0
		}
		if !wedge {
			return
		}

		eBH := t.hull.Edge(right)
		eQH := t.hull.Edge(rightRight)

		t.half.Erase(eBH)
		newEdge := t.half.Insert(q, p, b, index.EmptyEdge(), index.EmptyEdge(), eQH)
		t.hull.Erase(right)
		t.hull.Update(hn, newEdge)
		t.legalize(newEdge)
	}
}

// legalize performs Delaunay repair on e_ab, swapping and recursing
// when the opposite vertex of the neighboring triangle lies inside
// the circumcircle of e_ab's own triangle.
func (t *Triangulation) legalize(eAB index.Edge) {
	ed := t.half.Edge(eAB)
	if ed.Fixed() || ed.Buddy.IsEmpty() {
		return
	}
	a, b := ed.Src, ed.Dst
	c := t.half.Edge(ed.Next).Dst
	buddy := t.half.Edge(ed.Buddy)
	d := t.half.Edge(buddy.Next).Dst

	aC, bC, cC, dC := t.pts.Get(a), t.pts.Get(b), t.pts.Get(c), t.pts.Get(d)
	if predicate.InCircle(aC, bC, cC, dC) > 0 {
		eBA := ed.Buddy
		_, eAD, eDB, ok := t.half.Swap(eBA)
		if !ok {
			return
		}
		t.legalize(eAD)
		t.legalize(eDB)
	}
}

// handleFixedEdge inserts the fixed edge from presorted index srcIdx
// to dstIdx, both already on the triangulation (dstIdx was just
// inserted).
func (t *Triangulation) handleFixedEdge(srcIdx, dstIdx int) {
	srcHull, ok := t.hullOf[srcIdx]
	if !ok {
		return
	}
	src := index.FromRaw[index.PointTag](uint32(srcIdx))
	dst := index.FromRaw[index.PointTag](uint32(dstIdx))
	srcCoord := t.pts.Get(src)
	dstCoord := t.pts.Get(dst)

	left := t.hull.LeftHull(srcHull)
	right := t.hull.RightHull(srcHull)
	if t.hull.Point(left) == dst || t.hull.Point(right) == dst {
		e := t.findEdgeBetween(src, dst)
		if !e.IsEmpty() {
			t.half.ToggleLockSign(e)
		}
		return
	}

	// Walk the fan of triangles around src, inside the wedge toward
	// dst, to find the triangle that the src->dst ray crosses.
	startEdge := t.hull.Edge(srcHull)
	_, crossed, ok := t.findStraddlingEdge(src, dst, startEdge)
	if !ok {
		t.errs = append(t.errs, ErrWedgeEscape)
		return
	}
	t.walkFill(src, dst, srcCoord, dstCoord, crossed)
}

func (t *Triangulation) findEdgeBetween(a, b index.Point) index.Edge {
	ha, ok := t.hullOf[int(a.Raw())]
	if !ok {
		return index.EmptyEdge()
	}
	e := t.hull.Edge(ha)
	cur := e
	for i := 0; i < 3; i++ {
		ed := t.half.Edge(cur)
		if (ed.Src == a && ed.Dst == b) || (ed.Src == b && ed.Dst == a) {
			return cur
		}
		cur = ed.Next
	}
	return index.EmptyEdge()
}

// findStraddlingEdge walks the triangle fan around src starting from
// the hull edge, looking for the interior edge that the ray src->dst
// crosses.
func (t *Triangulation) findStraddlingEdge(src, dst index.Point, start index.Edge) (index.Edge, index.Edge, bool) {
	dstCoord := t.pts.Get(dst)
	srcCoord := t.pts.Get(src)

	e := start
	for iter := 0; iter < t.half.Len(); iter++ {
		ed := t.half.Edge(e)
		var oppEdge index.Edge
		var a, b index.Point
		if ed.Src == src {
			oppEdge = ed.Next
			a, b = ed.Dst, t.half.Edge(ed.Next).Dst
		} else {
			oppEdge = t.half.Edge(ed.Prev).Prev
			a, b = t.half.Edge(ed.Prev).Src, ed.Src
		}
		aC, bC := t.pts.Get(a), t.pts.Get(b)
		oa := predicate.Orient2D(srcCoord, dstCoord, aC)
		ob := predicate.Orient2D(srcCoord, dstCoord, bC)
		if oa >= 0 && ob <= 0 {
			return e, oppEdge, true
		}
		buddy := t.half.Edge(oppEdge).Buddy
		if buddy.IsEmpty() {
			return index.EmptyEdge(), index.EmptyEdge(), false
		}
		e = buddy
	}
	return index.EmptyEdge(), index.EmptyEdge(), false
}

// walkFill builds the two side contours (left positive/mountain,
// right negative/valley) by crossing triangles from src to dst,
// erasing each as it is consumed, then links the two diagonals
// produced by the closing pushes and fixes the new edge.
func (t *Triangulation) walkFill(src, dst index.Point, srcCoord, dstCoord geom.Point, crossing index.Edge) {
	legalizeFn := contour.Legalizer(t.legalize)
	left := contour.New(t.half, t.hull, legalizeFn, 1, src, srcCoord)
	right := contour.New(t.half, t.hull, legalizeFn, -1, src, srcCoord)

	e := crossing
	for {
		ed := t.half.Edge(e)
		if ed.Fixed() {
			t.errs = append(t.errs, ErrCrossingFixedEdge)
			return
		}
		c := t.half.Edge(ed.Next).Dst
		cCoord := t.pts.Get(c)

		aData := t.neighborData(ed.Next)
		bData := t.neighborData(ed.Prev)
		t.half.Erase(e)

		if c == dst {
			lDiag := left.Push(dst, dstCoord, aData)
			rDiag := right.Push(dst, dstCoord, bData)
			t.half.Link(lDiag, rDiag)
			t.half.ToggleLockSign(lDiag)
			break
		}

		o := predicate.Orient2D(srcCoord, dstCoord, cCoord)
		if o > 0 {
			right.Push(c, cCoord, aData)
			nextE := t.half.Edge(ed.Next).Next
			nb := t.half.Edge(nextE).Buddy
			if nb.IsEmpty() {
				t.errs = append(t.errs, ErrWedgeEscape)
				return
			}
			e = nb
		} else if o < 0 {
			left.Push(c, cCoord, bData)
			prevE := t.half.Edge(ed.Prev).Prev
			nb := t.half.Edge(prevE).Buddy
			if nb.IsEmpty() {
				t.errs = append(t.errs, ErrWedgeEscape)
				return
			}
			e = nb
		} else {
			t.errs = append(t.errs, &PointOnFixedEdgeError{CallerIndex: t.callerIndex(int(c.Raw()))})
			return
		}
	}
}

func (t *Triangulation) neighborData(edgeInTriangle index.Edge) contour.Data {
	ed := t.half.Edge(edgeInTriangle)
	if !ed.Buddy.IsEmpty() {
		return contour.Data{Kind: contour.Buddy, Edge: ed.Buddy}
	}
	if hn, ok := t.hullOf[int(ed.Src.Raw())]; ok && t.hull.Edge(hn) == edgeInTriangle {
		return contour.Data{Kind: contour.HullRef, Hull: hn, Sign: ed.Sign}
	}
	return contour.Data{Kind: contour.None}
}

// Run steps the triangulation to completion and runs Finalize.
func (t *Triangulation) Run() error {
	for !t.Done() {
		if err := t.Step(); err != nil {
			return err
		}
	}
	t.Finalize()
	if len(t.errs) > 0 {
		return t.errs[0]
	}
	return nil
}

// RunChecked is Run, but validates the half-edge graph's invariants
// after every insertion step instead of only at the end. Substantially
// slower; intended for diagnosing a malformed input, not production
// triangulation.
func (t *Triangulation) RunChecked() error {
	for !t.Done() {
		if err := t.Step(); err != nil {
			return err
		}
		t.Check()
	}
	t.Finalize()
	if len(t.errs) > 0 {
		return t.errs[0]
	}
	return nil
}

// Finalize performs the post-insertion cleanup pass: hull convexing
// for unconstrained triangulations, or flood-erase from an outside
// hull edge for constrained ones.
func (t *Triangulation) Finalize() {
	if t.done {
		return
	}
	t.done = true
	if t.constrained {
		var start index.Edge
		t.hull.Values(func(e index.Edge) {
			if start.IsEmpty() {
				start = e
			}
		})
		if !start.IsEmpty() {
			t.half.FloodEraseFrom(start)
		}
		return
	}

	for {
		progressed := false
		// walk the hull; wherever three consecutive vertices form a
		// strictly positive orientation, erase the middle one.
		var start index.Hull
		found := false
		for i := 0; i < t.pts.Len() && !found; i++ {
			if hn, ok := t.hullOf[i]; ok {
				start = hn
				found = true
			}
		}
		if !found {
			break
		}
		cur := start
		for {
			left := t.hull.LeftHull(cur)
			right := t.hull.RightHull(cur)
			if left == cur || right == cur {
				break
			}
			a := t.pts.Get(t.hull.Point(left))
			b := t.pts.Get(t.hull.Point(cur))
			c := t.pts.Get(t.hull.Point(right))
			if predicate.Orient2D(a, b, c) > 0 {
				lp := t.hull.Point(left)
				rp := t.hull.Point(right)
				cp := t.hull.Point(cur)
				newEdge := t.half.Insert(lp, cp, rp, index.EmptyEdge(), index.EmptyEdge(), index.EmptyEdge())
				t.hull.Update(left, newEdge)
				t.hull.Erase(cur)
				t.legalize(newEdge)
				progressed = true
				cur = left
				continue
			}
			cur = right
			if cur == start {
				break
			}
		}
		if !progressed {
			break
		}
	}
}

// Triangles calls fn once per output triangle, with vertex indices
// mapped back to the caller's original point indexing.
func (t *Triangulation) Triangles(fn func(a, b, c int)) {
	t.half.IterTriangles(func(a, b, c index.Point) {
		fn(t.callerIndex(int(a.Raw())), t.callerIndex(int(b.Raw())), t.callerIndex(int(c.Raw())))
	})
}

// Check validates the underlying half-edge graph's invariants.
func (t *Triangulation) Check() {
	t.half.Check()
}

// Inside reports whether p lies inside the triangulated region, by
// testing against every live triangle. This is a reference/debug
// implementation (O(n)), adequate for tests and small face patches;
// the pipeline itself never calls Inside on a hot path.
func (t *Triangulation) Inside(p geom.Point) bool {
	found := false
	t.half.IterTriangles(func(a, b, c index.Point) {
		if found {
			return
		}
		aC, bC, cC := t.pts.Get(a), t.pts.Get(b), t.pts.Get(c)
		if pointInTriangle(p, aC, bC, cC) {
			found = true
		}
	})
	return found
}

func pointInTriangle(p, a, b, c geom.Point) bool {
	d1 := predicate.Orient2D(a, b, p)
	d2 := predicate.Orient2D(b, c, p)
	d3 := predicate.Orient2D(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Build is a convenience constructor that builds and runs a
// triangulation in one call.
func Build(points []geom.Point, edges []Edge) (*Triangulation, error) {
	t, err := NewWithEdges(points, edges)
	if err != nil {
		return nil, err
	}
	if err := t.Run(); err != nil {
		return t, err
	}
	return t, nil
}

// NewFromContours builds a constrained triangulation whose fixed edges
// are the consecutive segments of each contour. Each contour is a
// closed polyline expressed as indices into points, with its last
// index equal to its first (the explicit closing point); the edge
// between those two repeated indices is not added twice. Returns
// ErrOpenContour if a contour's last index does not equal its first.
func NewFromContours(points []geom.Point, contours [][]int) (*Triangulation, error) {
	var edges []Edge
	for _, c := range contours {
		if len(c) < 2 {
			continue
		}
		start := len(edges)
		for i := 0; i+1 < len(c); i++ {
			edges = append(edges, Edge{Src: c[i], Dst: c[i+1]})
		}
		if len(edges) > start && edges[start].Src != edges[len(edges)-1].Dst {
			return nil, ErrOpenContour
		}
	}
	return NewWithEdges(points, edges)
}

// BuildFromContours is NewFromContours followed immediately by Run.
func BuildFromContours(points []geom.Point, contours [][]int) (*Triangulation, error) {
	t, err := NewFromContours(points, contours)
	if err != nil {
		return nil, err
	}
	if err := t.Run(); err != nil {
		return t, err
	}
	return t, nil
}
