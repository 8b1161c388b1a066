// Package hull implements the bucketed circular linked list tracking
// the counterclockwise boundary of a CDT during incremental point
// insertion. Nodes are bucketed by pseudo-angle around the sweep
// centroid so that the insertion point for a new angle can usually be
// found in O(1).
package hull

import (
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/index"
)

// bucketCount is the number of angle buckets, a power of two as in the
// source implementation this design is grounded on.
const bucketCount = 1024

type node struct {
	point index.Point
	angle float64
	edge  index.Edge
	left  index.Hull
	right index.Hull
	free  bool
}

// Hull is the circular boundary list plus its angle-bucket index.
type Hull struct {
	nodes   *index.Arena[index.HullTag, node]
	buckets [bucketCount]index.Hull
	freeTop index.Hull

	// points maps a coordinate to its hull node, maintained only in
	// constrained mode where the fixed-edge walk needs O(1) lookup by
	// point rather than by angle.
	points     map[geom.Point]index.Hull
	trackPoint bool
}

// New returns an empty hull. trackPoints enables the points map needed
// by constrained triangulation.
func New(trackPoints bool) *Hull {
	h := &Hull{
		nodes:      index.NewArena[index.HullTag, node](0),
		freeTop:    index.EmptyHull(),
		trackPoint: trackPoints,
	}
	for i := range h.buckets {
		h.buckets[i] = index.EmptyHull()
	}
	if trackPoints {
		h.points = make(map[geom.Point]index.Hull)
	}
	return h
}

func bucket(angle float64) int {
	b := int(angle * float64(bucketCount-1))
	if b < 0 {
		b = 0
	}
	if b >= bucketCount {
		b = bucketCount - 1
	}
	return b
}

// Initialize inserts the first point as a self-loop.
func (h *Hull) Initialize(p index.Point, angle float64, e index.Edge) index.Hull {
	idx := h.nodes.Push(node{point: p, angle: angle, edge: e})
	n := h.nodes.Get(idx)
	n.left, n.right = idx, idx
	h.nodes.Set(idx, n)
	h.buckets[bucket(angle)] = idx
	return idx
}

// RegisterPoint records the 2D coordinate owning hull node h, for
// constrained-mode point lookup. Callers insert a node then, in
// constrained mode, register its coordinate separately since the hull
// itself does not retain 2D coordinates beyond the bucketing angle.
func (h *Hull) RegisterPoint(coord geom.Point, hn index.Hull) {
	if h.trackPoint {
		h.points[coord] = hn
	}
}

// Lookup returns the hull node registered for coord, if any.
func (h *Hull) Lookup(coord geom.Point) (index.Hull, bool) {
	hn, ok := h.points[coord]
	return hn, ok
}

// MovePoint transfers the point->hull mapping from oldCoord to
// newCoord, used when two distinct points have identical pseudo-angles.
func (h *Hull) MovePoint(oldCoord, newCoord geom.Point) {
	if !h.trackPoint {
		return
	}
	if hn, ok := h.points[oldCoord]; ok {
		delete(h.points, oldCoord)
		h.points[newCoord] = hn
	}
}

// Get locates the hull node h_right with the smallest angle >= angle,
// and returns h_right.left (the conventional "h_ab" insertion point).
// If the target bucket is empty, it scans forward (wrapping) to the
// next non-empty bucket and takes its head.
func (h *Hull) Get(angle float64) index.Hull {
	b := bucket(angle)
	for i := 0; i < bucketCount; i++ {
		idx := (b + i) % bucketCount
		head := h.buckets[idx]
		if head.IsEmpty() {
			continue
		}
		// Within a bucket, nodes are not individually ordered beyond
		// being reachable from the head; walk until we find the first
		// node whose angle is >= the query, wrapping within the bucket
		// chain only as far as nodes that hash to this same bucket.
		cur := head
		best := index.EmptyHull()
		for {
			n := h.nodes.Get(cur)
			if n.angle >= angle && bucket(n.angle) == idx {
				if best.IsEmpty() || n.angle < h.nodes.Get(best).angle {
					best = cur
				}
			}
			cur = n.right
			if cur == head {
				break
			}
		}
		if !best.IsEmpty() {
			return h.nodes.Get(best).left
		}
		if i == 0 {
			// Every node in the target bucket lies below the query.
			continue
		}
		return h.nodes.Get(head).left
	}
	// Only the target bucket holds nodes, all below the query: wrap
	// around to its lowest node, the head.
	if head := h.buckets[b]; !head.IsEmpty() {
		return h.nodes.Get(head).left
	}
	return index.EmptyHull()
}

// Insert splices a new node between left and left.right, updating the
// bucket head if the new node is the lowest in its bucket, and reusing
// a free-list slot if one is available.
func (h *Hull) Insert(left index.Hull, angle float64, point index.Point, e index.Edge) index.Hull {
	right := h.nodes.Get(left).right

	var idx index.Hull
	if !h.freeTop.IsEmpty() {
		idx = h.freeTop
		fn := h.nodes.Get(idx)
		h.freeTop = fn.left // free list threaded through `left`
		h.nodes.Set(idx, node{point: point, angle: angle, edge: e, left: left, right: right})
	} else {
		idx = h.nodes.Push(node{point: point, angle: angle, edge: e, left: left, right: right})
	}

	ln := h.nodes.Get(left)
	ln.right = idx
	h.nodes.Set(left, ln)
	rn := h.nodes.Get(right)
	rn.left = idx
	h.nodes.Set(right, rn)

	b := bucket(angle)
	if h.buckets[b].IsEmpty() || angle < h.nodes.Get(h.buckets[b]).angle {
		h.buckets[b] = idx
	}
	return idx
}

// InsertBare looks up left via Get and inserts.
func (h *Hull) InsertBare(angle float64, point index.Point, e index.Edge) index.Hull {
	left := h.Get(angle)
	return h.Insert(left, angle, point, e)
}

// Update reassigns the edge index stored at hull node h.
func (h *Hull) Update(hn index.Hull, e index.Edge) {
	n := h.nodes.Get(hn)
	n.edge = e
	h.nodes.Set(hn, n)
}

// Erase unlinks hn from the circular list, pushes it onto the
// free-list, and repairs its bucket head if it was the head.
func (h *Hull) Erase(hn index.Hull) {
	n := h.nodes.Get(hn)
	ln := h.nodes.Get(n.left)
	rn := h.nodes.Get(n.right)
	ln.right = n.right
	rn.left = n.left
	h.nodes.Set(n.left, ln)
	h.nodes.Set(n.right, rn)

	b := bucket(n.angle)
	if h.buckets[b] == hn {
		if n.right != hn && bucket(rn.angle) == b {
			h.buckets[b] = n.right
		} else {
			h.buckets[b] = index.EmptyHull()
		}
	}

	n.free = true
	n.left = h.freeTop
	h.nodes.Set(hn, n)
	h.freeTop = hn
}

// SetPoint overwrites the point a hull node represents, used when a
// newly inserted point shares its predecessor's exact pseudo-angle and
// effectively takes over its hull slot.
func (h *Hull) SetPoint(hn index.Hull, p index.Point) {
	n := h.nodes.Get(hn)
	n.point = p
	h.nodes.Set(hn, n)
}

func (h *Hull) LeftHull(hn index.Hull) index.Hull  { return h.nodes.Get(hn).left }
func (h *Hull) RightHull(hn index.Hull) index.Hull { return h.nodes.Get(hn).right }
func (h *Hull) Edge(hn index.Hull) index.Edge      { return h.nodes.Get(hn).edge }
func (h *Hull) Point(hn index.Hull) index.Point    { return h.nodes.Get(hn).point }
func (h *Hull) Angle(hn index.Hull) float64        { return h.nodes.Get(hn).angle }

// Values iterates every live hull node's edge in CCW order, starting
// from an arbitrary live node.
func (h *Hull) Values(fn func(e index.Edge)) {
	start := index.EmptyHull()
	for i := 0; i < h.nodes.Len(); i++ {
		idx := index.FromRaw[index.HullTag](uint32(i))
		if !h.nodes.Get(idx).free {
			start = idx
			break
		}
	}
	if start.IsEmpty() {
		return
	}
	cur := start
	for {
		n := h.nodes.Get(cur)
		fn(n.edge)
		cur = n.right
		if cur == start {
			break
		}
	}
}

// Len reports the number of live hull nodes.
func (h *Hull) Len() int {
	count := 0
	h.Values(func(index.Edge) { count++ })
	return count
}
