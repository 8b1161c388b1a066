package hull

import (
	"testing"

	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/index"
)

func pt(v uint32) index.Point { return index.FromRaw[index.PointTag](v) }
func ed(v uint32) index.Edge  { return index.FromRaw[index.EdgeTag](v) }

func TestInitializeSelfLoop(t *testing.T) {
	h := New(false)
	n := h.Initialize(pt(0), 0.0, ed(0))
	if h.LeftHull(n) != n || h.RightHull(n) != n {
		t.Fatalf("expected self-loop after Initialize")
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 live node, got %d", h.Len())
	}
}

func TestInsertAndGet(t *testing.T) {
	h := New(false)
	a := h.Initialize(pt(0), 0.1, ed(0))
	b := h.Insert(a, 0.5, pt(1), ed(1))
	c := h.Insert(b, 0.9, pt(2), ed(2))

	if h.Len() != 3 {
		t.Fatalf("expected 3 live nodes, got %d", h.Len())
	}
	if h.RightHull(a) != b || h.RightHull(b) != c || h.RightHull(c) != a {
		t.Fatalf("ring not in expected order")
	}

	left := h.Get(0.6)
	if left != b {
		t.Fatalf("Get(0.6) should return node c's left neighbor (b), got node with angle %v", h.Angle(left))
	}
}

func TestEraseAndFreeListReuse(t *testing.T) {
	h := New(false)
	a := h.Initialize(pt(0), 0.1, ed(0))
	b := h.Insert(a, 0.5, pt(1), ed(1))
	_ = h.Insert(b, 0.9, pt(2), ed(2))

	h.Erase(b)
	if h.Len() != 2 {
		t.Fatalf("expected 2 live nodes after erase, got %d", h.Len())
	}

	// Re-insertion should reuse the freed slot rather than growing.
	before := h.Len()
	reused := h.Insert(a, 0.5, pt(3), ed(3))
	if reused != b {
		t.Fatalf("expected re-insertion to reuse b's freed slot")
	}
	if h.Len() != before+1 {
		t.Fatalf("expected live count to grow by 1 after reinsert")
	}
}

func TestValuesVisitsEveryLiveEdgeOnce(t *testing.T) {
	h := New(false)
	a := h.Initialize(pt(0), 0.1, ed(10))
	b := h.Insert(a, 0.5, pt(1), ed(11))
	h.Insert(b, 0.9, pt(2), ed(12))

	seen := map[index.Edge]bool{}
	h.Values(func(e index.Edge) { seen[e] = true })
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct edges visited, got %d", len(seen))
	}
}

func TestRegisterAndLookupPoint(t *testing.T) {
	h := New(true)
	n := h.Initialize(pt(0), 0.1, ed(0))
	p := geom.Pt(1, 2)
	h.RegisterPoint(p, n)
	got, ok := h.Lookup(p)
	if !ok || got != n {
		t.Fatalf("expected lookup to find registered node")
	}
}
