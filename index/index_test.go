package index

import "testing"

func TestEmptySentinel(t *testing.T) {
	e := EmptyPoint()
	if !e.IsEmpty() {
		t.Fatalf("expected empty sentinel to report IsEmpty")
	}
	if e.Raw() != emptyValue {
		t.Fatalf("expected sentinel raw value %d, got %d", emptyValue, e.Raw())
	}
}

func TestArenaPushGet(t *testing.T) {
	a := NewArena[PointTag, string](0)
	i0 := a.Push("a")
	i1 := a.Push("b")

	if i0.IsEmpty() || i1.IsEmpty() {
		t.Fatalf("pushed indices must not be empty")
	}
	if a.Get(i0) != "a" || a.Get(i1) != "b" {
		t.Fatalf("unexpected values: %v %v", a.Get(i0), a.Get(i1))
	}
	if a.Len() != 2 {
		t.Fatalf("expected length 2, got %d", a.Len())
	}
}

func TestArenaNextIndex(t *testing.T) {
	a := NewArena[EdgeTag, int](0)
	next := a.NextIndex()
	pushed := a.Push(42)
	if next != pushed {
		t.Fatalf("NextIndex() did not predict the Push index: %v vs %v", next, pushed)
	}
}

func TestArenaSetPtr(t *testing.T) {
	a := NewArena[HullTag, int](0)
	i := a.Push(1)
	a.Set(i, 2)
	if a.Get(i) != 2 {
		t.Fatalf("Set did not take effect")
	}
	*a.Ptr(i) += 10
	if a.Get(i) != 12 {
		t.Fatalf("Ptr mutation did not take effect, got %d", a.Get(i))
	}
}

func TestDistinctTagsAreDistinctTypes(t *testing.T) {
	// This is a compile-time check: Point and Edge must not be
	// interchangeable despite both wrapping a uint32.
	var p Point = FromRaw[PointTag](3)
	var e Edge = FromRaw[EdgeTag](3)
	if p.Raw() != e.Raw() {
		t.Fatalf("raw values should match even though types differ")
	}
}
