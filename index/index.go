// Package index provides strongly-typed integer indices and the flat
// arenas parameterized by them. Every mutable structure in the CDT
// (points, half-edges, hull nodes, contour nodes) is stored in one of
// these arenas and referenced only by its typed index, never by
// pointer, so that erase/swap/flood-fill are O(1) array operations and
// trivially safe across disjoint triangulations run in parallel.
package index

// Tag marks the namespace an Index/Arena belongs to. The four concrete
// tags (Point, Edge, Hull, Contour) are defined in tags.go; Tag itself
// carries no behavior, it only distinguishes the generic instantiations
// at compile time.
type Tag interface {
	tag()
}

// Index is a typed handle into an Arena[T]. The zero value refers to
// slot 0; Empty[T]() is the reserved sentinel meaning "no index".
type Index[T Tag] struct {
	v uint32
}

// emptyValue is the reserved sentinel: the maximum representable value.
// It is never produced by a successful Push, since an Arena would need
// 2^32-1 elements to reach it.
const emptyValue = ^uint32(0)

// Empty returns the reserved sentinel index for tag T.
func Empty[T Tag]() Index[T] {
	return Index[T]{v: emptyValue}
}

// IsEmpty reports whether i is the reserved sentinel.
func (i Index[T]) IsEmpty() bool {
	return i.v == emptyValue
}

// Raw returns the underlying integer value, for use as a map key or in
// debug output. It is not meaningful across arenas of different tags.
func (i Index[T]) Raw() uint32 {
	return i.v
}

// FromRaw constructs an Index from a raw integer value, e.g. when
// decoding a caller-supplied point index. It does not validate bounds;
// callers index an Arena to validate.
func FromRaw[T Tag](v uint32) Index[T] {
	return Index[T]{v: v}
}

// Arena is a flat, growable vector of T values addressed by Index[T].
type Arena[T Tag, V any] struct {
	items []V
}

// NewArena returns an empty arena with capacity reserved for n items.
func NewArena[T Tag, V any](capacity int) *Arena[T, V] {
	return &Arena[T, V]{items: make([]V, 0, capacity)}
}

// Len returns the number of items pushed so far.
func (a *Arena[T, V]) Len() int {
	return len(a.items)
}

// NextIndex returns the index that the next Push will assign, without
// mutating the arena. Used by callers that need to wire up a
// self-referential or mutually-referential pair of indices before both
// sides exist.
func (a *Arena[T, V]) NextIndex() Index[T] {
	return Index[T]{v: uint32(len(a.items))}
}

// Push appends v and returns its newly assigned index.
func (a *Arena[T, V]) Push(v V) Index[T] {
	idx := a.NextIndex()
	a.items = append(a.items, v)
	return idx
}

// Get returns the value at i. It panics if i is empty or out of range,
// matching the arena's role as an invariant-checked internal structure
// rather than a user-facing container.
func (a *Arena[T, V]) Get(i Index[T]) V {
	return a.items[i.v]
}

// Set overwrites the value at i.
func (a *Arena[T, V]) Set(i Index[T], v V) {
	a.items[i.v] = v
}

// Ptr returns a pointer to the slot at i, for in-place mutation of
// struct-valued arenas without a Get/Set round trip.
func (a *Arena[T, V]) Ptr(i Index[T]) *V {
	return &a.items[i.v]
}

// Reserve grows the backing slice's capacity to at least n, amortizing
// repeated small Pushes during incremental insertion.
func (a *Arena[T, V]) Reserve(n int) {
	if cap(a.items) >= n {
		return
	}
	grown := make([]V, len(a.items), n)
	copy(grown, a.items)
	a.items = grown
}
