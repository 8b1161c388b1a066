package index

// PointTag indexes the CDT's point arena (pre-sorted, deduplicated
// input coordinates plus any Steiner points appended later).
type PointTag struct{}

func (PointTag) tag() {}

// EdgeTag indexes the half-edge arena.
type EdgeTag struct{}

func (EdgeTag) tag() {}

// HullTag indexes the hull's circular node list.
type HullTag struct{}

func (HullTag) tag() {}

// ContourTag indexes a monotone-mountain contour's node list.
type ContourTag struct{}

func (ContourTag) tag() {}

// Point, Edge, Hull, and Contour are the four index namespaces used
// throughout the CDT.
type (
	Point   = Index[PointTag]
	Edge    = Index[EdgeTag]
	Hull    = Index[HullTag]
	Contour = Index[ContourTag]
)

// EmptyPoint, EmptyEdge, EmptyHull, and EmptyContour are the sentinel
// values of their respective namespaces.
func EmptyPoint() Point     { return Empty[PointTag]() }
func EmptyEdge() Edge       { return Empty[EdgeTag]() }
func EmptyHull() Hull       { return Empty[HullTag]() }
func EmptyContour() Contour { return Empty[ContourTag]() }
