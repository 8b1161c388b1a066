package cdt

import (
	"bytes"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/index"
)

// svgViewport is the pixel size of the square canvas ToSVG scales the
// triangulation's bounding box into.
const svgViewport = 800

// ToSVG renders the triangulation's current state to an SVG document:
// black background, fixed edges in white, unconstrained edges in red,
// every point as a small red circle. In debug mode it also draws the
// hull boundary (yellow, dashed) and any fixed edges not yet inserted
// (green), which is only meaningful mid-sweep — e.g. when called from
// a panic-recovery boundary to capture the state just before failure.
func (t *Triangulation) ToSVG(debug bool) string {
	n := t.pts.Len()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i < n; i++ {
		p := t.pts.Get(index.FromRaw[index.PointTag](uint32(i)))
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	if n == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}
	dx, dy := maxX-minX, maxY-minY
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	const margin = 20
	scale := float64(svgViewport-2*margin) / math.Max(dx, dy)
	toPx := func(p geom.Point) (int, int) {
		x := margin + (p.X-minX)*scale
		y := margin + (maxY-p.Y)*scale // SVG y grows downward; flip
		return int(x), int(y)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(svgViewport, svgViewport)
	// Dummy background rect so rsvg-convert doesn't clip the viewport
	// to the content bbox.
	canvas.Rect(0, 0, svgViewport, svgViewport, "fill:black")

	if debug {
		pending := make(map[int]bool)
		for _, idx := range t.order[t.cursor:] {
			pending[idx] = true
		}
		for dst, srcs := range t.endingsByDst {
			if !pending[dst] {
				continue
			}
			dX, dY := toPx(t.pts.Get(index.FromRaw[index.PointTag](uint32(dst))))
			for _, src := range srcs {
				sX, sY := toPx(t.pts.Get(index.FromRaw[index.PointTag](uint32(src))))
				canvas.Line(sX, sY, dX, dY, "stroke:green;stroke-width:1")
			}
		}
		t.hull.Values(func(e index.Edge) {
			ed := t.half.Edge(e)
			aX, aY := toPx(t.pts.Get(ed.Src))
			bX, bY := toPx(t.pts.Get(ed.Dst))
			canvas.Line(aX, aY, bX, bY, "stroke:yellow;stroke-width:1;stroke-dasharray:4,4")
		})
	}

	for i := 0; i < t.half.Len(); i++ {
		e := index.FromRaw[index.EdgeTag](uint32(i))
		if t.half.Erased(e) {
			continue
		}
		ed := t.half.Edge(e)
		if !ed.Buddy.IsEmpty() && ed.Buddy.Raw() < e.Raw() {
			continue // the buddy already drew this undirected edge
		}
		aX, aY := toPx(t.pts.Get(ed.Src))
		bX, bY := toPx(t.pts.Get(ed.Dst))
		style := "stroke:red;stroke-width:1"
		if ed.Fixed() {
			style = "stroke:white;stroke-width:2"
		}
		canvas.Line(aX, aY, bX, bY, style)
	}

	for i := 0; i < n; i++ {
		x, y := toPx(t.pts.Get(index.FromRaw[index.PointTag](uint32(i))))
		canvas.Circle(x, y, 3, "fill:red")
	}

	canvas.End()
	return buf.String()
}

// SaveSVG writes the triangulation's non-debug rendering to filename.
func (t *Triangulation) SaveSVG(filename string) error {
	return os.WriteFile(filename, []byte(t.ToSVG(false)), 0o644)
}

// SaveDebugSVG writes the triangulation's debug rendering (hull
// boundary and pending fixed edges included) to filename.
func (t *Triangulation) SaveDebugSVG(filename string) error {
	return os.WriteFile(filename, []byte(t.ToSVG(true)), 0o644)
}

// SaveDebugPanic binary-searches for the last prefix of incremental
// Step calls that completes without panicking, then saves a debug SVG
// of that last-good state to filename. It returns the number of safe
// steps, so a caller chasing down a panic deep in a large input can
// reproduce it from a much smaller, already-visualized starting point
// instead of re-running the whole triangulation under a debugger.
func SaveDebugPanic(points []geom.Point, edges []Edge, filename string) (safeSteps int, err error) {
	lo, hi := 0, len(points)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if stepsSucceed(points, edges, mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	t, buildErr := NewWithEdges(points, edges)
	if buildErr != nil {
		return 0, buildErr
	}
	func() {
		defer func() { recover() }()
		for i := 0; i < lo && !t.Done(); i++ {
			t.Step()
		}
	}()
	if err := t.SaveDebugSVG(filename); err != nil {
		return lo, err
	}
	return lo, nil
}

// stepsSucceed reports whether steps incremental Step calls complete
// without panicking on a fresh triangulation of points/edges.
func stepsSucceed(points []geom.Point, edges []Edge, steps int) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	t, err := NewWithEdges(points, edges)
	if err != nil {
		return false
	}
	for i := 0; i < steps && !t.Done(); i++ {
		t.Step()
	}
	return true
}
