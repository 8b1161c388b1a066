package pipeline

import (
	"github.com/formlabs-oss/stepmesh/cdt"
	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/mesh"
	"github.com/formlabs-oss/stepmesh/step"
	"github.com/formlabs-oss/stepmesh/surface"
)

// maxSteinerRetries caps the Steiner-point auto-repair loop so a
// pathological input cannot spin forever; a well-formed face settles
// in one or two retries.
const maxSteinerRetries = 64

// convertFace lowers one advanced face to a colorless, untransformed
// mesh fragment: build its surface, lower every boundary loop to a
// 2D/3D point pair, triangulate with Steiner auto-repair, then emit
// triangles wound so their outward side matches the surface normal.
// An unsupported curve or surface kind, or any lowering failure,
// abandons the face (returns an error, no partial triangles).
func convertFace(f *step.File, faceID int, o options) (mesh.Mesh, error) {
	face, ok := f.At(faceID).(*step.AdvancedFace)
	if !ok {
		return mesh.Mesh{}, &EntityTypeError{ID: faceID, Want: "AdvancedFace"}
	}
	surf, err := buildSurface(f, face.FaceGeometry)
	if err != nil {
		return mesh.Mesh{}, err
	}

	var loopPositions []geom.Point3
	var fixedEdges []cdt.Edge
	var steinerPositions []geom.Point3

	for _, boundID := range face.Bounds {
		bound, ok := f.At(boundID).(*step.FaceBound)
		if !ok {
			return mesh.Mesh{}, &EntityTypeError{ID: boundID, Want: "FaceBound"}
		}
		switch loop := f.At(bound.Bound).(type) {
		case *step.VertexLoop:
			p, err := vertexPoint3(f, loop.LoopVertex)
			if err != nil {
				return mesh.Mesh{}, err
			}
			steinerPositions = append(steinerPositions, p)
		case *step.EdgeLoop:
			pts, err := buildEdgeLoopPolyline(f, loop)
			if err != nil {
				return mesh.Mesh{}, err
			}
			if !bound.Orientation {
				reversePoints(pts)
			}
			start := len(loopPositions)
			n := len(pts)
			loopPositions = append(loopPositions, pts...)
			for i := 0; i < n; i++ {
				fixedEdges = append(fixedEdges, cdt.Edge{Src: start + i, Dst: start + (i+1)%n})
			}
		default:
			return mesh.Mesh{}, ErrDegenerateLoop
		}
	}

	loopVertexCount := len(loopPositions)
	positions := append(append([]geom.Point3{}, loopPositions...), steinerPositions...)

	uvs, normals, err := surface.LowerVerts(surf, positions)
	if err != nil {
		return mesh.Mesh{}, err
	}

	boundsSrc := uvs[:loopVertexCount]
	if loopVertexCount == 0 {
		boundsSrc = uvs
	}
	for _, sp := range surf.AddSteinerPoints(surface.BoundsOf(boundsSrc)) {
		uvs = append(uvs, sp.UV)
		positions = append(positions, sp.Pos)
		normals = append(normals, sp.Normal)
	}

	tri, err := triangulateWithRepair(uvs, fixedEdges, loopVertexCount, o.check)
	if err != nil {
		return mesh.Mesh{}, err
	}

	flip := face.SameSense != surf.Sign()
	var out mesh.Mesh
	vertIndex := make(map[int]uint32, len(positions))
	vertOf := func(i int) uint32 {
		if idx, ok := vertIndex[i]; ok {
			return idx
		}
		idx := uint32(len(out.Verts))
		out.Verts = append(out.Verts, mesh.Vertex{Pos: positions[i], Norm: normals[i]})
		vertIndex[i] = idx
		return idx
	}
	tri.Triangles(func(a, b, c int) {
		va, vb, vc := vertOf(a), vertOf(b), vertOf(c)
		if flip {
			vb, vc = vc, vb
		}
		out.Triangles = append(out.Triangles, mesh.Triangle{Verts: [3]uint32{va, vb, vc}})
	})
	return out, nil
}

// triangulateWithRepair runs the CDT, retrying with the Steiner
// auto-repair dedup (reassigning an offending bonus point to point 0)
// whenever PointOnFixedEdge lands on a point at or past
// loopVertexCount — the Steiner points, which carry no fixed edges of
// their own and so can be safely collapsed. When check is set, every
// insertion step is followed by the half-edge graph's own invariant
// checker instead of running straight through via Run.
func triangulateWithRepair(uvs []geom.Point, fixedEdges []cdt.Edge, loopVertexCount int, check bool) (*cdt.Triangulation, error) {
	for attempt := 0; attempt < maxSteinerRetries; attempt++ {
		t, err := cdt.NewWithEdges(uvs, fixedEdges)
		if err != nil {
			return nil, err
		}
		var runErr error
		if check {
			runErr = t.RunChecked()
		} else {
			runErr = t.Run()
		}
		if runErr == nil {
			return t, nil
		}
		if pe, ok := runErr.(*cdt.PointOnFixedEdgeError); ok && pe.CallerIndex >= loopVertexCount {
			uvs[pe.CallerIndex] = uvs[0]
			continue
		}
		return nil, runErr
	}
	return nil, cdt.ErrCannotInitialize
}

// buildEdgeLoopPolyline concatenates the polylines of every oriented
// edge in loop, deduplicating each edge's shared vertex with the
// previous one, then drops the final point if it closes back onto
// the first (the CDT input closes the loop with an explicit edge
// instead).
func buildEdgeLoopPolyline(f *step.File, loop *step.EdgeLoop) ([]geom.Point3, error) {
	var pts []geom.Point3
	for _, oeID := range loop.EdgeList {
		oe, ok := f.At(oeID).(*step.OrientedEdge)
		if !ok {
			return nil, &EntityTypeError{ID: oeID, Want: "OrientedEdge"}
		}
		ec, ok := f.At(oe.EdgeElement).(*step.EdgeCurve)
		if !ok {
			return nil, &EntityTypeError{ID: oe.EdgeElement, Want: "EdgeCurve"}
		}
		c, u, v, err := buildCurve(f, ec, oe.Orientation)
		if err != nil {
			return nil, err
		}
		poly := c.Build(u, v)
		if len(pts) > 0 && len(poly) > 0 {
			poly = poly[1:]
		}
		pts = append(pts, poly...)
	}
	if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	return pts, nil
}

func reversePoints(pts []geom.Point3) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
