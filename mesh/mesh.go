// Package mesh holds the triangulated output of the face pipeline:
// per-vertex position/normal/color, per-triangle vertex indices, and
// the byte-exact STL writer used to inspect results.
package mesh

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/formlabs-oss/stepmesh/geom"
)

// Vertex is one output mesh vertex.
type Vertex struct {
	Pos   geom.Point3
	Norm  geom.Point3
	Color geom.Point3
}

// Triangle references three vertices by index into the owning Mesh's
// Verts slice.
type Triangle struct {
	Verts [3]uint32
}

// Mesh is the accumulated triangulated output of one or more shells.
type Mesh struct {
	Verts     []Vertex
	Triangles []Triangle
}

// Combine concatenates b onto a, rebasing b's triangle vertex indices
// by a's vertex count. This is the monoid operation the pipeline uses
// to reduce per-shell meshes produced by parallel fan-out: associative,
// with the empty Mesh as identity.
func Combine(a, b Mesh) Mesh {
	dv := uint32(len(a.Verts))
	a.Verts = append(a.Verts, b.Verts...)
	for _, t := range b.Triangles {
		a.Triangles = append(a.Triangles, Triangle{Verts: [3]uint32{
			t.Verts[0] + dv, t.Verts[1] + dv, t.Verts[2] + dv,
		}})
	}
	return a
}

// SaveSTL writes the mesh as a standard little-endian binary STL file:
// an 80-byte header, a u32 triangle count, then 50 bytes per triangle
// (a zeroed 12-byte normal, three 12-byte float32 vertex positions,
// and a 2-byte attribute count).
func (m Mesh) SaveSTL(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, 80)
	for i := range header {
		header[i] = 'x'
	}
	if _, err := f.Write(header); err != nil {
		return err
	}

	if len(m.Triangles) > math.MaxUint32 {
		return fmt.Errorf("mesh: too many triangles to fit a u32 count: %d", len(m.Triangles))
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return err
	}

	var zeroNormal [12]byte
	var attrs [2]byte
	for _, t := range m.Triangles {
		if _, err := f.Write(zeroNormal[:]); err != nil {
			return err
		}
		for _, idx := range t.Verts {
			p := m.Verts[idx].Pos
			for _, c := range [3]float32{float32(p.X), float32(p.Y), float32(p.Z)} {
				if err := binary.Write(f, binary.LittleEndian, c); err != nil {
					return err
				}
			}
		}
		if _, err := f.Write(attrs[:]); err != nil {
			return err
		}
	}
	return nil
}

// Stats accumulates per-run conversion counters across shells.
type Stats struct {
	NumShells int
	NumFaces  int
	NumErrors int
	NumPanics int
}

// CombineStats merges two Stats, the monoid reduction the pipeline
// uses alongside Combine when folding per-shell results together.
func CombineStats(a, b Stats) Stats {
	a.NumShells += b.NumShells
	a.NumFaces += b.NumFaces
	a.NumErrors += b.NumErrors
	a.NumPanics += b.NumPanics
	return a
}
