package mesh

import (
	"os"
	"testing"

	"github.com/formlabs-oss/stepmesh/geom"
)

func triangleMesh(offset float64) Mesh {
	return Mesh{
		Verts: []Vertex{
			{Pos: geom.Pt3(offset, 0, 0)},
			{Pos: geom.Pt3(offset+1, 0, 0)},
			{Pos: geom.Pt3(offset, 1, 0)},
		},
		Triangles: []Triangle{{Verts: [3]uint32{0, 1, 2}}},
	}
}

func TestCombineRebasesTriangleIndices(t *testing.T) {
	a := triangleMesh(0)
	b := triangleMesh(10)
	c := Combine(a, b)

	if len(c.Verts) != 6 {
		t.Fatalf("combined vertex count = %d, want 6", len(c.Verts))
	}
	if len(c.Triangles) != 2 {
		t.Fatalf("combined triangle count = %d, want 2", len(c.Triangles))
	}
	want := [3]uint32{3, 4, 5}
	if c.Triangles[1].Verts != want {
		t.Fatalf("second triangle verts = %v, want %v", c.Triangles[1].Verts, want)
	}
}

func TestCombineIsAssociative(t *testing.T) {
	a, b, c := triangleMesh(0), triangleMesh(10), triangleMesh(20)
	left := Combine(Combine(a, b), c)
	right := Combine(a, Combine(b, c))
	if len(left.Verts) != len(right.Verts) || len(left.Triangles) != len(right.Triangles) {
		t.Fatalf("combine is not associative by vertex/triangle count")
	}
}

func TestCombineStatsSumsFields(t *testing.T) {
	a := Stats{NumShells: 1, NumFaces: 3, NumErrors: 1}
	b := Stats{NumShells: 2, NumFaces: 5, NumPanics: 1}
	got := CombineStats(a, b)
	want := Stats{NumShells: 3, NumFaces: 8, NumErrors: 1, NumPanics: 1}
	if got != want {
		t.Fatalf("CombineStats = %+v, want %+v", got, want)
	}
}

func TestSaveSTLProducesExpectedByteLayout(t *testing.T) {
	m := triangleMesh(0)
	f, err := os.CreateTemp(t.TempDir(), "*.stl")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	name := f.Name()
	f.Close()

	if err := m.SaveSTL(name); err != nil {
		t.Fatalf("SaveSTL: %v", err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	wantLen := 80 + 4 + 50*len(m.Triangles)
	if len(data) != wantLen {
		t.Fatalf("STL file length = %d, want %d", len(data), wantLen)
	}
	count := uint32(data[80]) | uint32(data[81])<<8 | uint32(data[82])<<16 | uint32(data[83])<<24
	if count != uint32(len(m.Triangles)) {
		t.Fatalf("triangle count in header = %d, want %d", count, len(m.Triangles))
	}
}
