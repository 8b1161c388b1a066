package step

import "testing"

func TestStripFlattenRemovesCommentsAndWhitespace(t *testing.T) {
	in := "\n/* comment */\nDATA;\n#10=LINE('', #1, #2);\n"
	got := string(StripFlatten([]byte(in)))
	want := "DATA;#10=LINE('',#1,#2);"
	if got != want {
		t.Fatalf("StripFlatten = %q, want %q", got, want)
	}
}

func TestIntoBlocksSkipsSemicolonsInStrings(t *testing.T) {
	flat := "DATA;#10=CARTESIAN_POINT('a;b',(1.,2.,3.));"
	blocks := IntoBlocks([]byte(flat))
	want := []string{"DATA;", "#10=CARTESIAN_POINT('a;b',(1.,2.,3.));"}
	if len(blocks) != len(want) {
		t.Fatalf("IntoBlocks returned %d blocks, want %d: %v", len(blocks), len(want), blocks)
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Fatalf("block %d = %q, want %q", i, blocks[i], want[i])
		}
	}
}

func TestDecodeSimpleCartesianPoint(t *testing.T) {
	src := "ISO-10303-21;\nHEADER;\nENDSEC;\nDATA;\n#1=CARTESIAN_POINT('',(1.,2.,3.));\nENDSEC;\nEND-ISO-10303-21;\n"
	f, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	p, ok := f.At(1).(*CartesianPoint)
	if !ok {
		t.Fatalf("entity 1 = %#v, want *CartesianPoint", f.At(1))
	}
	want := []float64{1, 2, 3}
	for i, c := range want {
		if p.Coordinates[i] != c {
			t.Fatalf("Coordinates[%d] = %v, want %v", i, p.Coordinates[i], c)
		}
	}
}

func TestDecodeResolvesForwardReferences(t *testing.T) {
	src := "DATA;\n" +
		"#1=CARTESIAN_POINT('',(0.,0.,0.));\n" +
		"#2=DIRECTION('',(0.,0.,1.));\n" +
		"#3=DIRECTION('',(1.,0.,0.));\n" +
		"#4=AXIS2_PLACEMENT_3D('',#1,#2,#3);\n" +
		"#5=PLANE('',#4);\n" +
		"ENDSEC;\n"
	f, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	plane, ok := f.At(5).(*Plane)
	if !ok {
		t.Fatalf("entity 5 = %#v, want *Plane", f.At(5))
	}
	placement, ok := f.At(plane.Position).(*Axis2Placement3D)
	if !ok {
		t.Fatalf("entity %d = %#v, want *Axis2Placement3D", plane.Position, f.At(plane.Position))
	}
	if placement.Location != 1 || placement.Axis != 2 || placement.RefDirection != 3 {
		t.Fatalf("placement refs = %+v, want 1,2,3", placement)
	}
}

func TestDecodeRationalBSplineCurveComplexInstance(t *testing.T) {
	src := "DATA;\n" +
		"#1=(BOUNDED_CURVE()" +
		"B_SPLINE_CURVE(2,(#10,#11,#12),.UNSPECIFIED.,.F.,.F.)" +
		"B_SPLINE_CURVE_WITH_KNOTS('',2,(#10,#11,#12),.UNSPECIFIED.,.F.,.F.,(3,3),(0.,1.),.UNSPECIFIED.)" +
		"CURVE()" +
		"GEOMETRIC_REPRESENTATION_ITEM()" +
		"RATIONAL_B_SPLINE_CURVE((1.,0.70710678,1.))" +
		"REPRESENTATION_ITEM('')" +
		");\n" +
		"ENDSEC;\n"
	f, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	c, ok := f.At(1).(*BSplineCurveWithKnots)
	if !ok {
		t.Fatalf("entity 1 = %#v, want *BSplineCurveWithKnots", f.At(1))
	}
	if c.Degree != 2 || len(c.ControlPointsList) != 3 {
		t.Fatalf("unexpected curve shape: %+v", c)
	}
	if len(c.Weights) != 3 || c.Weights[1] != 0.70710678 {
		t.Fatalf("Weights = %v, want rational weights from the RATIONAL_B_SPLINE_CURVE group", c.Weights)
	}
}

func TestDecodeUnknownKeywordBecomesUnsupported(t *testing.T) {
	src := "DATA;\n#1=SOME_UNKNOWN_THING('',1,2);\nENDSEC;\n"
	f, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u, ok := f.At(1).(*Unsupported)
	if !ok {
		t.Fatalf("entity 1 = %#v, want *Unsupported", f.At(1))
	}
	if u.Keyword != "SOME_UNKNOWN_THING" {
		t.Fatalf("Keyword = %q, want SOME_UNKNOWN_THING", u.Keyword)
	}
}

func TestDecodeMissingDataSection(t *testing.T) {
	if _, err := Decode([]byte("ISO-10303-21;\nEND-ISO-10303-21;\n")); err != ErrNoDataSection {
		t.Fatalf("Decode error = %v, want ErrNoDataSection", err)
	}
}
