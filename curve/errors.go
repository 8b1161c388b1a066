package curve

import "fmt"

// UnsupportedCurveError reports that a face-pipeline edge references a
// curve kind the pipeline does not know how to build a polyline for;
// the containing face is abandoned rather than emitting a wrong mesh.
type UnsupportedCurveError struct {
	Kind string
}

func (e *UnsupportedCurveError) Error() string {
	return fmt.Sprintf("curve: unsupported curve kind %q", e.Kind)
}

// NonInvertibleFrameError reports a degenerate ellipse/circle placement.
type NonInvertibleFrameError struct{}

func (e *NonInvertibleFrameError) Error() string {
	return "curve: ellipse placement frame is not invertible"
}
