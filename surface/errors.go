package surface

import "fmt"

// NonInvertibleFrameError reports that a surface's placement axes did
// not form an invertible rigid transform (degenerate axis data from
// the entity graph).
type NonInvertibleFrameError struct {
	Kind string
}

func (e *NonInvertibleFrameError) Error() string {
	return fmt.Sprintf("surface: %s placement frame is not invertible", e.Kind)
}
