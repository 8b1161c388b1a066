package nurbs

import "fmt"

// CouldNotLowerError reports that Newton iteration failed to converge
// when inverting a sampled curve or surface, either because the
// iteration count was exhausted or because the local Jacobian was
// singular.
type CouldNotLowerError struct {
	Iterations int
	Reason     string
}

func (e *CouldNotLowerError) Error() string {
	return fmt.Sprintf("nurbs: point inversion did not converge after %d iterations: %s", e.Iterations, e.Reason)
}
