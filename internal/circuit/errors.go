package circuit

import "fmt"

// InvalidParameterError reports a rejected SetParameters call. The state
// it was called on is unchanged.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("circuit: invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

// InternalInvariantError reports a broken programming contract, such as a
// non-positive time constant reaching the simulator. It is fatal: the
// caller should abort the simulation loop rather than continue with
// corrupted state.
type InternalInvariantError struct {
	Message string
}

func (e *InternalInvariantError) Error() string {
	return "circuit: internal invariant violated: " + e.Message
}
