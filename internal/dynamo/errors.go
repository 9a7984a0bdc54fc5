package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for phase-space rendering.
var (
	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownField indicates a vector field name with no registered constructor.
	ErrUnknownField = errors.New("dynamo: unknown vector field")

	// ErrUnknownIntegrator indicates an integrator name with no registered constructor.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownParam indicates a parameter name a field does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// FrameError wraps a failure with the index of the frame it belongs to.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %03d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}

// StepError reports the step at which a trajectory left the finite domain.
type StepError struct {
	Step  int
	State State
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d: %v %s", e.Step, ErrInvalidState, e.State)
}

func (e StepError) Unwrap() error {
	return ErrInvalidState
}
