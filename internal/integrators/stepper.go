package integrators

import (
	"fmt"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// Constraint adjusts a state after every step, e.g. to wrap an angle.
type Constraint interface {
	Apply(x dynamo.State) dynamo.State
}

// Stepper is a restartable cursor over the states of one integration.
// It holds the current state, the step size and the field; nothing else.
type Stepper struct {
	integ      dynamo.Integrator
	field      dynamo.Field
	h          float64
	constraint Constraint
	current    dynamo.State
}

func NewStepper(integ dynamo.Integrator, field dynamo.Field, h float64, c Constraint) (*Stepper, error) {
	if !(h > 0) {
		return nil, fmt.Errorf("%w: step size must be positive, got %g", dynamo.ErrParameterBounds, h)
	}
	return &Stepper{
		integ:      integ,
		field:      field,
		h:          h,
		constraint: c,
	}, nil
}

// Reset rewinds the cursor to x0. The next call to Next steps away from x0.
func (s *Stepper) Reset(x0 dynamo.State) {
	s.current = x0
}

// Next advances one step and returns the new state.
func (s *Stepper) Next() dynamo.State {
	x := s.integ.Step(s.field, s.current, s.h)
	if s.constraint != nil {
		x = s.constraint.Apply(x)
	}
	s.current = x
	return x
}

func (s *Stepper) Current() dynamo.State { return s.current }
