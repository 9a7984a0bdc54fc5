package trajectory

import (
	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
	"github.com/mtyler88/Phase-Diagrams/internal/integrators"
)

// Generator produces fixed-length trajectories of one field.
type Generator struct {
	stepper  *integrators.Stepper
	validate bool
}

type Options struct {
	// Bounds, when set, wraps the position after every step.
	Bounds *dynamo.Interval
	// Validate stops a trajectory at its first non-finite state.
	Validate bool
}

func NewGenerator(integ dynamo.Integrator, field dynamo.Field, h float64, opts Options) (*Generator, error) {
	var c integrators.Constraint
	if opts.Bounds != nil {
		p, err := NewPeriodic(*opts.Bounds)
		if err != nil {
			return nil, err
		}
		c = p
	}

	s, err := integrators.NewStepper(integ, field, h, c)
	if err != nil {
		return nil, err
	}
	return &Generator{stepper: s, validate: opts.Validate}, nil
}

// Generate returns the n states that follow x0. x0 itself is not included.
// With validation on, the result is cut before the first non-finite state and
// a dynamo.StepError describes where.
func (g *Generator) Generate(x0 dynamo.State, n int) ([]dynamo.State, error) {
	if n <= 0 {
		return nil, nil
	}

	states := make([]dynamo.State, 0, n)
	g.stepper.Reset(x0)
	for i := 0; i < n; i++ {
		x := g.stepper.Next()
		if g.validate && !x.IsValid() {
			return states, dynamo.StepError{Step: i, State: x}
		}
		states = append(states, x)
	}
	return states, nil
}
