package integrators

import (
	"fmt"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

var integrators = map[string]func() dynamo.Integrator{
	"euler": func() dynamo.Integrator { return NewEuler() },
	"rk4":   func() dynamo.Integrator { return NewRK4() },
}

func New(name string) (dynamo.Integrator, error) {
	fn, ok := integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownIntegrator, name)
	}
	return fn(), nil
}
