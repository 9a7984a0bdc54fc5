package integrators

import "github.com/mtyler88/Phase-Diagrams/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.Field, x dynamo.State, h float64) dynamo.State {
	return x.Add(dynamo.Derive(f, x).Scale(h))
}
