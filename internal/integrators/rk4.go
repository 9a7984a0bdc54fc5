package integrators

import "github.com/mtyler88/Phase-Diagrams/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta scheme.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.Field, x dynamo.State, h float64) dynamo.State {
	k1 := dynamo.Derive(f, x)
	k2 := dynamo.Derive(f, x.Add(k1.Scale(h/2)))
	k3 := dynamo.Derive(f, x.Add(k2.Scale(h/2)))
	k4 := dynamo.Derive(f, x.Add(k3.Scale(h)))

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return x.Add(sum.Scale(h / 6))
}
