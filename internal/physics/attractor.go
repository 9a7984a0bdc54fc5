package physics

import (
	"fmt"
	"math"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// Attractor is the pendulum with unit linear damping. Every trajectory spirals
// into one of the stable equilibria at q = 2kπ.
type Attractor struct{}

func NewAttractor() *Attractor {
	return &Attractor{}
}

func (a *Attractor) QDot(x dynamo.State) float64 {
	return x.P
}

func (a *Attractor) PDot(x dynamo.State) float64 {
	return -math.Sin(x.Q) - x.P
}

func (a *Attractor) Energy(x dynamo.State) float64 {
	return 0.5*x.P*x.P - math.Cos(x.Q)
}

func (a *Attractor) GetParams() map[string]float64 {
	return map[string]float64{}
}

func (a *Attractor) SetParam(name string, value float64) error {
	return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
}
