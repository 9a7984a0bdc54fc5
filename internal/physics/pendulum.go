package physics

import (
	"fmt"
	"math"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// Pendulum is the undriven, undamped pendulum with unit length and gravity.
type Pendulum struct{}

func NewPendulum() *Pendulum {
	return &Pendulum{}
}

func (p *Pendulum) QDot(x dynamo.State) float64 {
	return x.P
}

func (p *Pendulum) PDot(x dynamo.State) float64 {
	return -math.Sin(x.Q)
}

// Energy is 0.5*p² - cos(q); it is a constant of motion.
func (p *Pendulum) Energy(x dynamo.State) float64 {
	return 0.5*x.P*x.P - math.Cos(x.Q)
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
}
