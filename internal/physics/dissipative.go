package physics

import (
	"fmt"
	"math"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// Dissipative is the damped pendulum q̈ + 2a q̇ + w² sin q = 0.
// Negative damping pumps energy into the system.
type Dissipative struct {
	Damping   float64
	Frequency float64
}

func NewDissipative(damping, frequency float64) *Dissipative {
	return &Dissipative{
		Damping:   damping,
		Frequency: frequency,
	}
}

func (d *Dissipative) QDot(x dynamo.State) float64 {
	return x.P
}

func (d *Dissipative) PDot(x dynamo.State) float64 {
	return -2*d.Damping*x.P - d.Frequency*d.Frequency*math.Sin(x.Q)
}

// Energy is 0.5*p² - w²cos(q), conserved only when Damping is zero.
func (d *Dissipative) Energy(x dynamo.State) float64 {
	return 0.5*x.P*x.P - d.Frequency*d.Frequency*math.Cos(x.Q)
}

func (d *Dissipative) GetParams() map[string]float64 {
	return map[string]float64{
		"damping":   d.Damping,
		"frequency": d.Frequency,
	}
}

func (d *Dissipative) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s=%v", dynamo.ErrParameterBounds, name, value)
	}
	switch name {
	case "damping":
		d.Damping = value
	case "frequency":
		d.Frequency = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
