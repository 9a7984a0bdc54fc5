package physics

import (
	"fmt"
	"math"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// DoubleWell is a particle in the bistable potential A(q² - B)², with
// minima at q = ±√B. Damping follows the same 2a convention as Dissipative.
type DoubleWell struct {
	A, B    float64
	Damping float64
}

func NewDoubleWell(damping float64) *DoubleWell {
	return &DoubleWell{A: 1.0, B: 1.0, Damping: damping}
}

func (d *DoubleWell) QDot(x dynamo.State) float64 {
	return x.P
}

func (d *DoubleWell) PDot(x dynamo.State) float64 {
	return -4*d.A*x.Q*(x.Q*x.Q-d.B) - 2*d.Damping*x.P
}

func (d *DoubleWell) Energy(x dynamo.State) float64 {
	return 0.5*x.P*x.P + d.A*math.Pow(x.Q*x.Q-d.B, 2)
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"A": d.A, "B": d.B, "damping": d.Damping}
}

func (d *DoubleWell) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s=%v", dynamo.ErrParameterBounds, name, value)
	}
	switch name {
	case "A":
		d.A = value
	case "B":
		if value < 0 {
			return fmt.Errorf("%w: B=%v must not be negative", dynamo.ErrParameterBounds, value)
		}
		d.B = value
	case "damping":
		d.Damping = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
