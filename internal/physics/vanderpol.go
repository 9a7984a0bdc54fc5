package physics

import (
	"fmt"
	"math"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// VanDerPol implements the Van der Pol oscillator.
//
//	q' = p
//	p' = μ(1 - q²)p - q
//
// For μ > 0 every trajectory settles onto one limit cycle; for μ < 0 the
// cycle repels and the origin attracts.
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol(mu float64) *VanDerPol {
	return &VanDerPol{Mu: mu}
}

func (v *VanDerPol) QDot(x dynamo.State) float64 {
	return x.P
}

func (v *VanDerPol) PDot(x dynamo.State) float64 {
	return v.Mu*(1-x.Q*x.Q)*x.P - x.Q
}

func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{"mu": v.Mu}
}

func (v *VanDerPol) SetParam(name string, value float64) error {
	if name != "mu" {
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: mu=%v", dynamo.ErrParameterBounds, value)
	}
	v.Mu = value
	return nil
}
