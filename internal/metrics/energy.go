package metrics

import (
	"math"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// Metric accumulates a scalar over the states of one trajectory.
type Metric interface {
	Name() string
	Observe(x dynamo.State)
	Value() float64
	Reset()
}

// Observe feeds every state to every metric and returns the values by name.
func Observe(states []dynamo.State, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for _, x := range states {
		for _, m := range ms {
			m.Observe(x)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Energy is the mean energy over the observed states.
type Energy struct {
	name        string
	h           dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(h dynamo.Hamiltonian) *Energy {
	return &Energy{
		name: "energy",
		h:    h,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State) {
	e.totalEnergy += e.h.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest absolute departure from the first observed
// energy. It stays near zero only for conservative fields.
type EnergyDrift struct {
	name          string
	h             dynamo.Hamiltonian
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(h dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		h:    h,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State) {
	energy := e.h.Energy(x)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++
	e.maxDrift = math.Max(e.maxDrift, math.Abs(energy-e.initialEnergy))
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
