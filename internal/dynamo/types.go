package dynamo

import (
	"fmt"
	"math"
)

// State is a point in phase space: position Q and conjugate momentum P.
type State struct {
	Q, P float64
}

func (s State) IsValid() bool {
	return !math.IsNaN(s.Q) && !math.IsInf(s.Q, 0) && !math.IsNaN(s.P) && !math.IsInf(s.P, 0)
}

func (s State) Norm() float64 {
	return math.Hypot(s.Q, s.P)
}

func (s State) Add(other State) State {
	return State{Q: s.Q + other.Q, P: s.P + other.P}
}

func (s State) Sub(other State) State {
	return State{Q: s.Q - other.Q, P: s.P - other.P}
}

func (s State) Scale(factor float64) State {
	return State{Q: s.Q * factor, P: s.P * factor}
}

func (s State) String() string {
	return fmt.Sprintf("(q=%.6g, p=%.6g)", s.Q, s.P)
}

// Field is a time-independent vector field on the phase plane.
// Implementations must be pure: the same state always yields the same rates.
type Field interface {
	QDot(x State) float64
	PDot(x State) float64
}

// Derive evaluates both components of f at x.
func Derive(f Field, x State) State {
	return State{Q: f.QDot(x), P: f.PDot(x)}
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(f Field, x State, h float64) State
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Interval is the half-open range [Lo, Hi).
type Interval struct {
	Lo, Hi float64
}

func (i Interval) Span() float64 {
	return i.Hi - i.Lo
}

func (i Interval) Contains(x float64) bool {
	return x >= i.Lo && x < i.Hi
}

// Map sends x from i to the corresponding point of dst.
// Values outside i land outside dst; nothing is clamped.
func (i Interval) Map(x float64, dst Interval) float64 {
	return dst.Span()/i.Span()*(x-i.Lo) + dst.Lo
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g)", i.Lo, i.Hi)
}
