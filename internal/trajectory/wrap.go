package trajectory

import (
	"fmt"
	"math"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// Wrap reduces x into [b.Lo, b.Hi) by a whole number of periods.
// Non-finite x is returned unchanged.
func Wrap(x float64, b dynamo.Interval) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if b.Contains(x) {
		return x
	}

	period := b.Span()
	// one period off is the common case after a single step
	if y := x + period; b.Contains(y) {
		return y
	}
	if y := x - period; b.Contains(y) {
		return y
	}

	r := math.Mod(x-b.Lo, period)
	if r < 0 {
		r += period
	}
	y := b.Lo + r
	if y >= b.Hi {
		y = b.Lo
	}
	return y
}

// Periodic is a position-only constraint that treats q as an angle.
type Periodic struct {
	Bounds dynamo.Interval
}

func NewPeriodic(b dynamo.Interval) (Periodic, error) {
	period := b.Span()
	if !(period > 0) || math.IsInf(period, 0) {
		return Periodic{}, fmt.Errorf("%w: wrap bounds %v have no finite positive period", dynamo.ErrParameterBounds, b)
	}
	return Periodic{Bounds: b}, nil
}

func (p Periodic) Apply(x dynamo.State) dynamo.State {
	x.Q = Wrap(x.Q, p.Bounds)
	return x
}
