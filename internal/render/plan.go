package render

import (
	"math"

	"github.com/mtyler88/Phase-Diagrams/internal/config"
	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
	"github.com/mtyler88/Phase-Diagrams/internal/physics"
)

// FramePlan is everything that differs from one frame to the next.
type FramePlan struct {
	Frame   int
	Damping float64
	Field   dynamo.Field
	Initial []dynamo.State
}

// Damping oscillates once over the whole animation: A·sin(2π·frame/frames).
func Damping(cfg *config.Config, frame int) float64 {
	return cfg.DampingAmplitude * math.Sin(2*math.Pi*float64(frame)/float64(cfg.Frames))
}

// InitialMomentum spreads the lines evenly over the momentum range. The
// fractional frame offset slides the whole sweep by one line spacing over the
// animation, so consecutive frames interpolate between neighbouring lines.
func InitialMomentum(cfg *config.Config, frame, line int) float64 {
	lines := dynamo.Interval{Lo: 0, Hi: float64(cfg.Lines)}
	x := float64(line) + float64(frame)/float64(cfg.Frames)
	return lines.Map(x, cfg.Momentum.Interval())
}

func Plan(cfg *config.Config, frame int) (*FramePlan, error) {
	a := Damping(cfg, frame)
	field, err := physics.New(cfg.Field, physics.Params{
		Damping:   a,
		Frequency: cfg.Frequency,
		Overrides: cfg.FieldParams,
	})
	if err != nil {
		return nil, err
	}

	initial := make([]dynamo.State, cfg.Lines)
	for i := range initial {
		initial[i] = dynamo.State{Q: 0, P: InitialMomentum(cfg, frame, i)}
	}

	return &FramePlan{
		Frame:   frame,
		Damping: a,
		Field:   field,
		Initial: initial,
	}, nil
}
