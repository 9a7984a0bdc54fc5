package viz

import (
	"fmt"
	"math"

	"honnef.co/go/curve"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// Projector maps the phase-space box Source (X is q, Y is p) onto the pixel
// box Dest. Each axis is scaled independently; nothing is clamped.
type Projector struct {
	Source curve.Rect
	Dest   curve.Rect
}

func NewProjector(q, p dynamo.Interval, width, height int) (Projector, error) {
	if !usable(q.Span()) || !usable(p.Span()) {
		return Projector{}, fmt.Errorf("%w: empty view box q=%v p=%v", dynamo.ErrParameterBounds, q, p)
	}
	if width <= 0 || height <= 0 {
		return Projector{}, fmt.Errorf("%w: canvas %dx%d", dynamo.ErrParameterBounds, width, height)
	}
	return Projector{
		Source: curve.Rect{X0: q.Lo, Y0: p.Lo, X1: q.Hi, Y1: p.Hi},
		Dest:   curve.Rect{X0: 0, Y0: 0, X1: float64(width), Y1: float64(height)},
	}, nil
}

func (pr Projector) Project(x dynamo.State) curve.Point {
	sx := dynamo.Interval{Lo: pr.Source.X0, Hi: pr.Source.X1}
	sy := dynamo.Interval{Lo: pr.Source.Y0, Hi: pr.Source.Y1}
	dx := dynamo.Interval{Lo: pr.Dest.X0, Hi: pr.Dest.X1}
	dy := dynamo.Interval{Lo: pr.Dest.Y0, Hi: pr.Dest.Y1}
	return curve.Pt(sx.Map(x.Q, dx), sy.Map(x.P, dy))
}

func usable(span float64) bool {
	return span != 0 && !math.IsNaN(span) && !math.IsInf(span, 0)
}
