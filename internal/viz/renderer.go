package viz

import "github.com/mtyler88/Phase-Diagrams/internal/dynamo"

// DefaultThreshold is the longest segment, in pixels, that is still drawn on
// an 800 pixel canvas. It is a heuristic for "the trajectory wrapped", not an
// exact discontinuity test: a genuine fast segment longer than this is lost,
// and a wrap that lands close to where it left is drawn.
const DefaultThreshold = 200.0

// Stats counts the segments of one render pass.
type Stats struct {
	Drawn   int `json:"drawn"`
	Skipped int `json:"skipped"`
}

func (s *Stats) Add(o Stats) {
	s.Drawn += o.Drawn
	s.Skipped += o.Skipped
}

type Renderer struct {
	Projector Projector
	Colorizer Colorizer
	Threshold float64
}

// Draw renders consecutive states as line segments. Segment i runs from
// state i to state i+1 and takes its colour from the momentum at state i.
// Segments whose projected length is not below Threshold are skipped, as are
// segments with a non-finite end.
func (r *Renderer) Draw(c Canvas, states []dynamo.State) Stats {
	var st Stats
	if len(states) < 2 {
		return st
	}

	prev := r.Projector.Project(states[0])
	for i := 1; i < len(states); i++ {
		cur := r.Projector.Project(states[i])
		if prev.Distance(cur) < r.Threshold {
			c.DrawLine(prev, cur, r.Colorizer.Color(states[i-1].P))
			st.Drawn++
		} else {
			st.Skipped++
		}
		prev = cur
	}
	return st
}
