package metrics

import "github.com/mtyler88/Phase-Diagrams/internal/dynamo"

// InView is the fraction of states that fall inside the rendered view box.
type InView struct {
	name    string
	q, p    dynamo.Interval
	inside  int
	samples int
}

func NewInView(q, p dynamo.Interval) *InView {
	return &InView{
		name: "in_view",
		q:    q,
		p:    p,
	}
}

func (v *InView) Name() string {
	return v.name
}

func (v *InView) Observe(x dynamo.State) {
	v.samples++
	if v.q.Contains(x.Q) && v.p.Contains(x.P) {
		v.inside++
	}
}

func (v *InView) Value() float64 {
	if v.samples == 0 {
		return 1.0
	}
	return float64(v.inside) / float64(v.samples)
}

func (v *InView) Reset() {
	v.inside = 0
	v.samples = 0
}

// Wraps counts the steps where position jumped by more than half a period,
// i.e. where the trajectory crossed the wrap boundary.
type Wraps struct {
	name   string
	period float64
	prev   dynamo.State
	seen   bool
	count  int
}

func NewWraps(bounds dynamo.Interval) *Wraps {
	return &Wraps{
		name:   "wraps",
		period: bounds.Span(),
	}
}

func (w *Wraps) Name() string { return w.name }

func (w *Wraps) Observe(x dynamo.State) {
	if w.seen {
		d := x.Q - w.prev.Q
		if d > w.period/2 || d < -w.period/2 {
			w.count++
		}
	}
	w.prev = x
	w.seen = true
}

func (w *Wraps) Value() float64 { return float64(w.count) }

func (w *Wraps) Reset() {
	w.count = 0
	w.seen = false
}
