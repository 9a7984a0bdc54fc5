package viz_test

import (
	"image"
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"honnef.co/go/curve"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
	"github.com/mtyler88/Phase-Diagrams/internal/viz"
)

type segment struct {
	a, b curve.Point
	c    color.RGBA
}

type recorder struct {
	segments []segment
}

func (r *recorder) Bounds() image.Rectangle { return image.Rect(0, 0, 800, 800) }

func (r *recorder) DrawLine(p1, p2 curve.Point, c color.RGBA) {
	r.segments = append(r.segments, segment{p1, p2, c})
}

// identity maps phase space one to one onto pixels so distances are obvious.
func identity() viz.Projector {
	pr, _ := viz.NewProjector(dynamo.Interval{Lo: 0, Hi: 800}, dynamo.Interval{Lo: 0, Hi: 800}, 800, 800)
	return pr
}

var _ = Describe("Renderer", func() {
	var (
		r   *viz.Renderer
		rec *recorder
	)

	BeforeEach(func() {
		r = &viz.Renderer{
			Projector: identity(),
			Colorizer: viz.Colorizer{Scale: 5},
			Threshold: viz.DefaultThreshold,
		}
		rec = &recorder{}
	})

	DescribeTable("suppresses long segments",
		func(dx float64, drawn int) {
			st := r.Draw(rec, []dynamo.State{{Q: 100, P: 100}, {Q: 100 + dx, P: 100}})
			Expect(rec.segments).To(HaveLen(drawn))
			Expect(st.Drawn).To(Equal(drawn))
			Expect(st.Skipped).To(Equal(1 - drawn))
		},
		Entry("short", 10.0, 1),
		Entry("just below threshold", 199.999, 1),
		Entry("at threshold", 200.0, 0),
		Entry("wrap-sized jump", 700.0, 0),
	)

	It("measures distance in both axes", func() {
		// 150-150 right triangle: hypotenuse 212 > 200
		r.Draw(rec, []dynamo.State{{Q: 100, P: 100}, {Q: 250, P: 250}})
		Expect(rec.segments).To(BeEmpty())
	})

	It("colours each segment from its first point", func() {
		states := []dynamo.State{{Q: 10, P: 0}, {Q: 11, P: 5}, {Q: 12, P: 2.5}}
		r.Projector = viz.Projector{
			Source: curve.Rect{X0: 0, Y0: -1000, X1: 800, Y1: 1000},
			Dest:   curve.Rect{X0: 0, Y0: 0, X1: 800, Y1: 800},
		}
		r.Draw(rec, states)

		Expect(rec.segments).To(HaveLen(2))
		Expect(rec.segments[0].c).To(Equal(color.RGBA{R: 0, B: 255, A: 255}))
		Expect(rec.segments[1].c).To(Equal(color.RGBA{R: 255, B: 0, A: 255}))
	})

	It("draws nothing for fewer than two states", func() {
		Expect(r.Draw(rec, nil)).To(Equal(viz.Stats{}))
		Expect(r.Draw(rec, []dynamo.State{{Q: 1}})).To(Equal(viz.Stats{}))
		Expect(rec.segments).To(BeEmpty())
	})

	It("skips segments touching non-finite states", func() {
		states := []dynamo.State{{Q: 1, P: 1}, {Q: math.NaN(), P: 1}, {Q: 2, P: 1}, {Q: 3, P: 1}}
		st := r.Draw(rec, states)
		Expect(st).To(Equal(viz.Stats{Drawn: 1, Skipped: 2}))
	})

	It("accumulates stats", func() {
		var total viz.Stats
		total.Add(viz.Stats{Drawn: 2, Skipped: 1})
		total.Add(viz.Stats{Drawn: 3})
		Expect(total).To(Equal(viz.Stats{Drawn: 5, Skipped: 1}))
	})
})
