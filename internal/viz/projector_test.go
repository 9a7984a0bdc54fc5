package viz_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"honnef.co/go/curve"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
	"github.com/mtyler88/Phase-Diagrams/internal/viz"
)

var _ = Describe("Projector", func() {
	var pr viz.Projector

	BeforeEach(func() {
		var err error
		pr, err = viz.NewProjector(
			dynamo.Interval{Lo: -math.Pi, Hi: math.Pi},
			dynamo.Interval{Lo: -4, Hi: 4},
			800, 800,
		)
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("maps the view box corners onto the canvas corners",
		func(q, p float64, want curve.Point) {
			got := pr.Project(dynamo.State{Q: q, P: p})
			Expect(got.X).To(BeNumerically("~", want.X, 1e-9))
			Expect(got.Y).To(BeNumerically("~", want.Y, 1e-9))
		},
		Entry("bottom-left", -math.Pi, -4.0, curve.Pt(0, 0)),
		Entry("bottom-right", math.Pi, -4.0, curve.Pt(800, 0)),
		Entry("top-left", -math.Pi, 4.0, curve.Pt(0, 800)),
		Entry("top-right", math.Pi, 4.0, curve.Pt(800, 800)),
		Entry("centre", 0.0, 0.0, curve.Pt(400, 400)),
	)

	It("maps the lower corner exactly", func() {
		Expect(pr.Project(dynamo.State{Q: -math.Pi, P: -4})).To(Equal(curve.Pt(0, 0)))
	})

	It("does not clamp points outside the view box", func() {
		got := pr.Project(dynamo.State{Q: 0, P: 12})
		Expect(got.Y).To(BeNumerically("~", 1600, 1e-9))

		got = pr.Project(dynamo.State{Q: -2 * math.Pi, P: 0})
		Expect(got.X).To(BeNumerically("~", -400, 1e-9))
	})

	It("rejects an empty view box", func() {
		_, err := viz.NewProjector(dynamo.Interval{Lo: 1, Hi: 1}, dynamo.Interval{Lo: -4, Hi: 4}, 800, 800)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	DescribeTable("rejects a view box with a non-finite extent",
		func(q, p dynamo.Interval) {
			_, err := viz.NewProjector(q, p, 800, 800)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		},
		Entry("NaN q", dynamo.Interval{Lo: math.NaN(), Hi: 1}, dynamo.Interval{Lo: -4, Hi: 4}),
		Entry("infinite p", dynamo.Interval{Lo: -1, Hi: 1}, dynamo.Interval{Lo: -4, Hi: math.Inf(1)}),
	)

	It("rejects an empty canvas", func() {
		_, err := viz.NewProjector(dynamo.Interval{Lo: -1, Hi: 1}, dynamo.Interval{Lo: -1, Hi: 1}, 0, 800)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})
})
