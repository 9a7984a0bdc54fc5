package viz_test

import (
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mtyler88/Phase-Diagrams/internal/viz"
)

var _ = Describe("Colorizer", func() {
	clamp := viz.Colorizer{Scale: 5, Mode: viz.ColorClamp}
	wrap := viz.Colorizer{Scale: 5, Mode: viz.ColorWrap}

	DescribeTable("clamp mode",
		func(p float64, want uint8) {
			Expect(clamp.Intensity(p)).To(Equal(want))
		},
		Entry("at rest", 0.0, uint8(0)),
		Entry("half scale", 2.5, uint8(127)),
		Entry("negative momentum", -2.5, uint8(127)),
		Entry("full scale", 5.0, uint8(255)),
		Entry("above scale saturates", 12.0, uint8(255)),
		Entry("infinite saturates", math.Inf(-1), uint8(255)),
		Entry("NaN is dark", math.NaN(), uint8(0)),
	)

	DescribeTable("wrap mode",
		func(p float64, want uint8) {
			Expect(wrap.Intensity(p)).To(Equal(want))
		},
		Entry("below scale matches clamp", 2.5, uint8(127)),
		Entry("full scale", 5.0, uint8(255)),
		// 6.5/5*255 = 331.5 -> 331-256
		Entry("above scale wraps", 6.5, uint8(75)),
		Entry("two turns", 10.0, uint8(254)),
		Entry("infinite is dark", math.Inf(1), uint8(0)),
	)

	It("shades from blue to red", func() {
		Expect(clamp.Color(0)).To(Equal(color.RGBA{R: 0, G: 0, B: 255, A: 255}))
		Expect(clamp.Color(5)).To(Equal(color.RGBA{R: 255, G: 0, B: 0, A: 255}))
	})

	It("parses modes", func() {
		m, err := viz.ParseColorMode("wrap")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(viz.ColorWrap))
		Expect(m.String()).To(Equal("wrap"))

		m, err = viz.ParseColorMode("")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(viz.ColorClamp))

		_, err = viz.ParseColorMode("rainbow")
		Expect(err).To(HaveOccurred())
	})
})
