package viz_test

import (
	"image/color"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"honnef.co/go/curve"

	"github.com/mtyler88/Phase-Diagrams/internal/viz"
)

var _ = Describe("Raster", func() {
	red := color.RGBA{R: 255, A: 255}

	It("starts opaque black", func() {
		r := viz.NewRaster(4, 3)
		Expect(r.Bounds().Dx()).To(Equal(4))
		Expect(r.Bounds().Dy()).To(Equal(3))
		Expect(r.RGBAAt(2, 1)).To(Equal(color.RGBA{A: 255}))
	})

	It("draws both endpoints of a line", func() {
		r := viz.NewRaster(10, 10)
		r.DrawLine(curve.Pt(1, 1), curve.Pt(8, 5), red)
		Expect(r.RGBAAt(1, 1)).To(Equal(red))
		Expect(r.RGBAAt(8, 5)).To(Equal(red))
		Expect(r.RGBAAt(0, 9)).To(Equal(color.RGBA{A: 255}))
	})

	It("clips lines leaving the canvas", func() {
		r := viz.NewRaster(10, 10)
		Expect(func() { r.DrawLine(curve.Pt(-50, 5), curve.Pt(50, 5), red) }).NotTo(Panic())
		Expect(r.RGBAAt(0, 5)).To(Equal(red))
		Expect(r.RGBAAt(9, 5)).To(Equal(red))
	})

	It("ignores non-finite endpoints", func() {
		r := viz.NewRaster(10, 10)
		r.DrawLine(curve.Pt(math.NaN(), 1), curve.Pt(2, 2), red)
		r.DrawLine(curve.Pt(1, 1), curve.Pt(math.Inf(1), 2), red)
		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				Expect(r.RGBAAt(x, y)).To(Equal(color.RGBA{A: 255}))
			}
		}
	})
})

var _ = Describe("Braille", func() {
	It("sizes its bounds in dots", func() {
		b := viz.NewBraille(40, 10)
		Expect(b.Bounds().Dx()).To(Equal(80))
		Expect(b.Bounds().Dy()).To(Equal(40))
	})

	It("sets individual dots", func() {
		b := viz.NewBraille(2, 1)
		b.Set(0, 0, color.RGBA{A: 255})
		b.Set(1, 3, color.RGBA{A: 255})
		Expect(b.Grid[0][0]).To(Equal(rune(0x2800 | 0x1 | 0x80)))
		Expect(b.Grid[0][1]).To(Equal(rune(0x2800)))
	})

	It("renders a horizontal line as full top rows", func() {
		b := viz.NewBraille(3, 1)
		b.DrawLine(curve.Pt(0, 0), curve.Pt(5, 0), color.RGBA{B: 255, A: 255})
		Expect(b.String()).To(Equal(strings.Repeat(string(rune(0x2800|0x1|0x8)), 3) + "\n"))
		Expect(b.Render()).To(ContainSubstring(string(rune(0x2809))))
	})
})
