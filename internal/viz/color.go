package viz

import (
	"fmt"
	"image/color"
	"math"
)

type ColorMode int

const (
	// ColorClamp saturates intensities above 255.
	ColorClamp ColorMode = iota
	// ColorWrap keeps the low byte of the truncated intensity, so colour
	// bands repeat every Scale*256/255 units of momentum.
	ColorWrap
)

func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "clamp", "":
		return ColorClamp, nil
	case "wrap":
		return ColorWrap, nil
	}
	return 0, fmt.Errorf("unknown color mode: %q (want clamp or wrap)", s)
}

func (m ColorMode) String() string {
	if m == ColorWrap {
		return "wrap"
	}
	return "clamp"
}

// Colorizer maps |p| to a channel intensity: |p|/Scale*255, truncated.
type Colorizer struct {
	Scale float64
	Mode  ColorMode
}

func (c Colorizer) Intensity(p float64) uint8 {
	v := math.Abs(p) / c.Scale * 255
	if math.IsNaN(v) {
		return 0
	}
	if c.Mode == ColorWrap {
		if math.IsInf(v, 0) {
			return 0
		}
		return uint8(math.Mod(math.Trunc(v), 256))
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Color is red for fast motion and blue for slow, always opaque.
func (c Colorizer) Color(p float64) color.RGBA {
	i := c.Intensity(p)
	return color.RGBA{R: i, G: 0, B: 255 - i, A: 255}
}
