package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"honnef.co/go/curve"
)

// SVG is a vector canvas. Connected segments of one colour are merged into
// a single polyline.
type SVG struct {
	Width, Height int
	StrokeWidth   float64
	Background    color.RGBA

	paths []polyline
}

type polyline struct {
	c   color.RGBA
	pts []curve.Point
}

func NewSVG(w, h int) *SVG {
	return &SVG{
		Width:       w,
		Height:      h,
		StrokeWidth: 1,
		Background:  color.RGBA{A: 255},
	}
}

func (s *SVG) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

func (s *SVG) DrawLine(p1, p2 curve.Point, c color.RGBA) {
	if !finite(p1) || !finite(p2) {
		return
	}
	if n := len(s.paths); n > 0 {
		last := &s.paths[n-1]
		if last.c == c && last.pts[len(last.pts)-1] == p1 {
			last.pts = append(last.pts, p2)
			return
		}
	}
	s.paths = append(s.paths, polyline{c: c, pts: []curve.Point{p1, p2}})
}

// Paths is the number of polylines drawn so far.
func (s *SVG) Paths() int { return len(s.paths) }

func (s *SVG) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="none" stroke-width="%g" stroke-linecap="round">
`, s.Width, s.Height, s.Width, s.Height, hex(s.Background), s.StrokeWidth))

	for _, pl := range s.paths {
		sb.WriteString(fmt.Sprintf(`<polyline stroke="%s" points="`, hex(pl.c)))
		for i, p := range pl.pts {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func finite(p curve.Point) bool {
	return !p.IsNaN() && !p.IsInf()
}
