package viz

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"honnef.co/go/curve"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Braille is a terminal canvas. Each character cell holds 2x4 dots and
// remembers the colour of the last segment drawn through it.
type Braille struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
}

func NewBraille(w, h int) *Braille {
	c := &Braille{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.RGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Bounds is in dot coordinates: (Width*2) x (Height*4).
func (c *Braille) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width*2, c.Height*4)
}

// Set turns on the dot at (x, y) in dot coordinates.
func (c *Braille) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][cx] = col
}

func (c *Braille) DrawLine(p1, p2 curve.Point, col color.RGBA) {
	x0, y0, ok0 := pixel(p1)
	x1, y1, ok1 := pixel(p2)
	if !ok0 || !ok1 {
		return
	}
	bresenham(x0, y0, x1, y1, func(x, y int) { c.Set(x, y, col) })
}

func (c *Braille) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with every non-empty cell coloured for the terminal.
func (c *Braille) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if r == 0x2800 {
				b.WriteRune(r)
				continue
			}
			col := c.Colors[i][j]
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
