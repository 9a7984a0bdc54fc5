package viz

import (
	"image"
	"image/color"
	"math"

	"honnef.co/go/curve"
)

// Canvas is the drawing surface the renderer needs.
type Canvas interface {
	Bounds() image.Rectangle
	DrawLine(p1, p2 curve.Point, c color.RGBA)
}

// coordinates beyond this are never on any canvas we allocate
const maxCoord = 1 << 24

func pixel(p curve.Point) (int, int, bool) {
	if p.IsNaN() || p.IsInf() || math.Abs(p.X) > maxCoord || math.Abs(p.Y) > maxCoord {
		return 0, 0, false
	}
	return int(math.Round(p.X)), int(math.Round(p.Y)), true
}

// bresenham visits every pixel of the line from (x0, y0) to (x1, y1),
// both ends included.
func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
