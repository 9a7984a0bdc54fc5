package viz

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"honnef.co/go/curve"
)

// Raster is an opaque RGBA canvas on a black background.
type Raster struct {
	*image.RGBA
}

func NewRaster(w, h int) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return &Raster{RGBA: img}
}

// DrawLine draws an aliased segment; pixels outside the canvas are dropped.
func (r *Raster) DrawLine(p1, p2 curve.Point, c color.RGBA) {
	x0, y0, ok0 := pixel(p1)
	x1, y1, ok1 := pixel(p2)
	if !ok0 || !ok1 {
		return
	}
	b := r.Rect
	bresenham(x0, y0, x1, y1, func(x, y int) {
		if x < b.Min.X || y < b.Min.Y || x >= b.Max.X || y >= b.Max.Y {
			return
		}
		r.SetRGBA(x, y, c)
	})
}
