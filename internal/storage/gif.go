package storage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
)

var ErrNoFrames = errors.New("storage: no frames to assemble")

type GIFOptions struct {
	// Delay between frames in hundredths of a second.
	Delay int
	// Scale resizes every frame; 1 keeps the rendered size.
	Scale float64
	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int
}

func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Delay: 4, Scale: 0.5}
}

// rampPalette is black plus the blue-to-red ramp frames are drawn with.
var rampPalette = func() color.Palette {
	p := make(color.Palette, 0, 256)
	p = append(p, color.RGBA{A: 255})
	for i := 0; i < 255; i++ {
		r := uint8(i * 255 / 254)
		p = append(p, color.RGBA{R: r, B: 255 - r, A: 255})
	}
	return p
}()

// Paletted resizes img by scale and quantises it to the frame palette.
func Paletted(img image.Image, scale float64) *image.Paletted {
	src := img
	b := img.Bounds()
	if scale > 0 && scale != 1 {
		w := max(1, int(math.Round(float64(b.Dx())*scale)))
		h := max(1, int(math.Round(float64(b.Dy())*scale)))
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		src = dst
	}

	pm := image.NewPaletted(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()), rampPalette)
	xdraw.FloydSteinberg.Draw(pm, pm.Bounds(), src, src.Bounds().Min)
	return pm
}

func EncodeGIF(w io.Writer, frames []*image.Paletted, opts GIFOptions) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: opts.LoopCount}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

// AssembleGIF turns every frame in the store into one animation at path.
func (s *FrameStore) AssembleGIF(path string, opts GIFOptions) (err error) {
	indices, err := s.Frames()
	if err != nil {
		return err
	}
	if len(indices) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFrames, s.baseDir)
	}

	frames := make([]*image.Paletted, 0, len(indices))
	for _, i := range indices {
		img, err := s.Load(i)
		if err != nil {
			return err
		}
		frames = append(frames, Paletted(img, opts.Scale))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return EncodeGIF(f, frames, opts)
}
