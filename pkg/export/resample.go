package export

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Resample scales src to exactly w x h and flattens it onto bg. The result
// is fully opaque whatever the alpha of src.
func Resample(src image.Image, w, h int, bg color.NRGBA) *image.NRGBA {
	bg.A = 0xff
	img := src
	if b := src.Bounds(); b.Dx() != w || b.Dy() != h {
		img = imaging.Resize(src, w, h, imaging.Lanczos)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Over)
	return dst
}
