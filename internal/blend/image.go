package blend

import (
	"image"
	"image/color"
)

// FillOver composites the premultiplied color c over every pixel of r in dst.
func FillOver(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() || c.A == 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			p := dst.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = SourceOver(c.R, c.G, c.B, c.A, p[0], p[1], p[2], p[3])
			i += 4
		}
	}
}

// TintAtop replaces the color of every pixel of img with the opaque color
// c while keeping each pixel's alpha.
func TintAtop(img *image.RGBA, c color.RGBA) {
	c.A = 255
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			p := img.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = SourceAtop(c.R, c.G, c.B, c.A, p[0], p[1], p[2], p[3])
			i += 4
		}
	}
}
