package icon

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"
)

// placeholderColor is the fill of the placeholder square.
var placeholderColor = color.NRGBA{R: 220, A: 255}

// Placeholder returns a deterministic rounded red square of size×size,
// used when the icon asset cannot be loaded.
func Placeholder(size int) *image.RGBA {
	if size <= 0 {
		size = BaseSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float32(size)
	r := s / 8

	z := vector.NewRasterizer(size, size)
	z.MoveTo(r, 0)
	z.LineTo(s-r, 0)
	z.QuadTo(s, 0, s, r)
	z.LineTo(s, s-r)
	z.QuadTo(s, s, s-r, s)
	z.LineTo(r, s)
	z.QuadTo(0, s, 0, s-r)
	z.LineTo(0, r)
	z.QuadTo(0, 0, r, 0)
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(placeholderColor), image.Point{})
	return dst
}
