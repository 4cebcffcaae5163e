package memhost

import (
	"image"

	"github.com/sergunya/focus-time/host"
)

// Render paints c into a new image of its size.
func Render(c host.Component) *image.RGBA {
	sz := c.Size()
	img := image.NewRGBA(image.Rect(0, 0, sz.X, sz.Y))
	if sz.X > 0 && sz.Y > 0 {
		c.Paint(img)
	}
	return img
}
