// Package icon loads the overlay icon and produces resized and recolored
// variants of it.
//
// Variants are cached by pixel size. The cache is cleared whenever the tint
// color changes. A tint that is (near) white means "no tint": the resized
// original is returned unchanged.
//
// A Cache is not safe for concurrent use; it is owned by the UI thread.
package icon

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"

	xdraw "golang.org/x/image/draw"

	"github.com/sergunya/focus-time/internal/blend"
	"github.com/sergunya/focus-time/internal/cache"
)

//go:embed assets/gopher.png
var gopherPNG []byte

// BaseSize is the nominal icon size in pixels.
const BaseSize = 24

// whiteThreshold is the channel value above which a tint counts as white.
const whiteThreshold = 250

// defaultCapacity bounds the number of cached variants.
const defaultCapacity = 8

// ErrEmptyImage is returned when the icon source has no pixels.
var ErrEmptyImage = errors.New("icon: empty image")

type variantKey struct {
	size   int
	tinted bool
}

// Cache holds the icon source and its per-size variants.
type Cache struct {
	load   func() (image.Image, error)
	logger *slog.Logger

	source      *image.RGBA
	placeholder bool

	tint     color.NRGBA
	variants *cache.LRU[variantKey, *image.RGBA]
}

// Option configures a Cache.
type Option func(*Cache)

// WithPNG loads the icon from PNG-encoded data.
func WithPNG(data []byte) Option {
	return WithLoader(func() (image.Image, error) {
		if len(data) == 0 {
			return nil, ErrEmptyImage
		}
		return png.Decode(bytes.NewReader(data))
	})
}

// WithSource uses img as the icon.
func WithSource(img image.Image) Option {
	return WithLoader(func() (image.Image, error) { return img, nil })
}

// WithLoader sets the function called on first use to load the icon.
func WithLoader(fn func() (image.Image, error)) Option {
	return func(c *Cache) {
		c.load = fn
	}
}

// WithCapacity bounds the number of cached variants.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		c.variants = cache.New[variantKey, *image.RGBA](n)
	}
}

// WithLogger sets the logger. Nil keeps the default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Cache. By default the embedded gopher icon is used and the
// tint is white.
func New(opts ...Option) *Cache {
	c := &Cache{
		logger:   slog.New(slog.DiscardHandler),
		tint:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		variants: cache.New[variantKey, *image.RGBA](defaultCapacity),
	}
	WithPNG(gopherPNG)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the icon at its natural size, loading it on first use.
// If loading fails a placeholder is returned instead.
func (c *Cache) Source() *image.RGBA {
	if c.source != nil {
		return c.source
	}
	img, err := c.loadSource()
	if err != nil {
		c.logger.Warn("icon: using placeholder", "err", err)
		c.source = Placeholder(BaseSize)
		c.placeholder = true
		return c.source
	}
	c.source = img
	return c.source
}

func (c *Cache) loadSource() (img *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("icon: loader panicked: %v", r)
		}
	}()
	if c.load == nil {
		return nil, ErrEmptyImage
	}
	src, err := c.load()
	if err != nil {
		return nil, fmt.Errorf("icon: load: %w", err)
	}
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return toRGBA(src), nil
}

// IsPlaceholder reports whether the placeholder replaced the icon.
func (c *Cache) IsPlaceholder() bool {
	c.Source()
	return c.placeholder
}

// Color returns the current tint.
func (c *Cache) Color() color.NRGBA {
	return c.tint
}

// SetColor changes the tint. Cached variants are dropped when the color
// actually changes.
func (c *Cache) SetColor(col color.NRGBA) {
	if col == c.tint {
		return
	}
	c.tint = col
	c.variants.Clear()
}

// Len returns the number of cached variants.
func (c *Cache) Len() int {
	return c.variants.Len()
}

// Resized returns the untinted icon scaled to size×size.
// At the natural size the pixels are identical to Source.
func (c *Cache) Resized(size int) *image.RGBA {
	if size <= 0 {
		return nil
	}
	return c.variants.GetOrCreate(variantKey{size: size}, func() *image.RGBA {
		return resize(c.Source(), size)
	})
}

// Variant returns the icon to draw at size×size: the resized original for a
// white tint, otherwise the resized icon recolored with the tint.
func (c *Cache) Variant(size int) *image.RGBA {
	if size <= 0 {
		return nil
	}
	if IsNearWhite(c.tint) {
		return c.Resized(size)
	}
	return c.variants.GetOrCreate(variantKey{size: size, tinted: true}, func() *image.RGBA {
		img := cloneRGBA(c.Resized(size))
		blend.TintAtop(img, color.RGBA{R: c.tint.R, G: c.tint.G, B: c.tint.B, A: 255})
		return img
	})
}

// IsNearWhite reports whether every color channel of col is above the
// white threshold.
func IsNearWhite(col color.NRGBA) bool {
	return col.R > whiteThreshold && col.G > whiteThreshold && col.B > whiteThreshold
}

func resize(src *image.RGBA, size int) *image.RGBA {
	if src.Bounds().Dx() == size && src.Bounds().Dy() == size {
		return cloneRGBA(src)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
