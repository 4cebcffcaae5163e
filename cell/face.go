package cell

import (
	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// xFace adapts a golang.org/x/image/font.Face.
type xFace struct {
	face font.Face
}

// FromFace returns Metrics backed by an x/image font face.
// The face is used from the UI thread only.
func FromFace(f font.Face) Metrics {
	return xFace{face: f}
}

func (x xFace) Advance(r rune) (float64, bool) {
	adv, ok := x.face.GlyphAdvance(r)
	if !ok {
		return 0, false
	}
	return fixedToFloat(adv), true
}

func (x xFace) LineHeight() float64 {
	return fixedToFloat(x.face.Metrics().Height)
}

// openTypeFace adapts a go-text/typesetting face at a pixel size.
type openTypeFace struct {
	face *gotext.Face
	px   float64
}

// FromOpenType returns Metrics backed by a go-text/typesetting face
// rendered at px pixels per em.
func FromOpenType(f *gotext.Face, px float64) Metrics {
	return openTypeFace{face: f, px: px}
}

func (o openTypeFace) scale() float64 {
	upem := o.face.Upem()
	if upem == 0 {
		return 0
	}
	return o.px / float64(upem)
}

func (o openTypeFace) Advance(r rune) (float64, bool) {
	gid, ok := o.face.NominalGlyph(r)
	if !ok {
		return 0, false
	}
	return float64(o.face.HorizontalAdvance(gid)) * o.scale(), true
}

func (o openTypeFace) LineHeight() float64 {
	ext, ok := o.face.FontHExtents()
	if !ok {
		return o.px
	}
	// Descender is negative in font units.
	return float64(ext.Ascender-ext.Descender+ext.LineGap) * o.scale()
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
