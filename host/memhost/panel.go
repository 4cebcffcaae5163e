package memhost

import (
	"image"
	"image/color"
	"image/draw"
	"slices"

	"github.com/sergunya/focus-time/host"
)

// Panel is a container laying out its children top to bottom.
type Panel struct {
	node
	Name       string
	Background color.Color

	children      []host.Component
	revalidations int

	// FailRemove and FailInsert, when set, are returned once by the next
	// Remove or Insert call and then cleared.
	FailRemove error
	FailInsert error
}

// NewRoot creates a visible top-level panel.
func NewRoot(name string, w, h int) *Panel {
	p := NewPanel(name, w, h)
	p.root = true
	return p
}

// NewPanel creates a panel.
func NewPanel(name string, w, h int) *Panel {
	return &Panel{
		node:       node{size: image.Pt(w, h)},
		Name:       name,
		Background: color.RGBA{0x2b, 0x2b, 0x2b, 0xff},
	}
}

// Add appends children.
func (p *Panel) Add(children ...host.Component) *Panel {
	for _, c := range children {
		if err := p.Insert(c, len(p.children)); err != nil {
			panic(err)
		}
	}
	return p
}

// Children implements host.Container.
func (p *Panel) Children() []host.Component {
	return slices.Clone(p.children)
}

// IndexOf implements host.Container.
func (p *Panel) IndexOf(child host.Component) int {
	for i, c := range p.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Remove implements host.Container.
func (p *Panel) Remove(child host.Component) error {
	if err := p.FailRemove; err != nil {
		p.FailRemove = nil
		return err
	}
	i := p.IndexOf(child)
	if i < 0 {
		return ErrNotChild
	}
	p.children = slices.Delete(p.children, i, i+1)
	setParent(child, nil)
	return nil
}

// Insert implements host.Container.
func (p *Panel) Insert(child host.Component, index int) error {
	if err := p.FailInsert; err != nil {
		p.FailInsert = nil
		return err
	}
	if child.Parent() != nil {
		return ErrHasParent
	}
	if index < 0 || index > len(p.children) {
		return ErrIndex
	}
	p.children = slices.Insert(p.children, index, child)
	setParent(child, p)
	return nil
}

// Revalidate implements host.Container.
func (p *Panel) Revalidate() { p.revalidations++ }

// Revalidations returns the number of layout passes requested.
func (p *Panel) Revalidations() int { return p.revalidations }

// ChildOffset implements host.ChildPlacer. Children are stacked
// vertically, matching Paint.
func (p *Panel) ChildOffset(child host.Component) image.Point {
	y := 0
	for _, c := range p.children {
		if c == child {
			return image.Pt(0, y)
		}
		y += c.Size().Y
	}
	return image.Point{}
}

// Paint fills the background and paints the children stacked vertically.
func (p *Panel) Paint(dst draw.Image) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(p.Background), image.Point{}, draw.Src)
	y := b.Min.Y
	for _, c := range p.children {
		sz := c.Size()
		r := image.Rect(b.Min.X, y, b.Min.X+sz.X, y+sz.Y).Intersect(b)
		if !r.Empty() {
			if sub, ok := subImage(dst, r); ok {
				c.Paint(sub)
			}
		}
		y += sz.Y
	}
}

func subImage(dst draw.Image, r image.Rectangle) (draw.Image, bool) {
	s, ok := dst.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return nil, false
	}
	img, ok := s.SubImage(r).(draw.Image)
	return img, ok
}
