package memhost

import (
	"image"

	"github.com/sergunya/focus-time/host"
)

// node carries the state shared by every memhost component.
type node struct {
	parent   host.Container
	size     image.Point
	hidden   bool
	root     bool
	repaints int
}

// parented is implemented by memhost components through node.
type parented interface {
	setParent(p host.Container)
}

func (n *node) setParent(p host.Container) { n.parent = p }

// Parent implements host.Component.
func (n *node) Parent() host.Container { return n.parent }

// Size implements host.Component.
func (n *node) Size() image.Point { return n.size }

// SetSize resizes the component.
func (n *node) SetSize(w, h int) { n.size = image.Pt(w, h) }

// SetVisible shows or hides the component.
func (n *node) SetVisible(v bool) { n.hidden = !v }

// Showing reports whether the component and all its ancestors are visible
// and the chain ends at a root panel.
func (n *node) Showing() bool {
	if n.hidden {
		return false
	}
	if n.root {
		return true
	}
	return n.parent != nil && n.parent.Showing()
}

// Repaint records a repaint request.
func (n *node) Repaint() { n.repaints++ }

// Repaints returns the number of repaint requests seen.
func (n *node) Repaints() int { return n.repaints }

func setParent(c host.Component, p host.Container) {
	if pc, ok := c.(parented); ok {
		pc.setParent(p)
	}
}
