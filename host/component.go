package host

import (
	"image"
	"image/draw"

	"github.com/sergunya/focus-time/cell"
)

// Component is a live, paintable UI element.
//
// Identity is object identity: implementations must be pointer types so
// they can be used as map keys.
type Component interface {
	// Parent returns the containing node, or nil when detached.
	Parent() Container

	// Size returns the current size in pixels.
	Size() image.Point

	// Showing reports whether the component is visible on screen.
	Showing() bool

	// Paint renders the component into dst. The destination is scoped
	// to the component bounds: its origin is the component's top-left.
	Paint(dst draw.Image)
}

// Container is a component that owns an ordered list of children.
// The order is the z-order used for layout.
type Container interface {
	Component

	// Children returns the current children in z-order.
	Children() []Component

	// IndexOf returns the z-order index of child, or -1.
	IndexOf(child Component) int

	// Remove detaches child from the container.
	Remove(child Component) error

	// Insert adds child at index. An index equal to the child count
	// appends.
	Insert(child Component, index int) error

	// Revalidate schedules a layout pass.
	Revalidate()

	// Repaint schedules a repaint of the container and its children.
	Repaint()
}

// ChildPlacer is implemented by containers that can report where a child
// sits. The offset is the child's top-left in the container's coordinates.
// Containers that do not implement it place children at their origin.
type ChildPlacer interface {
	ChildOffset(child Component) image.Point
}

// OffsetWithin returns the top-left of c in the coordinates of ancestor.
// It returns false when ancestor is not an ancestor of c.
func OffsetWithin(c Component, ancestor Component) (image.Point, bool) {
	var off image.Point
	for cur := c; cur != nil; {
		if cur == ancestor {
			return off, true
		}
		parent := cur.Parent()
		if parent == nil {
			break
		}
		if pl, ok := parent.(ChildPlacer); ok {
			off = off.Add(pl.ChildOffset(cur))
		}
		cur = parent
	}
	return image.Point{}, false
}

// Repainter is implemented by components that can schedule their own
// repaint.
type Repainter interface {
	Repaint()
}

// FontMetricsProvider is implemented by monospaced surfaces (terminals)
// whose caret position is measured in character cells.
type FontMetricsProvider interface {
	FontMetrics() cell.Metrics
}
