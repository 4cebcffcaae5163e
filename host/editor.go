package host

import (
	"image"
	"image/color"
)

// LogicalPosition is a caret position in document coordinates.
type LogicalPosition struct {
	Line   int
	Column int
}

// VisualPosition is a caret position after soft wraps and folding.
type VisualPosition struct {
	Line   int
	Column int
}

// Editor is a surface with a stable caret API.
type Editor interface {
	Component

	// CaretLogicalPosition returns the primary caret position.
	CaretLogicalPosition() LogicalPosition

	// LogicalToVisual maps a document position to its visual position.
	LogicalToVisual(pos LogicalPosition) VisualPosition

	// VisualToXY maps a visual position to the top-left pixel of its cell.
	VisualToXY(pos VisualPosition) image.Point

	// LineHeight returns the height of a visual line in pixels.
	LineHeight() int
}

// EditorRegistry enumerates open editors and notifies about changes.
type EditorRegistry interface {
	// AllEditors returns the currently open editors.
	AllEditors() []Editor

	// OnEditorCreated registers fn for editors opened from now on.
	// The returned func removes the subscription.
	OnEditorCreated(fn func(Editor)) (unsubscribe func())

	// OnEditorReleased registers fn for editors being closed.
	OnEditorReleased(fn func(Editor)) (unsubscribe func())
}

// ColorScheme gives access to the host's native caret color.
type ColorScheme interface {
	// CaretColor returns the scheme caret color. ok is false when the
	// scheme uses its default.
	CaretColor() (c color.Color, ok bool)

	// SetCaretColor overrides the caret color. Nil restores the default.
	SetCaretColor(c color.Color)

	// RefreshEditors repaints every editor so the change is visible.
	RefreshEditors()
}
