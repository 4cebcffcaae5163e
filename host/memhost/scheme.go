package memhost

import (
	"image/color"

	"github.com/sergunya/focus-time/host"
)

// Scheme is an in-memory host.ColorScheme. RefreshEditors repaints every
// editor open in Editors.
type Scheme struct {
	Editors *Editors

	caret     color.Color
	refreshes int
}

// CaretColor implements host.ColorScheme.
func (s *Scheme) CaretColor() (color.Color, bool) {
	return s.caret, s.caret != nil
}

// SetCaretColor implements host.ColorScheme.
func (s *Scheme) SetCaretColor(c color.Color) { s.caret = c }

// RefreshEditors implements host.ColorScheme.
func (s *Scheme) RefreshEditors() {
	s.refreshes++
	if s.Editors == nil {
		return
	}
	for _, e := range s.Editors.AllEditors() {
		if r, ok := e.(host.Repainter); ok {
			r.Repaint()
		}
	}
}

// Refreshes returns the number of RefreshEditors calls.
func (s *Scheme) Refreshes() int { return s.refreshes }
