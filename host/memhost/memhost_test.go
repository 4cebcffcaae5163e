package memhost

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/sergunya/focus-time/cell"
	"github.com/sergunya/focus-time/host"
)

type recordingUI struct {
	events []host.Event
	paints int
}

func (u *recordingUI) Paint(dst draw.Image, l host.Layer) {
	u.paints++
	l.View().Paint(dst)
}

func (u *recordingUI) HandleEvent(ev host.Event, _ host.Layer) {
	u.events = append(u.events, ev)
}

func TestPanelInsertRemove(t *testing.T) {
	root := NewRoot("root", 100, 100)
	a := NewPanel("a", 10, 10)
	b := NewPanel("b", 10, 10)
	root.Add(a, b)

	if got := root.IndexOf(b); got != 1 {
		t.Fatalf("IndexOf(b) = %d, want 1", got)
	}
	if err := root.Insert(a, 0); !errors.Is(err, ErrHasParent) {
		t.Errorf("Insert(a) error = %v, want ErrHasParent", err)
	}
	if err := root.Remove(a); err != nil {
		t.Fatal(err)
	}
	if a.Parent() != nil {
		t.Error("removed child still has a parent")
	}
	if err := root.Remove(a); !errors.Is(err, ErrNotChild) {
		t.Errorf("second Remove error = %v, want ErrNotChild", err)
	}
	if err := root.Insert(a, 5); !errors.Is(err, ErrIndex) {
		t.Errorf("Insert out of range error = %v, want ErrIndex", err)
	}
	if err := root.Insert(a, 1); err != nil {
		t.Fatal(err)
	}
	if root.IndexOf(a) != 1 || root.IndexOf(b) != 0 {
		t.Errorf("unexpected order after reinsert")
	}
}

func TestPanelInjectedFaults(t *testing.T) {
	root := NewRoot("root", 100, 100)
	a := NewPanel("a", 10, 10)
	root.Add(a)

	boom := errors.New("boom")
	root.FailRemove = boom
	if err := root.Remove(a); !errors.Is(err, boom) {
		t.Fatalf("Remove error = %v, want boom", err)
	}
	if root.IndexOf(a) != 0 {
		t.Fatal("failed Remove must keep the child")
	}
	if err := root.Remove(a); err != nil {
		t.Fatalf("fault must fire once, got %v", err)
	}
}

func TestShowing(t *testing.T) {
	root := NewRoot("root", 100, 100)
	mid := NewPanel("mid", 50, 50)
	term := NewTerminalPanel(40, 40, nil)
	root.Add(mid.Add(term))

	if !term.Showing() {
		t.Fatal("terminal under a root should be showing")
	}
	mid.SetVisible(false)
	if term.Showing() {
		t.Error("terminal under a hidden panel should not be showing")
	}
	mid.SetVisible(true)
	if err := mid.Remove(term); err != nil {
		t.Fatal(err)
	}
	if term.Showing() {
		t.Error("detached terminal should not be showing")
	}
}

func TestFactoryWrapAndDispatch(t *testing.T) {
	term := NewTerminalPanel(80, 40, nil)
	f := &Factory{}
	ui := &recordingUI{}

	l, err := f.Wrap(term, ui)
	if err != nil {
		t.Fatal(err)
	}
	if term.Parent() != l {
		t.Fatal("wrapped view should be parented to the layer")
	}
	if _, err := f.Wrap(term, ui); !errors.Is(err, ErrHasParent) {
		t.Errorf("wrapping a parented view error = %v, want ErrHasParent", err)
	}

	ev := host.KeyEvent{Action: host.KeyPressed, Key: host.KeyRune, Rune: 'a'}
	Dispatch(term, ev)
	if len(ui.events) != 0 {
		t.Error("events must not reach the UI without a mask")
	}
	l.SetEventMask(host.KeyEvents)
	Dispatch(term, ev)
	if len(ui.events) != 1 {
		t.Errorf("UI received %d events, want 1", len(ui.events))
	}
	if term.cursorX != 2 {
		t.Errorf("view should receive events too, cursorX = %d", term.cursorX)
	}

	if v := l.Unwrap(); v != term || term.Parent() != nil {
		t.Error("Unwrap should detach and return the view")
	}
}

func TestFactoryErr(t *testing.T) {
	f := &Factory{Err: errors.New("no layer")}
	if _, err := f.Wrap(NewPanel("p", 1, 1), nil); err == nil {
		t.Fatal("expected injected error")
	}
	if _, err := f.Wrap(NewPanel("p", 1, 1), nil); err != nil {
		t.Fatalf("fault must fire once, got %v", err)
	}
	if f.Wrapped() != 1 {
		t.Errorf("Wrapped() = %d, want 1", f.Wrapped())
	}
}

func TestTerminalWrite(t *testing.T) {
	term := NewTerminalPanel(200, 100, nil)
	term.Write("ab\ncd")
	if term.cursorX != 2 || term.cursorY != 1 {
		t.Errorf("cursor = (%d, %d), want (2, 1)", term.cursorX, term.cursorY)
	}
	term.Write("\r世")
	if term.cursorX != 2 {
		t.Errorf("wide rune should advance two cells, cursorX = %d", term.cursorX)
	}
	term.MoveCursor(7, 4)
	if term.cursorX != 7 || term.cursorY != 4 || len(term.lines) != 5 {
		t.Errorf("MoveCursor: cursor = (%d, %d), lines = %d", term.cursorX, term.cursorY, len(term.lines))
	}
}

func TestRuneCells(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'é', 1},
		{'世', 2},
		{'Ａ', 2},
	}
	for _, tt := range tests {
		if got := RuneCells(tt.r); got != tt.want {
			t.Errorf("RuneCells(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestEditorSoftWrap(t *testing.T) {
	// basicfont advances 7 px, so 70 px hold 10 columns.
	ed := NewEditorView(70, 100, "short\n0123456789abcdefghijXY\nend")

	tests := []struct {
		pos  host.LogicalPosition
		want host.VisualPosition
	}{
		{host.LogicalPosition{Line: 0, Column: 3}, host.VisualPosition{Line: 0, Column: 3}},
		{host.LogicalPosition{Line: 1, Column: 4}, host.VisualPosition{Line: 1, Column: 4}},
		{host.LogicalPosition{Line: 1, Column: 13}, host.VisualPosition{Line: 2, Column: 3}},
		{host.LogicalPosition{Line: 1, Column: 22}, host.VisualPosition{Line: 3, Column: 2}},
		{host.LogicalPosition{Line: 2, Column: 1}, host.VisualPosition{Line: 4, Column: 1}},
	}
	for _, tt := range tests {
		if got := ed.LogicalToVisual(tt.pos); got != tt.want {
			t.Errorf("LogicalToVisual(%+v) = %+v, want %+v", tt.pos, got, tt.want)
		}
	}

	if got := ed.VisualToXY(host.VisualPosition{Line: 2, Column: 3}); got != image.Pt(21, 2*ed.LineHeight()) {
		t.Errorf("VisualToXY = %v", got)
	}

	ed.SetCaret(9, 99)
	if got := ed.CaretLogicalPosition(); got != (host.LogicalPosition{Line: 2, Column: 3}) {
		t.Errorf("SetCaret should clamp, got %+v", got)
	}
}

func TestEditorsRegistry(t *testing.T) {
	r := NewEditors()
	var created, released int
	unsubCreated := r.OnEditorCreated(func(host.Editor) { created++ })
	unsubReleased := r.OnEditorReleased(func(host.Editor) { released++ })

	ed := NewEditorView(10, 10, "")
	r.Open(ed)
	if len(r.AllEditors()) != 1 || created != 1 {
		t.Fatalf("after Open: editors = %d, created = %d", len(r.AllEditors()), created)
	}
	r.Close(ed)
	if len(r.AllEditors()) != 0 || released != 1 {
		t.Fatalf("after Close: editors = %d, released = %d", len(r.AllEditors()), released)
	}

	unsubCreated()
	unsubReleased()
	if r.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", r.Subscribers())
	}
	r.Open(ed)
	if created != 1 {
		t.Error("unsubscribed callback was called")
	}
}

func TestSchemeRefresh(t *testing.T) {
	editors := NewEditors()
	ed := NewEditorView(10, 10, "")
	editors.Open(ed)
	s := &Scheme{Editors: editors}

	if _, ok := s.CaretColor(); ok {
		t.Error("new scheme should use the default caret color")
	}
	s.SetCaretColor(color.RGBA{R: 255, A: 255})
	s.RefreshEditors()
	if c, ok := s.CaretColor(); !ok || c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("CaretColor() = %v, %v", c, ok)
	}
	if ed.Repaints() != 1 || s.Refreshes() != 1 {
		t.Errorf("repaints = %d, refreshes = %d", ed.Repaints(), s.Refreshes())
	}
}

func TestLoop(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLoop(start)

	var ticks, posted int
	timer := l.Every(50*time.Millisecond, func() {
		ticks++
		l.Post(func() { posted++ })
	})

	l.Advance(120 * time.Millisecond)
	if ticks != 2 || posted != 2 {
		t.Errorf("ticks = %d, posted = %d; want 2, 2", ticks, posted)
	}
	if got := l.Now().Sub(start); got != 120*time.Millisecond {
		t.Errorf("clock advanced %v, want 120ms", got)
	}

	timer.Stop()
	timer.Stop()
	l.Advance(time.Second)
	if ticks != 2 {
		t.Errorf("stopped timer fired, ticks = %d", ticks)
	}
	if l.Timers() != 0 {
		t.Errorf("Timers() = %d, want 0", l.Timers())
	}
}

func TestLoopStopFromCallback(t *testing.T) {
	l := NewLoop(time.Time{})
	var n int
	var timer host.Timer
	timer = l.Every(10*time.Millisecond, func() {
		n++
		timer.Stop()
	})
	l.Advance(100 * time.Millisecond)
	if n != 1 {
		t.Errorf("callback ran %d times, want 1", n)
	}
}

func TestRenderTree(t *testing.T) {
	root := NewRoot("root", 60, 40)
	root.Background = color.RGBA{B: 255, A: 255}
	top := NewPanel("top", 60, 20)
	top.Background = color.RGBA{R: 255, A: 255}
	root.Add(top)

	img := Render(root)
	if got := img.RGBAAt(5, 5); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("top half = %v, want red", got)
	}
	if got := img.RGBAAt(5, 30); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("bottom half = %v, want blue", got)
	}
}

func TestLayerPaintsThroughUI(t *testing.T) {
	root := NewRoot("root", 60, 40)
	p := NewPanel("p", 60, 40)
	ui := &recordingUI{}
	l, err := (&Factory{}).Wrap(p, ui)
	if err != nil {
		t.Fatal(err)
	}
	root.Add(l)
	Render(root)
	if ui.paints != 1 {
		t.Errorf("UI painted %d times, want 1", ui.paints)
	}
	if !p.Showing() {
		t.Error("wrapped view under a root should be showing")
	}
}

func TestChildOffsetThroughLayer(t *testing.T) {
	root := NewRoot("root", 100, 100)
	inner := NewPanel("inner", 100, 80)
	header := NewPanel("header", 100, 15)
	term := NewTerminalPanel(100, 40, nil)
	inner.Add(header)
	root.Add(NewPanel("top", 100, 20), inner)

	l, err := (&Factory{}).Wrap(term, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := inner.Insert(l, 1); err != nil {
		t.Fatal(err)
	}

	if got := inner.ChildOffset(l); got != image.Pt(0, 15) {
		t.Errorf("ChildOffset(layer) = %v, want (0,15)", got)
	}
	off, ok := host.OffsetWithin(term, root)
	if !ok || off != image.Pt(0, 35) {
		t.Errorf("OffsetWithin(term, root) = %v, %v; want (0,35), true", off, ok)
	}
	if _, ok := host.OffsetWithin(header, term); ok {
		t.Error("term is not an ancestor of header")
	}
}

func TestTerminalFontMetricsOverride(t *testing.T) {
	term := NewTerminalPanel(100, 40, nil)
	if got := cell.Compute(term.FontMetrics(), cell.DefaultLeading); got != (cell.Size{W: 7, H: 14}) {
		t.Errorf("face cell = %+v, want {7 14}", got)
	}
	term.SetFontMetrics(cell.Fixed{AdvanceWidth: 9, Height: 18})
	if got := cell.Compute(term.FontMetrics(), 1); got != (cell.Size{W: 9, H: 18}) {
		t.Errorf("override cell = %+v, want {9 18}", got)
	}
	term.SetFontMetrics(nil)
	if got := cell.Compute(term.FontMetrics(), cell.DefaultLeading); got.W != 7 {
		t.Errorf("cell after reset = %+v, want width 7", got)
	}
}
