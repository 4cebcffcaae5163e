package locator

import (
	"image"
	"testing"
)

type exactPanel struct {
	cursorX int
	cursorY int
}

type substringPanel struct {
	myCursorXPos int32
	myCursorYPos uint16
}

type accessorPanel struct {
	col, row int
}

func (p *accessorPanel) CursorX() int    { return p.col }
func (p *accessorPanel) GetCursorY() int { return p.row }

type combinedPanel struct{}

func (combinedPanel) CursorPosition() (int, int) { return 3, 4 }

type termCursor struct {
	X, Y int
}

type nestedPanel struct {
	cursor *termCursor
}

type pointPanel struct{}

func (pointPanel) Caret() image.Point { return image.Pt(9, 1) }

type wrongTypes struct {
	cursorX string
	cursorY float64
}

type negativePanel struct {
	cursorX, cursorY int
}

type panicking struct{}

func (panicking) CursorX() int { panic("boom") }
func (panicking) CursorY() int { return 1 }

type embedded struct {
	exactPanel
}

func TestIntrospect(t *testing.T) {
	tests := []struct {
		name         string
		target       any
		wantX, wantY int
		wantStrategy string
		wantOK       bool
	}{
		{"exact unexported fields", &exactPanel{cursorX: 5, cursorY: 2}, 5, 2, "field", true},
		{"exact by value", exactPanel{cursorX: 1, cursorY: 7}, 1, 7, "field", true},
		{"promoted fields", &embedded{exactPanel{cursorX: 2, cursorY: 3}}, 2, 3, "field", true},
		{"substring only", &substringPanel{myCursorXPos: 11, myCursorYPos: 6}, 11, 6, "field-substring", true},
		{"accessors", &accessorPanel{col: 4, row: 8}, 4, 8, "accessor", true},
		{"combined getter", combinedPanel{}, 3, 4, "accessor", true},
		{"nested unexported pointer", &nestedPanel{cursor: &termCursor{X: 7, Y: 12}}, 7, 12, "nested-field", true},
		{"nested via method", pointPanel{}, 9, 1, "nested-field", true},
		{"nil nested", &nestedPanel{}, 0, 0, "", false},
		{"wrong field types", &wrongTypes{cursorX: "5", cursorY: 2}, 0, 0, "", false},
		{"negative rejected", &negativePanel{cursorX: -1, cursorY: 2}, 0, 0, "", false},
		{"panicking getter", panicking{}, 0, 0, "", false},
		{"nothing matches", &struct{ a, b int }{1, 2}, 0, 0, "", false},
		{"non-struct", 42, 0, 0, "", false},
		{"nil", nil, 0, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, strategy, ok := Introspect(tt.target, DefaultNames, NestedNames)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("got (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
			if strategy != tt.wantStrategy {
				t.Errorf("strategy = %q, want %q", strategy, tt.wantStrategy)
			}
		})
	}
}

func TestIntrospectPrefersExactOverSubstring(t *testing.T) {
	target := &struct {
		oldCursorXValue int
		cursorX         int
		oldCursorYValue int
		cursorY         int
	}{oldCursorXValue: 100, cursorX: 1, oldCursorYValue: 200, cursorY: 2}

	x, y, strategy, ok := Introspect(target, DefaultNames, NestedNames)
	if !ok || x != 1 || y != 2 || strategy != "field" {
		t.Errorf("got (%d, %d, %q, %v), want (1, 2, \"field\", true)", x, y, strategy, ok)
	}
}

func TestIntrospectCustomNames(t *testing.T) {
	target := &struct{ termCol, termRow int }{termCol: 3, termRow: 9}
	names := Names{Column: []string{"termCol"}, Row: []string{"termRow"}}

	x, y, _, ok := Introspect(target, names, NestedNames)
	if !ok || x != 3 || y != 9 {
		t.Errorf("got (%d, %d, %v), want (3, 9, true)", x, y, ok)
	}
	if _, _, _, ok := Introspect(target, DefaultNames, NestedNames); ok {
		t.Error("expected default names to miss custom fields")
	}
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("cursorX"); got != "CursorX" {
		t.Errorf("capitalize = %q, want CursorX", got)
	}
	if got := capitalize(""); got != "" {
		t.Errorf("capitalize(\"\") = %q, want empty", got)
	}
}
