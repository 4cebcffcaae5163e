package discovery

import (
	"fmt"
	"image/draw"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sergunya/focus-time/host"
	"github.com/sergunya/focus-time/host/memhost"
)

// JediTermWidget is a container widget whose inner view is the terminal.
type JediTermWidget struct {
	*memhost.Panel
}

type recorder struct {
	found, lost []host.Component
}

func (r *recorder) Found(c host.Component) { r.found = append(r.found, c) }
func (r *recorder) Lost(c host.Component)  { r.lost = append(r.lost, c) }

type nopUI struct{}

func (nopUI) Paint(dst draw.Image, l host.Layer) {}
func (nopUI) HandleEvent(host.Event, host.Layer) {}

func ptrs(cs []host.Component) []any {
	out := make([]any, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func same(t *testing.T, what string, got, want []host.Component) {
	t.Helper()
	if diff := cmp.Diff(ptrs(want), ptrs(got), cmp.Comparer(func(a, b any) bool { return a == b })); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", what, diff)
	}
}

func TestCandidatesDeepestMatch(t *testing.T) {
	root := memhost.NewRoot("root", 100, 100)
	inner := memhost.NewTerminalPanel(10, 10, nil)
	widget := &JediTermWidget{Panel: memhost.NewPanel("jedi", 10, 10)}
	widget.Add(inner)
	lone := &JediTermWidget{Panel: memhost.NewPanel("lone", 10, 10)}
	plain := memhost.NewTerminalPanel(10, 10, nil)
	root.Add(widget, memhost.NewPanel("editor", 10, 10).Add(plain), lone)

	s := New(nil, WithRoots(root))
	same(t, "candidates", s.Candidates(), []host.Component{inner, plain, lone})
}

func TestCandidatesThroughLayers(t *testing.T) {
	root := memhost.NewRoot("root", 100, 100)
	term := memhost.NewTerminalPanel(10, 10, nil)
	l, err := (&memhost.Factory{}).Wrap(term, nopUI{})
	if err != nil {
		t.Fatal(err)
	}
	root.Add(l)

	s := New(nil, WithRoots(root))
	same(t, "candidates", s.Candidates(), []host.Component{term})
	if s.Matches(l) {
		t.Error("a layer must never match")
	}
}

func TestScanFoundAndLost(t *testing.T) {
	root := memhost.NewRoot("root", 100, 100)
	a := memhost.NewTerminalPanel(10, 10, nil)
	b := memhost.NewTerminalPanel(10, 10, nil)
	root.Add(a, b)

	rec := &recorder{}
	s := New(rec, WithRoots(root))

	if found, lost := s.Scan(); found != 2 || lost != 0 {
		t.Fatalf("first Scan() = %d, %d; want 2, 0", found, lost)
	}
	if found, lost := s.Scan(); found != 0 || lost != 0 {
		t.Fatalf("second Scan() = %d, %d; want 0, 0", found, lost)
	}

	if err := root.Remove(a); err != nil {
		t.Fatal(err)
	}
	if found, lost := s.Scan(); found != 0 || lost != 1 {
		t.Fatalf("Scan() after removal = %d, %d; want 0, 1", found, lost)
	}
	same(t, "found", rec.found, []host.Component{a, b})
	same(t, "lost", rec.lost, []host.Component{a})
	same(t, "tracked", s.Tracked(), []host.Component{b})

	// Re-adding the surface makes it new again.
	root.Add(a)
	if found, _ := s.Scan(); found != 1 {
		t.Errorf("Scan() after re-adding found %d, want 1", found)
	}
}

func TestAllowList(t *testing.T) {
	root := memhost.NewRoot("root", 100, 100)
	term := memhost.NewTerminalPanel(10, 10, nil)
	other := memhost.NewPanel("x", 10, 10)
	root.Add(term, other)

	s := New(nil, WithRoots(root), WithAllowList("memhost.Panel"))
	same(t, "candidates", s.Candidates(), []host.Component{other})

	s = New(nil, WithRoots(root), WithAllowList())
	if got := s.Candidates(); len(got) != 0 {
		t.Errorf("empty allow list found %d candidates", len(got))
	}
}

func TestReset(t *testing.T) {
	root := memhost.NewRoot("root", 100, 100)
	term := memhost.NewTerminalPanel(10, 10, nil)
	root.Add(term)

	rec := &recorder{}
	s := New(rec, WithRoots(root))
	s.Scan()
	s.Reset()
	if len(s.Tracked()) != 0 || len(rec.lost) != 0 {
		t.Errorf("Reset: tracked = %d, lost callbacks = %d", len(s.Tracked()), len(rec.lost))
	}
	if found, _ := s.Scan(); found != 1 {
		t.Errorf("reset surface should be found again, found = %d", found)
	}
}

func TestStartRunsBeforeScanHook(t *testing.T) {
	root := memhost.NewRoot("root", 100, 100)
	loop := memhost.NewLoop(time.Time{})
	rec := &recorder{}
	var order []string
	s := New(rec, WithRoots(root), WithBeforeScan(func() {
		order = append(order, fmt.Sprintf("before:%d", len(rec.found)))
	}))
	root.Add(memhost.NewTerminalPanel(10, 10, nil))

	timer := s.Start(loop, time.Second)
	defer timer.Stop()
	loop.Advance(time.Second)

	if diff := cmp.Diff([]string{"before:0", "before:1"}, order); diff != "" {
		t.Errorf("hook calls mismatch (-want +got):\n%s", diff)
	}
	if len(rec.found) != 1 {
		t.Errorf("found = %d, want 1", len(rec.found))
	}
}

func TestStartScansPeriodically(t *testing.T) {
	root := memhost.NewRoot("root", 100, 100)
	loop := memhost.NewLoop(time.Time{})
	rec := &recorder{}
	s := New(rec)
	s.AddRoot(root)
	s.AddRoot(root)

	timer := s.Start(loop, 0)
	if len(rec.found) != 0 {
		t.Fatal("empty tree should find nothing")
	}
	root.Add(memhost.NewTerminalPanel(10, 10, nil))

	loop.Advance(DefaultInterval - time.Millisecond)
	if len(rec.found) != 0 {
		t.Fatal("scan ran before the interval")
	}
	loop.Advance(time.Millisecond)
	if len(rec.found) != 1 {
		t.Fatalf("found %d after one interval, want 1", len(rec.found))
	}

	timer.Stop()
	root.Add(memhost.NewTerminalPanel(10, 10, nil))
	loop.Advance(10 * DefaultInterval)
	if len(rec.found) != 1 {
		t.Errorf("scan ran after Stop, found = %d", len(rec.found))
	}
}
