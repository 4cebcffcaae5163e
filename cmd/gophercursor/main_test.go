package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	focustime "github.com/sergunya/focus-time"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestVersionCommand(t *testing.T) {
	got := execute(t, "version")
	if want := "gophercursor " + focustime.Version + "\n"; got != want {
		t.Errorf("version output = %q, want %q", got, want)
	}
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	msg := execute(t, "render", "--out", out, "--width", "320", "--height", "200", "--editor", "--color", "FF8800")
	if !strings.Contains(msg, "frame.png") {
		t.Errorf("unexpected output %q", msg)
	}
	img := decode(t, out)
	if got := img.Bounds(); got != image.Rect(0, 0, 320, 200) {
		t.Errorf("frame bounds = %v", got)
	}
}

func TestRenderDarkened(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.png")
	dark := filepath.Join(dir, "dark.png")
	execute(t, "render", "--out", plain, "--text", "")
	execute(t, "render", "--out", dark, "--text", "", "--darken", "--hold", (2 * time.Second).String())

	// A corner far from the caret only differs by the dimming.
	p := decode(t, plain).At(600, 340)
	d := decode(t, dark).At(600, 340)
	pr, _, _, _ := p.RGBA()
	dr, _, _, _ := d.RGBA()
	if dr >= pr {
		t.Errorf("darkened pixel %v is not darker than %v", d, p)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"render", "--out", filepath.Join(dir, "a.png"), "--color", "nope"},
		{"render", "--out", filepath.Join(dir, "b.png"), "--width", "0"},
		{"render", "--out", filepath.Join(dir, "c.png"), "--icon", filepath.Join(dir, "missing.png")},
	}
	for _, args := range tests {
		cmd := newRootCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		if err := cmd.Execute(); err == nil {
			t.Errorf("execute %v: expected error", args)
		}
	}
}

func TestMonoMetricsMatchPaintFace(t *testing.T) {
	face, err := monoFace(14)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()
	m, err := monoMetrics(14)
	if err != nil {
		t.Fatal(err)
	}
	adv, ok := m.Advance('W')
	if !ok {
		t.Fatal("no advance for 'W'")
	}
	paint, ok := face.GlyphAdvance('W')
	if !ok {
		t.Fatal("paint face has no 'W'")
	}
	if diff := adv - float64(paint)/64; diff < -1 || diff > 1 {
		t.Errorf("layout advance %v differs from paint advance %v", adv, float64(paint)/64)
	}
}
