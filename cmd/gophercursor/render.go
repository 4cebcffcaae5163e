package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	gotext "github.com/go-text/typesetting/font"
	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"

	focustime "github.com/sergunya/focus-time"
	"github.com/sergunya/focus-time/cell"
	"github.com/sergunya/focus-time/host"
	"github.com/sergunya/focus-time/host/memhost"
	"github.com/sergunya/focus-time/icon"
)

// epoch is the manual clock origin, fixed so renders are reproducible.
var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type renderOptions struct {
	out      string
	color    string
	text     string
	iconPath string
	width    int
	height   int
	fontSize float64
	hold     time.Duration
	darken   bool
	editor   bool
	cells    bool
}

func newRenderCommand() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to a PNG file",
		Long: `Render builds an in-memory window holding a terminal (and with --editor an
editor below it), runs one discovery pass, optionally holds the darken
modifier on the manual clock, and writes the frame as PNG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runRender(opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", opts.out, opts.width, opts.height)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "gophercursor.png", "Output PNG file")
	f.StringVar(&opts.color, "color", "FFFFFF", "Icon color as RRGGBB or AARRGGBB")
	f.StringVar(&opts.text, "text", "$ go test ./...\nok  \tgithub.com/sergunya/focus-time\t0.012s\n$ ", "Terminal content; \\n separates lines")
	f.StringVar(&opts.iconPath, "icon", "", "PNG file replacing the built-in icon")
	f.IntVar(&opts.width, "width", 640, "Frame width in pixels")
	f.IntVar(&opts.height, "height", 360, "Frame height in pixels")
	f.Float64Var(&opts.fontSize, "font-size", 14, "Terminal font size in pixels")
	f.DurationVar(&opts.hold, "hold", 0, "Hold the modifier for this long before rendering")
	f.BoolVar(&opts.darken, "darken", false, "Dim the surface while the modifier is held")
	f.BoolVar(&opts.editor, "editor", false, "Add an editor below the terminal")
	f.BoolVar(&opts.cells, "cell-sizing", false, "Size the terminal icon from the cell size")
	return cmd
}

func runRender(opts renderOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", opts.width, opts.height)
	}
	col, err := focustime.ParseColor(opts.color)
	if err != nil {
		return err
	}
	settings := focustime.DefaultSettings()
	settings.Color = col
	settings.DarkenEnabled = opts.darken

	face, err := monoFace(opts.fontSize)
	if err != nil {
		return err
	}
	defer face.Close()
	metrics, err := monoMetrics(opts.fontSize)
	if err != nil {
		return err
	}

	loop := memhost.NewLoop(epoch)
	editors := memhost.NewEditors()
	root := memhost.NewRoot("window", opts.width, opts.height)

	termHeight := opts.height
	if opts.editor {
		termHeight = opts.height / 2
	}
	term := memhost.NewTerminalPanel(opts.width, termHeight, face)
	term.SetFontMetrics(metrics)
	term.Write(strings.ReplaceAll(opts.text, `\n`, "\n"))
	toolWindow := memhost.NewPanel("terminal tool window", opts.width, termHeight).Add(term)
	root.Add(toolWindow)

	if opts.editor {
		ed := memhost.NewEditorView(opts.width, opts.height-termHeight, "package main\n\nfunc main() {\n\tprintln(\"hello, gopher\")\n}")
		ed.SetCaret(3, 9)
		root.Add(ed)
		editors.Open(ed)
	}

	svcOpts := []focustime.Option{
		focustime.WithScheduler(loop),
		focustime.WithLayerFactory(&memhost.Factory{}),
		focustime.WithTerminalRoots(root),
		focustime.WithEditors(editors),
		focustime.WithColorScheme(&memhost.Scheme{Editors: editors}),
	}
	if opts.iconPath != "" {
		data, err := os.ReadFile(opts.iconPath)
		if err != nil {
			return fmt.Errorf("read icon: %w", err)
		}
		svcOpts = append(svcOpts, focustime.WithIcon(icon.New(icon.WithPNG(data), icon.WithLogger(focustime.Logger()))))
	}
	if opts.cells {
		svcOpts = append(svcOpts, focustime.WithTerminalIconSizing())
	}

	svc, err := focustime.New(settings, svcOpts...)
	if err != nil {
		return err
	}
	defer svc.Close()
	if err := svc.Start(); err != nil {
		return err
	}

	if opts.hold > 0 {
		memhost.Dispatch(term, host.KeyEvent{Action: host.KeyPressed, Key: settings.Modifier, When: loop.Now()})
		loop.Advance(opts.hold)
	}

	return writePNG(opts.out, memhost.Render(root))
}

func monoFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// monoMetrics measures Go Mono with go-text/typesetting, the way the
// terminal's layout engine sizes cells.
func monoMetrics(size float64) (cell.Metrics, error) {
	f, err := gotext.ParseTTF(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("parse font metrics: %w", err)
	}
	return cell.FromOpenType(f, size), nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
