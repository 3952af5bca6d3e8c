package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/termplot/config"
	"github.com/lixenwraith/termplot/preview"
	"github.com/lixenwraith/termplot/terminal"
)

type plotOptions struct {
	colorMode  string
	htmlPrefix string
	depth      string
	width      int
	height     int
	preview    bool
}

func (o *plotOptions) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.colorMode, "color", o.colorMode, "Color mode (auto, none, fg, bg, html, fg256, bg256); auto keeps the document's mode or uses fg on a terminal")
	fs.StringVar(&o.htmlPrefix, "html-prefix", o.htmlPrefix, "Class name prefix for --color html")
	fs.StringVar(&o.depth, "depth", o.depth, "Terminal color depth (auto, truecolor, 256)")
	fs.IntVar(&o.width, "width", 0, "Plot area width in cells, overriding the document")
	fs.IntVar(&o.height, "height", 0, "Plot area height in cells, overriding the document")
	fs.BoolVar(&o.preview, "preview", false, "Show the plot full screen instead of printing it; quit with q or Esc")
}

func runPlot(cmd *cobra.Command, args []string, opts *plotOptions, global *globalOptions) error {
	in, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	g, err := config.Load(in, config.WithLogger(global.log))
	if err != nil {
		return err
	}
	if opts.width > 0 {
		g.SetPlotWidth(opts.width)
	}
	if opts.height > 0 {
		g.SetPlotHeight(opts.height)
	}

	out := cmd.OutOrStdout()
	mode, err := opts.resolveMode(g.ColorMode(), isTerminalWriter(out))
	if err != nil {
		return err
	}
	g.SetColorMode(mode)

	if opts.preview {
		c, err := g.Draw()
		if err != nil {
			return err
		}
		if !mode.IsTerminal() {
			mode = terminal.TerminalFg()
		}
		return preview.Show(cmd.Context(), c, mode)
	}

	text, err := g.Render()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

// resolveMode picks the output color mode. An explicit --color wins; auto keeps
// a mode set by the document and otherwise colors only terminal output
func (o *plotOptions) resolveMode(doc terminal.ColorMode, tty bool) (terminal.ColorMode, error) {
	var mode terminal.ColorMode
	switch o.colorMode {
	case "auto", "":
		switch {
		case doc.Kind != terminal.ModeNone:
			mode = doc
		case tty && !color.NoColor:
			mode = terminal.TerminalFg()
		default:
			mode = terminal.None()
		}
	default:
		m, err := terminal.ParseColorMode(o.colorMode, o.htmlPrefix)
		if err != nil {
			return terminal.None(), err
		}
		mode = m
	}
	if mode.Kind == terminal.ModeHTML && o.htmlPrefix != "" {
		mode = terminal.HTML(o.htmlPrefix)
	}

	if !mode.IsTerminal() {
		return mode, nil
	}
	switch o.depth {
	case "auto", "":
		if mode.Depth == terminal.DepthTrueColor {
			mode = mode.WithDepth(terminal.DetectDepth())
		}
	case "truecolor", "24bit":
		mode = mode.WithDepth(terminal.DepthTrueColor)
	case "256":
		mode = mode.WithDepth(terminal.Depth256)
	default:
		return terminal.None(), fmt.Errorf("unknown color depth %q (expected auto, truecolor or 256)", o.depth)
	}
	return mode, nil
}

// openInput returns the named file, or stdin for no argument or "-"
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func colorNames() []string {
	cs := terminal.Colors()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
