package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/termplot/plot"
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

type mergeOptions struct {
	vertical   bool
	margin     int
	align      string
	colorMode  string
	htmlPrefix string
}

func newMergeCommand(global *globalOptions) *cobra.Command {
	opts := &mergeOptions{margin: 2, align: "first", colorMode: "fg"}
	cmd := &cobra.Command{
		Use:   "merge A B",
		Short: "Place two rendered plots side by side or stacked",
		Long: "merge reads two text renderings, for example saved termplot output, and\n" +
			"composes them into one block. Both must use the same color mode.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args, opts, global)
		},
	}
	cmd.Flags().BoolVar(&opts.vertical, "vertical", false, "Stack B below A instead of placing it to the right")
	cmd.Flags().IntVar(&opts.margin, "margin", opts.margin, "Blank cells between the two blocks")
	cmd.Flags().StringVar(&opts.align, "align", opts.align, "Cross-axis alignment (first, center, last)")
	cmd.Flags().StringVar(&opts.colorMode, "color", opts.colorMode, "Color mode of both inputs (none, fg, bg, html, fg256, bg256)")
	cmd.Flags().StringVar(&opts.htmlPrefix, "html-prefix", "", "Class name prefix when --color html")
	return cmd
}

func runMerge(cmd *cobra.Command, args []string, opts *mergeOptions, global *globalOptions) error {
	align, err := render.ParseAlignment(opts.align)
	if err != nil {
		return err
	}
	mode, err := terminal.ParseColorMode(opts.colorMode, opts.htmlPrefix)
	if err != nil {
		return err
	}

	var blocks [2]string
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		// a trailing newline from the renderer is not a blank row
		blocks[i] = strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	}
	global.log.V(1).Info("merging", "a", args[0], "b", args[1], "vertical", opts.vertical, "align", align.String(), "mode", mode.String())

	var out string
	if opts.vertical {
		out = plot.MergeVertical(blocks[0], blocks[1], mode, align, opts.margin)
	} else {
		out = plot.MergeHorizontal(blocks[0], blocks[1], mode, align, opts.margin)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
