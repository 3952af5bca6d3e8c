package plot

import (
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// MergeHorizontal places b to the right of a with margin blank columns between.
// Both inputs must have been rendered with mode; mixing modes is unsupported.
// Terminal colors are decoded and re-emitted, so runs never straddle the seam.
// HTML and plain inputs are composed as raw text, since markup has no visual width
func MergeHorizontal(a, b string, mode terminal.ColorMode, align render.Alignment, margin int) string {
	ca, cb, out := parsePair(a, b, mode)
	return ca.AddPadding(render.Padding{Right: max(margin, 0)}).MergeHorizontally(cb, align).Text(out)
}

// MergeVertical stacks b below a with margin blank rows between; see MergeHorizontal
func MergeVertical(a, b string, mode terminal.ColorMode, align render.Alignment, margin int) string {
	ca, cb, out := parsePair(a, b, mode)
	return ca.AddPadding(render.Padding{Bottom: max(margin, 0)}).MergeVertically(cb, align).Text(out)
}

func parsePair(a, b string, mode terminal.ColorMode) (render.Canvas, render.Canvas, terminal.ColorMode) {
	if !mode.IsTerminal() {
		mode = terminal.None()
	}
	return render.FromText(a, render.AlignFirst, mode), render.FromText(b, render.AlignFirst, mode), mode
}
