package plot

import (
	"strings"

	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// Interval labels data indices Start..End, both inclusive. Indices may fall
// outside the data; the visible part is drawn
type Interval struct {
	Start, End int
	Label      string
}

// Valid reports End >= Start
func (iv Interval) Valid() bool {
	return iv.End >= iv.Start
}

const (
	arrowLeft  = '<'
	arrowRight = '>'
	dash       = '─'
	ellipsis   = "..."
)

// span is an interval resolved to plot columns for one width and data length
type span struct {
	start, end int  // inclusive plot columns, clipped to the canvas
	cutLeft    bool // the interval continues past the left edge
	cutRight   bool // the interval continues past the right edge
	label      []rune
}

// resolve maps iv onto width columns of a plot showing n data points
// ok is false when nothing of the interval is on the canvas
func (iv Interval) resolve(width, n int) (span, bool) {
	if n <= 0 || width <= 0 {
		return span{}, false
	}
	start := floorDiv(iv.Start*width, n)
	end := floorDiv(iv.End*width, n)
	if end < 0 || start >= width {
		return span{}, false
	}

	s := span{start: start, end: end, label: cleanLabel(iv.Label)}
	if start < 0 {
		s.start, s.cutLeft = 0, true
	}
	if end >= width {
		s.end, s.cutRight = width-1, true
	}
	return s, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// cleanLabel replaces control runes such as line breaks with spaces
func cleanLabel(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = render.Sanitize(r)
	}
	return rs
}

// runeCells is the display width of rs
func runeCells(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += terminal.RuneCells(r)
	}
	return n
}

// headCells returns the longest prefix of rs fitting in cells
func headCells(rs []rune, cells int) []rune {
	w := 0
	for i, r := range rs {
		w += terminal.RuneCells(r)
		if w > cells {
			return rs[:i]
		}
	}
	return rs
}

// tailCells returns the longest suffix of rs fitting in cells
func tailCells(rs []rune, cells int) []rune {
	w := 0
	for i := len(rs) - 1; i >= 0; i-- {
		w += terminal.RuneCells(rs[i])
		if w > cells {
			return rs[i+1:]
		}
	}
	return rs
}

// render draws the bracket for s; nil means too small to draw
func (s span) render() []rune {
	l := s.end - s.start + 1
	switch {
	case s.cutLeft && s.cutRight:
		return []rune(strings.Repeat(string(dash), l))
	case s.cutLeft:
		return renderHalf(l, s.label, false)
	case s.cutRight:
		return renderHalf(l, s.label, true)
	}
	return renderFull(l, s.label)
}

// renderFull centers label between "<" and ">". The result is l cells wide
func renderFull(l int, label []rune) []rune {
	n := runeCells(label)
	switch {
	case l >= n+4:
		rem := l - n - 2
		left := rem / 2
		out := make([]rune, 0, l)
		out = append(out, arrowLeft)
		out = appendDashes(out, left)
		out = append(out, label...)
		out = appendDashes(out, rem-left)
		return append(out, arrowRight)
	case n > 8 && l > 7:
		out := make([]rune, 0, l)
		kept := headCells(label, l-7)
		out = append(out, arrowLeft, dash)
		out = append(out, kept...)
		out = append(out, []rune(ellipsis)...)
		out = appendDashes(out, l-7-runeCells(kept))
		return append(out, dash, arrowRight)
	case l > 1:
		out := make([]rune, 0, l)
		out = append(out, arrowLeft)
		out = appendDashes(out, l-2)
		return append(out, arrowRight)
	}
	return nil
}

// renderHalf draws an interval with one visible end. The head sits at that end and
// a truncated label keeps the text nearest to it
func renderHalf(l int, label []rune, headLeft bool) []rune {
	n := runeCells(label)
	var body []rune
	switch {
	case l >= n+3:
		rem := l - n - 1
		left := rem / 2
		body = appendDashes(body, left)
		body = append(body, label...)
		body = appendDashes(body, rem-left)
	case n > 8 && l > 6:
		keep := l - 6
		body = append(body, dash)
		if headLeft {
			kept := headCells(label, keep)
			body = append(body, kept...)
			body = append(body, []rune(ellipsis)...)
			body = appendDashes(body, keep-runeCells(kept))
		} else {
			kept := tailCells(label, keep)
			body = appendDashes(body, keep-runeCells(kept))
			body = append(body, []rune(ellipsis)...)
			body = append(body, kept...)
		}
		body = append(body, dash)
	case l > 1:
		body = appendDashes(body, l-1)
	default:
		return nil
	}
	if headLeft {
		return append([]rune{arrowLeft}, body...)
	}
	return append(body, arrowRight)
}

func appendDashes(out []rune, n int) []rune {
	for i := 0; i < n; i++ {
		out = append(out, dash)
	}
	return out
}

// drawLabeledIntervals packs intervals into the fewest rows, first fit: each goes
// into the first row whose occupied columns it does not overlap
func drawLabeledIntervals(intervals []Interval, width, n int, color terminal.Color) render.Canvas {
	var masks [][]bool
	type placed struct {
		row   int
		start int
		glyph []rune
	}
	var items []placed

next:
	for _, iv := range intervals {
		s, ok := iv.resolve(width, n)
		if !ok {
			continue
		}
		glyph := s.render()
		if len(glyph) == 0 {
			continue
		}
		for r, mask := range masks {
			if free(mask, s.start, s.end) {
				occupy(mask, s.start, s.end)
				items = append(items, placed{row: r, start: s.start, glyph: glyph})
				continue next
			}
		}
		mask := make([]bool, width)
		occupy(mask, s.start, s.end)
		masks = append(masks, mask)
		items = append(items, placed{row: len(masks) - 1, start: s.start, glyph: glyph})
	}

	if len(masks) == 0 {
		return render.Empty()
	}
	out := render.New(width, len(masks))
	for _, it := range items {
		out.PutString(it.start, it.row, string(it.glyph), color)
	}
	return out
}

func free(mask []bool, start, end int) bool {
	for i := start; i <= end; i++ {
		if mask[i] {
			return false
		}
	}
	return true
}

func occupy(mask []bool, start, end int) {
	for i := start; i <= end; i++ {
		mask[i] = true
	}
}
