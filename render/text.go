package render

import (
	"strings"

	"github.com/lixenwraith/termplot/terminal"
)

// FromText builds a canvas from multi-line text, padding each line to the widest
// visual width per align. Color sequences previously emitted by mode are decoded
// back into cell colors, so the result is a true rectangle of visible cells
func FromText(text string, align Alignment, mode terminal.ColorMode) Canvas {
	if text == "" {
		return Canvas{}
	}

	lines := strings.Split(text, "\n")
	rows := make([][]Cell, len(lines))
	width := 0
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		runes, colors := mode.ParseColored(line)
		row := make([]Cell, 0, len(runes))
		for j, r := range runes {
			r = Sanitize(r)
			row = append(row, Cell{Rune: r, Color: colors[j]})
			if terminal.RuneCells(r) == 2 {
				row = append(row, Cell{Rune: continuation, Color: colors[j]})
			}
		}
		rows[i] = row
		width = max(width, len(row))
	}
	if width == 0 {
		return Canvas{}
	}

	out := Canvas{cells: make([]Cell, 0, width*len(rows)), width: width, height: len(rows)}
	for _, row := range rows {
		before, after := align.split(width - len(row))
		out.cells = appendBlank(out.cells, before)
		out.cells = append(out.cells, row...)
		out.cells = appendBlank(out.cells, after)
	}
	out.check()
	return out
}

// StringCells is the number of cells PutString needs for s
func StringCells(s string) int {
	w := 0
	for _, r := range s {
		w += terminal.RuneCells(Sanitize(r))
	}
	return w
}

// FromRunes builds a single-row canvas in one color; line breaks become spaces
func FromRunes(s string, color terminal.Color) Canvas {
	out := New(StringCells(s), 1)
	out.PutString(0, 0, s, color)
	return out
}

func appendBlank(cells []Cell, n int) []Cell {
	for i := 0; i < n; i++ {
		cells = append(cells, blankCell)
	}
	return cells
}

// Text serializes the canvas one line per row. Each row opens and closes its own
// color runs, so no run is left open across a line break
func (c Canvas) Text(mode terminal.ColorMode) string {
	var b strings.Builder
	b.Grow((c.width + 1) * c.height)
	runes := make([]rune, 0, c.width)
	colors := make([]terminal.Color, 0, c.width)
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		runes, colors = runes[:0], colors[:0]
		for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
			if cell.Rune == continuation {
				continue
			}
			runes = append(runes, cell.Rune)
			colors = append(colors, cell.Color)
		}
		b.WriteString(mode.ApplyRunes(runes, colors))
	}
	return b.String()
}

// String renders without colors
func (c Canvas) String() string {
	return c.Text(terminal.None())
}

// Colorize tags every non-blank cell with color
func (c Canvas) Colorize(color terminal.Color) Canvas {
	out := c.clone()
	for i := range out.cells {
		if out.cells[i].Rune != ' ' {
			out.cells[i].Color = color
		}
	}
	return out
}
