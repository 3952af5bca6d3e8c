package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/lixenwraith/termplot/terminal"
)

// Cell is one display position: a code point and an optional color tag
// A wide rune occupies two cells; the second holds a continuation marker and is
// skipped on output
type Cell struct {
	Rune  rune
	Color terminal.Color
}

// blankCell is the fill for new and padded areas
var blankCell = Cell{Rune: ' '}

// continuation marks the right half of a double-width rune. It is negative so no
// decoded input rune can collide with it
const continuation rune = -1

// IsContinuation reports the right half of a double-width rune
func (c Cell) IsContinuation() bool { return c.Rune == continuation }

// Canvas is a rectangular grid of cells backed by a flat slice
// Transforms return new canvases; Set and SetColor mutate during construction only
type Canvas struct {
	cells  []Cell
	width  int
	height int
}

// New creates a blank, space-filled, uncolored canvas
func New(width, height int) Canvas {
	if width <= 0 || height <= 0 {
		return Canvas{}
	}
	cells := make([]Cell, width*height)
	cells[0] = blankCell
	// Exponential copy
	for filled := 1; filled < len(cells); filled *= 2 {
		copy(cells[filled:], cells[:filled])
	}
	return Canvas{cells: cells, width: width, height: height}
}

// Empty returns the zero-dimension canvas, the identity for merges
func Empty() Canvas {
	return Canvas{}
}

func (c Canvas) Width() int  { return c.width }
func (c Canvas) Height() int { return c.height }

// IsEmpty reports a zero-dimension canvas
func (c Canvas) IsEmpty() bool {
	return c.width == 0 || c.height == 0
}

// inBounds returns true if in canvas bounds
func (c Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the cell at (x, y); out of bounds returns a blank cell
func (c Canvas) Get(x, y int) Cell {
	if !c.inBounds(x, y) {
		return blankCell
	}
	return c.cells[y*c.width+x]
}

// Sanitize maps runes that cannot occupy a cell (control runes, DEL, invalid
// code points) to a space
func Sanitize(r rune) rune {
	if r < ' ' || r == 0x7f || !utf8.ValidRune(r) {
		return ' '
	}
	return r
}

// Set writes a rune at (x, y) keeping the existing color; out of bounds is ignored
func (c *Canvas) Set(x, y int, r rune) {
	if !c.inBounds(x, y) {
		return
	}
	c.PutRune(x, y, r, c.cells[y*c.width+x].Color)
}

// SetCell writes rune and color at (x, y)
func (c *Canvas) SetCell(x, y int, cell Cell) {
	c.PutRune(x, y, cell.Rune, cell.Color)
}

// PutRune writes r at (x, y) and returns the cells it took. A wide rune also
// takes the cell to its right, and becomes a space when that cell is off the
// canvas. A wide rune partly overwritten loses its other half
func (c *Canvas) PutRune(x, y int, r rune, color terminal.Color) int {
	if !c.inBounds(x, y) {
		return 0
	}
	r = Sanitize(r)
	w := terminal.RuneCells(r)
	if w == 2 && x+1 >= c.width {
		r, w = ' ', 1
	}
	c.breakWide(x, y)
	if w == 2 {
		c.breakWide(x+1, y)
	}
	i := y*c.width + x
	c.cells[i] = Cell{Rune: r, Color: color}
	if w == 2 {
		c.cells[i+1] = Cell{Rune: continuation, Color: color}
	}
	return w
}

// breakWide blanks the other half of a wide rune occupying (x, y)
func (c *Canvas) breakWide(x, y int) {
	i := y*c.width + x
	switch {
	case c.cells[i].Rune == continuation:
		if x > 0 {
			c.cells[i-1].Rune = ' '
		}
	case terminal.RuneCells(c.cells[i].Rune) == 2:
		if x+1 < c.width && c.cells[i+1].Rune == continuation {
			c.cells[i+1].Rune = ' '
		}
	}
}

// SetColor tags the cell at (x, y)
func (c *Canvas) SetColor(x, y int, color terminal.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y*c.width+x].Color = color
}

// PutString writes s starting at (x, y) in one row, clipped at the right edge
// Wide runes take two cells and are dropped if only one cell remains
// Returns the number of cells consumed
func (c *Canvas) PutString(x, y int, s string, color terminal.Color) int {
	start := x
	for _, r := range s {
		r = Sanitize(r)
		if x+terminal.RuneCells(r) > c.width {
			break
		}
		x += c.PutRune(x, y, r, color)
	}
	return x - start
}

// Row returns a copy of row y
func (c Canvas) Row(y int) []Cell {
	if y < 0 || y >= c.height {
		return nil
	}
	out := make([]Cell, c.width)
	copy(out, c.cells[y*c.width:(y+1)*c.width])
	return out
}

// clone returns a deep copy
func (c Canvas) clone() Canvas {
	cells := make([]Cell, len(c.cells))
	copy(cells, c.cells)
	return Canvas{cells: cells, width: c.width, height: c.height}
}

// check panics when the backing slice disagrees with the declared dimensions
func (c Canvas) check() {
	if len(c.cells) != c.width*c.height {
		panic(fmt.Sprintf("render: canvas %dx%d backed by %d cells", c.width, c.height, len(c.cells)))
	}
}

// IsValid reports whether the rectangle invariant holds
func (c Canvas) IsValid() bool {
	return c.width >= 0 && c.height >= 0 && len(c.cells) == c.width*c.height
}

// Crop returns the w x h region at (x, y), clamped to the canvas
// A wide rune split by the crop edge becomes a space
func (c Canvas) Crop(x, y, w, h int) Canvas {
	if x < 0 || y < 0 {
		panic(fmt.Sprintf("render: crop origin (%d,%d) is negative", x, y))
	}
	w = min(w, c.width-x)
	h = min(h, c.height-y)
	if w <= 0 || h <= 0 {
		return Canvas{}
	}

	out := Canvas{cells: make([]Cell, w*h), width: w, height: h}
	for row := 0; row < h; row++ {
		src := (y+row)*c.width + x
		copy(out.cells[row*w:(row+1)*w], c.cells[src:src+w])
	}
	out.repairWide()
	return out
}

// Blit copies other onto a copy of c with other's top-left at (x, y), clipped to c
// A placement starting outside c is a no-op
func (c Canvas) Blit(other Canvas, x, y int) Canvas {
	return c.blit(other, x, y, false, 0)
}

// BlitTransparent is Blit skipping every cell of other whose rune is transparent
func (c Canvas) BlitTransparent(other Canvas, x, y int, transparent rune) Canvas {
	return c.blit(other, x, y, true, transparent)
}

func (c Canvas) blit(other Canvas, x, y int, skip bool, transparent rune) Canvas {
	out := c.clone()
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return out
	}

	for dy := y; dy < min(c.height, y+other.height); dy++ {
		for dx := x; dx < min(c.width, x+other.width); dx++ {
			cell := other.cells[(dy-y)*other.width+(dx-x)]
			if skip && cell.Rune == transparent {
				continue
			}
			out.cells[dy*out.width+dx] = cell
		}
	}
	out.repairWide()
	return out
}

// repairWide replaces halves of wide runes that lost their partner with spaces
func (c *Canvas) repairWide() {
	for y := 0; y < c.height; y++ {
		row := c.cells[y*c.width : (y+1)*c.width]
		for x := range row {
			switch {
			case row[x].Rune == continuation:
				if x == 0 || terminal.RuneCells(row[x-1].Rune) != 2 {
					row[x].Rune = ' '
				}
			case terminal.RuneCells(row[x].Rune) == 2:
				if x+1 >= len(row) || row[x+1].Rune != continuation {
					row[x].Rune = ' '
				}
			}
		}
	}
}
