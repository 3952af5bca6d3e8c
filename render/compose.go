package render

// Sides selects the edges of a canvas
type Sides struct {
	Top, Bottom, Left, Right bool
}

// AllSides selects every edge
var AllSides = Sides{Top: true, Bottom: true, Left: true, Right: true}

// Padding is a cell count per edge
type Padding struct {
	Top, Bottom, Left, Right int
}

// Uniform returns the same padding on every edge
func Uniform(n int) Padding {
	return Padding{Top: n, Bottom: n, Left: n, Right: n}
}

// rounded box drawing characters
const (
	boxH  = '─'
	boxV  = '│'
	boxTL = '╭'
	boxTR = '╮'
	boxBL = '╰'
	boxBR = '╯'
)

// AddPadding surrounds the canvas with blank cells
func (c Canvas) AddPadding(p Padding) Canvas {
	p.Top, p.Bottom = max(p.Top, 0), max(p.Bottom, 0)
	p.Left, p.Right = max(p.Left, 0), max(p.Right, 0)
	if p == (Padding{}) {
		return c.clone()
	}
	out := New(c.width+p.Left+p.Right, c.height+p.Top+p.Bottom)
	if out.IsEmpty() {
		return out
	}
	for y := 0; y < c.height; y++ {
		dst := (y+p.Top)*out.width + p.Left
		copy(out.cells[dst:dst+c.width], c.cells[y*c.width:(y+1)*c.width])
	}
	return out
}

// AddBorder draws box lines on the requested sides
// A corner glyph is placed only where both adjacent sides are requested
func (c Canvas) AddBorder(s Sides) Canvas {
	out := c.AddPadding(Padding{
		Top:    boolInt(s.Top),
		Bottom: boolInt(s.Bottom),
		Left:   boolInt(s.Left),
		Right:  boolInt(s.Right),
	})
	w, h := out.width, out.height

	if s.Top {
		for x := 0; x < w; x++ {
			out.Set(x, 0, boxH)
		}
	}
	if s.Bottom {
		for x := 0; x < w; x++ {
			out.Set(x, h-1, boxH)
		}
	}
	if s.Left {
		for y := 0; y < h; y++ {
			out.Set(0, y, boxV)
		}
	}
	if s.Right {
		for y := 0; y < h; y++ {
			out.Set(w-1, y, boxV)
		}
	}

	if s.Top && s.Left {
		out.Set(0, 0, boxTL)
	}
	if s.Top && s.Right {
		out.Set(w-1, 0, boxTR)
	}
	if s.Bottom && s.Left {
		out.Set(0, h-1, boxBL)
	}
	if s.Bottom && s.Right {
		out.Set(w-1, h-1, boxBR)
	}
	return out
}

// MergeVertically stacks other below c, padding the narrower one left and right
func (c Canvas) MergeVertically(other Canvas, align Alignment) Canvas {
	if other.IsEmpty() {
		return c.clone()
	}
	if c.IsEmpty() {
		return other.clone()
	}

	width := max(c.width, other.width)
	l1, r1 := align.split(width - c.width)
	l2, r2 := align.split(width - other.width)
	top := c.AddPadding(Padding{Left: l1, Right: r1})
	bottom := other.AddPadding(Padding{Left: l2, Right: r2})

	out := Canvas{
		cells:  make([]Cell, 0, width*(c.height+other.height)),
		width:  width,
		height: c.height + other.height,
	}
	out.cells = append(out.cells, top.cells...)
	out.cells = append(out.cells, bottom.cells...)
	out.check()
	return out
}

// MergeHorizontally places other to the right of c, padding the shorter one top and bottom
func (c Canvas) MergeHorizontally(other Canvas, align Alignment) Canvas {
	if other.IsEmpty() {
		return c.clone()
	}
	if c.IsEmpty() {
		return other.clone()
	}

	height := max(c.height, other.height)
	t1, b1 := align.split(height - c.height)
	t2, b2 := align.split(height - other.height)
	left := c.AddPadding(Padding{Top: t1, Bottom: b1})
	right := other.AddPadding(Padding{Top: t2, Bottom: b2})

	out := Canvas{
		cells:  make([]Cell, 0, (c.width+other.width)*height),
		width:  c.width + other.width,
		height: height,
	}
	for y := 0; y < height; y++ {
		out.cells = append(out.cells, left.cells[y*left.width:(y+1)*left.width]...)
		out.cells = append(out.cells, right.cells[y*right.width:(y+1)*right.width]...)
	}
	out.check()
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
