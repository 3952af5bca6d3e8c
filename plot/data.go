package plot

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/lixenwraith/termplot/numfmt"
)

// Point is one labeled 1-D sample
type Point struct {
	Label string
	Value *big.Rat
}

// Glyph places a rune at a 2-D cell; row 0 is the top
type Glyph struct {
	X, Y int
	Rune rune
}

// dataset is the tagged union of drawable data; a nil dataset means not configured
type dataset interface {
	kind() string
}

type series []Point

func (series) kind() string { return "1d" }

type grid struct {
	glyphs  []Glyph
	xLabels []string
	yLabels []string
	err     error // load failure, see Set2DHighResolution
}

func (*grid) kind() string { return "2d" }

// Number is any built-in numeric type accepted by Set1D
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Set1D loads native numbers, labeled by index from 0
// NaN becomes 0 and infinities become ±MaxFloat64
func Set1D[T Number](g *Graph, values []T) *Graph {
	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = Point{Label: strconv.Itoa(i), Value: g.toRat(i, v)}
	}
	g.data = series(pts)
	return g
}

// toRat converts by underlying kind so named types such as time.Duration keep
// their numeric value whatever their String method prints
func (g *Graph) toRat(i int, v any) *big.Rat {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Rat).SetInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return g.floatRat(i, rv.Float())
	}
	return new(big.Rat)
}

func (g *Graph) floatRat(i int, f float64) *big.Rat {
	r, replaced := numfmt.FromFloat(f)
	if replaced {
		g.log.Info("replaced non-finite input", "index", i, "value", f, "with", r.FloatString(0))
	}
	return r
}

// Set1DData loads exact values, labeled by index from 0
func (g *Graph) Set1DData(values []*big.Rat) *Graph {
	pts := make([]Point, len(values))
	for i, v := range values {
		if v == nil {
			v = new(big.Rat)
		}
		pts[i] = Point{Label: strconv.Itoa(i), Value: new(big.Rat).Set(v)}
	}
	g.data = series(pts)
	return g
}

// Set1DStrings loads decimal strings losslessly; an unparsable entry reads as 0
func (g *Graph) Set1DStrings(values []string) *Graph {
	pts := make([]Point, len(values))
	for i, s := range values {
		r, err := numfmt.Parse(s)
		if err != nil {
			g.log.Info("unparsable value read as zero", "index", i, "value", s)
			r = new(big.Rat)
		}
		pts[i] = Point{Label: strconv.Itoa(i), Value: r}
	}
	g.data = series(pts)
	return g
}

// Set1DLabeledData loads labeled exact values
func (g *Graph) Set1DLabeledData(points []Point) *Graph {
	pts := make([]Point, len(points))
	for i, p := range points {
		v := p.Value
		if v == nil {
			v = new(big.Rat)
		}
		pts[i] = Point{Label: p.Label, Value: new(big.Rat).Set(v)}
	}
	g.data = series(pts)
	return g
}

// Set2DData loads a sparse character grid. The plot size becomes
// len(xLabels) x len(yLabels); an empty label leaves its column or row unlabeled
func (g *Graph) Set2DData(glyphs []Glyph, xLabels, yLabels []string) *Graph {
	g.setGrid(glyphs, xLabels, yLabels, nil)
	return g
}

// setGrid replaces the data; err is a load failure reported by Validate until
// the data is replaced again
func (g *Graph) setGrid(glyphs []Glyph, xLabels, yLabels []string, err error) {
	g.data = &grid{
		err:     err,
		glyphs:  append([]Glyph(nil), glyphs...),
		xLabels: append([]string(nil), xLabels...),
		yLabels: append([]string(nil), yLabels...),
	}
	g.plotWidth = len(xLabels)
	g.plotHeight = len(yLabels)
}

// quadrants maps a 2x2 block, bits top-left top-right bottom-left bottom-right
// from most to least significant, to its block glyph
var quadrants = [16]rune{
	0, '▗', '▖', '▄',
	'▝', '▐', '▞', '▟',
	'▘', '▚', '▌', '▙',
	'▀', '▜', '▛', '█',
}

// Set2DHighResolution loads a dot bitmap at twice the plot resolution:
// dots must have 2*len(yLabels) rows of 2*len(xLabels) columns each.
// Every 2x2 block becomes one quadrant glyph; empty blocks stay blank
func (g *Graph) Set2DHighResolution(dots [][]bool, xLabels, yLabels []string) *Graph {
	w, h := len(xLabels), len(yLabels)
	if len(dots) != 2*h {
		g.setGrid(nil, xLabels, yLabels, fmt.Errorf("%w: bitmap has %d rows, want %d", ErrDimensionMismatch, len(dots), 2*h))
		return g
	}
	for y, row := range dots {
		if len(row) != 2*w {
			g.setGrid(nil, xLabels, yLabels, fmt.Errorf("%w: bitmap row %d has %d columns, want %d", ErrDimensionMismatch, y, len(row), 2*w))
			return g
		}
	}

	var glyphs []Glyph
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := 0
			if dots[2*y][2*x] {
				idx |= 8
			}
			if dots[2*y][2*x+1] {
				idx |= 4
			}
			if dots[2*y+1][2*x] {
				idx |= 2
			}
			if dots[2*y+1][2*x+1] {
				idx |= 1
			}
			if idx != 0 {
				glyphs = append(glyphs, Glyph{X: x, Y: y, Rune: quadrants[idx]})
			}
		}
	}
	return g.Set2DData(glyphs, xLabels, yLabels)
}

// dataLen is the index space intervals refer to
func (g *Graph) dataLen() int {
	switch d := g.data.(type) {
	case series:
		return len(d)
	case *grid:
		return len(d.xLabels)
	}
	return 0
}
