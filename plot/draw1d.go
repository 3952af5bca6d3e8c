package plot

import (
	"math/big"

	"github.com/lixenwraith/termplot/render"
)

// Bar glyphs by quarter-cell fill of the transition row, fullest first
var barGlyphs = [4]rune{'█', '▆', '▄', '▂'}

const (
	fullBlock    = '█'
	overflowMark = '^'
	separator    = '~'
)

// subplot is one independently scaled 1-D panel
type subplot struct {
	height      int
	yMin, yMax  *big.Rat
	bottomAxis  bool
	overflow    bool // mark values above yMax
	xLabels     bool
	labelOffset int  // first labeled row
}

// draw1D returns the framed plot, the column where the plot area starts and its width
func (g *Graph) draw1D(data series) (render.Canvas, int, int, error) {
	pts := []Point(data)
	w, h := g.plotSize(len(pts))

	if len(pts) > 2*w {
		if w%2 == 1 {
			g.log.Info("odd plot width cannot be downsampled, adjusting", "width", w, "adjusted", w+1)
			w++
		}
		var err error
		if pts, err = downsample(pts, w); err != nil {
			return render.Canvas{}, 0, 0, err
		}
	}

	st := computeStats(pts)
	yMin, yMax := g.inferRange(st)

	if from, to, ok := g.skipRange(st, len(pts), h, yMin, yMax); ok {
		below, above := st.countOutside(from, to)
		upperH, lowerH := splitHeights(h, below, above)
		upper, left := g.panel(pts, w, subplot{
			height: upperH, yMin: to, yMax: yMax, overflow: true,
		})
		lower, _ := g.panel(pts, w, subplot{
			height: lowerH, yMin: yMin, yMax: from, bottomAxis: true, xLabels: true, labelOffset: 1,
		})

		// y labels of the two panels may differ in width; the axes line up on the right
		width := max(upper.Width(), lower.Width())
		sep := render.New(width, 1)
		for x := 0; x < width; x++ {
			sep.Set(x, 0, separator)
		}
		body := upper.MergeVertically(sep, render.AlignLast).MergeVertically(lower, render.AlignLast)
		left += width - upper.Width()
		return body, left, w, nil
	}

	yMin, yMax = g.snap(yMin, yMax, h)
	body, left := g.panel(pts, w, subplot{
		height: h, yMin: yMin, yMax: yMax, bottomAxis: true, overflow: true, xLabels: true,
	})
	return body, left, w, nil
}

// inferRange fills unset bounds from the data. A single explicit bound that already
// excludes every value is extended by 1 in the uncovered direction; an empty span
// is widened by 1
func (g *Graph) inferRange(st stats) (yMin, yMax *big.Rat) {
	one := big.NewRat(1, 1)
	switch {
	case g.yMin == nil && g.yMax == nil:
		yMin, yMax = new(big.Rat).Set(st.min), new(big.Rat).Set(st.max)
		if yMin.Cmp(yMax) == 0 {
			yMin.Sub(yMin, one)
			yMax.Add(yMax, one)
		}
	case g.yMax == nil:
		yMin, yMax = new(big.Rat).Set(g.yMin), new(big.Rat).Set(st.max)
		if yMax.Cmp(yMin) <= 0 {
			yMax.Add(yMin, one)
		}
	case g.yMin == nil:
		yMin, yMax = new(big.Rat).Set(st.min), new(big.Rat).Set(g.yMax)
		if yMin.Cmp(yMax) >= 0 {
			yMin.Sub(yMax, one)
		}
	default:
		yMin, yMax = new(big.Rat).Set(g.yMin), new(big.Rat).Set(g.yMax)
		if yMin.Cmp(yMax) == 0 {
			g.log.Info("y_min equals y_max, widening the range", "value", yMin.RatString())
			yMax.Add(yMax, one)
		}
	}
	return yMin, yMax
}

// skipRange decides the cut-out value range, if any
func (g *Graph) skipRange(st stats, n, h int, yMin, yMax *big.Rat) (from, to *big.Rat, ok bool) {
	if h <= skipMinHeight || n < 2 {
		return nil, nil, false
	}

	switch g.skip.Policy {
	case SkipAutomatic:
		from, to, ok = st.autoSkip(yMin, yMax)
		if !ok {
			return nil, nil, false
		}
		if g.skipSkip.contains(from, to) {
			g.log.V(1).Info("automatic skip range suppressed", "from", from.RatString(), "to", to.RatString())
			return nil, nil, false
		}
	case SkipManual:
		from, to = g.skip.From, g.skip.To
		if from == nil || to == nil || from.Cmp(to) >= 0 {
			g.log.Info("ignoring malformed skip range")
			return nil, nil, false
		}
	default:
		return nil, nil, false
	}

	if from.Cmp(yMin) < 0 || to.Cmp(yMax) > 0 {
		g.log.Info("skip range outside the plotted range, ignoring",
			"from", from.RatString(), "to", to.RatString(), "yMin", yMin.RatString(), "yMax", yMax.RatString())
		return nil, nil, false
	}
	return from, to, true
}

// snap moves inferred bounds onto multiples of the pretty granularity so every
// row step is a multiple of it. A range already within 1% of the snapped span
// is left alone
func (g *Graph) snap(yMin, yMax *big.Rat, h int) (*big.Rat, *big.Rat) {
	if g.prettyY == nil || g.yMin != nil || g.yMax != nil {
		return yMin, yMax
	}

	gran := g.prettyY
	newMin := new(big.Rat).Mul(floorRat(new(big.Rat).Quo(yMin, gran)), gran)

	step := new(big.Rat).Mul(gran, big.NewRat(int64(h), 1))
	span := new(big.Rat).Sub(yMax, newMin)
	newSpan := new(big.Rat).Mul(ceilRat(new(big.Rat).Quo(span, step)), step)
	if newSpan.Sign() == 0 {
		return yMin, yMax
	}

	oldSpan := new(big.Rat).Sub(yMax, yMin)
	if new(big.Rat).Quo(oldSpan, newSpan).Cmp(big.NewRat(99, 100)) >= 0 {
		return yMin, yMax
	}
	return newMin, new(big.Rat).Add(newMin, newSpan)
}

// panel renders one framed sub-plot and returns it with the plot area's left column
func (g *Graph) panel(pts []Point, w int, sp subplot) (render.Canvas, int) {
	area := render.New(w, sp.height)
	span := new(big.Rat).Sub(sp.yMax, sp.yMin)
	for x := 0; x < w; x++ {
		g.drawColumn(&area, x, pts[x*len(pts)/w].Value, sp, span)
	}

	rows := sp.height
	if sp.bottomAxis {
		rows++
	}
	labels := make([]string, rows)
	margin := max(g.yLabelMargin, 1)
	step := new(big.Rat).Quo(span, big.NewRat(int64(sp.height), 1))
	for i := 0; i < rows; i++ {
		if i%margin != sp.labelOffset%margin {
			continue
		}
		v := new(big.Rat).Mul(step, big.NewRat(int64(i), 1))
		v.Sub(sp.yMax, v)
		labels[i] = g.formatter.FormatLabel(v)
	}

	var xl render.Canvas
	if sp.xLabels {
		xl = placeXLabels(columnLabels(pts, w), w, g.xLabelMargin)
	}
	return frame(area, labels, sp.bottomAxis, xl)
}

// drawColumn fills column x for value v at quarter-cell resolution
func (g *Graph) drawColumn(area *render.Canvas, x int, v *big.Rat, sp subplot, span *big.Rat) {
	h := sp.height
	cell := render.Cell{Rune: fullBlock, Color: g.primaryColor}

	if v.Cmp(sp.yMax) > 0 {
		for y := 0; y < h; y++ {
			area.SetCell(x, y, cell)
		}
		if sp.overflow {
			area.SetCell(x, 0, render.Cell{Rune: overflowMark, Color: g.primaryColor})
		}
		return
	}
	if v.Cmp(sp.yMin) < 0 {
		return
	}

	// q counts quarter rows from the top down to the value
	q := new(big.Rat).Sub(sp.yMax, v)
	q.Mul(q, big.NewRat(int64(4*h), 1))
	q.Quo(q, span)
	quarters := int(floorRat(q).Num().Int64())
	row, frac := quarters/4, quarters%4
	if row >= h {
		return
	}
	area.SetCell(x, row, render.Cell{Rune: barGlyphs[frac], Color: g.primaryColor})
	for y := row + 1; y < h; y++ {
		area.SetCell(x, y, cell)
	}
}

// columnLabels proposes the label of each column whose sample differs from the
// previous column's
func columnLabels(pts []Point, w int) []xLabel {
	var out []xLabel
	prev := -1
	for x := 0; x < w; x++ {
		idx := x * len(pts) / w
		if idx == prev {
			continue
		}
		prev = idx
		if pts[idx].Label != "" {
			out = append(out, xLabel{col: x, text: pts[idx].Label})
		}
	}
	return out
}

// floorRat rounds toward negative infinity; Int.Div is Euclidean and the
// denominator is always positive
func floorRat(r *big.Rat) *big.Rat {
	return new(big.Rat).SetInt(new(big.Int).Div(r.Num(), r.Denom()))
}

// ceilRat rounds toward positive infinity
func ceilRat(r *big.Rat) *big.Rat {
	f := floorRat(r)
	if f.Cmp(r) != 0 {
		f.Add(f, big.NewRat(1, 1))
	}
	return f
}
