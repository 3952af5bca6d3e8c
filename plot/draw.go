package plot

import (
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// Render draws the graph and serializes it with the configured color mode
func (g *Graph) Render() (string, error) {
	c, err := g.Draw()
	if err != nil {
		return "", err
	}
	return c.Text(g.colorMode), nil
}

// Draw validates the configuration and lays out the plot with its labels,
// title, axis labels, interval rows and padding
func (g *Graph) Draw() (render.Canvas, error) {
	if err := g.Validate(); err != nil {
		return render.Canvas{}, err
	}

	var body render.Canvas
	var plotLeft, plotWidth int
	switch d := g.data.(type) {
	case series:
		var err error
		if body, plotLeft, plotWidth, err = g.draw1D(d); err != nil {
			return render.Canvas{}, err
		}
	case *grid:
		body, plotLeft, plotWidth = g.draw2D(d)
	}
	return g.decorate(body, plotLeft, plotWidth), nil
}

// decorate merges the optional layers onto the body. The title sits on top, the y
// axis label above the axis, the x axis label right-aligned below the plot,
// interval rows under that, and padding around everything. Layers tied to plot
// columns are merged before the title so a wide title cannot shift them
func (g *Graph) decorate(body render.Canvas, plotLeft, plotWidth int) render.Canvas {
	out := body

	if g.yAxisLabel != "" {
		row := render.New(out.Width(), 1)
		row.PutString(max(plotLeft-1, 0), 0, g.yAxisLabel, terminal.NoColor)
		out = row.MergeVertically(out, render.AlignFirst)
	}

	if g.xAxisLabel != "" {
		label := render.FromRunes(g.xAxisLabel, terminal.NoColor)
		if label.Width() > out.Width() {
			label = label.Crop(0, 0, out.Width(), 1)
		}
		out = out.MergeVertically(label, render.AlignLast)
	}

	if len(g.intervals) > 0 {
		rows := drawLabeledIntervals(g.intervals, plotWidth, g.dataLen(), g.primaryColor)
		if !rows.IsEmpty() {
			out = out.MergeVertically(rows.AddPadding(render.Padding{Left: plotLeft}), render.AlignFirst)
		}
	}

	if g.title != "" {
		out = g.titleCanvas().MergeVertically(out, render.AlignCenter)
	}

	return out.AddPadding(g.padding)
}

func (g *Graph) titleCanvas() render.Canvas {
	var t render.Canvas
	if g.bigTitle {
		t = g.banner(g.title)
	} else {
		t = render.FromText(g.title, render.AlignCenter, terminal.None())
	}
	if g.titleColor != terminal.NoColor {
		t = t.Colorize(g.titleColor)
	}
	return t
}

// plotSize resolves the requested plot area, clamped to the minimum size
func (g *Graph) plotSize(n int) (w, h int) {
	w, h = g.plotWidth, g.plotHeight
	if g.blockWidth > 0 && n > 0 {
		w = n * g.blockWidth
	}
	if w < minPlotSize {
		g.log.Info("plot width too small, adjusting", "width", w, "adjusted", minPlotSize)
		w = minPlotSize
	}
	if h < minPlotSize {
		g.log.Info("plot height too small, adjusting", "height", h, "adjusted", minPlotSize)
		h = minPlotSize
	}
	return w, h
}

// xLabel is a candidate x axis label starting at plot column col
type xLabel struct {
	col  int
	text string
}

// placeXLabels fills up to two rows left to right. A label goes into the first row
// where it starts at least margin cells after the previous label and ends before
// the right edge; labels fitting neither row are dropped. An unused second row
// is omitted
func placeXLabels(labels []xLabel, width, margin int) render.Canvas {
	if len(labels) == 0 {
		return render.Empty()
	}
	rows := render.New(width, 2)
	nextFree := [2]int{}
	used := [2]bool{}
	for _, l := range labels {
		w := render.StringCells(l.text)
		if w == 0 {
			continue
		}
		for r := 0; r < 2; r++ {
			if l.col >= nextFree[r] && l.col+w <= width {
				rows.PutString(l.col, r, l.text, terminal.NoColor)
				nextFree[r] = l.col + w + margin
				used[r] = true
				break
			}
		}
	}
	switch {
	case used[1]:
		return rows
	case used[0]:
		return rows.Crop(0, 0, width, 1)
	}
	return render.Empty()
}

// frame assembles the axes around a plot area: right-aligned y labels, one blank
// column, the left axis (and bottom axis when requested), and x labels below.
// yLabels holds one entry per frame row, axis row included; empty entries are blank.
// It returns the canvas and the column where the plot area starts
func frame(area render.Canvas, yLabels []string, bottomAxis bool, xLabels render.Canvas) (render.Canvas, int) {
	bordered := area.AddBorder(render.Sides{Left: true, Bottom: bottomAxis})

	labelW := 0
	for _, l := range yLabels {
		labelW = max(labelW, render.StringCells(l))
	}
	labels := render.New(labelW+1, bordered.Height())
	for y, l := range yLabels {
		if y >= bordered.Height() {
			break
		}
		labels.PutString(labelW-render.StringCells(l), y, l, terminal.NoColor)
	}

	out := labels.MergeHorizontally(bordered, render.AlignFirst)
	plotLeft := labels.Width() + 1
	if !xLabels.IsEmpty() {
		out = out.MergeVertically(xLabels.AddPadding(render.Padding{Left: plotLeft}), render.AlignFirst)
	}
	return out, plotLeft
}
