// Package plot lays numeric series out on character grids
package plot

import (
	"math/big"

	"github.com/go-logr/logr"

	"github.com/lixenwraith/termplot/numfmt"
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// Default layout
const (
	DefaultPlotWidth    = 80
	DefaultPlotHeight   = 28
	DefaultXLabelMargin = 2
	DefaultYLabelMargin = 2

	// minimum plot area on either axis
	minPlotSize = 3
	// skip ranges are only considered above this plot height
	skipMinHeight = 18
)

// DefaultPrettyY is the default y-label granularity
var DefaultPrettyY = big.NewRat(1, 2)

// Graph is a plot configuration. Build it with setters, then call Draw or Render once.
// Setters are not safe for concurrent use; Draw only reads
type Graph struct {
	data dataset

	yMin    *big.Rat
	yMax    *big.Rat
	prettyY *big.Rat

	plotWidth    int
	plotHeight   int
	blockWidth   int
	xLabelMargin int
	yLabelMargin int
	padding      render.Padding

	title      string
	xAxisLabel string
	yAxisLabel string
	bigTitle   bool
	banner     Banner

	skip     SkipRange
	skipSkip *window

	intervals []Interval

	colorMode    terminal.ColorMode
	primaryColor terminal.Color
	titleColor   terminal.Color
	formatter    numfmt.LabelFormatter

	log logr.Logger
}

// New returns a graph with default layout and no data
func New() *Graph {
	return &Graph{
		prettyY:      DefaultPrettyY,
		plotWidth:    DefaultPlotWidth,
		plotHeight:   DefaultPlotHeight,
		xLabelMargin: DefaultXLabelMargin,
		yLabelMargin: DefaultYLabelMargin,
		banner:       DefaultBanner,
		skip:         SkipAuto(),
		colorMode:    terminal.None(),
		formatter:    numfmt.Default,
		log:          logr.Discard(),
	}
}

// SetLogger routes non-fatal diagnostics (clamped sizes, discarded skip ranges,
// replaced non-finite inputs) to l
func (g *Graph) SetLogger(l logr.Logger) *Graph {
	g.log = l
	return g
}

// SetYMin fixes the lower bound; nil restores inference
func (g *Graph) SetYMin(v *big.Rat) *Graph {
	g.yMin = copyRat(v)
	return g
}

// SetYMax fixes the upper bound; nil restores inference
func (g *Graph) SetYMax(v *big.Rat) *Graph {
	g.yMax = copyRat(v)
	return g
}

func (g *Graph) SetYRange(lo, hi *big.Rat) *Graph {
	return g.SetYMin(lo).SetYMax(hi)
}

// SetPrettyY sets the granularity inferred bounds snap to; nil disables snapping
func (g *Graph) SetPrettyY(granularity *big.Rat) *Graph {
	if granularity != nil && granularity.Sign() <= 0 {
		g.log.Info("ignoring non-positive pretty granularity", "granularity", granularity.RatString())
		granularity = nil
	}
	g.prettyY = copyRat(granularity)
	return g
}

func (g *Graph) SetPlotWidth(w int) *Graph {
	g.plotWidth = w
	return g
}

func (g *Graph) SetPlotHeight(h int) *Graph {
	g.plotHeight = h
	return g
}

// SetBlockWidth makes each 1-D data point bw columns wide, overriding the plot width
// Zero restores the plot width
func (g *Graph) SetBlockWidth(bw int) *Graph {
	g.blockWidth = max(bw, 0)
	return g
}

// SetXLabelMargin sets the minimum blank gap between two x labels in one row
func (g *Graph) SetXLabelMargin(m int) *Graph {
	g.xLabelMargin = max(m, 0)
	return g
}

// SetYLabelMargin sets the row interval between y labels
func (g *Graph) SetYLabelMargin(m int) *Graph {
	g.yLabelMargin = max(m, 1)
	return g
}

func (g *Graph) SetPaddings(p render.Padding) *Graph {
	g.padding = p
	return g
}

func (g *Graph) SetPaddingTop(n int) *Graph {
	g.padding.Top = n
	return g
}

func (g *Graph) SetPaddingBottom(n int) *Graph {
	g.padding.Bottom = n
	return g
}

func (g *Graph) SetPaddingLeft(n int) *Graph {
	g.padding.Left = n
	return g
}

func (g *Graph) SetPaddingRight(n int) *Graph {
	g.padding.Right = n
	return g
}

func (g *Graph) SetTitle(title string) *Graph {
	g.title = title
	return g
}

func (g *Graph) SetTitleColor(c terminal.Color) *Graph {
	g.titleColor = c
	return g
}

func (g *Graph) SetXAxisLabel(label string) *Graph {
	g.xAxisLabel = label
	return g
}

func (g *Graph) SetYAxisLabel(label string) *Graph {
	g.yAxisLabel = label
	return g
}

// SetBigTitle renders the title through the banner instead of a single line
func (g *Graph) SetBigTitle(on bool) *Graph {
	g.bigTitle = on
	return g
}

// SetBanner replaces the big title renderer; nil restores DefaultBanner
func (g *Graph) SetBanner(b Banner) *Graph {
	if b == nil {
		b = DefaultBanner
	}
	g.banner = b
	return g
}

func (g *Graph) SetSkipRange(s SkipRange) *Graph {
	g.skip = s
	return g
}

// SetSkipSkipRange suppresses an automatic skip range lying entirely inside [from, to]
// A nil bound leaves that side open
func (g *Graph) SetSkipSkipRange(from, to *big.Rat) *Graph {
	g.skipSkip = &window{from: copyRat(from), to: copyRat(to)}
	return g
}

// AddLabeledInterval annotates data indices start..end, both inclusive
func (g *Graph) AddLabeledInterval(start, end int, label string) *Graph {
	g.intervals = append(g.intervals, Interval{Start: start, End: end, Label: label})
	return g
}

func (g *Graph) SetPrimaryColor(c terminal.Color) *Graph {
	g.primaryColor = c
	return g
}

func (g *Graph) SetColorMode(m terminal.ColorMode) *Graph {
	g.colorMode = m
	return g
}

// SetYLabelFormatter replaces numfmt.Default for 1-D y labels; nil restores it
func (g *Graph) SetYLabelFormatter(f numfmt.LabelFormatter) *Graph {
	if f == nil {
		f = numfmt.Default
	}
	g.formatter = f
	return g
}

// ColorMode returns the mode Render serializes with
func (g *Graph) ColorMode() terminal.ColorMode {
	return g.colorMode
}

func copyRat(v *big.Rat) *big.Rat {
	if v == nil {
		return nil
	}
	return new(big.Rat).Set(v)
}
