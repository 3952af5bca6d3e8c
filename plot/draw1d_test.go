package plot

import (
	"errors"
	"math"
	"math/big"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/termplot/numfmt"
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

func r(n int64) *big.Rat { return big.NewRat(n, 1) }

func lines(t *testing.T, g *Graph) []string {
	t.Helper()
	out, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return strings.Split(out, "\n")
}

func TestDrawWithoutDataFails(t *testing.T) {
	_, err := New().Draw()
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
	_, err = Set1D(New(), []int{}).Draw()
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("empty series: err = %v, want ErrNoData", err)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	g := Set1D(New(), []int{1, 2, 3}).
		SetYRange(r(3), r(1)).
		AddLabeledInterval(5, 2, "backwards")

	err := g.Validate()
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("missing ErrInvalidRange in %v", err)
	}
	if !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("missing ErrInvalidInterval in %v", err)
	}
	if _, drawErr := g.Draw(); drawErr == nil {
		t.Error("Draw should refuse an invalid configuration")
	}
}

func TestSmallPlotExact(t *testing.T) {
	g := Set1D(New(), []int{0, 4}).
		SetPlotWidth(4).
		SetPlotHeight(4).
		SetPrettyY(nil)

	want := []string{
		"4 │  ██",
		"  │  ██",
		"2 │  ██",
		"  │  ██",
		"0 ╰────",
		"   0   ",
		"     1 ",
	}
	if diff := cmp.Diff(want, lines(t, g)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawColumnQuarterGlyphs(t *testing.T) {
	tests := []struct {
		value *big.Rat
		want  string
	}{
		{big.NewRat(4, 1), "████"},
		{big.NewRat(7, 2), "▄███"},
		{big.NewRat(11, 4), " ▆██"},
		{big.NewRat(5, 4), "  ▂█"},
		{big.NewRat(0, 1), "    "},
		{big.NewRat(-1, 1), "    "},
	}

	g := New()
	sp := subplot{height: 4, yMin: r(0), yMax: r(4), overflow: true}
	for _, tt := range tests {
		t.Run(tt.value.RatString(), func(t *testing.T) {
			area := render.New(1, 4)
			g.drawColumn(&area, 0, tt.value, sp, r(4))
			got := strings.ReplaceAll(area.String(), "\n", "")
			if got != tt.want {
				t.Errorf("column = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverflowMarker(t *testing.T) {
	g := Set1D(New(), []int{0, 1, 1, 0, 2, 0, 1, 2, 0, 0, 0, 1, 0, 1000}).
		SetYRange(r(-1), r(3)).
		SetPlotHeight(20)

	ls := lines(t, g)
	if got := strings.Count(ls[0], "^"); got != 5 {
		t.Fatalf("top row has %d overflow markers, want 5: %q", got, ls[0])
	}
	if !strings.HasSuffix(ls[0], "^^^^^") {
		t.Errorf("overflow should be on the rightmost columns: %q", ls[0])
	}
	for i := 1; i < 20; i++ {
		if !strings.HasSuffix(ls[i], "█████") {
			t.Errorf("row %d should continue the overflowing bar: %q", i, ls[i])
		}
	}
	for _, l := range ls {
		if strings.Trim(l, "~") == "" {
			t.Fatalf("skip range outside the explicit bounds must be discarded")
		}
	}
}

// yLabelColumn splits each framed row at its axis rune and returns the labels
func yLabelColumn(ls []string) []string {
	var out []string
	for _, l := range ls {
		i := strings.IndexAny(l, "│╰")
		if i < 0 {
			break
		}
		out = append(out, strings.TrimSpace(l[:i]))
	}
	return out
}

func TestYLabelsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	values := make([]float64, 60)
	for i := range values {
		values[i] = rng.Float64()*200 - 50
	}

	for _, pretty := range []*big.Rat{nil, big.NewRat(1, 2), r(10)} {
		g := Set1D(New(), values).SetPlotHeight(15).SetPlotWidth(60).SetYLabelMargin(1).SetPrettyY(pretty)
		labels := yLabelColumn(lines(t, g))
		if len(labels) != 16 {
			t.Fatalf("pretty %v: %d label rows, want 16", pretty, len(labels))
		}

		var prev *big.Rat
		for i, l := range labels {
			v, ok := new(big.Rat).SetString(l)
			if !ok {
				t.Fatalf("row %d: label %q is not a number", i, l)
			}
			if prev != nil && v.Cmp(prev) > 0 {
				t.Errorf("pretty %v: row %d label %s above row %d label %s", pretty, i, l, i-1, prev.RatString())
			}
			prev = v
		}
	}
}

func TestPrettySnapping(t *testing.T) {
	g := Set1D(New(), []float64{0.3, 7.9}).SetPlotHeight(8).SetPlotWidth(8).SetYLabelMargin(1)
	labels := yLabelColumn(lines(t, g))
	want := []string{"8", "7", "6", "5", "4", "3", "2", "1", "0"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("snapped labels mismatch (-want +got):\n%s", diff)
	}

	// explicit bounds are never snapped
	g = Set1D(New(), []float64{0.3, 7.9}).SetPlotHeight(8).SetPlotWidth(8).SetYLabelMargin(8).
		SetYRange(big.NewRat(3, 10), big.NewRat(83, 10))
	labels = yLabelColumn(lines(t, g))
	if labels[0] != "8.3" || labels[8] != "0.3" {
		t.Errorf("explicit range labels = %q", labels)
	}
}

func TestAutomaticSkipRange(t *testing.T) {
	data := []int{1, 2, 3, 2, 1, 2, 3, 1, 2, 3, 1000}
	g := Set1D(New(), data).SetPlotHeight(24).SetPlotWidth(22)

	ls := lines(t, g)
	separators := 0
	for _, l := range ls {
		if l != "" && strings.Trim(l, "~") == "" {
			separators++
		}
	}
	if separators != 1 {
		t.Fatalf("want exactly one separator row, got %d:\n%s", separators, strings.Join(ls, "\n"))
	}
	for _, l := range ls {
		if w := terminal.CountVisibleChars(l); w != terminal.CountVisibleChars(ls[0]) {
			t.Fatalf("ragged output: %q", l)
		}
	}

	st := computeStats(Set1D(New(), data).data.(series))
	from, to, ok := g.skipRange(st, len(data), 24, st.min, st.max)
	if !ok {
		t.Fatal("expected an automatic skip range")
	}
	for _, v := range data {
		if rv := r(int64(v)); rv.Cmp(from) >= 0 && rv.Cmp(to) <= 0 {
			t.Errorf("value %d lies inside the skip range [%s, %s]", v, from.RatString(), to.RatString())
		}
	}
	if from.Cmp(big.NewRat(25, 8)) != 0 {
		t.Errorf("from = %s, want 25/8", from.RatString())
	}
}

func TestSkipRangeSuppressed(t *testing.T) {
	data := []int{1, 2, 3, 2, 1, 2, 3, 1, 2, 3, 1000}
	tests := []struct {
		name string
		g    *Graph
	}{
		{"short plot", Set1D(New(), data).SetPlotHeight(18)},
		{"disabled", Set1D(New(), data).SetPlotHeight(24).SetSkipRange(SkipNone())},
		{"skip skip", Set1D(New(), data).SetPlotHeight(24).SetSkipSkipRange(r(0), nil)},
		{"manual outside", Set1D(New(), data).SetPlotHeight(24).SetSkipRange(SkipBetween(r(-5), r(10)))},
		{"manual reversed", Set1D(New(), data).SetPlotHeight(24).SetSkipRange(SkipBetween(r(10), r(5)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, l := range lines(t, tt.g) {
				if l != "" && strings.Trim(l, "~") == "" {
					t.Fatalf("unexpected separator row")
				}
			}
		})
	}
}

func TestManualSkipRange(t *testing.T) {
	data := []int{1, 2, 3, 2, 1, 2, 3, 1, 2, 3, 1000}
	g := Set1D(New(), data).SetPlotHeight(24).SetSkipRange(SkipBetween(r(10), r(900)))
	found := false
	for _, l := range lines(t, g) {
		if l != "" && strings.Trim(l, "~") == "" {
			found = true
		}
	}
	if !found {
		t.Error("manual skip range inside the data range should split the plot")
	}
}

func TestSplitHeights(t *testing.T) {
	tests := []struct {
		h, below, above int
		upper, lower    int
	}{
		{25, 10, 1, 8, 16},
		{25, 1, 10, 16, 8},
		{25, 5, 5, 12, 12},
		{25, 6, 5, 12, 12},
		{20, 3, 2, 6, 13},
	}
	for _, tt := range tests {
		u, l := splitHeights(tt.h, tt.below, tt.above)
		if u != tt.upper || l != tt.lower {
			t.Errorf("splitHeights(%d, %d, %d) = %d, %d; want %d, %d", tt.h, tt.below, tt.above, u, l, tt.upper, tt.lower)
		}
		if u+l != tt.h-1 {
			t.Errorf("heights %d + %d do not leave one separator row of %d", u, l, tt.h)
		}
	}
}

func TestInferRange(t *testing.T) {
	st := computeStats([]Point{{Value: r(2)}, {Value: r(5)}})
	tests := []struct {
		name   string
		lo, hi *big.Rat
		wantLo int64
		wantHi int64
	}{
		{"both inferred", nil, nil, 2, 5},
		{"min only", r(0), nil, 0, 5},
		{"min above data", r(9), nil, 9, 10},
		{"max only", nil, r(7), 2, 7},
		{"max below data", nil, r(1), 0, 1},
		{"equal bounds", r(4), r(4), 4, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New().SetYRange(tt.lo, tt.hi)
			lo, hi := g.inferRange(st)
			if lo.Cmp(r(tt.wantLo)) != 0 || hi.Cmp(r(tt.wantHi)) != 0 {
				t.Errorf("got [%s, %s], want [%d, %d]", lo.RatString(), hi.RatString(), tt.wantLo, tt.wantHi)
			}
		})
	}

	flat := computeStats([]Point{{Value: r(3)}, {Value: r(3)}})
	lo, hi := New().inferRange(flat)
	if lo.Cmp(r(2)) != 0 || hi.Cmp(r(4)) != 0 {
		t.Errorf("flat series range = [%s, %s], want [2, 4]", lo.RatString(), hi.RatString())
	}
}

func TestDownsamplePreservesExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pts := make([]Point, 1000)
	for i := range pts {
		pts[i] = Point{Label: "", Value: r(rng.Int63n(10000) - 5000)}
	}
	const width = 20
	out, err := downsample(pts, width)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != width {
		t.Fatalf("len = %d, want %d", len(out), width)
	}

	half := width / 2
	for b := 0; b < half; b++ {
		lo, hi := b*len(pts)/half, (b+1)*len(pts)/half
		minV, maxV := pts[lo].Value, pts[lo].Value
		for _, p := range pts[lo:hi] {
			if p.Value.Cmp(minV) < 0 {
				minV = p.Value
			}
			if p.Value.Cmp(maxV) > 0 {
				maxV = p.Value
			}
		}
		pair := []*big.Rat{out[2*b].Value, out[2*b+1].Value}
		hasMin := pair[0].Cmp(minV) == 0 || pair[1].Cmp(minV) == 0
		hasMax := pair[0].Cmp(maxV) == 0 || pair[1].Cmp(maxV) == 0
		if !hasMin || !hasMax {
			t.Errorf("bucket %d lost an extreme: min %s max %s, kept %s %s",
				b, minV.RatString(), maxV.RatString(), pair[0].RatString(), pair[1].RatString())
		}
	}
}

func TestDownsampleParallelMatchesSequential(t *testing.T) {
	pts := make([]Point, parallelThreshold+7)
	for i := range pts {
		pts[i] = Point{Value: r(int64((i * 7919) % 1009))}
	}
	par, err := downsample(pts, 64)
	if err != nil {
		t.Fatal(err)
	}

	seq := make([]Point, 64)
	for i := 0; i < 32; i++ {
		fillBucket(pts, seq, i, 32)
	}
	for i := range seq {
		if par[i].Value.Cmp(seq[i].Value) != 0 {
			t.Fatalf("slot %d: parallel %s, sequential %s", i, par[i].Value.RatString(), seq[i].Value.RatString())
		}
	}
}

func TestOddWidthAdjustedWhenDownsampling(t *testing.T) {
	var logged []string
	logger := funcr.New(func(prefix, args string) { logged = append(logged, args) }, funcr.Options{})

	values := make([]int, 100)
	g := Set1D(New(), values).SetPlotWidth(7).SetLogger(logger)
	_, _, w, err := g.draw1D(g.data.(series))
	if err != nil {
		t.Fatal(err)
	}
	if w != 8 {
		t.Errorf("plot width = %d, want 8", w)
	}
	if len(logged) == 0 || !strings.Contains(strings.Join(logged, " "), "odd plot width") {
		t.Errorf("expected a log entry, got %q", logged)
	}
}

func TestBlockWidthAndClamping(t *testing.T) {
	g := Set1D(New(), []int{1, 2, 3}).SetBlockWidth(2)
	if _, _, w, _ := g.draw1D(g.data.(series)); w != 6 {
		t.Errorf("block width 2 over 3 points: width %d, want 6", w)
	}

	g = Set1D(New(), []int{1, 2, 3}).SetPlotWidth(1).SetPlotHeight(0)
	c, err := g.Draw()
	if err != nil {
		t.Fatal(err)
	}
	if c.Height() < minPlotSize+1 {
		t.Errorf("clamped plot is only %d rows tall", c.Height())
	}
}

func TestSet1DVariants(t *testing.T) {
	var logged int
	logger := funcr.New(func(prefix, args string) { logged++ }, funcr.Options{})

	g := New().SetLogger(logger)
	Set1D(g, []float64{1.5, math.NaN(), -2})
	s := g.data.(series)
	if s[1].Value.Sign() != 0 || s[0].Label != "0" || s[2].Label != "2" {
		t.Errorf("unexpected series %+v", s)
	}
	if logged != 1 {
		t.Errorf("logged %d replacements, want 1", logged)
	}

	g.Set1DStrings([]string{"0.1", "oops"})
	s = g.data.(series)
	if s[0].Value.Cmp(big.NewRat(1, 10)) != 0 || s[1].Value.Sign() != 0 {
		t.Errorf("strings parsed to %s, %s", s[0].Value.RatString(), s[1].Value.RatString())
	}

	g.Set1DLabeledData([]Point{{Label: "mon", Value: r(3)}, {Label: "tue"}})
	s = g.data.(series)
	if s[0].Label != "mon" || s[1].Value == nil {
		t.Errorf("labeled data %+v", s)
	}

	Set1D(g, []uint64{1 << 63})
	if got := g.data.(series)[0].Value.Num().String(); got != "9223372036854775808" {
		t.Errorf("uint64 value = %s", got)
	}

	Set1D(g, []time.Duration{1, 5, 9})
	checkValues(t, g, 1, 5, 9)

	Set1D(g, []level{2, 4})
	checkValues(t, g, 2, 4)

	Set1D(g, []float32{-0.5})
	if got := g.data.(series)[0].Value; got.Cmp(big.NewRat(-1, 2)) != 0 {
		t.Errorf("float32 value = %s", got.RatString())
	}
}

// level prints a name, not its number
type level uint8

func (l level) String() string { return "level" }

func checkValues(t *testing.T, g *Graph, want ...int64) {
	t.Helper()
	s := g.data.(series)
	if len(s) != len(want) {
		t.Fatalf("len = %d, want %d", len(s), len(want))
	}
	for i, w := range want {
		if s[i].Value.Cmp(r(w)) != 0 {
			t.Errorf("value %d = %s, want %d", i, s[i].Value.RatString(), w)
		}
	}
}

func TestLabelsWithLineBreaksStayRectangular(t *testing.T) {
	g := New().Set1DLabeledData([]Point{
		{Label: "p\nq", Value: r(1)},
		{Label: "m", Value: r(2)},
		{Label: "x\ty", Value: r(3)},
		{Label: "n", Value: r(4)},
	}).
		SetPlotWidth(8).SetPlotHeight(3).SetPrettyY(nil).
		SetYAxisLabel("a\nb").
		SetXAxisLabel("c\rd").
		AddLabeledInterval(0, 3, "i\nj")

	out, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertRectangle(t, out)
	for _, want := range []string{"a b", "c d", "p q"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestWideLabelsStayRectangular(t *testing.T) {
	g := New().Set1DLabeledData([]Point{
		{Label: "월", Value: r(1)},
		{Label: "화", Value: r(2)},
		{Label: "수", Value: r(3)},
		{Label: "목", Value: r(4)},
	}).
		SetPlotWidth(8).SetPlotHeight(3).SetPrettyY(nil).
		SetYAxisLabel("세로").
		SetXAxisLabel("가로축").
		AddLabeledInterval(0, 3, "구간")

	out, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertRectangle(t, out)
}

func TestRenderColors(t *testing.T) {
	g := Set1D(New(), []int{1, 3, 2}).
		SetPlotWidth(3).SetPlotHeight(3).
		SetPrimaryColor(terminal.Red).
		SetTitle("colored").SetTitleColor(terminal.Gold).
		SetColorMode(terminal.TerminalFg())
	out, err := g.Render()
	if err != nil {
		t.Fatal(err)
	}
	mode := terminal.TerminalFg()
	if !strings.Contains(out, mode.StartMarker(terminal.Red)+"█") {
		t.Errorf("bars are not red: %q", out)
	}
	if !strings.Contains(out, mode.StartMarker(terminal.Gold)+"colored") {
		t.Errorf("title is not gold: %q", out)
	}

	widths := map[int]bool{}
	for _, l := range strings.Split(out, "\n") {
		widths[terminal.CountVisibleChars(l)] = true
	}
	if len(widths) != 1 {
		t.Errorf("colored output is not a rectangle: widths %v", widths)
	}
}

func TestLayers(t *testing.T) {
	g := Set1D(New(), []int{1, 2, 3, 4}).
		SetPlotWidth(4).SetPlotHeight(3).SetPrettyY(nil).
		SetTitle("T").
		SetYAxisLabel("y").
		SetXAxisLabel("x axis").
		SetPaddings(render.Padding{Top: 1, Left: 2})

	ls := lines(t, g)
	if strings.TrimSpace(ls[0]) != "" {
		t.Errorf("first row should be padding: %q", ls[0])
	}
	if strings.TrimSpace(ls[1]) != "T" {
		t.Errorf("second row should be the title: %q", ls[1])
	}
	if strings.TrimSpace(ls[2]) != "y" {
		t.Errorf("third row should be the y axis label: %q", ls[2])
	}
	last := ls[len(ls)-1]
	if !strings.HasSuffix(last, "x axis") {
		t.Errorf("last row should end with the x axis label: %q", last)
	}
	if !strings.HasPrefix(ls[3], "  ") {
		t.Errorf("left padding missing: %q", ls[3])
	}

	ls = lines(t, g.AddLabeledInterval(0, 3, "iv"))
	if !strings.HasSuffix(ls[len(ls)-2], "x axis") {
		t.Errorf("x axis label should sit above the interval rows: %q", ls[len(ls)-2])
	}
	if !strings.Contains(ls[len(ls)-1], "<──>") {
		t.Errorf("interval row should be last: %q", ls[len(ls)-1])
	}
}

func TestBigTitle(t *testing.T) {
	c := DefaultBanner("ab")
	if diff := cmp.Diff("╭─────╮\n│ A B │\n╰─────╯", c.String()); diff != "" {
		t.Errorf("banner mismatch (-want +got):\n%s", diff)
	}

	called := false
	g := Set1D(New(), []int{1, 2}).SetTitle("big").SetBigTitle(true).SetBanner(func(s string) render.Canvas {
		called = true
		return render.FromText("["+s+"]", render.AlignFirst, terminal.None())
	})
	ls := lines(t, g)
	if !called || strings.TrimSpace(ls[0]) != "[big]" {
		t.Errorf("custom banner not used: %q", ls[0])
	}
}

func TestCustomYLabelFormatter(t *testing.T) {
	g := Set1D(New(), []int{0, 3000}).SetPlotWidth(4).SetPlotHeight(3).SetPrettyY(nil).
		SetYLabelMargin(3).
		SetYLabelFormatter(numfmt.FormatterFunc(func(v *big.Rat) string { return "<" + v.RatString() + ">" }))
	labels := yLabelColumn(lines(t, g))
	if labels[0] != "<3000>" || labels[3] != "<0>" {
		t.Errorf("labels = %q", labels)
	}
}
