package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/termplot/terminal"
)

func solid(w, h int, r rune) Canvas {
	c := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.Set(x, y, r)
		}
	}
	return c
}

func assertRect(t *testing.T, name string, c Canvas) {
	t.Helper()
	if !c.IsValid() {
		t.Fatalf("%s: backing slice %d does not match %dx%d", name, len(c.cells), c.width, c.height)
	}
	if c.IsEmpty() {
		return
	}
	lines := strings.Split(c.String(), "\n")
	if len(lines) != c.Height() {
		t.Fatalf("%s: %d lines, want %d", name, len(lines), c.Height())
	}
	for i, line := range lines {
		if got := terminal.CountVisibleChars(line); got != c.Width() {
			t.Errorf("%s: line %d has width %d, want %d", name, i, got, c.Width())
		}
	}
}

func TestNewIsBlank(t *testing.T) {
	c := New(3, 2)
	if diff := cmp.Diff("   \n   ", c.String()); diff != "" {
		t.Errorf("blank canvas mismatch (-want +got):\n%s", diff)
	}
	if !New(0, 5).IsEmpty() {
		t.Error("zero width canvas should be empty")
	}
}

func TestFromTextAlignment(t *testing.T) {
	tests := []struct {
		name  string
		align Alignment
		want  string
	}{
		{"first", AlignFirst, "abcd\na   \nab  "},
		{"last", AlignLast, "abcd\n   a\n  ab"},
		{"center", AlignCenter, "abcd\n  a \n ab "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromText("abcd\na\nab", tt.align, terminal.None())
			if diff := cmp.Diff(tt.want, c.String()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromTextEmpty(t *testing.T) {
	if c := FromText("", AlignFirst, terminal.None()); !c.IsEmpty() || c.Width() != 0 || c.Height() != 0 {
		t.Errorf("expected zero-dimension canvas, got %dx%d", c.Width(), c.Height())
	}
}

func TestFromTextDecodesColors(t *testing.T) {
	mode := terminal.TerminalFg()
	src := mode.ApplyColors("ab", []terminal.Color{terminal.Red, terminal.NoColor}) + "\nabc"
	c := FromText(src, AlignFirst, mode)

	if c.Width() != 3 || c.Height() != 2 {
		t.Fatalf("got %dx%d, want 3x2", c.Width(), c.Height())
	}
	if got := c.Get(0, 0).Color; got != terminal.Red {
		t.Errorf("cell (0,0) color = %v, want red", got)
	}
	if got := c.Get(1, 0).Color; got != terminal.NoColor {
		t.Errorf("cell (1,0) color = %v, want none", got)
	}
	want := mode.StartMarker(terminal.Red) + "a" + mode.EndMarker() + "b \nabc"
	if diff := cmp.Diff(want, c.Text(mode)); diff != "" {
		t.Errorf("re-rendered text mismatch (-want +got):\n%s", diff)
	}
}

func TestTextClosesRunsPerLine(t *testing.T) {
	c := New(2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c.SetCell(x, y, Cell{Rune: '#', Color: terminal.Gold})
		}
	}
	mode := terminal.TerminalFg()
	line := mode.StartMarker(terminal.Gold) + "##" + mode.EndMarker()
	if diff := cmp.Diff(line+"\n"+line, c.Text(mode)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeHorizontallySquaresWithMargin(t *testing.T) {
	a := solid(4, 4, '█')
	b := solid(4, 4, '█')
	merged := a.AddPadding(Padding{Right: 2}).MergeHorizontally(b, AlignCenter)

	if merged.Width() != 10 || merged.Height() != 4 {
		t.Fatalf("got %dx%d, want 10x4", merged.Width(), merged.Height())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			want := '█'
			if x == 4 || x == 5 {
				want = ' '
			}
			if got := merged.Get(x, y).Rune; got != want {
				t.Errorf("(%d,%d) = %q, want %q", x, y, got, want)
			}
		}
	}
	assertRect(t, "merged", merged)
}

func TestMergeIdentity(t *testing.T) {
	c := FromText("ab\ncd\nef", AlignFirst, terminal.None())
	for name, got := range map[string]Canvas{
		"vertical right":   c.MergeVertically(Empty(), AlignCenter),
		"vertical left":    Empty().MergeVertically(c, AlignCenter),
		"horizontal right": c.MergeHorizontally(Empty(), AlignLast),
		"horizontal left":  Empty().MergeHorizontally(c, AlignFirst),
	} {
		if diff := cmp.Diff(c.String(), got.String()); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestMergeOddSplit(t *testing.T) {
	narrow := FromText("x", AlignFirst, terminal.None())
	wide := FromText("abcd", AlignFirst, terminal.None())

	v := narrow.MergeVertically(wide, AlignCenter)
	if diff := cmp.Diff("  x \nabcd", v.String()); diff != "" {
		t.Errorf("vertical mismatch (-want +got):\n%s", diff)
	}

	tall := FromText("1\n2\n3\n4", AlignFirst, terminal.None())
	h := narrow.MergeHorizontally(tall, AlignCenter)
	if diff := cmp.Diff(" 1\n 2\nx3\n 4", h.String()); diff != "" {
		t.Errorf("horizontal mismatch (-want +got):\n%s", diff)
	}

	first := narrow.MergeHorizontally(tall, AlignFirst)
	if diff := cmp.Diff("x1\n 2\n 3\n 4", first.String()); diff != "" {
		t.Errorf("first mismatch (-want +got):\n%s", diff)
	}
	last := narrow.MergeHorizontally(tall, AlignLast)
	if diff := cmp.Diff(" 1\n 2\n 3\nx4", last.String()); diff != "" {
		t.Errorf("last mismatch (-want +got):\n%s", diff)
	}
}

func TestAddBorder(t *testing.T) {
	tests := []struct {
		name  string
		sides Sides
		want  string
	}{
		{"all", AllSides, "╭──╮\n│ab│\n╰──╯"},
		{"top left", Sides{Top: true, Left: true}, "╭──\n│ab"},
		{"left bottom", Sides{Left: true, Bottom: true}, "│ab\n╰──"},
		{"top only", Sides{Top: true}, "──\nab"},
		{"left right", Sides{Left: true, Right: true}, "│ab│"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromText("ab", AlignFirst, terminal.None()).AddBorder(tt.sides)
			if diff := cmp.Diff(tt.want, got.String()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			assertRect(t, tt.name, got)
		})
	}
}

func TestAddPadding(t *testing.T) {
	got := FromText("a", AlignFirst, terminal.None()).AddPadding(Padding{Top: 1, Left: 2, Right: 1})
	if diff := cmp.Diff("    \n  a ", got.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCrop(t *testing.T) {
	c := FromText("abcd\nefgh\nijkl", AlignFirst, terminal.None())

	if diff := cmp.Diff("fg\njk", c.Crop(1, 1, 2, 5).String()); diff != "" {
		t.Errorf("clamped crop mismatch (-want +got):\n%s", diff)
	}
	if got := c.Crop(4, 0, 2, 2); !got.IsEmpty() {
		t.Errorf("crop past the right edge should be empty, got %dx%d", got.Width(), got.Height())
	}

	defer func() {
		if recover() == nil {
			t.Error("negative crop origin should panic")
		}
	}()
	c.Crop(-1, 0, 1, 1)
}

func TestBlit(t *testing.T) {
	base := solid(4, 3, '.')
	stamp := FromText("ab\nc ", AlignFirst, terminal.None())

	if diff := cmp.Diff("....\n...a\n...c", base.Blit(stamp, 3, 1).String()); diff != "" {
		t.Errorf("clipped blit mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("ab..\nc...\n....", base.BlitTransparent(stamp, 0, 0, ' ').String()); diff != "" {
		t.Errorf("transparent blit mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(base.String(), base.Blit(stamp, 4, 0).String()); diff != "" {
		t.Errorf("out of bounds blit should be a no-op (-want +got):\n%s", diff)
	}
	if base.Get(0, 0).Rune != '.' {
		t.Error("blit mutated its receiver")
	}
}

func TestWideRunes(t *testing.T) {
	c := FromText("한a\nxyz", AlignFirst, terminal.None())
	if c.Width() != 3 {
		t.Fatalf("width = %d, want 3", c.Width())
	}
	if diff := cmp.Diff("한a\nxyz", c.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(" a", c.Crop(1, 0, 2, 1).String()); diff != "" {
		t.Errorf("split wide rune should become a space (-want +got):\n%s", diff)
	}
	assertRect(t, "wide", c)
}

func TestRectangleInvariant(t *testing.T) {
	a := FromText("one\nthree\nfive55", AlignCenter, terminal.None())
	b := FromText("x\ny", AlignLast, terminal.None())

	ops := map[string]Canvas{
		"from text":  a,
		"crop":       a.Crop(1, 1, 3, 2),
		"blit":       a.Blit(b, 2, 1),
		"merge v":    a.MergeVertically(b, AlignCenter),
		"merge h":    a.MergeHorizontally(b, AlignLast),
		"padding":    a.AddPadding(Uniform(2)),
		"border":     a.AddBorder(AllSides),
		"half frame": b.AddBorder(Sides{Left: true, Bottom: true}),
	}
	for name, c := range ops {
		assertRect(t, name, c)
	}
}

func TestControlRunesBecomeSpaces(t *testing.T) {
	c := New(4, 1)
	c.Set(0, 0, 0)
	c.SetCell(1, 0, Cell{Rune: '\n'})
	c.Set(2, 0, 0x7f)
	c.Set(3, 0, 'z')
	if diff := cmp.Diff("   z", c.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	assertRect(t, "set", c)

	row := FromRunes("a\nb\x00", terminal.NoColor)
	if diff := cmp.Diff("a b ", row.String()); diff != "" {
		t.Errorf("FromRunes mismatch (-want +got):\n%s", diff)
	}
	assertRect(t, "from runes", row)

	text := FromText("a\x00b\tc", AlignFirst, terminal.None())
	if diff := cmp.Diff("a b c", text.String()); diff != "" {
		t.Errorf("FromText mismatch (-want +got):\n%s", diff)
	}
	assertRect(t, "from text", text)
}

func TestPutRune(t *testing.T) {
	tests := []struct {
		name  string
		fill  string
		x     int
		r     rune
		want  string
		cells int
	}{
		{"narrow", "abcd", 1, 'x', "axcd", 1},
		{"wide takes two cells", "abcd", 1, '한', "a한d", 2},
		{"wide at right edge is blanked", "abcd", 3, '한', "abc ", 1},
		{"nul", "abcd", 0, 0, " bcd", 1},
		{"over wide head", "한cd", 0, 'x', "x cd", 1},
		{"over wide tail", "한cd", 1, 'x', " xcd", 1},
		{"wide over wide tail", "a한d", 2, '국', "a 국", 2},
		{"off canvas", "abcd", 4, 'x', "abcd", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromText(tt.fill, AlignFirst, terminal.None())
			if got := c.PutRune(tt.x, 0, tt.r, terminal.NoColor); got != tt.cells {
				t.Errorf("cells = %d, want %d", got, tt.cells)
			}
			if diff := cmp.Diff(tt.want, c.String()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			assertRect(t, tt.name, c)
		})
	}
}

func TestPutStringClipsWide(t *testing.T) {
	c := New(3, 1)
	if n := c.PutString(0, 0, "a한국", terminal.NoColor); n != 3 {
		t.Errorf("wrote %d cells, want 3", n)
	}
	if diff := cmp.Diff("a한", c.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	assertRect(t, "clipped", c)
}

func TestParseAlignment(t *testing.T) {
	for in, want := range map[string]Alignment{"left": AlignFirst, "Center": AlignCenter, "bottom": AlignLast} {
		got, err := ParseAlignment(in)
		if err != nil || got != want {
			t.Errorf("ParseAlignment(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAlignment("diagonal"); err == nil {
		t.Error("expected error")
	}
}
