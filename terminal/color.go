package terminal

import (
	"fmt"
	"strings"
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Color is a closed palette of named colors
// The zero value NoColor means the cell carries no color tag
type Color uint8

const (
	NoColor Color = iota
	Black
	Dark
	Gray
	LightGray
	White
	Red
	Green
	Blue
	Brown
	SlateBlue
	SeaGreen
	Aqua
	Emerald
	Violet
	Turquoise
	Pink
	GrassGreen
	Gold

	colorCount
)

// palette holds the fixed RGB triple and class name of each color, indexed by Color
var palette = [colorCount]struct {
	name string
	rgb  RGB
}{
	NoColor:    {"none", RGB{}},
	Black:      {"black", RGB{0, 0, 0}},
	Dark:       {"dark", RGB{64, 64, 64}},
	Gray:       {"gray", RGB{128, 128, 128}},
	LightGray:  {"lightgray", RGB{192, 192, 192}},
	White:      {"white", RGB{255, 255, 255}},
	Red:        {"red", RGB{192, 32, 32}},
	Green:      {"green", RGB{32, 192, 32}},
	Blue:       {"blue", RGB{32, 32, 192}},
	Brown:      {"brown", RGB{192, 128, 32}},
	SlateBlue:  {"slateblue", RGB{64, 64, 192}},
	SeaGreen:   {"seagreen", RGB{32, 192, 192}},
	Aqua:       {"aqua", RGB{64, 192, 255}},
	Emerald:    {"emerald", RGB{64, 192, 64}},
	Violet:     {"violet", RGB{192, 64, 255}},
	Turquoise:  {"turquoise", RGB{64, 255, 192}},
	Pink:       {"pink", RGB{255, 64, 192}},
	GrassGreen: {"grassgreen", RGB{192, 255, 64}},
	Gold:       {"gold", RGB{255, 192, 64}},
}

// Colors returns every palette member in declaration order, NoColor excluded
func Colors() []Color {
	out := make([]Color, 0, colorCount-1)
	for c := Black; c < colorCount; c++ {
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is NoColor or a palette member
func (c Color) Valid() bool {
	return c < colorCount
}

// RGB returns the fixed RGB triple of the color
func (c Color) RGB() RGB {
	if !c.Valid() {
		return RGB{}
	}
	return palette[c].rgb
}

// String returns the lowercase color name, also used as the HTML class suffix
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return palette[c].name
}

// ParseColor resolves a color by name, case-insensitive
func ParseColor(name string) (Color, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for c := NoColor; c < colorCount; c++ {
		if palette[c].name == lower {
			return c, nil
		}
	}
	return NoColor, fmt.Errorf("unknown color %q", name)
}

// colorFromRGB finds the palette member with an exact RGB match
// Black shadows nothing since NoColor is never emitted as a sequence
func colorFromRGB(rgb RGB) (Color, bool) {
	for c := Black; c < colorCount; c++ {
		if palette[c].rgb.Equal(rgb) {
			return c, true
		}
	}
	return NoColor, false
}

// colorFrom256 finds the palette member whose 256-color index matches
func colorFrom256(idx uint8) (Color, bool) {
	for c := Black; c < colorCount; c++ {
		if RGBTo256(palette[c].rgb) == idx {
			return c, true
		}
	}
	return NoColor, false
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cubeIndex maps 0-255 to nearest cube index 0-5
func cubeIndex(v uint8) int {
	best := 0
	bestDist := abs(int(v) - int(cubeValues[0]))
	for j := 1; j < 6; j++ {
		d := abs(int(v) - int(cubeValues[j]))
		if d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// RGBTo256 finds the nearest xterm 256-color palette index for an RGB value
func RGBTo256(c RGB) uint8 {
	r, g, b := c.R, c.G, c.B
	cr, cg, cb := cubeIndex(r), cubeIndex(g), cubeIndex(b)

	// Check if grayscale is a better match (when r ≈ g ≈ b)
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))
	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := grayscaleStart + (gray-8)/10
		if grayIdx > 255 {
			grayIdx = 255
		}
		grayLevel := 8 + (grayIdx-grayscaleStart)*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)
		cubeDist := abs(int(r)-int(cubeValues[cr])) +
			abs(int(g)-int(cubeValues[cg])) +
			abs(int(b)-int(cubeValues[cb]))
		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return uint8(16 + 36*cr + 6*cg + cb)
}
