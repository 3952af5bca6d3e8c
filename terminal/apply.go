package terminal

import (
	"fmt"
	"strings"
)

// ApplyColors walks text once, opening a run whenever the color changes to a palette
// member and closing it whenever it changes back to NoColor. An open run is closed at
// the end of the text. colors must hold exactly one entry per rune of text
func (m ColorMode) ApplyColors(text string, colors []Color) string {
	return m.ApplyRunes([]rune(text), colors)
}

// ApplyRunes is ApplyColors over an already decoded rune slice
func (m ColorMode) ApplyRunes(runes []rune, colors []Color) string {
	if len(runes) != len(colors) {
		panic(fmt.Sprintf("terminal: %d runes but %d colors", len(runes), len(colors)))
	}
	if m.Kind == ModeNone {
		return string(runes)
	}

	var b strings.Builder
	b.Grow(len(runes) + len(runes)/4)
	cur := NoColor
	for i, r := range runes {
		if c := colors[i]; c != cur {
			if cur != NoColor {
				m.writeEnd(&b)
			}
			if c != NoColor {
				m.writeStart(&b, c)
			}
			cur = c
		}
		m.writeRune(&b, r)
	}
	if cur != NoColor {
		m.writeEnd(&b)
	}
	return b.String()
}

// writeRune escapes markup-significant runes in HTML mode
func (m ColorMode) writeRune(b *strings.Builder, r rune) {
	if m.Kind != ModeHTML {
		b.WriteRune(r)
		return
	}
	switch r {
	case '<':
		b.WriteString("&lt;")
	case '>':
		b.WriteString("&gt;")
	case '&':
		b.WriteString("&amp;")
	default:
		b.WriteRune(r)
	}
}
