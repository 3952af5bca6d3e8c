package terminal

import (
	"strings"
)

// Pre-built ANSI sequence fragments
const (
	csi        = "\x1b["
	csiEnd     = "m"
	sgrFgRGB   = "38;2;" // followed by R;G;B
	sgrBgRGB   = "48;2;"
	sgrFg256   = "38;5;" // followed by N
	sgrBg256   = "48;5;"
	sgrFgReset = "\x1b[39m"
	sgrBgReset = "\x1b[49m"

	htmlSpanOpen  = `<span class="`
	htmlSpanMid   = `">`
	htmlSpanClose = "</span>"
)

// writeInt writes an integer without going through strconv
// Terminal values are 0-255
func writeInt(w *strings.Builder, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeStart appends the sequence opening a run of color c
func (m ColorMode) writeStart(w *strings.Builder, c Color) {
	switch m.Kind {
	case ModeHTML:
		w.WriteString(htmlSpanOpen)
		w.WriteString(m.Prefix)
		w.WriteString(c.String())
		w.WriteString(htmlSpanMid)
	case ModeTerminalFg, ModeTerminalBg:
		rgb := c.RGB()
		w.WriteString(csi)
		if m.Depth == Depth256 {
			if m.Kind == ModeTerminalFg {
				w.WriteString(sgrFg256)
			} else {
				w.WriteString(sgrBg256)
			}
			writeInt(w, int(RGBTo256(rgb)))
		} else {
			if m.Kind == ModeTerminalFg {
				w.WriteString(sgrFgRGB)
			} else {
				w.WriteString(sgrBgRGB)
			}
			writeInt(w, int(rgb.R))
			w.WriteByte(';')
			writeInt(w, int(rgb.G))
			w.WriteByte(';')
			writeInt(w, int(rgb.B))
		}
		w.WriteString(csiEnd)
	}
}

// writeEnd appends the sequence closing the current color run
func (m ColorMode) writeEnd(w *strings.Builder) {
	switch m.Kind {
	case ModeHTML:
		w.WriteString(htmlSpanClose)
	case ModeTerminalFg:
		w.WriteString(sgrFgReset)
	case ModeTerminalBg:
		w.WriteString(sgrBgReset)
	}
}

// StartMarker returns the sequence that opens a run of color c
func (m ColorMode) StartMarker(c Color) string {
	if c == NoColor {
		return ""
	}
	var b strings.Builder
	m.writeStart(&b, c)
	return b.String()
}

// EndMarker returns the sequence that closes a color run
func (m ColorMode) EndMarker() string {
	var b strings.Builder
	m.writeEnd(&b)
	return b.String()
}
