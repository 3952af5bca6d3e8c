package plot

import (
	"strings"
	"unicode"

	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// Banner renders a big title. Any text to canvas function works, for example a
// figlet-style font
type Banner func(title string) render.Canvas

// DefaultBanner upper-cases and letter-spaces each title line inside a rounded frame
func DefaultBanner(title string) render.Canvas {
	lines := strings.Split(title, "\n")
	for i, line := range lines {
		var b strings.Builder
		for j, r := range strings.ToUpper(line) {
			if j > 0 {
				b.WriteByte(' ')
			}
			if unicode.IsControl(r) {
				r = ' '
			}
			b.WriteRune(r)
		}
		lines[i] = b.String()
	}
	return render.FromText(strings.Join(lines, "\n"), render.AlignCenter, terminal.None()).
		AddPadding(render.Padding{Left: 1, Right: 1}).
		AddBorder(render.AllSides)
}
