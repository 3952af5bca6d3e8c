package terminal

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const esc = '\x1b'

// scanState tracks progress through a color sequence of the shape ESC [ 3|4 <params> m
type scanState uint8

const (
	stateIdle    scanState = iota
	stateEsc                // saw ESC
	stateBracket            // saw ESC [
	stateParams             // saw ESC [ 3 or ESC [ 4, reading digits and ';'
)

// scanSGR walks s once, calling visible for every rune outside a recognized color
// sequence and sgr with the parameter text of every complete one. A sequence that
// breaks off is not an error: the runes it consumed are reported as visible
func scanSGR(s string, visible func(rune), sgr func(params string)) {
	runes := []rune(s)
	pending := make([]rune, 0, 24)
	flush := func() {
		for _, r := range pending {
			visible(r)
		}
		pending = pending[:0]
	}

	state := stateIdle
	for i := 0; i < len(runes); {
		r := runes[i]
		switch state {
		case stateIdle:
			if r == esc {
				pending = append(pending, r)
				state = stateEsc
			} else {
				visible(r)
			}
			i++
		case stateEsc:
			if r != '[' {
				flush()
				state = stateIdle
				continue // reprocess r
			}
			pending = append(pending, r)
			state = stateBracket
			i++
		case stateBracket:
			if r != '3' && r != '4' {
				flush()
				state = stateIdle
				continue
			}
			pending = append(pending, r)
			state = stateParams
			i++
		case stateParams:
			switch {
			case r == 'm':
				if sgr != nil {
					sgr(string(pending[2:]))
				}
				pending = pending[:0]
				state = stateIdle
				i++
			case r == ';' || (r >= '0' && r <= '9'):
				pending = append(pending, r)
				i++
			default:
				flush()
				state = stateIdle
			}
		}
	}
	flush()
}

// RuneCells returns the number of canvas cells a rune occupies: 2 for East Asian
// wide runes, 1 otherwise (zero-width runes still take a cell of their own)
func RuneCells(r rune) int {
	if runewidth.RuneWidth(r) == 2 {
		return 2
	}
	return 1
}

// CountVisibleChars returns the display width of s, skipping color sequences
// previously emitted by a terminal mode
func CountVisibleChars(s string) int {
	n := 0
	scanSGR(s, func(r rune) { n += RuneCells(r) }, nil)
	return n
}

// VisibleWidth measures s as rendered by m
// HTML width is not meaningfully defined: markup is counted as visible text, so two
// HTML renderings cannot be composed by width
func (m ColorMode) VisibleWidth(s string) int {
	if m.IsTerminal() {
		return CountVisibleChars(s)
	}
	n := 0
	for _, r := range s {
		n += RuneCells(r)
	}
	return n
}

// ParseColored decodes s as rendered by m into runes and their colors
// Terminal modes recover palette colors from the sequences ApplyColors emits;
// well-formed sequences naming a color outside the palette are dropped.
// Other modes keep every rune, uncolored
func (m ColorMode) ParseColored(s string) ([]rune, []Color) {
	runes := make([]rune, 0, len(s))
	colors := make([]Color, 0, len(s))
	if !m.IsTerminal() {
		for _, r := range s {
			runes = append(runes, r)
			colors = append(colors, NoColor)
		}
		return runes, colors
	}

	cur := NoColor
	scanSGR(s,
		func(r rune) {
			runes = append(runes, r)
			colors = append(colors, cur)
		},
		func(params string) {
			if c, ok := decodeSGR(params); ok {
				cur = c
			}
		})
	return runes, colors
}

// decodeSGR maps the parameters of one color sequence back to a palette color
func decodeSGR(params string) (Color, bool) {
	fields := strings.Split(params, ";")
	switch fields[0] {
	case "39", "49":
		return NoColor, len(fields) == 1
	case "38", "48":
	default:
		return NoColor, false
	}
	if len(fields) < 3 {
		return NoColor, false
	}
	nums := make([]uint8, 0, 3)
	for _, f := range fields[2:] {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return NoColor, false
		}
		nums = append(nums, uint8(v))
	}
	switch {
	case fields[1] == "2" && len(nums) == 3:
		return colorFromRGB(RGB{nums[0], nums[1], nums[2]})
	case fields[1] == "5" && len(nums) == 1:
		return colorFrom256(nums[0])
	}
	return NoColor, false
}
