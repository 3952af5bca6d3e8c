package render

import (
	"fmt"
	"strings"
)

// Alignment positions the smaller operand along the padded axis
type Alignment uint8

const (
	AlignFirst  Alignment = iota // left or top
	AlignCenter                  // odd remainder goes to the first pad
	AlignLast                    // right or bottom
)

func (a Alignment) String() string {
	switch a {
	case AlignFirst:
		return "first"
	case AlignCenter:
		return "center"
	case AlignLast:
		return "last"
	}
	return fmt.Sprintf("Alignment(%d)", a)
}

// ParseAlignment accepts first|left|top, center|middle, last|right|bottom
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "left", "top":
		return AlignFirst, nil
	case "", "center", "centre", "middle":
		return AlignCenter, nil
	case "last", "right", "bottom":
		return AlignLast, nil
	}
	return AlignCenter, fmt.Errorf("unknown alignment %q", s)
}

// split divides diff cells of padding into (before, after)
func (a Alignment) split(diff int) (int, int) {
	if diff <= 0 {
		return 0, 0
	}
	switch a {
	case AlignFirst:
		return 0, diff
	case AlignLast:
		return diff, 0
	default:
		return diff/2 + diff%2, diff / 2
	}
}
