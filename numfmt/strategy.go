package numfmt

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
)

// LabelFormatter renders one axis value
type LabelFormatter interface {
	FormatLabel(v *big.Rat) string
}

// FormatterFunc adapts a function to LabelFormatter
type FormatterFunc func(v *big.Rat) string

func (f FormatterFunc) FormatLabel(v *big.Rat) string {
	return f(v)
}

// Default is Format as a strategy
var Default LabelFormatter = FormatterFunc(Format)

// SI renders with metric suffixes, e.g. 1.5k, 2.35M, 12µ
func SI(digits int) LabelFormatter {
	return FormatterFunc(func(v *big.Rat) string {
		if v.Sign() == 0 {
			return "0"
		}
		f, _ := v.Float64()
		return strings.ReplaceAll(humanize.SIWithDigits(f, digits, ""), " ", "")
	})
}

// Comma renders with thousands separators, e.g. 1,234,567 or 1,234.5
func Comma(decimals int) LabelFormatter {
	return FormatterFunc(func(v *big.Rat) string {
		if v.IsInt() {
			return humanize.BigComma(v.Num())
		}
		f, _ := v.Float64()
		return humanize.CommafWithDigits(f, decimals)
	})
}

// ParseFormatter resolves default|si|comma
func ParseFormatter(name string) (LabelFormatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return Default, nil
	case "si":
		return SI(2), nil
	case "comma":
		return Comma(2), nil
	}
	return nil, fmt.Errorf("unknown label format %q (expected default, si or comma)", name)
}
