// Package numfmt turns exact rationals into axis labels
package numfmt

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Label thresholds
const (
	// values below this magnitude keep their fraction
	fractionLimit = 1000
	// integers below this magnitude print in full
	plainLimit = 1_000_000_000
	// fractional digits kept below fractionLimit
	fractionDigits = 8
	// significant digits in exponent form
	significantDigits = 4
)

var (
	ratFractionLimit = big.NewRat(fractionLimit, 1)
	intPlainLimit    = big.NewInt(plainLimit)
)

// Format renders v as an axis label:
// |v| < 1000 prints with up to 8 fractional digits, trailing zeros trimmed;
// |v| < 1e9 prints the integer part; larger magnitudes print d.ddde<exp>
// with 4 significant digits, truncated
func Format(v *big.Rat) string {
	if v == nil {
		return "0"
	}
	abs := new(big.Rat).Abs(v)
	if abs.Cmp(ratFractionLimit) < 0 {
		return trimFraction(v.FloatString(fractionDigits))
	}

	n := new(big.Int).Quo(v.Num(), v.Denom())
	absInt := new(big.Int).Abs(n)
	if absInt.Cmp(intPlainLimit) < 0 {
		return n.String()
	}

	digits := absInt.String()
	sign := ""
	if n.Sign() < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%se%d", sign, digits[:1], digits[1:significantDigits], len(digits)-1)
}

// trimFraction removes trailing zeros and a dangling point, normalizing -0
func trimFraction(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Parse reads a decimal ("-1.25", "3e4") or fraction ("1/3") string losslessly
func Parse(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return r, nil
}

// ParseOrZero is Parse with unparsable input read as zero
func ParseOrZero(s string) *big.Rat {
	r, err := Parse(s)
	if err != nil {
		return new(big.Rat)
	}
	return r
}

// FromFloat converts f exactly. NaN becomes 0 and infinities become
// ±math.MaxFloat64; replaced reports either substitution
func FromFloat(f float64) (r *big.Rat, replaced bool) {
	switch {
	case math.IsNaN(f):
		return new(big.Rat), true
	case math.IsInf(f, 1):
		return new(big.Rat).SetFloat64(math.MaxFloat64), true
	case math.IsInf(f, -1):
		return new(big.Rat).SetFloat64(-math.MaxFloat64), true
	}
	return new(big.Rat).SetFloat64(f), false
}

// FromInt converts an integer
func FromInt(n int64) *big.Rat {
	return new(big.Rat).SetInt64(n)
}
