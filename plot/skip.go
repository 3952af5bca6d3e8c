package plot

import (
	"math/big"
	"sort"
)

// SkipPolicy selects how a value gap is cut out of the y axis
type SkipPolicy uint8

const (
	SkipDisabled  SkipPolicy = iota
	SkipAutomatic            // the engine looks for one dominating gap
	SkipManual               // caller-given bounds
)

// SkipRange is a skip policy with its manual bounds
type SkipRange struct {
	Policy   SkipPolicy
	From, To *big.Rat
}

func SkipNone() SkipRange { return SkipRange{Policy: SkipDisabled} }
func SkipAuto() SkipRange { return SkipRange{Policy: SkipAutomatic} }

// SkipBetween cuts [from, to] out of the axis
func SkipBetween(from, to *big.Rat) SkipRange {
	return SkipRange{Policy: SkipManual, From: copyRat(from), To: copyRat(to)}
}

// window is a value interval with optional open ends
type window struct {
	from, to *big.Rat
}

// contains reports whether [lo, hi] lies inside w
func (w *window) contains(lo, hi *big.Rat) bool {
	if w == nil {
		return false
	}
	if w.from != nil && lo.Cmp(w.from) < 0 {
		return false
	}
	if w.to != nil && hi.Cmp(w.to) > 0 {
		return false
	}
	return true
}

// stats are the value-order facts range inference and skip detection need
type stats struct {
	sorted []*big.Rat
	min    *big.Rat
	max    *big.Rat
	// widest gap between value-sorted neighbours
	maxDiff      *big.Rat
	gapLo, gapHi *big.Rat
}

func computeStats(pts []Point) stats {
	sorted := make([]*big.Rat, len(pts))
	for i, p := range pts {
		sorted[i] = p.Value
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })

	s := stats{
		sorted:  sorted,
		min:     sorted[0],
		max:     sorted[len(sorted)-1],
		maxDiff: new(big.Rat),
		gapLo:   sorted[0],
		gapHi:   sorted[0],
	}
	diff := new(big.Rat)
	for i := 0; i+1 < len(sorted); i++ {
		diff.Sub(sorted[i+1], sorted[i])
		if diff.Cmp(s.maxDiff) > 0 {
			s.maxDiff.Set(diff)
			s.gapLo, s.gapHi = sorted[i], sorted[i+1]
		}
	}
	return s
}

// countOutside returns how many values lie below lo and above hi
func (s stats) countOutside(lo, hi *big.Rat) (below, above int) {
	below = sort.Search(len(s.sorted), func(i int) bool { return s.sorted[i].Cmp(lo) >= 0 })
	above = len(s.sorted) - sort.Search(len(s.sorted), func(i int) bool { return s.sorted[i].Cmp(hi) > 0 })
	return below, above
}

// autoSkip proposes a skip range when one gap covers more than a third of the span.
// Each side of the gap is padded by 1/16 of the sub-range beyond it, or 1/16 of the
// gap when that sub-range is a single value
func (s stats) autoSkip(yMin, yMax *big.Rat) (from, to *big.Rat, ok bool) {
	if s.maxDiff.Sign() == 0 {
		return nil, nil, false
	}
	span := new(big.Rat).Sub(yMax, yMin)
	if new(big.Rat).Quo(span, s.maxDiff).Cmp(big.NewRat(3, 1)) >= 0 {
		return nil, nil, false
	}

	sixteenth := big.NewRat(1, 16)
	gap := new(big.Rat).Mul(s.maxDiff, sixteenth)
	padLo := new(big.Rat).Sub(s.gapLo, s.min)
	if padLo.Sign() == 0 {
		padLo.Set(gap)
	} else {
		padLo.Mul(padLo, sixteenth)
	}
	padHi := new(big.Rat).Sub(s.max, s.gapHi)
	if padHi.Sign() == 0 {
		padHi.Set(gap)
	} else {
		padHi.Mul(padHi, sixteenth)
	}

	from = new(big.Rat).Add(s.gapLo, padLo)
	to = new(big.Rat).Sub(s.gapHi, padHi)
	if from.Cmp(to) >= 0 {
		return nil, nil, false
	}
	return from, to, true
}

// splitHeights divides h-1 rows (one row is the separator) between the upper and
// lower sub-plots in sixths: 4:2 or 2:4 when one side holds at least 1.5x the
// points of the other, otherwise 3:3
func splitHeights(h, below, above int) (upper, lower int) {
	parts := 3
	switch {
	case 2*above >= 3*below && above > below:
		parts = 4
	case 2*below >= 3*above && below > above:
		parts = 2
	}
	upper = (h - 1) * parts / 6
	return upper, h - 1 - upper
}
