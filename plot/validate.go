package plot

import (
	"errors"
	"fmt"
)

// Validate reports every configuration problem at once, joined
// Draw runs the same checks and refuses to render on failure
func (g *Graph) Validate() error {
	var errs []error

	switch d := g.data.(type) {
	case nil:
		errs = append(errs, ErrNoData)
	case series:
		if len(d) == 0 {
			errs = append(errs, ErrNoData)
		}
	case *grid:
		errs = append(errs, g.validateGrid(d)...)
	}

	if g.yMin != nil && g.yMax != nil && g.yMin.Cmp(g.yMax) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s > %s", ErrInvalidRange, g.yMin.RatString(), g.yMax.RatString()))
	}
	for i, iv := range g.intervals {
		if !iv.Valid() {
			errs = append(errs, fmt.Errorf("%w: interval %d (%d, %d, %q)", ErrInvalidInterval, i, iv.Start, iv.End, iv.Label))
		}
	}
	return errors.Join(errs...)
}

func (g *Graph) validateGrid(d *grid) []error {
	var errs []error
	if d.err != nil {
		errs = append(errs, d.err)
	}
	if len(d.xLabels) == 0 || len(d.yLabels) == 0 {
		errs = append(errs, fmt.Errorf("%w: 2-D grid has no columns or rows", ErrNoData))
	}
	if len(d.xLabels) != g.plotWidth {
		errs = append(errs, fmt.Errorf("%w: %d x labels for plot width %d", ErrDimensionMismatch, len(d.xLabels), g.plotWidth))
	}
	if len(d.yLabels) != g.plotHeight {
		errs = append(errs, fmt.Errorf("%w: %d y labels for plot height %d", ErrDimensionMismatch, len(d.yLabels), g.plotHeight))
	}
	for _, gl := range d.glyphs {
		if gl.X < 0 || gl.X >= len(d.xLabels) || gl.Y < 0 || gl.Y >= len(d.yLabels) {
			errs = append(errs, fmt.Errorf("%w: (%d, %d) in a %dx%d grid", ErrCoordinateOutOfRange, gl.X, gl.Y, len(d.xLabels), len(d.yLabels)))
		}
	}
	return errs
}
