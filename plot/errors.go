package plot

import "errors"

// Configuration errors returned by Validate and Draw
var (
	ErrNoData               = errors.New("plot: no data to draw")
	ErrInvalidRange         = errors.New("plot: y_min is greater than y_max")
	ErrInvalidInterval      = errors.New("plot: interval end is before its start")
	ErrDimensionMismatch    = errors.New("plot: label count does not match plot size")
	ErrCoordinateOutOfRange = errors.New("plot: coordinate outside the plot")
)
