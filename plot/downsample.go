package plot

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the series length above which buckets are scanned concurrently
const parallelThreshold = 1 << 16

// downsample keeps the minimum and maximum of each of width/2 buckets, in their
// original order, so peaks and valleys survive compression. width must be even
func downsample(pts []Point, width int) ([]Point, error) {
	half := width / 2
	out := make([]Point, 2*half)

	if len(pts) < parallelThreshold {
		for i := 0; i < half; i++ {
			fillBucket(pts, out, i, half)
		}
		return out, nil
	}

	// buckets are independent and write disjoint output slots
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	chunk := (half + runtime.GOMAXPROCS(0) - 1) / runtime.GOMAXPROCS(0)
	for lo := 0; lo < half; lo += chunk {
		hi := min(lo+chunk, half)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				fillBucket(pts, out, i, half)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fillBucket writes the extremes of bucket i into out[2i], out[2i+1]
func fillBucket(pts, out []Point, i, buckets int) {
	lo := i * len(pts) / buckets
	hi := (i + 1) * len(pts) / buckets
	minIdx, maxIdx := lo, lo
	for j := lo + 1; j < hi; j++ {
		v := pts[j].Value
		if v.Cmp(pts[maxIdx].Value) > 0 {
			maxIdx = j
		} else if v.Cmp(pts[minIdx].Value) < 0 {
			minIdx = j
		}
	}
	if minIdx < maxIdx {
		out[2*i], out[2*i+1] = pts[minIdx], pts[maxIdx]
	} else {
		out[2*i], out[2*i+1] = pts[maxIdx], pts[minIdx]
	}
}
