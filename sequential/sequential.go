// Package sequential provides sequential implementations of the
// operations of the parallel engine. This is useful for testing and
// debugging, and serves the dispatcher's single-worker paths.
//
// The implementations visit batches and leaves in the same order as
// the parallel engine's left-to-right split tree, but on the calling
// goroutine only, so the caller flag passed to the invoked functions
// is always true.
package sequential

import (
	"fmt"

	"github.com/exagrid/gridpar/internal"
	"github.com/exagrid/gridpar/parallel"
	"github.com/exagrid/gridpar/region"
)

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches sequentially, covering the half-open interval
// from low to high, including low but excluding high.
//
// The batches are the same as those of the parallel engine's Range,
// visited in increasing order. Range returns the left-most error
// value that is different from nil.
//
// Range panics if high < low, or if n < 0.
func Range(low, high, n int, f parallel.RangeFunc) error {
	var recur func(int, int, int) error
	recur = func(low, high, n int) (err error) {
		switch {
		case n == 1:
			return f(low, high, true)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				return f(low, high, true)
			}
			err0 := recur(low, mid, half)
			err1 := recur(mid, high, n-half)
			if err0 != nil {
				err = err0
			} else {
				err = err1
			}
			return
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// Region splits r by recursive balanced bisection until a sub-region
// is indivisible or covers at most grain pixels, and invokes f once
// per resulting leaf, sequentially in split-tree order. The leaves
// are the same as those of the parallel engine's Region. If r is
// empty, f is not invoked at all.
//
// Region returns the left-most error value that is different from
// nil, and panics if grain < 1.
func Region(r region.Region, grain int, f parallel.RegionFunc) error {
	if grain < 1 {
		panic(fmt.Sprintf("sequential: invalid grain size: %v", grain))
	}
	if r.IsEmpty() {
		return nil
	}
	var recur func(region.Region) error
	recur = func(r region.Region) error {
		if !r.IsDivisible() || r.Pixels() <= grain {
			return f(r, true)
		}
		left, right := r.Split(region.Balanced)
		err0 := recur(left)
		err1 := recur(right)
		if err0 != nil {
			return err0
		}
		return err1
	}
	return recur(r)
}
