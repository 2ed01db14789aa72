// Package parallel provides the fork-join engine underlying the
// gridpar dispatcher: parallel execution of integer ranges and of
// N-dimensional regions by recursive binary splitting.
//
// Work is divided by recursive bisection. At every interior node the
// calling goroutine executes the left branch itself and hands the
// right branch to a new goroutine, provided the engine's worker bound
// has not been reached; otherwise the right branch is executed inline
// as well. Every function invoked for a leaf therefore receives a
// caller flag that is true exactly when the leaf runs on the
// goroutine that entered the engine. Collaborator callbacks that are
// not safe for concurrent use can be gated on that flag.
package parallel

import (
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/exagrid/gridpar/internal"
	"github.com/exagrid/gridpar/region"
)

type (
	// A RangeFunc is a function that receives a range from low to
	// high, with 0 <= low <= high, and a flag reporting whether it is
	// running on the goroutine that entered the engine.
	RangeFunc func(low, high int, caller bool) error

	// A RegionFunc is a function that receives one leaf region of a
	// split tree and a flag reporting whether it is running on the
	// goroutine that entered the engine.
	RegionFunc func(r region.Region, caller bool) error
)

// An Engine executes ranges and regions in parallel while bounding
// the number of goroutines it spawns. An engine constructed for w
// workers runs at most w branches of the split tree concurrently: the
// calling goroutine plus at most w-1 spawned ones. Engines are
// stateless between calls and safe for concurrent use.
type Engine struct {
	spawn *semaphore.Weighted
}

// NewEngine returns an engine that executes at most workers branches
// concurrently. NewEngine panics if workers < 1. An engine with one
// worker executes everything on the calling goroutine.
func NewEngine(workers int) *Engine {
	if workers < 1 {
		panic(fmt.Sprintf("parallel: invalid number of workers: %v", workers))
	}
	return &Engine{spawn: semaphore.NewWeighted(int64(workers - 1))}
}

// fork runs left on the current goroutine and right on a new
// goroutine, if the worker bound permits spawning one; otherwise both
// run inline, in order. It returns the left-most non-nil error.
//
// A panic in the spawned goroutine is recovered there and rethrown on
// the current goroutine, enriched with the worker's stack trace.
func (e *Engine) fork(left, right func(caller bool) error, caller bool) (err error) {
	if !e.spawn.TryAcquire(1) {
		err0 := left(caller)
		err1 := right(caller)
		if err0 != nil {
			return err0
		}
		return err1
	}
	var err0, err1 error
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer func() {
			p = internal.WrapPanic(recover())
			e.spawn.Release(1)
			wg.Done()
		}()
		err1 = right(false)
	}()
	err0 = left(caller)
	wg.Wait()
	if p != nil {
		panic(p)
	}
	if err0 != nil {
		err = err0
	} else {
		err = err1
	}
	return
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches in parallel, covering the half-open interval
// from low to high, including low but excluding high.
//
// The range is specified by a low and high integer, with low <=
// high. The batches are determined by dividing up the size of the
// range (high - low) by n. If n is 0, a reasonable default is used
// that takes runtime.GOMAXPROCS(0) into account. If n equals the size
// of the range, every batch contains exactly one index and no
// chunking occurs.
//
// Range returns only when all range functions have terminated,
// returning the left-most error value that is different from nil.
// The batch containing low always runs on the calling goroutine, and
// f's caller flag is true for exactly those batches that do.
//
// Range panics if high < low, or if n < 0.
//
// If one or more range function invocations panic, the corresponding
// goroutines recover the panics, and Range eventually panics with the
// left-most recovered panic value, extended with the worker's stack
// trace.
func (e *Engine) Range(low, high, n int, f RangeFunc) error {
	var recur func(int, int, int, bool) error
	recur = func(low, high, n int, caller bool) error {
		switch {
		case n == 1:
			return f(low, high, caller)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				return f(low, high, caller)
			}
			return e.fork(
				func(caller bool) error { return recur(low, mid, half, caller) },
				func(caller bool) error { return recur(mid, high, n-half, caller) },
				caller,
			)
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n), true)
}

// Region splits r by recursive balanced bisection until a sub-region
// is indivisible or covers at most grain pixels, and invokes f once
// per resulting leaf, in parallel. The leaves are pairwise disjoint
// and cover r exactly.
//
// Region returns only when all leaf invocations have terminated,
// returning the left-most error value that is different from nil. The
// leaf containing r's start corner always runs on the calling
// goroutine, and f's caller flag is true for exactly those leaves
// that do. If r is empty, f is not invoked at all.
//
// Region panics if grain < 1. Panics raised by f propagate like they
// do for Range.
func (e *Engine) Region(r region.Region, grain int, f RegionFunc) error {
	if grain < 1 {
		panic(fmt.Sprintf("parallel: invalid grain size: %v", grain))
	}
	if r.IsEmpty() {
		return nil
	}
	var recur func(region.Region, bool) error
	recur = func(r region.Region, caller bool) error {
		if !r.IsDivisible() || r.Pixels() <= grain {
			return f(r, caller)
		}
		left, right := r.Split(region.Balanced)
		return e.fork(
			func(caller bool) error { return recur(left, caller) },
			func(caller bool) error { return recur(right, caller) },
			caller,
		)
	}
	return recur(r, true)
}
