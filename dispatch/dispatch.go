// Package dispatch provides the top-level parallel dispatcher of
// gridpar. A Dispatcher takes a region of work or an index range and
// a per-unit function, splits the work into independent units, runs
// them across a fixed number of workers, aggregates progress, and
// propagates cancellation and errors.
//
// Every dispatch call is a synchronous barrier: fan-out, then join.
// The call returns only after all dispatched units have settled, with
// either a nil error (all units completed, no abort observed) or
// exactly one error describing the first problem encountered. Errors
// raised inside unit functions are never swallowed or logged on the
// caller's behalf; they are returned verbatim.
//
// Cancellation is cooperative: the collaborating stage owns the abort
// flag, and units poll it at their boundaries. A unit that observes
// the flag before starting its body skips the body; units already
// running are never interrupted. Abort therefore bounds the start of
// new work, not the latency of work in flight.
package dispatch

import (
	"fmt"

	"github.com/exagrid/gridpar"
	"github.com/exagrid/gridpar/internal"
	"github.com/exagrid/gridpar/parallel"
	"github.com/exagrid/gridpar/region"
	"github.com/exagrid/gridpar/sequential"
)

// A Dispatcher executes data-parallel work over a fixed number of
// workers. The worker count is configured at construction and never
// consulted from any process-wide default. Dispatchers are stateless
// between calls and safe for concurrent use.
type Dispatcher struct {
	workers int
	engine  *parallel.Engine
}

// New returns a dispatcher that executes work across the given
// number of workers. A worker count below one is a *ConfigError.
func New(workers int) (*Dispatcher, error) {
	if workers < 1 {
		return nil, &ConfigError{Reason: fmt.Sprintf("invalid worker count: %v", workers)}
	}
	return &Dispatcher{workers: workers, engine: parallel.NewEngine(workers)}, nil
}

// Workers returns the configured worker count.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// SingleMethodExecute invokes f exactly once per logical worker, with
// a distinct WorkerInfo ID in 0..Workers()-1, each value appearing
// exactly once. Callers may therefore index per-worker state arrays
// by the ID. The userData value is handed to every invocation
// unchanged.
//
// SingleMethodExecute returns after all invocations have settled,
// returning the left-most error value that is different from nil. A
// nil f is a *ConfigError.
func (d *Dispatcher) SingleMethodExecute(f gridpar.WorkerFunc, userData any) error {
	if f == nil {
		return &ConfigError{Reason: "no worker function set"}
	}
	// The batch count equals the range size, so every batch the
	// engine produces is a single worker identity.
	return d.engine.Range(0, d.workers, d.workers, func(low, _ int, _ bool) error {
		return f(gridpar.WorkerInfo{ID: low, Count: d.workers, UserData: userData})
	})
}

// ParallelizeArray invokes f once per index in the half-open range
// [first, lastPlusOne), as units of exactly one index each. An empty
// range performs no invocation; a single-index range invokes f
// synchronously with no dispatch overhead.
//
// If stage is non-nil, it receives a progress fraction of 0 before
// any unit runs and 1 after all units have settled, with per-index
// fractions in between emitted from the origin goroutine only. Units
// poll the stage's abort flag before running; an observed abort skips
// the remaining unit bodies and the call returns an *AbortError once
// in-flight units have finished. A nil f is a *ConfigError.
func (d *Dispatcher) ParallelizeArray(first, lastPlusOne int, f gridpar.ArrayFunc, stage gridpar.Stage) error {
	if f == nil {
		return &ConfigError{Reason: "no array function set"}
	}
	t := newTracker(stage, lastPlusOne-first)
	t.begin()
	var err error
	switch size := lastPlusOne - first; {
	case size > 1:
		run := func(low, _ int, caller bool) error {
			return t.unit(1, caller, func() error { return f(low) })
		}
		if d.workers == 1 {
			err = sequential.Range(first, lastPlusOne, size, run)
		} else {
			err = d.engine.Range(first, lastPlusOne, size, run)
		}
	case size == 1:
		err = f(first)
	}
	// A range with first >= lastPlusOne executes nothing.
	return t.finish(err)
}

// ParallelizeImageRegion invokes f over disjoint leaf regions that
// cover r exactly, splitting along the highest divisible dimension
// first down to a grain chosen for the configured worker count. The
// functor receives fresh copies of each leaf's per-dimension index
// and size.
//
// With a single worker, f is invoked synchronously once over the
// whole region, with no splitting. An empty region performs no
// invocation.
//
// If stage is non-nil, progress is bracketed by 0 and 1 as for
// ParallelizeArray, with intermediate fractions weighted by each
// leaf's pixel count rather than by leaf count. Abort semantics are
// identical to ParallelizeArray. A nil f is a *ConfigError.
func (d *Dispatcher) ParallelizeImageRegion(r region.Region, f gridpar.RegionFunc, stage gridpar.Stage) error {
	if f == nil {
		return &ConfigError{Reason: "no region function set"}
	}
	total := r.Pixels()
	t := newTracker(stage, total)
	t.begin()
	var err error
	switch {
	case r.IsEmpty():
		// Empty regions are never handed to a worker.
	case d.workers == 1:
		index, size := bounds(r)
		err = f(index, size)
	default:
		grain := internal.ComputeGrain(total, d.workers)
		err = d.engine.Region(r, grain, func(leaf region.Region, caller bool) error {
			return t.unit(leaf.Pixels(), caller, func() error {
				index, size := bounds(leaf)
				return f(index, size)
			})
		})
	}
	return t.finish(err)
}

// bounds returns copies of the region's index and size slices, so
// that functors can retain them without aliasing dispatcher or caller
// state.
func bounds(r region.Region) (index, size []int) {
	index = make([]int, r.Dim())
	size = make([]int, r.Dim())
	copy(index, r.Index)
	copy(size, r.Size)
	return
}
