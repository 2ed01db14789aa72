// Package gridpar provides a parallel-execution dispatcher for
// data-parallel numeric work over N-dimensional rectangular regions,
// such as images and dense arrays. Given a region of work and a
// per-unit function, it splits the region into independent sub-tasks,
// runs them across a bounded set of workers, aggregates progress, and
// propagates cancellation and errors deterministically.
//
// Gridpar provides the following subpackages:
//
// gridpar/region provides the N-dimensional Region value type and a
// pure proportional splitting algorithm over it.
//
// gridpar/parallel provides the fork-join engine that executes
// integer ranges and regions in parallel by recursive binary
// splitting.
//
// gridpar/sequential provides sequential implementations of the
// engine's operations, for testing and debugging purposes.
//
// gridpar/dispatch provides the top-level dispatcher: array
// parallelization with exact per-index units, image-region
// parallelization with pixel-weighted progress, and the fixed
// worker-identity execution mode, all with cooperative abort.
//
// The root package declares the functor types and the collaborator
// interface shared by the subpackages.
//
// Gridpar has been influenced by ideas from Threading Building Blocks
// (proportional range splitting, simple and automatic partitioners)
// and by fork-join task parallelism as described in
// http://supertech.csail.mit.edu/papers/steal.pdf
package gridpar
