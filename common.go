package gridpar

type (
	// An ArrayFunc is a function that receives a single array index
	// and processes the element at that index. It is invoked exactly
	// once per index of the dispatched range.
	ArrayFunc func(index int) error

	// A RegionFunc is a function that receives the bounds of one
	// rectangular sub-region, as a per-dimension index and size. The
	// slices are fresh copies owned by the invocation; retaining them
	// is safe.
	RegionFunc func(index, size []int) error

	// A WorkerFunc is a function that receives the identity of one
	// logical worker. It is invoked exactly once per worker ID.
	WorkerFunc func(info WorkerInfo) error
)

// A WorkerInfo identifies one logical worker of a
// SingleMethodExecute call. It is constructed fresh per invocation
// and never shared.
type WorkerInfo struct {
	// ID is the worker's identity, in 0..Count-1. Each value occurs
	// exactly once per call, so per-worker state arrays may be
	// indexed by it.
	ID int

	// Count is the total number of logical workers of the call.
	Count int

	// UserData is the opaque value passed to SingleMethodExecute.
	UserData any
}

// A Stage is the collaborator on whose behalf work is dispatched,
// typically a pipeline stage or filter. The dispatcher reports
// progress to it and polls it for cancellation.
//
// ReportProgress receives fractions in [0, 1]. It is only ever
// invoked from the goroutine that initiated the dispatch call, so
// implementations need not be safe for concurrent use and observe a
// non-decreasing sequence of fractions.
//
// AbortRequested must be safe to call from any goroutine. The
// dispatcher only reads the abort state; it never sets it.
//
// Name is used to enrich abort errors with the originating stage.
type Stage interface {
	ReportProgress(fraction float64)
	AbortRequested() bool
	Name() string
}
