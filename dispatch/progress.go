package dispatch

import (
	"sync/atomic"

	"github.com/exagrid/gridpar"
)

// A tracker aggregates progress and abort state for one dispatch
// call. It is created when the call starts and discarded when it
// returns; nothing is shared across calls.
//
// The completed-weight counter is the only state written by multiple
// goroutines, and it is atomic. Progress is only ever emitted to the
// stage from units running on the origin goroutine, so a stage that
// is not safe for concurrent use still observes a serialized,
// non-decreasing sequence of fractions.
type tracker struct {
	stage gridpar.Stage
	total int64
	done  atomic.Int64
}

func newTracker(stage gridpar.Stage, total int) *tracker {
	return &tracker{stage: stage, total: int64(total)}
}

// begin emits the leading 0.0 of the progress bracket.
func (t *tracker) begin() {
	if t.stage != nil {
		t.stage.ReportProgress(0)
	}
}

// unit wraps the execution of one work unit of the given progress
// weight. If the stage has requested an abort, the body is skipped
// and an *AbortError is returned; units already inside their body are
// never interrupted. On success the completed weight is added, and if
// the unit runs on the origin goroutine the new fraction is emitted.
func (t *tracker) unit(weight int, caller bool, body func() error) error {
	if t.stage != nil && t.stage.AbortRequested() {
		return &AbortError{Stage: t.stage.Name()}
	}
	if err := body(); err != nil {
		return err
	}
	if t.stage != nil {
		done := t.done.Add(int64(weight))
		if caller {
			t.stage.ReportProgress(float64(done) / float64(t.total))
		}
	}
	return nil
}

// finish emits the trailing 1.0 of the progress bracket and re-checks
// the abort flag, so that the caller observes the abort even when it
// was raised after the last unit's own check. An abort observed here
// takes precedence over err.
func (t *tracker) finish(err error) error {
	if t.stage == nil {
		return err
	}
	t.stage.ReportProgress(1)
	if t.stage.AbortRequested() {
		return &AbortError{Stage: t.stage.Name()}
	}
	return err
}
