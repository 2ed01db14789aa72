package dispatch

import (
	"fmt"
)

// A ConfigError reports an invalid dispatcher configuration, such as
// a missing functor or a non-positive worker count. It is returned
// before any work is dispatched.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "dispatch: " + e.Reason
}

// An AbortError reports that the collaborating stage requested
// cancellation while work was being dispatched on its behalf. It is
// returned only after all in-flight units have settled. The
// dispatcher never retries; retry policy, if any, belongs to the
// caller.
type AbortError struct {
	// Stage is the diagnostic name of the collaborator that
	// requested the abort.
	Stage string
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("dispatch: abort requested by %v during parallel execution", e.Stage)
}
