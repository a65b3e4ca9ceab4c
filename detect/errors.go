package detect

import "errors"

var (
	// ErrBoundaryNotFound means the automatic recovery-boundary scan
	// exhausted its bound without finding a sustained effort. The current
	// trace cannot be analysed; other traces in a batch are unaffected.
	ErrBoundaryNotFound = errors.New("no effort boundary found within the recovery search bound")

	// ErrTraceExhausted means the trace ran out of samples before a
	// planned segment could be located.
	ErrTraceExhausted = errors.New("trace exhausted before the planned segment was located")

	// ErrNoUsableTraces means every trace in a batch failed detection.
	ErrNoUsableTraces = errors.New("no trace in the batch produced intervals")
)
