package netgate

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout reports that reachability never became true within the
	// timeout window. Retry and backoff decisions belong to the caller.
	ErrTimeout = errors.New("netgate: timeout elapsed before reachable")

	// ErrExhausted reports that the source closed its stream without ever
	// reporting reachable. Usually a single-shot source handed to a second
	// Run.
	ErrExhausted = errors.New("netgate: signal source exhausted")

	// ErrNoResult reports that neither branch of the race produced an
	// outcome. It exists so Run can never hang; a correct build never
	// returns it.
	ErrNoResult = errors.New("netgate: no result produced")
)

// InternalError wraps an unexpected failure of the run's machinery: a failed
// Subscribe, or a panic recovered from the operation or the source.
type InternalError struct {
	cause error
}

func (e *InternalError) Error() string { return fmt.Sprintf("netgate: internal: %v", e.cause) }

// Unwrap returns the original cause for diagnostics.
func (e *InternalError) Unwrap() error { return e.cause }
