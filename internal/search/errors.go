package search

import "fmt"

// FetchError reports a failed suggestion query. It is caught at the
// controller boundary and reported to the log, never returned to callers.
type FetchError struct {
	Prefix string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("suggestion fetch for %q failed: %v", e.Prefix, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RecordError reports a failed event-tracking write. Selection UX is
// never blocked by it; the recorder logs and continues.
type RecordError struct {
	Kind string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("event record %q failed: %v", e.Kind, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
