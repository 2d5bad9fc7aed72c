package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avencia/servio/internal/search"
)

func TestRecorder_WritesSelectionEvent(t *testing.T) {
	events := &recordingEventStore{}
	recorder := search.NewRecorder(events)

	recorder.Record(context.Background(), "user-1", "plumber")

	assert.Equal(t, 1, events.count())
	assert.Equal(t, "plumber", events.records[0]["text"])
	assert.Equal(t, "user-1", events.records[0]["identity"])
}

func TestRecorder_NoOpWithoutIdentity(t *testing.T) {
	events := &recordingEventStore{}
	recorder := search.NewRecorder(events)

	recorder.Record(context.Background(), "", "plumber")

	assert.Zero(t, events.count())
}

func TestRecorder_SwallowsStoreFailure(t *testing.T) {
	events := &recordingEventStore{err: errors.New("store down")}
	recorder := search.NewRecorder(events)

	// Must not panic or propagate.
	recorder.Record(context.Background(), "user-1", "plumber")

	assert.Zero(t, events.count())
}

func TestRecorder_NilStoreIsSafe(t *testing.T) {
	recorder := search.NewRecorder(nil)
	recorder.Record(context.Background(), "user-1", "plumber")
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := &search.FetchError{Prefix: "plumb", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "plumb")
}

func TestRecordError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := &search.RecordError{Kind: "suggestion_selected", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "suggestion_selected")
}
