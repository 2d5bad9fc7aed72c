package search

import (
	"context"

	"github.com/avencia/servio/internal/domain/entity"
	"github.com/avencia/servio/internal/logging"
)

// Recorder writes selection events to the tracking store. Writes are
// fire-and-forget: failures are logged and swallowed so analytics can
// never block or break the selection flow.
type Recorder struct {
	events EventStore
}

// NewRecorder creates a selection recorder.
func NewRecorder(events EventStore) *Recorder {
	return &Recorder{events: events}
}

// Record writes one suggestion-selected event. It is a no-op when the
// identity token is absent.
func (r *Recorder) Record(ctx context.Context, identity, suggestionText string) {
	if identity == "" || r.events == nil {
		return
	}

	log := logging.FromContext(ctx)

	payload := map[string]string{
		"identity": identity,
		"text":     suggestionText,
	}
	if err := r.events.Record(ctx, entity.EventSuggestionSelected, payload); err != nil {
		log.Warn().Err(&RecordError{Kind: entity.EventSuggestionSelected, Err: err}).
			Msg("selection event dropped")
		return
	}

	log.Debug().Str("text", suggestionText).Msg("selection recorded")
}
