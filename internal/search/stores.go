package search

import (
	"context"

	"github.com/avencia/servio/internal/domain/entity"
)

// SuggestionStore is the read side of the trend store. Results arrive
// ranked by descending weight; the controller trusts that ordering.
type SuggestionStore interface {
	Search(ctx context.Context, prefix string, limit int) ([]entity.Suggestion, error)
}

// EventStore is the write side of the tracking store. Failures are
// non-fatal to callers.
type EventStore interface {
	Record(ctx context.Context, kind string, payload map[string]string) error
}
