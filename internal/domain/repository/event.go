package repository

import (
	"context"

	"github.com/avencia/servio/internal/domain/entity"
)

// EventRepository defines operations for the append-only event store.
type EventRepository interface {
	// Save appends one event.
	Save(ctx context.Context, event *entity.SearchEvent) error

	// GetRecent retrieves the most recent events, newest first.
	GetRecent(ctx context.Context, limit int) ([]*entity.SearchEvent, error)

	// CountByKind tallies events per kind.
	CountByKind(ctx context.Context) ([]entity.KindCount, error)
}
