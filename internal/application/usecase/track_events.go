package usecase

import (
	"context"
	"fmt"

	"github.com/avencia/servio/internal/domain/entity"
	"github.com/avencia/servio/internal/domain/repository"
	"github.com/avencia/servio/internal/logging"
)

// TrackEventsUseCase persists tracking events and feeds selections back
// into the trend ranking. It satisfies the search controller's
// EventStore port.
type TrackEventsUseCase struct {
	eventRepo repository.EventRepository
	trendRepo repository.TrendRepository
}

// NewTrackEventsUseCase creates a new event tracking use case.
func NewTrackEventsUseCase(eventRepo repository.EventRepository, trendRepo repository.TrendRepository) *TrackEventsUseCase {
	return &TrackEventsUseCase{
		eventRepo: eventRepo,
		trendRepo: trendRepo,
	}
}

// Record appends one event. A suggestion selection additionally bumps
// the selected term so future rankings reflect it; that reinforcement is
// best-effort and never fails the record.
func (uc *TrackEventsUseCase) Record(ctx context.Context, kind string, payload map[string]string) error {
	log := logging.FromContext(ctx)

	if kind == "" {
		return fmt.Errorf("event kind cannot be empty")
	}

	event := entity.NewSearchEvent(kind, payload["identity"], payload)
	if err := uc.eventRepo.Save(ctx, event); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	if kind == entity.EventSuggestionSelected && uc.trendRepo != nil {
		if term := payload["text"]; term != "" {
			if err := uc.trendRepo.Bump(ctx, term, 1); err != nil {
				log.Warn().Err(err).Str("term", term).Msg("trend reinforcement failed")
			}
		}
	}

	log.Debug().Str("kind", kind).Msg("event recorded")
	return nil
}

// GetRecent retrieves the most recent events, newest first.
func (uc *TrackEventsUseCase) GetRecent(ctx context.Context, limit int) ([]*entity.SearchEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	events, err := uc.eventRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent events: %w", err)
	}

	return events, nil
}

// CountByKind tallies recorded events per kind.
func (uc *TrackEventsUseCase) CountByKind(ctx context.Context) ([]entity.KindCount, error) {
	counts, err := uc.eventRepo.CountByKind(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	return counts, nil
}
