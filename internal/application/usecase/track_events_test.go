package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/servio/internal/application/usecase"
	"github.com/avencia/servio/internal/domain/entity"
)

// fakeEventRepo is an in-memory repository.EventRepository.
type fakeEventRepo struct {
	mu      sync.Mutex
	events  []*entity.SearchEvent
	saveErr error
}

func (r *fakeEventRepo) Save(_ context.Context, event *entity.SearchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *fakeEventRepo) GetRecent(_ context.Context, limit int) ([]*entity.SearchEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.SearchEvent, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}

func (r *fakeEventRepo) CountByKind(_ context.Context) ([]entity.KindCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tally := make(map[string]int64)
	for _, e := range r.events {
		tally[e.Kind]++
	}
	var counts []entity.KindCount
	for kind, count := range tally {
		counts = append(counts, entity.KindCount{Kind: kind, Count: count})
	}
	return counts, nil
}

func TestTrackEvents_RecordPersistsEvent(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	trendRepo := newFakeTrendRepo()
	uc := usecase.NewTrackEventsUseCase(eventRepo, trendRepo)

	err := uc.Record(context.Background(), entity.EventSearchSubmitted, map[string]string{
		"identity": "user-1",
		"text":     "plumber",
	})
	require.NoError(t, err)

	require.Len(t, eventRepo.events, 1)
	assert.Equal(t, entity.EventSearchSubmitted, eventRepo.events[0].Kind)
	assert.Equal(t, "user-1", eventRepo.events[0].Identity)
}

func TestTrackEvents_SelectionReinforcesTrend(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	trendRepo := newFakeTrendRepo()
	uc := usecase.NewTrackEventsUseCase(eventRepo, trendRepo)

	err := uc.Record(context.Background(), entity.EventSuggestionSelected, map[string]string{
		"text": "plumber",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), trendRepo.weights["plumber"])
}

func TestTrackEvents_SubmitDoesNotReinforce(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	trendRepo := newFakeTrendRepo()
	uc := usecase.NewTrackEventsUseCase(eventRepo, trendRepo)

	err := uc.Record(context.Background(), entity.EventSearchSubmitted, map[string]string{
		"text": "plumber",
	})
	require.NoError(t, err)

	assert.Empty(t, trendRepo.weights)
}

func TestTrackEvents_ReinforcementFailureIsNonFatal(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	trendRepo := newFakeTrendRepo()
	trendRepo.bumpErr = errors.New("db locked")
	uc := usecase.NewTrackEventsUseCase(eventRepo, trendRepo)

	err := uc.Record(context.Background(), entity.EventSuggestionSelected, map[string]string{
		"text": "plumber",
	})
	require.NoError(t, err)
	assert.Len(t, eventRepo.events, 1)
}

func TestTrackEvents_EmptyKindRejected(t *testing.T) {
	uc := usecase.NewTrackEventsUseCase(&fakeEventRepo{}, newFakeTrendRepo())

	err := uc.Record(context.Background(), "", nil)
	require.Error(t, err)
}

func TestTrackEvents_SaveFailureWrapped(t *testing.T) {
	eventRepo := &fakeEventRepo{saveErr: errors.New("disk full")}
	uc := usecase.NewTrackEventsUseCase(eventRepo, newFakeTrendRepo())

	err := uc.Record(context.Background(), entity.EventSearchSubmitted, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save event")
}

func TestTrackEvents_GetRecentDefaultsLimit(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	uc := usecase.NewTrackEventsUseCase(eventRepo, newFakeTrendRepo())

	for range 3 {
		require.NoError(t, uc.Record(context.Background(), entity.EventSearchSubmitted, nil))
	}

	events, err := uc.GetRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
