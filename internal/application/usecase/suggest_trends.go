// Package usecase contains application services bridging the domain
// repositories to the controllers and CLI.
package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/avencia/servio/internal/domain/entity"
	"github.com/avencia/servio/internal/domain/repository"
	"github.com/avencia/servio/internal/logging"
)

const defaultSuggestLimit = 5

// SuggestTrendsUseCase serves ranked prefix suggestions from the trend
// store. It satisfies the search controller's SuggestionStore port.
type SuggestTrendsUseCase struct {
	trendRepo repository.TrendRepository
	group     singleflight.Group
}

// NewSuggestTrendsUseCase creates a new trend suggestion use case.
func NewSuggestTrendsUseCase(trendRepo repository.TrendRepository) *SuggestTrendsUseCase {
	return &SuggestTrendsUseCase{trendRepo: trendRepo}
}

// Search returns up to limit suggestions for the prefix, ordered by
// descending weight. Concurrent identical queries are collapsed into a
// single repository call.
func (uc *SuggestTrendsUseCase) Search(ctx context.Context, prefix string, limit int) ([]entity.Suggestion, error) {
	log := logging.FromContext(ctx)

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []entity.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	key := prefix + "\x00" + strconv.Itoa(limit)
	v, err, shared := uc.group.Do(key, func() (any, error) {
		return uc.trendRepo.SearchPrefix(ctx, prefix, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search trends: %w", err)
	}

	suggestions := v.([]entity.Suggestion)
	log.Debug().
		Str("prefix", prefix).
		Int("count", len(suggestions)).
		Bool("shared", shared).
		Msg("trend prefix search completed")

	return suggestions, nil
}

// Top retrieves the highest-weighted trend terms.
func (uc *SuggestTrendsUseCase) Top(ctx context.Context, limit int) ([]*entity.TrendEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	entries, err := uc.trendRepo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top trends: %w", err)
	}

	return entries, nil
}

// Bump reinforces a term's weight, creating the term when absent.
func (uc *SuggestTrendsUseCase) Bump(ctx context.Context, term string, delta int64) error {
	log := logging.FromContext(ctx)

	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	if delta == 0 {
		delta = 1
	}

	if err := uc.trendRepo.Bump(ctx, term, delta); err != nil {
		return fmt.Errorf("failed to bump trend: %w", err)
	}

	log.Debug().Str("term", term).Int64("delta", delta).Msg("trend bumped")
	return nil
}

// Seed loads term/weight pairs into the trend store.
func (uc *SuggestTrendsUseCase) Seed(ctx context.Context, terms map[string]int64) (int, error) {
	log := logging.FromContext(ctx)

	loaded := 0
	for term, weight := range terms {
		term = strings.TrimSpace(term)
		if term == "" || weight <= 0 {
			continue
		}
		if err := uc.trendRepo.Bump(ctx, term, weight); err != nil {
			return loaded, fmt.Errorf("failed to seed term %q: %w", term, err)
		}
		loaded++
	}

	log.Info().Int("terms", loaded).Msg("trend store seeded")
	return loaded, nil
}

// Prune removes terms not reinforced within the retention window.
func (uc *SuggestTrendsUseCase) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	log := logging.FromContext(ctx)

	before := time.Now().Add(-olderThan)
	removed, err := uc.trendRepo.DeleteOlderThan(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune trends: %w", err)
	}

	log.Info().Int64("removed", removed).Time("before", before).Msg("stale trends pruned")
	return removed, nil
}

// GetStats retrieves aggregate trend store statistics.
func (uc *SuggestTrendsUseCase) GetStats(ctx context.Context) (*entity.TrendStats, error) {
	stats, err := uc.trendRepo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trend stats: %w", err)
	}
	return stats, nil
}
