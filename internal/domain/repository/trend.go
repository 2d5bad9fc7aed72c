package repository

import (
	"context"
	"time"

	"github.com/avencia/servio/internal/domain/entity"
)

// TrendRepository defines operations for trend term persistence.
type TrendRepository interface {
	// SearchPrefix returns up to limit suggestions whose term starts with
	// prefix, ordered by weight descending (term ascending on ties).
	SearchPrefix(ctx context.Context, prefix string, limit int) ([]entity.Suggestion, error)

	// Bump upserts a term, adding delta to its weight.
	Bump(ctx context.Context, term string, delta int64) error

	// Top retrieves the highest-weighted terms.
	Top(ctx context.Context, limit int) ([]*entity.TrendEntry, error)

	// FindByTerm retrieves a single entry, nil when absent.
	FindByTerm(ctx context.Context, term string) (*entity.TrendEntry, error)

	// DeleteOlderThan removes terms not bumped since the given time.
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)

	// GetStats retrieves aggregate statistics.
	GetStats(ctx context.Context) (*entity.TrendStats, error)
}
