package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avencia/servio/internal/domain/entity"
	"github.com/avencia/servio/internal/domain/repository"
	"github.com/avencia/servio/internal/logging"
)

type trendRepo struct {
	db *sql.DB
}

// NewTrendRepository creates a new SQLite-backed trend repository.
func NewTrendRepository(db *sql.DB) repository.TrendRepository {
	return &trendRepo{db: db}
}

// escapeLike escapes LIKE wildcards so a prefix is matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *trendRepo) SearchPrefix(ctx context.Context, prefix string, limit int) ([]entity.Suggestion, error) {
	log := logging.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, `
		SELECT term, weight
		FROM trends
		WHERE term LIKE ? ESCAPE '\'
		ORDER BY weight DESC, term ASC
		LIMIT ?`,
		escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("prefix query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	suggestions := make([]entity.Suggestion, 0, limit)
	for rows.Next() {
		var s entity.Suggestion
		if err := rows.Scan(&s.Text, &s.Weight); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestions: %w", err)
	}

	log.Debug().Str("prefix", prefix).Int("count", len(suggestions)).Msg("trend prefix query")
	return suggestions, nil
}

func (r *trendRepo) Bump(ctx context.Context, term string, delta int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trends (term, weight, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(term) DO UPDATE SET
			weight = weight + excluded.weight,
			updated_at = CURRENT_TIMESTAMP`,
		term, delta)
	if err != nil {
		return fmt.Errorf("bump term: %w", err)
	}
	return nil
}

func (r *trendRepo) Top(ctx context.Context, limit int) ([]*entity.TrendEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, term, weight, updated_at, created_at
		FROM trends
		ORDER BY weight DESC, term ASC
		LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("top query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTrendEntries(rows)
}

func (r *trendRepo) FindByTerm(ctx context.Context, term string) (*entity.TrendEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, term, weight, updated_at, created_at
		FROM trends
		WHERE term = ?`,
		term)

	entry := &entity.TrendEntry{}
	err := row.Scan(&entry.ID, &entry.Term, &entry.Weight, &entry.UpdatedAt, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find term: %w", err)
	}
	return entry, nil
}

func (r *trendRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trends WHERE updated_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete stale trends: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func (r *trendRepo) GetStats(ctx context.Context) (*entity.TrendStats, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(weight), 0) FROM trends`)

	stats := &entity.TrendStats{}
	if err := row.Scan(&stats.TotalTerms, &stats.TotalWeight); err != nil {
		return nil, fmt.Errorf("trend stats: %w", err)
	}
	return stats, nil
}

func scanTrendEntries(rows *sql.Rows) ([]*entity.TrendEntry, error) {
	var entries []*entity.TrendEntry
	for rows.Next() {
		entry := &entity.TrendEntry{}
		if err := rows.Scan(&entry.ID, &entry.Term, &entry.Weight, &entry.UpdatedAt, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trend entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trend entries: %w", err)
	}
	return entries, nil
}
