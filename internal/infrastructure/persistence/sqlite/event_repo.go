package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/avencia/servio/internal/domain/entity"
	"github.com/avencia/servio/internal/domain/repository"
)

type eventRepo struct {
	db *sql.DB
}

// NewEventRepository creates a new SQLite-backed event repository.
func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Save(ctx context.Context, event *entity.SearchEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO events (kind, identity, payload, created_at)
		VALUES (?, ?, ?, ?)`,
		event.Kind, event.Identity, string(payload), event.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *eventRepo) GetRecent(ctx context.Context, limit int) ([]*entity.SearchEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, identity, payload, created_at
		FROM events
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("recent events query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*entity.SearchEvent
	for rows.Next() {
		event := &entity.SearchEvent{}
		var payload string
		if err := rows.Scan(&event.ID, &event.Kind, &event.Identity, &payload, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &event.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal payload: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) CountByKind(ctx context.Context) ([]entity.KindCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT kind, COUNT(*)
		FROM events
		GROUP BY kind
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("count events query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []entity.KindCount
	for rows.Next() {
		var kc entity.KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, fmt.Errorf("scan kind count: %w", err)
		}
		counts = append(counts, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kind counts: %w", err)
	}
	return counts, nil
}
