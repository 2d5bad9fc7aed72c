package entity

import "time"

// Event kinds recorded by the tracking store.
const (
	EventSuggestionSelected = "suggestion_selected"
	EventSearchSubmitted    = "search_submitted"
)

// SearchEvent is one append-only tracking record.
type SearchEvent struct {
	ID        int64             `json:"id"`
	Kind      string            `json:"kind"`
	Identity  string            `json:"identity"`
	Payload   map[string]string `json:"payload"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewSearchEvent creates an event stamped with the current time.
func NewSearchEvent(kind, identity string, payload map[string]string) *SearchEvent {
	return &SearchEvent{
		Kind:      kind,
		Identity:  identity,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

// KindCount is a per-kind event tally.
type KindCount struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}
