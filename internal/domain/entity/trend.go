package entity

import "time"

// Suggestion is a single ranked search suggestion as returned by the
// trend store. Ordering is store-authoritative; consumers do not re-sort.
type Suggestion struct {
	Text   string `json:"text"`
	Weight int64  `json:"weight"`
}

// TrendEntry represents a search term tracked in the trend store.
type TrendEntry struct {
	ID        int64     `json:"id"`
	Term      string    `json:"term"`
	Weight    int64     `json:"weight"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TrendStats contains aggregated trend store statistics.
type TrendStats struct {
	TotalTerms  int64 `json:"total_terms"`
	TotalWeight int64 `json:"total_weight"`
}
