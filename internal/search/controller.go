// Package search implements the incremental-search controller: debounced
// query input, epoch-guarded asynchronous suggestion fetches, and
// fire-and-forget selection recording.
package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/avencia/servio/internal/clock"
	"github.com/avencia/servio/internal/domain/entity"
	"github.com/avencia/servio/internal/logging"
)

const (
	// DefaultMinQueryLength is the minimum trimmed query length that
	// triggers a fetch.
	DefaultMinQueryLength = 2
	// DefaultDebounce is the quiet period before a fetch is dispatched.
	DefaultDebounce = 300 * time.Millisecond
	// DefaultMaxResults caps the number of suggestions requested.
	DefaultMaxResults = 5
)

// Config holds construction options for a Controller.
type Config struct {
	// Identity is the consumer-supplied identity token. Selections are
	// recorded only when it is non-empty.
	Identity string
	// MinQueryLength defaults to DefaultMinQueryLength when <= 0.
	MinQueryLength int
	// Debounce defaults to DefaultDebounce when <= 0.
	Debounce time.Duration
	// MaxResults defaults to DefaultMaxResults when <= 0.
	MaxResults int
	// Clock defaults to the system clock.
	Clock clock.Clock
	// OnChange, when set, is invoked after every observable state change.
	// It runs outside the controller lock and may be called from timer
	// and fetch goroutines.
	OnChange func()
}

// State is a consistent snapshot of the controller's visible state.
type State struct {
	Query       string
	Suggestions []entity.Suggestion
	Visible     bool
	Loading     bool
}

// Controller owns the query text, the debounce timer, and the in-flight
// fetch identity. Superseded fetches are discarded by epoch comparison
// rather than transport cancellation: every dispatched fetch is stamped
// with the epoch counter, and a settlement applies only while its stamp
// is still current.
type Controller struct {
	store    SuggestionStore
	recorder *Recorder

	identity    string
	minQueryLen int
	debounce    time.Duration
	maxResults  int
	clk         clock.Clock
	onChange    func()

	mu            sync.Mutex
	query         string
	suggestions   []entity.Suggestion
	visible       bool
	loading       bool
	epoch         uint64
	debounceTimer clock.Timer
	closed        bool
}

// NewController creates a suggestion controller. The recorder may be nil
// when selection tracking is not wanted.
func NewController(store SuggestionStore, recorder *Recorder, cfg Config) *Controller {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = DefaultMinQueryLength
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System()
	}

	return &Controller{
		store:       store,
		recorder:    recorder,
		identity:    cfg.Identity,
		minQueryLen: cfg.MinQueryLength,
		debounce:    cfg.Debounce,
		maxResults:  cfg.MaxResults,
		clk:         cfg.Clock,
		onChange:    cfg.OnChange,
	}
}

// UpdateQuery sets the query text immediately and restarts the debounce
// timer. An empty text clears suggestions, hides the panel, and cancels
// any pending debounce without scheduling a fetch.
func (c *Controller) UpdateQuery(ctx context.Context, text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.query = text
	c.stopDebounceLocked()

	if text == "" {
		c.clearLocked()
		c.mu.Unlock()
		c.notify()
		return
	}

	c.debounceTimer = c.clk.AfterFunc(c.debounce, func() {
		c.debounceExpired(ctx)
	})
	c.mu.Unlock()
	c.notify()
}

// debounceExpired runs on the timer goroutine once the input has been
// quiet for the configured interval.
func (c *Controller) debounceExpired(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	prefix := strings.TrimSpace(c.query)
	if utf8.RuneCountInString(prefix) < c.minQueryLen {
		c.mu.Unlock()
		return
	}

	c.epoch++
	epoch := c.epoch
	c.loading = true
	c.mu.Unlock()
	c.notify()

	go c.fetch(ctx, epoch, prefix)
}

// fetch issues one store query and applies its settlement iff the stamp
// is still the latest epoch. A stale settlement mutates nothing.
func (c *Controller) fetch(ctx context.Context, epoch uint64, prefix string) {
	results, err := c.store.Search(ctx, prefix, c.maxResults)

	c.mu.Lock()
	if c.closed || epoch != c.epoch {
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.suggestions = nil
		c.visible = false
		c.loading = false
		c.mu.Unlock()
		log := logging.FromContext(ctx)
		log.Error().Err(&FetchError{Prefix: prefix, Err: err}).Msg("suggestion fetch failed")
		c.notify()
		return
	}

	c.suggestions = results
	c.visible = len(results) > 0
	c.loading = false
	c.mu.Unlock()

	log := logging.FromContext(ctx)
	log.Debug().Str("prefix", prefix).Int("count", len(results)).Msg("suggestions applied")
	c.notify()
}

// SelectSuggestion adopts the chosen text as the query, clears and hides
// the suggestion panel, and records the selection asynchronously when an
// identity is configured.
func (c *Controller) SelectSuggestion(ctx context.Context, text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.query = text
	c.stopDebounceLocked()
	c.clearLocked()
	identity := c.identity
	c.mu.Unlock()
	c.notify()

	if identity != "" && c.recorder != nil {
		go c.recorder.Record(ctx, identity, text)
	}
}

// ClearSearch resets the query to empty and hides the panel. An already
// dispatched fetch stays subject to the epoch guard and cannot resurrect
// stale suggestions.
func (c *Controller) ClearSearch() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.query = ""
	c.stopDebounceLocked()
	c.clearLocked()
	c.mu.Unlock()
	c.notify()
}

// clearLocked empties the suggestion state and advances the epoch so an
// outstanding fetch settles as stale. Callers must hold c.mu.
func (c *Controller) clearLocked() {
	c.suggestions = nil
	c.visible = false
	c.loading = false
	c.epoch++
}

// HideSuggestions hides the panel without touching the query text or the
// suggestion list.
func (c *Controller) HideSuggestions() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.visible = false
	c.mu.Unlock()
	c.notify()
}

// Close tears the controller down: the pending debounce is cancelled and
// the epoch advances once more so any outstanding fetch is guaranteed
// stale on arrival. Every later operation is a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.closed = true
	c.stopDebounceLocked()
	c.epoch++
	c.mu.Unlock()
}

// stopDebounceLocked cancels the pending debounce timer, if any.
// Callers must hold c.mu.
func (c *Controller) stopDebounceLocked() {
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
}

// Snapshot returns a consistent copy of the visible state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	suggestions := make([]entity.Suggestion, len(c.suggestions))
	copy(suggestions, c.suggestions)

	return State{
		Query:       c.query,
		Suggestions: suggestions,
		Visible:     c.visible,
		Loading:     c.loading,
	}
}

// Query returns the current query text.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Visible reports whether the suggestion panel is shown.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Loading reports whether a current-epoch fetch is outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
