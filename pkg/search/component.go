// Package search implements the incremental search-and-suggest component:
// synchronous query input handling, debounced lookup dispatch, an exact-match
// per-instance result cache and tiered suggestion rendering.
package search

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/veldt-labs/chemseek/pkg/catalog"
)

// State is the component's position in its input lifecycle.
type State int

const (
	// StateIdle: empty input, suggestion panel closed.
	StateIdle State = iota
	// StateTyping: non-empty input, panel open, lookup pending or in flight.
	StateTyping
	// StateShowing: results populated for the current input.
	StateShowing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTyping:
		return "typing"
	case StateShowing:
		return "showing"
	default:
		return "unknown"
	}
}

// Navigator receives the selection or submission target: the candidate's
// canonical name plus its image reference when one is known. Navigation is
// permissive; errors are logged, never propagated.
type Navigator interface {
	Navigate(name, imageURL string) error
}

// Config carries the per-instance knobs of a Component.
type Config struct {
	// Debounce is the dispatcher quiet period. Zero means DefaultDebounce.
	Debounce time.Duration
	// Limit and MinSimilarity are forwarded to every lookup.
	Limit         int
	MinSimilarity float64
	// OnUpdate, when set, is invoked after each state update caused by a
	// completed lookup. Used by the CLI loop and by tests.
	OnUpdate func(query string, results catalog.ResultSet)
}

// Component owns one incremental-search instance: the displayed query text,
// the suggestion panel state and the result set, plus the dispatcher and
// cache bound to its lifetime.
type Component struct {
	dispatcher *Dispatcher
	cache      *ResultCache
	nav        Navigator
	onUpdate   func(string, catalog.ResultSet)

	mu        sync.Mutex
	query     string
	results   catalog.ResultSet
	state     State
	panelOpen bool
	loading   bool
}

// NewComponent builds a component over the given backend. nav may be nil when
// submission is not used (e.g. the IPC server path).
func NewComponent(searcher catalog.Searcher, nav Navigator, cfg Config) *Component {
	c := &Component{
		cache:    NewResultCache(),
		nav:      nav,
		onUpdate: cfg.OnUpdate,
		state:    StateIdle,
	}
	opts := catalog.Options{Limit: cfg.Limit, MinSimilarity: cfg.MinSimilarity}
	c.dispatcher = NewDispatcher(searcher, c.cache, cfg.Debounce, opts, c.applyResults)
	return c
}

// SetQuery mirrors a text-change event: the displayed text updates
// synchronously, the panel opens (or closes on empty input) and a debounced
// lookup is scheduled.
func (c *Component) SetQuery(text string) {
	c.mu.Lock()
	c.query = text
	if text == "" {
		c.results = nil
		c.panelOpen = false
		c.loading = false
		c.state = StateIdle
		c.mu.Unlock()
		c.dispatcher.Cancel()
		return
	}
	c.panelOpen = true
	c.loading = true
	c.state = StateTyping
	c.mu.Unlock()
	c.dispatcher.Schedule(text)
}

// Submit handles explicit submission: the first suggestion is the implicit
// selection; with no suggestions the raw text navigates as-is. Empty field
// with no suggestions is a no-op.
func (c *Component) Submit() {
	c.mu.Lock()
	query := c.query
	var target catalog.Candidate
	hasResult := len(c.results) > 0
	if hasResult {
		target = c.results[0]
	}
	c.mu.Unlock()

	switch {
	case hasResult:
		c.navigate(target.Name, target.ImageURL)
	case query != "":
		c.navigate(query, "")
	}
}

// Flush fires a pending debounced lookup immediately.
func (c *Component) Flush() {
	c.dispatcher.Flush()
}

// Close tears the instance down: pending and in-flight lookups are dropped
// and the cache is released.
func (c *Component) Close() {
	c.dispatcher.Close()
	c.cache.Purge()
}

// Query returns the displayed query text.
func (c *Component) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Results returns the current suggestion list.
func (c *Component) Results() catalog.ResultSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

// State returns the lifecycle state.
func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PanelOpen reports whether the suggestion panel is open.
func (c *Component) PanelOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panelOpen
}

// Loading reports whether a lookup is pending for the current text.
func (c *Component) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Cache exposes the instance cache for inspection.
func (c *Component) Cache() *ResultCache {
	return c.cache
}

// applyResults is the dispatcher's delivery callback. The dispatcher already
// discards stale sequences; the query check here guards the window between a
// completion and a newer SetQuery that has not scheduled yet.
func (c *Component) applyResults(query string, results catalog.ResultSet) {
	c.mu.Lock()
	if c.query != query {
		c.mu.Unlock()
		return
	}
	c.results = results
	c.loading = false
	c.state = StateShowing
	cb := c.onUpdate
	c.mu.Unlock()

	if cb != nil {
		cb(query, results)
	}
}

func (c *Component) navigate(name, imageURL string) {
	if c.nav == nil {
		return
	}
	if err := c.nav.Navigate(name, imageURL); err != nil {
		log.Warnf("Navigation to %q failed: %v", name, err)
	}
}
