package search

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/veldt-labs/chemseek/pkg/catalog"
)

// DefaultDebounce is the quiet period a keystroke burst must observe before a
// lookup fires.
const DefaultDebounce = 300 * time.Millisecond

// Dispatcher coalesces rapid Schedule calls into a single lookup fired after
// a fixed quiet period. Only the most recent call within the window survives;
// earlier timers are superseded. Every dispatch carries a sequence number and
// a completion whose sequence is no longer the latest is discarded, so a slow
// stale response cannot overwrite newer results.
type Dispatcher struct {
	searcher catalog.Searcher
	cache    *ResultCache
	delay    time.Duration
	opts     catalog.Options
	deliver  func(query string, results catalog.ResultSet)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	seq     uint64
	cancel  context.CancelFunc
	closed  bool
}

// NewDispatcher wires a dispatcher to a backend, a cache and a delivery
// callback. A non-positive delay falls back to DefaultDebounce.
func NewDispatcher(searcher catalog.Searcher, cache *ResultCache, delay time.Duration, opts catalog.Options, deliver func(string, catalog.ResultSet)) *Dispatcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Dispatcher{
		searcher: searcher,
		cache:    cache,
		delay:    delay,
		opts:     opts,
		deliver:  deliver,
	}
}

// Schedule arms the quiet-period timer for the given query, superseding any
// previously scheduled call.
func (d *Dispatcher) Schedule(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = query
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(query, seq)
	})
}

// Cancel drops any scheduled call and invalidates in-flight completions.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invalidateLocked()
}

// Flush fires the pending scheduled call immediately instead of waiting out
// the quiet period. No-op when nothing is pending or the timer already fired.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	if d.closed || d.timer == nil || !d.timer.Stop() {
		d.mu.Unlock()
		return
	}
	query, seq := d.pending, d.seq
	d.timer = nil
	d.mu.Unlock()
	d.fire(query, seq)
}

// Close cancels outstanding work and rejects further scheduling.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invalidateLocked()
	d.closed = true
}

func (d *Dispatcher) invalidateLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.seq++
	d.pending = ""
}

// fire runs on the timer goroutine (or the Flush caller). An empty query
// never triggers a lookup.
func (d *Dispatcher) fire(query string, seq uint64) {
	if query == "" {
		return
	}

	d.mu.Lock()
	if d.closed || seq != d.seq {
		d.mu.Unlock()
		return
	}
	if cached, ok := d.cache.Get(query); ok {
		d.mu.Unlock()
		log.Debugf("Cache hit for %q", query)
		d.deliver(query, cached)
		return
	}
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	results, err := d.searcher.Search(ctx, query, d.opts)
	cancel()

	d.mu.Lock()
	stale := d.closed || seq != d.seq
	d.mu.Unlock()
	if stale {
		log.Debugf("Discarding stale results for %q", query)
		return
	}

	if err != nil {
		// Degrade to "no suggestions"; never surfaced to the user.
		log.Warnf("Lookup for %q failed: %v", query, err)
		d.deliver(query, nil)
		return
	}

	d.cache.Put(query, results)
	d.deliver(query, results)
}
