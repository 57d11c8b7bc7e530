// Package search coalesces rapid search input into one delayed request and
// lets callers drop responses that arrive for superseded queries.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDelay is the quiet period before a submitted query runs.
const DefaultDelay = 400 * time.Millisecond

// Debouncer runs only the last action submitted within its delay window.
// Submitting again, or calling Cancel, drops the pending action and cancels
// the context of one that is already running.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer returns a Debouncer; a non-positive delay means DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Submit schedules action(ctx, query) after the delay. ctx is derived from
// parent and is cancelled once the action is superseded or returns.
func (d *Debouncer) Submit(parent context.Context, query string, action func(ctx context.Context, query string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen

	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		defer d.release(gen, cancel)

		if ctx.Err() != nil {
			return
		}
		action(ctx, query)
	})
}

// release cancels the context of a finished action. d.cancel is cleared
// only if no newer Submit has replaced it.
func (d *Debouncer) release(gen uint64, cancel context.CancelFunc) {
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen == d.gen {
		d.cancel = nil
	}
}

// Cancel drops the pending action, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Sequencer tags outbound requests so that only the newest response is
// applied.
//
//	t := seq.Next()
//	res, err := catalog.SearchAll(ctx, q)
//	if !seq.IsLatest(t) {
//	    return // a newer query is in flight
//	}
type Sequencer struct {
	last atomic.Uint64
}

// Next issues a ticket greater than every earlier one.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// IsLatest reports whether no ticket was issued after t.
func (s *Sequencer) IsLatest(t uint64) bool {
	return s.last.Load() == t
}
