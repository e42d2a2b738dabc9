// Package debounce holds a single-slot debouncer: only the most recent
// pending value survives a burst of pushes.
package debounce

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Debouncer calls fn with the last pushed value once delay has passed
// without another Push
type Debouncer[T any] struct {
	mu      sync.Mutex
	clock   clock.Clock
	delay   time.Duration
	fn      func(T)
	timer   *clock.Timer
	pending T
	seq     uint64 // bumped by every Push and Stop; stale timers compare against it
	stopped bool
}

// New creates a debouncer. A nil clock means the wall clock.
func New[T any](clk clock.Clock, delay time.Duration, fn func(T)) *Debouncer[T] {
	if clk == nil {
		clk = clock.New()
	}
	return &Debouncer[T]{
		clock: clk,
		delay: delay,
		fn:    fn,
	}
}

// Push replaces the pending value and restarts the quiet period
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = v
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
	}
	seq := d.seq
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(seq) })
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	v := d.pending
	var zero T
	d.pending = zero
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Pending reports whether a value is waiting for the quiet period to end
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop discards any pending value; later pushes are ignored
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.pending = zero
}
