// Package debounce delays a value until input has been quiet for a fixed
// period, dropping every value superseded within that period.
package debounce

import (
	"sync"
	"time"

	"liquorstores/internal/components/chrono"
)

// Debouncer delivers the last scheduled value to its callback once no other
// value has been scheduled for `delay`.
type Debouncer[T any] struct {
	clock chrono.API
	delay time.Duration
	fire  func(T)

	mu    sync.Mutex
	gen   uint64
	timer chrono.Timer
}

// Handle refers to one scheduled value.
type Handle struct {
	cancel func() bool
}

// Cancel drops the value if it has not been delivered or superseded yet,
// it reports whether anything was cancelled.
func (h Handle) Cancel() bool {
	if h.cancel == nil {
		return false
	}
	return h.cancel()
}

// New creates a Debouncer, `fire` is called on the clock's timer goroutine.
func New[T any](clock chrono.API, delay time.Duration, fire func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		clock: clock,
		delay: delay,
		fire:  fire,
	}
}

// Schedule (re)starts the quiet period with `value`, cancelling whatever
// value was pending before.
func (d *Debouncer[T]) Schedule(value T) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.gen != gen {
			// superseded or cancelled after the timer had already fired
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.gen++
		d.mu.Unlock()

		d.fire(value)
	})

	return Handle{cancel: func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.gen != gen {
			return false
		}
		return d.stopLocked()
	}}
}

// Cancel drops whatever value is pending.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

func (d *Debouncer[T]) stopLocked() bool {
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}
