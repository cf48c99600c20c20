package debounce

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Debouncer coalesces bursts of work per key. Each key has at most one pending task;
// triggering again cancels it and restarts the quiet period with the newest task.
type Debouncer[K comparable] struct {
	delay time.Duration
	after AfterFunc

	mu      sync.Mutex
	pending map[K]*task
	stopped bool
}

type task struct {
	fn    func()
	timer Timer
}

type Option func(*options)

type options struct {
	after AfterFunc
}

// WithAfterFunc swaps the timer source (tests use a fake clock).
func WithAfterFunc(f AfterFunc) Option {
	return func(o *options) {
		if f != nil {
			o.after = f
		}
	}
}

// New returns a debouncer with the given quiet period. delay <= 0 means 500ms.
func New[K comparable](delay time.Duration, opts ...Option) *Debouncer[K] {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	o := options{after: stdAfterFunc}
	for _, opt := range opts {
		opt(&o)
	}
	return &Debouncer[K]{
		delay:   delay,
		after:   o.after,
		pending: map[K]*task{},
	}
}

func (d *Debouncer[K]) Delay() time.Duration { return d.delay }

// Trigger schedules fn for key, replacing any task still waiting for that key.
func (d *Debouncer[K]) Trigger(key K, fn func()) {
	if d == nil || fn == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if prev := d.pending[key]; prev != nil {
		prev.timer.Stop()
	}
	t := &task{fn: fn}
	d.pending[key] = t
	t.timer = d.after(d.delay, func() { d.fire(key, t) })
}

func (d *Debouncer[K]) fire(key K, t *task) {
	d.mu.Lock()
	// A Stop() that lost the race with the timer leaves a stale callback; the
	// pointer check drops it.
	if d.pending[key] != t {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	t.fn()
}

// Flush runs the pending task for key immediately. Reports whether one ran.
func (d *Debouncer[K]) Flush(key K) bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	t := d.pending[key]
	if t == nil {
		d.mu.Unlock()
		return false
	}
	t.timer.Stop()
	delete(d.pending, key)
	d.mu.Unlock()

	t.fn()
	return true
}

// FlushAll runs every pending task now. Order across keys is unspecified.
func (d *Debouncer[K]) FlushAll() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	tasks := make([]*task, 0, len(d.pending))
	for k, t := range d.pending {
		t.timer.Stop()
		tasks = append(tasks, t)
		delete(d.pending, k)
	}
	d.mu.Unlock()

	for _, t := range tasks {
		t.fn()
	}
	return len(tasks)
}

// Cancel drops the pending task for key without running it.
func (d *Debouncer[K]) Cancel(key K) bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	t := d.pending[key]
	if t == nil {
		return false
	}
	t.timer.Stop()
	delete(d.pending, key)
	return true
}

func (d *Debouncer[K]) Pending(key K) bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending[key] != nil
}

// Stop cancels everything pending. Later Trigger calls are ignored.
func (d *Debouncer[K]) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for k, t := range d.pending {
		t.timer.Stop()
		delete(d.pending, k)
	}
}
