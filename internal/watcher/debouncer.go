package watcher

import (
	"sync"
	"time"
)

// Debouncer runs fn once events stop arriving for delay. Runs never overlap;
// a trigger that fires while fn is running queues at most one more run.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu       sync.Mutex
	inFlight sync.WaitGroup
	timer    *time.Timer
	running  bool
	pending  bool
	stopped  bool
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.running {
		d.pending = true
		d.mu.Unlock()
		return
	}
	d.running = true
	d.inFlight.Add(1)
	d.mu.Unlock()
	defer d.inFlight.Done()

	for {
		d.fn()

		d.mu.Lock()
		if !d.pending || d.stopped {
			d.running = false
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.mu.Unlock()
	}
}

// Stop cancels any pending run and waits for a run in progress to finish.
// It must not be called from fn.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.inFlight.Wait()
}
