package tasks

import "sync"

// Tracker tracks a set of goroutines so a shutdown sequence can stop
// accepting new work and wait for the in-flight remainder. The zero value is
// ready to use.
type Tracker struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

// Go runs fn on its own goroutine and tracks it until completion. It returns
// false without running fn when the tracker has been closed.
func (t *Tracker) Go(fn func()) bool {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return false
	}
	t.wg.Add(1)
	t.mu.Unlock()
	go func() {
		defer t.wg.Done()
		fn()
	}()
	return true
}

// Close stops the tracker from accepting new work. Idempotent.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

// Wait blocks until every tracked goroutine has finished. Callers must Close
// first; otherwise a concurrent Go can extend the wait indefinitely.
func (t *Tracker) Wait() {
	t.wg.Wait()
}
