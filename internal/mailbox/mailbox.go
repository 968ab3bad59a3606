package mailbox

import "sync"

// Mailbox is a single-slot buffer where the latest job always wins.
// It is NOT a queue. It holds at most one pending job, so a burst of
// triggers while a pass is running collapses into one follow-up pass.
type Mailbox[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	job    *T
	closed bool
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	m := &Mailbox[T]{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Put stores a job, replacing any pending one. It never blocks.
// Put on a closed mailbox is a no-op.
func (m *Mailbox[T]) Put(j T) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.job = &j
	m.mu.Unlock()
	m.cond.Signal()
}

// Take blocks until a job is available and returns it. It returns false
// once the mailbox is closed and drained.
func (m *Mailbox[T]) Take() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.job == nil && !m.closed {
		m.cond.Wait()
	}

	if m.job == nil {
		var zero T
		return zero, false
	}

	j := *m.job
	m.job = nil
	return j, true
}

// HasJob reports whether a job is currently waiting.
func (m *Mailbox[T]) HasJob() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.job != nil
}

// Close wakes every blocked Take. A job already pending is still delivered.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cond.Broadcast()
}
