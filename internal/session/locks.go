package session

import "sync"

// Locks serializes mutating operations per session. Chat, revise and
// re-summarize calls against the same session must never interleave their
// message appends or summary writes.
type Locks struct {
	mu   sync.Mutex
	held map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewLocks creates an empty lock registry.
func NewLocks() *Locks {
	return &Locks{held: make(map[string]*lockEntry)}
}

// Acquire locks the mutex for the given session ID, blocking if another
// holder is active, and returns the release function. Entries are dropped
// once the last holder releases so the registry does not grow with session
// count.
func (l *Locks) Acquire(id string) func() {
	l.mu.Lock()
	e, ok := l.held[id]
	if !ok {
		e = &lockEntry{}
		l.held[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}
