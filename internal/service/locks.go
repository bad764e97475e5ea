package service

import "sync"

// SessionLocker serializes mutating operations per session. Edits to the
// same session queue behind one mutex; different sessions proceed fully
// in parallel. External collaborator calls (tracker sync, AI proposer)
// must happen before the lock is taken - only validate+commit runs
// under it.
type SessionLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSessionLocker creates an empty lock registry. One instance is
// shared by every service that mutates plan state.
func NewSessionLocker() *SessionLocker {
	return &SessionLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for a session id, creating it on first use.
// Returns the unlock function.
func (l *SessionLocker) Lock(sessionID string) func() {
	l.mu.Lock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
