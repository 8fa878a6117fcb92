package presentation

import "sync"

// PageScrollLock is the scroll state of one viewer's page. Unlock is
// idempotent.
type PageScrollLock struct {
	mu     sync.Mutex
	locked bool
}

func (l *PageScrollLock) Lock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = true
}

func (l *PageScrollLock) Unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = false
}

func (l *PageScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locked
}
