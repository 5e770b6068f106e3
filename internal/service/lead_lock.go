package service

import "sync"

// leadLocks serializes campaign writes per lead inside one process. Entries
// are dropped once nobody holds or waits on them.
type leadLocks struct {
	mu    sync.Mutex
	locks map[string]*leadLock
}

type leadLock struct {
	sync.Mutex
	refs int
}

// lock blocks until the caller holds leadID and returns the unlock func.
func (l *leadLocks) lock(leadID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*leadLock)
	}
	ll, ok := l.locks[leadID]
	if !ok {
		ll = &leadLock{}
		l.locks[leadID] = ll
	}
	ll.refs++
	l.mu.Unlock()

	ll.Lock()
	return func() {
		ll.Unlock()

		l.mu.Lock()
		ll.refs--
		if ll.refs == 0 {
			delete(l.locks, leadID)
		}
		l.mu.Unlock()
	}
}

func (l *leadLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
