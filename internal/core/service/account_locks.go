package service

import "sync"

// accountLocks serializes login processing per account so that two
// concurrent attempts can never both read the same counter value and slip
// past the lockout threshold together. Accounts are independent: locking one
// email never blocks another.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*accountLock)}
}

// Acquire blocks until the lock for key is held and returns the release
// function. Entries are reference-counted and removed once the last holder
// releases, so the map stays bounded by the number of in-flight attempts.
func (a *accountLocks) Acquire(key string) func() {
	a.mu.Lock()
	l, ok := a.locks[key]
	if !ok {
		l = &accountLock{}
		a.locks[key] = l
	}
	l.refs++
	a.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		a.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(a.locks, key)
		}
		a.mu.Unlock()
	}
}
