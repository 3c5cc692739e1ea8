package usecase

import "sync"

// keyedMutex serialises work per key. Keys nobody holds are forgotten, so the
// map only grows with the number of concurrent callers.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (that *keyedMutex) Lock(key string) (unlock func()) {
	that.mu.Lock()
	if that.locks == nil {
		that.locks = make(map[string]*refMutex)
	}

	m, ok := that.locks[key]
	if !ok {
		m = &refMutex{}
		that.locks[key] = m
	}
	m.refs++
	that.mu.Unlock()

	m.Lock()

	return func() {
		m.Unlock()

		that.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(that.locks, key)
		}
		that.mu.Unlock()
	}
}
