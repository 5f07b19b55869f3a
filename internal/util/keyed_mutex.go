// Package util holds small shared helpers with no domain knowledge.
package util

import "sync"

// KeyedMutex provides one mutex per string key, so callers can serialize
// work on a single resource (one order, one user's cart) without a global
// lock. Mutexes are created on first use and kept for the process lifetime;
// the key space here is bounded by active resources, so no eviction is done.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given key, creating it if needed.
// It returns the unlock function for the acquired mutex.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}
