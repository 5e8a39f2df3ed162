package service

import "sync"

// noteLocks serializes reminder mutations per note. Entries are reference
// counted and removed once the last holder unlocks, so the map does not grow
// with the number of notes ever touched.
type noteLocks struct {
	mu      sync.Mutex
	entries map[int64]*noteLockEntry
}

type noteLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newNoteLocks() *noteLocks {
	return &noteLocks{entries: make(map[int64]*noteLockEntry)}
}

// lock blocks until the per-note mutex is held and returns the unlock func.
func (l *noteLocks) lock(noteID int64) func() {
	l.mu.Lock()
	entry, ok := l.entries[noteID]
	if !ok {
		entry = &noteLockEntry{}
		l.entries[noteID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, noteID)
		}
		l.mu.Unlock()
	}
}
