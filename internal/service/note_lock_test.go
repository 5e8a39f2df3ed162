package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteLocks_SerializesSameNote(t *testing.T) {
	locks := newNoteLocks()

	var counter, max int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(5)
			defer unlock()

			mu.Lock()
			counter++
			if counter > max {
				max = counter
			}
			mu.Unlock()

			mu.Lock()
			counter--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, max, "only one holder may be inside the critical section")
}

func TestNoteLocks_EntriesAreReleased(t *testing.T) {
	locks := newNoteLocks()

	unlock := locks.lock(5)
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.entries, "released locks must not leak map entries")
}

func TestNoteLocks_DifferentNotesDoNotBlock(t *testing.T) {
	locks := newNoteLocks()

	unlockA := locks.lock(1)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.lock(2)
		unlockB()
		close(done)
	}()

	<-done
}
