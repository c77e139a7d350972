package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	km := NewKeyedMutex()
	var counters [4]int

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				for key := uint(1); key <= 3; key++ {
					km.Lock(key)
					counters[key]++
					km.Unlock(key)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, counters[1])
	assert.Equal(t, 800, counters[2])
	assert.Equal(t, 800, counters[3])
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock(42)
	km.Unlock(42)

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks, "idle keys must not accumulate")
}
