package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_FreshMatchStartsAtOne(t *testing.T) {
	c := NewClockAt(0)
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())
}

func TestClock_ResumesAfterLastSeq(t *testing.T) {
	c := NewClockAt(41)
	assert.Equal(t, int64(42), c.Next(), "a loaded match continues after its last event")
	assert.Equal(t, int64(42), c.Current())
}

func TestClock_Reset(t *testing.T) {
	c := NewClockAt(10)
	c.Reset(7)
	assert.Equal(t, int64(7), c.Current())
	assert.Equal(t, int64(8), c.Next())
}

func TestClock_ConcurrentNextHasNoGaps(t *testing.T) {
	c := NewClockAt(0)
	const goroutines, calls = 50, 100

	var wg sync.WaitGroup
	seqs := make(chan int64, goroutines*calls)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				seqs <- c.Next()
			}
		}()
	}
	wg.Wait()
	close(seqs)

	seen := make(map[int64]bool)
	for seq := range seqs {
		assert.False(t, seen[seq], "seq %d issued twice", seq)
		seen[seq] = true
	}
	for seq := int64(1); seq <= goroutines*calls; seq++ {
		assert.True(t, seen[seq], "seq %d missing", seq)
	}
}
