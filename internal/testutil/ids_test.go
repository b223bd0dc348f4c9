package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedIDGenerator("build-123")

	assert.Equal(t, "build-123", gen.Generate())
	assert.Equal(t, "build-123", gen.Generate())
}

func TestFixedIDGenerator_EmptyIDDefault(t *testing.T) {
	gen := NewFixedIDGenerator("")

	assert.Equal(t, "test-build-default", gen.Generate())
}

func TestStepClock_Advances(t *testing.T) {
	start := time.Date(2025, 6, 23, 12, 0, 0, 0, time.UTC)
	clock := NewStepClock(start, time.Second)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start.Add(time.Second), clock.Now())
	assert.Equal(t, 2, clock.Calls())
}

func TestStepClock_ThreadSafe(t *testing.T) {
	clock := NewStepClock(time.Unix(0, 0), time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				clock.Now()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, clock.Calls())
}
