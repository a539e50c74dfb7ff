package leaktest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckNoGoroutineLeak_JoinedWorkers(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(time.Millisecond)
			}()
		}
		wg.Wait()
	})
}

func TestGoroutineChecker_ToleratesParkedGoroutine(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	defer close(done)
	go func() { <-done }()

	checker.Check(1)
}

func TestGoroutineChecker_WaitsForExitingWorkers(t *testing.T) {
	checker := NewGoroutineChecker(t)

	go func() { time.Sleep(100 * time.Millisecond) }()

	checker.Check(0)
}

func TestSettle_ReportsTimeout(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	baseline, _ := settle(1<<20, 0)
	go func() { <-done }()

	n, ok := settle(baseline, 30*time.Millisecond)
	assert.False(t, ok)
	assert.Greater(t, n, baseline)
}
