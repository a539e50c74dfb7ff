// Package leaktest checks that tests leave no stray goroutines behind.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
)

// GoroutineChecker remembers the goroutine count at construction
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker records the baseline once background goroutines from earlier tests have settled
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	time.Sleep(pollInterval)
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine()}
}

// Check fails the test when, after settleTimeout, more than tolerance goroutines remain above the baseline.
// Workers that are winding down get the whole timeout to exit.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	if after, ok := settle(g.before+tolerance, settleTimeout); !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", g.before, after, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and requires the goroutine count to return to its baseline
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settle polls until at most target goroutines are running; it reports the last count seen
func settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
