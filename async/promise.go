// Package async implements simple Promise and Future APIs.
package async

import (
	"time"
)

// Promise is a simple notification primitive for asynchronous events.
type Promise chan struct{}

// Resolve wakes any clients currently waiting on the Promise
func (s Promise) Resolve() {
	close(s)
}

// Resolved returns whether the Promise has been resolved, without blocking.
func (s Promise) Resolved() bool {
	select {
	case <-s:
		return true
	default:
		return false
	}
}

// Wait synchronously blocks until the Promise is resolved.
func (s Promise) Wait() {
	<-s
}

// WaitWithPeriodicTask repeatedly invokes |task| with period |period| until
// the Promise is resolved.
func (s Promise) WaitWithPeriodicTask(period time.Duration, task func()) {
	ticker := time.NewTicker(period)

	for {
		select {
		case <-s:
			ticker.Stop()
			return
		case <-ticker.C:
			task()
		}
	}
}
