package async

import (
	"context"
)

// Future is the eventual outcome of an asynchronous operation: a value, or
// an error. The operation has completed when Done selects. A Future is
// resolved exactly once, by the party which owns it; a second Resolve panics.
type Future struct {
	doneCh chan struct{} // Closed to signal the operation has completed.
	value  interface{}   // Value on operation completion.
	err    error         // Error on operation completion.
}

// NewFuture returns a new, unresolved Future.
func NewFuture() *Future { return &Future{doneCh: make(chan struct{})} }

// FinishedFuture is a convenience that returns an already-resolved Future.
func FinishedFuture(value interface{}, err error) *Future {
	var f = NewFuture()
	f.Resolve(value, err)
	return f
}

// Done selects when Resolve is called.
func (f *Future) Done() <-chan struct{} { return f.doneCh }

// Err blocks until Resolve is called, then returns its error.
func (f *Future) Err() error {
	<-f.doneCh
	return f.err
}

// Value blocks until Resolve is called, then returns its value and error.
func (f *Future) Value() (interface{}, error) {
	<-f.doneCh
	return f.value, f.err
}

// Wait blocks until Resolve is called or the Context is done. In the latter
// case the Context error is returned, and the Future remains unresolved.
func (f *Future) Wait(ctx context.Context) (interface{}, error) {
	select {
	case <-f.doneCh:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsResolved returns whether Resolve has been called, without blocking.
func (f *Future) IsResolved() bool {
	select {
	case <-f.doneCh:
		return true
	default:
		return false
	}
}

// Resolve marks the Future as completed with the given value and error.
func (f *Future) Resolve(value interface{}, err error) {
	f.value, f.err = value, err
	close(f.doneCh)
}
