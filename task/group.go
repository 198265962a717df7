// Package task runs groups of goroutines which share a lifetime, such as
// the actors of a broker connection.
package task

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Group is a set of tasks which execute concurrently, and which are
// collectively waited on until all are complete. The first task to return
// a non-nil error cancels the Group Context, as does an explicit Cancel.
// Tasks monitor the Context and return upon its cancellation.
//
// Group is not itself thread-safe: tasks are queued and started from a
// single goroutine, though Cancel and Context may be called from any.
type Group struct {
	ctx      context.Context
	cancelFn context.CancelFunc

	tasks   []task
	eg      *errgroup.Group
	started bool
}

type task struct {
	desc string
	fn   func() error
}

// NewGroup returns a new, empty Group with the given parent Context.
func NewGroup(ctx context.Context) *Group {
	ctx, cancel := context.WithCancel(ctx)
	eg, ctx := errgroup.WithContext(ctx)
	return &Group{ctx: ctx, eg: eg, cancelFn: cancel}
}

// Context returns the Group Context.
func (g *Group) Context() context.Context { return g.ctx }

// Cancel the Group Context.
func (g *Group) Cancel() { g.cancelFn() }

// Queue a function for execution with the Group. Queue panics if called
// after GoRun. An error returned by |fn| is prefixed with |desc|.
func (g *Group) Queue(desc string, fn func() error) {
	if g.started {
		panic("Queue called after GoRun")
	}
	g.tasks = append(g.tasks, task{desc: desc, fn: fn})
}

// Len is the number of queued tasks.
func (g *Group) Len() int { return len(g.tasks) }

// GoRun all queued functions. GoRun panics if called more than once.
func (g *Group) GoRun() {
	if g.started {
		panic("GoRun already called")
	}
	g.started = true

	for i := range g.tasks {
		var t = g.tasks[i]
		g.eg.Go(func() error { return errors.WithMessage(t.fn(), t.desc) })
	}
}

// Wait for started functions, returning only after all complete. The first
// non-nil error is returned. Wait panics if GoRun hasn't been called.
func (g *Group) Wait() error {
	if !g.started {
		panic("Wait called before GoRun")
	}
	return g.eg.Wait()
}
