package async

import (
	"context"
	"errors"
	"time"

	gc "gopkg.in/check.v1"
)

type FutureSuite struct{}

func (s *FutureSuite) TestResolveWithValue(c *gc.C) {
	var f = NewFuture()
	c.Check(f.IsResolved(), gc.Equals, false)

	select {
	case <-f.Done():
		c.Fatal("unexpected resolution")
	default:
	}

	go f.Resolve("a value", nil)

	var v, err = f.Value()
	c.Check(v, gc.Equals, "a value")
	c.Check(err, gc.IsNil)
	c.Check(f.Err(), gc.IsNil)
	c.Check(f.IsResolved(), gc.Equals, true)
}

func (s *FutureSuite) TestResolveWithError(c *gc.C) {
	var f = FinishedFuture(nil, errors.New("whoops"))
	c.Check(f.Err(), gc.ErrorMatches, "whoops")

	var v, err = f.Wait(context.Background())
	c.Check(v, gc.IsNil)
	c.Check(err, gc.ErrorMatches, "whoops")
}

func (s *FutureSuite) TestWaitWithCancelledContext(c *gc.C) {
	var f = NewFuture()
	var ctx, cancel = context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	var _, err = f.Wait(ctx)
	c.Check(err, gc.Equals, context.DeadlineExceeded)
	c.Check(f.IsResolved(), gc.Equals, false)

	// The Future may still be resolved later.
	f.Resolve(42, nil)
	v, err := f.Wait(context.Background())
	c.Check(v, gc.Equals, 42)
	c.Check(err, gc.IsNil)
}

func (s *FutureSuite) TestResolvingTwicePanics(c *gc.C) {
	var f = FinishedFuture(1, nil)
	c.Check(func() { f.Resolve(2, nil) }, gc.PanicMatches, "close of closed channel")
}

func (s *FutureSuite) TestPromiseResolved(c *gc.C) {
	var p = make(Promise)
	c.Check(p.Resolved(), gc.Equals, false)
	p.Resolve()
	c.Check(p.Resolved(), gc.Equals, true)
	p.Wait() // Doesn't block.
}

var _ = gc.Suite(&FutureSuite{})
