package connection

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.quasar.dev/core/async"
	"go.quasar.dev/core/metrics"
)

// sendOp is an encoded frame to be written by the send actor.
type sendOp struct {
	frame []byte
	// If non-nil, |future| is registered as a request under |requestID|
	// before |frame| is written.
	requestID uint64
	future    *async.Future
	// If non-nil, |flushed| is sent the outcome of the write.
	flushed chan<- error
}

// fail the sendOp without having written it.
func (op sendOp) fail(err error) {
	if op.future != nil {
		op.future.Resolve(nil, err)
	}
	if op.flushed != nil {
		op.flushed <- err
	}
}

// Send the encoded |frame| to the broker, without waiting for its write.
// If the Conn has been torn down, the frame is dropped.
func (c *Conn) Send(frame []byte) {
	select {
	case c.sendCh <- sendOp{frame: frame}:
	case <-c.sendDone:
		c.log.WithField("size", len(frame)).Debug("dropped send of closed connection")
	}
}

// sendPong queues a PONG without blocking. A PONG which is already queued
// answers every PING received before it's written.
func (c *Conn) sendPong() {
	select {
	case c.pongCh <- struct{}{}:
	default:
	}
}

// trySend sends the encoded |frame| only if the send actor is idle, and
// returns whether it was sent.
func (c *Conn) trySend(frame []byte) bool {
	select {
	case c.sendCh <- sendOp{frame: frame}:
		return true
	default:
		return false
	}
}

// SendAndFlush sends the encoded |frame| to the broker, and returns after
// it's been written to the transport. It returns ErrConnectionClosed if the
// Conn has been torn down, or the Context error if it's cancelled first.
// A nil return doesn't imply the broker has processed the frame.
func (c *Conn) SendAndFlush(ctx context.Context, frame []byte) error {
	var flushed = make(chan error, 1)

	select {
	case c.sendCh <- sendOp{frame: frame, flushed: flushed}:
	case <-c.sendDone:
		return ErrConnectionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-flushed:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Request sends the encoded |frame|, which must carry |requestID|, and
// returns a Future of the broker's response. The Future is registered before
// the frame is written, so the response cannot race its registration.
// If the Conn has been torn down or the write fails, the Future fails
// with ErrConnectionClosed.
func (c *Conn) Request(requestID uint64, frame []byte) *async.Future {
	var future = async.NewFuture()

	select {
	case c.sendCh <- sendOp{frame: frame, requestID: requestID, future: future}:
	case <-c.sendDone:
		future.Resolve(nil, ErrConnectionClosed)
	}
	return future
}

// serveSends writes frames in the order they're submitted, until the Conn is
// torn down or a write fails. Frames submitted but not yet written at
// teardown are failed rather than written.
func (c *Conn) serveSends() error {
	defer c.sendDone.Resolve()
	var ctx = c.tasks.Context()

	for {
		var op sendOp

		select {
		case op = <-c.sendCh:
		case <-c.pongCh:
			op = sendOp{frame: pongFrame}
		case <-ctx.Done():
			return nil
		}

		if ctx.Err() != nil {
			op.fail(ErrConnectionClosed)
			return nil
		} else if op.future != nil && !c.addRequest(op.requestID, op.future) {
			continue // |future| was failed.
		}

		var n, err = c.transport.Write(op.frame)
		atomic.AddInt64(&c.bytesSent, int64(n))
		metrics.BytesSentTotal.Add(float64(n))

		if err != nil {
			metrics.FramesSentTotal.WithLabelValues(metrics.Fail).Inc()

			if op.future != nil {
				c.failRequest(op.requestID, ErrConnectionClosed)
			}
			if op.flushed != nil {
				op.flushed <- ErrConnectionClosed
			}
			c.lose(errors.WithMessage(err, "write"))
			return nil
		}
		metrics.FramesSentTotal.WithLabelValues(metrics.Ok).Inc()

		if op.flushed != nil {
			op.flushed <- nil
		}
	}
}
