package connection

import (
	"time"

	"github.com/pkg/errors"
	"go.quasar.dev/core/async"
	"go.quasar.dev/core/metrics"
	pb "go.quasar.dev/core/protocol"
)

// requestOp is applied by the requests actor to the pending requests it owns.
type requestOp func(*pending)

type pending struct {
	requests map[uint64]pendingRequest
	// Once closed, the requests actor exits.
	closed bool
}

type pendingRequest struct {
	future  *async.Future
	started time.Time
}

func (c *Conn) serveRequests() error {
	defer c.requestsDone.Resolve()

	var p = pending{requests: make(map[uint64]pendingRequest)}
	for !p.closed {
		(<-c.requestsCh)(&p)
	}
	return nil
}

func (c *Conn) submitRequest(op requestOp) bool {
	select {
	case c.requestsCh <- op:
		return true
	case <-c.requestsDone:
		return false
	}
}

// addRequest registers |future| under |id|. If |id| is already pending or
// the Conn has been torn down, |future| is failed and false is returned.
func (c *Conn) addRequest(id uint64, future *async.Future) bool {
	var added = make(chan bool, 1)

	if !c.submitRequest(func(p *pending) {
		if _, ok := p.requests[id]; ok {
			future.Resolve(nil, errors.WithMessagef(ErrDuplicateID, "request %d", id))
			added <- false
			return
		}
		p.requests[id] = pendingRequest{future: future, started: time.Now()}
		metrics.PendingRequests.Inc()
		added <- true
	}) {
		future.Resolve(nil, ErrConnectionClosed)
		return false
	}
	return <-added
}

// resolveRequest resolves and removes the pending request |id| with the
// |value| and |err| of a response of type |cmd|. A response to an unknown
// request is dropped.
func (c *Conn) resolveRequest(id uint64, cmd pb.CommandType, value interface{}, err error) {
	c.submitRequest(func(p *pending) {
		if !p.resolve(id, value, err) {
			c.unroutable(cmd, "requestID", id)
		}
	})
}

// failRequest fails the pending request |id| with |err|, if it's still
// pending. It's not a broker response, and is never unroutable.
func (c *Conn) failRequest(id uint64, err error) {
	c.submitRequest(func(p *pending) { p.resolve(id, nil, err) })
}

// resolve and remove the request |id|, returning false if it's not pending.
func (p *pending) resolve(id uint64, value interface{}, err error) bool {
	var req, ok = p.requests[id]
	if !ok {
		return false
	}
	delete(p.requests, id)
	metrics.PendingRequests.Dec()

	var status = metrics.Ok
	if err != nil {
		status = metrics.Fail
	}
	metrics.RequestDurationSeconds.WithLabelValues(status).Observe(time.Since(req.started).Seconds())

	req.future.Resolve(value, err)
	return true
}

// failRequests fails all pending requests with ErrConnectionClosed, and stops
// the requests actor. Requests added thereafter fail immediately.
func (c *Conn) failRequests() {
	c.submitRequest(func(p *pending) {
		for id, req := range p.requests {
			metrics.PendingRequests.Dec()
			req.future.Resolve(nil, errors.WithMessagef(ErrConnectionClosed, "request %d", id))
		}
		p.requests, p.closed = nil, true
	})
}
