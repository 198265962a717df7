package connection

import (
	"github.com/pkg/errors"
)

// lifecycleOp is applied by the lifecycle actor to the registry it owns.
type lifecycleOp func(*registry)

// registry of the producers and consumers of a Conn.
type registry struct {
	producers map[uint64]ProducerHandle
	consumers map[uint64]ConsumerHandle
	// Cause of the Conn's loss. Once set, the lifecycle actor tears down the
	// Conn and exits.
	cause error
}

func (c *Conn) serveLifecycle() error {
	var r = registry{
		producers: make(map[uint64]ProducerHandle),
		consumers: make(map[uint64]ConsumerHandle),
	}
	for r.cause == nil {
		(<-c.lifecycleCh)(&r)
	}
	c.teardown(&r)
	return nil
}

// submitLifecycle submits |op| to the lifecycle actor, returning true if it
// will be applied, or false if the Conn has been torn down.
func (c *Conn) submitLifecycle(op lifecycleOp) bool {
	select {
	case c.lifecycleCh <- op:
		return true
	case <-c.lifecycleDone:
		return false
	}
}

// RegisterProducer registers the ProducerHandle under |id|, to which inbound
// commands of the producer are routed. It returns ErrDuplicateID if |id| is
// already registered, or ErrConnectionClosed if the Conn has been torn down.
func (c *Conn) RegisterProducer(id uint64, h ProducerHandle) error {
	var errCh = make(chan error, 1)

	if !c.submitLifecycle(func(r *registry) {
		if _, ok := r.producers[id]; ok {
			errCh <- errors.WithMessagef(ErrDuplicateID, "producer %d", id)
		} else {
			r.producers[id] = h
			errCh <- nil
		}
	}) {
		return ErrConnectionClosed
	}
	return <-errCh
}

// RegisterConsumer registers the ConsumerHandle under |id|, to which inbound
// commands of the consumer are routed. It returns ErrDuplicateID if |id| is
// already registered, or ErrConnectionClosed if the Conn has been torn down.
func (c *Conn) RegisterConsumer(id uint64, h ConsumerHandle) error {
	var errCh = make(chan error, 1)

	if !c.submitLifecycle(func(r *registry) {
		if _, ok := r.consumers[id]; ok {
			errCh <- errors.WithMessagef(ErrDuplicateID, "consumer %d", id)
		} else {
			r.consumers[id] = h
			errCh <- nil
		}
	}) {
		return ErrConnectionClosed
	}
	return <-errCh
}

// UnregisterProducer removes the producer |id|, if registered.
// The producer's handle isn't notified.
func (c *Conn) UnregisterProducer(id uint64) {
	var done = make(chan struct{})

	if c.submitLifecycle(func(r *registry) {
		delete(r.producers, id)
		close(done)
	}) {
		<-done
	}
}

// UnregisterConsumer removes the consumer |id|, if registered.
// The consumer's handle isn't notified.
func (c *Conn) UnregisterConsumer(id uint64) {
	var done = make(chan struct{})

	if c.submitLifecycle(func(r *registry) {
		delete(r.consumers, id)
		close(done)
	}) {
		<-done
	}
}

// producer returns the ProducerHandle of |id|, or nil if it's not registered.
// If |take|, the producer is also unregistered.
func (c *Conn) producer(id uint64, take bool) ProducerHandle {
	var out = make(chan ProducerHandle, 1)

	if !c.submitLifecycle(func(r *registry) {
		out <- r.producers[id]
		if take {
			delete(r.producers, id)
		}
	}) {
		return nil
	}
	return <-out
}

// consumer returns the ConsumerHandle of |id|, or nil if it's not registered.
// If |take|, the consumer is also unregistered.
func (c *Conn) consumer(id uint64, take bool) ConsumerHandle {
	var out = make(chan ConsumerHandle, 1)

	if !c.submitLifecycle(func(r *registry) {
		out <- r.consumers[id]
		if take {
			delete(r.consumers, id)
		}
	}) {
		return nil
	}
	return <-out
}

// lose the Conn with the given |cause|, beginning its teardown. Only the
// first call has an effect.
func (c *Conn) lose(cause error) {
	c.submitLifecycle(func(r *registry) { r.cause = cause })
}

// teardown the lost Conn:
//
//   - The send and keep-alive tasks are stopped, and the transport is closed,
//     which stops the read loop.
//   - Outstanding requests are failed with ErrConnectionClosed.
//   - Registries are cleared, and further lifecycle operations are refused.
//   - Options.Unregister is called.
//   - Each registered producer and consumer is notified of ConnectionClosed.
//
// Callbacks are invoked only after the Conn refuses further operations,
// which allows them to call back into the Conn.
func (c *Conn) teardown(r *registry) {
	c.err = r.cause
	c.logTeardown(r.cause)

	c.tasks.Cancel()
	c.closeTransport.Do(func() {
		if err := c.transport.Close(); err != nil {
			c.log.WithField("err", err).Warn("failed to close transport")
		}
	})
	c.failRequests()

	var producers, consumers = r.producers, r.consumers
	r.producers, r.consumers = nil, nil
	c.lifecycleDone.Resolve()

	if c.opts.Unregister != nil {
		c.opts.Unregister(c.opts.Broker)
	}
	for _, h := range producers {
		h.ConnectionClosed()
	}
	for _, h := range consumers {
		h.ConnectionClosed()
	}
}
