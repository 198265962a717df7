// Package connection implements the client side of a single broker
// connection. A Conn decodes the inbound byte stream into commands, routes
// them to the registered producers and consumers they address, correlates
// broker responses with outstanding requests, and serializes outbound frames.
//
// A Conn is composed of actors which each exclusively own a part of its state,
// and which interact only by message passing:
//
//   - The lifecycle actor owns the producer and consumer registries, and
//     drives teardown of the Conn when it's lost.
//   - The send actor owns writes to the transport.
//   - The requests actor owns the map of requests awaiting a response.
//   - The read loop owns reads from the transport, and dispatches each
//     decoded command in wire order.
//   - An optional keep-alive task pings the broker, and tears down the Conn
//     if it stops hearing from it.
package connection

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.quasar.dev/core/async"
	"go.quasar.dev/core/metrics"
	pb "go.quasar.dev/core/protocol"
	"go.quasar.dev/core/task"
)

var (
	// ErrConnectionClosed is returned by operations of a Conn which has been
	// torn down, and fails requests which were outstanding at the time.
	ErrConnectionClosed = errors.New("connection closed")
	// ErrDuplicateID is returned on registration of a producer, consumer, or
	// request ID which is already registered with the Conn.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrKeepAliveTimeout is the teardown cause of a Conn which hasn't received
	// a frame from its broker within two keep-alive intervals.
	ErrKeepAliveTimeout = errors.New("keep-alive timeout")
)

// BrokerError is an error response of the broker to a request.
type BrokerError struct {
	Code    pb.ServerError
	Message string
}

func (e *BrokerError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

// ProducerHandle receives the inbound commands addressed to a producer.
// Methods are invoked from the Conn's read loop, and must not block it.
type ProducerHandle interface {
	// ReceivedSendReceipt is called with the broker's receipt of a sent message.
	ReceivedSendReceipt(*pb.CommandSendReceipt)
	// ReceivedSendError is called if the broker failed to persist a sent message.
	ReceivedSendError(*pb.CommandSendError)
	// ConnectionClosed is called exactly once, when the producer is closed by
	// the broker or the Conn is torn down. It's not called on UnregisterProducer.
	ConnectionClosed()
}

// ConsumerHandle receives the inbound commands addressed to a consumer.
// Methods are invoked from the Conn's read loop, and must not block it.
type ConsumerHandle interface {
	// MessageReceived is called with each message delivered to the consumer.
	MessageReceived(*pb.Message)
	// ReachedEndOfTopic is called when the consumer's topic is terminated and
	// all of its messages have been delivered.
	ReachedEndOfTopic()
	// ConnectionClosed is called exactly once, when the consumer is closed by
	// the broker or the Conn is torn down. It's not called on UnregisterConsumer.
	ConnectionClosed()
}

// Options of a Conn.
type Options struct {
	// Broker identifies the broker of the Conn, eg "pulsar://broker-1:6650".
	Broker string
	// Unregister, if non-nil, is called with Broker when the Conn is torn
	// down, so that the Conn may be removed from a pool of connections.
	Unregister func(broker string)
	// KeepAliveInterval is the period with which the broker is pinged.
	// If zero, the Conn doesn't ping the broker.
	KeepAliveInterval time.Duration
	// ReadBufferSize is the minimum size of reads from the transport.
	ReadBufferSize int
}

const defaultReadBufferSize = 32 * 1024

// Conn is a client connection to a broker.
type Conn struct {
	opts      Options
	transport io.ReadWriteCloser
	log       *log.Entry

	lifecycleCh   chan lifecycleOp
	lifecycleDone async.Promise
	sendCh        chan sendOp
	sendDone      async.Promise
	requestsCh    chan requestOp
	requestsDone  async.Promise

	// Signals the send actor to write a PONG. Buffered, so that the read
	// loop never blocks answering a PING.
	pongCh chan struct{}

	tasks          *task.Group
	handshake      *async.Future
	done           async.Promise
	closeTransport sync.Once
	nextRequestID  uint64

	// Unix nanos of the last inbound frame.
	lastReceived  int64
	bytesReceived int64
	bytesSent     int64

	// Set by the read loop before |handshake| is resolved.
	serverVersion string
	// Accessed atomically, as SendMessage may race the handshake.
	maxMessageSize int32

	// Set by the lifecycle actor before |lifecycleDone| is resolved.
	err error
}

// New returns a Conn which reads from and writes to the |transport|, which it
// takes exclusive ownership of. The read loop and actors of the Conn are
// started immediately. The caller must send a CONNECT command (see Connect)
// before the broker will respond to others.
func New(transport io.ReadWriteCloser, opts Options) *Conn {
	if opts.ReadBufferSize <= 0 {
		opts.ReadBufferSize = defaultReadBufferSize
	}
	var c = &Conn{
		opts:          opts,
		transport:     transport,
		log:           log.WithField("broker", opts.Broker),
		lifecycleCh:   make(chan lifecycleOp),
		lifecycleDone: make(async.Promise),
		sendCh:        make(chan sendOp),
		sendDone:      make(async.Promise),
		pongCh:        make(chan struct{}, 1),
		requestsCh:    make(chan requestOp),
		requestsDone:  make(async.Promise),
		tasks:         task.NewGroup(context.Background()),
		handshake:     async.NewFuture(),
		done:          make(async.Promise),
		lastReceived:  time.Now().UnixNano(),
	}
	if nc, ok := transport.(net.Conn); ok {
		c.log = c.log.WithField("remote", nc.RemoteAddr().String())
	}

	c.tasks.Queue("lifecycle", c.serveLifecycle)
	c.tasks.Queue("send", c.serveSends)
	c.tasks.Queue("requests", c.serveRequests)
	c.tasks.Queue("read loop", c.serveReads)
	if opts.KeepAliveInterval > 0 {
		c.tasks.Queue("keep-alive", c.serveKeepAlive)
	}
	c.tasks.GoRun()
	metrics.ConnectionsOpen.Inc()

	go func() {
		if err := c.tasks.Wait(); err != nil {
			c.log.WithField("err", err).Error("connection task failed")
		}
		metrics.ConnectionsOpen.Dec()
		c.done.Resolve()
	}()
	return c
}

// Broker returns the broker identity of the Conn.
func (c *Conn) Broker() string { return c.opts.Broker }

// Handshake returns a Future which is resolved with the *Conn upon the
// broker's CONNECTED response, or fails with ErrConnectionClosed if the Conn
// is torn down before one is received.
func (c *Conn) Handshake() *async.Future { return c.handshake }

// ServerVersion reported by the broker. Valid only after the Handshake resolves.
func (c *Conn) ServerVersion() string { return c.serverVersion }

// MaxMessageSize reported by the broker, or zero if the broker didn't report
// one or the Handshake hasn't resolved.
func (c *Conn) MaxMessageSize() int32 { return atomic.LoadInt32(&c.maxMessageSize) }

// NewRequestID returns a request ID which is unique to this Conn.
func (c *Conn) NewRequestID() uint64 { return atomic.AddUint64(&c.nextRequestID, 1) }

// Done selects when the Conn has been torn down, and all of its goroutines
// have exited.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Err returns the cause of the Conn's teardown. It's valid only after Done
// selects, and is ErrConnectionClosed if the Conn was closed by Close.
func (c *Conn) Err() error { return c.err }

// Close tears down the Conn if it's not already, closing its transport and
// failing its outstanding requests, and blocks until its goroutines exit.
// Close must not be called from within a handle callback of the Conn.
func (c *Conn) Close() {
	c.lose(ErrConnectionClosed)
	c.done.Wait()
}

// unroutable logs and counts an inbound command addressed to an id which
// isn't registered with the Conn.
func (c *Conn) unroutable(cmd pb.CommandType, kind string, id uint64) {
	metrics.UnroutableTotal.WithLabelValues(cmd.String()).Inc()
	c.log.WithFields(log.Fields{
		"command": cmd.String(),
		kind:      id,
	}).Warn("dropping command addressed to an unknown id")
}

func (c *Conn) logTeardown(cause error) {
	var entry = c.log.WithFields(log.Fields{
		"received": humanize.Bytes(uint64(atomic.LoadInt64(&c.bytesReceived))),
		"sent":     humanize.Bytes(uint64(atomic.LoadInt64(&c.bytesSent))),
	})
	if errors.Cause(cause) == ErrConnectionClosed {
		metrics.ConnectionsClosedTotal.WithLabelValues(metrics.Ok).Inc()
		entry.Debug("connection closed")
	} else {
		metrics.ConnectionsClosedTotal.WithLabelValues(metrics.Fail).Inc()
		entry.WithField("err", cause).Warn("connection lost")
	}
}
