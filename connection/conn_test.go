package connection

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.quasar.dev/core/brokertest"
	"go.quasar.dev/core/metrics"
	pb "go.quasar.dev/core/protocol"
)

func TestHandshakeAndPingPong(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{Broker: "pulsar://test"})

	var connectCh = make(chan error, 1)
	go func() {
		connectCh <- c.Connect(context.Background(), testConnect)
	}()
	peer.Handshake()
	require.NoError(t, <-connectCh)

	var v, err = c.Handshake().Value()
	require.NoError(t, err)
	assert.Equal(t, c, v)
	assert.Equal(t, brokertest.ServerVersion, c.ServerVersion())
	assert.Equal(t, int32(brokertest.MaxMessageSize), c.MaxMessageSize())

	// A PING of total size 12, which carries an unknown field.
	peer.WriteRaw([]byte{
		0x00, 0x00, 0x00, 0x0c,
		0x00, 0x00, 0x00, 0x08,
		0x08, 0x12,
		0x92, 0x01, 0x00,
		0xa0, 0x06, 0x00,
	})
	peer.Expect(pb.CommandType_PONG)

	c.Close()
	peer.ExpectClosed()
	assert.Equal(t, ErrConnectionClosed, c.Err())
}

func TestProducerAndConsumerRegistration(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	var p1, p2 = newTestProducer(), newTestProducer()
	require.NoError(t, c.RegisterProducer(1, p1))

	// A duplicate ID fails, and the original registration is retained.
	var err = c.RegisterProducer(1, p2)
	assert.Equal(t, ErrDuplicateID, errors.Cause(err))
	assert.EqualError(t, err, "producer 1: duplicate id")

	// Unregistering an unknown consumer is a no-op.
	c.UnregisterConsumer(99)

	// Producers and consumers are distinct ID spaces.
	var cs = newTestConsumer()
	require.NoError(t, c.RegisterConsumer(1, cs))
	assert.Equal(t, ErrDuplicateID, errors.Cause(c.RegisterConsumer(1, cs)))

	peer.Write(&pb.CommandSendReceipt{ProducerId: proto.Uint64(1), SequenceId: proto.Uint64(42)})
	peer.Write(&pb.CommandSendError{
		ProducerId: proto.Uint64(1),
		SequenceId: proto.Uint64(43),
		Error:      pb.ServerError_ChecksumError.Enum(),
		Message:    proto.String("bad checksum"),
	})
	assert.Equal(t, uint64(42), (<-p1.receipts).GetSequenceId())
	assert.Equal(t, pb.ServerError_ChecksumError, (<-p1.errors).GetError())
	assert.Len(t, p2.receipts, 0)

	// Once unregistered, a receipt is no longer routed to the producer.
	c.UnregisterProducer(1)
	var unroutable = testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("SEND_RECEIPT"))

	peer.Write(&pb.CommandSendReceipt{ProducerId: proto.Uint64(1), SequenceId: proto.Uint64(44)})
	syncReadLoop(peer)

	assert.Len(t, p1.receipts, 0)
	assert.Equal(t, unroutable+1, testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("SEND_RECEIPT")))
}

func TestMessageIsRoutedToItsConsumer(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	var cs3, cs4 = newTestConsumer(), newTestConsumer()
	require.NoError(t, c.RegisterConsumer(3, cs3))
	require.NoError(t, c.RegisterConsumer(4, cs4))

	var md = testMetadata(1)
	peer.WriteMessage(&pb.CommandMessage{
		ConsumerId: proto.Uint64(3),
		MessageId:  testMessageID(10, 20),
	}, md, []byte("hello"))

	// A message to an unknown consumer is dropped.
	peer.WriteMessage(&pb.CommandMessage{
		ConsumerId: proto.Uint64(5),
		MessageId:  testMessageID(10, 21),
	}, md, []byte("dropped"))
	peer.Write(&pb.CommandReachedEndOfTopic{ConsumerId: proto.Uint64(3)})
	syncReadLoop(peer)

	require.Len(t, cs3.messages, 1)
	var msg = <-cs3.messages
	assert.Equal(t, testMessageID(10, 20), msg.MessageId)
	assert.Equal(t, md, msg.Metadata)
	assert.Equal(t, []byte("hello"), msg.Payload)
	assert.Len(t, cs3.ended, 1)

	assert.Len(t, cs4.messages, 0)
	assert.Len(t, cs4.ended, 0)
}

func TestRequestIsResolvedExactlyOnce(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	var future = c.Request(7, mustEncode(&pb.CommandPartitionedTopicMetadata{
		Topic:     proto.String("a/topic"),
		RequestId: proto.Uint64(7),
	}))
	var f = peer.Expect(pb.CommandType_PARTITIONED_METADATA)
	assert.Equal(t, uint64(7), f.Command.PartitionMetadata.GetRequestId())

	peer.Write(&pb.CommandPartitionedTopicMetadataResponse{RequestId: proto.Uint64(7), Partitions: proto.Uint32(4)})

	var v, err = future.Value()
	require.NoError(t, err)
	assert.Equal(t, &PartitionsResult{RequestID: 7, Partitions: 4}, v)

	// A repeated response is unroutable, and doesn't resolve again.
	var unroutable = testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("PARTITIONED_METADATA_RESPONSE"))
	peer.Write(&pb.CommandPartitionedTopicMetadataResponse{RequestId: proto.Uint64(7), Partitions: proto.Uint32(8)})
	flushRequests(t, c, peer)

	assert.Equal(t, unroutable+1,
		testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("PARTITIONED_METADATA_RESPONSE")))

	v, err = future.Value()
	require.NoError(t, err)
	assert.Equal(t, &PartitionsResult{RequestID: 7, Partitions: 4}, v)
}

func TestErrorFlaggedResponsesFailTheirRequest(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	var future = c.Request(7, mustEncode(&pb.CommandPartitionedTopicMetadata{
		Topic:     proto.String("a/topic"),
		RequestId: proto.Uint64(7),
	}))
	peer.Expect(pb.CommandType_PARTITIONED_METADATA)
	peer.Write(&pb.CommandPartitionedTopicMetadataResponse{
		RequestId: proto.Uint64(7),
		Response:  pb.PartitionedLookupType_Failed.Enum(),
		Error:     pb.ServerError_TopicNotFound.Enum(),
		Message:   proto.String("no such topic"),
	})

	var v, err = future.Value()
	assert.Nil(t, v)
	assert.Equal(t, &BrokerError{Code: pb.ServerError_TopicNotFound, Message: "no such topic"}, err)
	assert.EqualError(t, err, "TopicNotFound: no such topic")

	// As do failed lookups, and generic ERROR responses.
	future = c.Request(8, lookupFrame(8))
	peer.Expect(pb.CommandType_LOOKUP)
	peer.Write(&pb.CommandLookupTopicResponse{
		RequestId: proto.Uint64(8),
		Response:  pb.LookupType_Failed.Enum(),
		Error:     pb.ServerError_ServiceNotReady.Enum(),
		Message:   proto.String("not ready"),
	})
	assert.Equal(t, &BrokerError{Code: pb.ServerError_ServiceNotReady, Message: "not ready"}, future.Err())

	future = c.Request(9, mustEncode(&pb.CommandCloseConsumer{
		ConsumerId: proto.Uint64(1),
		RequestId:  proto.Uint64(9),
	}))
	peer.Expect(pb.CommandType_CLOSE_CONSUMER)
	peer.Write(&pb.CommandError{
		RequestId: proto.Uint64(9),
		Error:     pb.ServerError_ConsumerNotFound.Enum(),
		Message:   proto.String("unknown"),
	})
	assert.Equal(t, &BrokerError{Code: pb.ServerError_ConsumerNotFound, Message: "unknown"}, future.Err())
}

func TestDuplicatePendingRequestID(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	var frame = lookupFrame(3)
	var first = c.Request(3, frame)
	peer.Expect(pb.CommandType_LOOKUP)

	var second = c.Request(3, frame)
	assert.Equal(t, ErrDuplicateID, errors.Cause(second.Err()))

	peer.Write(&pb.CommandLookupTopicResponse{
		RequestId:        proto.Uint64(3),
		Response:         pb.LookupType_Redirect.Enum(),
		BrokerServiceUrl: proto.String("pulsar://other:6650"),
	})
	var v, err = first.Value()
	require.NoError(t, err)
	assert.Equal(t, &LookupResult{RequestID: 3, BrokerServiceURL: "pulsar://other:6650", Redirect: true}, v)
}

func TestConnectionLostFansOut(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var unregistered = make(chan string, 2)

	var c = New(client, Options{
		Broker:     "pulsar://broker-1:6650",
		Unregister: func(broker string) { unregistered <- broker },
	})
	var p1, p2, cs = newTestProducer(), newTestProducer(), newTestConsumer()
	require.NoError(t, c.RegisterProducer(1, p1))
	require.NoError(t, c.RegisterProducer(2, p2))
	require.NoError(t, c.RegisterConsumer(1, cs))

	var future = c.Request(5, lookupFrame(5))
	peer.Expect(pb.CommandType_LOOKUP)

	peer.Close() // Broker hangs up.
	<-c.Done()

	assert.Equal(t, ErrConnectionClosed, errors.Cause(future.Err()))
	assert.Equal(t, ErrConnectionClosed, errors.Cause(c.Err()))
	assert.EqualError(t, c.Err(), "broker closed the connection: connection closed")
	assert.Equal(t, ErrConnectionClosed, errors.Cause(c.Handshake().Err()))

	// Each handle is notified exactly once.
	assert.Len(t, p1.closed, 1)
	assert.Len(t, p2.closed, 1)
	assert.Len(t, cs.closed, 1)
	assert.Equal(t, "pulsar://broker-1:6650", <-unregistered)

	// Operations of the torn-down Conn fail or are no-ops.
	assert.Equal(t, ErrConnectionClosed, c.RegisterProducer(3, newTestProducer()))
	assert.Equal(t, ErrConnectionClosed, c.RegisterConsumer(3, newTestConsumer()))
	c.UnregisterProducer(1)
	c.UnregisterConsumer(1)
	assert.Equal(t, ErrConnectionClosed, c.Request(6, mustEncode(&pb.CommandPing{})).Err())
	assert.Equal(t, ErrConnectionClosed, c.SendAndFlush(context.Background(), mustEncode(&pb.CommandPing{})))
	c.Send(mustEncode(&pb.CommandPing{})) // Dropped.

	c.Close() // Idempotent.
	assert.Len(t, p1.closed, 1)
	assert.Len(t, unregistered, 0)
}

func TestConnectionLostWithNoRegistrations(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var unregistered = make(chan string, 2)

	var c = New(client, Options{
		Broker:     "pulsar://broker-2:6650",
		Unregister: func(broker string) { unregistered <- broker },
	})
	c.Close()
	peer.ExpectClosed()

	assert.Equal(t, ErrConnectionClosed, c.Err())
	assert.Equal(t, "pulsar://broker-2:6650", <-unregistered)
	assert.Len(t, unregistered, 0)
}

func TestWriteFailureWithOutstandingRequest(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	defer peer.Close()

	var c = New(failingWriter{client}, Options{})
	var p = newTestProducer()
	require.NoError(t, c.RegisterProducer(1, p))

	var unroutable = testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("0"))

	var future = c.Request(7, lookupFrame(7))
	assert.Equal(t, ErrConnectionClosed, errors.Cause(future.Err()))

	<-c.Done()
	assert.EqualError(t, c.Err(), "write: broken pipe")
	assert.Len(t, p.closed, 1)

	// The failed write isn't counted as an unroutable response.
	assert.Equal(t, unroutable, testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("0")))
}

func TestFailRequest(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	var future = c.Request(5, lookupFrame(5))
	peer.Expect(pb.CommandType_LOOKUP)

	var unroutable = testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("0"))
	c.failRequest(5, ErrConnectionClosed)
	c.failRequest(6, ErrConnectionClosed) // Not pending.
	assert.Equal(t, ErrConnectionClosed, future.Err())

	flushRequests(t, c, peer)
	assert.Equal(t, unroutable, testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("0")))

	// A late response of the failed request is unroutable.
	var late = testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("LOOKUP_RESPONSE"))
	peer.Write(&pb.CommandLookupTopicResponse{
		RequestId: proto.Uint64(5),
		Response:  pb.LookupType_Connect.Enum(),
	})
	flushRequests(t, c, peer)
	assert.Equal(t, late+1, testutil.ToFloat64(metrics.UnroutableTotal.WithLabelValues("LOOKUP_RESPONSE")))
}

func TestBrokerClosesProducerAndConsumer(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()

	var p, cs = newTestProducer(), newTestConsumer()
	require.NoError(t, c.RegisterProducer(2, p))
	require.NoError(t, c.RegisterConsumer(2, cs))

	peer.Write(&pb.CommandCloseProducer{ProducerId: proto.Uint64(2), RequestId: proto.Uint64(1)})
	peer.Write(&pb.CommandCloseConsumer{ConsumerId: proto.Uint64(2), RequestId: proto.Uint64(2)})
	syncReadLoop(peer)

	assert.Len(t, p.closed, 1)
	assert.Len(t, cs.closed, 1)

	// IDs are unregistered, and may be re-used.
	require.NoError(t, c.RegisterProducer(2, newTestProducer()))

	// Handles aren't notified again on teardown.
	c.Close()
	assert.Len(t, p.closed, 1)
	assert.Len(t, cs.closed, 1)
}

func TestDecodeFailureTearsDown(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	var cs = newTestConsumer()
	require.NoError(t, c.RegisterConsumer(3, cs))

	var b, err = pb.EncodeMessage(pb.NewBaseCommand(&pb.CommandMessage{
		ConsumerId: proto.Uint64(3),
		MessageId:  testMessageID(1, 1),
	}), testMetadata(1), []byte("payload"), nil)
	require.NoError(t, err)
	b[len(b)-1] ^= 0xff // Corrupt the payload.

	var failures = testutil.ToFloat64(metrics.DecodeFailuresTotal.WithLabelValues("checksum"))
	peer.WriteRaw(b)
	<-c.Done()

	assert.Equal(t, pb.ErrChecksumMismatch, errors.Cause(c.Err()))
	assert.Equal(t, failures+1, testutil.ToFloat64(metrics.DecodeFailuresTotal.WithLabelValues("checksum")))
	assert.Len(t, cs.messages, 0)
	assert.Len(t, cs.closed, 1)

	// The handshake never completed.
	assert.Equal(t, ErrConnectionClosed, c.Handshake().Err())
	peer.ExpectClosed()
}

func TestFramesSpanningReads(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(oneByteReader{client}, Options{ReadBufferSize: 1})
	defer peer.Close()
	defer c.Close()

	var cs = newTestConsumer()
	require.NoError(t, c.RegisterConsumer(1, cs))

	var payload = make([]byte, 3*minRead)
	for i := range payload {
		payload[i] = byte(i)
	}
	go func() {
		for i := 0; i != 3; i++ {
			peer.WriteMessage(&pb.CommandMessage{
				ConsumerId: proto.Uint64(1),
				MessageId:  testMessageID(1, uint64(i)),
			}, testMetadata(uint64(i)), payload)
		}
	}()
	for i := 0; i != 3; i++ {
		var msg = <-cs.messages
		assert.Equal(t, uint64(i), msg.MessageId.GetEntryId())
		assert.Equal(t, payload, msg.Payload)
	}
}

func TestSendAndFlushHonorsContext(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	// The peer doesn't read, so the write blocks.
	var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Equal(t, context.DeadlineExceeded, c.SendAndFlush(ctx, mustEncode(&pb.CommandPing{})))

	// Once read, a flushed send completes.
	var readCh = make(chan struct{})
	go func() {
		peer.Expect(pb.CommandType_PING)
		peer.Expect(pb.CommandType_PING)
		close(readCh)
	}()
	assert.NoError(t, c.SendAndFlush(context.Background(), mustEncode(&pb.CommandPing{})))
	<-readCh
}

func TestPingIsAnsweredWhileWriteIsBlocked(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	var cs = newTestConsumer()
	require.NoError(t, c.RegisterConsumer(1, cs))

	// The peer doesn't read, so the write of the FLOW blocks.
	require.NoError(t, c.Flow(1, 10))

	// The read loop continues to dispatch, and PINGs share a queued PONG.
	peer.Write(new(pb.CommandPing))
	peer.Write(new(pb.CommandPing))
	peer.Write(&pb.CommandReachedEndOfTopic{ConsumerId: proto.Uint64(1)})
	<-cs.ended

	peer.Expect(pb.CommandType_FLOW)
	peer.Expect(pb.CommandType_PONG)
	syncReadLoop(peer)
}

func TestSendMessageRacesHandshake(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	var connected = make(chan struct{})
	go func() {
		defer close(connected)
		peer.Write(&pb.CommandConnected{
			ServerVersion:  proto.String("a-version"),
			MaxMessageSize: proto.Int32(8),
		})
	}()
	require.NoError(t, c.SendMessage(1, 1, testMetadata(1), []byte("small")))

	<-connected
	require.NoError(t, c.Handshake().Err())
	peer.Expect(pb.CommandType_SEND)

	assert.Equal(t, int32(8), c.MaxMessageSize())
	assert.EqualError(t, c.SendMessage(1, 2, testMetadata(2), []byte("too large")),
		"payload of 9 bytes exceeds the broker's MaxMessageSize (8)")
}

func TestKeepAliveTimeout(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	defer peer.Close()

	var c = New(client, Options{KeepAliveInterval: 20 * time.Millisecond})

	// The first ping is answered, and subsequent ones are not.
	peer.Expect(pb.CommandType_PING)
	peer.Write(new(pb.CommandPong))

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("expected keep-alive timeout")
	}
	assert.Equal(t, ErrKeepAliveTimeout, errors.Cause(c.Err()))
}

func TestReserveGrowsForPartialFrames(t *testing.T) {
	var buf = make([]byte, 0, 2*minRead)
	assert.Equal(t, 2*minRead, cap(reserve(buf, 4096)))

	// Insufficient spare capacity is grown to at least |size|.
	buf = make([]byte, 10, 10+minRead-1)
	var out = reserve(buf, 4096)
	assert.Equal(t, 10, len(out))
	assert.Equal(t, 10+4096, cap(out))

	// A partial frame grows capacity to hold its remainder.
	buf = []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x00} // 64KB frame.
	out = reserve(buf, 4096)
	assert.Equal(t, buf, out)
	assert.Equal(t, 1<<16+4, cap(out))

	// Declared sizes are capped to the maximum frame size.
	buf = []byte{0x7f, 0xff, 0xff, 0xff}
	assert.Equal(t, pb.MaxFrameSize, cap(reserve(buf, 4096)))
}

type testProducer struct {
	receipts chan *pb.CommandSendReceipt
	errors   chan *pb.CommandSendError
	closed   chan struct{}
}

func newTestProducer() *testProducer {
	return &testProducer{
		receipts: make(chan *pb.CommandSendReceipt, 16),
		errors:   make(chan *pb.CommandSendError, 16),
		closed:   make(chan struct{}, 16),
	}
}

func (p *testProducer) ReceivedSendReceipt(m *pb.CommandSendReceipt) { p.receipts <- m }
func (p *testProducer) ReceivedSendError(m *pb.CommandSendError)     { p.errors <- m }
func (p *testProducer) ConnectionClosed()                            { p.closed <- struct{}{} }

type testConsumer struct {
	messages chan *pb.Message
	ended    chan struct{}
	closed   chan struct{}
}

func newTestConsumer() *testConsumer {
	return &testConsumer{
		messages: make(chan *pb.Message, 16),
		ended:    make(chan struct{}, 16),
		closed:   make(chan struct{}, 16),
	}
}

func (c *testConsumer) MessageReceived(m *pb.Message) { c.messages <- m }
func (c *testConsumer) ReachedEndOfTopic()            { c.ended <- struct{}{} }
func (c *testConsumer) ConnectionClosed()             { c.closed <- struct{}{} }

// syncReadLoop round-trips a PING through the Conn, which ensures its read
// loop has dispatched all frames written before it.
func syncReadLoop(peer *brokertest.Peer) {
	peer.Write(new(pb.CommandPing))
	peer.Expect(pb.CommandType_PONG)
}

// flushRequests round-trips a request through the Conn, which ensures its
// requests actor has applied all resolutions dispatched before it.
func flushRequests(t *testing.T, c *Conn, peer *brokertest.Peer) {
	var id = 1000 + c.NewRequestID()
	var future = c.Request(id, lookupFrame(id))
	peer.Expect(pb.CommandType_LOOKUP)
	peer.Write(&pb.CommandSuccess{RequestId: proto.Uint64(id)})
	require.NoError(t, future.Err())
}

func lookupFrame(id uint64) []byte {
	return mustEncode(&pb.CommandLookupTopic{Topic: proto.String("a/topic"), RequestId: proto.Uint64(id)})
}

func testMetadata(sequenceID uint64) *pb.MessageMetadata {
	return &pb.MessageMetadata{
		ProducerName: proto.String("a-producer"),
		SequenceId:   proto.Uint64(sequenceID),
		PublishTime:  proto.Uint64(1234),
	}
}

func testMessageID(ledgerID, entryID uint64) *pb.MessageIdData {
	return &pb.MessageIdData{LedgerId: proto.Uint64(ledgerID), EntryId: proto.Uint64(entryID)}
}

// failingWriter is a net.Conn which fails every Write.
type failingWriter struct{ net.Conn }

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

// oneByteReader is a net.Conn which reads at most one byte at a time.
type oneByteReader struct{ net.Conn }

func (r oneByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return r.Conn.Read(p)
}
