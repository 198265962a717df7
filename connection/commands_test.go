package connection

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.quasar.dev/core/brokertest"
	pb "go.quasar.dev/core/protocol"
)

func TestLookupAndTopicMetadata(t *testing.T) {
	var b = brokertest.NewBroker()
	b.URL = "pulsar://brokertest:6650"
	b.CreateTopic("persistent://public/default/orders", 3)
	b.CreateTopic("persistent://public/default/events", 0)
	b.CreateTopic("non-persistent://public/default/metrics", 0)
	b.CreateTopic("persistent://public/other/audit", 0)

	var c = newConnectedConn(t, b)
	defer c.Close()
	var ctx = context.Background()

	lookup, err := c.LookupTopic(ctx, "persistent://public/default/orders", false)
	require.NoError(t, err)
	assert.Equal(t, &LookupResult{RequestID: 1, BrokerServiceURL: b.URL, Authoritative: true}, lookup)

	_, err = c.LookupTopic(ctx, "persistent://public/default/missing", false)
	assert.Equal(t, &BrokerError{
		Code:    pb.ServerError_TopicNotFound,
		Message: "topic not found: persistent://public/default/missing",
	}, errors.Cause(err))
	assert.EqualError(t, err,
		"LOOKUP request: TopicNotFound: topic not found: persistent://public/default/missing")

	partitions, err := c.PartitionedMetadata(ctx, "persistent://public/default/orders")
	require.NoError(t, err)
	assert.Equal(t, &PartitionsResult{RequestID: 3, Partitions: 3}, partitions)

	partitions, err = c.PartitionedMetadata(ctx, "persistent://public/default/events")
	require.NoError(t, err)
	assert.Equal(t, &PartitionsResult{RequestID: 4, Partitions: 0}, partitions)

	topics, err := c.GetTopicsOfNamespace(ctx, "public/default", pb.TopicsMode_ALL)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"non-persistent://public/default/metrics",
		"persistent://public/default/events",
		"persistent://public/default/orders",
	}, topics.Topics)

	topics, err = c.GetTopicsOfNamespace(ctx, "public/default", pb.TopicsMode_NON_PERSISTENT)
	require.NoError(t, err)
	assert.Equal(t, []string{"non-persistent://public/default/metrics"}, topics.Topics)

	// Malformed requests are refused without being sent.
	_, err = c.LookupTopic(ctx, "bad topic", false)
	assert.EqualError(t, err, `LOOKUP.Topic: not a valid name ("bad topic")`)
	_, err = c.GetTopicsOfNamespace(ctx, "public", pb.TopicsMode_ALL)
	assert.EqualError(t, err, "GET_TOPICS_OF_NAMESPACE.Namespace: expected tenant/namespace (public)")
}

func TestProduceAndConsume(t *testing.T) {
	const topic = "persistent://public/default/orders"

	var b = brokertest.NewBroker()
	b.CreateTopic(topic, 0)
	require.NoError(t, b.Publish(topic, testMetadata(1), []byte("zero")))

	var c = newConnectedConn(t, b)
	defer c.Close()
	var ctx = context.Background()

	var p = newTestProducer()
	created, err := c.CreateProducer(ctx, &pb.CommandProducer{
		Topic:      proto.String(topic),
		ProducerId: proto.Uint64(1),
	}, p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ProducerName, "brokertest-"))
	assert.Equal(t, int64(-1), created.LastSequenceID)

	// Zero-valued IDs and sequences are sent and receipted.
	for seq, payload := range []string{"one", "two"} {
		require.NoError(t, c.SendMessage(1, uint64(seq), &pb.MessageMetadata{
			ProducerName: proto.String(created.ProducerName),
			SequenceId:   proto.Uint64(uint64(seq)),
			PublishTime:  proto.Uint64(uint64(time.Now().UnixMilli())),
		}, []byte(payload)))
	}
	for seq := 0; seq != 2; seq++ {
		var receipt = <-p.receipts
		assert.Equal(t, uint64(1), receipt.GetProducerId())
		assert.Equal(t, uint64(seq), receipt.GetSequenceId())
		assert.Equal(t, uint64(seq+1), receipt.MessageId.GetEntryId())
	}
	assert.Equal(t, [][]byte{[]byte("zero"), []byte("one"), []byte("two")}, b.Messages(topic))

	// A producer of the same name resumes from its last sequence ID.
	var p2 = newTestProducer()
	created2, err := c.CreateProducer(ctx, &pb.CommandProducer{
		Topic:        proto.String(topic),
		ProducerId:   proto.Uint64(2),
		ProducerName: proto.String(created.ProducerName),
	}, p2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created2.LastSequenceID)

	var cs = newTestConsumer()
	require.NoError(t, c.Subscribe(ctx, &pb.CommandSubscribe{
		Topic:           proto.String(topic),
		Subscription:    proto.String("a-subscription"),
		SubType:         pb.SubType_Exclusive.Enum(),
		ConsumerId:      proto.Uint64(1),
		InitialPosition: pb.InitialPosition_Earliest.Enum(),
	}, cs))

	// Messages are delivered only as permits are granted.
	require.NoError(t, c.Flow(1, 2))
	for _, expect := range []string{"zero", "one"} {
		var msg = <-cs.messages
		assert.Equal(t, expect, string(msg.Payload))
	}
	assert.Len(t, cs.messages, 0)

	require.NoError(t, c.Flow(1, 5))
	var msg = <-cs.messages
	assert.Equal(t, "two", string(msg.Payload))
	assert.Equal(t, created.ProducerName, msg.Metadata.GetProducerName())
	require.NoError(t, c.Ack(1, pb.AckType_Cumulative, msg.MessageId))

	b.Terminate(topic)
	<-cs.ended

	require.NoError(t, c.CloseProducer(ctx, 1))
	require.NoError(t, c.CloseProducer(ctx, 2))
	require.NoError(t, c.CloseConsumer(ctx, 1))

	// Closed handles aren't notified on teardown.
	c.Close()
	assert.Len(t, p.closed, 0)
	assert.Len(t, cs.closed, 0)
}

func TestRegistrationIsRolledBackOnBrokerError(t *testing.T) {
	var b = brokertest.NewBroker()
	var c = newConnectedConn(t, b)
	defer c.Close()
	var ctx = context.Background()

	var _, err = c.CreateProducer(ctx, &pb.CommandProducer{
		Topic:      proto.String("persistent://public/default/missing"),
		ProducerId: proto.Uint64(1),
	}, newTestProducer())
	assert.Equal(t, pb.ServerError_TopicNotFound, errors.Cause(err).(*BrokerError).Code)

	err = c.Subscribe(ctx, &pb.CommandSubscribe{
		Topic:        proto.String("persistent://public/default/missing"),
		Subscription: proto.String("a-subscription"),
		SubType:      pb.SubType_Shared.Enum(),
		ConsumerId:   proto.Uint64(1),
	}, newTestConsumer())
	assert.Equal(t, pb.ServerError_TopicNotFound, errors.Cause(err).(*BrokerError).Code)

	// IDs of failed requests may be registered again.
	assert.NoError(t, c.RegisterProducer(1, newTestProducer()))
	assert.NoError(t, c.RegisterConsumer(1, newTestConsumer()))

	// A locally duplicated ID is refused without a request.
	_, err = c.CreateProducer(ctx, &pb.CommandProducer{
		Topic:      proto.String("persistent://public/default/missing"),
		ProducerId: proto.Uint64(1),
	}, newTestProducer())
	assert.Equal(t, ErrDuplicateID, errors.Cause(err))
}

func TestMismatchedResponseFailsRequest(t *testing.T) {
	var client, peer = brokertest.NewPeer(t)
	var c = New(client, Options{})
	defer peer.Close()
	defer c.Close()

	var ctx = context.Background()
	var errCh = make(chan error, 1)

	go func() {
		var _, err = c.LookupTopic(ctx, "persistent://public/default/orders", false)
		errCh <- err
	}()
	var f = peer.Expect(pb.CommandType_LOOKUP)
	peer.Write(&pb.CommandSuccess{RequestId: f.Command.LookupTopic.RequestId})
	assert.EqualError(t, <-errCh, "unexpected SUCCESS response to LOOKUP request")

	go func() {
		var _, err = c.PartitionedMetadata(ctx, "persistent://public/default/orders")
		errCh <- err
	}()
	f = peer.Expect(pb.CommandType_PARTITIONED_METADATA)
	peer.Write(&pb.CommandGetTopicsOfNamespaceResponse{RequestId: f.Command.PartitionMetadata.RequestId})
	assert.EqualError(t, <-errCh,
		"unexpected *connection.TopicsResult response to PARTITIONED_METADATA request")

	// A producer answered with a mismatched response is unregistered.
	go func() {
		var _, err = c.CreateProducer(ctx, &pb.CommandProducer{
			Topic:      proto.String("persistent://public/default/orders"),
			ProducerId: proto.Uint64(3),
		}, newTestProducer())
		errCh <- err
	}()
	f = peer.Expect(pb.CommandType_PRODUCER)
	peer.Write(&pb.CommandLookupTopicResponse{
		RequestId: f.Command.Producer.RequestId,
		Response:  pb.LookupType_Connect.Enum(),
	})
	assert.EqualError(t, <-errCh, "unexpected *connection.LookupResult response to PRODUCER request")
	assert.NoError(t, c.RegisterProducer(3, newTestProducer()))
}

func TestSendMessageValidation(t *testing.T) {
	var b = brokertest.NewBroker()
	var c = newConnectedConn(t, b)
	defer c.Close()

	var md = testMetadata(1)
	md.UncompressedSize = proto.Uint32(4)
	assert.EqualError(t, c.SendMessage(1, 1, md, []byte("data")),
		"MessageMetadata: unexpected UncompressedSize without Compression (4)")

	assert.EqualError(t, c.SendMessage(1, 1, &pb.MessageMetadata{SequenceId: proto.Uint64(1)}, []byte("data")),
		"MessageMetadata: expected ProducerName")

	assert.EqualError(t, c.SendMessage(1, 1, testMetadata(1), make([]byte, brokertest.MaxMessageSize+1)),
		"payload of 1048577 bytes exceeds the broker's MaxMessageSize (1048576)")

	assert.EqualError(t, c.Ack(1, pb.AckType_Individual),
		"ACK: expected at least one MessageId")
}

func TestDialAndHandshake(t *testing.T) {
	var b = brokertest.NewBroker()
	b.Listen(t)
	b.CreateTopic("persistent://public/default/orders", 0)

	var ctx = context.Background()
	var c, err = Dial(ctx, Options{Broker: b.URL, KeepAliveInterval: time.Minute}, testConnect)
	require.NoError(t, err)

	assert.Equal(t, b.URL, c.Broker())
	assert.Equal(t, brokertest.ServerVersion, c.ServerVersion())

	lookup, err := c.LookupTopic(ctx, "persistent://public/default/orders", true)
	require.NoError(t, err)
	assert.Equal(t, b.URL, lookup.BrokerServiceURL)

	c.Close()
	b.Tasks.Cancel()
	assert.NoError(t, b.Tasks.Wait())

	_, err = Dial(ctx, Options{Broker: "http://broker"}, testConnect)
	assert.EqualError(t, err, `unsupported broker URL scheme "http" (expected pulsar://)`)
}

func TestBrokerAddr(t *testing.T) {
	for _, tc := range []struct {
		url, addr, err string
	}{
		{url: "pulsar://broker-1:6651", addr: "broker-1:6651"},
		{url: "pulsar://broker-1", addr: "broker-1:6650"},
		{url: "pulsar://[::1]", addr: "[::1]:6650"},
		{url: "pulsar+ssl://broker-1:6651", err: `unsupported broker URL scheme "pulsar+ssl" (expected pulsar://)`},
		{url: "pulsar://", err: `broker URL "pulsar://" has no host`},
	} {
		var addr, err = BrokerAddr(tc.url)
		if tc.err != "" {
			assert.EqualError(t, err, tc.err)
		} else {
			assert.NoError(t, err)
			assert.Equal(t, tc.addr, addr)
		}
	}
}

var testConnect = &pb.CommandConnect{
	ClientVersion:   proto.String("connection-test"),
	ProtocolVersion: proto.Int32(13),
}

func newConnectedConn(t *testing.T, b *brokertest.Broker) *Conn {
	var c = New(b.Pipe(), Options{Broker: "pulsar://brokertest"})
	require.NoError(t, c.Connect(context.Background(), testConnect))
	return c
}
