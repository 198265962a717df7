package brokertest

import (
	"net"
	"testing"

	"github.com/gogo/protobuf/proto"
	pb "go.quasar.dev/core/protocol"
	gc "gopkg.in/check.v1"
)

type BrokerSuite struct{}

func (s *BrokerSuite) TestHandshakeAndLookup(c *gc.C) {
	var bk = NewBroker()
	bk.URL = "pulsar://brokertest:6650"
	bk.CreateTopic("persistent://tenant/ns/foo", 2)

	var conn, fr = dialPipe(bk)
	defer conn.Close()

	writeCommand(c, conn, &pb.CommandConnect{
		ClientVersion:   proto.String("test"),
		ProtocolVersion: proto.Int32(13),
	})
	var f = next(c, fr)
	c.Check(f.Command.Connected, gc.DeepEquals, &pb.CommandConnected{
		ServerVersion:   proto.String(ServerVersion),
		ProtocolVersion: proto.Int32(13),
		MaxMessageSize:  proto.Int32(MaxMessageSize),
	})

	writeCommand(c, conn, &pb.CommandLookupTopic{
		Topic:     proto.String("persistent://tenant/ns/foo"),
		RequestId: proto.Uint64(1),
	})
	c.Check(next(c, fr).Command.LookupTopicResponse, gc.DeepEquals, &pb.CommandLookupTopicResponse{
		BrokerServiceUrl: proto.String(bk.URL),
		Response:         pb.LookupType_Connect.Enum(),
		RequestId:        proto.Uint64(1),
		Authoritative:    proto.Bool(true),
	})

	writeCommand(c, conn, &pb.CommandLookupTopic{
		Topic:     proto.String("persistent://tenant/ns/bar"),
		RequestId: proto.Uint64(2),
	})
	var resp = next(c, fr).Command.LookupTopicResponse
	c.Check(resp.GetResponse(), gc.Equals, pb.LookupType_Failed)
	c.Check(resp.GetError(), gc.Equals, pb.ServerError_TopicNotFound)

	// Partitions are themselves topics.
	writeCommand(c, conn, &pb.CommandPartitionedTopicMetadata{
		Topic:     proto.String(PartitionName("persistent://tenant/ns/foo", 1)),
		RequestId: proto.Uint64(3),
	})
	c.Check(next(c, fr).Command.PartitionMetadataResponse, gc.DeepEquals,
		&pb.CommandPartitionedTopicMetadataResponse{
			Partitions: proto.Uint32(0),
			RequestId:  proto.Uint64(3),
			Response:   pb.PartitionedLookupType_Success.Enum(),
		})

	writeCommand(c, conn, new(pb.CommandPing))
	c.Check(next(c, fr).Command.GetType(), gc.Equals, pb.CommandType_PONG)

	// Commands which a broker doesn't expect are answered with an error.
	writeCommand(c, conn, &pb.CommandSuccess{RequestId: proto.Uint64(4)})
	var cmd = next(c, fr).Command
	c.Check(cmd.GetType(), gc.Equals, pb.CommandType_ERROR)
	c.Check(cmd.Error.GetMessage(), gc.Equals, "unsupported command SUCCESS")
}

func (s *BrokerSuite) TestTopicsOfNamespace(c *gc.C) {
	var bk = NewBroker()
	bk.CreateTopic("persistent://tenant/ns/foo", 2)
	bk.CreateTopic("non-persistent://tenant/ns/bar", 0)
	bk.CreateTopic("persistent://tenant/other/baz", 0)

	c.Check(bk.topicsOfNamespace("tenant/ns", pb.TopicsMode_ALL), gc.DeepEquals, []string{
		"non-persistent://tenant/ns/bar",
		"persistent://tenant/ns/foo",
	})
	c.Check(bk.topicsOfNamespace("tenant/ns", pb.TopicsMode_PERSISTENT), gc.DeepEquals,
		[]string{"persistent://tenant/ns/foo"})
	c.Check(bk.topicsOfNamespace("tenant/missing", pb.TopicsMode_ALL), gc.IsNil)
}

func (s *BrokerSuite) TestProduceConsumeAndTerminate(c *gc.C) {
	const topic = "persistent://tenant/ns/foo"

	var bk = NewBroker()
	bk.CreateTopic(topic, 0)

	var conn, fr = dialPipe(bk)
	defer conn.Close()

	writeCommand(c, conn, &pb.CommandProducer{
		Topic:        proto.String(topic),
		ProducerId:   proto.Uint64(1),
		RequestId:    proto.Uint64(1),
		ProducerName: proto.String("prod"),
	})
	c.Check(next(c, fr).Command.ProducerSuccess, gc.DeepEquals, &pb.CommandProducerSuccess{
		RequestId:      proto.Uint64(1),
		ProducerName:   proto.String("prod"),
		LastSequenceId: proto.Int64(-1),
	})

	writeCommand(c, conn, &pb.CommandSubscribe{
		Topic:        proto.String(topic),
		Subscription: proto.String("sub"),
		SubType:      pb.SubType_Exclusive.Enum(),
		ConsumerId:   proto.Uint64(7),
		RequestId:    proto.Uint64(2),
	})
	c.Check(next(c, fr).Command.Success, gc.DeepEquals, &pb.CommandSuccess{RequestId: proto.Uint64(2)})
	writeCommand(c, conn, &pb.CommandFlow{ConsumerId: proto.Uint64(7), MessagePermits: proto.Uint32(10)})

	var b, err = pb.EncodeMessage(pb.NewBaseCommand(&pb.CommandSend{
		ProducerId:  proto.Uint64(1),
		SequenceId:  proto.Uint64(5),
		NumMessages: proto.Int32(1),
	}), &pb.MessageMetadata{
		ProducerName: proto.String("prod"),
		SequenceId:   proto.Uint64(5),
		PublishTime:  proto.Uint64(1000),
	}, []byte("hello"), nil)
	c.Assert(err, gc.IsNil)
	_, err = conn.Write(b)
	c.Assert(err, gc.IsNil)

	c.Check(next(c, fr).Command.SendReceipt, gc.DeepEquals, &pb.CommandSendReceipt{
		ProducerId: proto.Uint64(1),
		SequenceId: proto.Uint64(5),
		MessageId:  messageID(0),
	})

	// The subscription began at the latest position, and receives the message.
	var f = next(c, fr)
	c.Check(f.Command.Message.GetConsumerId(), gc.Equals, uint64(7))
	c.Check(f.Metadata.GetProducerName(), gc.Equals, "prod")
	c.Check(string(f.Payload), gc.Equals, "hello")

	bk.Terminate(topic)
	c.Check(next(c, fr).Command.ReachedEndOfTopic, gc.DeepEquals,
		&pb.CommandReachedEndOfTopic{ConsumerId: proto.Uint64(7)})

	// Terminated topics refuse further messages.
	c.Check(bk.Publish(topic, &pb.MessageMetadata{}, []byte("refused")), gc.ErrorMatches,
		"TopicTerminatedError: topic was terminated: .*")
	c.Check(bk.Messages(topic), gc.DeepEquals, [][]byte{[]byte("hello")})

	// A new producer of the same name resumes its sequence.
	writeCommand(c, conn, &pb.CommandProducer{
		Topic:        proto.String(topic),
		ProducerId:   proto.Uint64(2),
		RequestId:    proto.Uint64(3),
		ProducerName: proto.String("prod"),
	})
	c.Check(next(c, fr).Command.ProducerSuccess.GetLastSequenceId(), gc.Equals, int64(5))
}

func (s *BrokerSuite) TestListen(c *gc.C) {
	var bk = NewBroker()
	bk.Listen(c)

	var addr = bk.URL[len("pulsar://"):]
	var conn, err = net.Dial("tcp", addr)
	c.Assert(err, gc.IsNil)

	var fr = &frameReader{r: conn}
	writeCommand(c, conn, new(pb.CommandPing))
	c.Check(next(c, fr).Command.GetType(), gc.Equals, pb.CommandType_PONG)
	c.Check(conn.Close(), gc.IsNil)

	bk.Tasks.Cancel()
	c.Check(bk.Tasks.Wait(), gc.IsNil)
}

func dialPipe(bk *Broker) (net.Conn, *frameReader) {
	var conn = bk.Pipe()
	return conn, &frameReader{r: conn}
}

func writeCommand(c *gc.C, conn net.Conn, sub interface{}) {
	var b, err = pb.EncodeCommand(pb.NewBaseCommand(sub), nil)
	c.Assert(err, gc.IsNil)
	_, err = conn.Write(b)
	c.Assert(err, gc.IsNil)
}

func next(c *gc.C, fr interface{ Next() (*pb.RawFrame, error) }) *pb.RawFrame {
	var f, err = fr.Next()
	c.Assert(err, gc.IsNil)
	return f
}

var _ = gc.Suite(&BrokerSuite{})

func Test(t *testing.T) { gc.TestingT(t) }
