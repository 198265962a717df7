package brokertest

import (
	"io"
	"net"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	pb "go.quasar.dev/core/protocol"
)

var errConnClosed = errors.New("connection closed")

// session is the state of one connection served by a Broker.
type session struct {
	b         *Broker
	conn      net.Conn
	producers map[uint64]producer
	consumers map[uint64]*subscription
}

type producer struct {
	topic, name string
}

type subscription struct {
	topic   string
	cursor  int
	permits uint32
	ended   bool
}

func (b *Broker) serveConn(conn net.Conn) {
	defer conn.Close()

	var (
		frames = make(chan *pb.RawFrame)
		done   = make(chan struct{})
		readCh = make(chan error, 1)
		wake   = b.addWake()
	)
	defer b.removeWake(wake)
	defer close(done)

	go func() {
		var fr = frameReader{r: conn}
		for {
			var f, err = fr.Next()
			if err != nil {
				readCh <- err
				return
			}
			select {
			case frames <- f:
			case <-done:
				return
			}
		}
	}()

	var s = &session{
		b:         b,
		conn:      conn,
		producers: make(map[uint64]producer),
		consumers: make(map[uint64]*subscription),
	}
	for {
		select {
		case f := <-frames:
			if err := s.handle(f); err != nil {
				logServeError(err)
				return
			}
		case err := <-readCh:
			logServeError(err)
			return
		case <-wake:
		}
		if err := s.deliver(); err != nil {
			logServeError(err)
			return
		}
	}
}

func (s *session) handle(f *pb.RawFrame) error {
	var cmd = f.Command

	if err := cmd.Validate(); err != nil {
		return s.writeError(0, pb.ServerError_UnknownError, err.Error())
	}

	switch cmd.GetType() {
	case pb.CommandType_CONNECT:
		return s.write(&pb.CommandConnected{
			ServerVersion:   proto.String(ServerVersion),
			ProtocolVersion: proto.Int32(cmd.Connect.GetProtocolVersion()),
			MaxMessageSize:  proto.Int32(MaxMessageSize),
		})

	case pb.CommandType_PING:
		return s.write(new(pb.CommandPong))

	case pb.CommandType_PONG, pb.CommandType_ACK:
		return nil

	case pb.CommandType_LOOKUP:
		var req = cmd.LookupTopic
		if !s.b.hasTopic(req.GetTopic()) {
			return s.write(&pb.CommandLookupTopicResponse{
				RequestId: req.RequestId,
				Response:  pb.LookupType_Failed.Enum(),
				Error:     pb.ServerError_TopicNotFound.Enum(),
				Message:   proto.String("topic not found: " + req.GetTopic()),
			})
		}
		return s.write(&pb.CommandLookupTopicResponse{
			BrokerServiceUrl: proto.String(s.b.URL),
			Response:         pb.LookupType_Connect.Enum(),
			RequestId:        req.RequestId,
			Authoritative:    proto.Bool(true),
		})

	case pb.CommandType_PARTITIONED_METADATA:
		var req = cmd.PartitionMetadata
		var partitions, ok = s.b.partitions(req.GetTopic())
		if !ok {
			return s.write(&pb.CommandPartitionedTopicMetadataResponse{
				RequestId: req.RequestId,
				Response:  pb.PartitionedLookupType_Failed.Enum(),
				Error:     pb.ServerError_TopicNotFound.Enum(),
				Message:   proto.String("topic not found: " + req.GetTopic()),
			})
		}
		return s.write(&pb.CommandPartitionedTopicMetadataResponse{
			Partitions: proto.Uint32(partitions),
			RequestId:  req.RequestId,
			Response:   pb.PartitionedLookupType_Success.Enum(),
		})

	case pb.CommandType_GET_TOPICS_OF_NAMESPACE:
		var req = cmd.GetTopicsOfNamespace
		return s.write(&pb.CommandGetTopicsOfNamespaceResponse{
			RequestId: req.RequestId,
			Topics:    s.b.topicsOfNamespace(req.GetNamespace(), req.GetMode()),
		})

	case pb.CommandType_PRODUCER:
		var req = cmd.Producer
		if _, ok := s.producers[req.GetProducerId()]; ok {
			return s.writeError(req.GetRequestId(), pb.ServerError_ProducerBusy, "producer ID is already in use")
		}
		var name = req.GetProducerName()
		if name == "" {
			name = newProducerName()
		}
		var lastSequenceID, ok = s.b.lastSequenceID(req.GetTopic(), name)
		if !ok {
			return s.writeError(req.GetRequestId(), pb.ServerError_TopicNotFound, "topic not found: "+req.GetTopic())
		}
		s.producers[req.GetProducerId()] = producer{topic: req.GetTopic(), name: name}

		return s.write(&pb.CommandProducerSuccess{
			RequestId:      req.RequestId,
			ProducerName:   proto.String(name),
			LastSequenceId: proto.Int64(lastSequenceID),
		})

	case pb.CommandType_SEND:
		var req = cmd.Send
		var p, ok = s.producers[req.GetProducerId()]
		if !ok {
			return s.write(&pb.CommandSendError{
				ProducerId: req.ProducerId,
				SequenceId: req.SequenceId,
				Error:      pb.ServerError_UnknownError.Enum(),
				Message:    proto.String("unknown producer"),
			})
		}

		s.b.mu.Lock()
		var entry, err = s.b.publish(p.topic, f.Metadata, f.Payload)
		s.b.mu.Unlock()

		if be, ok := err.(*brokerError); ok {
			return s.write(&pb.CommandSendError{
				ProducerId: req.ProducerId,
				SequenceId: req.SequenceId,
				Error:      be.code.Enum(),
				Message:    proto.String(be.message),
			})
		}
		return s.write(&pb.CommandSendReceipt{
			ProducerId: req.ProducerId,
			SequenceId: req.SequenceId,
			MessageId:  messageID(entry),
		})

	case pb.CommandType_SUBSCRIBE:
		var req = cmd.Subscribe
		if _, ok := s.consumers[req.GetConsumerId()]; ok {
			return s.writeError(req.GetRequestId(), pb.ServerError_ConsumerBusy, "consumer ID is already in use")
		}
		var cursor, ok = s.b.initialCursor(req.GetTopic(), req.GetInitialPosition())
		if !ok {
			return s.writeError(req.GetRequestId(), pb.ServerError_TopicNotFound, "topic not found: "+req.GetTopic())
		}
		s.consumers[req.GetConsumerId()] = &subscription{topic: req.GetTopic(), cursor: cursor}
		return s.write(&pb.CommandSuccess{RequestId: req.RequestId})

	case pb.CommandType_FLOW:
		if sub, ok := s.consumers[cmd.Flow.GetConsumerId()]; ok {
			sub.permits += cmd.Flow.GetMessagePermits()
		}
		return nil

	case pb.CommandType_UNSUBSCRIBE:
		delete(s.consumers, cmd.Unsubscribe.GetConsumerId())
		return s.write(&pb.CommandSuccess{RequestId: cmd.Unsubscribe.RequestId})

	case pb.CommandType_CLOSE_PRODUCER:
		delete(s.producers, cmd.CloseProducer.GetProducerId())
		return s.write(&pb.CommandSuccess{RequestId: cmd.CloseProducer.RequestId})

	case pb.CommandType_CLOSE_CONSUMER:
		delete(s.consumers, cmd.CloseConsumer.GetConsumerId())
		return s.write(&pb.CommandSuccess{RequestId: cmd.CloseConsumer.RequestId})

	default:
		return s.writeError(0, pb.ServerError_UnknownError, "unsupported command "+cmd.GetType().String())
	}
}

// messageID of the topic |entry|.
func messageID(entry int) *pb.MessageIdData {
	return &pb.MessageIdData{
		LedgerId:  proto.Uint64(1),
		EntryId:   proto.Uint64(uint64(entry)),
		Partition: proto.Int32(-1),
	}
}

// deliver messages to consumers having permits, and notify consumers which
// have reached the end of a terminated topic.
func (s *session) deliver() error {
	var ids []uint64
	for id := range s.consumers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		var sub = s.consumers[id]
		var pending, ended = s.b.read(sub)

		for _, m := range pending {
			if err := s.writeMessage(&pb.CommandMessage{
				ConsumerId: proto.Uint64(id),
				MessageId:  messageID(m.entry),
			}, m.metadata, m.payload); err != nil {
				return err
			}
		}
		if ended {
			if err := s.write(&pb.CommandReachedEndOfTopic{ConsumerId: proto.Uint64(id)}); err != nil {
				return err
			}
		}
	}
	return nil
}

type delivery struct {
	message
	entry int
}

// read messages of the subscription's topic permitted by its flow, advancing
// its cursor. It also returns true if the subscription newly reached the end
// of a terminated topic.
func (b *Broker) read(sub *subscription) ([]delivery, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var t, ok = b.topics[sub.topic]
	if !ok {
		return nil, false
	}
	var out []delivery
	for ; sub.permits != 0 && sub.cursor < len(t.messages); sub.cursor++ {
		out = append(out, delivery{message: t.messages[sub.cursor], entry: sub.cursor})
		sub.permits--
	}
	if t.terminated && !sub.ended && sub.cursor == len(t.messages) {
		sub.ended = true
		return out, true
	}
	return out, false
}

func (b *Broker) hasTopic(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	var _, ok = b.topics[name]
	return ok
}

func (b *Broker) partitions(name string) (uint32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.topics[name]; ok {
		return t.partitions, true
	}
	return 0, false
}

func (b *Broker) lastSequenceID(name, producerName string) (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var t, ok = b.topics[name]
	if !ok {
		return 0, false
	} else if seq, ok := t.sequences[producerName]; ok {
		return int64(seq), true
	}
	return -1, true
}

func (b *Broker) initialCursor(name string, pos pb.InitialPosition) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var t, ok = b.topics[name]
	if !ok {
		return 0, false
	} else if pos == pb.InitialPosition_Earliest {
		return 0, true
	}
	return len(t.messages), true
}

func (s *session) write(sub interface{}) error {
	var b, err = pb.EncodeCommand(pb.NewBaseCommand(sub), nil)
	if err != nil {
		return err
	}
	return s.writeRaw(b)
}

func (s *session) writeMessage(cmd *pb.CommandMessage, md *pb.MessageMetadata, payload []byte) error {
	var b, err = pb.EncodeMessage(pb.NewBaseCommand(cmd), md, payload, nil)
	if err != nil {
		return err
	}
	return s.writeRaw(b)
}

func (s *session) writeError(requestID uint64, code pb.ServerError, message string) error {
	return s.write(&pb.CommandError{
		RequestId: proto.Uint64(requestID),
		Error:     code.Enum(),
		Message:   proto.String(message),
	})
}

func (s *session) writeRaw(b []byte) error {
	if _, err := s.conn.Write(b); err != nil {
		return errors.WithMessage(errConnClosed, err.Error())
	}
	return nil
}

// frameReader reads and decodes frames of any command type from a Reader.
type frameReader struct {
	r   io.Reader
	buf []byte
}

// Next returns the next frame, blocking until it's been read. It returns an
// error with cause errConnClosed if the Reader fails or reaches EOF.
func (fr *frameReader) Next() (*pb.RawFrame, error) {
	for {
		var f, n, err = pb.DecodeRaw(fr.buf)
		if err == nil {
			fr.buf = fr.buf[n:]
			return f, nil
		} else if err != pb.ErrIncompleteFrame {
			return nil, err
		}

		var chunk [4096]byte
		nr, err := fr.r.Read(chunk[:])
		fr.buf = append(fr.buf, chunk[:nr]...)

		if err != nil && nr == 0 {
			return nil, errors.WithMessage(errConnClosed, err.Error())
		}
	}
}
