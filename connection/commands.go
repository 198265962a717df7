package connection

import (
	"context"
	"sync/atomic"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	pb "go.quasar.dev/core/protocol"
)

// Connect sends the CONNECT command and waits for the broker's CONNECTED
// response (see Handshake).
func (c *Conn) Connect(ctx context.Context, connect *pb.CommandConnect) error {
	var frame, err = encode(pb.NewBaseCommand(connect))
	if err != nil {
		return err
	} else if err = c.SendAndFlush(ctx, frame); err != nil {
		return errors.WithMessage(err, "sending CONNECT")
	}
	_, err = c.handshake.Wait(ctx)
	return err
}

// LookupTopic asks the broker which broker owns the |topic|.
func (c *Conn) LookupTopic(ctx context.Context, topic string, authoritative bool) (*LookupResult, error) {
	var id = c.NewRequestID()
	var v, err = c.roundTrip(ctx, id, pb.NewBaseCommand(&pb.CommandLookupTopic{
		Topic:         proto.String(topic),
		RequestId:     proto.Uint64(id),
		Authoritative: proto.Bool(authoritative),
	}))
	if err != nil {
		return nil, err
	} else if r, ok := v.(*LookupResult); ok {
		return r, nil
	}
	return nil, unexpectedResponse(pb.CommandType_LOOKUP, v)
}

// PartitionedMetadata asks the broker for the number of partitions of |topic|.
func (c *Conn) PartitionedMetadata(ctx context.Context, topic string) (*PartitionsResult, error) {
	var id = c.NewRequestID()
	var v, err = c.roundTrip(ctx, id, pb.NewBaseCommand(&pb.CommandPartitionedTopicMetadata{
		Topic:     proto.String(topic),
		RequestId: proto.Uint64(id),
	}))
	if err != nil {
		return nil, err
	} else if r, ok := v.(*PartitionsResult); ok {
		return r, nil
	}
	return nil, unexpectedResponse(pb.CommandType_PARTITIONED_METADATA, v)
}

// GetTopicsOfNamespace asks the broker for the topics of |namespace|.
func (c *Conn) GetTopicsOfNamespace(ctx context.Context, namespace string, mode pb.TopicsMode) (*TopicsResult, error) {
	var id = c.NewRequestID()
	var v, err = c.roundTrip(ctx, id, pb.NewBaseCommand(&pb.CommandGetTopicsOfNamespace{
		RequestId: proto.Uint64(id),
		Namespace: proto.String(namespace),
		Mode:      mode.Enum(),
	}))
	if err != nil {
		return nil, err
	} else if r, ok := v.(*TopicsResult); ok {
		return r, nil
	}
	return nil, unexpectedResponse(pb.CommandType_GET_TOPICS_OF_NAMESPACE, v)
}

// CreateProducer registers the ProducerHandle under the |req| ProducerId, and
// asks the broker to create the producer. The RequestId of |req| is assigned.
// If the broker fails the request, the producer is unregistered.
func (c *Conn) CreateProducer(ctx context.Context, req *pb.CommandProducer, h ProducerHandle) (*ProducerResult, error) {
	req.RequestId = proto.Uint64(c.NewRequestID())

	if err := c.RegisterProducer(req.GetProducerId(), h); err != nil {
		return nil, err
	}
	var v, err = c.roundTrip(ctx, req.GetRequestId(), pb.NewBaseCommand(req))
	if err == nil {
		if r, ok := v.(*ProducerResult); ok {
			return r, nil
		}
		err = unexpectedResponse(pb.CommandType_PRODUCER, v)
	}
	c.UnregisterProducer(req.GetProducerId())
	return nil, err
}

// Subscribe registers the ConsumerHandle under the |req| ConsumerId, and
// asks the broker to create the subscription. The RequestId of |req| is
// assigned. If the broker fails the request, the consumer is unregistered.
// Messages are delivered only after the consumer grants permits (see Flow).
func (c *Conn) Subscribe(ctx context.Context, req *pb.CommandSubscribe, h ConsumerHandle) error {
	req.RequestId = proto.Uint64(c.NewRequestID())

	if err := c.RegisterConsumer(req.GetConsumerId(), h); err != nil {
		return err
	}
	if _, err := c.roundTrip(ctx, req.GetRequestId(), pb.NewBaseCommand(req)); err != nil {
		c.UnregisterConsumer(req.GetConsumerId())
		return err
	}
	return nil
}

// CloseProducer unregisters the producer, and asks the broker to close it.
func (c *Conn) CloseProducer(ctx context.Context, producerID uint64) error {
	c.UnregisterProducer(producerID)

	var id = c.NewRequestID()
	var _, err = c.roundTrip(ctx, id, pb.NewBaseCommand(&pb.CommandCloseProducer{
		ProducerId: proto.Uint64(producerID),
		RequestId:  proto.Uint64(id),
	}))
	return err
}

// CloseConsumer unregisters the consumer, and asks the broker to close it.
func (c *Conn) CloseConsumer(ctx context.Context, consumerID uint64) error {
	c.UnregisterConsumer(consumerID)

	var id = c.NewRequestID()
	var _, err = c.roundTrip(ctx, id, pb.NewBaseCommand(&pb.CommandCloseConsumer{
		ConsumerId: proto.Uint64(consumerID),
		RequestId:  proto.Uint64(id),
	}))
	return err
}

// SendMessage sends a message of |payload| from the producer, without
// waiting for its write. The broker's receipt is delivered to the producer's
// ProducerHandle.
func (c *Conn) SendMessage(producerID, sequenceID uint64, md *pb.MessageMetadata, payload []byte) error {
	if err := md.Validate(); err != nil {
		return errors.WithMessage(err, "MessageMetadata")
	} else if limit := int(atomic.LoadInt32(&c.maxMessageSize)); limit != 0 && len(payload) > limit {
		return errors.Errorf("payload of %d bytes exceeds the broker's MaxMessageSize (%d)", len(payload), limit)
	}
	var frame, err = pb.EncodeMessage(pb.NewBaseCommand(&pb.CommandSend{
		ProducerId:  proto.Uint64(producerID),
		SequenceId:  proto.Uint64(sequenceID),
		NumMessages: proto.Int32(1),
	}), md, payload, nil)

	if err != nil {
		return err
	}
	c.Send(frame)
	return nil
}

// Flow grants the broker |permits| further messages to deliver to the consumer.
func (c *Conn) Flow(consumerID uint64, permits uint32) error {
	var frame, err = encode(pb.NewBaseCommand(&pb.CommandFlow{
		ConsumerId:     proto.Uint64(consumerID),
		MessagePermits: proto.Uint32(permits),
	}))
	if err != nil {
		return err
	}
	c.Send(frame)
	return nil
}

// Ack acknowledges the messages of |ids| to the broker.
func (c *Conn) Ack(consumerID uint64, ackType pb.AckType, ids ...*pb.MessageIdData) error {
	var frame, err = encode(pb.NewBaseCommand(&pb.CommandAck{
		ConsumerId: proto.Uint64(consumerID),
		AckType:    ackType.Enum(),
		MessageId:  ids,
	}))
	if err != nil {
		return err
	}
	c.Send(frame)
	return nil
}

// roundTrip sends the |cmd| request and waits for its response.
// If |ctx| is cancelled first, the request remains pending.
func (c *Conn) roundTrip(ctx context.Context, requestID uint64, cmd *pb.BaseCommand) (interface{}, error) {
	var frame, err = encode(cmd)
	if err != nil {
		return nil, err
	}
	v, err := c.Request(requestID, frame).Wait(ctx)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s request", cmd.GetType())
	}
	return v, nil
}

// encode validates and encodes the |cmd| frame.
func encode(cmd *pb.BaseCommand) ([]byte, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return pb.EncodeCommand(cmd, nil)
}

// unexpectedResponse is the error of a request of type |cmd| answered by a
// response of the wrong type, as carried by its resolved |value|.
func unexpectedResponse(cmd pb.CommandType, value interface{}) error {
	if value == nil {
		return errors.Errorf("unexpected SUCCESS response to %s request", cmd)
	}
	return errors.Errorf("unexpected %T response to %s request", value, cmd)
}
