package protocol

import (
	"github.com/pkg/errors"
)

// Decoded is a command decoded from an inbound frame. It's a closed set:
// only the command kinds a client connection can receive implement it.
// Decoded commands are consumed by passing a Handler to Dispatch, so that
// adding a kind to the set is a compile-time break of every Handler.
type Decoded interface {
	// Dispatch invokes the Handler method matching the command kind.
	Dispatch(Handler)
	// Type is the CommandType of the Decoded frame.
	Type() CommandType

	isDecoded()
}

// Handler receives Decoded commands by kind.
type Handler interface {
	OnConnected(*CommandConnected)
	OnPartitionedMetadataResponse(*CommandPartitionedTopicMetadataResponse)
	OnSendReceipt(*CommandSendReceipt)
	OnSendError(*CommandSendError)
	OnMessage(*Message)
	OnPing(*CommandPing)
	OnPong(*CommandPong)
	OnLookupResponse(*CommandLookupTopicResponse)
	OnProducerSuccess(*CommandProducerSuccess)
	OnSuccess(*CommandSuccess)
	OnCloseProducer(*CommandCloseProducer)
	OnCloseConsumer(*CommandCloseConsumer)
	OnReachedEndOfTopic(*CommandReachedEndOfTopic)
	OnTopicsOfNamespaceResponse(*CommandGetTopicsOfNamespaceResponse)
	OnError(*CommandError)
}

// Message is a decoded MESSAGE frame: the outer command, the metadata which
// preceded the payload, and the raw (possibly compressed) payload itself.
type Message struct {
	*CommandMessage
	Metadata *MessageMetadata
	Payload  []byte
}

func (m *CommandConnected) Dispatch(h Handler) { h.OnConnected(m) }
func (m *CommandPartitionedTopicMetadataResponse) Dispatch(h Handler) {
	h.OnPartitionedMetadataResponse(m)
}
func (m *CommandSendReceipt) Dispatch(h Handler)         { h.OnSendReceipt(m) }
func (m *CommandSendError) Dispatch(h Handler)           { h.OnSendError(m) }
func (m *Message) Dispatch(h Handler)                    { h.OnMessage(m) }
func (m *CommandPing) Dispatch(h Handler)                { h.OnPing(m) }
func (m *CommandPong) Dispatch(h Handler)                { h.OnPong(m) }
func (m *CommandLookupTopicResponse) Dispatch(h Handler) { h.OnLookupResponse(m) }
func (m *CommandProducerSuccess) Dispatch(h Handler)     { h.OnProducerSuccess(m) }
func (m *CommandSuccess) Dispatch(h Handler)             { h.OnSuccess(m) }
func (m *CommandCloseProducer) Dispatch(h Handler)       { h.OnCloseProducer(m) }
func (m *CommandCloseConsumer) Dispatch(h Handler)       { h.OnCloseConsumer(m) }
func (m *CommandReachedEndOfTopic) Dispatch(h Handler)   { h.OnReachedEndOfTopic(m) }
func (m *CommandGetTopicsOfNamespaceResponse) Dispatch(h Handler) {
	h.OnTopicsOfNamespaceResponse(m)
}
func (m *CommandError) Dispatch(h Handler) { h.OnError(m) }

func (*CommandConnected) Type() CommandType { return CommandType_CONNECTED }
func (*CommandPartitionedTopicMetadataResponse) Type() CommandType {
	return CommandType_PARTITIONED_METADATA_RESPONSE
}
func (*CommandSendReceipt) Type() CommandType         { return CommandType_SEND_RECEIPT }
func (*CommandSendError) Type() CommandType           { return CommandType_SEND_ERROR }
func (*Message) Type() CommandType                    { return CommandType_MESSAGE }
func (*CommandPing) Type() CommandType                { return CommandType_PING }
func (*CommandPong) Type() CommandType                { return CommandType_PONG }
func (*CommandLookupTopicResponse) Type() CommandType { return CommandType_LOOKUP_RESPONSE }
func (*CommandProducerSuccess) Type() CommandType     { return CommandType_PRODUCER_SUCCESS }
func (*CommandSuccess) Type() CommandType             { return CommandType_SUCCESS }
func (*CommandCloseProducer) Type() CommandType       { return CommandType_CLOSE_PRODUCER }
func (*CommandCloseConsumer) Type() CommandType       { return CommandType_CLOSE_CONSUMER }
func (*CommandReachedEndOfTopic) Type() CommandType   { return CommandType_REACHED_END_OF_TOPIC }
func (*CommandGetTopicsOfNamespaceResponse) Type() CommandType {
	return CommandType_GET_TOPICS_OF_NAMESPACE_RESPONSE
}
func (*CommandError) Type() CommandType { return CommandType_ERROR }

func (*CommandConnected) isDecoded()                        {}
func (*CommandPartitionedTopicMetadataResponse) isDecoded() {}
func (*CommandSendReceipt) isDecoded()                      {}
func (*CommandSendError) isDecoded()                        {}
func (*Message) isDecoded()                                 {}
func (*CommandPing) isDecoded()                             {}
func (*CommandPong) isDecoded()                             {}
func (*CommandLookupTopicResponse) isDecoded()              {}
func (*CommandProducerSuccess) isDecoded()                  {}
func (*CommandSuccess) isDecoded()                          {}
func (*CommandCloseProducer) isDecoded()                    {}
func (*CommandCloseConsumer) isDecoded()                    {}
func (*CommandReachedEndOfTopic) isDecoded()                {}
func (*CommandGetTopicsOfNamespaceResponse) isDecoded()     {}
func (*CommandError) isDecoded()                            {}

// toDecoded maps a non-MESSAGE BaseCommand to its Decoded sub-command.
// It returns ErrUnknownCommand if the Type has no Decoded kind, and
// ErrMalformedFrame if the expected sub-command is absent.
func (m *BaseCommand) toDecoded() (Decoded, error) {
	var d Decoded

	switch m.GetType() {
	case CommandType_CONNECTED:
		if m.Connected != nil {
			d = m.Connected
		}
	case CommandType_PARTITIONED_METADATA_RESPONSE:
		if m.PartitionMetadataResponse != nil {
			d = m.PartitionMetadataResponse
		}
	case CommandType_SEND_RECEIPT:
		if m.SendReceipt != nil {
			d = m.SendReceipt
		}
	case CommandType_SEND_ERROR:
		if m.SendError != nil {
			d = m.SendError
		}
	case CommandType_PING:
		d = new(CommandPing)
		if m.Ping != nil {
			d = m.Ping
		}
	case CommandType_PONG:
		d = new(CommandPong)
		if m.Pong != nil {
			d = m.Pong
		}
	case CommandType_LOOKUP_RESPONSE:
		if m.LookupTopicResponse != nil {
			d = m.LookupTopicResponse
		}
	case CommandType_PRODUCER_SUCCESS:
		if m.ProducerSuccess != nil {
			d = m.ProducerSuccess
		}
	case CommandType_SUCCESS:
		if m.Success != nil {
			d = m.Success
		}
	case CommandType_CLOSE_PRODUCER:
		if m.CloseProducer != nil {
			d = m.CloseProducer
		}
	case CommandType_CLOSE_CONSUMER:
		if m.CloseConsumer != nil {
			d = m.CloseConsumer
		}
	case CommandType_REACHED_END_OF_TOPIC:
		if m.ReachedEndOfTopic != nil {
			d = m.ReachedEndOfTopic
		}
	case CommandType_GET_TOPICS_OF_NAMESPACE_RESPONSE:
		if m.GetTopicsOfNamespaceResponse != nil {
			d = m.GetTopicsOfNamespaceResponse
		}
	case CommandType_ERROR:
		if m.Error != nil {
			d = m.Error
		}
	default:
		return nil, errors.WithMessagef(ErrUnknownCommand, "type %s", m.GetType())
	}

	if d == nil {
		return nil, errors.WithMessagef(ErrMalformedFrame, "expected %s sub-command", m.GetType())
	}
	return d, nil
}
