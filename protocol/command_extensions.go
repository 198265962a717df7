package protocol

import (
	"github.com/gogo/protobuf/proto"
)

// ProtocolVersion of the broker protocol which this package models, as sent
// in CommandConnect.
const ProtocolVersion = 13

func (x CommandType) String() string     { return proto.EnumName(CommandType_name, int32(x)) }
func (x ServerError) String() string     { return proto.EnumName(ServerError_name, int32(x)) }
func (x CompressionType) String() string { return proto.EnumName(CompressionType_name, int32(x)) }
func (x SubType) String() string         { return proto.EnumName(SubType_name, int32(x)) }
func (x InitialPosition) String() string { return proto.EnumName(InitialPosition_name, int32(x)) }
func (x LookupType) String() string      { return proto.EnumName(LookupType_name, int32(x)) }
func (x AckType) String() string         { return proto.EnumName(AckType_name, int32(x)) }
func (x TopicsMode) String() string      { return proto.EnumName(TopicsMode_name, int32(x)) }

func (x PartitionedLookupType) String() string {
	return proto.EnumName(PartitionedLookupType_name, int32(x))
}

// Validate returns an error if the CommandType is not a known type.
func (x CommandType) Validate() error {
	if _, ok := CommandType_name[int32(x)]; !ok {
		return NewValidationError("invalid CommandType (%d)", int32(x))
	}
	return nil
}

// Validate returns an error if the CompressionType is not a known type.
func (x CompressionType) Validate() error {
	if _, ok := CompressionType_name[int32(x)]; !ok {
		return NewValidationError("invalid CompressionType (%d)", int32(x))
	}
	return nil
}

// NewBaseCommand wraps a sub-command into a BaseCommand of the matching type.
// It panics if |sub| is not a sub-command this package models.
func NewBaseCommand(sub interface{}) *BaseCommand {
	switch s := sub.(type) {
	case *CommandConnect:
		return &BaseCommand{Type: CommandType_CONNECT.Enum(), Connect: s}
	case *CommandConnected:
		return &BaseCommand{Type: CommandType_CONNECTED.Enum(), Connected: s}
	case *CommandSubscribe:
		return &BaseCommand{Type: CommandType_SUBSCRIBE.Enum(), Subscribe: s}
	case *CommandProducer:
		return &BaseCommand{Type: CommandType_PRODUCER.Enum(), Producer: s}
	case *CommandSend:
		return &BaseCommand{Type: CommandType_SEND.Enum(), Send: s}
	case *CommandSendReceipt:
		return &BaseCommand{Type: CommandType_SEND_RECEIPT.Enum(), SendReceipt: s}
	case *CommandSendError:
		return &BaseCommand{Type: CommandType_SEND_ERROR.Enum(), SendError: s}
	case *CommandMessage:
		return &BaseCommand{Type: CommandType_MESSAGE.Enum(), Message: s}
	case *CommandAck:
		return &BaseCommand{Type: CommandType_ACK.Enum(), Ack: s}
	case *CommandFlow:
		return &BaseCommand{Type: CommandType_FLOW.Enum(), Flow: s}
	case *CommandUnsubscribe:
		return &BaseCommand{Type: CommandType_UNSUBSCRIBE.Enum(), Unsubscribe: s}
	case *CommandSuccess:
		return &BaseCommand{Type: CommandType_SUCCESS.Enum(), Success: s}
	case *CommandError:
		return &BaseCommand{Type: CommandType_ERROR.Enum(), Error: s}
	case *CommandCloseProducer:
		return &BaseCommand{Type: CommandType_CLOSE_PRODUCER.Enum(), CloseProducer: s}
	case *CommandCloseConsumer:
		return &BaseCommand{Type: CommandType_CLOSE_CONSUMER.Enum(), CloseConsumer: s}
	case *CommandProducerSuccess:
		return &BaseCommand{Type: CommandType_PRODUCER_SUCCESS.Enum(), ProducerSuccess: s}
	case *CommandPing:
		return &BaseCommand{Type: CommandType_PING.Enum(), Ping: s}
	case *CommandPong:
		return &BaseCommand{Type: CommandType_PONG.Enum(), Pong: s}
	case *CommandPartitionedTopicMetadata:
		return &BaseCommand{Type: CommandType_PARTITIONED_METADATA.Enum(), PartitionMetadata: s}
	case *CommandPartitionedTopicMetadataResponse:
		return &BaseCommand{Type: CommandType_PARTITIONED_METADATA_RESPONSE.Enum(), PartitionMetadataResponse: s}
	case *CommandLookupTopic:
		return &BaseCommand{Type: CommandType_LOOKUP.Enum(), LookupTopic: s}
	case *CommandLookupTopicResponse:
		return &BaseCommand{Type: CommandType_LOOKUP_RESPONSE.Enum(), LookupTopicResponse: s}
	case *CommandReachedEndOfTopic:
		return &BaseCommand{Type: CommandType_REACHED_END_OF_TOPIC.Enum(), ReachedEndOfTopic: s}
	case *CommandGetTopicsOfNamespace:
		return &BaseCommand{Type: CommandType_GET_TOPICS_OF_NAMESPACE.Enum(), GetTopicsOfNamespace: s}
	case *CommandGetTopicsOfNamespaceResponse:
		return &BaseCommand{Type: CommandType_GET_TOPICS_OF_NAMESPACE_RESPONSE.Enum(), GetTopicsOfNamespaceResponse: s}
	default:
		panic("unsupported sub-command type")
	}
}

// Validate returns an error if the BaseCommand is not well-formed: its Type
// must be known, and the matching sub-command must be present and valid.
func (m *BaseCommand) Validate() error {
	if m.Type == nil {
		return NewValidationError("expected Type")
	} else if err := m.Type.Validate(); err != nil {
		return ExtendContext(err, "Type")
	}
	var v Validator

	switch m.GetType() {
	case CommandType_CONNECT:
		if m.Connect != nil {
			v = m.Connect
		}
	case CommandType_SUBSCRIBE:
		if m.Subscribe != nil {
			v = m.Subscribe
		}
	case CommandType_PRODUCER:
		if m.Producer != nil {
			v = m.Producer
		}
	case CommandType_SEND:
		if m.Send != nil {
			v = m.Send
		}
	case CommandType_ACK:
		if m.Ack != nil {
			v = m.Ack
		}
	case CommandType_LOOKUP:
		if m.LookupTopic != nil {
			v = m.LookupTopic
		}
	case CommandType_PARTITIONED_METADATA:
		if m.PartitionMetadata != nil {
			v = m.PartitionMetadata
		}
	case CommandType_GET_TOPICS_OF_NAMESPACE:
		if m.GetTopicsOfNamespace != nil {
			v = m.GetTopicsOfNamespace
		}
	case CommandType_PING, CommandType_PONG:
		return nil // Empty bodies are implied.
	default:
		// Remaining sub-commands carry only identifiers, and need no
		// validation beyond being present.
		if !m.hasSubCommand() {
			return NewValidationError("expected %s sub-command", m.GetType())
		}
		return nil
	}

	if v == nil {
		return NewValidationError("expected %s sub-command", m.GetType())
	} else if err := v.Validate(); err != nil {
		return ExtendContext(err, "%s", m.GetType())
	}
	return nil
}

// hasSubCommand returns whether the sub-command matching Type is populated.
func (m *BaseCommand) hasSubCommand() bool {
	switch m.GetType() {
	case CommandType_CONNECT:
		return m.Connect != nil
	case CommandType_CONNECTED:
		return m.Connected != nil
	case CommandType_SUBSCRIBE:
		return m.Subscribe != nil
	case CommandType_PRODUCER:
		return m.Producer != nil
	case CommandType_SEND:
		return m.Send != nil
	case CommandType_SEND_RECEIPT:
		return m.SendReceipt != nil
	case CommandType_SEND_ERROR:
		return m.SendError != nil
	case CommandType_MESSAGE:
		return m.Message != nil
	case CommandType_ACK:
		return m.Ack != nil
	case CommandType_FLOW:
		return m.Flow != nil
	case CommandType_UNSUBSCRIBE:
		return m.Unsubscribe != nil
	case CommandType_SUCCESS:
		return m.Success != nil
	case CommandType_ERROR:
		return m.Error != nil
	case CommandType_CLOSE_PRODUCER:
		return m.CloseProducer != nil
	case CommandType_CLOSE_CONSUMER:
		return m.CloseConsumer != nil
	case CommandType_PRODUCER_SUCCESS:
		return m.ProducerSuccess != nil
	case CommandType_PING, CommandType_PONG:
		return true
	case CommandType_PARTITIONED_METADATA:
		return m.PartitionMetadata != nil
	case CommandType_PARTITIONED_METADATA_RESPONSE:
		return m.PartitionMetadataResponse != nil
	case CommandType_LOOKUP:
		return m.LookupTopic != nil
	case CommandType_LOOKUP_RESPONSE:
		return m.LookupTopicResponse != nil
	case CommandType_REACHED_END_OF_TOPIC:
		return m.ReachedEndOfTopic != nil
	case CommandType_GET_TOPICS_OF_NAMESPACE:
		return m.GetTopicsOfNamespace != nil
	case CommandType_GET_TOPICS_OF_NAMESPACE_RESPONSE:
		return m.GetTopicsOfNamespaceResponse != nil
	}
	return false
}

// Validate returns an error if the CommandConnect is not well-formed.
func (m *CommandConnect) Validate() error {
	if m.GetClientVersion() == "" {
		return NewValidationError("expected ClientVersion")
	} else if m.GetProtocolVersion() < 0 {
		return NewValidationError("invalid ProtocolVersion (%d; expected >= 0)", m.GetProtocolVersion())
	}
	return nil
}

// Validate returns an error if the CommandSubscribe is not well-formed.
func (m *CommandSubscribe) Validate() error {
	if err := ValidateTopic(m.GetTopic()); err != nil {
		return ExtendContext(err, "Topic")
	} else if m.GetSubscription() == "" {
		return NewValidationError("expected Subscription")
	} else if m.SubType == nil {
		return NewValidationError("expected SubType")
	} else if _, ok := SubType_name[int32(*m.SubType)]; !ok {
		return NewValidationError("invalid SubType (%d)", int32(*m.SubType))
	} else if m.ConsumerId == nil {
		return NewValidationError("expected ConsumerId")
	}
	return nil
}

// Validate returns an error if the CommandProducer is not well-formed.
func (m *CommandProducer) Validate() error {
	if err := ValidateTopic(m.GetTopic()); err != nil {
		return ExtendContext(err, "Topic")
	} else if m.ProducerId == nil {
		return NewValidationError("expected ProducerId")
	}
	return nil
}

// Validate returns an error if the CommandSend is not well-formed.
func (m *CommandSend) Validate() error {
	if m.ProducerId == nil {
		return NewValidationError("expected ProducerId")
	} else if m.SequenceId == nil {
		return NewValidationError("expected SequenceId")
	} else if m.GetNumMessages() < 0 {
		return NewValidationError("invalid NumMessages (%d; expected >= 0)", m.GetNumMessages())
	}
	return nil
}

// Validate returns an error if the CommandAck is not well-formed.
func (m *CommandAck) Validate() error {
	if m.ConsumerId == nil {
		return NewValidationError("expected ConsumerId")
	} else if m.AckType == nil {
		return NewValidationError("expected AckType")
	} else if len(m.MessageId) == 0 {
		return NewValidationError("expected at least one MessageId")
	}
	for i, id := range m.MessageId {
		if id == nil {
			return ExtendContext(NewValidationError("unexpected nil MessageId"), "MessageId[%d]", i)
		} else if id.LedgerId == nil || id.EntryId == nil {
			return ExtendContext(NewValidationError("expected LedgerId and EntryId"), "MessageId[%d]", i)
		}
	}
	if m.GetAckType() == AckType_Cumulative && len(m.MessageId) != 1 {
		return NewValidationError("cumulative Ack expects exactly one MessageId (got %d)", len(m.MessageId))
	}
	return nil
}

// Validate returns an error if the CommandLookupTopic is not well-formed.
func (m *CommandLookupTopic) Validate() error {
	if err := ValidateTopic(m.GetTopic()); err != nil {
		return ExtendContext(err, "Topic")
	}
	return nil
}

// Validate returns an error if the CommandPartitionedTopicMetadata is not well-formed.
func (m *CommandPartitionedTopicMetadata) Validate() error {
	if err := ValidateTopic(m.GetTopic()); err != nil {
		return ExtendContext(err, "Topic")
	}
	return nil
}

// Validate returns an error if the CommandGetTopicsOfNamespace is not well-formed.
func (m *CommandGetTopicsOfNamespace) Validate() error {
	if err := ValidateNamespace(m.GetNamespace()); err != nil {
		return ExtendContext(err, "Namespace")
	} else if mode := m.GetMode(); mode < TopicsMode_PERSISTENT || mode > TopicsMode_ALL {
		return NewValidationError("invalid Mode (%d)", int32(mode))
	}
	return nil
}

// Validate returns an error if the MessageMetadata is not well-formed.
func (m *MessageMetadata) Validate() error {
	if m.GetProducerName() == "" {
		return NewValidationError("expected ProducerName")
	} else if m.SequenceId == nil {
		return NewValidationError("expected SequenceId")
	} else if m.PublishTime == nil {
		return NewValidationError("expected PublishTime")
	} else if err := m.GetCompression().Validate(); err != nil {
		return ExtendContext(err, "Compression")
	} else if m.GetCompression() == CompressionType_NONE && m.GetUncompressedSize() != 0 {
		return NewValidationError("unexpected UncompressedSize without Compression (%d)", m.GetUncompressedSize())
	}
	for i, kv := range m.Properties {
		if kv.GetKey() == "" {
			return ExtendContext(NewValidationError("expected Key"), "Properties[%d]", i)
		} else if kv.Value == nil {
			return ExtendContext(NewValidationError("expected Value"), "Properties[%d]", i)
		}
	}
	return nil
}

// proto.Message implementations.

func (m *BaseCommand) Reset()         { *m = BaseCommand{} }
func (m *BaseCommand) String() string { return proto.CompactTextString(m) }
func (*BaseCommand) ProtoMessage()    {}

func (m *MessageMetadata) Reset()         { *m = MessageMetadata{} }
func (m *MessageMetadata) String() string { return proto.CompactTextString(m) }
func (*MessageMetadata) ProtoMessage()    {}

func (m *KeyValue) Reset()         { *m = KeyValue{} }
func (m *KeyValue) String() string { return proto.CompactTextString(m) }
func (*KeyValue) ProtoMessage()    {}

func (m *MessageIdData) Reset()         { *m = MessageIdData{} }
func (m *MessageIdData) String() string { return proto.CompactTextString(m) }
func (*MessageIdData) ProtoMessage()    {}

func (m *CommandLookupTopicResponse) Reset()         { *m = CommandLookupTopicResponse{} }
func (m *CommandLookupTopicResponse) String() string { return proto.CompactTextString(m) }
func (*CommandLookupTopicResponse) ProtoMessage()    {}

func (m *CommandPartitionedTopicMetadataResponse) Reset() {
	*m = CommandPartitionedTopicMetadataResponse{}
}
func (m *CommandPartitionedTopicMetadataResponse) String() string { return proto.CompactTextString(m) }
func (*CommandPartitionedTopicMetadataResponse) ProtoMessage()    {}

func (m *CommandGetTopicsOfNamespaceResponse) Reset() {
	*m = CommandGetTopicsOfNamespaceResponse{}
}
func (m *CommandGetTopicsOfNamespaceResponse) String() string { return proto.CompactTextString(m) }
func (*CommandGetTopicsOfNamespaceResponse) ProtoMessage()    {}
