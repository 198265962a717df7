package protocol

// Wire messages of the broker protocol. Field numbers, labels, and defaults
// follow the broker's published proto2 schema. Messages are plain structs
// carrying protobuf struct tags, which github.com/gogo/protobuf/proto marshals
// by reflection. Only the commands carried by a client connection are modeled.
//
// As with generated proto2 code, scalar fields are pointers: a set field is
// encoded even if it holds its zero value, and a message doesn't marshal or
// unmarshal unless its required fields are set. Getters return the schema
// default of an unset field.

// CommandType identifies the populated sub-command of a BaseCommand.
type CommandType int32

const (
	CommandType_CONNECT                          CommandType = 2
	CommandType_CONNECTED                        CommandType = 3
	CommandType_SUBSCRIBE                        CommandType = 4
	CommandType_PRODUCER                         CommandType = 5
	CommandType_SEND                             CommandType = 6
	CommandType_SEND_RECEIPT                     CommandType = 7
	CommandType_SEND_ERROR                       CommandType = 8
	CommandType_MESSAGE                          CommandType = 9
	CommandType_ACK                              CommandType = 10
	CommandType_FLOW                             CommandType = 11
	CommandType_UNSUBSCRIBE                      CommandType = 12
	CommandType_SUCCESS                          CommandType = 13
	CommandType_ERROR                            CommandType = 14
	CommandType_CLOSE_PRODUCER                   CommandType = 15
	CommandType_CLOSE_CONSUMER                   CommandType = 16
	CommandType_PRODUCER_SUCCESS                 CommandType = 17
	CommandType_PING                             CommandType = 18
	CommandType_PONG                             CommandType = 19
	CommandType_PARTITIONED_METADATA             CommandType = 21
	CommandType_PARTITIONED_METADATA_RESPONSE    CommandType = 22
	CommandType_LOOKUP                           CommandType = 23
	CommandType_LOOKUP_RESPONSE                  CommandType = 24
	CommandType_REACHED_END_OF_TOPIC             CommandType = 27
	CommandType_GET_TOPICS_OF_NAMESPACE          CommandType = 32
	CommandType_GET_TOPICS_OF_NAMESPACE_RESPONSE CommandType = 33
)

var CommandType_name = map[int32]string{
	2:  "CONNECT",
	3:  "CONNECTED",
	4:  "SUBSCRIBE",
	5:  "PRODUCER",
	6:  "SEND",
	7:  "SEND_RECEIPT",
	8:  "SEND_ERROR",
	9:  "MESSAGE",
	10: "ACK",
	11: "FLOW",
	12: "UNSUBSCRIBE",
	13: "SUCCESS",
	14: "ERROR",
	15: "CLOSE_PRODUCER",
	16: "CLOSE_CONSUMER",
	17: "PRODUCER_SUCCESS",
	18: "PING",
	19: "PONG",
	21: "PARTITIONED_METADATA",
	22: "PARTITIONED_METADATA_RESPONSE",
	23: "LOOKUP",
	24: "LOOKUP_RESPONSE",
	27: "REACHED_END_OF_TOPIC",
	32: "GET_TOPICS_OF_NAMESPACE",
	33: "GET_TOPICS_OF_NAMESPACE_RESPONSE",
}

// ServerError is an error code returned by the broker.
type ServerError int32

const (
	ServerError_UnknownError                          ServerError = 0
	ServerError_MetadataError                         ServerError = 1
	ServerError_PersistenceError                      ServerError = 2
	ServerError_AuthenticationError                   ServerError = 3
	ServerError_AuthorizationError                    ServerError = 4
	ServerError_ConsumerBusy                          ServerError = 5
	ServerError_ServiceNotReady                       ServerError = 6
	ServerError_ProducerBlockedQuotaExceededError     ServerError = 7
	ServerError_ProducerBlockedQuotaExceededException ServerError = 8
	ServerError_ChecksumError                         ServerError = 9
	ServerError_UnsupportedVersionError               ServerError = 10
	ServerError_TopicNotFound                         ServerError = 11
	ServerError_SubscriptionNotFound                  ServerError = 12
	ServerError_ConsumerNotFound                      ServerError = 13
	ServerError_TooManyRequests                       ServerError = 14
	ServerError_TopicTerminatedError                  ServerError = 15
	ServerError_ProducerBusy                          ServerError = 16
	ServerError_InvalidTopicName                      ServerError = 17
)

var ServerError_name = map[int32]string{
	0:  "UnknownError",
	1:  "MetadataError",
	2:  "PersistenceError",
	3:  "AuthenticationError",
	4:  "AuthorizationError",
	5:  "ConsumerBusy",
	6:  "ServiceNotReady",
	7:  "ProducerBlockedQuotaExceededError",
	8:  "ProducerBlockedQuotaExceededException",
	9:  "ChecksumError",
	10: "UnsupportedVersionError",
	11: "TopicNotFound",
	12: "SubscriptionNotFound",
	13: "ConsumerNotFound",
	14: "TooManyRequests",
	15: "TopicTerminatedError",
	16: "ProducerBusy",
	17: "InvalidTopicName",
}

// CompressionType of a message payload.
type CompressionType int32

const (
	CompressionType_NONE   CompressionType = 0
	CompressionType_LZ4    CompressionType = 1
	CompressionType_ZLIB   CompressionType = 2
	CompressionType_ZSTD   CompressionType = 3
	CompressionType_SNAPPY CompressionType = 4
)

var CompressionType_name = map[int32]string{
	0: "NONE",
	1: "LZ4",
	2: "ZLIB",
	3: "ZSTD",
	4: "SNAPPY",
}

var CompressionType_value = map[string]int32{
	"NONE":   0,
	"LZ4":    1,
	"ZLIB":   2,
	"ZSTD":   3,
	"SNAPPY": 4,
}

// SubType is the subscription mode of a consumer.
type SubType int32

const (
	SubType_Exclusive SubType = 0
	SubType_Shared    SubType = 1
	SubType_Failover  SubType = 2
	SubType_KeyShared SubType = 3
)

var SubType_name = map[int32]string{
	0: "Exclusive",
	1: "Shared",
	2: "Failover",
	3: "Key_Shared",
}

var SubType_value = map[string]int32{
	"Exclusive":  0,
	"Shared":     1,
	"Failover":   2,
	"Key_Shared": 3,
}

// InitialPosition of a new subscription's cursor.
type InitialPosition int32

const (
	InitialPosition_Latest   InitialPosition = 0
	InitialPosition_Earliest InitialPosition = 1
)

var InitialPosition_name = map[int32]string{
	0: "Latest",
	1: "Earliest",
}

// LookupType is the outcome of a LookupTopic request.
type LookupType int32

const (
	LookupType_Redirect LookupType = 0
	LookupType_Connect  LookupType = 1
	LookupType_Failed   LookupType = 2
)

var LookupType_name = map[int32]string{
	0: "Redirect",
	1: "Connect",
	2: "Failed",
}

// PartitionedLookupType is the outcome of a PartitionedTopicMetadata request.
type PartitionedLookupType int32

const (
	PartitionedLookupType_Success PartitionedLookupType = 0
	PartitionedLookupType_Failed  PartitionedLookupType = 1
)

var PartitionedLookupType_name = map[int32]string{
	0: "Success",
	1: "Failed",
}

// AckType of an Ack command.
type AckType int32

const (
	AckType_Individual AckType = 0
	AckType_Cumulative AckType = 1
)

var AckType_name = map[int32]string{
	0: "Individual",
	1: "Cumulative",
}

// TopicsMode filters GetTopicsOfNamespace by topic domain.
type TopicsMode int32

const (
	TopicsMode_PERSISTENT     TopicsMode = 0
	TopicsMode_NON_PERSISTENT TopicsMode = 1
	TopicsMode_ALL            TopicsMode = 2
)

var TopicsMode_name = map[int32]string{
	0: "PERSISTENT",
	1: "NON_PERSISTENT",
	2: "ALL",
}

func (x CommandType) Enum() *CommandType {
	p := new(CommandType)
	*p = x
	return p
}

func (x ServerError) Enum() *ServerError {
	p := new(ServerError)
	*p = x
	return p
}

func (x CompressionType) Enum() *CompressionType {
	p := new(CompressionType)
	*p = x
	return p
}

func (x SubType) Enum() *SubType {
	p := new(SubType)
	*p = x
	return p
}

func (x InitialPosition) Enum() *InitialPosition {
	p := new(InitialPosition)
	*p = x
	return p
}

func (x LookupType) Enum() *LookupType {
	p := new(LookupType)
	*p = x
	return p
}

func (x PartitionedLookupType) Enum() *PartitionedLookupType {
	p := new(PartitionedLookupType)
	*p = x
	return p
}

func (x AckType) Enum() *AckType {
	p := new(AckType)
	*p = x
	return p
}

func (x TopicsMode) Enum() *TopicsMode {
	p := new(TopicsMode)
	*p = x
	return p
}

// KeyValue is a string property.
type KeyValue struct {
	Key   *string `protobuf:"bytes,1,req,name=key" json:"key"`
	Value *string `protobuf:"bytes,2,req,name=value" json:"value"`
}

func (m *KeyValue) GetKey() string {
	if m != nil && m.Key != nil {
		return *m.Key
	}
	return ""
}

func (m *KeyValue) GetValue() string {
	if m != nil && m.Value != nil {
		return *m.Value
	}
	return ""
}

// MessageIdData identifies a message within a topic partition.
type MessageIdData struct {
	LedgerId   *uint64 `protobuf:"varint,1,req,name=ledgerId" json:"ledgerId"`
	EntryId    *uint64 `protobuf:"varint,2,req,name=entryId" json:"entryId"`
	Partition  *int32  `protobuf:"varint,3,opt,name=partition,def=-1" json:"partition,omitempty"`
	BatchIndex *int32  `protobuf:"varint,4,opt,name=batch_index,json=batchIndex,def=-1" json:"batch_index,omitempty"`
}

const (
	Default_MessageIdData_Partition  int32 = -1
	Default_MessageIdData_BatchIndex int32 = -1
)

func (m *MessageIdData) GetLedgerId() uint64 {
	if m != nil && m.LedgerId != nil {
		return *m.LedgerId
	}
	return 0
}

func (m *MessageIdData) GetEntryId() uint64 {
	if m != nil && m.EntryId != nil {
		return *m.EntryId
	}
	return 0
}

func (m *MessageIdData) GetPartition() int32 {
	if m != nil && m.Partition != nil {
		return *m.Partition
	}
	return Default_MessageIdData_Partition
}

func (m *MessageIdData) GetBatchIndex() int32 {
	if m != nil && m.BatchIndex != nil {
		return *m.BatchIndex
	}
	return Default_MessageIdData_BatchIndex
}

// MessageMetadata precedes the payload of every Send and Message frame.
type MessageMetadata struct {
	ProducerName       *string          `protobuf:"bytes,1,req,name=producer_name,json=producerName" json:"producer_name"`
	SequenceId         *uint64          `protobuf:"varint,2,req,name=sequence_id,json=sequenceId" json:"sequence_id"`
	PublishTime        *uint64          `protobuf:"varint,3,req,name=publish_time,json=publishTime" json:"publish_time"`
	Properties         []*KeyValue      `protobuf:"bytes,4,rep,name=properties" json:"properties,omitempty"`
	PartitionKey       *string          `protobuf:"bytes,6,opt,name=partition_key,json=partitionKey" json:"partition_key,omitempty"`
	Compression        *CompressionType `protobuf:"varint,8,opt,name=compression,enum=protocol.CompressionType,def=0" json:"compression,omitempty"`
	UncompressedSize   *uint32          `protobuf:"varint,9,opt,name=uncompressed_size,json=uncompressedSize,def=0" json:"uncompressed_size,omitempty"`
	NumMessagesInBatch *int32           `protobuf:"varint,11,opt,name=num_messages_in_batch,json=numMessagesInBatch,def=1" json:"num_messages_in_batch,omitempty"`
	EventTime          *uint64          `protobuf:"varint,12,opt,name=event_time,json=eventTime,def=0" json:"event_time,omitempty"`
}

const (
	Default_MessageMetadata_Compression        CompressionType = CompressionType_NONE
	Default_MessageMetadata_UncompressedSize   uint32          = 0
	Default_MessageMetadata_NumMessagesInBatch int32           = 1
	Default_MessageMetadata_EventTime          uint64          = 0
)

func (m *MessageMetadata) GetProducerName() string {
	if m != nil && m.ProducerName != nil {
		return *m.ProducerName
	}
	return ""
}

func (m *MessageMetadata) GetSequenceId() uint64 {
	if m != nil && m.SequenceId != nil {
		return *m.SequenceId
	}
	return 0
}

func (m *MessageMetadata) GetPublishTime() uint64 {
	if m != nil && m.PublishTime != nil {
		return *m.PublishTime
	}
	return 0
}

func (m *MessageMetadata) GetProperties() []*KeyValue {
	if m != nil {
		return m.Properties
	}
	return nil
}

func (m *MessageMetadata) GetPartitionKey() string {
	if m != nil && m.PartitionKey != nil {
		return *m.PartitionKey
	}
	return ""
}

func (m *MessageMetadata) GetCompression() CompressionType {
	if m != nil && m.Compression != nil {
		return *m.Compression
	}
	return Default_MessageMetadata_Compression
}

func (m *MessageMetadata) GetUncompressedSize() uint32 {
	if m != nil && m.UncompressedSize != nil {
		return *m.UncompressedSize
	}
	return Default_MessageMetadata_UncompressedSize
}

func (m *MessageMetadata) GetNumMessagesInBatch() int32 {
	if m != nil && m.NumMessagesInBatch != nil {
		return *m.NumMessagesInBatch
	}
	return Default_MessageMetadata_NumMessagesInBatch
}

func (m *MessageMetadata) GetEventTime() uint64 {
	if m != nil && m.EventTime != nil {
		return *m.EventTime
	}
	return Default_MessageMetadata_EventTime
}

type CommandConnect struct {
	ClientVersion    *string `protobuf:"bytes,1,req,name=client_version,json=clientVersion" json:"client_version"`
	AuthData         []byte  `protobuf:"bytes,3,opt,name=auth_data,json=authData" json:"auth_data,omitempty"`
	ProtocolVersion  *int32  `protobuf:"varint,4,opt,name=protocol_version,json=protocolVersion,def=0" json:"protocol_version,omitempty"`
	AuthMethodName   *string `protobuf:"bytes,5,opt,name=auth_method_name,json=authMethodName" json:"auth_method_name,omitempty"`
	ProxyToBrokerUrl *string `protobuf:"bytes,6,opt,name=proxy_to_broker_url,json=proxyToBrokerUrl" json:"proxy_to_broker_url,omitempty"`
}

const Default_CommandConnect_ProtocolVersion int32 = 0

func (m *CommandConnect) GetClientVersion() string {
	if m != nil && m.ClientVersion != nil {
		return *m.ClientVersion
	}
	return ""
}

func (m *CommandConnect) GetAuthData() []byte {
	if m != nil {
		return m.AuthData
	}
	return nil
}

func (m *CommandConnect) GetProtocolVersion() int32 {
	if m != nil && m.ProtocolVersion != nil {
		return *m.ProtocolVersion
	}
	return Default_CommandConnect_ProtocolVersion
}

func (m *CommandConnect) GetAuthMethodName() string {
	if m != nil && m.AuthMethodName != nil {
		return *m.AuthMethodName
	}
	return ""
}

func (m *CommandConnect) GetProxyToBrokerUrl() string {
	if m != nil && m.ProxyToBrokerUrl != nil {
		return *m.ProxyToBrokerUrl
	}
	return ""
}

type CommandConnected struct {
	ServerVersion   *string `protobuf:"bytes,1,req,name=server_version,json=serverVersion" json:"server_version"`
	ProtocolVersion *int32  `protobuf:"varint,2,opt,name=protocol_version,json=protocolVersion,def=0" json:"protocol_version,omitempty"`
	MaxMessageSize  *int32  `protobuf:"varint,3,opt,name=max_message_size,json=maxMessageSize" json:"max_message_size,omitempty"`
}

const Default_CommandConnected_ProtocolVersion int32 = 0

func (m *CommandConnected) GetServerVersion() string {
	if m != nil && m.ServerVersion != nil {
		return *m.ServerVersion
	}
	return ""
}

func (m *CommandConnected) GetProtocolVersion() int32 {
	if m != nil && m.ProtocolVersion != nil {
		return *m.ProtocolVersion
	}
	return Default_CommandConnected_ProtocolVersion
}

func (m *CommandConnected) GetMaxMessageSize() int32 {
	if m != nil && m.MaxMessageSize != nil {
		return *m.MaxMessageSize
	}
	return 0
}

type CommandSubscribe struct {
	Topic           *string          `protobuf:"bytes,1,req,name=topic" json:"topic"`
	Subscription    *string          `protobuf:"bytes,2,req,name=subscription" json:"subscription"`
	SubType         *SubType         `protobuf:"varint,3,req,name=subType,enum=protocol.SubType" json:"subType"`
	ConsumerId      *uint64          `protobuf:"varint,4,req,name=consumer_id,json=consumerId" json:"consumer_id"`
	RequestId       *uint64          `protobuf:"varint,5,req,name=request_id,json=requestId" json:"request_id"`
	ConsumerName    *string          `protobuf:"bytes,6,opt,name=consumer_name,json=consumerName" json:"consumer_name,omitempty"`
	PriorityLevel   *int32           `protobuf:"varint,7,opt,name=priority_level,json=priorityLevel" json:"priority_level,omitempty"`
	Durable         *bool            `protobuf:"varint,8,opt,name=durable,def=1" json:"durable,omitempty"`
	InitialPosition *InitialPosition `protobuf:"varint,13,opt,name=initialPosition,enum=protocol.InitialPosition,def=0" json:"initialPosition,omitempty"`
}

const (
	Default_CommandSubscribe_Durable         bool            = true
	Default_CommandSubscribe_InitialPosition InitialPosition = InitialPosition_Latest
)

func (m *CommandSubscribe) GetTopic() string {
	if m != nil && m.Topic != nil {
		return *m.Topic
	}
	return ""
}

func (m *CommandSubscribe) GetSubscription() string {
	if m != nil && m.Subscription != nil {
		return *m.Subscription
	}
	return ""
}

func (m *CommandSubscribe) GetSubType() SubType {
	if m != nil && m.SubType != nil {
		return *m.SubType
	}
	return SubType_Exclusive
}

func (m *CommandSubscribe) GetConsumerId() uint64 {
	if m != nil && m.ConsumerId != nil {
		return *m.ConsumerId
	}
	return 0
}

func (m *CommandSubscribe) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

func (m *CommandSubscribe) GetConsumerName() string {
	if m != nil && m.ConsumerName != nil {
		return *m.ConsumerName
	}
	return ""
}

func (m *CommandSubscribe) GetPriorityLevel() int32 {
	if m != nil && m.PriorityLevel != nil {
		return *m.PriorityLevel
	}
	return 0
}

func (m *CommandSubscribe) GetDurable() bool {
	if m != nil && m.Durable != nil {
		return *m.Durable
	}
	return Default_CommandSubscribe_Durable
}

func (m *CommandSubscribe) GetInitialPosition() InitialPosition {
	if m != nil && m.InitialPosition != nil {
		return *m.InitialPosition
	}
	return Default_CommandSubscribe_InitialPosition
}

type CommandPartitionedTopicMetadata struct {
	Topic     *string `protobuf:"bytes,1,req,name=topic" json:"topic"`
	RequestId *uint64 `protobuf:"varint,2,req,name=request_id,json=requestId" json:"request_id"`
}

func (m *CommandPartitionedTopicMetadata) GetTopic() string {
	if m != nil && m.Topic != nil {
		return *m.Topic
	}
	return ""
}

func (m *CommandPartitionedTopicMetadata) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

type CommandPartitionedTopicMetadataResponse struct {
	Partitions *uint32                `protobuf:"varint,1,opt,name=partitions" json:"partitions,omitempty"`
	RequestId  *uint64                `protobuf:"varint,2,req,name=request_id,json=requestId" json:"request_id"`
	Response   *PartitionedLookupType `protobuf:"varint,3,opt,name=response,enum=protocol.PartitionedLookupType" json:"response,omitempty"`
	Error      *ServerError           `protobuf:"varint,4,opt,name=error,enum=protocol.ServerError" json:"error,omitempty"`
	Message    *string                `protobuf:"bytes,5,opt,name=message" json:"message,omitempty"`
}

func (m *CommandPartitionedTopicMetadataResponse) GetPartitions() uint32 {
	if m != nil && m.Partitions != nil {
		return *m.Partitions
	}
	return 0
}

func (m *CommandPartitionedTopicMetadataResponse) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

func (m *CommandPartitionedTopicMetadataResponse) GetResponse() PartitionedLookupType {
	if m != nil && m.Response != nil {
		return *m.Response
	}
	return PartitionedLookupType_Success
}

func (m *CommandPartitionedTopicMetadataResponse) GetError() ServerError {
	if m != nil && m.Error != nil {
		return *m.Error
	}
	return ServerError_UnknownError
}

func (m *CommandPartitionedTopicMetadataResponse) GetMessage() string {
	if m != nil && m.Message != nil {
		return *m.Message
	}
	return ""
}

type CommandLookupTopic struct {
	Topic         *string `protobuf:"bytes,1,req,name=topic" json:"topic"`
	RequestId     *uint64 `protobuf:"varint,2,req,name=request_id,json=requestId" json:"request_id"`
	Authoritative *bool   `protobuf:"varint,3,opt,name=authoritative,def=0" json:"authoritative,omitempty"`
}

const Default_CommandLookupTopic_Authoritative bool = false

func (m *CommandLookupTopic) GetTopic() string {
	if m != nil && m.Topic != nil {
		return *m.Topic
	}
	return ""
}

func (m *CommandLookupTopic) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

func (m *CommandLookupTopic) GetAuthoritative() bool {
	if m != nil && m.Authoritative != nil {
		return *m.Authoritative
	}
	return Default_CommandLookupTopic_Authoritative
}

type CommandLookupTopicResponse struct {
	BrokerServiceUrl       *string      `protobuf:"bytes,1,opt,name=brokerServiceUrl" json:"brokerServiceUrl,omitempty"`
	BrokerServiceUrlTls    *string      `protobuf:"bytes,2,opt,name=brokerServiceUrlTls" json:"brokerServiceUrlTls,omitempty"`
	Response               *LookupType  `protobuf:"varint,3,opt,name=response,enum=protocol.LookupType" json:"response,omitempty"`
	RequestId              *uint64      `protobuf:"varint,4,req,name=request_id,json=requestId" json:"request_id"`
	Authoritative          *bool        `protobuf:"varint,5,opt,name=authoritative,def=0" json:"authoritative,omitempty"`
	Error                  *ServerError `protobuf:"varint,6,opt,name=error,enum=protocol.ServerError" json:"error,omitempty"`
	Message                *string      `protobuf:"bytes,7,opt,name=message" json:"message,omitempty"`
	ProxyThroughServiceUrl *bool        `protobuf:"varint,8,opt,name=proxy_through_service_url,json=proxyThroughServiceUrl,def=0" json:"proxy_through_service_url,omitempty"`
}

const (
	Default_CommandLookupTopicResponse_Authoritative          bool = false
	Default_CommandLookupTopicResponse_ProxyThroughServiceUrl bool = false
)

func (m *CommandLookupTopicResponse) GetBrokerServiceUrl() string {
	if m != nil && m.BrokerServiceUrl != nil {
		return *m.BrokerServiceUrl
	}
	return ""
}

func (m *CommandLookupTopicResponse) GetBrokerServiceUrlTls() string {
	if m != nil && m.BrokerServiceUrlTls != nil {
		return *m.BrokerServiceUrlTls
	}
	return ""
}

func (m *CommandLookupTopicResponse) GetResponse() LookupType {
	if m != nil && m.Response != nil {
		return *m.Response
	}
	return LookupType_Redirect
}

func (m *CommandLookupTopicResponse) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

func (m *CommandLookupTopicResponse) GetAuthoritative() bool {
	if m != nil && m.Authoritative != nil {
		return *m.Authoritative
	}
	return Default_CommandLookupTopicResponse_Authoritative
}

func (m *CommandLookupTopicResponse) GetError() ServerError {
	if m != nil && m.Error != nil {
		return *m.Error
	}
	return ServerError_UnknownError
}

func (m *CommandLookupTopicResponse) GetMessage() string {
	if m != nil && m.Message != nil {
		return *m.Message
	}
	return ""
}

func (m *CommandLookupTopicResponse) GetProxyThroughServiceUrl() bool {
	if m != nil && m.ProxyThroughServiceUrl != nil {
		return *m.ProxyThroughServiceUrl
	}
	return Default_CommandLookupTopicResponse_ProxyThroughServiceUrl
}

type CommandProducer struct {
	Topic        *string     `protobuf:"bytes,1,req,name=topic" json:"topic"`
	ProducerId   *uint64     `protobuf:"varint,2,req,name=producer_id,json=producerId" json:"producer_id"`
	RequestId    *uint64     `protobuf:"varint,3,req,name=request_id,json=requestId" json:"request_id"`
	ProducerName *string     `protobuf:"bytes,4,opt,name=producer_name,json=producerName" json:"producer_name,omitempty"`
	Encrypted    *bool       `protobuf:"varint,5,opt,name=encrypted,def=0" json:"encrypted,omitempty"`
	Metadata     []*KeyValue `protobuf:"bytes,6,rep,name=metadata" json:"metadata,omitempty"`
}

const Default_CommandProducer_Encrypted bool = false

func (m *CommandProducer) GetTopic() string {
	if m != nil && m.Topic != nil {
		return *m.Topic
	}
	return ""
}

func (m *CommandProducer) GetProducerId() uint64 {
	if m != nil && m.ProducerId != nil {
		return *m.ProducerId
	}
	return 0
}

func (m *CommandProducer) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

func (m *CommandProducer) GetProducerName() string {
	if m != nil && m.ProducerName != nil {
		return *m.ProducerName
	}
	return ""
}

func (m *CommandProducer) GetEncrypted() bool {
	if m != nil && m.Encrypted != nil {
		return *m.Encrypted
	}
	return Default_CommandProducer_Encrypted
}

func (m *CommandProducer) GetMetadata() []*KeyValue {
	if m != nil {
		return m.Metadata
	}
	return nil
}

type CommandSend struct {
	ProducerId  *uint64 `protobuf:"varint,1,req,name=producer_id,json=producerId" json:"producer_id"`
	SequenceId  *uint64 `protobuf:"varint,2,req,name=sequence_id,json=sequenceId" json:"sequence_id"`
	NumMessages *int32  `protobuf:"varint,3,opt,name=num_messages,json=numMessages,def=1" json:"num_messages,omitempty"`
}

const Default_CommandSend_NumMessages int32 = 1

func (m *CommandSend) GetProducerId() uint64 {
	if m != nil && m.ProducerId != nil {
		return *m.ProducerId
	}
	return 0
}

func (m *CommandSend) GetSequenceId() uint64 {
	if m != nil && m.SequenceId != nil {
		return *m.SequenceId
	}
	return 0
}

func (m *CommandSend) GetNumMessages() int32 {
	if m != nil && m.NumMessages != nil {
		return *m.NumMessages
	}
	return Default_CommandSend_NumMessages
}

type CommandSendReceipt struct {
	ProducerId        *uint64        `protobuf:"varint,1,req,name=producer_id,json=producerId" json:"producer_id"`
	SequenceId        *uint64        `protobuf:"varint,2,req,name=sequence_id,json=sequenceId" json:"sequence_id"`
	MessageId         *MessageIdData `protobuf:"bytes,3,opt,name=message_id,json=messageId" json:"message_id,omitempty"`
	HighestSequenceId *uint64        `protobuf:"varint,4,opt,name=highest_sequence_id,json=highestSequenceId,def=0" json:"highest_sequence_id,omitempty"`
}

const Default_CommandSendReceipt_HighestSequenceId uint64 = 0

func (m *CommandSendReceipt) GetProducerId() uint64 {
	if m != nil && m.ProducerId != nil {
		return *m.ProducerId
	}
	return 0
}

func (m *CommandSendReceipt) GetSequenceId() uint64 {
	if m != nil && m.SequenceId != nil {
		return *m.SequenceId
	}
	return 0
}

func (m *CommandSendReceipt) GetMessageId() *MessageIdData {
	if m != nil {
		return m.MessageId
	}
	return nil
}

func (m *CommandSendReceipt) GetHighestSequenceId() uint64 {
	if m != nil && m.HighestSequenceId != nil {
		return *m.HighestSequenceId
	}
	return Default_CommandSendReceipt_HighestSequenceId
}

type CommandSendError struct {
	ProducerId *uint64      `protobuf:"varint,1,req,name=producer_id,json=producerId" json:"producer_id"`
	SequenceId *uint64      `protobuf:"varint,2,req,name=sequence_id,json=sequenceId" json:"sequence_id"`
	Error      *ServerError `protobuf:"varint,3,req,name=error,enum=protocol.ServerError" json:"error"`
	Message    *string      `protobuf:"bytes,4,req,name=message" json:"message"`
}

func (m *CommandSendError) GetProducerId() uint64 {
	if m != nil && m.ProducerId != nil {
		return *m.ProducerId
	}
	return 0
}

func (m *CommandSendError) GetSequenceId() uint64 {
	if m != nil && m.SequenceId != nil {
		return *m.SequenceId
	}
	return 0
}

func (m *CommandSendError) GetError() ServerError {
	if m != nil && m.Error != nil {
		return *m.Error
	}
	return ServerError_UnknownError
}

func (m *CommandSendError) GetMessage() string {
	if m != nil && m.Message != nil {
		return *m.Message
	}
	return ""
}

type CommandMessage struct {
	ConsumerId      *uint64        `protobuf:"varint,1,req,name=consumer_id,json=consumerId" json:"consumer_id"`
	MessageId       *MessageIdData `protobuf:"bytes,2,req,name=message_id,json=messageId" json:"message_id"`
	RedeliveryCount *uint32        `protobuf:"varint,3,opt,name=redelivery_count,json=redeliveryCount,def=0" json:"redelivery_count,omitempty"`
}

const Default_CommandMessage_RedeliveryCount uint32 = 0

func (m *CommandMessage) GetConsumerId() uint64 {
	if m != nil && m.ConsumerId != nil {
		return *m.ConsumerId
	}
	return 0
}

func (m *CommandMessage) GetMessageId() *MessageIdData {
	if m != nil {
		return m.MessageId
	}
	return nil
}

func (m *CommandMessage) GetRedeliveryCount() uint32 {
	if m != nil && m.RedeliveryCount != nil {
		return *m.RedeliveryCount
	}
	return Default_CommandMessage_RedeliveryCount
}

type CommandAck struct {
	ConsumerId *uint64          `protobuf:"varint,1,req,name=consumer_id,json=consumerId" json:"consumer_id"`
	AckType    *AckType         `protobuf:"varint,2,req,name=ack_type,json=ackType,enum=protocol.AckType" json:"ack_type"`
	MessageId  []*MessageIdData `protobuf:"bytes,3,rep,name=message_id,json=messageId" json:"message_id,omitempty"`
}

func (m *CommandAck) GetConsumerId() uint64 {
	if m != nil && m.ConsumerId != nil {
		return *m.ConsumerId
	}
	return 0
}

func (m *CommandAck) GetAckType() AckType {
	if m != nil && m.AckType != nil {
		return *m.AckType
	}
	return AckType_Individual
}

func (m *CommandAck) GetMessageId() []*MessageIdData {
	if m != nil {
		return m.MessageId
	}
	return nil
}

type CommandFlow struct {
	ConsumerId     *uint64 `protobuf:"varint,1,req,name=consumer_id,json=consumerId" json:"consumer_id"`
	MessagePermits *uint32 `protobuf:"varint,2,req,name=messagePermits" json:"messagePermits"`
}

func (m *CommandFlow) GetConsumerId() uint64 {
	if m != nil && m.ConsumerId != nil {
		return *m.ConsumerId
	}
	return 0
}

func (m *CommandFlow) GetMessagePermits() uint32 {
	if m != nil && m.MessagePermits != nil {
		return *m.MessagePermits
	}
	return 0
}

type CommandUnsubscribe struct {
	ConsumerId *uint64 `protobuf:"varint,1,req,name=consumer_id,json=consumerId" json:"consumer_id"`
	RequestId  *uint64 `protobuf:"varint,2,req,name=request_id,json=requestId" json:"request_id"`
}

func (m *CommandUnsubscribe) GetConsumerId() uint64 {
	if m != nil && m.ConsumerId != nil {
		return *m.ConsumerId
	}
	return 0
}

func (m *CommandUnsubscribe) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

type CommandSuccess struct {
	RequestId *uint64 `protobuf:"varint,1,req,name=request_id,json=requestId" json:"request_id"`
}

func (m *CommandSuccess) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

type CommandError struct {
	RequestId *uint64      `protobuf:"varint,1,req,name=request_id,json=requestId" json:"request_id"`
	Error     *ServerError `protobuf:"varint,2,req,name=error,enum=protocol.ServerError" json:"error"`
	Message   *string      `protobuf:"bytes,3,req,name=message" json:"message"`
}

func (m *CommandError) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

func (m *CommandError) GetError() ServerError {
	if m != nil && m.Error != nil {
		return *m.Error
	}
	return ServerError_UnknownError
}

func (m *CommandError) GetMessage() string {
	if m != nil && m.Message != nil {
		return *m.Message
	}
	return ""
}

type CommandCloseProducer struct {
	ProducerId *uint64 `protobuf:"varint,1,req,name=producer_id,json=producerId" json:"producer_id"`
	RequestId  *uint64 `protobuf:"varint,2,req,name=request_id,json=requestId" json:"request_id"`
}

func (m *CommandCloseProducer) GetProducerId() uint64 {
	if m != nil && m.ProducerId != nil {
		return *m.ProducerId
	}
	return 0
}

func (m *CommandCloseProducer) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

type CommandCloseConsumer struct {
	ConsumerId *uint64 `protobuf:"varint,1,req,name=consumer_id,json=consumerId" json:"consumer_id"`
	RequestId  *uint64 `protobuf:"varint,2,req,name=request_id,json=requestId" json:"request_id"`
}

func (m *CommandCloseConsumer) GetConsumerId() uint64 {
	if m != nil && m.ConsumerId != nil {
		return *m.ConsumerId
	}
	return 0
}

func (m *CommandCloseConsumer) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

type CommandProducerSuccess struct {
	RequestId      *uint64 `protobuf:"varint,1,req,name=request_id,json=requestId" json:"request_id"`
	ProducerName   *string `protobuf:"bytes,2,req,name=producer_name,json=producerName" json:"producer_name"`
	LastSequenceId *int64  `protobuf:"varint,3,opt,name=last_sequence_id,json=lastSequenceId,def=-1" json:"last_sequence_id,omitempty"`
}

const Default_CommandProducerSuccess_LastSequenceId int64 = -1

func (m *CommandProducerSuccess) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

func (m *CommandProducerSuccess) GetProducerName() string {
	if m != nil && m.ProducerName != nil {
		return *m.ProducerName
	}
	return ""
}

func (m *CommandProducerSuccess) GetLastSequenceId() int64 {
	if m != nil && m.LastSequenceId != nil {
		return *m.LastSequenceId
	}
	return Default_CommandProducerSuccess_LastSequenceId
}

type CommandPing struct{}

type CommandPong struct{}

type CommandReachedEndOfTopic struct {
	ConsumerId *uint64 `protobuf:"varint,1,req,name=consumer_id,json=consumerId" json:"consumer_id"`
}

func (m *CommandReachedEndOfTopic) GetConsumerId() uint64 {
	if m != nil && m.ConsumerId != nil {
		return *m.ConsumerId
	}
	return 0
}

type CommandGetTopicsOfNamespace struct {
	RequestId *uint64     `protobuf:"varint,1,req,name=request_id,json=requestId" json:"request_id"`
	Namespace *string     `protobuf:"bytes,2,req,name=namespace" json:"namespace"`
	Mode      *TopicsMode `protobuf:"varint,3,opt,name=mode,enum=protocol.TopicsMode,def=0" json:"mode,omitempty"`
}

const Default_CommandGetTopicsOfNamespace_Mode TopicsMode = TopicsMode_PERSISTENT

func (m *CommandGetTopicsOfNamespace) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

func (m *CommandGetTopicsOfNamespace) GetNamespace() string {
	if m != nil && m.Namespace != nil {
		return *m.Namespace
	}
	return ""
}

func (m *CommandGetTopicsOfNamespace) GetMode() TopicsMode {
	if m != nil && m.Mode != nil {
		return *m.Mode
	}
	return Default_CommandGetTopicsOfNamespace_Mode
}

type CommandGetTopicsOfNamespaceResponse struct {
	RequestId *uint64  `protobuf:"varint,1,req,name=request_id,json=requestId" json:"request_id"`
	Topics    []string `protobuf:"bytes,2,rep,name=topics" json:"topics,omitempty"`
}

func (m *CommandGetTopicsOfNamespaceResponse) GetRequestId() uint64 {
	if m != nil && m.RequestId != nil {
		return *m.RequestId
	}
	return 0
}

func (m *CommandGetTopicsOfNamespaceResponse) GetTopics() []string {
	if m != nil {
		return m.Topics
	}
	return nil
}

// BaseCommand is the outer message of every frame. Type selects which one of
// the sub-commands is populated.
type BaseCommand struct {
	Type                         *CommandType                             `protobuf:"varint,1,req,name=type,enum=protocol.CommandType" json:"type"`
	Connect                      *CommandConnect                          `protobuf:"bytes,2,opt,name=connect" json:"connect,omitempty"`
	Connected                    *CommandConnected                        `protobuf:"bytes,3,opt,name=connected" json:"connected,omitempty"`
	Subscribe                    *CommandSubscribe                        `protobuf:"bytes,4,opt,name=subscribe" json:"subscribe,omitempty"`
	Producer                     *CommandProducer                         `protobuf:"bytes,5,opt,name=producer" json:"producer,omitempty"`
	Send                         *CommandSend                             `protobuf:"bytes,6,opt,name=send" json:"send,omitempty"`
	SendReceipt                  *CommandSendReceipt                      `protobuf:"bytes,7,opt,name=send_receipt,json=sendReceipt" json:"send_receipt,omitempty"`
	SendError                    *CommandSendError                        `protobuf:"bytes,8,opt,name=send_error,json=sendError" json:"send_error,omitempty"`
	Message                      *CommandMessage                          `protobuf:"bytes,9,opt,name=message" json:"message,omitempty"`
	Ack                          *CommandAck                              `protobuf:"bytes,10,opt,name=ack" json:"ack,omitempty"`
	Flow                         *CommandFlow                             `protobuf:"bytes,11,opt,name=flow" json:"flow,omitempty"`
	Unsubscribe                  *CommandUnsubscribe                      `protobuf:"bytes,12,opt,name=unsubscribe" json:"unsubscribe,omitempty"`
	Success                      *CommandSuccess                          `protobuf:"bytes,13,opt,name=success" json:"success,omitempty"`
	Error                        *CommandError                            `protobuf:"bytes,14,opt,name=error" json:"error,omitempty"`
	CloseProducer                *CommandCloseProducer                    `protobuf:"bytes,15,opt,name=close_producer,json=closeProducer" json:"close_producer,omitempty"`
	CloseConsumer                *CommandCloseConsumer                    `protobuf:"bytes,16,opt,name=close_consumer,json=closeConsumer" json:"close_consumer,omitempty"`
	ProducerSuccess              *CommandProducerSuccess                  `protobuf:"bytes,17,opt,name=producer_success,json=producerSuccess" json:"producer_success,omitempty"`
	Ping                         *CommandPing                             `protobuf:"bytes,18,opt,name=ping" json:"ping,omitempty"`
	Pong                         *CommandPong                             `protobuf:"bytes,19,opt,name=pong" json:"pong,omitempty"`
	PartitionMetadata            *CommandPartitionedTopicMetadata         `protobuf:"bytes,21,opt,name=partitionMetadata" json:"partitionMetadata,omitempty"`
	PartitionMetadataResponse    *CommandPartitionedTopicMetadataResponse `protobuf:"bytes,22,opt,name=partitionMetadataResponse" json:"partitionMetadataResponse,omitempty"`
	LookupTopic                  *CommandLookupTopic                      `protobuf:"bytes,23,opt,name=lookupTopic" json:"lookupTopic,omitempty"`
	LookupTopicResponse          *CommandLookupTopicResponse              `protobuf:"bytes,24,opt,name=lookupTopicResponse" json:"lookupTopicResponse,omitempty"`
	ReachedEndOfTopic            *CommandReachedEndOfTopic                `protobuf:"bytes,27,opt,name=reachedEndOfTopic" json:"reachedEndOfTopic,omitempty"`
	GetTopicsOfNamespace         *CommandGetTopicsOfNamespace             `protobuf:"bytes,32,opt,name=getTopicsOfNamespace" json:"getTopicsOfNamespace,omitempty"`
	GetTopicsOfNamespaceResponse *CommandGetTopicsOfNamespaceResponse     `protobuf:"bytes,33,opt,name=getTopicsOfNamespaceResponse" json:"getTopicsOfNamespaceResponse,omitempty"`
}

func (m *BaseCommand) GetType() CommandType {
	if m != nil && m.Type != nil {
		return *m.Type
	}
	return CommandType_CONNECT
}

func (m *BaseCommand) GetConnect() *CommandConnect {
	if m != nil {
		return m.Connect
	}
	return nil
}

func (m *BaseCommand) GetConnected() *CommandConnected {
	if m != nil {
		return m.Connected
	}
	return nil
}

func (m *BaseCommand) GetSubscribe() *CommandSubscribe {
	if m != nil {
		return m.Subscribe
	}
	return nil
}

func (m *BaseCommand) GetProducer() *CommandProducer {
	if m != nil {
		return m.Producer
	}
	return nil
}

func (m *BaseCommand) GetSend() *CommandSend {
	if m != nil {
		return m.Send
	}
	return nil
}

func (m *BaseCommand) GetSendReceipt() *CommandSendReceipt {
	if m != nil {
		return m.SendReceipt
	}
	return nil
}

func (m *BaseCommand) GetSendError() *CommandSendError {
	if m != nil {
		return m.SendError
	}
	return nil
}

func (m *BaseCommand) GetMessage() *CommandMessage {
	if m != nil {
		return m.Message
	}
	return nil
}

func (m *BaseCommand) GetAck() *CommandAck {
	if m != nil {
		return m.Ack
	}
	return nil
}

func (m *BaseCommand) GetFlow() *CommandFlow {
	if m != nil {
		return m.Flow
	}
	return nil
}

func (m *BaseCommand) GetUnsubscribe() *CommandUnsubscribe {
	if m != nil {
		return m.Unsubscribe
	}
	return nil
}

func (m *BaseCommand) GetSuccess() *CommandSuccess {
	if m != nil {
		return m.Success
	}
	return nil
}

func (m *BaseCommand) GetError() *CommandError {
	if m != nil {
		return m.Error
	}
	return nil
}

func (m *BaseCommand) GetCloseProducer() *CommandCloseProducer {
	if m != nil {
		return m.CloseProducer
	}
	return nil
}

func (m *BaseCommand) GetCloseConsumer() *CommandCloseConsumer {
	if m != nil {
		return m.CloseConsumer
	}
	return nil
}

func (m *BaseCommand) GetProducerSuccess() *CommandProducerSuccess {
	if m != nil {
		return m.ProducerSuccess
	}
	return nil
}

func (m *BaseCommand) GetPing() *CommandPing {
	if m != nil {
		return m.Ping
	}
	return nil
}

func (m *BaseCommand) GetPong() *CommandPong {
	if m != nil {
		return m.Pong
	}
	return nil
}

func (m *BaseCommand) GetPartitionMetadata() *CommandPartitionedTopicMetadata {
	if m != nil {
		return m.PartitionMetadata
	}
	return nil
}

func (m *BaseCommand) GetPartitionMetadataResponse() *CommandPartitionedTopicMetadataResponse {
	if m != nil {
		return m.PartitionMetadataResponse
	}
	return nil
}

func (m *BaseCommand) GetLookupTopic() *CommandLookupTopic {
	if m != nil {
		return m.LookupTopic
	}
	return nil
}

func (m *BaseCommand) GetLookupTopicResponse() *CommandLookupTopicResponse {
	if m != nil {
		return m.LookupTopicResponse
	}
	return nil
}

func (m *BaseCommand) GetReachedEndOfTopic() *CommandReachedEndOfTopic {
	if m != nil {
		return m.ReachedEndOfTopic
	}
	return nil
}

func (m *BaseCommand) GetGetTopicsOfNamespace() *CommandGetTopicsOfNamespace {
	if m != nil {
		return m.GetTopicsOfNamespace
	}
	return nil
}

func (m *BaseCommand) GetGetTopicsOfNamespaceResponse() *CommandGetTopicsOfNamespaceResponse {
	if m != nil {
		return m.GetTopicsOfNamespaceResponse
	}
	return nil
}
