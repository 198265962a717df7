package connection

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	pb "go.quasar.dev/core/protocol"
)

// LookupResult is the response to a LookupTopic request.
type LookupResult struct {
	RequestID           uint64 `yaml:"-"`
	BrokerServiceURL    string `yaml:"broker_service_url"`
	BrokerServiceURLTLS string `yaml:"broker_service_url_tls,omitempty"`
	// ProxyThroughServiceURL is set if the client should connect to the
	// broker through the service URL it's already connected to.
	ProxyThroughServiceURL bool `yaml:"proxy_through_service_url"`
	// Redirect is set if BrokerServiceURL is not the topic owner, but rather
	// another broker which must be asked in turn.
	Redirect      bool `yaml:"redirect"`
	Authoritative bool `yaml:"authoritative"`
}

// PartitionsResult is the response to a PartitionedMetadata request.
type PartitionsResult struct {
	RequestID uint64 `yaml:"-"`
	// Partitions of the topic, or zero if the topic isn't partitioned.
	Partitions uint32 `yaml:"partitions"`
}

// ProducerResult is the response to a CreateProducer request.
type ProducerResult struct {
	RequestID    uint64 `yaml:"-"`
	ProducerName string `yaml:"producer_name"`
	// LastSequenceID persisted by a prior producer of the same name, or -1.
	LastSequenceID int64 `yaml:"last_sequence_id"`
}

// TopicsResult is the response to a GetTopicsOfNamespace request.
type TopicsResult struct {
	RequestID uint64   `yaml:"-"`
	Topics    []string `yaml:"topics"`
}

// dispatcher is the protocol.Handler of decoded inbound commands.
// It's invoked only from the read loop.
type dispatcher struct{ c *Conn }

var _ pb.Handler = dispatcher{}

var pingFrame, pongFrame = mustEncode(new(pb.CommandPing)), mustEncode(new(pb.CommandPong))

func (d dispatcher) OnConnected(m *pb.CommandConnected) {
	if d.c.handshake.IsResolved() {
		d.c.log.WithField("serverVersion", m.GetServerVersion()).Warn("ignoring repeated CONNECTED")
		return
	}
	d.c.serverVersion = m.GetServerVersion()
	atomic.StoreInt32(&d.c.maxMessageSize, m.GetMaxMessageSize())

	d.c.log.WithFields(log.Fields{
		"serverVersion":   m.GetServerVersion(),
		"protocolVersion": m.GetProtocolVersion(),
	}).Debug("connected to broker")

	d.c.handshake.Resolve(d.c, nil)
}

func (d dispatcher) OnPartitionedMetadataResponse(m *pb.CommandPartitionedTopicMetadataResponse) {
	if m.GetResponse() == pb.PartitionedLookupType_Failed {
		d.c.resolveRequest(m.GetRequestId(), m.Type(), nil, &BrokerError{Code: m.GetError(), Message: m.GetMessage()})
	} else {
		d.c.resolveRequest(m.GetRequestId(), m.Type(), &PartitionsResult{
			RequestID:  m.GetRequestId(),
			Partitions: m.GetPartitions(),
		}, nil)
	}
}

func (d dispatcher) OnSendReceipt(m *pb.CommandSendReceipt) {
	if h := d.c.producer(m.GetProducerId(), false); h != nil {
		h.ReceivedSendReceipt(m)
	} else {
		d.c.unroutable(m.Type(), "producerID", m.GetProducerId())
	}
}

func (d dispatcher) OnSendError(m *pb.CommandSendError) {
	if h := d.c.producer(m.GetProducerId(), false); h != nil {
		h.ReceivedSendError(m)
	} else {
		d.c.unroutable(m.Type(), "producerID", m.GetProducerId())
	}
}

func (d dispatcher) OnMessage(m *pb.Message) {
	if h := d.c.consumer(m.GetConsumerId(), false); h != nil {
		h.MessageReceived(m)
	} else {
		d.c.unroutable(m.Type(), "consumerID", m.GetConsumerId())
	}
}

// OnPing queues a PONG rather than sending it, as a send may block on a
// stalled write and the read loop must keep reading.
func (d dispatcher) OnPing(*pb.CommandPing) { d.c.sendPong() }

// OnPong is a no-op: every inbound frame refreshes keep-alive liveness.
func (d dispatcher) OnPong(*pb.CommandPong) {}

func (d dispatcher) OnLookupResponse(m *pb.CommandLookupTopicResponse) {
	if m.GetResponse() == pb.LookupType_Failed {
		d.c.resolveRequest(m.GetRequestId(), m.Type(), nil, &BrokerError{Code: m.GetError(), Message: m.GetMessage()})
		return
	}
	d.c.resolveRequest(m.GetRequestId(), m.Type(), &LookupResult{
		RequestID:              m.GetRequestId(),
		BrokerServiceURL:       m.GetBrokerServiceUrl(),
		BrokerServiceURLTLS:    m.GetBrokerServiceUrlTls(),
		ProxyThroughServiceURL: m.GetProxyThroughServiceUrl(),
		Redirect:               m.GetResponse() == pb.LookupType_Redirect,
		Authoritative:          m.GetAuthoritative(),
	}, nil)
}

func (d dispatcher) OnProducerSuccess(m *pb.CommandProducerSuccess) {
	d.c.resolveRequest(m.GetRequestId(), m.Type(), &ProducerResult{
		RequestID:      m.GetRequestId(),
		ProducerName:   m.GetProducerName(),
		LastSequenceID: m.GetLastSequenceId(),
	}, nil)
}

func (d dispatcher) OnSuccess(m *pb.CommandSuccess) {
	d.c.resolveRequest(m.GetRequestId(), m.Type(), nil, nil)
}

func (d dispatcher) OnCloseProducer(m *pb.CommandCloseProducer) {
	if h := d.c.producer(m.GetProducerId(), true); h != nil {
		h.ConnectionClosed()
	} else {
		d.c.unroutable(m.Type(), "producerID", m.GetProducerId())
	}
}

func (d dispatcher) OnCloseConsumer(m *pb.CommandCloseConsumer) {
	if h := d.c.consumer(m.GetConsumerId(), true); h != nil {
		h.ConnectionClosed()
	} else {
		d.c.unroutable(m.Type(), "consumerID", m.GetConsumerId())
	}
}

func (d dispatcher) OnReachedEndOfTopic(m *pb.CommandReachedEndOfTopic) {
	if h := d.c.consumer(m.GetConsumerId(), false); h != nil {
		h.ReachedEndOfTopic()
	} else {
		d.c.unroutable(m.Type(), "consumerID", m.GetConsumerId())
	}
}

func (d dispatcher) OnTopicsOfNamespaceResponse(m *pb.CommandGetTopicsOfNamespaceResponse) {
	d.c.resolveRequest(m.GetRequestId(), m.Type(), &TopicsResult{
		RequestID: m.GetRequestId(),
		Topics:    m.GetTopics(),
	}, nil)
}

func (d dispatcher) OnError(m *pb.CommandError) {
	d.c.log.WithFields(log.Fields{
		"requestID": m.GetRequestId(),
		"error":     m.GetError().String(),
		"message":   m.GetMessage(),
	}).Warn("broker returned an error")

	d.c.resolveRequest(m.GetRequestId(), m.Type(), nil, &BrokerError{Code: m.GetError(), Message: m.GetMessage()})
}

func mustEncode(sub interface{}) []byte {
	var b, err = pb.EncodeCommand(pb.NewBaseCommand(sub), nil)
	if err != nil {
		panic(err)
	}
	return b
}
