// Package brokertest provides utilities for testing components requiring a
// live broker: a lightweight, in-process Broker which serves the protocol
// over loopback TCP or in-memory pipes, and a Peer which scripts the broker
// end of a single connection.
package brokertest

import (
	"context"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.quasar.dev/core/keepalive"
	pb "go.quasar.dev/core/protocol"
	"go.quasar.dev/core/task"
)

// ServerVersion reported by the Broker to connecting clients.
const ServerVersion = "brokertest"

// MaxMessageSize reported by the Broker to connecting clients.
const MaxMessageSize = 1 << 20

// Broker is a lightweight, embedded broker suitable for testing client
// functionality which depends on the availability of a broker. It holds
// topics and their messages in memory.
type Broker struct {
	// URL of the Broker, if it's listening.
	URL   string
	Tasks *task.Group

	mu     sync.Mutex
	topics map[string]*topic
	// Connections are woken upon a change to a topic, so that they may deliver
	// new messages to their consumers.
	wakes map[chan struct{}]struct{}
}

type topic struct {
	partitions uint32
	terminated bool
	messages   []message
	// Last sequence ID of each producer name.
	sequences map[string]uint64
}

type message struct {
	metadata *pb.MessageMetadata
	payload  []byte
}

// NewBroker returns a Broker without any topics. It's not yet listening.
func NewBroker() *Broker {
	return &Broker{
		Tasks:  task.NewGroup(context.Background()),
		topics: make(map[string]*topic),
		wakes:  make(map[chan struct{}]struct{}),
	}
}

// Listen on a loopback TCP port, and serve connections until the Broker's
// Tasks are cancelled. The Broker URL is set to the listening address.
func (b *Broker) Listen(t require.TestingT) {
	var ln, err = keepalive.Listen("127.0.0.1:0")
	require.NoError(t, err)
	b.URL = "pulsar://" + ln.Addr().String()

	b.Tasks.Queue("accept", func() error {
		for {
			var conn, err = ln.Accept()
			if b.Tasks.Context().Err() != nil {
				return nil
			} else if err != nil {
				return err
			}
			go b.serveConn(conn)
		}
	})
	b.Tasks.Queue("close listener", func() error {
		<-b.Tasks.Context().Done()
		return ln.Close()
	})
	b.Tasks.GoRun()
}

// Pipe returns the client end of an in-memory connection which is served by
// the Broker.
func (b *Broker) Pipe() net.Conn {
	var client, server = net.Pipe()
	go b.serveConn(server)
	return client
}

// CreateTopic creates the named topic with the given number of partitions.
// A partitioned topic also creates each of its partition topics, named
// "<topic>-partition-<N>".
func (b *Broker) CreateTopic(name string, partitions uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.topics[name] = &topic{partitions: partitions, sequences: make(map[string]uint64)}
	for p := uint32(0); p != partitions; p++ {
		b.topics[PartitionName(name, p)] = &topic{sequences: make(map[string]uint64)}
	}
}

// Terminate the named topic. Further messages may not be published to it,
// and consumers which have read all of its messages are notified.
func (b *Broker) Terminate(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.topics[name]; ok {
		t.terminated = true
	}
	b.wakeAll()
}

// Publish a message to the named topic, as if by a producer.
func (b *Broker) Publish(name string, md *pb.MessageMetadata, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var _, err = b.publish(name, md, payload)
	return err
}

// Messages returns the payloads of messages published to the named topic.
func (b *Broker) Messages(name string) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out [][]byte
	if t, ok := b.topics[name]; ok {
		for _, m := range t.messages {
			out = append(out, m.payload)
		}
	}
	return out
}

// PartitionName returns the name of partition |p| of the topic.
func PartitionName(name string, p uint32) string {
	return name + "-partition-" + strconv.FormatUint(uint64(p), 10)
}

func (b *Broker) publish(name string, md *pb.MessageMetadata, payload []byte) (int, error) {
	var t, ok = b.topics[name]
	if !ok {
		return 0, &brokerError{pb.ServerError_TopicNotFound, "topic not found: " + name}
	} else if t.terminated {
		return 0, &brokerError{pb.ServerError_TopicTerminatedError, "topic was terminated: " + name}
	}
	t.messages = append(t.messages, message{metadata: md, payload: payload})
	t.sequences[md.GetProducerName()] = md.GetSequenceId()

	b.wakeAll()
	return len(t.messages) - 1, nil
}

func (b *Broker) topicsOfNamespace(namespace string, mode pb.TopicsMode) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []string
	for name := range b.topics {
		var domain, rest, ok = splitTopic(name)
		if !ok || !strings.HasPrefix(rest, namespace+"/") || strings.Contains(name, "-partition-") {
			continue
		}
		switch {
		case mode == pb.TopicsMode_ALL,
			mode == pb.TopicsMode_PERSISTENT && domain == "persistent",
			mode == pb.TopicsMode_NON_PERSISTENT && domain == "non-persistent":
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// wakeAll connections. b.mu must be held.
func (b *Broker) wakeAll() {
	for ch := range b.wakes {
		select {
		case ch <- struct{}{}:
		default: // Already signaled.
		}
	}
}

func (b *Broker) addWake() chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	var ch = make(chan struct{}, 1)
	b.wakes[ch] = struct{}{}
	return ch
}

func (b *Broker) removeWake(ch chan struct{}) {
	b.mu.Lock()
	delete(b.wakes, ch)
	b.mu.Unlock()
}

// newProducerName returns a unique name for a producer which didn't provide one.
func newProducerName() string { return "brokertest-" + uuid.New().String() }

type brokerError struct {
	code    pb.ServerError
	message string
}

func (e *brokerError) Error() string { return e.code.String() + ": " + e.message }

func splitTopic(name string) (domain, rest string, ok bool) {
	var ind = strings.Index(name, "://")
	if ind == -1 {
		return "", "", false
	}
	return name[:ind], name[ind+3:], true
}

func logServeError(err error) {
	if errors.Cause(err) != errConnClosed {
		log.WithField("err", err).Warn("brokertest: connection failed")
	}
}
