package quasarctlcmd

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gogo/protobuf/proto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.quasar.dev/core/codecs"
	"go.quasar.dev/core/connection"
	mbp "go.quasar.dev/core/mainboilerplate"
	pb "go.quasar.dev/core/protocol"
)

type cmdConsume struct {
	Topic        string `long:"topic" short:"t" required:"true" description:"Topic to consume from"`
	Subscription string `long:"subscription" short:"s" description:"Subscription name. If empty, a unique name is generated"`
	Type         string `long:"type" choice:"exclusive" choice:"shared" choice:"failover" choice:"key-shared" default:"exclusive" description:"Subscription type"`
	Earliest     bool   `long:"earliest" description:"Start a new subscription from the earliest message (rather than the latest)"`
	Count        int    `long:"count" short:"n" description:"Exit after consuming this many messages. Zero consumes until signaled or the topic ends"`
	Permits      uint32 `long:"permits" default:"1000" description:"Number of messages the broker may deliver ahead of their consumption"`
	Output       string `long:"output" short:"o" default:"-" description:"Output file path. Use '-' for stdout"`
}

// consumerID of the single consumer which quasarctl creates.
const consumerID = 1

func init() {
	CommandRegistry.AddCommand("", "consume", "Consume messages of a topic", `
Consume messages of a --topic, writing each payload to the output followed by
a newline.

quasarctl subscribes to the topic under --subscription, creating it if it
doesn't exist. A new subscription begins with messages published after it's
created, unless --earliest is given. Each message is acknowledged once it's
been written.

Messages are consumed until --count messages have been written, the topic is
terminated and its final message has been written, or quasarctl is signaled
(Ctrl-C or SIGTERM).

Compressed payloads are decompressed before being written.
`, &cmdConsume{})
}

func (cmd *cmdConsume) Execute([]string) error {
	var ctx, conn = startup()
	defer conn.Close()

	var fout io.Writer = os.Stdout
	if cmd.Output != "-" {
		var f, err = files.Create(cmd.Output)
		mbp.Must(err, "failed to open output file")
		defer f.Close()
		fout = f
	}

	var stats, err = cmd.consume(ctx, conn, fout)
	mbp.Must(err, "failed to consume messages", "topic", cmd.Topic)

	log.WithFields(log.Fields{
		"topic":    cmd.Topic,
		"messages": humanize.Comma(int64(stats.messages)),
		"bytes":    humanize.Bytes(uint64(stats.bytes)),
	}).Info("consumed messages")

	return nil
}

type consumeStats struct {
	messages int
	bytes    int
}

// consume messages of the topic into |w|, until the command's --count is
// reached, the topic ends, or |ctx| is cancelled.
func (cmd *cmdConsume) consume(ctx context.Context, conn *connection.Conn, w io.Writer) (stats consumeStats, err error) {
	var permits = cmd.Permits
	if permits == 0 {
		permits = 1
	}
	var subscription = cmd.Subscription
	if subscription == "" {
		subscription = "quasarctl-" + uuid.New().String()
	}
	var req = &pb.CommandSubscribe{
		Topic:        proto.String(cmd.Topic),
		Subscription: proto.String(subscription),
		SubType:      subType(cmd.Type).Enum(),
		ConsumerId:   proto.Uint64(consumerID),
		Durable:      proto.Bool(true),
	}
	if cmd.Earliest {
		req.InitialPosition = pb.InitialPosition_Earliest.Enum()
	}
	var h = newConsumerHandle(permits)

	if err = conn.Subscribe(ctx, req, h); err != nil {
		return stats, errors.WithMessage(err, "subscribing")
	}
	log.WithField("subscription", subscription).Debug("subscribed")

	if err = conn.Flow(consumerID, permits); err != nil {
		return
	}
	var bw = bufio.NewWriter(w)
	var consumed uint32 // Since the last grant of permits.

	for cmd.Count == 0 || stats.messages < cmd.Count {
		var msg *pb.Message
		var done bool

		if msg, done, err = h.next(ctx); err != nil {
			return
		} else if done {
			break
		}

		var payload = msg.Payload
		if md := msg.Metadata; md.GetCompression() != pb.CompressionType_NONE {
			if payload, err = codecs.Decompress(md.GetCompression(), payload, int(md.GetUncompressedSize())); err != nil {
				return stats, errors.WithMessagef(err, "decompressing message %v", msg.MessageId)
			}
		}
		if _, err = bw.Write(payload); err == nil {
			err = bw.WriteByte('\n')
		}
		if err != nil {
			return stats, errors.WithMessage(err, "writing output")
		}
		if err = conn.Ack(consumerID, pb.AckType_Individual, msg.MessageId); err != nil {
			return
		}
		stats.messages++
		stats.bytes += len(payload)

		if consumed++; consumed < (permits+1)/2 {
			continue
		}
		if err = conn.Flow(consumerID, consumed); err != nil {
			return
		}
		consumed = 0
	}
	if err = bw.Flush(); err != nil {
		return stats, errors.WithMessage(err, "writing output")
	}
	if ctx.Err() == nil {
		err = conn.CloseConsumer(ctx, consumerID)
	}
	return
}

// consumerHandle is a connection.ConsumerHandle which queues delivered
// messages.
type consumerHandle struct {
	messages chan *pb.Message
	ended    chan struct{}
	closed   chan struct{}
}

func newConsumerHandle(permits uint32) *consumerHandle {
	return &consumerHandle{
		messages: make(chan *pb.Message, permits),
		ended:    make(chan struct{}),
		closed:   make(chan struct{}),
	}
}

// MessageReceived queues without blocking, as the broker delivers no more
// messages than have been permitted.
func (h *consumerHandle) MessageReceived(m *pb.Message) {
	select {
	case h.messages <- m:
	default:
		log.WithField("id", m.MessageId).Warn("dropped message delivered without a permit")
	}
}

func (h *consumerHandle) ReachedEndOfTopic() {
	select {
	case <-h.ended:
	default:
		close(h.ended)
	}
}

func (h *consumerHandle) ConnectionClosed() { close(h.closed) }

// next returns the next delivered message. It returns |done| if the topic
// has ended and all of its messages were returned, or if |ctx| is cancelled.
func (h *consumerHandle) next(ctx context.Context) (_ *pb.Message, done bool, _ error) {
	select {
	case m := <-h.messages:
		return m, false, nil
	default:
	}
	select {
	case m := <-h.messages:
		return m, false, nil
	case <-h.ended:
		// Messages precede the end-of-topic notification.
		select {
		case m := <-h.messages:
			return m, false, nil
		default:
			return nil, true, nil
		}
	case <-h.closed:
		return nil, false, errors.New("consumer was closed by the broker")
	case <-ctx.Done():
		return nil, true, nil
	}
}

func subType(name string) pb.SubType {
	switch name {
	case "shared":
		return pb.SubType_Shared
	case "failover":
		return pb.SubType_Failover
	case "key-shared":
		return pb.SubType_KeyShared
	default:
		return pb.SubType_Exclusive
	}
}
