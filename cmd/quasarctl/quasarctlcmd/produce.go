package quasarctlcmd

import (
	"bufio"
	"context"
	"io"
	"os"
	"sort"
	"strings"
	"time"

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

type cmdProduce struct {
	Topic       string            `long:"topic" short:"t" required:"true" description:"Topic to produce to"`
	Name        string            `long:"name" description:"Producer name. If empty, a unique name is generated"`
	Input       string            `long:"input" short:"i" default:"-" description:"Input file path. Use '-' for stdin"`
	Compression string            `long:"compression" short:"c" choice:"none" choice:"zlib" choice:"zstd" choice:"snappy" default:"none" description:"Compression codec of message payloads"`
	Key         string            `long:"key" short:"k" description:"Partition key of produced messages"`
	Properties  map[string]string `long:"property" short:"p" description:"Property of produced messages, as 'key:value'. May be repeated"`
	MaxPending  int               `long:"max-pending" default:"1000" description:"Maximum number of messages awaiting a broker receipt"`
}

// producerID of the single producer which quasarctl creates.
const producerID = 1

func init() {
	CommandRegistry.AddCommand("", "produce", "Produce messages to a topic", `
Produce each line of the input as a message of a --topic.

Lines are read from the --input file (or stdin) until EOF. Each line, without
its trailing newline, becomes the payload of one message. Messages are sent
without waiting for each to be persisted, up to --max-pending messages at a
time. quasarctl exits once every message has been acknowledged by the broker.

If --name is given and the broker has persisted messages of a prior producer
of that name, sequence numbers continue from the last persisted message.

Examples:

# Produce three messages having a "source" property, compressed with zstd:
quasarctl produce --topic persistent://public/default/my-topic \
	--compression zstd --property source:example << EOF
{"Msg": "message 1"}
{"Msg": "message 2"}
{"Msg": "message 3"}
EOF
`, &cmdProduce{})
}

func (cmd *cmdProduce) Execute([]string) error {
	var ctx, conn = startup()
	defer conn.Close()

	var fin io.Reader = os.Stdin
	if cmd.Input != "-" {
		var f, err = files.Open(cmd.Input)
		mbp.Must(err, "failed to open input file")
		defer f.Close()
		fin = f
	}

	var stats, err = cmd.produce(ctx, conn, fin)
	mbp.Must(err, "failed to produce messages", "topic", cmd.Topic)

	log.WithFields(log.Fields{
		"topic":    cmd.Topic,
		"messages": humanize.Comma(int64(stats.messages)),
		"bytes":    humanize.Bytes(uint64(stats.bytes)),
	}).Info("produced messages")

	return nil
}

type produceStats struct {
	messages int
	bytes    int
}

// produce a message of each line of |input|, and wait for the broker to
// acknowledge all of them.
func (cmd *cmdProduce) produce(ctx context.Context, conn *connection.Conn, input io.Reader) (stats produceStats, err error) {
	var codec = compressionType(cmd.Compression)
	var properties = keyValues(cmd.Properties)
	var maxPending = cmd.MaxPending

	if maxPending <= 0 {
		maxPending = 1
	}
	var name = cmd.Name
	if name == "" {
		name = "quasarctl-" + uuid.New().String()
	}
	var h = newProducerHandle(maxPending)

	res, err := conn.CreateProducer(ctx, &pb.CommandProducer{
		Topic:        proto.String(cmd.Topic),
		ProducerId:   proto.Uint64(producerID),
		ProducerName: proto.String(name),
	}, h)
	if err != nil {
		return stats, errors.WithMessage(err, "creating producer")
	}

	log.WithFields(log.Fields{
		"name":           res.ProducerName,
		"lastSequenceID": res.LastSequenceID,
	}).Debug("created producer")

	var sequenceID = uint64(res.LastSequenceID + 1)
	var pending int

	var scanner = bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), pb.MaxFrameSize)

	for scanner.Scan() {
		for ; pending >= maxPending; pending-- {
			if err = h.await(ctx); err != nil {
				return
			}
		}
		var payload = scanner.Bytes()
		var md = &pb.MessageMetadata{
			ProducerName: proto.String(res.ProducerName),
			SequenceId:   proto.Uint64(sequenceID),
			PublishTime:  proto.Uint64(uint64(time.Now().UnixMilli())),
			Properties:   properties,
		}
		if cmd.Key != "" {
			md.PartitionKey = proto.String(cmd.Key)
		}
		stats.bytes += len(payload)

		if codec != pb.CompressionType_NONE {
			md.Compression = codec.Enum()
			md.UncompressedSize = proto.Uint32(uint32(len(payload)))

			if payload, err = codecs.Compress(codec, payload); err != nil {
				return
			}
		}
		if err = conn.SendMessage(producerID, sequenceID, md, payload); err != nil {
			return stats, errors.WithMessagef(err, "sending message %d", sequenceID)
		}
		sequenceID++
		pending++
		stats.messages++
	}
	if err = scanner.Err(); err != nil {
		return stats, errors.WithMessage(err, "reading input")
	}

	for ; pending != 0; pending-- {
		if err = h.await(ctx); err != nil {
			return
		}
	}
	err = conn.CloseProducer(ctx, producerID)
	return
}

// producerHandle is a connection.ProducerHandle which queues the outcomes of
// sent messages.
type producerHandle struct {
	outcomes chan error
	closed   chan struct{}
}

func newProducerHandle(maxPending int) *producerHandle {
	return &producerHandle{
		outcomes: make(chan error, maxPending),
		closed:   make(chan struct{}),
	}
}

func (h *producerHandle) ReceivedSendReceipt(*pb.CommandSendReceipt) { h.outcome(nil) }

func (h *producerHandle) ReceivedSendError(m *pb.CommandSendError) {
	h.outcome(errors.Errorf("message %d: %s: %s", m.GetSequenceId(), m.GetError(), m.GetMessage()))
}

func (h *producerHandle) ConnectionClosed() { close(h.closed) }

// outcome queues without blocking, as the sender never has more than
// maxPending messages outstanding.
func (h *producerHandle) outcome(err error) {
	select {
	case h.outcomes <- err:
	default:
		log.WithField("err", err).Warn("dropped outcome of an unexpected message")
	}
}

// await the next outcome of a sent message.
func (h *producerHandle) await(ctx context.Context) error {
	select {
	case err := <-h.outcomes:
		return err
	default:
	}
	select {
	case err := <-h.outcomes:
		return err
	case <-h.closed:
		return errors.New("producer was closed before all messages were acknowledged")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func compressionType(name string) pb.CompressionType {
	return pb.CompressionType(pb.CompressionType_value[strings.ToUpper(name)])
}

// keyValues returns the properties ordered on key.
func keyValues(m map[string]string) []*pb.KeyValue {
	var out []*pb.KeyValue
	for k, v := range m {
		out = append(out, &pb.KeyValue{Key: proto.String(k), Value: proto.String(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetKey() < out[j].GetKey() })
	return out
}
