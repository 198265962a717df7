package connection

import (
	"encoding/binary"
	"io"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.quasar.dev/core/metrics"
	pb "go.quasar.dev/core/protocol"
)

// minRead is the minimum spare buffer capacity of a transport read.
const minRead = 512

// serveReads reads from the transport, decoding and dispatching each complete
// frame in order, until the transport reaches end-of-stream or fails, or a
// frame fails to decode.
func (c *Conn) serveReads() error {
	defer func() {
		if !c.handshake.IsResolved() {
			c.handshake.Resolve(nil, ErrConnectionClosed)
		}
	}()
	var (
		buf = make([]byte, 0, c.opts.ReadBufferSize)
		h   = dispatcher{c: c}
	)
	for {
		var n, readErr = c.transport.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]

		atomic.AddInt64(&c.bytesReceived, int64(n))
		metrics.BytesReceivedTotal.Add(float64(n))

		// Dispatch frames of the read, even if it also returned an error.
		var err error
		if buf, err = c.decodeFrames(buf, h); err != nil {
			c.lose(errors.WithMessage(err, "decoding frame"))
			return nil
		}

		if readErr == io.EOF {
			c.lose(errors.WithMessage(ErrConnectionClosed, "broker closed the connection"))
			return nil
		} else if readErr != nil {
			c.lose(errors.WithMessage(readErr, "read"))
			return nil
		}
		buf = reserve(buf, c.opts.ReadBufferSize)
	}
}

// decodeFrames decodes and dispatches each complete frame of |buf|, returning
// the remainder of |buf| which holds a partial frame.
func (c *Conn) decodeFrames(buf []byte, h pb.Handler) ([]byte, error) {
	for {
		var d, n, err = pb.Decode(buf)

		if err == pb.ErrIncompleteFrame {
			return buf, nil
		} else if err != nil {
			metrics.DecodeFailuresTotal.WithLabelValues(decodeFailureReason(err)).Inc()
			c.log.WithField("err", err).Error("failed to decode broker frame")
			return buf, err
		}

		atomic.StoreInt64(&c.lastReceived, time.Now().UnixNano())
		metrics.FramesReceivedTotal.WithLabelValues(d.Type().String()).Inc()

		d.Dispatch(h)
		buf = buf[n:]
	}
}

// reserve returns |buf| with spare capacity for a read of at least minRead
// bytes, and of at least the remainder of a partial frame held by |buf|.
// If |buf| must grow, it's re-allocated with at least |size| spare capacity.
func reserve(buf []byte, size int) []byte {
	var need = minRead

	if len(buf) >= 4 {
		var frameSize = int64(binary.BigEndian.Uint32(buf)) + 4
		if frameSize > pb.MaxFrameSize {
			frameSize = pb.MaxFrameSize
		}
		if rem := int(frameSize) - len(buf); rem > need {
			need = rem
		}
	}
	if cap(buf)-len(buf) >= need {
		return buf
	}
	if need < size {
		need = size
	}
	var next = make([]byte, len(buf), len(buf)+need)
	copy(next, buf)
	return next
}

func decodeFailureReason(err error) string {
	switch errors.Cause(err) {
	case pb.ErrChecksumMismatch:
		return "checksum"
	case pb.ErrBadMagicNumber:
		return "magic"
	case pb.ErrUnknownCommand:
		return "unknown_command"
	case pb.ErrFrameTooLarge:
		return "too_large"
	default:
		return "malformed"
	}
}
