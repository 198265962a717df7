package protocol

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// Frames are encoded as a big-endian uint32 total size (which excludes
// itself), followed by a big-endian uint32 command size and the marshaled
// BaseCommand. MESSAGE and SEND frames continue with a 2-byte magic number,
// a CRC32-C checksum, a big-endian uint32 metadata size, the marshaled
// MessageMetadata, and finally raw payload bytes through the frame end:
//
//	[totalSize][commandSize][BaseCommand]
//	    [0x0e01][checksum][metadataSize][MessageMetadata][payload]
//
// The checksum covers metadataSize through the end of the payload.
const (
	// FrameHeaderLength is the number of leading bytes which must be buffered
	// before a frame's extent can be determined.
	FrameHeaderLength = 8
	// MaxFrameSize bounds the encoded size of a frame, in bytes.
	MaxFrameSize = 5 * 1024 * 1024
	// MagicNumber precedes the checksum of frames which carry a payload.
	MagicNumber uint16 = 0x0e01

	magicLength    = 2
	checksumLength = 4
	sizeLength     = 4
)

var (
	// ErrIncompleteFrame is returned by Decode if fewer bytes are buffered
	// than the next frame requires. It's the only recoverable Decode error:
	// the caller retains buffered bytes and retries once more have arrived.
	ErrIncompleteFrame = errors.New("incomplete frame")
	// ErrUnknownCommand is returned by Decode if a well-formed frame carries
	// a command kind which a client doesn't expect to receive.
	ErrUnknownCommand = errors.New("unknown command type")
	// ErrBadMagicNumber is returned by Decode if a MESSAGE frame doesn't
	// carry MagicNumber ahead of its checksum.
	ErrBadMagicNumber = errors.New("invalid magic number")
	// ErrChecksumMismatch is returned by Decode if the computed CRC32-C of a
	// MESSAGE frame differs from its encoded checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrMalformedFrame is returned by Decode if a frame's sizes or content
	// are structurally invalid.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrFrameTooLarge is returned if a frame exceeds MaxFrameSize.
	ErrFrameTooLarge = errors.New("frame too large")

	crc32cTable = crc32.MakeTable(crc32.Castagnoli)
)

// EncodeCommand encodes a frame of the BaseCommand by appending into buffer
// |b|, which will be grown if needed and returned.
func EncodeCommand(cmd *BaseCommand, b []byte) ([]byte, error) {
	var cb, err = proto.Marshal(cmd)
	if err != nil {
		return b, errors.Wrap(err, "marshal BaseCommand")
	}
	var total = sizeLength + len(cb)

	if total+sizeLength > MaxFrameSize {
		return b, errors.WithMessagef(ErrFrameTooLarge, "%d bytes", total+sizeLength)
	}
	b = binary.BigEndian.AppendUint32(b, uint32(total))
	b = binary.BigEndian.AppendUint32(b, uint32(len(cb)))
	return append(b, cb...), nil
}

// EncodeMessage encodes a frame of the BaseCommand, MessageMetadata, and
// payload by appending into buffer |b|, which will be grown if needed and
// returned.
func EncodeMessage(cmd *BaseCommand, md *MessageMetadata, payload []byte, b []byte) ([]byte, error) {
	var cb, err = proto.Marshal(cmd)
	if err != nil {
		return b, errors.Wrap(err, "marshal BaseCommand")
	}
	mb, err := proto.Marshal(md)
	if err != nil {
		return b, errors.Wrap(err, "marshal MessageMetadata")
	}
	var total = sizeLength + len(cb) + magicLength + checksumLength +
		sizeLength + len(mb) + len(payload)

	if total+sizeLength > MaxFrameSize {
		return b, errors.WithMessagef(ErrFrameTooLarge, "%d bytes", total+sizeLength)
	}
	b = binary.BigEndian.AppendUint32(b, uint32(total))
	b = binary.BigEndian.AppendUint32(b, uint32(len(cb)))
	b = append(b, cb...)
	b = binary.BigEndian.AppendUint16(b, MagicNumber)

	// Reserve the checksum, which is filled once the covered range is written.
	var offset = len(b)
	b = append(b, 0, 0, 0, 0)

	b = binary.BigEndian.AppendUint32(b, uint32(len(mb)))
	b = append(b, mb...)
	b = append(b, payload...)

	binary.BigEndian.PutUint32(b[offset:], crc32.Checksum(b[offset+checksumLength:], crc32cTable))
	return b, nil
}

// Decode the next frame of buffer |b|. It returns the Decoded command and
// the number of bytes it consumed from |b|. If |b| holds only a partial
// frame, ErrIncompleteFrame is returned and zero bytes are consumed. Any
// other error is a protocol violation from which the stream can't recover.
//
// Returned commands don't reference |b|, which the caller may reuse.
func Decode(b []byte) (Decoded, int, error) {
	var cmd, rest, size, err = decodeBase(b)
	if err != nil {
		return nil, 0, err
	}

	if cmd.GetType() == CommandType_MESSAGE {
		if cmd.Message == nil {
			return nil, 0, errors.WithMessage(ErrMalformedFrame, "expected MESSAGE sub-command")
		}
		var md, payload, err = decodePayload(rest)
		if err != nil {
			return nil, 0, err
		}
		return &Message{CommandMessage: cmd.Message, Metadata: md, Payload: payload}, size, nil
	} else if len(rest) != 0 {
		return nil, 0, errors.WithMessagef(ErrMalformedFrame,
			"unexpected %d trailing bytes of %s", len(rest), cmd.GetType())
	}

	d, err := cmd.toDecoded()
	if err != nil {
		return nil, 0, err
	}
	return d, size, nil
}

// RawFrame is a frame decoded by DecodeRaw. Metadata and Payload are set
// only for MESSAGE and SEND frames.
type RawFrame struct {
	Command  *BaseCommand
	Metadata *MessageMetadata
	Payload  []byte
}

// DecodeRaw decodes the next frame of buffer |b| without mapping it to a
// Decoded kind, and thus accepts commands sent by clients as well as
// brokers. Its handling of sizes, checksums, and partial frames is that of
// Decode.
func DecodeRaw(b []byte) (*RawFrame, int, error) {
	var cmd, rest, size, err = decodeBase(b)
	if err != nil {
		return nil, 0, err
	}
	var frame = &RawFrame{Command: cmd}

	if cmd.GetType() == CommandType_MESSAGE || cmd.GetType() == CommandType_SEND {
		if frame.Metadata, frame.Payload, err = decodePayload(rest); err != nil {
			return nil, 0, err
		}
	} else if len(rest) != 0 {
		return nil, 0, errors.WithMessagef(ErrMalformedFrame,
			"unexpected %d trailing bytes of %s", len(rest), cmd.GetType())
	}
	return frame, size, nil
}

// decodeBase decodes the BaseCommand of the next frame of |b|, returning it
// with remaining bytes of the frame, and the total frame size.
func decodeBase(b []byte) (*BaseCommand, []byte, int, error) {
	if len(b) < FrameHeaderLength {
		return nil, nil, 0, ErrIncompleteFrame
	}
	var total = binary.BigEndian.Uint32(b[0:4])

	if total > MaxFrameSize-sizeLength {
		return nil, nil, 0, errors.WithMessagef(ErrFrameTooLarge, "%d bytes", int64(total)+sizeLength)
	} else if total < sizeLength {
		return nil, nil, 0, errors.WithMessagef(ErrMalformedFrame, "total size %d", total)
	}
	var size = int(total) + sizeLength

	if len(b) < size {
		return nil, nil, 0, ErrIncompleteFrame
	}
	var frame = b[sizeLength:size]
	var cmdSize = binary.BigEndian.Uint32(frame[0:4])

	if cmdSize > total-sizeLength {
		return nil, nil, 0, errors.WithMessagef(ErrMalformedFrame,
			"command size %d exceeds frame size %d", cmdSize, total)
	}
	var cmd = new(BaseCommand)
	if err := proto.Unmarshal(frame[sizeLength:sizeLength+cmdSize], cmd); err != nil {
		return nil, nil, 0, errors.WithMessage(ErrMalformedFrame, err.Error())
	}
	return cmd, frame[sizeLength+cmdSize:], size, nil
}

// decodePayload decodes the checksummed MessageMetadata and payload which
// follow the BaseCommand of MESSAGE and SEND frames.
func decodePayload(b []byte) (*MessageMetadata, []byte, error) {
	if len(b) < magicLength+checksumLength+sizeLength {
		return nil, nil, errors.WithMessagef(ErrMalformedFrame, "short message header (%d bytes)", len(b))
	}

	if magic := binary.BigEndian.Uint16(b[0:2]); magic != MagicNumber {
		return nil, nil, errors.WithMessagef(ErrBadMagicNumber, "%#04x", magic)
	}
	var expect = binary.BigEndian.Uint32(b[2:6])
	b = b[magicLength+checksumLength:]

	// Verify before parsing, so that any corruption of the covered range is
	// reported as a checksum failure.
	if actual := crc32.Checksum(b, crc32cTable); actual != expect {
		return nil, nil, errors.WithMessagef(ErrChecksumMismatch, "expected %#08x, computed %#08x", expect, actual)
	}

	var mdSize = binary.BigEndian.Uint32(b[0:4])
	if int64(mdSize) > int64(len(b)-sizeLength) {
		return nil, nil, errors.WithMessagef(ErrMalformedFrame,
			"metadata size %d exceeds remaining %d bytes", mdSize, len(b)-sizeLength)
	}
	var md = new(MessageMetadata)
	if err := proto.Unmarshal(b[sizeLength:sizeLength+mdSize], md); err != nil {
		return nil, nil, errors.WithMessage(ErrMalformedFrame, err.Error())
	}
	return md, append([]byte(nil), b[sizeLength+mdSize:]...), nil
}
