// Package codecs implements the payload compression codecs of
// protocol.CompressionType.
package codecs

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
	pb "go.quasar.dev/core/protocol"
)

// Decompressor is a ReadCloser where Close closes and releases Decompressor
// state, but does not Close or affect the underlying Reader.
type Decompressor io.ReadCloser

// Compressor is a WriteCloser where Close closes and releases Compressor
// state, potentially flushing final content to the underlying Writer,
// but does not Close or otherwise affect the underlying Writer.
type Compressor io.WriteCloser

// NewCodecReader returns a Decompressor of the Reader encoded with CompressionType.
func NewCodecReader(r io.Reader, codec pb.CompressionType) (Decompressor, error) {
	switch codec {
	case pb.CompressionType_NONE:
		return ioutil.NopCloser(r), nil
	case pb.CompressionType_ZLIB:
		return zlib.NewReader(r)
	case pb.CompressionType_SNAPPY:
		return &snappyBlockReader{r: r}, nil
	case pb.CompressionType_ZSTD:
		return zstdNewReader(r)
	default:
		return nil, fmt.Errorf("unsupported codec %s", codec.String())
	}
}

// NewCodecWriter returns a Compressor wrapping the Writer encoding with CompressionType.
func NewCodecWriter(w io.Writer, codec pb.CompressionType) (Compressor, error) {
	switch codec {
	case pb.CompressionType_NONE:
		return nopWriteCloser{w}, nil
	case pb.CompressionType_ZLIB:
		return zlib.NewWriter(w), nil
	case pb.CompressionType_SNAPPY:
		return &snappyBlockWriter{w: w}, nil
	case pb.CompressionType_ZSTD:
		return zstdNewWriter(w)
	default:
		return nil, fmt.Errorf("unsupported codec %s", codec.String())
	}
}

// Compress the message |payload| with CompressionType.
func Compress(codec pb.CompressionType, payload []byte) ([]byte, error) {
	if codec == pb.CompressionType_NONE {
		return payload, nil
	}
	var buf bytes.Buffer

	if w, err := NewCodecWriter(&buf, codec); err != nil {
		return nil, err
	} else if _, err = w.Write(payload); err != nil {
		return nil, errors.WithMessagef(err, "compressing with %s", codec)
	} else if err = w.Close(); err != nil {
		return nil, errors.WithMessagef(err, "compressing with %s", codec)
	}
	return buf.Bytes(), nil
}

// Decompress a message |payload| encoded with CompressionType.
// |uncompressedSize| is from the message's metadata, and sizes the result.
// It's an error for the decompressed payload to differ from it.
func Decompress(codec pb.CompressionType, payload []byte, uncompressedSize int) ([]byte, error) {
	if codec == pb.CompressionType_NONE {
		return payload, nil
	}
	var r, err = NewCodecReader(bytes.NewReader(payload), codec)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out = bytes.NewBuffer(make([]byte, 0, uncompressedSize))
	if _, err = io.Copy(out, r); err != nil {
		return nil, errors.WithMessagef(err, "decompressing with %s", codec)
	} else if out.Len() != uncompressedSize {
		return nil, fmt.Errorf("decompressed %s payload has length %d, but expected %d",
			codec, out.Len(), uncompressedSize)
	}
	return out.Bytes(), nil
}

// snappyBlockWriter buffers written content, and encodes it as a single
// snappy block on Close. Brokers expect the block format, rather than the
// framed stream format of snappy.NewBufferedWriter.
type snappyBlockWriter struct {
	w   io.Writer
	buf []byte
}

func (s *snappyBlockWriter) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *snappyBlockWriter) Close() error {
	var _, err = s.w.Write(snappy.Encode(nil, s.buf))
	s.buf = s.buf[:0]
	return err
}

// snappyBlockReader reads all of its Reader as a single snappy block, and
// decodes it on first Read.
type snappyBlockReader struct {
	r       io.Reader
	decoded *bytes.Reader
}

func (s *snappyBlockReader) Read(p []byte) (int, error) {
	if s.decoded == nil {
		var block, err = ioutil.ReadAll(s.r)
		if err != nil {
			return 0, err
		}
		decoded, err := snappy.Decode(nil, block)
		if err != nil {
			return 0, err
		}
		s.decoded = bytes.NewReader(decoded)
	}
	return s.decoded.Read(p)
}

func (s *snappyBlockReader) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

var (
	zstdNewReader = func(io.Reader) (io.ReadCloser, error) {
		return nil, fmt.Errorf("ZSTD was not enabled at compile time")
	}
	zstdNewWriter = func(io.Writer) (io.WriteCloser, error) {
		return nil, fmt.Errorf("ZSTD was not enabled at compile time")
	}
)
