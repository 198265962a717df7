package brokertest

import (
	"net"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	pb "go.quasar.dev/core/protocol"
)

// Peer is the broker end of a single in-memory connection, which a test
// drives directly: it reads the frames sent by the client under test, and
// writes the frames a broker would reply with. Writes block until the client
// reads them.
type Peer struct {
	t    require.TestingT
	conn net.Conn
	fr   frameReader
}

// NewPeer returns the client end of an in-memory connection, and the Peer
// which is its broker end.
func NewPeer(t require.TestingT) (net.Conn, *Peer) {
	var client, server = net.Pipe()
	return client, &Peer{t: t, conn: server, fr: frameReader{r: server}}
}

// Next reads and returns the next frame sent by the client.
func (p *Peer) Next() *pb.RawFrame {
	var f, err = p.fr.Next()
	require.NoError(p.t, err)
	return f
}

// Expect reads the next frame sent by the client, and requires that it has
// the given CommandType.
func (p *Peer) Expect(typ pb.CommandType) *pb.RawFrame {
	var f = p.Next()
	require.Equal(p.t, typ, f.Command.GetType())
	return f
}

// ExpectClosed requires that the client closes the connection without
// sending further frames.
func (p *Peer) ExpectClosed() {
	var f, err = p.fr.Next()
	require.Nil(p.t, f)
	require.Equal(p.t, errConnClosed, errors.Cause(err))
}

// Handshake expects a CONNECT from the client, and replies with CONNECTED.
func (p *Peer) Handshake() {
	p.Expect(pb.CommandType_CONNECT)
	p.Write(&pb.CommandConnected{
		ServerVersion:   proto.String(ServerVersion),
		ProtocolVersion: proto.Int32(13),
		MaxMessageSize:  proto.Int32(MaxMessageSize),
	})
}

// Write a frame of the sub-command to the client.
func (p *Peer) Write(sub interface{}) {
	var b, err = pb.EncodeCommand(pb.NewBaseCommand(sub), nil)
	require.NoError(p.t, err)
	p.WriteRaw(b)
}

// WriteMessage writes a MESSAGE frame to the client.
func (p *Peer) WriteMessage(cmd *pb.CommandMessage, md *pb.MessageMetadata, payload []byte) {
	var b, err = pb.EncodeMessage(pb.NewBaseCommand(cmd), md, payload, nil)
	require.NoError(p.t, err)
	p.WriteRaw(b)
}

// WriteRaw writes raw bytes to the client.
func (p *Peer) WriteRaw(b []byte) {
	var _, err = p.conn.Write(b)
	require.NoError(p.t, err)
}

// Close the broker end of the connection.
func (p *Peer) Close() { require.NoError(p.t, p.conn.Close()) }
