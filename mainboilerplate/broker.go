package mainboilerplate

import (
	"context"
	"time"

	"github.com/gogo/protobuf/proto"
	log "github.com/sirupsen/logrus"
	"go.quasar.dev/core/connection"
	pb "go.quasar.dev/core/protocol"
)

// BrokerConfig configures the client connection of a program to a broker.
type BrokerConfig struct {
	Address    string        `long:"address" env:"ADDRESS" default:"pulsar://localhost:6650" description:"Broker service URL"`
	KeepAlive  time.Duration `long:"keep-alive" env:"KEEP_ALIVE" default:"30s" description:"Interval of keep-alive pings to the broker. Zero disables pings"`
	ReadBuffer int           `long:"read-buffer" env:"READ_BUFFER" default:"32768" description:"Minimum size of reads from the broker connection, in bytes"`
	Timeout    time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"Timeout of dialing and completing the broker handshake"`
	AuthMethod string        `long:"auth-method" env:"AUTH_METHOD" description:"Name of the authentication method presented to the broker"`
	AuthData   string        `long:"auth-data" env:"AUTH_DATA" description:"Authentication data presented to the broker" no-ini:"true"`
}

// Options returns connection.Options of the BrokerConfig. The optional
// |unregister| is called with the broker Address upon loss of the connection.
func (c *BrokerConfig) Options(unregister func(string)) connection.Options {
	return connection.Options{
		Broker:            c.Address,
		Unregister:        unregister,
		KeepAliveInterval: c.KeepAlive,
		ReadBufferSize:    c.ReadBuffer,
	}
}

// ConnectCommand returns the CommandConnect which a program presents to the broker.
func (c *BrokerConfig) ConnectCommand() *pb.CommandConnect {
	var cmd = &pb.CommandConnect{
		ClientVersion:   proto.String("quasar-" + Version),
		ProtocolVersion: proto.Int32(pb.ProtocolVersion),
	}
	if c.AuthMethod != "" {
		cmd.AuthMethodName = proto.String(c.AuthMethod)
	}
	if c.AuthData != "" {
		cmd.AuthData = []byte(c.AuthData)
	}
	return cmd
}

// MustDial dials the broker and completes its handshake.
func (c *BrokerConfig) MustDial(ctx context.Context) *connection.Conn {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var timer = time.AfterFunc(time.Second, func() {
		log.WithField("address", c.Address).Warn("dialing the broker is taking a while (is network okay?)")
	})
	defer timer.Stop()

	var conn, err = connection.Dial(ctx, c.Options(nil), c.ConnectCommand())
	Must(err, "failed to connect to broker", "address", c.Address)

	log.WithFields(log.Fields{
		"address":       c.Address,
		"serverVersion": conn.ServerVersion(),
	}).Debug("connected to broker")

	return conn
}
