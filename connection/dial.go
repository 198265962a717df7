package connection

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"go.quasar.dev/core/keepalive"
	pb "go.quasar.dev/core/protocol"
)

// Dial the Options.Broker, which is a URL such as "pulsar://broker-1:6650",
// and complete the CONNECT handshake of the returned Conn.
func Dial(ctx context.Context, opts Options, connect *pb.CommandConnect) (*Conn, error) {
	var addr, err = BrokerAddr(opts.Broker)
	if err != nil {
		return nil, err
	}
	nc, err := keepalive.DialerFunc(ctx, addr)
	if err != nil {
		return nil, errors.WithMessagef(err, "dialing %s", opts.Broker)
	}

	var c = New(nc, opts)
	if err = c.Connect(ctx, connect); err != nil {
		c.Close()
		return nil, errors.WithMessagef(err, "connecting to %s", opts.Broker)
	}
	return c, nil
}

// BrokerAddr maps a broker URL to its "host:port" network address.
// A URL without a port uses DefaultBrokerPort.
func BrokerAddr(broker string) (string, error) {
	var u, err = url.Parse(broker)
	if err != nil {
		return "", errors.WithMessage(err, "parsing broker URL")
	} else if u.Scheme != "pulsar" {
		return "", errors.Errorf("unsupported broker URL scheme %q (expected pulsar://)", u.Scheme)
	} else if u.Host == "" {
		return "", errors.Errorf("broker URL %q has no host", broker)
	}
	if u.Port() == "" {
		return u.Host + ":" + DefaultBrokerPort, nil
	}
	return u.Host, nil
}

// DefaultBrokerPort is the port of brokers which don't specify one.
const DefaultBrokerPort = "6650"
