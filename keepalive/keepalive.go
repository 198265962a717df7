// Package keepalive dials and accepts TCP connections having TCP keep-alive
// enabled, so that connections to vanished peers are eventually reaped by
// the kernel even if no protocol-level keep-alive is in use.
package keepalive

import (
	"context"
	"net"
	"time"
)

// Dialer of broker connections. Its timeouts match those of
// http.DefaultTransport.
var Dialer = &net.Dialer{
	Timeout:   30 * time.Second,
	KeepAlive: 30 * time.Second,
}

// DialerFunc dials TCP |addr| with |ctx| using Dialer.
func DialerFunc(ctx context.Context, addr string) (net.Conn, error) {
	return Dialer.DialContext(ctx, "tcp", addr)
}

// AcceptPeriod is the TCP keep-alive period of connections accepted by
// a TCPListener.
const AcceptPeriod = 3 * time.Minute

// TCPListener enables TCP keep-alive on each accepted connection.
type TCPListener struct {
	*net.TCPListener
}

// Listen on the TCP |addr|, returning a TCPListener.
func Listen(addr string) (TCPListener, error) {
	var ln, err = net.Listen("tcp", addr)
	if err != nil {
		return TCPListener{}, err
	}
	return TCPListener{TCPListener: ln.(*net.TCPListener)}, nil
}

// Accept the next connection, and enable its TCP keep-alive.
func (ln TCPListener) Accept() (net.Conn, error) {
	var tc, err = ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(AcceptPeriod)
	return tc, nil
}
