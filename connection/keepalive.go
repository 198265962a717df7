package connection

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// serveKeepAlive pings the broker each KeepAliveInterval, and loses the Conn
// if no frame of any kind has been received for two intervals. A ping is
// skipped if a write is already in progress, so that a stalled transport
// doesn't also stall detection of it.
func (c *Conn) serveKeepAlive() error {
	var interval = c.opts.KeepAliveInterval

	c.lifecycleDone.WaitWithPeriodicTask(interval, func() {
		var since = time.Since(time.Unix(0, atomic.LoadInt64(&c.lastReceived)))

		if since > 2*interval {
			c.lose(errors.WithMessagef(ErrKeepAliveTimeout, "no frame received for %s", since.Round(time.Millisecond)))
		} else {
			c.trySend(pingFrame)
		}
	})
	return nil
}
