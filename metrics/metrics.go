package metrics

import "github.com/prometheus/client_golang/prometheus"

// Keys for quasar metrics.
const (
	Fail = "fail"
	Ok   = "ok"
)

// Collectors for connection.Conn metrics.
var (
	ConnectionsOpen = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quasar_connections_open",
		Help: "Number of broker connections which are currently open.",
	})
	ConnectionsClosedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quasar_connections_closed_total",
		Help: "Cumulative number of closed broker connections, by outcome.",
	}, []string{"status"})
	FramesReceivedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quasar_connection_frames_received_total",
		Help: "Cumulative number of decoded frames, by command type.",
	}, []string{"command"})
	BytesReceivedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quasar_connection_bytes_received_total",
		Help: "Cumulative number of bytes read from broker connections.",
	})
	FramesSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quasar_connection_frames_sent_total",
		Help: "Cumulative number of written frames, by outcome.",
	}, []string{"status"})
	BytesSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quasar_connection_bytes_sent_total",
		Help: "Cumulative number of bytes written to broker connections.",
	})
	DecodeFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quasar_connection_decode_failures_total",
		Help: "Cumulative number of fatal frame decoding errors, by reason.",
	}, []string{"reason"})
	UnroutableTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quasar_connection_unroutable_total",
		Help: "Cumulative number of inbound commands referencing an unknown request, producer, or consumer.",
	}, []string{"command"})
	PendingRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quasar_connection_pending_requests",
		Help: "Number of requests awaiting a broker response.",
	})
	RequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quasar_connection_request_duration_seconds",
		Help:    "Duration of broker requests, from write to response, by outcome.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 9),
	}, []string{"status"})
)

// Collectors returns the collectors of this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ConnectionsOpen,
		ConnectionsClosedTotal,
		FramesReceivedTotal,
		BytesReceivedTotal,
		FramesSentTotal,
		BytesSentTotal,
		DecodeFailuresTotal,
		UnroutableTotal,
		PendingRequests,
		RequestDurationSeconds,
	}
}
