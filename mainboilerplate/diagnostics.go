package mainboilerplate

import (
	"net/http"
	"net/http/pprof"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.quasar.dev/core/keepalive"
	"go.quasar.dev/core/metrics"
)

// DiagnosticsConfig configures pull-based application metrics, debugging and diagnostics.
type DiagnosticsConfig struct {
	Port string `long:"port" env:"PORT" description:"Port of the diagnostics HTTP server, which serves /debug/metrics, /debug/ready and /debug/pprof. Disabled if not set"`
}

// InitDiagnosticsAndRecover registers the connection metrics of this project
// and, if a Port is configured, serves them with other debugging services
// from a background goroutine. It also returns a closure which should be
// deferred, which recovers a panic and attempts to log a K8s termination
// message before re-panicking.
func InitDiagnosticsAndRecover(cfg DiagnosticsConfig) func() {
	registerCollectors.Do(func() {
		prometheus.MustRegister(metrics.Collectors()...)
	})

	if cfg.Port != "" {
		var ln, err = keepalive.Listen(":" + cfg.Port)
		Must(err, "failed to bind diagnostics port", "port", cfg.Port)

		go func() {
			var err = http.Serve(ln, DiagnosticsHandler())
			log.WithField("err", err).Warn("diagnostics server exited")
		}()
		log.WithField("addr", ln.Addr().String()).Info("serving diagnostics")
	}
	return recoverAndExit
}

// DiagnosticsHandler returns an http.Handler which serves:
//   - Prometheus metrics at /debug/metrics.
//   - A liveness check at /debug/ready.
//   - Runtime profiles at /debug/pprof/.
func DiagnosticsHandler() http.Handler {
	var mux = http.NewServeMux()

	mux.Handle("/debug/metrics", promhttp.Handler())
	mux.HandleFunc("/debug/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

var registerCollectors sync.Once
