// Package ops exposes the operational HTTP surface: health and metrics.
package ops

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/slotcap/pkg/metrics"
)

// Server timeout constants.
const (
	readTimeout       = 5 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Register installs /healthz and /metrics on the mux.
func Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// NewServer builds an HTTP server serving the ops routes on addr.
func NewServer(ctx context.Context, addr string) *http.Server {
	mux := http.NewServeMux()
	Register(ctx, mux)
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
