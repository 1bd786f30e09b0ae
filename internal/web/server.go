// Package web serves the operational HTTP endpoints: Prometheus metrics,
// liveness and the monitor status.
package web

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/sumpwatch/internal/monitor"
)

// Server serves the ops endpoints over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *monitor.Tracker
}

// New creates a Server that reads state from tracker and exposes gatherer
// on /metrics. Access logs go to logger at info level.
func New(addr string, tracker *monitor.Tracker, gatherer prometheus.Gatherer, logger *logrus.Logger) *Server {
	s := &Server{tracker: tracker}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(gatherer, logger.WriterLevel(logrus.InfoLevel)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the root handler. Useful for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) routes(gatherer prometheus.Gatherer, accessLog io.Writer) http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/status.json", s.handleStatus).Methods(http.MethodGet)

	return handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(accessLog, r))
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(formatStatus(s.tracker.Snapshot()))
}
