package telemetry

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the run's Prometheus registry over `/metrics` and a
// liveness probe over `/healthz` for as long as a search is running
// (SPEC_FULL.md §5/§9), activated by the CLI's `-serve-metrics` flag.
// Grounded on the teacher's use of gorilla/mux for route registration
// (internal/api in the pack) rather than bare net/http muxing.
type Server struct {
	httpServer *http.Server
}

func NewServer(addr string, reg *prometheus.Registry) *Server {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &Server{httpServer: &http.Server{Addr: addr, Handler: router}}
}

// Start runs the server on its own goroutine; errors other than a clean
// shutdown are logged, not fatal, since a search run's correctness never
// depends on telemetry being reachable.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("telemetry server stopped", "err", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
