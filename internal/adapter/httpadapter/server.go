package httpadapter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/incident-data-etl/internal/domain"
	"github.com/couchcryptid/incident-data-etl/internal/pipeline"
)

// Pipeline is the part of pipeline.Pipeline the ops server drives.
type Pipeline interface {
	sharedobs.ReadinessChecker
	Refresh(ctx context.Context) (*pipeline.Snapshot, error)
	Store() *pipeline.Store
}

// Server exposes health, readiness, metrics and refresh control endpoints.
type Server struct {
	httpServer *http.Server
	pipeline   Pipeline
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /statusz and POST /refresh routes.
func NewServer(addr string, p Pipeline, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2 * time.Minute, // POST /refresh waits for the run
			IdleTimeout:  60 * time.Second,
		},
		pipeline: p,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(p))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /statusz", s.handleStatus)
	mux.HandleFunc("POST /refresh", s.handleRefresh)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// status summarizes a snapshot without its records.
type status struct {
	Published    bool                        `json:"published"`
	SnapshotID   string                      `json:"snapshot_id,omitempty"`
	GeneratedAt  *time.Time                  `json:"generated_at,omitempty"`
	RowsRead     int                         `json:"rows_read"`
	RowsRejected map[domain.RejectReason]int `json:"rows_rejected"`
	TotalCases   int                         `json:"total_cases"`
	Error        string                      `json:"error,omitempty"`
}

func statusOf(published bool, snap *pipeline.Snapshot) status {
	st := status{
		Published:    published,
		RowsRead:     snap.RowsRead,
		RowsRejected: snap.RowsRejected,
		TotalCases:   snap.Analytics.TotalCases,
	}
	if published {
		st.SnapshotID = snap.ID.String()
		at := snap.GeneratedAt
		st.GeneratedAt = &at
	}
	return st
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	store := s.pipeline.Store()
	sharedobs.WriteJSON(w, http.StatusOK, statusOf(store.Published(), store.Current()))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := s.pipeline.Refresh(r.Context())
	if err != nil {
		store := s.pipeline.Store()
		st := statusOf(store.Published(), store.Current())
		st.Error = err.Error()
		sharedobs.WriteJSON(w, refreshErrorCode(err), st)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, statusOf(true, snap))
}

func refreshErrorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrConfigurationMissing):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
