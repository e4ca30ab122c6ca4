package diagnostics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	writeTimeout  = 10 * time.Second
	readTimeout   = 5 * time.Second
	healthTimeout = 2 * time.Second
)

// pinger reports whether the database is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Server serves /metrics, /health and /debug/pprof on a port separate from the API.
type Server struct {
	httpServer *http.Server
}

func NewServer(port int, db pinger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort("0.0.0.0", strconv.Itoa(port)),
			Handler:      newRouter(db),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}
}

func newRouter(db pinger) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", health(db))
	router.Mount("/debug", middleware.Profiler())

	return router
}

func health(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		status, body := http.StatusOK, healthResponse{Status: "ok"}
		if err := db.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()}
		}

		if err := respond.JSON(w, status, body); err != nil {
			slog.Error("Error sending health response", "error", err)
		}
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	slog.Info("Diagnostics server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
