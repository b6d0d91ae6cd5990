// Package server provides the HTTP API for Huella.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/huella/internal/analyzer"
	"github.com/hyperjump/huella/internal/config"
	"github.com/hyperjump/huella/internal/metrics"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// Server is the HTTP server for the Huella API.
type Server struct {
	service atomic.Pointer[analyzer.Service]
	metrics *metrics.Metrics
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server answering with svc. m may be nil, in which case
// /metrics is not served.
func NewServer(svc *analyzer.Service, m *metrics.Metrics, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{metrics: m, config: cfg, logger: logger}
	s.service.Store(svc)
	s.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// SetService swaps the service used by subsequent requests. In-flight
// requests finish on the previous one.
func (s *Server) SetService(svc *analyzer.Service) {
	s.service.Store(svc)
}

// Service returns the service currently answering requests.
func (s *Server) Service() *analyzer.Service {
	return s.service.Load()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	timeout := time.Duration(s.config.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultRequestTimeout) * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/compare", s.handleCompare)
		r.Post("/profile", s.handleProfile)
		r.Get("/corpus", s.handleCorpus)
		r.Get("/corpus/search", s.handleCorpusSearch)
	})
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	return r
}

// Start starts the HTTP server and blocks until it stops. A graceful Stop
// makes Start return nil, even when it comes first.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
