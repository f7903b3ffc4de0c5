// Package server provides the HTTP API for the kousei quality gate.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kousei/internal/config"
	"github.com/hyperjump/kousei/internal/extract"
	"github.com/hyperjump/kousei/internal/pipeline"
)

// Server is the HTTP server for the scoring API.
type Server struct {
	pipe      *pipeline.Pipeline
	extractor *extract.Extractor
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(pipe *pipeline.Pipeline, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		pipe:      pipe,
		extractor: extract.NewExtractor(),
		config:    cfg,
		logger:    logger,
	}
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/score", s.handleScore)
	r.Post("/api/v1/scrub", s.handleScrub)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
