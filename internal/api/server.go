package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server wraps the HTTP server hosting the probe API
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// NewServer creates a server listening on address
func NewServer(address string, handler http.Handler, logger zerolog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("probe server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("probe server shutting down")
	return s.httpServer.Shutdown(ctx)
}
