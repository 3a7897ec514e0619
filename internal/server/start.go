package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Start serves on the configured address until ctx is cancelled, then shuts
// down gracefully. The auth view sweeper runs for the lifetime of ctx.
func (s *Server) Start(ctx context.Context) error {
	go s.Views.Run(ctx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		addr := s.Cfg.GetServerAddr()
		slog.Info("Starting server", "addr", addr, "base_url", s.Cfg.GetAppBaseURL())
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting requests, waits for in-flight ones and then shuts
// the modules down in reverse boot order.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown module %s: %w", m.Name(), err))
		}
	}
	return errors.Join(errs...)
}
