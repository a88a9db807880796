package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// Start runs the HTTP server until ctx is cancelled or the process gets
// SIGINT/SIGTERM, then drains in-flight requests and closes the store.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "event", "server_start", "addr", s.Cfg.AppAddr, "driver", s.Cfg.DBDriver)
		if err := s.E.Start(s.Cfg.AppAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return err
		}
	case <-ctx.Done():
	}

	slog.Info("Server shutting down", "event", "server_stop")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := s.E.Shutdown(shutdownCtx)
	if err := s.Store.Close(shutdownCtx); err != nil {
		slog.Error("Failed to close store", "event", "server_stop", "error", err)
	}
	return shutdownErr
}
