package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/regdesk/internal/config"
	"github.com/nfrund/regdesk/internal/logging"
	"github.com/nfrund/regdesk/internal/server"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Invalid configuration", "event", "startup_failed", "error", err)
		os.Exit(1)
	}
	logging.New(cfg.LogFormat, cfg.LogLevel)

	if err := server.Run(context.Background(), cfg, true); err != nil {
		slog.Error("Server stopped with error", "event", "server_stop", "error", err)
		os.Exit(1)
	}
}
