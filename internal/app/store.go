package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/regdesk/internal/config"
	"github.com/nfrund/regdesk/internal/database"
	"github.com/nfrund/regdesk/internal/database/memory"
	"github.com/nfrund/regdesk/internal/database/postgres"
	"github.com/nfrund/regdesk/internal/domain"
)

// Store is what the application needs from a backing store.
type Store interface {
	domain.UserRepository
	domain.AttendeeRegistrar
	ApplySchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// OpenStore connects to the store selected by DB_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverSurreal:
		db, err := database.NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return database.NewStore(db, cfg.DBQueryTimeout), nil
	case config.DriverPostgres:
		return postgres.NewStore(ctx, cfg.DatabaseURL, cfg.DBQueryTimeout)
	case config.DriverMemory:
		slog.Warn("Using the in-memory store; data is lost on restart", "event", "store_memory")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
