package server

import (
	"context"
	"fmt"

	"github.com/nfrund/regdesk/internal/app"
	"github.com/nfrund/regdesk/internal/config"
)

// Run builds the application from cfg and serves until ctx ends or the
// process is signalled. With applySchema the store's schema is brought up
// to date before the listener opens.
func Run(ctx context.Context, cfg *config.Config, applySchema bool) error {
	s, err := New(app.NewContainer(cfg, nil))
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	if applySchema {
		if err := s.Store.ApplySchema(ctx); err != nil {
			_ = s.Store.Close(ctx)
			return err
		}
	}
	s.RegisterRoutes()
	return s.Start(ctx)
}
