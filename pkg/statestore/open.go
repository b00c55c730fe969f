package statestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zaimara-studio/storefront/pkg/config"
)

// Open builds the Store selected by configuration.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.State.Driver {
	case config.StateDriverFile:
		return NewFile(cfg.State.Dir)
	case config.StateDriverRedis:
		return NewRedis(ctx, cfg.Redis)
	case config.StateDriverSQLite:
		dsn := cfg.State.DSN
		if dsn == "" {
			if err := os.MkdirAll(cfg.State.Dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating state directory: %w", err)
			}
			dsn = filepath.Join(cfg.State.Dir, "state.db")
		}
		return NewSQLite(dsn)
	default:
		return nil, fmt.Errorf("unknown state driver %q", cfg.State.Driver)
	}
}
