package storage

import (
	"context"
	"fmt"

	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/core"
)

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (core.Store, error) {
	switch cfg.Driver {
	case "", "badger":
		return OpenBadger(cfg.Path)
	case "redis":
		return OpenRedis(ctx, cfg.RedisAddr)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
