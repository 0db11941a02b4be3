package redis

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/meatmarket/internal/config"
)

// Module wires the live location cache. Without a Redis address it degrades
// to a no-op and tracking reads come from PostgreSQL.
var Module = fx.Options(
	fx.Provide(newLocationCache),
)

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newLocationCache(p cacheParams) LocationCache {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("redis address not set, live tracking cache disabled")
		return NoopCache{}
	}

	cache := New(p.Config.RedisAddress)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
	return cache
}
