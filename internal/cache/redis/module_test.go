package redis

import (
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/meatmarket/internal/config"
)

func TestNewLocationCacheWithoutAddress(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cache := newLocationCache(cacheParams{
		Lifecycle: lc,
		Config:    &config.Config{},
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if _, ok := cache.(NoopCache); !ok {
		t.Fatalf("expected NoopCache, got %T", cache)
	}
}

func TestNewLocationCacheWithAddress(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cache := newLocationCache(cacheParams{
		Lifecycle: lc,
		Config:    &config.Config{RedisAddress: "127.0.0.1:6379"},
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if _, ok := cache.(*Cache); !ok {
		t.Fatalf("expected *Cache, got %T", cache)
	}

	lc.RequireStart()
	lc.RequireStop()
}
