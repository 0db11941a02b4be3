package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLocationKey(t *testing.T) {
	if got := locationKey(42); got != "delivery:42:location" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNoopCache(t *testing.T) {
	cache := NoopCache{}
	if err := cache.Set(context.Background(), 1, Location{Latitude: 56.95, RecordedAt: time.Now()}); err != nil {
		t.Fatalf("set returned error: %v", err)
	}
	if _, err := cache.Get(context.Background(), 1); !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}
}

func TestCacheClose(t *testing.T) {
	cache := New("127.0.0.1:6379")
	if err := cache.Close(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
}
