package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Location is the last reported driver position for a delivery.
type Location struct {
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ErrNoLocation signals no live position is cached for the delivery.
var ErrNoLocation = errors.New("no live location")

// LocationCache keeps the latest driver position per delivery so tracking
// polls do not hit the tracking table.
type LocationCache interface {
	Set(ctx context.Context, deliveryID int64, loc Location) error
	Get(ctx context.Context, deliveryID int64) (*Location, error)
}

const locationTTL = 2 * time.Minute

// Cache implements LocationCache on Redis.
type Cache struct {
	client *goredis.Client
}

// New connects a location cache to the given Redis address.
func New(addr string) *Cache {
	return &Cache{client: goredis.NewClient(&goredis.Options{Addr: addr})}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

func locationKey(deliveryID int64) string {
	return fmt.Sprintf("delivery:%d:location", deliveryID)
}

// Set stores the position with a TTL so stale entries expire on their own.
func (c *Cache) Set(ctx context.Context, deliveryID int64, loc Location) error {
	payload, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, locationKey(deliveryID), payload, locationTTL).Err()
}

// Get returns the cached position or ErrNoLocation.
func (c *Cache) Get(ctx context.Context, deliveryID int64) (*Location, error) {
	raw, err := c.client.Get(ctx, locationKey(deliveryID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrNoLocation
		}
		return nil, err
	}
	var loc Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// NoopCache is used when no Redis address is configured; tracking reads fall
// back to the database.
type NoopCache struct{}

func (NoopCache) Set(context.Context, int64, Location) error { return nil }

func (NoopCache) Get(context.Context, int64) (*Location, error) { return nil, ErrNoLocation }
