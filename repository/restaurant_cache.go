package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jefin3273/connect-crave/entity"

	"github.com/redis/go-redis/v9"
)

const restaurantsKey = "restaurants:by-rating"

// RestaurantSnapshot is a cached copy of the directory listing.
type RestaurantSnapshot struct {
	Restaurants []entity.Restaurant `json:"restaurants"`
	FetchedAt   time.Time           `json:"fetchedAt"`
}

type RestaurantCache struct {
	Client *redis.Client
	TTL    time.Duration // how long redis keeps the key: fresh + stale window
}

func NewRestaurantCache(client *redis.Client, ttl time.Duration) *RestaurantCache {
	return &RestaurantCache{Client: client, TTL: ttl}
}

// Get returns nil, nil on a miss.
func (c *RestaurantCache) Get(ctx context.Context) (*RestaurantSnapshot, error) {
	raw, err := c.Client.Get(ctx, restaurantsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap RestaurantSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode restaurant snapshot: %w", err)
	}
	return &snap, nil
}

func (c *RestaurantCache) Set(ctx context.Context, snap *RestaurantSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, restaurantsKey, raw, c.TTL).Err()
}

func (c *RestaurantCache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, restaurantsKey).Err()
}
