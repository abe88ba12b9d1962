package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jefin3273/connect-crave/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*RestaurantCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRestaurantCache(client, time.Minute), mr
}

func TestRestaurantCache_Miss(t *testing.T) {
	cache, _ := newCache(t)

	snap, err := cache.Get(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRestaurantCache_SetGet(t *testing.T) {
	cache, mr := newCache(t)
	fetched := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	err := cache.Set(context.Background(), &RestaurantSnapshot{
		Restaurants: []entity.Restaurant{{ID: 1, Name: "Spice Route", Rating: 4.7, Tags: []string{"veg"}}},
		FetchedAt:   fetched,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(restaurantsKey))

	snap, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.True(t, fetched.Equal(snap.FetchedAt))
	require.Len(t, snap.Restaurants, 1)
	assert.Equal(t, "Spice Route", snap.Restaurants[0].Name)
	assert.Equal(t, []string{"veg"}, snap.Restaurants[0].Tags)

	mr.FastForward(2 * time.Minute)
	snap, err = cache.Get(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRestaurantCache_CorruptValue(t *testing.T) {
	cache, mr := newCache(t)
	require.NoError(t, mr.Set(restaurantsKey, "{not json"))

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}

func TestRestaurantCache_Invalidate(t *testing.T) {
	cache, mr := newCache(t)
	require.NoError(t, cache.Set(context.Background(), &RestaurantSnapshot{FetchedAt: time.Now()}))

	require.NoError(t, cache.Invalidate(context.Background()))
	assert.False(t, mr.Exists(restaurantsKey))
}
