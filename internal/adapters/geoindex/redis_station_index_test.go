package geoindex

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
)

func redisIndex(t *testing.T) (*RedisStationIndex, *redis.Client) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStationIndex(client, "test:stations"), client
}

func TestRedisStationIndexNearby(t *testing.T) {
	idx, _ := redisIndex(t)
	require.NoError(t, idx.Load(context.Background(), indexStations()))

	got, err := idx.Nearby(context.Background(), domain.Coordinates{Lon: 0, Lat: 0.001}, 1500, 10)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "S1", got[0].ID)
	assert.Equal(t, "S2", got[1].ID)
	// Full station records come back, not just member names.
	assert.Equal(t, "Airport", got[0].Name)
	assert.Equal(t, "R1", got[0].RouteID)
}

func TestRedisStationIndexLimit(t *testing.T) {
	idx, _ := redisIndex(t)
	require.NoError(t, idx.Load(context.Background(), indexStations()))

	got, err := idx.Nearby(context.Background(), domain.Coordinates{Lon: 0, Lat: 0}, 5000, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "S1", got[0].ID)
}

func TestRedisStationIndexLoadEmpty(t *testing.T) {
	idx, _ := redisIndex(t)
	require.NoError(t, idx.Load(context.Background(), nil))

	got, err := idx.Nearby(context.Background(), domain.Coordinates{}, 1500, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStationIndexUnknownMember(t *testing.T) {
	idx, client := redisIndex(t)
	require.NoError(t, idx.Load(context.Background(), indexStations()))

	// A member written outside Load has no station record.
	_, err := client.GeoAdd(context.Background(), "test:stations", &redis.GeoLocation{
		Name: "ghost", Longitude: 0, Latitude: 0,
	}).Result()
	require.NoError(t, err)

	_, err = idx.Nearby(context.Background(), domain.Coordinates{Lon: 0, Lat: 0}, 1500, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown member")
}

func TestRedisStationIndexNilClient(t *testing.T) {
	idx := NewRedisStationIndex(nil, "test:stations")

	require.Error(t, idx.Load(context.Background(), indexStations()))
	_, err := idx.Nearby(context.Background(), domain.Coordinates{}, 1500, 10)
	require.Error(t, err)
}
