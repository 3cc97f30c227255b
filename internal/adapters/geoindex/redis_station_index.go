package geoindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/domain"
)

// RedisStationIndex keeps station positions in a Redis geo set so several
// planner instances can share one loaded timetable index. Station records
// themselves stay in memory; Redis only resolves which members are near.
type RedisStationIndex struct {
	client *redis.Client
	key    string
	byID   map[string]domain.TransitStation
}

func NewRedisStationIndex(client *redis.Client, key string) *RedisStationIndex {
	return &RedisStationIndex{
		client: client,
		key:    key,
		byID:   make(map[string]domain.TransitStation),
	}
}

// Load stores every station position under the index key using GEOADD.
func (r *RedisStationIndex) Load(ctx context.Context, stations []domain.TransitStation) error {
	if r.client == nil {
		return errors.New("station index: redis client is nil")
	}

	if len(stations) == 0 {
		return nil
	}

	locs := make([]*redis.GeoLocation, 0, len(stations))
	for _, s := range stations {
		r.byID[s.ID] = s
		locs = append(locs, &redis.GeoLocation{
			Name:      s.ID,
			Longitude: s.Coord.Lon,
			Latitude:  s.Coord.Lat,
		})
	}

	if _, err := r.client.GeoAdd(ctx, r.key, locs...).Result(); err != nil {
		return fmt.Errorf("load station index: geoadd %d stations: %w", len(stations), err)
	}

	return nil
}

// Nearby returns up to limit stations within radiusMeters of center,
// nearest first, using GEORADIUS.
func (r *RedisStationIndex) Nearby(ctx context.Context, center domain.Coordinates, radiusMeters float64, limit int) ([]domain.TransitStation, error) {
	if r.client == nil {
		return nil, errors.New("station index: redis client is nil")
	}

	results, err := r.client.GeoRadius(ctx, r.key, center.Lon, center.Lat, &redis.GeoRadiusQuery{
		Radius: radiusMeters,
		Unit:   "m",
		Count:  limit,
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("station index: georadius: %w", err)
	}

	out := make([]domain.TransitStation, 0, len(results))
	for _, loc := range results {
		s, ok := r.byID[loc.Name]
		if !ok {
			return nil, fmt.Errorf("station index: unknown member %q in geo set", loc.Name)
		}
		out = append(out, s)
	}

	return out, nil
}
