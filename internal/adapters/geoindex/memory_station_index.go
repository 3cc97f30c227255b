package geoindex

import (
	"context"
	"sort"

	"trip-planner-service/internal/domain"
)

// MemoryStationIndex answers proximity queries with a linear haversine
// scan over an in-memory station list. Timetables are small enough that
// this is the default index; the Redis variant exists for shared
// deployments.
type MemoryStationIndex struct {
	stations []domain.TransitStation
}

func NewMemoryStationIndex(stations []domain.TransitStation) *MemoryStationIndex {
	return &MemoryStationIndex{stations: stations}
}

// Nearby returns up to limit stations within radiusMeters of center,
// nearest first.
func (m *MemoryStationIndex) Nearby(ctx context.Context, center domain.Coordinates, radiusMeters float64, limit int) ([]domain.TransitStation, error) {
	type hit struct {
		station domain.TransitStation
		meters  float64
	}

	hits := make([]hit, 0, len(m.stations))
	for _, s := range m.stations {
		d := domain.HaversineMeters(center, s.Coord)
		if d > radiusMeters {
			continue
		}
		hits = append(hits, hit{station: s, meters: d})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].meters < hits[j].meters })

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]domain.TransitStation, len(hits))
	for i, h := range hits {
		out[i] = h.station
	}
	return out, nil
}
