package geoindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
)

func indexStations() []domain.TransitStation {
	return []domain.TransitStation{
		{ID: "S1", RouteID: "R1", Name: "Airport", Seq: 1, Coord: domain.Coordinates{Lon: 0, Lat: 0}},
		{ID: "S2", RouteID: "R1", Name: "Phu Vao", Seq: 2, Coord: domain.Coordinates{Lon: 0, Lat: 0.009}},
		{ID: "S3", RouteID: "R1", Name: "Center", Seq: 3, Coord: domain.Coordinates{Lon: 0, Lat: 0.018}},
	}
}

func TestMemoryStationIndexNearby(t *testing.T) {
	idx := NewMemoryStationIndex(indexStations())
	center := domain.Coordinates{Lon: 0, Lat: 0.001}

	got, err := idx.Nearby(context.Background(), center, 1500, 10)
	require.NoError(t, err)

	// S3 sits ~1.9km out, beyond the radius; the rest come nearest first.
	require.Len(t, got, 2)
	assert.Equal(t, "S1", got[0].ID)
	assert.Equal(t, "S2", got[1].ID)
}

func TestMemoryStationIndexLimit(t *testing.T) {
	idx := NewMemoryStationIndex(indexStations())

	got, err := idx.Nearby(context.Background(), domain.Coordinates{Lon: 0, Lat: 0}, 5000, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "S1", got[0].ID)
	assert.Equal(t, "S2", got[1].ID)
}

func TestMemoryStationIndexNoHits(t *testing.T) {
	idx := NewMemoryStationIndex(indexStations())

	got, err := idx.Nearby(context.Background(), domain.Coordinates{Lon: 10, Lat: 10}, 1500, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStationIndexEmpty(t *testing.T) {
	idx := NewMemoryStationIndex(nil)

	got, err := idx.Nearby(context.Background(), domain.Coordinates{}, 1500, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
