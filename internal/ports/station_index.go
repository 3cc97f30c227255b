package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a proximity index over transit stations.
type StationIndex interface {
	// Return up to limit stations within radiusMeters of center, nearest
	// first. An empty result is not an error.
	Nearby(ctx context.Context, center domain.Coordinates, radiusMeters float64, limit int) ([]domain.TransitStation, error)
}
