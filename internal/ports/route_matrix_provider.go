package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Optional extension of RouteProvider that supports all-pairs lookups.
type RouteMatrixProvider interface {
	RouteProvider
	// Return the full pairwise duration matrix over the given points, in
	// seconds. Row i column j is the travel time from point i to point j.
	GetRouteMatrix(ctx context.Context, points []domain.Coordinates, profile Profile) (*domain.TravelMatrix, error)
}
