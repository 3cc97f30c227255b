package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Routing profile understood by the road router.
type Profile string

const (
	ProfileDriving Profile = "driving"
	ProfileWalking Profile = "foot"
)

// Routed distance and travel duration between two coordinates.
type RouteResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving routed distance and duration between coordinates.
type RouteProvider interface {
	// Return routed distance and estimated duration between two points.
	GetRoute(ctx context.Context, origin domain.Coordinates, destination domain.Coordinates, profile Profile) (RouteResult, error)
}
