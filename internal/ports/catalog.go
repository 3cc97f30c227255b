package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for loading the planning inputs from a data source.
// Implementations return fully joined entities; the planners never touch
// storage directly.
type TripCatalog interface {
	// Retrieve all candidate places with opening hours attached.
	ListPlaces(ctx context.Context) ([]domain.Place, error)
	// Retrieve all accommodation candidates.
	ListLodgings(ctx context.Context) ([]domain.Lodging, error)
	// Load the full transit timetable, indexed for trip lookup.
	LoadTransitSchedule(ctx context.Context) (*domain.TransitSchedule, error)
}
