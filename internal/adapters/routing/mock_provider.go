package routing

import (
	"context"
	"fmt"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type MockLeg struct {
	From, To domain.Coordinates
	Profile  ports.Profile
	Meters   int
	Seconds  int
}

// MockRouteProvider answers GetRoute from a fixed leg table and fails on
// anything it was not primed with.
type MockRouteProvider struct {
	m map[string]ports.RouteResult
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(legs))
	for _, l := range legs {
		m[mockKey(l.From, l.To, l.Profile)] = ports.RouteResult{DistanceMeters: l.Meters, DurationSeconds: l.Seconds}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinates, profile ports.Profile) (ports.RouteResult, error) {
	r, ok := p.m[mockKey(origin, destination, profile)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing leg %s -> %s profile=%s", CoordKey(origin), CoordKey(destination), profile)
	}

	return r, nil
}

func mockKey(from, to domain.Coordinates, profile ports.Profile) string {
	return CoordKey(from) + "|" + CoordKey(to) + "|" + string(profile)
}
