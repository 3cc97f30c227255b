package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// TripOption is one scheduled ride between a boarding and an alighting
// station on the same trip.
type TripOption struct {
	Route     domain.TransitRoute
	Trip      domain.TransitTrip
	Board     domain.TransitStation
	Alight    domain.TransitStation
	Departure domain.ClockMinute
	Arrival   domain.ClockMinute
}

// RideMinutes returns the scheduled on-board time.
func (o TripOption) RideMinutes() int { return int(o.Arrival - o.Departure) }

// TransitPlan is a found station-to-station ride plus the walking access
// on both ends.
type TransitPlan struct {
	Option          TripOption
	WalkToMeters    int
	WalkToSeconds   int
	WalkFromMeters  int
	WalkFromSeconds int
	Summary         string
}

// TransitFinder searches a fixed timetable for rides between coordinates.
// The schedule is read-only after load; the finder holds no other state
// and is safe for concurrent use.
type TransitFinder struct {
	schedule *domain.TransitSchedule
	stations ports.StationIndex
	routes   ports.RouteProvider
	params   Params
}

// NewTransitFinder wires a finder over an indexed timetable. routeProvider
// may be nil; walking access then falls back to straight-line estimates.
func NewTransitFinder(schedule *domain.TransitSchedule, stations ports.StationIndex, routeProvider ports.RouteProvider, params Params) *TransitFinder {
	return &TransitFinder{
		schedule: schedule,
		stations: stations,
		routes:   routeProvider,
		params:   params,
	}
}

// NearbyStations returns up to limit stations within radiusMeters of the
// given point, nearest first.
func (f *TransitFinder) NearbyStations(ctx context.Context, center domain.Coordinates, radiusMeters float64, limit int) ([]domain.TransitStation, error) {
	stations, err := f.stations.Nearby(ctx, center, radiusMeters, limit)
	if err != nil {
		return nil, fmt.Errorf("find nearby stations: %w", err)
	}
	return stations, nil
}

// DirectTrips lists the scheduled trips that serve both stations without a
// transfer: same route, same direction, and the boarding stop strictly
// before the alighting stop. Results are ascending by departure from the
// boarding station, capped to the configured option limit.
func (f *TransitFinder) DirectTrips(start, end domain.TransitStation, after domain.ClockMinute, weekday time.Weekday, requireLowFloor bool) []TripOption {
	if start.RouteID != end.RouteID || start.Direction != end.Direction || start.Seq >= end.Seq {
		return nil
	}

	route, ok := f.schedule.RouteByID(start.RouteID)
	if !ok {
		return nil
	}

	options := []TripOption{}
	for _, trip := range f.schedule.TripsByRoute(start.RouteID) {
		if trip.Direction != start.Direction {
			continue
		}
		if !trip.OperatesOn(weekday) {
			continue
		}
		if requireLowFloor && !trip.LowFloor {
			continue
		}

		boardStop, ok := f.schedule.StopAt(trip.ID, start.ID)
		if !ok {
			continue
		}
		alightStop, ok := f.schedule.StopAt(trip.ID, end.ID)
		if !ok {
			continue
		}
		if boardStop.Depart < after {
			continue
		}

		options = append(options, TripOption{
			Route:     route,
			Trip:      trip,
			Board:     start,
			Alight:    end,
			Departure: boardStop.Depart,
			Arrival:   alightStop.Arrive,
		})
	}

	sort.Slice(options, func(i, j int) bool { return options[i].Departure < options[j].Departure })
	if len(options) > f.params.MaxTripOptions {
		options = options[:f.params.MaxTripOptions]
	}
	return options
}

// TransferTrips would search rides requiring one or more transfers.
// TODO: transfer search; only direct trips are offered for now.
func (f *TransitFinder) TransferTrips(start, end domain.TransitStation, after domain.ClockMinute, weekday time.Weekday) []TripOption {
	return nil
}

// PlanRoute finds a ride between two coordinates: the nearest stations on
// both ends are paired up and the first pair with a direct trip wins.
// Walking access to and from the stations is measured with the routing
// service when available, straight-line otherwise. Returns
// ErrNoTransitRoute when no station pair has a qualifying trip.
func (f *TransitFinder) PlanRoute(ctx context.Context, from, to domain.Coordinates, departAt domain.ClockMinute, weekday time.Weekday, pref domain.TransportPreference) (_ *TransitPlan, err error) {
	defer obs.Time(ctx, "transit.plan_route")(&err)

	radius := float64(pref.MaxWalkingMeters)
	startStations, err := f.NearbyStations(ctx, from, radius, f.params.StationSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("plan transit route: %w", err)
	}
	endStations, err := f.NearbyStations(ctx, to, radius, f.params.StationSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("plan transit route: %w", err)
	}
	if len(startStations) == 0 || len(endStations) == 0 {
		return nil, fmt.Errorf("plan transit route: no stations in reach: %w", ErrNoTransitRoute)
	}

	for _, s := range startStations {
		for _, e := range endStations {
			options := f.DirectTrips(s, e, departAt, weekday, pref.RequireLowFloor)
			if len(options) == 0 {
				continue
			}

			// First found wins; station pairs are already nearest-first.
			opt := options[0]

			plan := &TransitPlan{Option: opt}
			plan.WalkToMeters, plan.WalkToSeconds = f.walkAccess(ctx, from, s.Coord)
			plan.WalkFromMeters, plan.WalkFromSeconds = f.walkAccess(ctx, e.Coord, to)
			plan.Summary = fmt.Sprintf(
				"%s from %s to %s, departs %s, arrives %s",
				opt.Route.Name, opt.Board.Name, opt.Alight.Name,
				opt.Departure, opt.Arrival,
			)
			return plan, nil
		}
	}

	return nil, fmt.Errorf("plan transit route: no direct trip between station pairs: %w", ErrNoTransitRoute)
}

// walkAccess measures one walking access leg in meters and seconds.
func (f *TransitFinder) walkAccess(ctx context.Context, from, to domain.Coordinates) (int, int) {
	if f.routes != nil {
		r, err := f.routes.GetRoute(ctx, from, to, ports.ProfileWalking)
		if err == nil {
			return r.DistanceMeters, r.DurationSeconds
		}
		log.Printf("walk access route lookup failed, using straight-line estimate: %v", err)
	}

	meters := domain.HaversineMeters(from, to)
	return int(math.Round(meters)), travelSeconds(meters, f.params.WalkingSpeedKmh)
}
