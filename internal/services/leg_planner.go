package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Driving cost model (thousand-kip units) and the fixed mode-choice
// heuristics of the leg planner.
const (
	fuelKipPerKm = 3.0
	tollKipPerKm = 5.0
	tollFreeKm   = 10.0

	heavyTrafficFactor = 1.5
	lightTrafficFactor = 0.9

	// Motorcycles avoid highways; short car routes are re-priced with a
	// detour simulation instead of re-queried.
	motorcycleDistanceFactor = 1.4
	motorcycleDurationFactor = 2.2
	motorcycleMaxRouteKm     = 60.0
	motorcycleMaxRouteMin    = 67.0

	// Mixed mode: beyond this straight-line distance driving wins
	// outright; below it transit wins if it stays within the factor of
	// the driving duration.
	mixedStraightLineMeters = 5000.0
	mixedTransitFactor      = 1.5
)

// LegPlanner chooses and prices a transport plan for one leg between two
// consecutive visits.
//
// The route provider may be nil, in which case all road legs are priced
// from straight-line estimates. The transit finder may be nil, in which
// case public transit degrades to walking.
type LegPlanner struct {
	routes  ports.RouteProvider
	transit *TransitFinder
	params  Params
}

func NewLegPlanner(routes ports.RouteProvider, transit *TransitFinder, params Params) *LegPlanner {
	return &LegPlanner{routes: routes, transit: transit, params: params}
}

// PlanLeg builds a transport plan for the leg from from to to under the
// given preference, departing at departAt on the given weekday.
//
// Failures of external collaborators degrade to simpler modes; the only
// error callers should branch on is ErrLegInfeasible, which means no plan
// exists under the preference's constraints.
func (lp *LegPlanner) PlanLeg(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
	pref domain.TransportPreference,
	departAt domain.ClockMinute,
	weekday time.Weekday,
) (_ *domain.TransportPlan, err error) {
	defer obs.Time(ctx, "leg.plan")(&err)

	pref.Normalize()

	switch pref.Primary {
	case domain.ModeDriving:
		return lp.planDriving(ctx, from, to, pref)
	case domain.ModeTransit:
		return lp.planTransit(ctx, from, to, pref, departAt, weekday)
	case domain.ModeWalking:
		return lp.planWalking(ctx, from, to, pref)
	case domain.ModeMixed:
		return lp.planMixed(ctx, from, to, pref, departAt, weekday)
	default:
		return nil, fmt.Errorf("plan leg: unsupported transport mode %q", pref.Primary)
	}
}

// planDriving prices a driven leg: routed distance and duration when the
// routing service answers, straight-line at the fallback speed otherwise,
// then the motorcycle detour simulation, traffic scaling, and the fuel and
// toll cost model.
func (lp *LegPlanner) planDriving(ctx context.Context, from, to domain.Coordinates, pref domain.TransportPreference) (*domain.TransportPlan, error) {
	meters, seconds, err := lp.roadLeg(ctx, from, to, ports.ProfileDriving, lp.params.DrivingFallbackSpeedKmh)
	if err != nil {
		return nil, fmt.Errorf("plan driving leg: %w", err)
	}

	if pref.Vehicle == domain.VehicleMotorcycle {
		km := float64(meters) / 1000
		if km < motorcycleMaxRouteKm && float64(seconds)/60 < motorcycleMaxRouteMin {
			meters = int(math.Round(float64(meters) * motorcycleDistanceFactor))
			seconds = int(math.Round(float64(seconds) * motorcycleDurationFactor))
		}
	}

	switch pref.Traffic {
	case domain.TrafficHeavy:
		seconds = int(math.Round(float64(seconds) * heavyTrafficFactor))
	case domain.TrafficLight:
		seconds = int(math.Round(float64(seconds) * lightTrafficFactor))
	}

	km := float64(meters) / 1000
	cost := km * fuelKipPerKm
	if km > tollFreeKm {
		cost += (km - tollFreeKm) * tollKipPerKm
	}

	seg := domain.TransportSegment{
		Mode:            domain.ModeDriving,
		Kind:            domain.SegmentDrive,
		From:            from,
		To:              to,
		DistanceMeters:  meters,
		DurationSeconds: seconds,
		CostKip:         cost,
	}

	plan := &domain.TransportPlan{
		Mode:            domain.ModeDriving,
		Segments:        []domain.TransportSegment{seg},
		DistanceMeters:  meters,
		DurationSeconds: seconds,
		CostKip:         cost,
		DrivingMinutes:  seconds / 60,
		CarbonKg:        SegmentCarbonKg(seg, ""),
	}
	plan.FinalizeSummary()
	return plan, nil
}

// planWalking prices a walked leg, rejecting it when the distance exceeds
// the preference's walking limit.
func (lp *LegPlanner) planWalking(ctx context.Context, from, to domain.Coordinates, pref domain.TransportPreference) (*domain.TransportPlan, error) {
	meters, seconds, err := lp.roadLeg(ctx, from, to, ports.ProfileWalking, lp.params.WalkingSpeedKmh)
	if err != nil {
		return nil, fmt.Errorf("plan walking leg: %w", err)
	}

	if meters > pref.MaxWalkingMeters {
		return nil, fmt.Errorf(
			"plan walking leg: %dm exceeds walking limit %dm: %w",
			meters, pref.MaxWalkingMeters, ErrLegInfeasible,
		)
	}

	seg := domain.TransportSegment{
		Mode:            domain.ModeWalking,
		Kind:            domain.SegmentWalk,
		From:            from,
		To:              to,
		DistanceMeters:  meters,
		DurationSeconds: seconds,
	}

	plan := &domain.TransportPlan{
		Mode:            domain.ModeWalking,
		Segments:        []domain.TransportSegment{seg},
		DistanceMeters:  meters,
		DurationSeconds: seconds,
		WalkingMinutes:  seconds / 60,
	}
	plan.FinalizeSummary()
	return plan, nil
}

// planTransit asks the finder for a ride and falls back to walking when
// transit is unavailable for any reason.
func (lp *LegPlanner) planTransit(ctx context.Context, from, to domain.Coordinates, pref domain.TransportPreference, departAt domain.ClockMinute, weekday time.Weekday) (*domain.TransportPlan, error) {
	plan, err := lp.transitLeg(ctx, from, to, pref, departAt, weekday)
	if err != nil {
		log.Printf("transit unavailable, falling back to walking: %v", err)
		return lp.planWalking(ctx, from, to, pref)
	}
	return plan, nil
}

// planMixed decides between driving and transit: long legs drive outright,
// short legs take transit when it is time-competitive with driving.
func (lp *LegPlanner) planMixed(ctx context.Context, from, to domain.Coordinates, pref domain.TransportPreference, departAt domain.ClockMinute, weekday time.Weekday) (*domain.TransportPlan, error) {
	if domain.HaversineMeters(from, to) > mixedStraightLineMeters {
		return lp.planDriving(ctx, from, to, pref)
	}

	driving, err := lp.planDriving(ctx, from, to, pref)
	if err != nil {
		return nil, err
	}

	transit, err := lp.transitLeg(ctx, from, to, pref, departAt, weekday)
	if err != nil {
		log.Printf("transit unavailable for mixed leg, driving instead: %v", err)
		return driving, nil
	}

	if float64(transit.DurationSeconds) <= mixedTransitFactor*float64(driving.DurationSeconds) {
		return transit, nil
	}
	return driving, nil
}

// transitLeg composes a full transit plan from a finder result:
// walk to the boarding station, ride, walk from the alighting station.
func (lp *LegPlanner) transitLeg(ctx context.Context, from, to domain.Coordinates, pref domain.TransportPreference, departAt domain.ClockMinute, weekday time.Weekday) (*domain.TransportPlan, error) {
	if lp.transit == nil {
		return nil, fmt.Errorf("plan transit leg: no timetable loaded: %w", ErrNoTransitRoute)
	}

	tp, err := lp.transit.PlanRoute(ctx, from, to, departAt, weekday, pref)
	if err != nil {
		return nil, fmt.Errorf("plan transit leg: %w", err)
	}

	totalWalkSeconds := tp.WalkToSeconds + tp.WalkFromSeconds
	if pref.MaxWalkingMinutes > 0 && totalWalkSeconds > pref.MaxWalkingMinutes*60 {
		return nil, fmt.Errorf(
			"plan transit leg: %dmin of station access walking exceeds limit %dmin: %w",
			totalWalkSeconds/60, pref.MaxWalkingMinutes, ErrNoTransitRoute,
		)
	}

	opt := tp.Option
	departure := opt.Departure
	arrival := opt.Arrival
	rideMeters := int(math.Round(domain.HaversineMeters(opt.Board.Coord, opt.Alight.Coord)))
	fare := pref.Budget.FlatFareKip()

	segments := []domain.TransportSegment{
		{
			Mode:            domain.ModeWalking,
			Kind:            domain.SegmentWalk,
			From:            from,
			To:              opt.Board.Coord,
			DistanceMeters:  tp.WalkToMeters,
			DurationSeconds: tp.WalkToSeconds,
		},
		{
			Mode:            domain.ModeTransit,
			Kind:            domain.SegmentRide,
			From:            opt.Board.Coord,
			To:              opt.Alight.Coord,
			DistanceMeters:  rideMeters,
			DurationSeconds: opt.RideMinutes() * 60,
			CostKip:         fare,
			RouteName:       opt.Route.Name,
			DepartAt:        &departure,
			ArriveAt:        &arrival,
			Steps:           []string{tp.Summary},
		},
		{
			Mode:            domain.ModeWalking,
			Kind:            domain.SegmentWalk,
			From:            opt.Alight.Coord,
			To:              to,
			DistanceMeters:  tp.WalkFromMeters,
			DurationSeconds: tp.WalkFromSeconds,
		},
	}

	// Plan duration runs from the requested departure to arrival at the
	// destination, waiting at the stop included.
	durationSeconds := (int(arrival)-int(departAt))*60 + tp.WalkFromSeconds

	plan := &domain.TransportPlan{
		Mode:            domain.ModeTransit,
		Segments:        segments,
		DistanceMeters:  tp.WalkToMeters + rideMeters + tp.WalkFromMeters,
		DurationSeconds: durationSeconds,
		CostKip:         fare,
		WalkingMinutes:  totalWalkSeconds / 60,
		Transfers:       0,
		CarbonKg:        SegmentCarbonKg(segments[1], opt.Route.Kind),
	}
	plan.FinalizeSummary()
	return plan, nil
}

// roadLeg measures one leg over the road network, straight-line at the
// given speed when the routing service cannot answer. Cancellation is the
// one provider failure that does not degrade to the estimate.
func (lp *LegPlanner) roadLeg(ctx context.Context, from, to domain.Coordinates, profile ports.Profile, fallbackSpeedKmh float64) (int, int, error) {
	if lp.routes != nil {
		r, err := lp.routes.GetRoute(ctx, from, to, profile)
		if err == nil {
			return r.DistanceMeters, r.DurationSeconds, nil
		}
		if ctx.Err() != nil {
			return 0, 0, ctx.Err()
		}
		log.Printf("route lookup failed profile=%s, using straight-line estimate: %v", profile, err)
	}

	meters := domain.HaversineMeters(from, to)
	return int(math.Round(meters)), travelSeconds(meters, fallbackSpeedKmh), nil
}
