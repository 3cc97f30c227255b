package domain

import (
	"fmt"
	"strings"
)

// TransportMode is the closed set of ways a leg between two visits can be
// covered. Dispatch on it is always exhaustive; an unknown mode is an error,
// never a silent fallthrough.
type TransportMode string

const (
	ModeDriving TransportMode = "driving"
	ModeTransit TransportMode = "public_transport"
	ModeWalking TransportMode = "walking"
	ModeMixed   TransportMode = "mixed"
)

// ParseTransportMode validates a wire-format mode name.
func ParseTransportMode(s string) (TransportMode, error) {
	switch TransportMode(s) {
	case ModeDriving, ModeTransit, ModeWalking, ModeMixed:
		return TransportMode(s), nil
	}
	return "", fmt.Errorf("unsupported transport mode: %q", s)
}

// VehicleClass selects the emission coefficient table and, for motorcycles,
// the highway-avoidance detour adjustment on driven legs.
type VehicleClass string

const (
	VehicleCar        VehicleClass = "car"
	VehicleBus        VehicleClass = "bus"
	VehicleMotorcycle VehicleClass = "motorcycle"
)

// TrafficCondition coarsely scales driving durations and emission speeds.
type TrafficCondition string

const (
	TrafficLight  TrafficCondition = "light"
	TrafficNormal TrafficCondition = "normal"
	TrafficHeavy  TrafficCondition = "heavy"
)

// RoadType is the coarse road classification used to pick emission
// coefficients. The empty value means "infer from distance".
type RoadType string

const (
	RoadUrban      RoadType = "urban"
	RoadProvincial RoadType = "provincial"
	RoadHighway    RoadType = "highway"
)

// SegmentKind tells what physically happens during a segment.
type SegmentKind string

const (
	SegmentDrive SegmentKind = "drive"
	SegmentWalk  SegmentKind = "walk"
	SegmentRide  SegmentKind = "ride"
)

// Represents one physical hop of a transport plan.
// Scheduled fields (DepartAt/ArriveAt, RouteName) are set on ride segments
// only; Steps carries optional turn-by-turn style hints.
type TransportSegment struct {
	Mode            TransportMode `json:"mode"`
	Kind            SegmentKind   `json:"kind"`
	From            Coordinates   `json:"from"`
	To              Coordinates   `json:"to"`
	DistanceMeters  int           `json:"distance_meters"`
	DurationSeconds int           `json:"duration_seconds"`
	CostKip         float64       `json:"cost_kip"`
	RouteName       string        `json:"route_name,omitempty"`
	DepartAt        *ClockMinute  `json:"depart_at,omitempty"`
	ArriveAt        *ClockMinute  `json:"arrive_at,omitempty"`
	Steps           []string      `json:"steps,omitempty"`
}

// Represents the chosen transport plan for one leg between two visits:
// ordered segments plus the aggregates consumers read directly.
type TransportPlan struct {
	Mode            TransportMode      `json:"mode"`
	Segments        []TransportSegment `json:"segments"`
	DistanceMeters  int                `json:"distance_meters"`
	DurationSeconds int                `json:"duration_seconds"`
	CostKip         float64            `json:"cost_kip"`
	WalkingMinutes  int                `json:"walking_minutes"`
	DrivingMinutes  int                `json:"driving_minutes"`
	Transfers       int                `json:"transfers"`
	CarbonKg        float64            `json:"carbon_kg"`
	Summary         string             `json:"summary"`
}

// DurationMinutes returns the plan duration rounded down to whole minutes.
func (p *TransportPlan) DurationMinutes() int { return p.DurationSeconds / 60 }

// FinalizeSummary recomputes the human-readable summary line from the
// aggregates, e.g. "distance 12.3km, time 45 minutes, includes drive 30
// minutes, walk 5 minutes".
func (p *TransportPlan) FinalizeSummary() {
	parts := []string{
		fmt.Sprintf("distance %.1fkm", float64(p.DistanceMeters)/1000.0),
		fmt.Sprintf("time %d minutes", p.DurationMinutes()),
	}

	var includes []string
	if p.DrivingMinutes > 0 {
		includes = append(includes, fmt.Sprintf("drive %d minutes", p.DrivingMinutes))
	}
	if rideMin := p.DurationMinutes() - p.DrivingMinutes - p.WalkingMinutes; rideMin > 0 && p.Mode == ModeTransit {
		includes = append(includes, fmt.Sprintf("ride %d minutes", rideMin))
	}
	if p.WalkingMinutes > 0 {
		includes = append(includes, fmt.Sprintf("walk %d minutes", p.WalkingMinutes))
	}
	if len(includes) > 0 {
		parts = append(parts, "includes "+strings.Join(includes, ", "))
	}
	if p.Transfers > 0 {
		parts = append(parts, fmt.Sprintf("%d transfers", p.Transfers))
	}

	p.Summary = strings.Join(parts, ", ")
}
