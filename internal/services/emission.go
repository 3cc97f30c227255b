package services

import (
	"trip-planner-service/internal/domain"
)

// Per-kilometer CO2 coefficients in grams for one vehicle class at one
// representative speed, split by road type.
type emissionRow struct {
	SpeedKmh   int
	Urban      float64
	Provincial float64
	Highway    float64
}

// Static coefficient tables, one ordered row set per vehicle class.
// Read-only after load; rows are sorted by speed.
var emissionTables = map[domain.VehicleClass][]emissionRow{
	domain.VehicleCar: {
		{SpeedKmh: 20, Urban: 210, Provincial: 190, Highway: 185},
		{SpeedKmh: 40, Urban: 170, Provincial: 155, Highway: 150},
		{SpeedKmh: 60, Urban: 140, Provincial: 128, Highway: 122},
		{SpeedKmh: 80, Urban: 138, Provincial: 124, Highway: 118},
		{SpeedKmh: 100, Urban: 150, Provincial: 135, Highway: 128},
	},
	domain.VehicleBus: {
		{SpeedKmh: 20, Urban: 900, Provincial: 850, Highway: 820},
		{SpeedKmh: 40, Urban: 780, Provincial: 720, Highway: 690},
		{SpeedKmh: 60, Urban: 680, Provincial: 620, Highway: 590},
		{SpeedKmh: 80, Urban: 650, Provincial: 600, Highway: 570},
		{SpeedKmh: 100, Urban: 700, Provincial: 640, Highway: 610},
	},
	domain.VehicleMotorcycle: {
		{SpeedKmh: 20, Urban: 95, Provincial: 88, Highway: 84},
		{SpeedKmh: 40, Urban: 78, Provincial: 70, Highway: 66},
		{SpeedKmh: 60, Urban: 64, Provincial: 58, Highway: 55},
		{SpeedKmh: 80, Urban: 66, Provincial: 60, Highway: 57},
		{SpeedKmh: 100, Urban: 72, Provincial: 66, Highway: 62},
	},
}

// fallbackGramsPerKm prices a trip when no table row can be resolved.
const fallbackGramsPerKm = 200.0

// Flat per-kilometer plan factors in kilograms, used for the leg-level
// carbon aggregate. The detailed speed/road tables above refine driving
// emissions in day summaries.
const (
	carKgPerKm  = 0.12
	busKgPerKm  = 0.08
	railKgPerKm = 0.05
)

// EstimateCO2 returns the estimated CO2 grams for driving the given
// distance. Road type and speed may be zero-valued, in which case both are
// inferred from the distance, then the speed is adjusted for traffic and
// clamped to [20, 100] km/h. The estimate never fails: unknown vehicle
// classes use the car table, and any remaining lookup gap falls back to a
// flat 200 g/km.
func EstimateCO2(distanceMeters float64, vehicle domain.VehicleClass, traffic domain.TrafficCondition, road domain.RoadType, speedKmh int) float64 {
	if distanceMeters <= 0 {
		return 0
	}
	km := distanceMeters / 1000

	if road == "" {
		road = inferRoadType(km)
	}
	if speedKmh == 0 {
		speedKmh = representativeSpeed(road)
	}
	speedKmh = adjustSpeedForTraffic(speedKmh, traffic)

	rows, ok := emissionTables[vehicle]
	if !ok {
		rows = emissionTables[domain.VehicleCar]
	}
	if len(rows) == 0 {
		return km * fallbackGramsPerKm
	}

	row := nearestSpeedRow(rows, speedKmh)
	var gramsPerKm float64
	switch road {
	case domain.RoadUrban:
		gramsPerKm = row.Urban
	case domain.RoadProvincial:
		gramsPerKm = row.Provincial
	case domain.RoadHighway:
		gramsPerKm = row.Highway
	default:
		gramsPerKm = fallbackGramsPerKm
	}

	return km * gramsPerKm
}

// SegmentCarbonKg returns the flat per-mode carbon estimate for one plan
// segment in kilograms. Ride segments are priced as bus unless the route
// kind says rail; walking is free.
func SegmentCarbonKg(seg domain.TransportSegment, routeKind string) float64 {
	km := float64(seg.DistanceMeters) / 1000
	switch seg.Kind {
	case domain.SegmentDrive:
		return km * carKgPerKm
	case domain.SegmentRide:
		if routeKind == domain.RouteKindRail {
			return km * railKgPerKm
		}
		return km * busKgPerKm
	default:
		return 0
	}
}

func inferRoadType(km float64) domain.RoadType {
	switch {
	case km > 20:
		return domain.RoadHighway
	case km > 5:
		return domain.RoadProvincial
	default:
		return domain.RoadUrban
	}
}

func representativeSpeed(road domain.RoadType) int {
	switch road {
	case domain.RoadHighway:
		return 90
	case domain.RoadProvincial:
		return 60
	default:
		return 40
	}
}

func adjustSpeedForTraffic(speedKmh int, traffic domain.TrafficCondition) int {
	switch traffic {
	case domain.TrafficHeavy:
		speedKmh -= 20
	case domain.TrafficLight:
		speedKmh += 10
	}
	if speedKmh < 20 {
		speedKmh = 20
	}
	if speedKmh > 100 {
		speedKmh = 100
	}
	return speedKmh
}

func nearestSpeedRow(rows []emissionRow, speedKmh int) emissionRow {
	best := rows[0]
	bestDelta := abs(speedKmh - best.SpeedKmh)
	for _, r := range rows[1:] {
		if d := abs(speedKmh - r.SpeedKmh); d < bestDelta {
			best = r
			bestDelta = d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
