package domain

import "fmt"

// BudgetTier picks the flat per-segment transit fare a traveler is charged.
type BudgetTier string

const (
	BudgetEconomy  BudgetTier = "economy"
	BudgetStandard BudgetTier = "standard"
	BudgetPremium  BudgetTier = "premium"
)

// FlatFareKip returns the per-segment transit fare for the tier, in
// thousand-kip units. Unknown tiers charge the standard fare.
func (b BudgetTier) FlatFareKip() float64 {
	switch b {
	case BudgetEconomy:
		return 6
	case BudgetPremium:
		return 12
	default:
		return 8
	}
}

// TransportPreference captures how a traveler wants legs planned: the
// primary mode plus the limits the planners respect when composing
// walking and transit segments.
type TransportPreference struct {
	Primary           TransportMode    `json:"primary"`
	Vehicle           VehicleClass     `json:"vehicle"`
	Budget            BudgetTier       `json:"budget"`
	MaxWalkingMeters  int              `json:"max_walking_meters"`
	MaxWalkingMinutes int              `json:"max_walking_minutes"`
	MaxTransfers      int              `json:"max_transfers"`
	RequireLowFloor   bool             `json:"require_low_floor"`
	EcoFriendly       bool             `json:"eco_friendly"`
	Traffic           TrafficCondition `json:"traffic,omitempty"`
}

// Normalize fills zero values with workable defaults so a partially
// specified preference still plans.
func (p *TransportPreference) Normalize() {
	if p.Primary == "" {
		p.Primary = ModeDriving
	}
	if p.Vehicle == "" {
		p.Vehicle = VehicleCar
	}
	if p.Budget == "" {
		p.Budget = BudgetStandard
	}
	if p.MaxWalkingMeters == 0 {
		p.MaxWalkingMeters = 1500
	}
	if p.MaxWalkingMinutes == 0 {
		p.MaxWalkingMinutes = 20
	}
	if p.Traffic == "" {
		p.Traffic = TrafficNormal
	}
}

// PresetPreference returns one of the named traveler profiles. The name
// doubles as the CLI flag value.
func PresetPreference(name string) (TransportPreference, error) {
	var p TransportPreference
	switch name {
	case "driving":
		p = TransportPreference{
			Primary:          ModeDriving,
			Vehicle:          VehicleCar,
			Budget:           BudgetStandard,
			MaxWalkingMeters: 500,
		}
	case "public_transport":
		p = TransportPreference{
			Primary:           ModeTransit,
			Budget:            BudgetEconomy,
			MaxWalkingMeters:  1500,
			MaxWalkingMinutes: 20,
			MaxTransfers:      1,
		}
	case "mixed":
		p = TransportPreference{
			Primary:           ModeMixed,
			Vehicle:           VehicleCar,
			Budget:            BudgetStandard,
			MaxWalkingMeters:  1500,
			MaxWalkingMinutes: 20,
			MaxTransfers:      1,
		}
	case "eco_friendly":
		p = TransportPreference{
			Primary:           ModeMixed,
			Budget:            BudgetEconomy,
			MaxWalkingMeters:  2000,
			MaxWalkingMinutes: 25,
			MaxTransfers:      2,
			EcoFriendly:       true,
		}
	default:
		return p, fmt.Errorf("unknown transport preference %q", name)
	}
	p.Normalize()
	return p, nil
}
