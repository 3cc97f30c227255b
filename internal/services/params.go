package services

// Params collects the planner tunables. The defaults are the values the
// heuristics were calibrated with; they are parameters rather than
// constants because their exact magnitudes are empirical.
type Params struct {
	// WindowOverrunMinutes is how far past the daily window end a visit's
	// departure may run before the candidate is rejected.
	WindowOverrunMinutes int

	// MaxHopMinutes rejects candidates whose travel time from the current
	// position exceeds this bound, treating them as implausible jumps.
	MaxHopMinutes int

	// MaxSwapGainSeconds rejects 2-opt swaps that claim more than this
	// much improvement; such gains indicate bad distance data.
	MaxSwapGainSeconds int

	// MinRefineVisits is the smallest day the refiner touches.
	MinRefineVisits int

	// WalkingSpeedKmh prices walking segments and haversine fallbacks.
	WalkingSpeedKmh float64

	// DrivingFallbackSpeedKmh prices driving legs when no routing service
	// answer is available.
	DrivingFallbackSpeedKmh float64

	// StationSearchLimit is how many nearby stations per leg endpoint the
	// transit finder pairs up.
	StationSearchLimit int

	// MaxTripOptions caps how many scheduled departures a direct-trip
	// search returns.
	MaxTripOptions int

	// AnnotateParallelism bounds the concurrent leg computations when
	// annotating an itinerary.
	AnnotateParallelism int
}

// DefaultParams returns the calibrated defaults.
func DefaultParams() Params {
	return Params{
		WindowOverrunMinutes:    90,
		MaxHopMinutes:           60,
		MaxSwapGainSeconds:      1800,
		MinRefineVisits:         4,
		WalkingSpeedKmh:         4.8,
		DrivingFallbackSpeedKmh: 60,
		StationSearchLimit:      3,
		MaxTripOptions:          10,
		AnnotateParallelism:     4,
	}
}
