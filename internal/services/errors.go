package services

import "errors"

// Failure taxonomy of a planning run. Only ErrDataUnavailable aborts the
// run; everything else is recovered locally by degrading to a simpler
// transport mode or leaving a leg unplanned.
var (
	// ErrDataUnavailable means a required planning input (travel matrix,
	// catalog data) is missing or malformed. Propagated, never retried.
	ErrDataUnavailable = errors.New("required planning data unavailable")

	// ErrNoTransitRoute means the transit finder produced no option
	// between two points. Callers fall back to a walking plan.
	ErrNoTransitRoute = errors.New("no feasible transit route")

	// ErrLegInfeasible means no transport plan exists for a leg under the
	// active preference (e.g. walking beyond the distance limit).
	ErrLegInfeasible = errors.New("no feasible transport plan for leg")
)
