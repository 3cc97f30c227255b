package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// DayLegs holds the transport plans for one itinerary day. Legs[i] covers
// the hop from visit i to visit i+1; a nil entry means no feasible plan
// existed under the preference.
type DayLegs struct {
	DayIndex int                     `json:"day_index"`
	Legs     []*domain.TransportPlan `json:"legs"`
	Emission EmissionSummary         `json:"emission"`
}

// EmissionSummary aggregates a day's carbon estimates. TotalKg sums the
// flat per-mode plan factors; DrivingTableKg re-estimates the driven
// distance with the speed/road-type coefficient tables.
type EmissionSummary struct {
	TotalKg        float64 `json:"total_kg"`
	DrivingTableKg float64 `json:"driving_table_kg"`
}

// AnnotateItinerary plans the transport leg for every consecutive visit
// pair of every day. Legs are independent, so they are computed with
// bounded parallelism; results keep their slot order. An infeasible leg is
// logged and left nil; any other failure (including cancellation) aborts
// with no partial result.
func AnnotateItinerary(
	ctx context.Context,
	itin *domain.Itinerary,
	places []domain.Place,
	pref domain.TransportPreference,
	planner *LegPlanner,
	params Params,
) (_ []DayLegs, err error) {
	defer obs.Time(ctx, "legs.annotate")(&err)

	coordByID := make(map[int]domain.Coordinates, len(places))
	for _, p := range places {
		coordByID[p.ID] = p.Coord
	}
	for _, day := range itin.Days {
		for _, v := range day.Visits {
			if _, ok := coordByID[v.PlaceID]; !ok {
				return nil, fmt.Errorf("annotate itinerary: place %d not in candidate set: %w", v.PlaceID, ErrDataUnavailable)
			}
		}
	}

	out := make([]DayLegs, len(itin.Days))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(params.AnnotateParallelism)

	for d, day := range itin.Days {
		legCount := len(day.Visits) - 1
		if legCount < 0 {
			legCount = 0
		}
		out[d] = DayLegs{DayIndex: d, Legs: make([]*domain.TransportPlan, legCount)}

		weekday := day.Date.Weekday()
		for i := 0; i < legCount; i++ {
			from := coordByID[day.Visits[i].PlaceID]
			to := coordByID[day.Visits[i+1].PlaceID]
			departAt := day.Visits[i].ETD

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				plan, err := planner.PlanLeg(gctx, from, to, pref, departAt, weekday)
				if err != nil {
					if errors.Is(err, ErrLegInfeasible) {
						log.Printf("day=%d leg=%d left unplanned: %v", d, i, err)
						return nil
					}
					return fmt.Errorf("annotate itinerary: day %d leg %d: %w", d, i, err)
				}

				out[d].Legs[i] = plan
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for d := range out {
		out[d].Emission = summarizeEmissions(out[d].Legs, pref)
	}
	return out, nil
}

// summarizeEmissions folds one day's planned legs into a carbon summary.
func summarizeEmissions(legs []*domain.TransportPlan, pref domain.TransportPreference) EmissionSummary {
	var s EmissionSummary
	for _, plan := range legs {
		if plan == nil {
			continue
		}
		s.TotalKg += plan.CarbonKg
		for _, seg := range plan.Segments {
			if seg.Kind != domain.SegmentDrive {
				continue
			}
			grams := EstimateCO2(float64(seg.DistanceMeters), pref.Vehicle, pref.Traffic, "", 0)
			s.DrivingTableKg += grams / 1000
		}
	}
	return s
}
