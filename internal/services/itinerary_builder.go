package services

import (
	"fmt"

	"trip-planner-service/internal/domain"
)

// Candidate scoring bonuses. The base score is the signed hour overrun of
// the candidate's departure versus the window end, so finishing inside the
// window dominates and later departures win among equals.
const (
	withinWindowBonus    = 10.0
	fillsRemainderBonus  = 5.0
	fillsRemainderFactor = 0.8
)

// BuildItinerary plans a multi-day visit itinerary with a greedy
// time-utilization heuristic.
//
// Each day restarts at the window start from the conventional anchor (the
// first candidate) and repeatedly appends the best-scoring visitable
// candidate until none qualifies. The algorithm minimizes wasted window
// time at each step; it does not attempt global optimization. A day with
// no feasible candidates stays empty rather than failing the run.
func BuildItinerary(
	story domain.Story,
	places []domain.Place,
	lodgings []domain.Lodging,
	matrix *domain.TravelMatrix,
	params Params,
) (*domain.Itinerary, error) {
	if err := story.Validate(); err != nil {
		return nil, fmt.Errorf("build itinerary: %w", err)
	}

	if matrix.Empty() {
		return nil, fmt.Errorf("build itinerary: travel matrix is empty: %w", ErrDataUnavailable)
	}
	if matrix.Len() != len(places) {
		return nil, fmt.Errorf(
			"build itinerary: travel matrix covers %d places, want %d: %w",
			matrix.Len(), len(places), ErrDataUnavailable,
		)
	}

	visited := make([]bool, len(places))
	windowCap := story.WindowEnd.Add(params.WindowOverrunMinutes)

	days := make([]domain.Day, 0, story.Days)
	for dayIdx := 0; dayIdx < story.Days; dayIdx++ {
		weekday := story.WeekdayForDay(dayIdx)
		currentTime := story.WindowStart

		// Conventional start point: each day departs from candidate 0.
		last := 0

		visits := []domain.Visit{}
		for currentTime < windowCap {
			best := -1
			var bestScore float64
			var bestVisit domain.Visit

			for i, p := range places {
				if visited[i] {
					continue
				}

				travelMinutes := matrix.AtMinutes(last, i)
				eta := currentTime.Add(travelMinutes)
				etd := eta.Add(p.StayMinutes)

				if etd > windowCap {
					continue
				}
				if !p.OpenAt(weekday, eta) {
					continue
				}
				// Hops above the plausibility bound are skipped outright.
				if travelMinutes > params.MaxHopMinutes {
					continue
				}

				score := float64(etd-story.WindowEnd) / 60
				if etd <= story.WindowEnd {
					score += withinWindowBonus
				}
				remaining := int(story.WindowEnd - currentTime)
				if float64(p.StayMinutes) >= fillsRemainderFactor*float64(remaining) {
					score += fillsRemainderBonus
				}

				// Strict comparison keeps the first-found candidate on ties.
				if best == -1 || score > bestScore {
					best = i
					bestScore = score
					bestVisit = domain.Visit{
						PlaceID:       p.ID,
						PlaceName:     p.Name,
						ETA:           eta,
						ETD:           etd,
						TravelMinutes: travelMinutes,
					}
				}
			}

			if best == -1 {
				break
			}

			visits = append(visits, bestVisit)
			visited[best] = true
			currentTime = bestVisit.ETD
			last = best
		}

		day := domain.Day{
			Date:   story.DateForDay(dayIdx),
			Visits: visits,
		}

		lastDay := dayIdx == story.Days-1
		if !story.SkipLodging && !lastDay {
			day.Lodging = RecommendLodging(lodgings, dayIdx, story.EcoFriendly)
		}

		days = append(days, day)
	}

	return &domain.Itinerary{Days: days}, nil
}
