package services

import (
	"fmt"
	"math"

	"trip-planner-service/internal/domain"
)

// EstimateMatrix derives a pairwise travel-time matrix from straight-line
// distances at the given speed. It is the fallback when no externally
// computed matrix is supplied.
func EstimateMatrix(places []domain.Place, speedKmh float64) *domain.TravelMatrix {
	n := len(places)
	seconds := make([][]int, n)
	for i := range seconds {
		seconds[i] = make([]int, n)
		for j := range seconds[i] {
			if i == j {
				continue
			}
			meters := domain.HaversineMeters(places[i].Coord, places[j].Coord)
			seconds[i][j] = travelSeconds(meters, speedKmh)
		}
	}
	return &domain.TravelMatrix{Seconds: seconds}
}

// NormalizeMatrix validates an externally supplied seconds matrix against
// the candidate count. Dimension problems surface as ErrDataUnavailable so
// the planning run aborts instead of proceeding on partial data.
func NormalizeMatrix(raw [][]int, n int) (*domain.TravelMatrix, error) {
	if n == 0 {
		return &domain.TravelMatrix{}, nil
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("normalize matrix: empty matrix for %d places: %w", n, ErrDataUnavailable)
	}
	if len(raw) != n {
		return nil, fmt.Errorf("normalize matrix: %d rows for %d places: %w", len(raw), n, ErrDataUnavailable)
	}

	seconds := make([][]int, n)
	for i, row := range raw {
		if len(row) != n {
			return nil, fmt.Errorf("normalize matrix: row %d has %d columns, want %d: %w", i, len(row), n, ErrDataUnavailable)
		}
		seconds[i] = make([]int, n)
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("normalize matrix: negative duration at [%d][%d]", i, j)
			}
			seconds[i][j] = v
		}
		// travel from a place to itself is free regardless of input
		seconds[i][i] = 0
	}

	return &domain.TravelMatrix{Seconds: seconds}, nil
}

// travelSeconds converts a distance at a given speed into whole seconds.
func travelSeconds(meters float64, speedKmh float64) int {
	if speedKmh <= 0 || meters <= 0 {
		return 0
	}
	return int(math.Round(meters / (speedKmh * 1000 / 3600)))
}
