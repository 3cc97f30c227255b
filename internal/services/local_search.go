package services

import (
	"trip-planner-service/internal/domain"
)

// RefineDay improves a day's visit order in place with 2-opt sweeps.
//
// For every pair of positions i < j (the first visit is a fixed endpoint),
// it compares the two edges entering positions i and j against the edges
// that would exist after reversing the sub-sequence [i, j), and reverses
// when that shortens travel. Sweeps repeat until one full pass finds no
// improving swap, then every visit's schedule is recomputed from the first
// visit's original arrival. Days with fewer visits than the refine minimum
// are left untouched.
func RefineDay(day *domain.Day, places []domain.Place, matrix *domain.TravelMatrix, params Params) {
	n := len(day.Visits)
	if n < params.MinRefineVisits || matrix.Empty() {
		return
	}

	index := make(map[int]int, len(places))
	byID := make(map[int]domain.Place, len(places))
	for i, p := range places {
		index[p.ID] = i
		byID[p.ID] = p
	}
	for _, v := range day.Visits {
		if _, ok := index[v.PlaceID]; !ok {
			return
		}
	}

	visits := day.Visits
	dist := func(a, b int) int {
		return matrix.At(index[visits[a].PlaceID], index[visits[b].PlaceID])
	}

	improved := true
	for improved {
		improved = false
		for i := 1; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				originalDist := dist(i-1, i) + dist(j-1, j)
				newDist := dist(i-1, j-1) + dist(i, j)
				if newDist >= originalDist {
					continue
				}
				// A gain this large means the distance data is suspect,
				// not that the swap is genuinely good.
				if originalDist-newDist > params.MaxSwapGainSeconds {
					continue
				}
				reverse(visits, i, j-1)
				improved = true
			}
		}
	}

	recomputeTimes(visits, byID, index, matrix)
}

// reverse flips visits[lo..hi] in place.
func reverse(visits []domain.Visit, lo, hi int) {
	for lo < hi {
		visits[lo], visits[hi] = visits[hi], visits[lo]
		lo++
		hi--
	}
}

// recomputeTimes rebuilds every visit's ETA/ETD/travel minutes walking the
// sequence from the first visit's original arrival time.
func recomputeTimes(visits []domain.Visit, byID map[int]domain.Place, index map[int]int, matrix *domain.TravelMatrix) {
	first := &visits[0]
	first.ETD = first.ETA.Add(byID[first.PlaceID].StayMinutes)

	for k := 1; k < len(visits); k++ {
		prev := visits[k-1]
		cur := &visits[k]

		travelMinutes := matrix.AtMinutes(index[prev.PlaceID], index[cur.PlaceID])
		cur.TravelMinutes = travelMinutes
		cur.ETA = prev.ETD.Add(travelMinutes)
		cur.ETD = cur.ETA.Add(byID[cur.PlaceID].StayMinutes)
	}
}
