package services

import (
	"testing"

	"trip-planner-service/internal/domain"
)

// linePlaces lays n places on a line so that travel between place i and
// place j costs |i-j|*stepSeconds.
func linePlaces(n int) []domain.Place {
	places := make([]domain.Place, n)
	for i := range places {
		places[i] = domain.Place{ID: i + 1, Name: "P", StayMinutes: 30}
	}
	return places
}

func lineMatrix(n, stepSeconds int) *domain.TravelMatrix {
	seconds := make([][]int, n)
	for i := range seconds {
		seconds[i] = make([]int, n)
		for j := range seconds[i] {
			d := i - j
			if d < 0 {
				d = -d
			}
			seconds[i][j] = d * stepSeconds
		}
	}
	return &domain.TravelMatrix{Seconds: seconds}
}

func crossedDay(eta domain.ClockMinute) *domain.Day {
	return &domain.Day{
		Visits: []domain.Visit{
			{PlaceID: 1, ETA: eta},
			{PlaceID: 3},
			{PlaceID: 2},
			{PlaceID: 4},
			{PlaceID: 5},
		},
	}
}

func visitOrder(day *domain.Day) []int {
	ids := make([]int, len(day.Visits))
	for i, v := range day.Visits {
		ids[i] = v.PlaceID
	}
	return ids
}

// dayTravelSeconds sums the inter-visit travel of a day, anchor excluded.
func dayTravelSeconds(visits []domain.Visit, places []domain.Place, matrix *domain.TravelMatrix) int {
	index := make(map[int]int, len(places))
	for i, p := range places {
		index[p.ID] = i
	}
	total := 0
	for k := 1; k < len(visits); k++ {
		total += matrix.At(index[visits[k-1].PlaceID], index[visits[k].PlaceID])
	}
	return total
}

func TestRefineDayUncrossesRoute(t *testing.T) {
	places := linePlaces(5)
	matrix := lineMatrix(5, 300)
	day := crossedDay(540)

	before := dayTravelSeconds(day.Visits, places, matrix)
	RefineDay(day, places, matrix, DefaultParams())
	after := dayTravelSeconds(day.Visits, places, matrix)

	want := []int{1, 2, 3, 4, 5}
	got := visitOrder(day)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if after >= before {
		t.Errorf("travel %ds not improved from %ds", after, before)
	}
	if before != 1800 || after != 1200 {
		t.Errorf("travel %d -> %d, want 1800 -> 1200", before, after)
	}

	// Times are rebuilt from the first visit's arrival at 5 minute hops.
	wantETA := []domain.ClockMinute{540, 575, 610, 645, 680}
	for i, v := range day.Visits {
		if v.ETA != wantETA[i] {
			t.Errorf("visit %d: eta = %s, want %s", i, v.ETA, wantETA[i])
		}
		if v.ETD != wantETA[i].Add(30) {
			t.Errorf("visit %d: etd = %s, want %s", i, v.ETD, wantETA[i].Add(30))
		}
	}
}

func TestRefineDaySuspectGainSkipped(t *testing.T) {
	places := linePlaces(5)
	// Step of 1200s makes the uncrossing swap claim a 2400s gain, above
	// the 1800s plausibility bound.
	matrix := lineMatrix(5, 1200)
	day := crossedDay(540)

	RefineDay(day, places, matrix, DefaultParams())

	want := []int{1, 3, 2, 4, 5}
	got := visitOrder(day)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want unchanged %v", got, want)
		}
	}
}

func TestRefineDayLeavesShortDays(t *testing.T) {
	places := linePlaces(3)
	matrix := lineMatrix(3, 300)
	day := &domain.Day{
		Visits: []domain.Visit{
			{PlaceID: 1, ETA: 540, ETD: 570},
			{PlaceID: 3, ETA: 580, ETD: 610},
			{PlaceID: 2, ETA: 615, ETD: 645},
		},
	}

	RefineDay(day, places, matrix, DefaultParams())

	// Below the refine minimum nothing moves, times included.
	got := visitOrder(day)
	if got[0] != 1 || got[1] != 3 || got[2] != 2 {
		t.Fatalf("short day reordered: %v", got)
	}
	if day.Visits[1].ETA != 580 {
		t.Errorf("short day times touched: eta = %s", day.Visits[1].ETA)
	}
}

func TestRefineDayUnknownPlaceUntouched(t *testing.T) {
	places := linePlaces(5)
	matrix := lineMatrix(5, 300)
	day := crossedDay(540)
	day.Visits[2].PlaceID = 99

	RefineDay(day, places, matrix, DefaultParams())

	got := visitOrder(day)
	want := []int{1, 3, 99, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want unchanged %v", got, want)
		}
	}
}

func TestRefineDayEmptyMatrixUntouched(t *testing.T) {
	places := linePlaces(5)
	day := crossedDay(540)

	RefineDay(day, places, &domain.TravelMatrix{}, DefaultParams())

	got := visitOrder(day)
	if got[1] != 3 || got[2] != 2 {
		t.Fatalf("order changed without matrix data: %v", got)
	}
}
