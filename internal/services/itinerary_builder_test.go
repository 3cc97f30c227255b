package services

import (
	"errors"
	"testing"
	"time"

	"trip-planner-service/internal/domain"
)

// monday is 2026-03-02, used wherever a test needs a known weekday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func uniformMatrix(n, offDiagSeconds int) *domain.TravelMatrix {
	seconds := make([][]int, n)
	for i := range seconds {
		seconds[i] = make([]int, n)
		for j := range seconds[i] {
			if i != j {
				seconds[i][j] = offDiagSeconds
			}
		}
	}
	return &domain.TravelMatrix{Seconds: seconds}
}

func TestBuildItineraryPrefersLongerStays(t *testing.T) {
	story := domain.Story{
		Days:        1,
		WindowStart: 540,
		WindowEnd:   1080,
		StartDate:   monday,
		SkipLodging: true,
	}
	places := []domain.Place{
		{ID: 1, Name: "Cafe", StayMinutes: 60},
		{ID: 2, Name: "Temple", StayMinutes: 90},
		{ID: 3, Name: "Museum", StayMinutes: 120},
	}

	itin, err := BuildItinerary(story, places, nil, uniformMatrix(3, 600), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(itin.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(itin.Days))
	}

	visits := itin.Days[0].Visits
	if len(visits) != 3 {
		t.Fatalf("expected 3 visits, got %d", len(visits))
	}

	// Departure time dominates the score, so the longest stay goes first.
	wantOrder := []int{3, 2, 1}
	wantETA := []domain.ClockMinute{550, 680, 780}
	wantETD := []domain.ClockMinute{670, 770, 840}
	for i, v := range visits {
		if v.PlaceID != wantOrder[i] {
			t.Errorf("visit %d: place = %d, want %d", i, v.PlaceID, wantOrder[i])
		}
		if v.ETA != wantETA[i] {
			t.Errorf("visit %d: eta = %s, want %s", i, v.ETA, wantETA[i])
		}
		if v.ETD != wantETD[i] {
			t.Errorf("visit %d: etd = %s, want %s", i, v.ETD, wantETD[i])
		}
	}
}

func TestBuildItineraryWaitsForOpening(t *testing.T) {
	story := domain.Story{
		Days:        1,
		WindowStart: 540,
		WindowEnd:   1080,
		StartDate:   monday,
		SkipLodging: true,
	}
	places := []domain.Place{
		{ID: 1, Name: "Cafe", StayMinutes: 50},
		{ID: 2, Name: "Museum", StayMinutes: 60, Hours: []domain.OpeningSpan{
			{Weekday: time.Monday, OpenMinute: 600, CloseMinute: 900},
		}},
	}

	itin, err := BuildItinerary(story, places, nil, uniformMatrix(2, 600), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	visits := itin.Days[0].Visits
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(visits))
	}
	// The museum is closed at 09:10, so the cafe fills the gap first and
	// the museum is reached right at opening.
	if visits[0].PlaceID != 1 {
		t.Fatalf("first visit = place %d, want 1", visits[0].PlaceID)
	}
	if visits[1].PlaceID != 2 {
		t.Fatalf("second visit = place %d, want 2", visits[1].PlaceID)
	}
	if visits[1].ETA != 600 {
		t.Errorf("museum eta = %s, want 10:00", visits[1].ETA)
	}
}

func TestBuildItineraryClosedWeekdaySkipsPlace(t *testing.T) {
	story := domain.Story{
		Days:        1,
		WindowStart: 540,
		WindowEnd:   1080,
		StartDate:   monday,
		SkipLodging: true,
	}
	places := []domain.Place{
		{ID: 1, Name: "Cafe", StayMinutes: 50},
		{ID: 2, Name: "Centre", StayMinutes: 60, Hours: []domain.OpeningSpan{
			{Weekday: time.Tuesday, OpenMinute: 540, CloseMinute: 1080},
		}},
	}

	itin, err := BuildItinerary(story, places, nil, uniformMatrix(2, 600), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	visits := itin.Days[0].Visits
	if len(visits) != 1 || visits[0].PlaceID != 1 {
		t.Fatalf("expected only the cafe on a Monday, got %v", visits)
	}
}

func TestBuildItineraryOverrunCap(t *testing.T) {
	// Window 09:00-10:00 with the default 90 minute overrun cap: a visit
	// may depart as late as 11:30, anything past that is rejected.
	story := domain.Story{
		Days:        1,
		WindowStart: 540,
		WindowEnd:   600,
		StartDate:   monday,
		SkipLodging: true,
	}
	places := []domain.Place{
		{ID: 1, Name: "Falls", StayMinutes: 200},
		{ID: 2, Name: "Palace", StayMinutes: 140},
	}

	itin, err := BuildItinerary(story, places, nil, uniformMatrix(2, 0), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	visits := itin.Days[0].Visits
	if len(visits) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(visits))
	}
	if visits[0].PlaceID != 2 {
		t.Errorf("visit = place %d, want 2", visits[0].PlaceID)
	}
	if visits[0].ETD != 680 {
		t.Errorf("etd = %s, want 11:20", visits[0].ETD)
	}
}

func TestBuildItineraryHopGuard(t *testing.T) {
	story := domain.Story{
		Days:        1,
		WindowStart: 540,
		WindowEnd:   1080,
		StartDate:   monday,
		SkipLodging: true,
	}
	places := []domain.Place{
		{ID: 1, Name: "Town", StayMinutes: 60},
		{ID: 2, Name: "Far Falls", StayMinutes: 60},
	}

	// 4000 seconds rounds to 67 minutes, over the 60 minute hop bound.
	itin, err := BuildItinerary(story, places, nil, uniformMatrix(2, 4000), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	visits := itin.Days[0].Visits
	if len(visits) != 1 || visits[0].PlaceID != 1 {
		t.Fatalf("expected the far place to be skipped, got %v", visits)
	}
}

func TestBuildItineraryNoDuplicatesAcrossDays(t *testing.T) {
	story := domain.Story{
		Days:        2,
		WindowStart: 540,
		WindowEnd:   720,
		StartDate:   monday,
		SkipLodging: true,
	}
	places := []domain.Place{
		{ID: 1, Name: "A", StayMinutes: 90},
		{ID: 2, Name: "B", StayMinutes: 90},
		{ID: 3, Name: "C", StayMinutes: 90},
		{ID: 4, Name: "D", StayMinutes: 90},
	}

	itin, err := BuildItinerary(story, places, nil, uniformMatrix(4, 600), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(itin.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(itin.Days))
	}

	if itin.VisitCount() != 4 {
		t.Fatalf("expected all 4 places scheduled, got %d visits", itin.VisitCount())
	}
	seen := map[int]bool{}
	for d, day := range itin.Days {
		if len(day.Visits) != 2 {
			t.Fatalf("day %d: expected 2 visits, got %d", d, len(day.Visits))
		}
		for _, v := range day.Visits {
			if seen[v.PlaceID] {
				t.Fatalf("place %d scheduled twice", v.PlaceID)
			}
			seen[v.PlaceID] = true
		}
	}
	if itin.Days[1].Date != monday.AddDate(0, 0, 1) {
		t.Errorf("day 1 date = %v, want %v", itin.Days[1].Date, monday.AddDate(0, 0, 1))
	}
}

func TestBuildItineraryMatrixValidation(t *testing.T) {
	story := domain.Story{Days: 1, WindowStart: 540, WindowEnd: 1080, StartDate: monday}
	places := []domain.Place{
		{ID: 1, Name: "A", StayMinutes: 60},
		{ID: 2, Name: "B", StayMinutes: 60},
	}

	_, err := BuildItinerary(story, places, nil, &domain.TravelMatrix{}, DefaultParams())
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("empty matrix: err = %v, want ErrDataUnavailable", err)
	}

	_, err = BuildItinerary(story, places, nil, uniformMatrix(3, 600), DefaultParams())
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("mismatched matrix: err = %v, want ErrDataUnavailable", err)
	}
}

func TestBuildItineraryRejectsBadStory(t *testing.T) {
	places := []domain.Place{{ID: 1, Name: "A", StayMinutes: 60}}

	bad := []domain.Story{
		{Days: 0, WindowStart: 540, WindowEnd: 1080, StartDate: monday},
		{Days: 1, WindowStart: 1080, WindowEnd: 540, StartDate: monday},
		{Days: 1, WindowStart: 540, WindowEnd: 1080},
	}
	for i, story := range bad {
		if _, err := BuildItinerary(story, places, nil, uniformMatrix(1, 0), DefaultParams()); err == nil {
			t.Errorf("story %d: expected validation error", i)
		}
	}
}

func TestBuildItineraryLodgingRotation(t *testing.T) {
	story := domain.Story{
		Days:        3,
		WindowStart: 540,
		WindowEnd:   1080,
		StartDate:   monday,
	}
	places := []domain.Place{{ID: 1, Name: "Palace", StayMinutes: 90}}
	lodgings := []domain.Lodging{
		{ID: 1, Name: "Riverside", Rating: 4.7},
		{ID: 2, Name: "Villa Santi", Rating: 4.5, Tags: []string{domain.EnvironmentalLabelTag}},
		{ID: 3, Name: "Resort", Rating: 4.2},
		{ID: 4, Name: "Guesthouse", Rating: 3.8},
	}

	itin, err := BuildItinerary(story, places, lodgings, uniformMatrix(1, 0), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Nights rotate through the leading candidates; the final day has no
	// following night so it gets no recommendation.
	if itin.Days[0].Lodging == nil || itin.Days[0].Lodging.ID != 1 {
		t.Errorf("night 0 lodging = %+v, want id 1", itin.Days[0].Lodging)
	}
	if itin.Days[1].Lodging == nil || itin.Days[1].Lodging.ID != 2 {
		t.Errorf("night 1 lodging = %+v, want id 2", itin.Days[1].Lodging)
	}
	if itin.Days[2].Lodging != nil {
		t.Errorf("final day lodging = %+v, want none", itin.Days[2].Lodging)
	}
}

func TestBuildItineraryEcoLodgingFirst(t *testing.T) {
	story := domain.Story{
		Days:        2,
		WindowStart: 540,
		WindowEnd:   1080,
		StartDate:   monday,
		EcoFriendly: true,
	}
	places := []domain.Place{{ID: 1, Name: "Palace", StayMinutes: 90}}
	lodgings := []domain.Lodging{
		{ID: 1, Name: "Riverside", Rating: 4.7},
		{ID: 2, Name: "Villa Santi", Rating: 4.5, Tags: []string{domain.EnvironmentalLabelTag}},
	}

	itin, err := BuildItinerary(story, places, lodgings, uniformMatrix(1, 0), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if itin.Days[0].Lodging == nil || itin.Days[0].Lodging.ID != 2 {
		t.Errorf("eco night 0 lodging = %+v, want the labeled house", itin.Days[0].Lodging)
	}
}

func TestBuildItinerarySkipLodging(t *testing.T) {
	story := domain.Story{
		Days:        2,
		WindowStart: 540,
		WindowEnd:   1080,
		StartDate:   monday,
		SkipLodging: true,
	}
	places := []domain.Place{{ID: 1, Name: "Palace", StayMinutes: 90}}
	lodgings := []domain.Lodging{{ID: 1, Name: "Riverside", Rating: 4.7}}

	itin, err := BuildItinerary(story, places, lodgings, uniformMatrix(1, 0), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for d, day := range itin.Days {
		if day.Lodging != nil {
			t.Errorf("day %d: lodging recommended despite skip flag", d)
		}
	}
}
