package domain

import (
	"fmt"
	"time"
)

// Represents one planned stop at a place with its computed schedule.
// Visits are created by the itinerary builder; only the local-search
// refinement pass may rewrite their order and recomputed times.
type Visit struct {
	PlaceID       int         `json:"place_id"`
	PlaceName     string      `json:"place_name"`
	ETA           ClockMinute `json:"eta"`
	ETD           ClockMinute `json:"etd"`
	TravelMinutes int         `json:"travel_minutes"`
}

// Represents the ordered visits of one calendar date, with an optional
// accommodation recommendation for the night.
type Day struct {
	Date    time.Time `json:"date"`
	Visits  []Visit   `json:"visits"`
	Lodging *Lodging  `json:"lodging,omitempty"`
}

// Represents the planned multi-day itinerary. It is the top-level planning
// output and contains no references back into planner state.
type Itinerary struct {
	Days []Day `json:"days"`
}

// DropDay clears all visits (and the lodging recommendation) of the
// zero-based day n. This is the only supported post-hoc edit: the day stays
// in the itinerary as an empty day.
func (it *Itinerary) DropDay(n int) error {
	if n < 0 || n >= len(it.Days) {
		return fmt.Errorf("drop day: day %d out of range (itinerary has %d days)", n, len(it.Days))
	}
	it.Days[n].Visits = nil
	it.Days[n].Lodging = nil
	return nil
}

// VisitCount returns the number of visits across all days.
func (it *Itinerary) VisitCount() int {
	n := 0
	for _, d := range it.Days {
		n += len(d.Visits)
	}
	return n
}
