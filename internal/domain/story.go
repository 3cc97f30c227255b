package domain

import (
	"errors"
	"fmt"
	"time"
)

// Story carries the trip frame collected before planning: how many days to
// fill, the daily visiting window, the starting calendar date, and the two
// user flags the planner honors directly.
type Story struct {
	Days        int
	WindowStart ClockMinute
	WindowEnd   ClockMinute
	StartDate   time.Time
	SkipLodging bool
	EcoFriendly bool
}

func (s Story) Validate() error {
	if s.Days < 1 {
		return fmt.Errorf("story: days must be at least 1, got %d", s.Days)
	}
	if s.WindowStart >= s.WindowEnd {
		return errors.New("story: daily window start must precede window end")
	}
	if s.StartDate.IsZero() {
		return errors.New("story: start date is required")
	}
	return nil
}

// DateForDay returns the calendar date of the zero-based itinerary day.
func (s Story) DateForDay(i int) time.Time {
	return s.StartDate.AddDate(0, 0, i)
}

// WeekdayForDay returns the weekday (Sunday = 0) of the zero-based
// itinerary day, used for opening-hours and transit operating-day checks.
func (s Story) WeekdayForDay(i int) time.Weekday {
	return s.DateForDay(i).Weekday()
}
