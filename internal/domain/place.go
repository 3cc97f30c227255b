package domain

import "time"

// One weekly opening interval of a place: minutes-of-day bounds on a single
// weekday. Weekdays follow time.Weekday (Sunday = 0).
type OpeningSpan struct {
	Weekday     time.Weekday
	OpenMinute  ClockMinute
	CloseMinute ClockMinute
}

// Represents a candidate point of interest for a planning run.
// Places are assembled (with opening hours already joined flat) before
// planning starts and are never mutated by the planner.
type Place struct {
	ID          int
	Name        string
	Coord       Coordinates
	StayMinutes int
	Tags        []string
	Hours       []OpeningSpan
}

// OpenAt reports whether the place admits an arrival at the given weekday
// and minute-of-day. A place with no opening-hours data is treated as
// always open; a place with hours listed only for other weekdays is closed.
func (p *Place) OpenAt(day time.Weekday, minute ClockMinute) bool {
	if len(p.Hours) == 0 {
		return true
	}
	for _, span := range p.Hours {
		if span.Weekday != day {
			continue
		}
		if minute >= span.OpenMinute && minute < span.CloseMinute {
			return true
		}
	}
	return false
}
