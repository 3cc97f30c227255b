package domain

import (
	"sort"
	"time"
)

// Coarse transit route kinds, after the GTFS route_type classes.
const (
	RouteKindBus  = "bus"
	RouteKindRail = "rail"
)

// TransitRoute is one fixed bus or rail line, described end to end.
// An empty Kind means bus.
type TransitRoute struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind,omitempty"`
	Origin   string `json:"origin"`
	Terminus string `json:"terminus"`
}

// TransitStation is one stop on a route, in one direction of travel.
// Stations are duplicated per direction so Seq is strictly increasing
// along the ride.
type TransitStation struct {
	ID        string      `json:"id"`
	RouteID   string      `json:"route_id"`
	Name      string      `json:"name"`
	Seq       int         `json:"seq"`
	Direction int         `json:"direction"`
	Coord     Coordinates `json:"coord"`
}

// TransitTrip is one scheduled run of a route in one direction.
type TransitTrip struct {
	ID            string      `json:"id"`
	RouteID       string      `json:"route_id"`
	Direction     int         `json:"direction"`
	Departure     ClockMinute `json:"departure"`
	OperatingDays [7]bool     `json:"operating_days"`
	LowFloor      bool        `json:"low_floor"`
}

// OperatesOn reports whether the trip runs on the given weekday.
func (t TransitTrip) OperatesOn(w time.Weekday) bool {
	return t.OperatingDays[int(w)]
}

// TransitStopTime is the scheduled call of a trip at one station.
type TransitStopTime struct {
	TripID    string      `json:"trip_id"`
	StationID string      `json:"station_id"`
	Seq       int         `json:"seq"`
	Arrive    ClockMinute `json:"arrive"`
	Depart    ClockMinute `json:"depart"`
}

// TransitSchedule is the in-memory timetable the trip finder searches.
// Build it with BuildTransitSchedule so the lookup maps are populated.
type TransitSchedule struct {
	Routes    []TransitRoute
	Stations  []TransitStation
	Trips     []TransitTrip
	StopTimes []TransitStopTime

	routeByID    map[string]TransitRoute
	stationByID  map[string]TransitStation
	tripsByRoute map[string][]TransitTrip
	stopsByTrip  map[string][]TransitStopTime
}

// BuildTransitSchedule indexes the raw timetable rows for lookup. Stop
// times are kept sorted by sequence within each trip, trips by scheduled
// departure within each route.
func BuildTransitSchedule(routes []TransitRoute, stations []TransitStation, trips []TransitTrip, stopTimes []TransitStopTime) *TransitSchedule {
	s := &TransitSchedule{
		Routes:    routes,
		Stations:  stations,
		Trips:     trips,
		StopTimes: stopTimes,

		routeByID:    make(map[string]TransitRoute, len(routes)),
		stationByID:  make(map[string]TransitStation, len(stations)),
		tripsByRoute: make(map[string][]TransitTrip),
		stopsByTrip:  make(map[string][]TransitStopTime),
	}
	for _, r := range routes {
		s.routeByID[r.ID] = r
	}
	for _, st := range stations {
		s.stationByID[st.ID] = st
	}
	for _, t := range trips {
		s.tripsByRoute[t.RouteID] = append(s.tripsByRoute[t.RouteID], t)
	}
	for _, ts := range s.tripsByRoute {
		sort.Slice(ts, func(i, j int) bool { return ts[i].Departure < ts[j].Departure })
	}
	for _, st := range stopTimes {
		s.stopsByTrip[st.TripID] = append(s.stopsByTrip[st.TripID], st)
	}
	for _, sts := range s.stopsByTrip {
		sort.Slice(sts, func(i, j int) bool { return sts[i].Seq < sts[j].Seq })
	}
	return s
}

// RouteByID looks up a route definition.
func (s *TransitSchedule) RouteByID(id string) (TransitRoute, bool) {
	r, ok := s.routeByID[id]
	return r, ok
}

// StationByID looks up a station definition.
func (s *TransitSchedule) StationByID(id string) (TransitStation, bool) {
	st, ok := s.stationByID[id]
	return st, ok
}

// TripsByRoute returns the trips of a route sorted by departure time.
func (s *TransitSchedule) TripsByRoute(routeID string) []TransitTrip {
	return s.tripsByRoute[routeID]
}

// StopsByTrip returns the calls of a trip sorted by sequence.
func (s *TransitSchedule) StopsByTrip(tripID string) []TransitStopTime {
	return s.stopsByTrip[tripID]
}

// StopAt returns the call of a trip at one station, if the trip serves it.
func (s *TransitSchedule) StopAt(tripID, stationID string) (TransitStopTime, bool) {
	for _, st := range s.stopsByTrip[tripID] {
		if st.StationID == stationID {
			return st, true
		}
	}
	return TransitStopTime{}, false
}
