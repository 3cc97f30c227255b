package catalog

import (
	"context"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
)

// FileTripCatalog serves planning inputs straight from a JSON seed file,
// for runs that need no database at all. The file is parsed once at
// construction; the catalog is read-only afterwards.
type FileTripCatalog struct {
	seed *CatalogSeed
}

func NewFileTripCatalog(jsonPath string) (*FileTripCatalog, error) {
	seed, err := LoadSeed(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("file trip catalog: %w", err)
	}
	return &FileTripCatalog{seed: seed}, nil
}

// Return all candidate places with their opening hours attached.
func (f *FileTripCatalog) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	places := make([]domain.Place, 0, len(f.seed.Places))
	for _, p := range f.seed.Places {
		place := domain.Place{
			ID:          p.ID,
			Name:        p.Name,
			Coord:       domain.Coordinates{Lon: p.Lon, Lat: p.Lat},
			StayMinutes: p.StayMinutes,
			Tags:        p.Tags,
		}
		for _, h := range p.Hours {
			if h.Weekday < 0 || h.Weekday > 6 {
				return nil, fmt.Errorf("file trip catalog: place %d: weekday out of range: %d", p.ID, h.Weekday)
			}
			place.Hours = append(place.Hours, domain.OpeningSpan{
				Weekday:     time.Weekday(h.Weekday),
				OpenMinute:  h.Open,
				CloseMinute: h.Close,
			})
		}
		places = append(places, place)
	}
	return places, nil
}

// Return all accommodation candidates.
func (f *FileTripCatalog) ListLodgings(ctx context.Context) ([]domain.Lodging, error) {
	lodgings := make([]domain.Lodging, 0, len(f.seed.Lodgings))
	for _, l := range f.seed.Lodgings {
		lodgings = append(lodgings, domain.Lodging{
			ID:     l.ID,
			Name:   l.Name,
			Coord:  domain.Coordinates{Lon: l.Lon, Lat: l.Lat},
			Rating: l.Rating,
			Tags:   l.Tags,
		})
	}
	return lodgings, nil
}

// Load the full transit timetable, indexed for trip lookup.
func (f *FileTripCatalog) LoadTransitSchedule(ctx context.Context) (*domain.TransitSchedule, error) {
	t := f.seed.Transit

	routes := make([]domain.TransitRoute, 0, len(t.Routes))
	for _, r := range t.Routes {
		r.Kind = routeKindOrBus(r.Kind)
		routes = append(routes, r)
	}

	stations := make([]domain.TransitStation, 0, len(t.Stations))
	for _, s := range t.Stations {
		stations = append(stations, domain.TransitStation{
			ID:        s.ID,
			RouteID:   s.RouteID,
			Name:      s.Name,
			Seq:       s.Seq,
			Direction: s.Direction,
			Coord:     domain.Coordinates{Lon: s.Lon, Lat: s.Lat},
		})
	}

	trips := make([]domain.TransitTrip, 0, len(t.Trips))
	for _, tr := range t.Trips {
		days, err := daysToFlags(tr.OperatingDays)
		if err != nil {
			return nil, fmt.Errorf("file trip catalog: trip %s: %w", tr.ID, err)
		}
		trips = append(trips, domain.TransitTrip{
			ID:            tr.ID,
			RouteID:       tr.RouteID,
			Direction:     tr.Direction,
			Departure:     tr.Departure,
			OperatingDays: days,
			LowFloor:      tr.LowFloor,
		})
	}

	stopTimes := make([]domain.TransitStopTime, 0, len(t.StopTimes))
	for _, st := range t.StopTimes {
		stopTimes = append(stopTimes, domain.TransitStopTime{
			TripID:    st.TripID,
			StationID: st.StationID,
			Seq:       st.Seq,
			Arrive:    st.Arrive,
			Depart:    st.Depart,
		})
	}

	return domain.BuildTransitSchedule(routes, stations, trips, stopTimes), nil
}

// daysToFlags expands a weekday list (Sunday=0) into per-day flags.
func daysToFlags(days []int) ([7]bool, error) {
	var flags [7]bool
	for _, d := range days {
		if d < 0 || d > 6 {
			return flags, fmt.Errorf("weekday out of range: %d", d)
		}
		flags[d] = true
	}
	return flags, nil
}
