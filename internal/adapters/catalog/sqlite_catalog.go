package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
)

// SQLite-backed implementation of the TripCatalog port.
type SqliteTripCatalog struct{ DB *sql.DB }

func NewSqliteTripCatalog(db *sql.DB) *SqliteTripCatalog {
	return &SqliteTripCatalog{DB: db}
}

// Return all candidate places with their opening hours attached.
func (s *SqliteTripCatalog) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip catalog: DB is nil")
	}

	query := `
	SELECT
		place_id,
		name,
		lon,
		lat,
		stay_minutes,
		tags
	FROM places
	ORDER BY place_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 64)
	for rows.Next() {
		var p domain.Place
		var tags string
		if err := rows.Scan(&p.ID, &p.Name, &p.Coord.Lon, &p.Coord.Lat, &p.StayMinutes, &tags); err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}
		p.Tags = splitTags(tags)
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	hours, err := s.listOpeningHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	for i := range places {
		places[i].Hours = hours[places[i].ID]
	}

	return places, nil
}

// listOpeningHours loads all weekly spans grouped by place.
func (s *SqliteTripCatalog) listOpeningHours(ctx context.Context) (map[int][]domain.OpeningSpan, error) {
	query := `
	SELECT
		place_id,
		weekday,
		open_minute,
		close_minute
	FROM opening_hours
	ORDER BY place_id, weekday, open_minute;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query opening_hours table: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]domain.OpeningSpan)
	for rows.Next() {
		var placeID, weekday, openMin, closeMin int
		if err := rows.Scan(&placeID, &weekday, &openMin, &closeMin); err != nil {
			return nil, fmt.Errorf("scan opening hours row: %w", err)
		}
		out[placeID] = append(out[placeID], domain.OpeningSpan{
			Weekday:     time.Weekday(weekday),
			OpenMinute:  domain.ClockMinute(openMin),
			CloseMinute: domain.ClockMinute(closeMin),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("opening hours row iteration: %w", err)
	}

	return out, nil
}

// Return all accommodation candidates.
func (s *SqliteTripCatalog) ListLodgings(ctx context.Context) ([]domain.Lodging, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip catalog: DB is nil")
	}

	query := `
	SELECT
		lodging_id,
		name,
		lon,
		lat,
		rating,
		tags
	FROM lodgings
	ORDER BY lodging_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list lodgings: query lodgings table: %w", err)
	}
	defer rows.Close()

	lodgings := make([]domain.Lodging, 0, 16)
	for rows.Next() {
		var l domain.Lodging
		var tags string
		if err := rows.Scan(&l.ID, &l.Name, &l.Coord.Lon, &l.Coord.Lat, &l.Rating, &tags); err != nil {
			return nil, fmt.Errorf("list lodgings: scan row: %w", err)
		}
		l.Tags = splitTags(tags)
		lodgings = append(lodgings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lodgings: row iteration: %w", err)
	}

	return lodgings, nil
}

// Load the full transit timetable, indexed for trip lookup.
func (s *SqliteTripCatalog) LoadTransitSchedule(ctx context.Context) (*domain.TransitSchedule, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip catalog: DB is nil")
	}

	routes, err := s.listRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transit schedule: %w", err)
	}
	stations, err := s.listStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transit schedule: %w", err)
	}
	trips, err := s.listTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transit schedule: %w", err)
	}
	stopTimes, err := s.listStopTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transit schedule: %w", err)
	}

	return domain.BuildTransitSchedule(routes, stations, trips, stopTimes), nil
}

func (s *SqliteTripCatalog) listRoutes(ctx context.Context) ([]domain.TransitRoute, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT route_id, name, kind, origin, terminus FROM transit_routes ORDER BY route_id;`)
	if err != nil {
		return nil, fmt.Errorf("query transit_routes table: %w", err)
	}
	defer rows.Close()

	routes := []domain.TransitRoute{}
	for rows.Next() {
		var r domain.TransitRoute
		if err := rows.Scan(&r.ID, &r.Name, &r.Kind, &r.Origin, &r.Terminus); err != nil {
			return nil, fmt.Errorf("scan route row: %w", err)
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("route row iteration: %w", err)
	}
	return routes, nil
}

func (s *SqliteTripCatalog) listStations(ctx context.Context) ([]domain.TransitStation, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT station_id, route_id, name, seq, direction, lon, lat FROM transit_stations ORDER BY route_id, direction, seq;`)
	if err != nil {
		return nil, fmt.Errorf("query transit_stations table: %w", err)
	}
	defer rows.Close()

	stations := []domain.TransitStation{}
	for rows.Next() {
		var st domain.TransitStation
		if err := rows.Scan(&st.ID, &st.RouteID, &st.Name, &st.Seq, &st.Direction, &st.Coord.Lon, &st.Coord.Lat); err != nil {
			return nil, fmt.Errorf("scan station row: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("station row iteration: %w", err)
	}
	return stations, nil
}

func (s *SqliteTripCatalog) listTrips(ctx context.Context) ([]domain.TransitTrip, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT trip_id, route_id, direction, departure_minute, operating_days, low_floor FROM transit_trips ORDER BY route_id, departure_minute;`)
	if err != nil {
		return nil, fmt.Errorf("query transit_trips table: %w", err)
	}
	defer rows.Close()

	trips := []domain.TransitTrip{}
	for rows.Next() {
		var t domain.TransitTrip
		var departure, lowFloor int
		var days string
		if err := rows.Scan(&t.ID, &t.RouteID, &t.Direction, &departure, &days, &lowFloor); err != nil {
			return nil, fmt.Errorf("scan trip row: %w", err)
		}
		t.Departure = domain.ClockMinute(departure)
		t.LowFloor = lowFloor != 0
		t.OperatingDays, err = bitsToDays(days)
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", t.ID, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trip row iteration: %w", err)
	}
	return trips, nil
}

func (s *SqliteTripCatalog) listStopTimes(ctx context.Context) ([]domain.TransitStopTime, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT trip_id, station_id, seq, arrive_minute, depart_minute FROM transit_stop_times ORDER BY trip_id, seq;`)
	if err != nil {
		return nil, fmt.Errorf("query transit_stop_times table: %w", err)
	}
	defer rows.Close()

	stopTimes := []domain.TransitStopTime{}
	for rows.Next() {
		var st domain.TransitStopTime
		var arrive, depart int
		if err := rows.Scan(&st.TripID, &st.StationID, &st.Seq, &arrive, &depart); err != nil {
			return nil, fmt.Errorf("scan stop time row: %w", err)
		}
		st.Arrive = domain.ClockMinute(arrive)
		st.Depart = domain.ClockMinute(depart)
		stopTimes = append(stopTimes, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stop time row iteration: %w", err)
	}
	return stopTimes, nil
}
