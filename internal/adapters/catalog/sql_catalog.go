package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// Postgres-backed implementation of the TripCatalog port.
type SQLTripCatalog struct{ DB *sql.DB }

func NewSQLTripCatalog(db *sql.DB) *SQLTripCatalog {
	return &SQLTripCatalog{DB: db}
}

// Return all candidate places with their opening hours attached. Places
// and hours come back in one join; rows without hours carry NULL span
// columns.
func (s *SQLTripCatalog) ListPlaces(ctx context.Context) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "catalog.ListPlaces")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip catalog: DB is nil")
	}

	query := `
	SELECT
		p.place_id,
		p.name,
		p.lon,
		p.lat,
		p.stay_minutes,
		p.tags,
		h.weekday,
		h.open_minute,
		h.close_minute
	FROM places p
	LEFT JOIN opening_hours h ON h.place_id = p.place_id
	ORDER BY p.place_id, h.weekday, h.open_minute;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list places: query places join: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 64)
	var cur *domain.Place
	for rows.Next() {
		var (
			p        domain.Place
			tags     string
			weekday  sql.NullInt64
			openMin  sql.NullInt64
			closeMin sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Coord.Lon, &p.Coord.Lat, &p.StayMinutes, &tags, &weekday, &openMin, &closeMin); err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}

		if cur == nil || cur.ID != p.ID {
			p.Tags = splitTags(tags)
			places = append(places, p)
			cur = &places[len(places)-1]
		}
		if weekday.Valid {
			cur.Hours = append(cur.Hours, domain.OpeningSpan{
				Weekday:     time.Weekday(weekday.Int64),
				OpenMinute:  domain.ClockMinute(openMin.Int64),
				CloseMinute: domain.ClockMinute(closeMin.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}

// Return all accommodation candidates.
func (s *SQLTripCatalog) ListLodgings(ctx context.Context) (_ []domain.Lodging, err error) {
	defer obs.Time(ctx, "catalog.ListLodgings")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip catalog: DB is nil")
	}

	query := `
	SELECT lodging_id, name, lon, lat, rating, tags
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
func (s *SQLTripCatalog) LoadTransitSchedule(ctx context.Context) (_ *domain.TransitSchedule, err error) {
	defer obs.Time(ctx, "catalog.LoadTransitSchedule")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip catalog: DB is nil")
	}

	routes := []domain.TransitRoute{}
	rows, err := s.DB.QueryContext(ctx, `SELECT route_id, name, kind, origin, terminus FROM transit_routes ORDER BY route_id;`)
	if err != nil {
		return nil, fmt.Errorf("load transit schedule: query transit_routes: %w", err)
	}
	for rows.Next() {
		var r domain.TransitRoute
		if err := rows.Scan(&r.ID, &r.Name, &r.Kind, &r.Origin, &r.Terminus); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load transit schedule: scan route: %w", err)
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("load transit schedule: route iteration: %w", err)
	}
	rows.Close()

	stations := []domain.TransitStation{}
	rows, err = s.DB.QueryContext(ctx, `SELECT station_id, route_id, name, seq, direction, lon, lat FROM transit_stations ORDER BY route_id, direction, seq;`)
	if err != nil {
		return nil, fmt.Errorf("load transit schedule: query transit_stations: %w", err)
	}
	for rows.Next() {
		var st domain.TransitStation
		if err := rows.Scan(&st.ID, &st.RouteID, &st.Name, &st.Seq, &st.Direction, &st.Coord.Lon, &st.Coord.Lat); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load transit schedule: scan station: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("load transit schedule: station iteration: %w", err)
	}
	rows.Close()

	trips := []domain.TransitTrip{}
	rows, err = s.DB.QueryContext(ctx, `SELECT trip_id, route_id, direction, departure_minute, operating_days, low_floor FROM transit_trips ORDER BY route_id, departure_minute;`)
	if err != nil {
		return nil, fmt.Errorf("load transit schedule: query transit_trips: %w", err)
	}
	for rows.Next() {
		var t domain.TransitTrip
		var departure int
		var days string
		var lowFloor bool
		if err := rows.Scan(&t.ID, &t.RouteID, &t.Direction, &departure, &days, &lowFloor); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load transit schedule: scan trip: %w", err)
		}
		t.Departure = domain.ClockMinute(departure)
		t.LowFloor = lowFloor
		t.OperatingDays, err = bitsToDays(days)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("load transit schedule: trip %s: %w", t.ID, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("load transit schedule: trip iteration: %w", err)
	}
	rows.Close()

	stopTimes := []domain.TransitStopTime{}
	rows, err = s.DB.QueryContext(ctx, `SELECT trip_id, station_id, seq, arrive_minute, depart_minute FROM transit_stop_times ORDER BY trip_id, seq;`)
	if err != nil {
		return nil, fmt.Errorf("load transit schedule: query transit_stop_times: %w", err)
	}
	for rows.Next() {
		var st domain.TransitStopTime
		var arrive, depart int
		if err := rows.Scan(&st.TripID, &st.StationID, &st.Seq, &arrive, &depart); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load transit schedule: scan stop time: %w", err)
		}
		st.Arrive = domain.ClockMinute(arrive)
		st.Depart = domain.ClockMinute(depart)
		stopTimes = append(stopTimes, st)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("load transit schedule: stop time iteration: %w", err)
	}
	rows.Close()

	return domain.BuildTransitSchedule(routes, stations, trips, stopTimes), nil
}
