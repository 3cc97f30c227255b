package catalog

import (
	"database/sql"
	"fmt"
)

// Populate a Postgres catalog with planning inputs from a JSON file. Twin
// of SeedFromJSON with Postgres placeholders and upsert syntax; the DDL in
// InitSchema is engine-neutral and is shared by both.
func SeedFromJSONPg(db *sql.DB, jsonPath string) error {
	data, err := LoadSeed(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range data.Places {
		if _, err := tx.Exec(
			`INSERT INTO places (place_id, name, lon, lat, stay_minutes, tags)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (place_id) DO UPDATE
			SET name = EXCLUDED.name,
				lon = EXCLUDED.lon,
				lat = EXCLUDED.lat,
				stay_minutes = EXCLUDED.stay_minutes,
				tags = EXCLUDED.tags;`,
			p.ID, p.Name, p.Lon, p.Lat, p.StayMinutes, joinTags(p.Tags),
		); err != nil {
			return fmt.Errorf("seed catalog: insert place_id=%d: %w", p.ID, err)
		}

		if _, err := tx.Exec(`DELETE FROM opening_hours WHERE place_id = $1;`, p.ID); err != nil {
			return fmt.Errorf("seed catalog: clear hours place_id=%d: %w", p.ID, err)
		}
		for _, h := range p.Hours {
			if _, err := tx.Exec(
				`INSERT INTO opening_hours (place_id, weekday, open_minute, close_minute) VALUES ($1, $2, $3, $4);`,
				p.ID, h.Weekday, int(h.Open), int(h.Close),
			); err != nil {
				return fmt.Errorf("seed catalog: insert hours place_id=%d: %w", p.ID, err)
			}
		}
	}

	for _, l := range data.Lodgings {
		if _, err := tx.Exec(
			`INSERT INTO lodgings (lodging_id, name, lon, lat, rating, tags)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (lodging_id) DO UPDATE
			SET name = EXCLUDED.name,
				lon = EXCLUDED.lon,
				lat = EXCLUDED.lat,
				rating = EXCLUDED.rating,
				tags = EXCLUDED.tags;`,
			l.ID, l.Name, l.Lon, l.Lat, l.Rating, joinTags(l.Tags),
		); err != nil {
			return fmt.Errorf("seed catalog: insert lodging_id=%d: %w", l.ID, err)
		}
	}

	for _, r := range data.Transit.Routes {
		if _, err := tx.Exec(
			`INSERT INTO transit_routes (route_id, name, kind, origin, terminus)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (route_id) DO UPDATE
			SET name = EXCLUDED.name,
				kind = EXCLUDED.kind,
				origin = EXCLUDED.origin,
				terminus = EXCLUDED.terminus;`,
			r.ID, r.Name, routeKindOrBus(r.Kind), r.Origin, r.Terminus,
		); err != nil {
			return fmt.Errorf("seed catalog: insert route_id=%s: %w", r.ID, err)
		}
	}

	for _, s := range data.Transit.Stations {
		if _, err := tx.Exec(
			`INSERT INTO transit_stations (station_id, route_id, name, seq, direction, lon, lat)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (station_id) DO UPDATE
			SET route_id = EXCLUDED.route_id,
				name = EXCLUDED.name,
				seq = EXCLUDED.seq,
				direction = EXCLUDED.direction,
				lon = EXCLUDED.lon,
				lat = EXCLUDED.lat;`,
			s.ID, s.RouteID, s.Name, s.Seq, s.Direction, s.Lon, s.Lat,
		); err != nil {
			return fmt.Errorf("seed catalog: insert station_id=%s: %w", s.ID, err)
		}
	}

	for _, t := range data.Transit.Trips {
		days, err := daysToBits(t.OperatingDays)
		if err != nil {
			return fmt.Errorf("seed catalog: trip_id=%s: %w", t.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO transit_trips (trip_id, route_id, direction, departure_minute, operating_days, low_floor)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (trip_id) DO UPDATE
			SET route_id = EXCLUDED.route_id,
				direction = EXCLUDED.direction,
				departure_minute = EXCLUDED.departure_minute,
				operating_days = EXCLUDED.operating_days,
				low_floor = EXCLUDED.low_floor;`,
			t.ID, t.RouteID, t.Direction, int(t.Departure), days, boolToInt(t.LowFloor),
		); err != nil {
			return fmt.Errorf("seed catalog: insert trip_id=%s: %w", t.ID, err)
		}
	}

	for _, st := range data.Transit.StopTimes {
		if _, err := tx.Exec(
			`INSERT INTO transit_stop_times (trip_id, station_id, seq, arrive_minute, depart_minute)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (trip_id, seq) DO UPDATE
			SET station_id = EXCLUDED.station_id,
				arrive_minute = EXCLUDED.arrive_minute,
				depart_minute = EXCLUDED.depart_minute;`,
			st.TripID, st.StationID, st.Seq, int(st.Arrive), int(st.Depart),
		); err != nil {
			return fmt.Errorf("seed catalog: insert stop time trip_id=%s seq=%d: %w", st.TripID, st.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
