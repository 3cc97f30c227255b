package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"trip-planner-service/internal/domain"
)

// Initialize the SQLite catalog schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		place_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lon REAL NOT NULL,
		lat REAL NOT NULL,
		stay_minutes INTEGER NOT NULL,
		tags TEXT NOT NULL DEFAULT ''
	);
	`

	createOpeningHoursQuery := `
	CREATE TABLE IF NOT EXISTS opening_hours (
		place_id INTEGER NOT NULL,
		weekday INTEGER NOT NULL,
		open_minute INTEGER NOT NULL,
		close_minute INTEGER NOT NULL
	);
	`

	createLodgingsQuery := `
	CREATE TABLE IF NOT EXISTS lodgings (
		lodging_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lon REAL NOT NULL,
		lat REAL NOT NULL,
		rating REAL NOT NULL,
		tags TEXT NOT NULL DEFAULT ''
	);
	`

	createTransitRoutesQuery := `
	CREATE TABLE IF NOT EXISTS transit_routes (
		route_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT 'bus',
		origin TEXT NOT NULL,
		terminus TEXT NOT NULL
	);
	`

	createTransitStationsQuery := `
	CREATE TABLE IF NOT EXISTS transit_stations (
		station_id TEXT PRIMARY KEY,
		route_id TEXT NOT NULL,
		name TEXT NOT NULL,
		seq INTEGER NOT NULL,
		direction INTEGER NOT NULL,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`

	createTransitTripsQuery := `
	CREATE TABLE IF NOT EXISTS transit_trips (
		trip_id TEXT PRIMARY KEY,
		route_id TEXT NOT NULL,
		direction INTEGER NOT NULL,
		departure_minute INTEGER NOT NULL,
		operating_days TEXT NOT NULL,
		low_floor INTEGER NOT NULL DEFAULT 0
	);
	`

	createTransitStopTimesQuery := `
	CREATE TABLE IF NOT EXISTS transit_stop_times (
		trip_id TEXT NOT NULL,
		station_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		arrive_minute INTEGER NOT NULL,
		depart_minute INTEGER NOT NULL,
		PRIMARY KEY (trip_id, seq)
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS leg_cache (
        profile TEXT NOT NULL,
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        PRIMARY KEY (profile, origin, destination)
    );
	`

	createHoursIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_opening_hours_place
    ON opening_hours(place_id, weekday);
	`

	statements := []string{
		createPlacesQuery,
		createOpeningHoursQuery,
		createLodgingsQuery,
		createTransitRoutesQuery,
		createTransitStationsQuery,
		createTransitTripsQuery,
		createTransitStopTimesQuery,
		createLegCacheQuery,
		createHoursIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type HoursSeed struct {
	Weekday int                `json:"weekday"`
	Open    domain.ClockMinute `json:"open"`
	Close   domain.ClockMinute `json:"close"`
}

type PlaceSeed struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Lon         float64     `json:"lon"`
	Lat         float64     `json:"lat"`
	StayMinutes int         `json:"stay_minutes"`
	Tags        []string    `json:"tags"`
	Hours       []HoursSeed `json:"hours"`
}

type LodgingSeed struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Lon    float64  `json:"lon"`
	Lat    float64  `json:"lat"`
	Rating float64  `json:"rating"`
	Tags   []string `json:"tags"`
}

type TripSeed struct {
	ID            string             `json:"id"`
	RouteID       string             `json:"route_id"`
	Direction     int                `json:"direction"`
	Departure     domain.ClockMinute `json:"departure"`
	OperatingDays []int              `json:"operating_days"`
	LowFloor      bool               `json:"low_floor"`
}

type StationSeed struct {
	ID        string  `json:"id"`
	RouteID   string  `json:"route_id"`
	Name      string  `json:"name"`
	Seq       int     `json:"seq"`
	Direction int     `json:"direction"`
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
}

type StopTimeSeed struct {
	TripID    string             `json:"trip_id"`
	StationID string             `json:"station_id"`
	Seq       int                `json:"seq"`
	Arrive    domain.ClockMinute `json:"arrive"`
	Depart    domain.ClockMinute `json:"depart"`
}

type TransitSeed struct {
	Routes    []domain.TransitRoute `json:"routes"`
	Stations  []StationSeed         `json:"stations"`
	Trips     []TripSeed            `json:"trips"`
	StopTimes []StopTimeSeed        `json:"stop_times"`
}

type CatalogSeed struct {
	Places   []PlaceSeed   `json:"places"`
	Lodgings []LodgingSeed `json:"lodgings"`
	Transit  TransitSeed   `json:"transit"`
}

// Populate the catalog with planning inputs from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
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
			`INSERT OR REPLACE INTO places (place_id, name, lon, lat, stay_minutes, tags) VALUES (?, ?, ?, ?, ?, ?);`,
			p.ID, p.Name, p.Lon, p.Lat, p.StayMinutes, joinTags(p.Tags),
		); err != nil {
			return fmt.Errorf("seed catalog: insert place_id=%d: %w", p.ID, err)
		}

		if _, err := tx.Exec(`DELETE FROM opening_hours WHERE place_id = ?;`, p.ID); err != nil {
			return fmt.Errorf("seed catalog: clear hours place_id=%d: %w", p.ID, err)
		}
		for _, h := range p.Hours {
			if _, err := tx.Exec(
				`INSERT INTO opening_hours (place_id, weekday, open_minute, close_minute) VALUES (?, ?, ?, ?);`,
				p.ID, h.Weekday, int(h.Open), int(h.Close),
			); err != nil {
				return fmt.Errorf("seed catalog: insert hours place_id=%d: %w", p.ID, err)
			}
		}
	}

	for _, l := range data.Lodgings {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO lodgings (lodging_id, name, lon, lat, rating, tags) VALUES (?, ?, ?, ?, ?, ?);`,
			l.ID, l.Name, l.Lon, l.Lat, l.Rating, joinTags(l.Tags),
		); err != nil {
			return fmt.Errorf("seed catalog: insert lodging_id=%d: %w", l.ID, err)
		}
	}

	for _, r := range data.Transit.Routes {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO transit_routes (route_id, name, kind, origin, terminus) VALUES (?, ?, ?, ?, ?);`,
			r.ID, r.Name, routeKindOrBus(r.Kind), r.Origin, r.Terminus,
		); err != nil {
			return fmt.Errorf("seed catalog: insert route_id=%s: %w", r.ID, err)
		}
	}

	for _, s := range data.Transit.Stations {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO transit_stations (station_id, route_id, name, seq, direction, lon, lat) VALUES (?, ?, ?, ?, ?, ?, ?);`,
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
			`INSERT OR REPLACE INTO transit_trips (trip_id, route_id, direction, departure_minute, operating_days, low_floor) VALUES (?, ?, ?, ?, ?, ?);`,
			t.ID, t.RouteID, t.Direction, int(t.Departure), days, boolToInt(t.LowFloor),
		); err != nil {
			return fmt.Errorf("seed catalog: insert trip_id=%s: %w", t.ID, err)
		}
	}

	for _, st := range data.Transit.StopTimes {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO transit_stop_times (trip_id, station_id, seq, arrive_minute, depart_minute) VALUES (?, ?, ?, ?, ?);`,
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

// LoadSeed parses and validates a catalog seed file.
func LoadSeed(jsonPath string) (*CatalogSeed, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", jsonPath, err)
	}

	var data CatalogSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	for i, p := range data.Places {
		if p.ID <= 0 {
			return nil, fmt.Errorf("invalid place id at index %d: %d", i, p.ID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("place at index %d: name cannot be empty", i)
		}
	}
	for i, l := range data.Lodgings {
		if l.ID <= 0 {
			return nil, fmt.Errorf("invalid lodging id at index %d: %d", i, l.ID)
		}
	}

	return &data, nil
}

func joinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// daysToBits packs a weekday list (Sunday=0) into a 7-character bitstring.
func daysToBits(days []int) (string, error) {
	bits := []byte("0000000")
	for _, d := range days {
		if d < 0 || d > 6 {
			return "", fmt.Errorf("weekday out of range: %d", d)
		}
		bits[d] = '1'
	}
	return string(bits), nil
}

// bitsToDays unpacks a 7-character bitstring into the trip operating-day
// flags, index = weekday with Sunday=0.
func bitsToDays(bits string) ([7]bool, error) {
	var days [7]bool
	if len(bits) != 7 {
		return days, fmt.Errorf("operating days must be 7 characters, got %q", bits)
	}
	for i := 0; i < 7; i++ {
		days[i] = bits[i] == '1'
	}
	return days, nil
}

func routeKindOrBus(kind string) string {
	if kind == "" {
		return domain.RouteKindBus
	}
	return kind
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
