package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/catalog"
	"trip-planner-service/internal/adapters/geoindex"
	"trip-planner-service/internal/adapters/routing"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// planOutput is the JSON document written to stdout: the built itinerary
// plus the transport plans for every consecutive-visit leg.
type planOutput struct {
	PlanID     string                     `json:"plan_id"`
	Preference domain.TransportPreference `json:"preference"`
	Itinerary  *domain.Itinerary          `json:"itinerary"`
	Legs       []services.DayLegs         `json:"legs"`
}

// main is the application composition root.
// It wires concrete adapters (catalog, OSRM, station index) behind ports,
// runs one planning pass, and prints the itinerary as JSON.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	days := flag.Int("days", 2, "number of itinerary days")
	windowStart := flag.String("window-start", "09:00", "daily visiting window start (HH:MM)")
	windowEnd := flag.String("window-end", "18:00", "daily visiting window end (HH:MM)")
	startDate := flag.String("start-date", "", "first itinerary date (YYYY-MM-DD, default tomorrow)")
	prefName := flag.String("preference", "driving", "transport preference: driving, public_transport, mixed, eco_friendly")
	vehicle := flag.String("vehicle", "", "vehicle class override: car, bus, motorcycle")
	traffic := flag.String("traffic", "", "traffic condition: light, normal, heavy")
	skipLodging := flag.Bool("skip-lodging", false, "do not attach accommodation recommendations")
	matrixPath := flag.String("matrix", "", "optional JSON file with a precomputed NxN travel-time matrix in seconds")
	flag.Parse()

	story, err := buildStory(*days, *windowStart, *windowEnd, *startDate, *skipLodging)
	if err != nil {
		log.Fatal(err)
	}

	pref, err := domain.PresetPreference(*prefName)
	if err != nil {
		log.Fatal(err)
	}
	if *vehicle != "" {
		pref.Vehicle = domain.VehicleClass(*vehicle)
	}
	if *traffic != "" {
		pref.Traffic = domain.TrafficCondition(*traffic)
	}
	story.EcoFriendly = pref.EcoFriendly

	params := services.DefaultParams()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	planID := time.Now().UTC().Format("20060102-150405")
	ctx = obs.WithPlanID(ctx, planID)

	cat, conn, err := openCatalog()
	if err != nil {
		log.Fatal(err)
	}
	if conn != nil {
		defer conn.Close()
	}

	places, err := cat.ListPlaces(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(places) == 0 {
		log.Fatal("catalog has no candidate places")
	}
	lodgings, err := cat.ListLodgings(ctx)
	if err != nil {
		log.Fatal(err)
	}
	schedule, err := cat.LoadTransitSchedule(ctx)
	if err != nil {
		log.Fatal(err)
	}

	provider := newRouteProvider(conn)
	matrix := loadMatrix(ctx, provider, places, *matrixPath, params)

	stations := newStationIndex(ctx, schedule.Stations)
	finder := services.NewTransitFinder(schedule, stations, provider, params)
	planner := services.NewLegPlanner(provider, finder, params)

	itinerary, err := services.BuildItinerary(story, places, lodgings, matrix, params)
	if err != nil {
		log.Fatal(err)
	}

	for i := range itinerary.Days {
		services.RefineDay(&itinerary.Days[i], places, matrix, params)
	}

	legs, err := services.AnnotateItinerary(ctx, itinerary, places, pref, planner, params)
	if err != nil {
		log.Fatal(err)
	}

	out := planOutput{
		PlanID:     planID,
		Preference: pref,
		Itinerary:  itinerary,
		Legs:       legs,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}

func buildStory(days int, windowStart, windowEnd, startDate string, skipLodging bool) (domain.Story, error) {
	start, err := domain.ParseClock(windowStart)
	if err != nil {
		return domain.Story{}, fmt.Errorf("window-start: %w", err)
	}
	end, err := domain.ParseClock(windowEnd)
	if err != nil {
		return domain.Story{}, fmt.Errorf("window-end: %w", err)
	}

	date := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	if startDate != "" {
		date, err = time.Parse("2006-01-02", startDate)
		if err != nil {
			return domain.Story{}, fmt.Errorf("start-date: %w", err)
		}
	}

	story := domain.Story{
		Days:        days,
		WindowStart: start,
		WindowEnd:   end,
		StartDate:   date,
		SkipLodging: skipLodging,
	}
	if err := story.Validate(); err != nil {
		return domain.Story{}, err
	}
	return story, nil
}

// openCatalog picks the catalog backend: Postgres when DATABASE_URL is
// set, a self-initializing SQLite file when DB_PATH is set, and the plain
// JSON seed file otherwise. The returned handle (when non-nil) also backs
// the routed-leg cache.
func openCatalog() (ports.TripCatalog, *sql.DB, error) {
	seedPath := config.Get("SEED_PATH", "data/seeds/demo_trip.json")

	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewSQLTripCatalog(conn), conn, nil
	}

	if dbPath := os.Getenv("DB_PATH"); strings.TrimSpace(dbPath) != "" {
		conn, err := openSqlite(dbPath)
		if err != nil {
			return nil, nil, err
		}
		// Initialize schema and seed demo data on startup for local runs.
		if err := catalog.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		if err := catalog.SeedFromJSON(conn, seedPath); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return catalog.NewSqliteTripCatalog(conn), conn, nil
	}

	cat, err := catalog.NewFileTripCatalog(seedPath)
	if err != nil {
		return nil, nil, err
	}
	return cat, nil, nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}

	return conn, nil
}

// newRouteProvider wires the OSRM client when OSRM_BASE_URL is set. With
// no routing service every road leg is priced from straight-line
// estimates, which keeps the planner usable offline.
func newRouteProvider(conn *sql.DB) ports.RouteProvider {
	baseURL := os.Getenv("OSRM_BASE_URL")
	if strings.TrimSpace(baseURL) == "" {
		log.Println("OSRM_BASE_URL not set, using straight-line estimates for all legs")
		return nil
	}

	var legCache routing.LegCache
	if conn != nil {
		if os.Getenv("DATABASE_URL") != "" {
			legCache = cache.NewSQLLegCache(conn)
		} else {
			legCache = cache.NewSqliteLegCache(conn)
		}
	}

	provider, err := routing.NewOSRMRouteProvider(baseURL, legCache)
	if err != nil {
		log.Printf("OSRM provider unavailable, using straight-line estimates: %v", err)
		return nil
	}
	return provider
}

// loadMatrix resolves the travel-time matrix in order of preference:
// explicit matrix file, OSRM table lookup, straight-line estimate.
func loadMatrix(ctx context.Context, provider ports.RouteProvider, places []domain.Place, matrixPath string, params services.Params) *domain.TravelMatrix {
	if matrixPath != "" {
		raw, err := os.ReadFile(matrixPath)
		if err != nil {
			log.Fatalf("read matrix file: %v", err)
		}
		var seconds [][]int
		if err := json.Unmarshal(raw, &seconds); err != nil {
			log.Fatalf("parse matrix file: %v", err)
		}
		matrix, err := services.NormalizeMatrix(seconds, len(places))
		if err != nil {
			log.Fatalf("matrix file rejected: %v", err)
		}
		return matrix
	}

	if mp, ok := provider.(ports.RouteMatrixProvider); ok {
		coords := make([]domain.Coordinates, len(places))
		for i, p := range places {
			coords[i] = p.Coord
		}
		matrix, err := mp.GetRouteMatrix(ctx, coords, ports.ProfileDriving)
		if err == nil {
			return matrix
		}
		log.Printf("route matrix lookup failed, using straight-line estimates: %v", err)
	}

	return services.EstimateMatrix(places, params.DrivingFallbackSpeedKmh)
}

// newStationIndex backs transit station proximity with Redis when
// REDIS_ADDR is set, so several planner instances can share one loaded
// index; otherwise an in-memory scan over the timetable's stations.
func newStationIndex(ctx context.Context, stations []domain.TransitStation) ports.StationIndex {
	addr := os.Getenv("REDIS_ADDR")
	if strings.TrimSpace(addr) == "" {
		return geoindex.NewMemoryStationIndex(stations)
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	idx := geoindex.NewRedisStationIndex(client, config.Get("STATION_GEO_KEY", "trip:stations"))
	if err := idx.Load(ctx, stations); err != nil {
		log.Printf("redis station index unavailable, falling back to in-memory index: %v", err)
		return geoindex.NewMemoryStationIndex(stations)
	}
	return idx
}
