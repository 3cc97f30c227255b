package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// LegCache is the persistent route-result cache the provider consults
// before calling OSRM. Keys are canonical coordinate strings (CoordKey).
type LegCache interface {
	GetMany(ctx context.Context, profile string, origin string, destinations []string) (map[string]ports.RouteResult, error)
	PutMany(ctx context.Context, profile string, origin string, results map[string]ports.RouteResult) error
}

// OSRMRouteProvider implements RouteProvider and RouteMatrixProvider
// against an OSRM HTTP server.
//
// It coordinates:
//   - Coordinate key canonicalization
//   - Persistent leg caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session  *http.Client
	baseURL  string
	legCache LegCache
}

// NewOSRMRouteProvider builds a provider against the given base URL, e.g.
// "https://router.project-osrm.org". legCache may be nil to disable
// caching.
func NewOSRMRouteProvider(baseURL string, legCache LegCache) (*OSRMRouteProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("OSRM base URL is empty")
	}

	provider := &OSRMRouteProvider{
		session:  &http.Client{Timeout: 15 * time.Second},
		baseURL:  strings.TrimRight(baseURL, "/"),
		legCache: legCache,
	}

	return provider, nil
}

// CoordKey canonicalizes a coordinate for cache keys and deduplication.
// Five decimals keep ~1m precision, so nearby float noise maps to one key.
func CoordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lon, c.Lat)
}

// GetRoute returns the routed distance and duration between two points.
func (o *OSRMRouteProvider) GetRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	profile ports.Profile,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	originKey := CoordKey(origin)
	destKey := CoordKey(destination)

	if originKey == destKey {
		return ports.RouteResult{}, nil
	}

	// Check the persistent cache before issuing an external call.
	if o.legCache != nil {
		hits, err := o.legCache.GetMany(ctx, string(profile), originKey, []string{destKey})
		if err != nil {
			return ports.RouteResult{}, fmt.Errorf("OSRM get leg cache: %w", err)
		}
		if r, ok := hits[destKey]; ok {
			return r, nil
		}
	}

	result, err := o.fetchRoute(ctx, origin, destination, profile)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("fetch route %s -> %s: %w", originKey, destKey, err)
	}

	if o.legCache != nil {
		put := map[string]ports.RouteResult{destKey: result}
		if err := o.legCache.PutMany(ctx, string(profile), originKey, put); err != nil {
			log.Printf("leg cache write failed: %v", err)
		}
	}

	return result, nil
}

// GetRouteMatrix returns the full pairwise duration matrix over the given
// points. Rows fully answered by the cache skip the table call; one table
// request covers all remaining rows at once.
func (o *OSRMRouteProvider) GetRouteMatrix(
	ctx context.Context,
	points []domain.Coordinates,
	profile ports.Profile,
) (_ *domain.TravelMatrix, err error) {
	defer obs.Time(ctx, "osrm.GetRouteMatrix")(&err)

	n := len(points)
	seconds := make([][]int, n)
	for i := range seconds {
		seconds[i] = make([]int, n)
	}
	if n < 2 {
		return &domain.TravelMatrix{Seconds: seconds}, nil
	}

	keys := make([]string, n)
	for i, p := range points {
		keys[i] = CoordKey(p)
	}

	cached := make([]map[string]ports.RouteResult, n)
	missing := false
	for i := range points {
		if o.legCache == nil {
			missing = true
			break
		}

		targets := otherKeys(keys, i)
		hits, err := o.legCache.GetMany(ctx, string(profile), keys[i], targets)
		if err != nil {
			return nil, fmt.Errorf("OSRM get leg cache row %d: %w", i, err)
		}
		cached[i] = hits
		if len(hits) < len(targets) {
			missing = true
		}
	}

	if !missing {
		for i := range points {
			for j := range points {
				if i == j {
					continue
				}
				seconds[i][j] = cached[i][keys[j]].DurationSeconds
			}
		}
		return &domain.TravelMatrix{Seconds: seconds}, nil
	}

	durations, distances, err := o.fetchTable(ctx, points, profile)
	if err != nil {
		return nil, fmt.Errorf("fetch table for %d points: %w", n, err)
	}

	for i := range points {
		row := make(map[string]ports.RouteResult, n-1)
		for j := range points {
			if i == j {
				continue
			}
			seconds[i][j] = durations[i][j]
			row[keys[j]] = ports.RouteResult{
				DistanceMeters:  distances[i][j],
				DurationSeconds: durations[i][j],
			}
		}

		if o.legCache != nil {
			if err := o.legCache.PutMany(ctx, string(profile), keys[i], row); err != nil {
				log.Printf("leg cache write failed: %v", err)
			}
		}
	}

	return &domain.TravelMatrix{Seconds: seconds}, nil
}

// otherKeys returns all keys except index i.
func otherKeys(keys []string, i int) []string {
	out := make([]string, 0, len(keys)-1)
	for j, k := range keys {
		if j != i {
			out = append(out, k)
		}
	}
	return out
}
