package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

type tableResponse struct {
	Code      string       `json:"code"`
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

// fetchRoute retrieves one routed leg from the OSRM route endpoint.
func (o *OSRMRouteProvider) fetchRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	profile ports.Profile,
) (ports.RouteResult, error) {
	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f?overview=false",
		o.baseURL, profile,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, endpoint)
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	var rr routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode route response: %w", err)
	}

	if rr.Code != "Ok" {
		return ports.RouteResult{}, fmt.Errorf("route response code %q", rr.Code)
	}
	if len(rr.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("route response has no routes")
	}

	// OSRM returns float metrics; round to nearest integer for domain consistency.
	return ports.RouteResult{
		DistanceMeters:  int(math.Round(rr.Routes[0].Distance)),
		DurationSeconds: int(math.Round(rr.Routes[0].Duration)),
	}, nil
}

// fetchTable retrieves the full pairwise duration and distance matrices
// from the OSRM table endpoint.
func (o *OSRMRouteProvider) fetchTable(
	ctx context.Context,
	points []domain.Coordinates,
	profile ports.Profile,
) (durations [][]int, distances [][]int, err error) {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%f,%f", p.Lon, p.Lat)
	}

	endpoint := fmt.Sprintf(
		"%s/table/v1/%s/%s?annotations=duration,distance",
		o.baseURL, profile, strings.Join(coords, ";"),
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, endpoint)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("table request failed: %w", err)
	}
	defer resp.Body.Close()

	var tr tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, nil, fmt.Errorf("decode table response: %w", err)
	}

	if tr.Code != "Ok" {
		return nil, nil, fmt.Errorf("table response code %q", tr.Code)
	}

	n := len(points)
	if len(tr.Durations) != n || len(tr.Distances) != n {
		return nil, nil, fmt.Errorf(
			"table rows do not match points: durations=%d distances=%d points=%d",
			len(tr.Durations), len(tr.Distances), n,
		)
	}

	durations = make([][]int, n)
	distances = make([][]int, n)
	for i := 0; i < n; i++ {
		if len(tr.Durations[i]) != n || len(tr.Distances[i]) != n {
			return nil, nil, fmt.Errorf("table row %d has wrong length", i)
		}

		durations[i] = make([]int, n)
		distances[i] = make([]int, n)
		for j := 0; j < n; j++ {
			durPtr := tr.Durations[i][j]
			distPtr := tr.Distances[i][j]
			if durPtr == nil || distPtr == nil {
				return nil, nil, fmt.Errorf("table returned no metrics for pair %d -> %d", i, j)
			}

			durations[i][j] = int(math.Round(*durPtr))
			distances[i][j] = int(math.Round(*distPtr))
		}
	}

	return durations, distances, nil
}
