package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/adapters/geoindex"
	"trip-planner-service/internal/domain"
)

// lineTwoSchedule is a single bus line with three inbound stations and a
// spread of departures: an early low-floor run, two all-week runs and one
// weekday-only run.
func lineTwoSchedule() (*domain.TransitSchedule, []domain.TransitStation) {
	routes := []domain.TransitRoute{
		{ID: "R1", Name: "Line 2", Kind: "bus", Origin: "Airport", Terminus: "Center"},
		{ID: "R2", Name: "Line 5", Kind: "bus", Origin: "Pier", Terminus: "Market"},
	}
	stations := []domain.TransitStation{
		{ID: "A1", RouteID: "R1", Name: "Airport", Seq: 1, Direction: 0, Coord: domain.Coordinates{Lon: 0, Lat: 0}},
		{ID: "A2", RouteID: "R1", Name: "Phu Vao", Seq: 2, Direction: 0, Coord: domain.Coordinates{Lon: 0, Lat: 0.009}},
		{ID: "A3", RouteID: "R1", Name: "Center", Seq: 3, Direction: 0, Coord: domain.Coordinates{Lon: 0, Lat: 0.018}},
	}

	allWeek := [7]bool{true, true, true, true, true, true, true}
	weekdays := [7]bool{false, true, true, true, true, true, false}
	trips := []domain.TransitTrip{
		{ID: "T1", RouteID: "R1", Direction: 0, Departure: 540, OperatingDays: allWeek},
		{ID: "T2", RouteID: "R1", Direction: 0, Departure: 600, OperatingDays: weekdays},
		{ID: "T3", RouteID: "R1", Direction: 0, Departure: 480, OperatingDays: allWeek, LowFloor: true},
		{ID: "T4", RouteID: "R1", Direction: 0, Departure: 660, OperatingDays: allWeek},
	}

	var stops []domain.TransitStopTime
	for _, trip := range trips {
		for i, st := range stations {
			at := trip.Departure.Add(10 * i)
			stops = append(stops, domain.TransitStopTime{
				TripID: trip.ID, StationID: st.ID, Seq: st.Seq, Arrive: at, Depart: at,
			})
		}
	}

	return domain.BuildTransitSchedule(routes, stations, trips, stops), stations
}

func lineTwoFinder(params Params) (*TransitFinder, []domain.TransitStation) {
	schedule, stations := lineTwoSchedule()
	return NewTransitFinder(schedule, geoindex.NewMemoryStationIndex(stations), nil, params), stations
}

func TestDirectTripsStationInvariants(t *testing.T) {
	finder, stations := lineTwoFinder(DefaultParams())
	a1, a3 := stations[0], stations[2]

	otherRoute := a3
	otherRoute.RouteID = "R2"
	assert.Nil(t, finder.DirectTrips(a1, otherRoute, 0, time.Monday, false), "different routes")

	otherDirection := a3
	otherDirection.Direction = 1
	assert.Nil(t, finder.DirectTrips(a1, otherDirection, 0, time.Monday, false), "different directions")

	assert.Nil(t, finder.DirectTrips(a3, a1, 0, time.Monday, false), "riding backwards")
	assert.Nil(t, finder.DirectTrips(a1, a1, 0, time.Monday, false), "same station")
}

func TestDirectTripsDepartureFilterAndOrder(t *testing.T) {
	finder, stations := lineTwoFinder(DefaultParams())

	options := finder.DirectTrips(stations[0], stations[2], 540, time.Monday, false)
	require.Len(t, options, 3)

	// The 08:00 run already left; the rest come back soonest first.
	assert.Equal(t, domain.ClockMinute(540), options[0].Departure)
	assert.Equal(t, domain.ClockMinute(600), options[1].Departure)
	assert.Equal(t, domain.ClockMinute(660), options[2].Departure)

	assert.Equal(t, domain.ClockMinute(560), options[0].Arrival)
	assert.Equal(t, 20, options[0].RideMinutes())
	assert.Equal(t, "Line 2", options[0].Route.Name)
	assert.Equal(t, "Airport", options[0].Board.Name)
	assert.Equal(t, "Center", options[0].Alight.Name)
}

func TestDirectTripsOperatingDays(t *testing.T) {
	finder, stations := lineTwoFinder(DefaultParams())

	options := finder.DirectTrips(stations[0], stations[2], 0, time.Sunday, false)
	require.Len(t, options, 3)
	for _, o := range options {
		assert.NotEqual(t, "T2", o.Trip.ID, "weekday-only run offered on a Sunday")
	}
}

func TestDirectTripsLowFloorOnly(t *testing.T) {
	finder, stations := lineTwoFinder(DefaultParams())

	options := finder.DirectTrips(stations[0], stations[2], 0, time.Monday, true)
	require.Len(t, options, 1)
	assert.Equal(t, "T3", options[0].Trip.ID)
	assert.True(t, options[0].Trip.LowFloor)
}

func TestDirectTripsOptionCap(t *testing.T) {
	params := DefaultParams()
	params.MaxTripOptions = 2
	finder, stations := lineTwoFinder(params)

	options := finder.DirectTrips(stations[0], stations[2], 0, time.Monday, false)
	require.Len(t, options, 2)
	assert.Equal(t, domain.ClockMinute(480), options[0].Departure)
	assert.Equal(t, domain.ClockMinute(540), options[1].Departure)
}

func TestTransferTripsNotOffered(t *testing.T) {
	finder, stations := lineTwoFinder(DefaultParams())
	assert.Nil(t, finder.TransferTrips(stations[0], stations[2], 0, time.Monday))
}

func TestPlanRoute(t *testing.T) {
	finder, stations := lineTwoFinder(DefaultParams())
	pref := domain.TransportPreference{MaxWalkingMeters: 1500}

	plan, err := finder.PlanRoute(context.Background(), stations[0].Coord, stations[2].Coord, 500, time.Monday, pref)
	require.NoError(t, err)

	assert.Equal(t, "T1", plan.Option.Trip.ID)
	assert.Equal(t, "A1", plan.Option.Board.ID)
	assert.Equal(t, "A3", plan.Option.Alight.ID)
	assert.Zero(t, plan.WalkToMeters)
	assert.Zero(t, plan.WalkFromMeters)
	assert.Equal(t, "Line 2 from Airport to Center, departs 09:00, arrives 09:20", plan.Summary)
}

func TestPlanRouteLowFloorPreference(t *testing.T) {
	finder, stations := lineTwoFinder(DefaultParams())
	pref := domain.TransportPreference{MaxWalkingMeters: 1500, RequireLowFloor: true}

	plan, err := finder.PlanRoute(context.Background(), stations[0].Coord, stations[2].Coord, 0, time.Monday, pref)
	require.NoError(t, err)
	assert.True(t, plan.Option.Trip.LowFloor)
	assert.Equal(t, "T3", plan.Option.Trip.ID)
}

func TestPlanRouteNoStationsInReach(t *testing.T) {
	finder, _ := lineTwoFinder(DefaultParams())
	pref := domain.TransportPreference{MaxWalkingMeters: 1500}

	farAway := domain.Coordinates{Lon: 10, Lat: 10}
	_, err := finder.PlanRoute(context.Background(), farAway, farAway, 500, time.Monday, pref)
	require.ErrorIs(t, err, ErrNoTransitRoute)
}

func TestPlanRouteNoTripAfterLastDeparture(t *testing.T) {
	finder, stations := lineTwoFinder(DefaultParams())
	pref := domain.TransportPreference{MaxWalkingMeters: 1500}

	_, err := finder.PlanRoute(context.Background(), stations[0].Coord, stations[2].Coord, 700, time.Monday, pref)
	require.ErrorIs(t, err, ErrNoTransitRoute)
}

func TestNearbyStationsOrderedByDistance(t *testing.T) {
	finder, stations := lineTwoFinder(DefaultParams())

	got, err := finder.NearbyStations(context.Background(), stations[0].Coord, 5000, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A1", got[0].ID)
	assert.Equal(t, "A2", got[1].ID)
}
