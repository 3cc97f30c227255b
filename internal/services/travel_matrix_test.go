package services

import (
	"errors"
	"testing"

	"trip-planner-service/internal/domain"
)

func TestEstimateMatrix(t *testing.T) {
	places := []domain.Place{
		{ID: 1, Coord: domain.Coordinates{Lon: 102, Lat: 19}},
		{ID: 2, Coord: domain.Coordinates{Lon: 102, Lat: 20}},
	}

	m := EstimateMatrix(places, 60)

	if m.Len() != 2 {
		t.Fatalf("matrix size = %d, want 2", m.Len())
	}
	if m.At(0, 0) != 0 || m.At(1, 1) != 0 {
		t.Errorf("diagonal not zero: %d, %d", m.At(0, 0), m.At(1, 1))
	}
	// One degree of latitude is ~111.2km; at 60km/h that is 6672 seconds.
	if m.At(0, 1) != 6672 {
		t.Errorf("seconds = %d, want 6672", m.At(0, 1))
	}
	if m.At(0, 1) != m.At(1, 0) {
		t.Errorf("straight-line estimate not symmetric: %d vs %d", m.At(0, 1), m.At(1, 0))
	}
}

func TestEstimateMatrixEmpty(t *testing.T) {
	m := EstimateMatrix(nil, 60)
	if !m.Empty() {
		t.Errorf("expected an empty matrix, got %d entries", m.Len())
	}
}

func TestNormalizeMatrix(t *testing.T) {
	m, err := NormalizeMatrix([][]int{{5, 700}, {900, 11}}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.At(0, 0) != 0 || m.At(1, 1) != 0 {
		t.Errorf("diagonal not forced to zero: %d, %d", m.At(0, 0), m.At(1, 1))
	}
	if m.At(0, 1) != 700 || m.At(1, 0) != 900 {
		t.Errorf("off-diagonal entries disturbed: %d, %d", m.At(0, 1), m.At(1, 0))
	}
}

func TestNormalizeMatrixZeroPlaces(t *testing.T) {
	m, err := NormalizeMatrix(nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Empty() {
		t.Errorf("expected an empty matrix for zero places")
	}
}

func TestNormalizeMatrixDimensionErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  [][]int
		n    int
	}{
		{"no rows", nil, 2},
		{"row count", [][]int{{0, 1}, {1, 0}}, 3},
		{"ragged row", [][]int{{0, 1}, {1}}, 2},
	}
	for _, tc := range cases {
		if _, err := NormalizeMatrix(tc.raw, tc.n); !errors.Is(err, ErrDataUnavailable) {
			t.Errorf("%s: err = %v, want ErrDataUnavailable", tc.name, err)
		}
	}
}

func TestNormalizeMatrixNegativeDuration(t *testing.T) {
	_, err := NormalizeMatrix([][]int{{0, -5}, {5, 0}}, 2)
	if err == nil {
		t.Fatal("expected an error for a negative duration")
	}
}

func TestTravelSeconds(t *testing.T) {
	if got := travelSeconds(1000, 60); got != 60 {
		t.Errorf("1km at 60km/h = %ds, want 60", got)
	}
	if got := travelSeconds(1000, 4.8); got != 750 {
		t.Errorf("1km at walking speed = %ds, want 750", got)
	}
	if got := travelSeconds(0, 60); got != 0 {
		t.Errorf("zero distance = %ds, want 0", got)
	}
	if got := travelSeconds(1000, 0); got != 0 {
		t.Errorf("zero speed = %ds, want 0", got)
	}
}
