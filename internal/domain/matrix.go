package domain

// TravelMatrix holds pairwise travel times between the candidate places of
// one day, in seconds. Row i column j is the time from place i to place j;
// the matrix is square and not assumed symmetric.
type TravelMatrix struct {
	Seconds [][]int `json:"seconds"`
}

// Len returns the number of places the matrix covers.
func (m *TravelMatrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Seconds)
}

// Empty reports whether the matrix has no usable entries.
func (m *TravelMatrix) Empty() bool { return m.Len() == 0 }

// At returns the travel time from place i to place j in seconds.
func (m *TravelMatrix) At(i, j int) int { return m.Seconds[i][j] }

// AtMinutes returns the travel time from place i to place j rounded to the
// nearest whole minute, which is the granularity itineraries are built in.
func (m *TravelMatrix) AtMinutes(i, j int) int {
	return (m.Seconds[i][j] + 30) / 60
}
