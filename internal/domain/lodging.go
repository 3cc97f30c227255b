package domain

// EnvironmentalLabelTag marks accommodations with a recognized
// environmental certification; the eco preference ranks these first.
const EnvironmentalLabelTag = "environmental label"

// Represents an accommodation candidate attachable to a planned day.
type Lodging struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Coord  Coordinates `json:"coord"`
	Rating float64     `json:"rating"`
	Tags   []string    `json:"tags,omitempty"`
}

// HasEnvironmentalLabel reports whether the lodging carries the
// environmental certification tag.
func (l *Lodging) HasEnvironmentalLabel() bool {
	for _, t := range l.Tags {
		if t == EnvironmentalLabelTag {
			return true
		}
	}
	return false
}
