package domain

import (
	"encoding/json"
	"fmt"
)

// ClockMinute is a minute-of-day in [0, 1440). Arrival and departure times
// are exchanged as "HH:MM" strings; internally all schedule arithmetic is
// plain integer minutes.
type ClockMinute int

// ParseClock converts an "HH:MM" string into a minute-of-day.
func ParseClock(s string) (ClockMinute, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return ClockMinute(h*60 + m), nil
}

// String formats the minute-of-day as "HH:MM". Values past midnight wrap so
// that a visit overrunning the day still renders a valid wall-clock time.
func (c ClockMinute) String() string {
	m := int(c) % (24 * 60)
	if m < 0 {
		m += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Add returns the clock shifted by the given number of minutes.
func (c ClockMinute) Add(minutes int) ClockMinute { return c + ClockMinute(minutes) }

func (c ClockMinute) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockMinute) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
