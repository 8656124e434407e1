package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseTimeOfDay converts "HH:MM" to minutes since midnight.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate validates a "YYYY-MM-DD" date string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// Overlaps reports whether two half-open windows [s1,e1) and [s2,e2) on the
// same day share at least one instant. Back-to-back windows (e1 == s2) do
// not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// CombineDateTime composes a date and a time of day into a single instant in
// loc, so it can be compared against a wall clock reading.
func CombineDateTime(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+timeOfDay, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, timeOfDay, err)
	}
	return t, nil
}

// MinutesOfDay returns the minutes since midnight of t in its own location.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
