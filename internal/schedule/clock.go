package schedule

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// ParseClock parses an "HH:MM" 24h clock into hour and minute
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// CombineDateClock combines a local calendar date and an "HH:MM" clock
// into an absolute instant in the given location
func CombineDateClock(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc), nil
}

// DeriveEnd computes an end instant from a start and a type duration.
// Minute overflow carries into hours: 09:40 + 50m yields 10:30.
func DeriveEnd(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}
