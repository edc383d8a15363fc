package entities

import "time"

// DayHours is the open interval for a single weekday
type DayHours struct {
	Start   string `json:"start"` // "HH:MM", 24h
	End     string `json:"end"`   // "HH:MM", 24h
	Enabled bool   `json:"enabled"`
}

// WorkingHours maps weekdays to their open hours. Keys follow Go's
// time.Weekday convention (0 = Sunday) everywhere inside the engine;
// Monday-indexed payloads are converted at the adapter boundary.
type WorkingHours map[time.Weekday]DayHours

// Calendar is the per-tenant scheduling configuration
type Calendar struct {
	ID                  string       `json:"id"`
	Timezone            string       `json:"timezone"`
	WorkingHours        WorkingHours `json:"working_hours"`
	SlotDurationMinutes int          `json:"slot_duration"`
}

// Location resolves the calendar timezone, falling back to UTC when the
// name is missing or unknown. All grid and bucket computation runs in
// this location so event-to-cell assignment matches the rendered dates.
func (c *Calendar) Location() *time.Location {
	if c == nil || c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
