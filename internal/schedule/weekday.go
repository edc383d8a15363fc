package schedule

import (
	"time"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
)

// The engine's canonical weekday convention is time.Weekday (0 = Sunday).
// Some upstream payloads index weekdays from Monday; these adapters are the
// only place the other convention is spoken.

// FromMondayIndexed converts a Monday-indexed weekday (0 = Monday) to the
// canonical convention
func FromMondayIndexed(i int) time.Weekday {
	return time.Weekday((i + 1) % 7)
}

// ToMondayIndexed converts a canonical weekday to Monday-indexed form
func ToMondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// WorkingHoursFromMondayIndexed rekeys a Monday-indexed working-hours map
// into the canonical convention
func WorkingHoursFromMondayIndexed(in map[int]entities.DayHours) entities.WorkingHours {
	out := make(entities.WorkingHours, len(in))
	for i, h := range in {
		if i < 0 || i > 6 {
			continue
		}
		out[FromMondayIndexed(i)] = h
	}
	return out
}
