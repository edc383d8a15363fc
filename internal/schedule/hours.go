package schedule

import (
	"time"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
)

// Display range fallback when no working hours are configured
const (
	DefaultOpenHour  = 9
	DefaultCloseHour = 17
)

// ResolveDisplayRange returns the widest hour interval covering all enabled
// weekdays: min enabled start through max enabled end. The end hour is
// rounded up so a 17:30 close still renders the 17:00 row. Weekdays with
// unparseable clocks are skipped.
func ResolveDisplayRange(wh entities.WorkingHours) (start, end int) {
	start, end = DefaultOpenHour, DefaultCloseHour
	found := false
	for _, h := range wh {
		if !h.Enabled {
			continue
		}
		sh, eh, ok := dayHourRange(h)
		if !ok {
			continue
		}
		if !found || sh < start {
			start = sh
		}
		if !found || eh > end {
			end = eh
		}
		found = true
	}
	if !found {
		return DefaultOpenHour, DefaultCloseHour
	}
	return start, end
}

// IsBookableDate reports whether a date-granularity cell accepts bookings:
// the weekday is enabled and the date is not before today. Past gating is
// at day granularity, so earlier hours of today stay bookable.
func IsBookableDate(date time.Time, wh entities.WorkingHours, now time.Time) bool {
	if StartOfDay(date).Before(StartOfDay(now.In(date.Location()))) {
		return false
	}
	h, ok := wh[date.Weekday()]
	return ok && h.Enabled
}

// IsBookableHour reports whether an (date, hour) slot accepts bookings: the
// weekday is enabled, the hour falls within that day's open range, and the
// date is not before today. Existing appointments are deliberately not
// consulted; conflict prevention lives upstream.
func IsBookableHour(date time.Time, hour int, wh entities.WorkingHours, now time.Time) bool {
	if StartOfDay(date).Before(StartOfDay(now.In(date.Location()))) {
		return false
	}
	h, ok := wh[date.Weekday()]
	if !ok || !h.Enabled {
		return false
	}
	sh, eh, parsed := dayHourRange(h)
	if !parsed {
		return false
	}
	return hour >= sh && hour < eh
}

// dayHourRange resolves a weekday's open interval to whole hours,
// flooring the start and ceiling the end
func dayHourRange(h entities.DayHours) (start, end int, ok bool) {
	sh, _, err := ParseClock(h.Start)
	if err != nil {
		return 0, 0, false
	}
	eh, em, err := ParseClock(h.End)
	if err != nil {
		return 0, 0, false
	}
	if em > 0 {
		eh++
	}
	return sh, eh, true
}
