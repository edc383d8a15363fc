package schedule

import (
	"time"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
)

// DateLayout is the local calendar-date format used across the engine and
// on the upstream request boundary, so cell assignment and event fetching
// agree near midnight.
const DateLayout = "2006-01-02"

// Grid is the ordered set of day cells computed for one (reference date,
// view). Days are consecutive midnights in the reference's location; hour
// expansion for week/day views happens at view-assembly time.
type Grid struct {
	View      entities.View
	Reference time.Time
	Days      []time.Time
}

// Range returns the inclusive local-date range covered by the grid
func (g Grid) Range() entities.DateRange {
	if len(g.Days) == 0 {
		return entities.DateRange{}
	}
	return entities.DateRange{
		Start: FormatDate(g.Days[0]),
		End:   FormatDate(g.Days[len(g.Days)-1]),
	}
}

// BuildGrid computes the day cells for the given reference date and view.
//
// Month: a Sunday-aligned rectangle from the Sunday on/before the first of
// the month through the Saturday on/after its last day, so the result is
// always a whole number of 7-day rows.
// Week: exactly 7 days from the Sunday on/before the reference date.
// Day: the reference date alone.
func BuildGrid(ref time.Time, view entities.View) Grid {
	ref = StartOfDay(ref)
	g := Grid{View: view, Reference: ref}

	switch view {
	case entities.ViewWeek:
		start := StartOfWeek(ref)
		for i := 0; i < 7; i++ {
			g.Days = append(g.Days, start.AddDate(0, 0, i))
		}
	case entities.ViewDay:
		g.Days = []time.Time{ref}
	default:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		last := first.AddDate(0, 1, -1)
		start := StartOfWeek(first)
		end := endOfWeek(last)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			g.Days = append(g.Days, d)
		}
	}
	return g
}

// Previous shifts the reference date back by one grid unit
func Previous(ref time.Time, view entities.View) time.Time {
	return navigate(ref, view, -1)
}

// Next shifts the reference date forward by one grid unit
func Next(ref time.Time, view entities.View) time.Time {
	return navigate(ref, view, 1)
}

// Today resets navigation to the current date
func Today(now time.Time) time.Time {
	return StartOfDay(now)
}

func navigate(ref time.Time, view entities.View, direction int) time.Time {
	ref = StartOfDay(ref)
	switch view {
	case entities.ViewWeek:
		return ref.AddDate(0, 0, 7*direction)
	case entities.ViewDay:
		return ref.AddDate(0, 0, direction)
	default:
		// Anchor on the first of the month so a day-31 reference cannot
		// skip February when stepping months.
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return first.AddDate(0, direction, 0)
	}
}

// StartOfDay truncates t to local midnight
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Sunday on/before t, at local midnight
func StartOfWeek(t time.Time) time.Time {
	t = StartOfDay(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

func endOfWeek(t time.Time) time.Time {
	t = StartOfDay(t)
	return t.AddDate(0, 0, int(time.Saturday-t.Weekday()))
}

// FormatDate renders a local calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a local calendar date in the given location
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
