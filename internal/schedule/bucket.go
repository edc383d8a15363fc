package schedule

import (
	"sort"
	"time"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
)

// Key identifies a grid cell. Hour is -1 for date-granularity buckets
// (month view); week/day buckets key on (date, start hour).
type Key struct {
	Date string
	Hour int
}

// DateKey buckets by the event's local calendar date
func DateKey(t time.Time, loc *time.Location) Key {
	return Key{Date: FormatDate(t.In(loc)), Hour: -1}
}

// HourKey buckets by the local date and the hour containing the start time.
// Multi-hour events are not split; they appear once at their start hour.
func HourKey(t time.Time, loc *time.Location) Key {
	local := t.In(loc)
	return Key{Date: FormatDate(local), Hour: local.Hour()}
}

// Bucket assigns every event to exactly one cell key for the given view
// granularity. Within a bucket events are sorted ascending by start time;
// ties keep insertion order.
func Bucket(events []entities.Appointment, view entities.View, loc *time.Location) map[Key][]entities.Appointment {
	buckets := make(map[Key][]entities.Appointment, len(events))
	for _, ev := range events {
		var k Key
		if view == entities.ViewMonth {
			k = DateKey(ev.StartTime, loc)
		} else {
			k = HourKey(ev.StartTime, loc)
		}
		buckets[k] = append(buckets[k], ev)
	}
	for k := range buckets {
		b := buckets[k]
		sort.SliceStable(b, func(i, j int) bool {
			return b[i].StartTime.Before(b[j].StartTime)
		})
	}
	return buckets
}
