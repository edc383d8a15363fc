package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
	"github.com/orbitdesk/receptionist-scheduler/internal/domain/providers"
	"github.com/orbitdesk/receptionist-scheduler/internal/schedule"
	apperrors "github.com/orbitdesk/receptionist-scheduler/pkg/errors"
	"github.com/orbitdesk/receptionist-scheduler/pkg/retry"
)

const (
	calendarCacheKey        = "scheduler:calendar"
	calendarCacheTTLSeconds = 300
)

// ScheduleService assembles render-ready calendar views. Cells are rebuilt
// from scratch on every request (at most 42 day cells or 24 hour rows), so
// there is no incremental state to invalidate.
type ScheduleService struct {
	backend providers.SchedulingBackend
	cache   providers.CacheProvider
	now     func() time.Time

	// Event refreshes are tagged with a sequence number so a slow response
	// can never overwrite the snapshot of a later-started fetch.
	mu           sync.Mutex
	nextSeq      uint64
	appliedSeq   uint64
	lastCalendar string
	lastRange    entities.DateRange
	lastEvents   []entities.Appointment
}

// NewScheduleService creates a new schedule service. cache may be nil.
func NewScheduleService(backend providers.SchedulingBackend, cache providers.CacheProvider) *ScheduleService {
	return &ScheduleService{
		backend: backend,
		cache:   cache,
		now:     time.Now,
	}
}

// Calendar returns the tenant calendar configuration, served from cache
// when possible. The upstream read is idempotent and retried with backoff.
func (s *ScheduleService) Calendar(ctx context.Context) (*entities.Calendar, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, calendarCacheKey); err == nil {
			var cal entities.Calendar
			if err := json.Unmarshal(raw, &cal); err == nil {
				return &cal, nil
			}
		}
	}

	var cal *entities.Calendar
	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
		loaded, err := s.backend.GetCalendar(ctx)
		if err != nil {
			return err
		}
		cal = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(cal); err == nil {
			if err := s.cache.Set(ctx, calendarCacheKey, raw, calendarCacheTTLSeconds); err != nil {
				log.Debug().Err(err).Msg("failed to cache calendar configuration")
			}
		}
	}
	return cal, nil
}

// GetView computes the view model for a reference date and granularity.
// An empty date means today.
func (s *ScheduleService) GetView(ctx context.Context, dateStr string, view entities.View) (*entities.ScheduleView, error) {
	if !view.Valid() {
		return nil, apperrors.NewValidationError("view must be one of month, week, day")
	}

	cal, err := s.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	loc := cal.Location()
	now := s.now().In(loc)

	ref := schedule.Today(now)
	if dateStr != "" {
		parsed, err := schedule.ParseDate(dateStr, loc)
		if err != nil {
			return nil, apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
		}
		ref = parsed
	}

	grid := schedule.BuildGrid(ref, view)
	rng := grid.Range()

	events, err := s.fetchEvents(ctx, cal.ID, rng)
	if err != nil {
		return nil, err
	}
	buckets := schedule.Bucket(events, view, loc)

	out := &entities.ScheduleView{
		View:          view,
		ReferenceDate: schedule.FormatDate(ref),
		Timezone:      cal.Timezone,
		Range:         rng,
		Navigation: entities.Navigation{
			Previous: schedule.FormatDate(schedule.Previous(ref, view)),
			Next:     schedule.FormatDate(schedule.Next(ref, view)),
			Today:    schedule.FormatDate(schedule.Today(now)),
		},
	}

	if view == entities.ViewMonth {
		out.Weeks = s.assembleMonth(grid, buckets, cal.WorkingHours, ref, now)
		return out, nil
	}

	start, end := schedule.ResolveDisplayRange(cal.WorkingHours)
	out.DisplayStartHour = start
	out.DisplayEndHour = end
	out.Days = s.assembleColumns(grid, buckets, cal.WorkingHours, now, start, end)
	return out, nil
}

// GetRange returns the inclusive local-date range a view would cover. Used
// by the dashboard for prefetching adjacent periods.
func (s *ScheduleService) GetRange(ctx context.Context, dateStr string, view entities.View) (*entities.DateRange, error) {
	if !view.Valid() {
		return nil, apperrors.NewValidationError("view must be one of month, week, day")
	}
	cal, err := s.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	loc := cal.Location()

	ref := schedule.Today(s.now().In(loc))
	if dateStr != "" {
		parsed, err := schedule.ParseDate(dateStr, loc)
		if err != nil {
			return nil, apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
		}
		ref = parsed
	}
	rng := schedule.BuildGrid(ref, view).Range()
	return &rng, nil
}

// AppointmentTypes lists the tenant's bookable service categories
func (s *ScheduleService) AppointmentTypes(ctx context.Context) ([]entities.AppointmentType, error) {
	return s.backend.ListAppointmentTypes(ctx)
}

// fetchEvents loads events for a range and applies the sequence guard: if a
// later-started fetch for the same range already landed, its snapshot wins
// and the stale response is discarded.
func (s *ScheduleService) fetchEvents(ctx context.Context, calendarID string, rng entities.DateRange) ([]entities.Appointment, error) {
	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	events, err := s.backend.ListEvents(ctx, calendarID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sameWindow := s.lastCalendar == calendarID && s.lastRange == rng
	if sameWindow && seq < s.appliedSeq {
		log.Debug().
			Uint64("seq", seq).
			Uint64("applied", s.appliedSeq).
			Msg("discarding stale event refresh")
		return s.lastEvents, nil
	}
	s.appliedSeq = seq
	s.lastCalendar = calendarID
	s.lastRange = rng
	s.lastEvents = events
	return events, nil
}

func (s *ScheduleService) assembleMonth(grid schedule.Grid, buckets map[schedule.Key][]entities.Appointment, wh entities.WorkingHours, ref, now time.Time) [][]entities.MonthCell {
	today := schedule.Today(now)
	var weeks [][]entities.MonthCell
	var week []entities.MonthCell

	for _, day := range grid.Days {
		bucket := buckets[schedule.Key{Date: schedule.FormatDate(day), Hour: -1}]
		events := toEventViews(bucket)

		inline := events
		more := 0
		if len(events) > entities.MonthInlineEventLimit {
			inline = events[:entities.MonthInlineEventLimit]
			more = len(events) - entities.MonthInlineEventLimit
		}

		week = append(week, entities.MonthCell{
			Date:           schedule.FormatDate(day),
			IsCurrentMonth: day.Month() == ref.Month() && day.Year() == ref.Year(),
			IsToday:        day.Equal(today),
			IsPast:         day.Before(today),
			IsBookable:     schedule.IsBookableDate(day, wh, now),
			Events:         events,
			Inline:         inline,
			MoreCount:      more,
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	return weeks
}

func (s *ScheduleService) assembleColumns(grid schedule.Grid, buckets map[schedule.Key][]entities.Appointment, wh entities.WorkingHours, now time.Time, startHour, endHour int) []entities.DayColumn {
	today := schedule.Today(now)
	columns := make([]entities.DayColumn, 0, len(grid.Days))

	for _, day := range grid.Days {
		date := schedule.FormatDate(day)
		col := entities.DayColumn{
			Date:    date,
			IsToday: day.Equal(today),
			IsPast:  day.Before(today),
		}
		for hour := startHour; hour < endHour; hour++ {
			col.Slots = append(col.Slots, entities.HourSlot{
				Hour:       hour,
				IsBookable: schedule.IsBookableHour(day, hour, wh, now),
				Events:     toEventViews(buckets[schedule.Key{Date: date, Hour: hour}]),
			})
		}
		columns = append(columns, col)
	}
	return columns
}

func toEventViews(events []entities.Appointment) []entities.EventView {
	views := make([]entities.EventView, 0, len(events))
	for _, ev := range events {
		views = append(views, entities.NewEventView(ev))
	}
	return views
}
