package services

import (
	"context"
	"strings"
	"time"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
	"github.com/orbitdesk/receptionist-scheduler/internal/domain/providers"
	"github.com/orbitdesk/receptionist-scheduler/internal/schedule"
	apperrors "github.com/orbitdesk/receptionist-scheduler/pkg/errors"
)

// CalendarSource supplies the tenant calendar configuration. Implemented by
// ScheduleService so both services share one cached copy.
type CalendarSource interface {
	Calendar(ctx context.Context) (*entities.Calendar, error)
}

// AppointmentService drives the appointment lifecycle: create, update,
// confirm, cancel, delete. It combines form-shaped fields into absolute
// instants and derives end times from appointment-type durations; the
// upstream API owns status transitions and conflict enforcement.
type AppointmentService struct {
	backend   providers.SchedulingBackend
	calendars CalendarSource
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(backend providers.SchedulingBackend, calendars CalendarSource) *AppointmentService {
	return &AppointmentService{
		backend:   backend,
		calendars: calendars,
	}
}

// CreateAppointmentInput carries the raw form fields for a new appointment
type CreateAppointmentInput struct {
	Date              string `json:"date"`       // YYYY-MM-DD, local to the calendar
	StartClock        string `json:"start_time"` // HH:MM
	EndClock          string `json:"end_time"`   // HH:MM, optional
	Title             string `json:"title"`
	CallerName        string `json:"caller_name"`
	CallerPhone       string `json:"caller_phone"`
	CallerEmail       string `json:"caller_email"`
	AppointmentTypeID string `json:"appointment_type_id"`
	Notes             string `json:"notes"`
}

// UpdateAppointmentInput carries partial form fields for an existing
// appointment; nil fields are left unchanged
type UpdateAppointmentInput struct {
	Date              *string `json:"date"`
	StartClock        *string `json:"start_time"`
	EndClock          *string `json:"end_time"`
	Title             *string `json:"title"`
	CallerName        *string `json:"caller_name"`
	CallerPhone       *string `json:"caller_phone"`
	CallerEmail       *string `json:"caller_email"`
	AppointmentTypeID *string `json:"appointment_type_id"`
	Notes             *string `json:"notes"`
}

// Create validates the form fields, combines date and clock values into
// instants, derives the end time when it was not entered explicitly, and
// creates the appointment upstream. The server assigns the id and the
// initial pending status.
func (s *AppointmentService) Create(ctx context.Context, input *CreateAppointmentInput) (*entities.Appointment, error) {
	if strings.TrimSpace(input.CallerName) == "" {
		return nil, apperrors.NewValidationError("caller name is required")
	}
	if strings.TrimSpace(input.CallerPhone) == "" {
		return nil, apperrors.NewValidationError("caller phone is required")
	}
	if input.Date == "" || input.StartClock == "" {
		return nil, apperrors.NewValidationError("date and start time are required")
	}

	cal, err := s.calendars.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	loc := cal.Location()

	start, err := schedule.CombineDateClock(input.Date, input.StartClock, loc)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date or start time")
	}

	end, err := s.resolveEnd(ctx, input, cal, start, loc)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("end time must be after start time")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = (&entities.Appointment{CallerName: input.CallerName}).DefaultTitle()
	}

	return s.backend.CreateAppointment(ctx, &providers.CreateAppointmentRequest{
		CalendarID:        cal.ID,
		Title:             title,
		StartTime:         start,
		EndTime:           end,
		CallerName:        input.CallerName,
		CallerPhone:       input.CallerPhone,
		CallerEmail:       input.CallerEmail,
		AppointmentTypeID: input.AppointmentTypeID,
		Notes:             input.Notes,
	})
}

// resolveEnd picks the end instant in priority order: an explicit end
// clock, then the appointment-type duration, then the calendar's slot
// duration. A manually entered end wins until the caller changes the start
// or the type, at which point the form resubmits without it.
func (s *AppointmentService) resolveEnd(ctx context.Context, input *CreateAppointmentInput, cal *entities.Calendar, start time.Time, loc *time.Location) (time.Time, error) {
	if input.EndClock != "" {
		end, err := schedule.CombineDateClock(input.Date, input.EndClock, loc)
		if err != nil {
			return time.Time{}, apperrors.NewValidationError("invalid end time")
		}
		return end, nil
	}

	if input.AppointmentTypeID != "" {
		apptType, err := s.appointmentType(ctx, input.AppointmentTypeID)
		if err != nil {
			return time.Time{}, err
		}
		return schedule.DeriveEnd(start, apptType.DurationMinutes), nil
	}

	if cal.SlotDurationMinutes > 0 {
		return schedule.DeriveEnd(start, cal.SlotDurationMinutes), nil
	}
	return time.Time{}, apperrors.NewValidationError("end time or appointment type is required")
}

func (s *AppointmentService) appointmentType(ctx context.Context, id string) (*entities.AppointmentType, error) {
	types, err := s.backend.ListAppointmentTypes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range types {
		if types[i].ID == id {
			if types[i].DurationMinutes <= 0 {
				return nil, apperrors.NewValidationError("appointment type has no duration")
			}
			return &types[i], nil
		}
	}
	return nil, apperrors.NewValidationError("unknown appointment type")
}

// Update applies a partial update. When the start or the type changes and
// no explicit end was entered, the end time is re-derived from the current
// start, not the original one.
func (s *AppointmentService) Update(ctx context.Context, id string, input *UpdateAppointmentInput) (*entities.Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("appointment id is required")
	}

	cal, err := s.calendars.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	loc := cal.Location()

	req := &providers.UpdateAppointmentRequest{
		Title:             input.Title,
		CallerName:        input.CallerName,
		CallerPhone:       input.CallerPhone,
		CallerEmail:       input.CallerEmail,
		AppointmentTypeID: input.AppointmentTypeID,
		Notes:             input.Notes,
	}

	var start *time.Time
	if input.Date != nil && input.StartClock != nil {
		combined, err := schedule.CombineDateClock(*input.Date, *input.StartClock, loc)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date or start time")
		}
		start = &combined
		req.StartTime = start
	}

	switch {
	case input.EndClock != nil && *input.EndClock != "" && input.Date != nil:
		end, err := schedule.CombineDateClock(*input.Date, *input.EndClock, loc)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid end time")
		}
		req.EndTime = &end
	case start != nil && input.AppointmentTypeID != nil:
		apptType, err := s.appointmentType(ctx, *input.AppointmentTypeID)
		if err != nil {
			return nil, err
		}
		end := schedule.DeriveEnd(*start, apptType.DurationMinutes)
		req.EndTime = &end
	}

	if req.StartTime != nil && req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		return nil, apperrors.NewValidationError("end time must be after start time")
	}

	return s.backend.UpdateAppointment(ctx, id, req)
}

// Confirm requests the pending → confirmed transition upstream
func (s *AppointmentService) Confirm(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("appointment id is required")
	}
	return s.backend.ConfirmAppointment(ctx, id)
}

// Cancel requests cancellation. Re-cancelling an already cancelled
// appointment is passed through; the upstream API may reject or no-op.
func (s *AppointmentService) Cancel(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("appointment id is required")
	}
	return s.backend.CancelAppointment(ctx, id)
}

// Delete removes an appointment entirely, guarded by an explicit
// confirmation step before the request is issued
func (s *AppointmentService) Delete(ctx context.Context, id string, confirmed bool) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("appointment id is required")
	}
	if !confirmed {
		return apperrors.NewConflictError("deletion requires confirmation")
	}
	return s.backend.DeleteAppointment(ctx, id)
}
