package providers

import (
	"context"
	"time"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
)

// SchedulingBackend is the upstream receptionist REST API. It owns
// persistence and authorization; this service only models schedules and
// requests state changes.
type SchedulingBackend interface {
	// GetCalendar returns the tenant's calendar configuration
	GetCalendar(ctx context.Context) (*entities.Calendar, error)

	// ListEvents returns appointments for a calendar within an inclusive
	// local-date range ("YYYY-MM-DD"), ordered by start time
	ListEvents(ctx context.Context, calendarID, startDate, endDate string) ([]entities.Appointment, error)

	// ListAppointmentTypes returns the tenant's bookable service categories
	ListAppointmentTypes(ctx context.Context) ([]entities.AppointmentType, error)

	// CreateAppointment creates a new appointment; the server assigns the
	// id and the initial pending status
	CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*entities.Appointment, error)

	// UpdateAppointment applies a partial update to an existing appointment
	UpdateAppointment(ctx context.Context, id string, req *UpdateAppointmentRequest) (*entities.Appointment, error)

	// ConfirmAppointment transitions a pending appointment to confirmed
	ConfirmAppointment(ctx context.Context, id string) error

	// CancelAppointment transitions an appointment to cancelled
	CancelAppointment(ctx context.Context, id string) error

	// DeleteAppointment removes an appointment entirely
	DeleteAppointment(ctx context.Context, id string) error
}

// CreateAppointmentRequest is the create payload sent upstream
type CreateAppointmentRequest struct {
	CalendarID        string    `json:"calendar_id"`
	Title             string    `json:"title"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	CallerName        string    `json:"caller_name"`
	CallerPhone       string    `json:"caller_phone"`
	CallerEmail       string    `json:"caller_email,omitempty"`
	AppointmentTypeID string    `json:"appointment_type_id,omitempty"`
	Notes             string    `json:"notes,omitempty"`
}

// UpdateAppointmentRequest is the partial update payload; nil fields are
// left untouched upstream
type UpdateAppointmentRequest struct {
	Title             *string    `json:"title,omitempty"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	CallerName        *string    `json:"caller_name,omitempty"`
	CallerPhone       *string    `json:"caller_phone,omitempty"`
	CallerEmail       *string    `json:"caller_email,omitempty"`
	AppointmentTypeID *string    `json:"appointment_type_id,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}
