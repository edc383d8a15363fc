package entities

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// CanConfirm reports whether the confirm action applies to this status.
// Only pending appointments are confirmable; completed is set upstream.
func (s AppointmentStatus) CanConfirm() bool {
	return s == AppointmentStatusPending
}

// CanCancel reports whether the cancel action applies to this status.
// Re-cancelling is not blocked here; the upstream API may reject or no-op.
func (s AppointmentStatus) CanCancel() bool {
	return s != AppointmentStatusCancelled
}

// Appointment represents a scheduled booking taken by the receptionist
type Appointment struct {
	ID                string            `json:"id"`
	CalendarID        string            `json:"calendar_id"`
	Title             string            `json:"title"`
	StartTime         time.Time         `json:"start_time"`
	EndTime           time.Time         `json:"end_time"`
	Status            AppointmentStatus `json:"status"`
	CallerName        string            `json:"caller_name"`
	CallerPhone       string            `json:"caller_phone"`
	CallerEmail       string            `json:"caller_email,omitempty"`
	AppointmentTypeID string            `json:"appointment_type_id,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at,omitempty"`
	UpdatedAt         time.Time         `json:"updated_at,omitempty"`
}

// DefaultTitle returns the title used when none was entered
func (a *Appointment) DefaultTitle() string {
	return fmt.Sprintf("Appointment with %s", a.CallerName)
}

// AppointmentType is a bookable service category. Read-only input for the
// engine; the duration drives end-time derivation.
type AppointmentType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Color           string `json:"color,omitempty"`
}
