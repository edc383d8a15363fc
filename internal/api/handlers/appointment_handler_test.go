package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdesk/receptionist-scheduler/internal/application/services"
	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
	apperrors "github.com/orbitdesk/receptionist-scheduler/pkg/errors"
)

type stubLifecycle struct {
	create  func(ctx context.Context, input *services.CreateAppointmentInput) (*entities.Appointment, error)
	update  func(ctx context.Context, id string, input *services.UpdateAppointmentInput) (*entities.Appointment, error)
	confirm func(ctx context.Context, id string) error
	cancel  func(ctx context.Context, id string) error
	delete  func(ctx context.Context, id string, confirmed bool) error
}

func (s *stubLifecycle) Create(ctx context.Context, input *services.CreateAppointmentInput) (*entities.Appointment, error) {
	return s.create(ctx, input)
}

func (s *stubLifecycle) Update(ctx context.Context, id string, input *services.UpdateAppointmentInput) (*entities.Appointment, error) {
	return s.update(ctx, id, input)
}

func (s *stubLifecycle) Confirm(ctx context.Context, id string) error { return s.confirm(ctx, id) }
func (s *stubLifecycle) Cancel(ctx context.Context, id string) error  { return s.cancel(ctx, id) }
func (s *stubLifecycle) Delete(ctx context.Context, id string, confirmed bool) error {
	return s.delete(ctx, id, confirmed)
}

type stubScheduleViews struct {
	getView func(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error)
}

func (s *stubScheduleViews) GetView(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error) {
	return s.getView(ctx, date, view)
}

func (s *stubScheduleViews) GetRange(ctx context.Context, date string, view entities.View) (*entities.DateRange, error) {
	return &entities.DateRange{}, nil
}

func (s *stubScheduleViews) AppointmentTypes(ctx context.Context) ([]entities.AppointmentType, error) {
	return nil, nil
}

func sampleAppointment() *entities.Appointment {
	return &entities.Appointment{
		ID:          "apt-1",
		CalendarID:  "cal-1",
		Title:       "Appointment with Dana",
		StartTime:   time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC),
		Status:      entities.AppointmentStatusPending,
		CallerName:  "Dana",
		CallerPhone: "555-0100",
	}
}

func TestCreateAppointment(t *testing.T) {
	var got *services.CreateAppointmentInput
	lifecycle := &stubLifecycle{
		create: func(ctx context.Context, input *services.CreateAppointmentInput) (*entities.Appointment, error) {
			got = input
			return sampleAppointment(), nil
		},
	}
	handler := NewAppointmentHandler(lifecycle, &stubScheduleViews{})

	body, _ := json.Marshal(map[string]string{
		"date":         "2026-08-24",
		"start_time":   "09:00",
		"caller_name":  "Dana",
		"caller_phone": "555-0100",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "Dana", got.CallerName)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotContains(t, payload, "schedule")

	appointment := payload["appointment"].(map[string]interface{})
	assert.Equal(t, "apt-1", appointment["id"])
}

func TestCreateAppointment_InvalidBody(t *testing.T) {
	handler := NewAppointmentHandler(&stubLifecycle{}, &stubScheduleViews{})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	handler.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAppointment_ValidationErrorMapsTo400(t *testing.T) {
	lifecycle := &stubLifecycle{
		create: func(ctx context.Context, input *services.CreateAppointmentInput) (*entities.Appointment, error) {
			return nil, apperrors.NewValidationError("caller phone is required")
		},
	}
	handler := NewAppointmentHandler(lifecycle, &stubScheduleViews{})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()

	handler.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "caller phone is required")
}

func TestCreateAppointment_RefreshesScheduleView(t *testing.T) {
	lifecycle := &stubLifecycle{
		create: func(ctx context.Context, input *services.CreateAppointmentInput) (*entities.Appointment, error) {
			return sampleAppointment(), nil
		},
	}
	var gotDate string
	var gotView entities.View
	views := &stubScheduleViews{
		getView: func(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error) {
			gotDate, gotView = date, view
			return &entities.ScheduleView{View: view, ReferenceDate: date}, nil
		},
	}
	handler := NewAppointmentHandler(lifecycle, views)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments?date=2026-08-24&view=week", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()

	handler.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2026-08-24", gotDate)
	assert.Equal(t, entities.ViewWeek, gotView)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload, "schedule")
}

func TestUpdateAppointment(t *testing.T) {
	lifecycle := &stubLifecycle{
		update: func(ctx context.Context, id string, input *services.UpdateAppointmentInput) (*entities.Appointment, error) {
			assert.Equal(t, "apt-1", id)
			return sampleAppointment(), nil
		},
	}
	handler := NewAppointmentHandler(lifecycle, &stubScheduleViews{})

	body, _ := json.Marshal(map[string]string{"title": "Follow-up"})
	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/apt-1", bytes.NewReader(body))
	req.SetPathValue("id", "apt-1")
	rec := httptest.NewRecorder()

	handler.UpdateAppointment(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestConfirmAppointment(t *testing.T) {
	lifecycle := &stubLifecycle{
		confirm: func(ctx context.Context, id string) error {
			assert.Equal(t, "apt-1", id)
			return nil
		},
	}
	handler := NewAppointmentHandler(lifecycle, &stubScheduleViews{})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments/apt-1/confirm", nil)
	req.SetPathValue("id", "apt-1")
	rec := httptest.NewRecorder()

	handler.ConfirmAppointment(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "confirmed")
}

func TestDeleteAppointment_WithoutConfirmFlag(t *testing.T) {
	lifecycle := &stubLifecycle{
		delete: func(ctx context.Context, id string, confirmed bool) error {
			assert.False(t, confirmed)
			return apperrors.NewConflictError("deletion requires confirmation")
		},
	}
	handler := NewAppointmentHandler(lifecycle, &stubScheduleViews{})

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/apt-1", nil)
	req.SetPathValue("id", "apt-1")
	rec := httptest.NewRecorder()

	handler.DeleteAppointment(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteAppointment_Confirmed(t *testing.T) {
	lifecycle := &stubLifecycle{
		delete: func(ctx context.Context, id string, confirmed bool) error {
			assert.True(t, confirmed)
			return nil
		},
	}
	handler := NewAppointmentHandler(lifecycle, &stubScheduleViews{})

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/apt-1?confirm=true", nil)
	req.SetPathValue("id", "apt-1")
	rec := httptest.NewRecorder()

	handler.DeleteAppointment(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted")
}

func TestDeleteAppointment_RefreshFailureDoesNotFailMutation(t *testing.T) {
	lifecycle := &stubLifecycle{
		delete: func(ctx context.Context, id string, confirmed bool) error { return nil },
	}
	views := &stubScheduleViews{
		getView: func(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error) {
			return nil, apperrors.NewUpstreamError("the scheduling service returned an error", nil)
		},
	}
	handler := NewAppointmentHandler(lifecycle, views)

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/apt-1?confirm=true&date=2026-08-24&view=day", nil)
	req.SetPathValue("id", "apt-1")
	rec := httptest.NewRecorder()

	handler.DeleteAppointment(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotContains(t, payload, "schedule")
}
