package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
	apperrors "github.com/orbitdesk/receptionist-scheduler/pkg/errors"
)

type stubScheduleService struct {
	getView  func(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error)
	getRange func(ctx context.Context, date string, view entities.View) (*entities.DateRange, error)
	types    func(ctx context.Context) ([]entities.AppointmentType, error)
}

func (s *stubScheduleService) GetView(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error) {
	return s.getView(ctx, date, view)
}

func (s *stubScheduleService) GetRange(ctx context.Context, date string, view entities.View) (*entities.DateRange, error) {
	return s.getRange(ctx, date, view)
}

func (s *stubScheduleService) AppointmentTypes(ctx context.Context) ([]entities.AppointmentType, error) {
	return s.types(ctx)
}

func TestGetScheduleView_DefaultsToMonth(t *testing.T) {
	var gotView entities.View
	handler := NewScheduleHandler(&stubScheduleService{
		getView: func(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error) {
			gotView = view
			return &entities.ScheduleView{View: view}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/view", nil)
	rec := httptest.NewRecorder()

	handler.GetScheduleView(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entities.ViewMonth, gotView)
}

func TestGetScheduleView_PassesDateAndView(t *testing.T) {
	var gotDate string
	var gotView entities.View
	handler := NewScheduleHandler(&stubScheduleService{
		getView: func(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error) {
			gotDate, gotView = date, view
			return &entities.ScheduleView{View: view, ReferenceDate: date}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/view?date=2026-08-24&view=day", nil)
	rec := httptest.NewRecorder()

	handler.GetScheduleView(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-08-24", gotDate)
	assert.Equal(t, entities.ViewDay, gotView)
}

func TestGetScheduleView_ValidationError(t *testing.T) {
	handler := NewScheduleHandler(&stubScheduleService{
		getView: func(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error) {
			return nil, apperrors.NewValidationError("view must be one of month, week, day")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/view?view=year", nil)
	rec := httptest.NewRecorder()

	handler.GetScheduleView(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetScheduleView_UpstreamErrorMapsTo502(t *testing.T) {
	handler := NewScheduleHandler(&stubScheduleService{
		getView: func(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error) {
			return nil, apperrors.NewUpstreamError("the scheduling service returned an error", nil)
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/view", nil)
	rec := httptest.NewRecorder()

	handler.GetScheduleView(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetScheduleRange(t *testing.T) {
	handler := NewScheduleHandler(&stubScheduleService{
		getRange: func(ctx context.Context, date string, view entities.View) (*entities.DateRange, error) {
			return &entities.DateRange{Start: "2026-07-26", End: "2026-09-05"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/range?date=2026-08-15&view=month", nil)
	rec := httptest.NewRecorder()

	handler.GetScheduleRange(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var rng entities.DateRange
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rng))
	assert.Equal(t, "2026-07-26", rng.Start)
	assert.Equal(t, "2026-09-05", rng.End)
}

func TestListAppointmentTypes(t *testing.T) {
	handler := NewScheduleHandler(&stubScheduleService{
		types: func(ctx context.Context) ([]entities.AppointmentType, error) {
			return []entities.AppointmentType{
				{ID: "type-30", Name: "Consultation", DurationMinutes: 30},
				{ID: "type-45", Name: "Treatment", DurationMinutes: 45},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/appointment-types", nil)
	rec := httptest.NewRecorder()

	handler.ListAppointmentTypes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, float64(2), payload["count"])
}
