package handlers

import (
	"context"
	"net/http"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
)

// ScheduleViewService defines the interface for schedule view assembly
type ScheduleViewService interface {
	GetView(ctx context.Context, date string, view entities.View) (*entities.ScheduleView, error)
	GetRange(ctx context.Context, date string, view entities.View) (*entities.DateRange, error)
	AppointmentTypes(ctx context.Context) ([]entities.AppointmentType, error)
}

// ScheduleHandler handles schedule view requests
type ScheduleHandler struct {
	service ScheduleViewService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(service ScheduleViewService) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
	}
}

// GetScheduleView handles GET /api/schedule/view. date defaults to today,
// view defaults to month.
func (h *ScheduleHandler) GetScheduleView(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	view := entities.View(r.URL.Query().Get("view"))
	if view == "" {
		view = entities.ViewMonth
	}

	scheduleView, err := h.service.GetView(r.Context(), date, view)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, scheduleView)
}

// GetScheduleRange handles GET /api/schedule/range
func (h *ScheduleHandler) GetScheduleRange(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	view := entities.View(r.URL.Query().Get("view"))
	if view == "" {
		view = entities.ViewMonth
	}

	rng, err := h.service.GetRange(r.Context(), date, view)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rng)
}

// ListAppointmentTypes handles GET /api/appointment-types
func (h *ScheduleHandler) ListAppointmentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.AppointmentTypes(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointment_types": types,
		"count":             len(types),
	})
}
