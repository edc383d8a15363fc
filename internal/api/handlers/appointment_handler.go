package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/orbitdesk/receptionist-scheduler/internal/application/services"
	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
	"github.com/orbitdesk/receptionist-scheduler/internal/infrastructure/observability"
)

// AppointmentLifecycle defines the interface for appointment mutations
type AppointmentLifecycle interface {
	Create(ctx context.Context, input *services.CreateAppointmentInput) (*entities.Appointment, error)
	Update(ctx context.Context, id string, input *services.UpdateAppointmentInput) (*entities.Appointment, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, confirmed bool) error
}

// AppointmentHandler handles appointment lifecycle requests. Mutations can
// return a refreshed schedule view in the same response when the caller
// passes date and view query parameters, saving the dashboard a round trip.
type AppointmentHandler struct {
	service  AppointmentLifecycle
	schedule ScheduleViewService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentLifecycle, schedule ScheduleViewService) *AppointmentHandler {
	return &AppointmentHandler{
		service:  service,
		schedule: schedule,
	}
}

// CreateAppointment handles POST /api/appointments
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var input services.CreateAppointmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.Create(r.Context(), &input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, h.mutationPayload(r, map[string]interface{}{
		"appointment": appointment,
	}))
}

// UpdateAppointment handles PATCH /api/appointments/{id}
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var input services.UpdateAppointmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.Update(r.Context(), id, &input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.mutationPayload(r, map[string]interface{}{
		"appointment": appointment,
	}))
}

// ConfirmAppointment handles POST /api/appointments/{id}/confirm
func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Confirm(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.mutationPayload(r, map[string]interface{}{
		"id":     id,
		"status": string(entities.AppointmentStatusConfirmed),
	}))
}

// CancelAppointment handles POST /api/appointments/{id}/cancel
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Cancel(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.mutationPayload(r, map[string]interface{}{
		"id":     id,
		"status": string(entities.AppointmentStatusCancelled),
	}))
}

// DeleteAppointment handles DELETE /api/appointments/{id}. Requires
// confirm=true; without it the request is rejected with a conflict so the
// dashboard can show its confirmation dialog first.
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	confirmed := r.URL.Query().Get("confirm") == "true"

	if err := h.service.Delete(r.Context(), id, confirmed); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.mutationPayload(r, map[string]interface{}{
		"id":      id,
		"deleted": true,
	}))
}

// mutationPayload attaches a refreshed schedule view to a mutation response
// when the request carries date and view query parameters. A failed refresh
// never fails the mutation; the dashboard falls back to its own re-fetch.
func (h *AppointmentHandler) mutationPayload(r *http.Request, payload map[string]interface{}) map[string]interface{} {
	view := entities.View(r.URL.Query().Get("view"))
	if !view.Valid() {
		return payload
	}

	scheduleView, err := h.schedule.GetView(r.Context(), r.URL.Query().Get("date"), view)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn().
			Err(err).
			Msg("failed to refresh schedule view after mutation")
		return payload
	}

	payload["schedule"] = scheduleView
	return payload
}
