package routes

import (
	"net/http"

	"github.com/orbitdesk/receptionist-scheduler/internal/api/handlers"
	"github.com/orbitdesk/receptionist-scheduler/internal/api/middleware"
	"github.com/orbitdesk/receptionist-scheduler/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	scheduleHandler    *handlers.ScheduleHandler
	appointmentHandler *handlers.AppointmentHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	scheduleHandler *handlers.ScheduleHandler,
	appointmentHandler *handlers.AppointmentHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		scheduleHandler:    scheduleHandler,
		appointmentHandler: appointmentHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Schedule endpoints
	r.mux.HandleFunc("GET /api/schedule/view", r.scheduleHandler.GetScheduleView)
	r.mux.HandleFunc("GET /api/schedule/range", r.scheduleHandler.GetScheduleRange)
	r.mux.HandleFunc("GET /api/appointment-types", r.scheduleHandler.ListAppointmentTypes)

	// Appointment lifecycle endpoints
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.CreateAppointment)
	r.mux.HandleFunc("PATCH /api/appointments/{id}", r.appointmentHandler.UpdateAppointment)
	r.mux.HandleFunc("POST /api/appointments/{id}/confirm", r.appointmentHandler.ConfirmAppointment)
	r.mux.HandleFunc("POST /api/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment)
	r.mux.HandleFunc("DELETE /api/appointments/{id}", r.appointmentHandler.DeleteAppointment)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	handler = middleware.ResponseOptimization(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
