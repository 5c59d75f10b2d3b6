package routes

import (
	"net/http"

	"github.com/lifeline-connect/backend/internal/api/handlers"
	"github.com/lifeline-connect/backend/internal/api/middleware"
	"github.com/lifeline-connect/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	facilityHandler    *handlers.FacilityHandler
	appointmentHandler *handlers.AppointmentHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	jwtSecret       string
}

// NewRouter creates a new router
func NewRouter(
	facilityHandler *handlers.FacilityHandler,
	appointmentHandler *handlers.AppointmentHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	jwtSecret string,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		facilityHandler:    facilityHandler,
		appointmentHandler: appointmentHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
		jwtSecret:          jwtSecret,
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

	// Facility endpoints are public
	r.mux.HandleFunc("GET /api/facilities", r.facilityHandler.SearchFacilities)
	r.mux.HandleFunc("GET /api/facilities/suggest", r.facilityHandler.SuggestFacilities)
	r.mux.HandleFunc("GET /api/facilities/{id}", r.facilityHandler.GetFacility)

	// Appointment endpoints require authentication
	auth := middleware.AuthMiddleware(r.jwtSecret)
	r.mux.Handle("POST /api/appointments", auth(http.HandlerFunc(r.appointmentHandler.BookAppointment)))
	r.mux.Handle("GET /api/appointments/my", auth(http.HandlerFunc(r.appointmentHandler.ListMyAppointments)))
	r.mux.Handle("GET /api/appointments/{token}", auth(http.HandlerFunc(r.appointmentHandler.GetAppointment)))

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
