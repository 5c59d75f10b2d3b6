package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lifeline-connect/backend/internal/api/middleware"
	"github.com/lifeline-connect/backend/internal/application/services"
	"github.com/lifeline-connect/backend/internal/infrastructure/observability"
)

// AppointmentHandler handles appointment booking HTTP requests
type AppointmentHandler struct {
	bookingService *services.BookingService
	metrics        *observability.Metrics
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(bookingService *services.BookingService, metrics *observability.Metrics) *AppointmentHandler {
	return &AppointmentHandler{
		bookingService: bookingService,
		metrics:        metrics,
	}
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req services.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.bookingService.BookAppointment(r.Context(), userID, req)
	if err != nil {
		observability.RecordBookingMetric(r.Context(), h.metrics, req.FacilityID, false)
		respondWithAppError(w, err)
		return
	}

	observability.RecordBookingMetric(r.Context(), h.metrics, appointment.FacilityID, true)
	respondWithJSON(w, http.StatusCreated, appointment)
}

// ListMyAppointments handles GET /api/appointments/my
func (h *AppointmentHandler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	appointments, err := h.bookingService.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetAppointment handles GET /api/appointments/{token}
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	token := r.PathValue("token")
	if token == "" {
		respondWithError(w, http.StatusBadRequest, "booking token is required")
		return
	}

	appointment, err := h.bookingService.GetByToken(r.Context(), token)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// Bookings are visible only to the user who made them
	if appointment.UserID != userID {
		respondWithError(w, http.StatusNotFound, "appointment not found")
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}
