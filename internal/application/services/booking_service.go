package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lifeline-connect/backend/internal/domain/entities"
	"github.com/lifeline-connect/backend/internal/domain/providers"
	"github.com/lifeline-connect/backend/internal/domain/repositories"
	apperrors "github.com/lifeline-connect/backend/pkg/errors"
)

// BookingRequest carries the fields of a booking submission. The facility
// name is captured as supplied and denormalized into the record so it
// survives later facility data changes.
type BookingRequest struct {
	FacilityID   string `json:"facilityId"`
	FacilityName string `json:"facilityName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Specialist   string `json:"specialist"`
	Notes        string `json:"notes,omitempty"`
}

// BookingService validates booking requests, issues the appointment token
// and records the appointment.
//
// Bed capacity is NOT checked or reserved at booking time: facility capacity
// is reference data on a different change cadence, so two concurrent
// bookings against a facility with one remaining bed can both succeed.
type BookingService struct {
	repo     repositories.AppointmentRepository
	eventBus providers.EventBus
}

// NewBookingService creates a new booking service
func NewBookingService(repo repositories.AppointmentRepository) *BookingService {
	return &BookingService{repo: repo}
}

// SetEventBus configures best-effort booking event publication
func (s *BookingService) SetEventBus(eventBus providers.EventBus) {
	s.eventBus = eventBus
}

// BookAppointment validates the request, generates a unique token and
// durably records the appointment. Create is all-or-nothing: on a storage
// failure no appointment exists and no retry is attempted here.
func (s *BookingService) BookAppointment(ctx context.Context, userID string, req BookingRequest) (*entities.Appointment, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	appointment := &entities.Appointment{
		Token:        entities.NewBookingToken(),
		UserID:       userID,
		FacilityID:   req.FacilityID,
		FacilityName: req.FacilityName,
		Date:         req.Date,
		Time:         req.Time,
		Specialist:   req.Specialist,
		Notes:        req.Notes,
		Status:       entities.AppointmentStatusConfirmed,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeStorage) {
			return nil, err
		}
		return nil, apperrors.NewStorageError("failed to record appointment", err)
	}

	if s.eventBus != nil {
		event := entities.NewBookingEvent(appointment)
		if err := s.eventBus.Publish(ctx, providers.GetFacilityBookingChannel(appointment.FacilityID), event); err != nil {
			// The appointment is already durable; delivery is best effort.
			log.Warn().Err(err).Str("token", appointment.Token).Msg("failed to publish booking event")
		}
	}

	return appointment, nil
}

// ListByUser returns the user's appointments, most recent first
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]*entities.Appointment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetByToken retrieves a single appointment by its booking token
func (s *BookingService) GetByToken(ctx context.Context, token string) (*entities.Appointment, error) {
	return s.repo.GetByToken(ctx, token)
}

func validateBookingRequest(req BookingRequest) error {
	var missing []string
	if strings.TrimSpace(req.FacilityID) == "" {
		missing = append(missing, "facilityId")
	}
	if strings.TrimSpace(req.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(req.Time) == "" {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(req.Specialist) == "" {
		missing = append(missing, "specialist")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}
