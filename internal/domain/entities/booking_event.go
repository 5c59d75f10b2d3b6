package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType represents the type of booking event
type BookingEventType string

const (
	BookingEventTypeCreated BookingEventType = "appointment_booked"
)

// BookingEvent is the payload published on the event bus after an
// appointment is durably recorded.
type BookingEvent struct {
	ID         string           `json:"id"`
	EventType  BookingEventType `json:"event_type"`
	Token      string           `json:"token"`
	FacilityID string           `json:"facility_id"`
	Specialist string           `json:"specialist"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewBookingEvent creates a booking event for a recorded appointment
func NewBookingEvent(appointment *Appointment) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New().String(),
		EventType:  BookingEventTypeCreated,
		Token:      appointment.Token,
		FacilityID: appointment.FacilityID,
		Specialist: appointment.Specialist,
		Timestamp:  time.Now(),
	}
}
