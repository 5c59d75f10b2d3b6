package entities

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// AppointmentStatus represents the persisted status of an appointment.
// Only "confirmed" is ever written; later states are derived at read time.
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
)

// AppointmentState is the read-time interpretation of an appointment,
// computed from its date and time against the current clock.
type AppointmentState string

const (
	AppointmentStateUpcoming  AppointmentState = "upcoming"
	AppointmentStateCompleted AppointmentState = "completed"
)

// Appointment represents a booked appointment. Records are immutable once
// created: no cancel or update operation exists in this core.
type Appointment struct {
	Token        string            `json:"token" db:"token"`
	UserID       string            `json:"userId" db:"user_id"`
	FacilityID   string            `json:"facilityId" db:"facility_id"`
	FacilityName string            `json:"facilityName" db:"facility_name"`
	Date         string            `json:"date" db:"date"`
	Time         string            `json:"time" db:"time"`
	Specialist   string            `json:"specialist" db:"specialist"`
	Notes        string            `json:"notes,omitempty" db:"notes"`
	Status       AppointmentStatus `json:"status" db:"status"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at"`
}

const (
	appointmentDateLayout = "2006-01-02"
	appointmentTimeLayout = "3:04 PM"
)

// DerivedState interprets the appointment relative to now. Unparseable
// date or time values default to upcoming rather than failing a read.
func (a *Appointment) DerivedState(now time.Time) AppointmentState {
	slot, err := time.ParseInLocation(
		appointmentDateLayout+" "+appointmentTimeLayout,
		a.Date+" "+a.Time,
		now.Location(),
	)
	if err != nil {
		return AppointmentStateUpcoming
	}
	if slot.Before(now) {
		return AppointmentStateCompleted
	}
	return AppointmentStateUpcoming
}

// NewBookingToken generates the unique identifier issued on booking.
// High-resolution timestamp plus a random suffix keeps tokens collision
// resistant under concurrent bookings while staying short enough to share
// as a QR-code payload.
func NewBookingToken() string {
	return fmt.Sprintf("APT-%d-%s", time.Now().UnixMilli(), randomString(9))
}

// randomString generates a random hex string of the specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
