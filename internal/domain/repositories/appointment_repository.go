package repositories

import (
	"context"

	"github.com/lifeline-connect/backend/internal/domain/entities"
)

// AppointmentRepository is the durable, append-only keeper of appointment
// records. The implementation owns write serialization: concurrent Create
// calls are atomic with respect to each other, and callers never mutate
// previously returned records.
type AppointmentRepository interface {
	// Create durably appends a new appointment record
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByToken retrieves an appointment by its booking token
	GetByToken(ctx context.Context, token string) (*entities.Appointment, error)

	// ListByUser retrieves all appointments for a user ordered by creation
	// time descending (most recent first)
	ListByUser(ctx context.Context, userID string) ([]*entities.Appointment, error)
}
