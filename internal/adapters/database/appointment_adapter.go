package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/lifeline-connect/backend/internal/domain/entities"
	"github.com/lifeline-connect/backend/internal/domain/repositories"
	"github.com/lifeline-connect/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/lifeline-connect/backend/pkg/errors"
)

const appointmentsTable = "appointments"

var appointmentColumns = []interface{}{
	"token", "user_id", "facility_id", "facility_name",
	"date", "time", "specialist", "notes", "status", "created_at",
}

// AppointmentAdapter implements the AppointmentRepository interface.
// Each Create is a single insert, so concurrent bookings are serialized by
// Postgres and never overwrite each other; the primary key on token rejects
// the (vanishingly unlikely) duplicate.
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create durably appends a new appointment record
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"token":         appointment.Token,
		"user_id":       appointment.UserID,
		"facility_id":   appointment.FacilityID,
		"facility_name": appointment.FacilityName,
		"date":          appointment.Date,
		"time":          appointment.Time,
		"specialist":    appointment.Specialist,
		"notes":         appointment.Notes,
		"status":        appointment.Status,
		"created_at":    appointment.CreatedAt,
	}

	query, args, err := a.db.Insert(appointmentsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStorageError("failed to create appointment", err)
	}

	return nil
}

// GetByToken retrieves an appointment by its booking token
func (a *AppointmentAdapter) GetByToken(ctx context.Context, token string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(goqu.Ex{"token": token}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with token %s not found", token))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to get appointment", err)
	}

	return appointment, nil
}

// ListByUser retrieves all appointments for a user, most recent first
func (a *AppointmentAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate appointments", err)
	}

	return appointments, nil
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var notes sql.NullString

	err := row.Scan(
		&appointment.Token,
		&appointment.UserID,
		&appointment.FacilityID,
		&appointment.FacilityName,
		&appointment.Date,
		&appointment.Time,
		&appointment.Specialist,
		&notes,
		&appointment.Status,
		&appointment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Notes = notes.String

	return appointment, nil
}
