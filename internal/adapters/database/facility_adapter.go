package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/lifeline-connect/backend/internal/domain/entities"
	"github.com/lifeline-connect/backend/internal/domain/repositories"
	"github.com/lifeline-connect/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/lifeline-connect/backend/pkg/errors"
)

const facilitiesTable = "facilities"

var facilityColumns = []interface{}{
	"id", "name", "facility_type", "street", "city", "state",
	"latitude", "longitude", "beds_available", "total_beds",
	"specialists", "lab_wait_time", "is_active", "created_at", "updated_at",
}

// FacilityAdapter implements the FacilityRepository interface
type FacilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFacilityAdapter creates a new facility adapter
func NewFacilityAdapter(client *postgres.Client) repositories.FacilityRepository {
	return &FacilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new facility
func (a *FacilityAdapter) Create(ctx context.Context, facility *entities.Facility) error {
	record := goqu.Record{
		"id":             facility.ID,
		"name":           facility.Name,
		"facility_type":  facility.FacilityType,
		"street":         facility.Address.Street,
		"city":           facility.Address.City,
		"state":          facility.Address.State,
		"latitude":       facility.Location.Latitude,
		"longitude":      facility.Location.Longitude,
		"beds_available": facility.BedsAvailable,
		"total_beds":     facility.TotalBeds,
		"specialists":    pq.Array(facility.Specialists),
		"lab_wait_time":  facility.LabWaitTime,
		"is_active":      facility.IsActive,
		"created_at":     facility.CreatedAt,
		"updated_at":     facility.UpdatedAt,
	}

	query, args, err := a.db.Insert(facilitiesTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStorageError("failed to create facility", err)
	}

	return nil
}

// GetByID retrieves a facility by ID
func (a *FacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	query, args, err := a.db.Select(facilityColumns...).
		From(facilitiesTable).
		Where(goqu.Ex{"id": id, "is_active": true}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	facility, err := scanFacility(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to get facility", err)
	}

	return facility, nil
}

// List retrieves facilities with filters
func (a *FacilityAdapter) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	ds := a.db.Select(facilityColumns...).From(facilitiesTable)

	if filter.FacilityType != "" {
		ds = ds.Where(goqu.Ex{"facility_type": filter.FacilityType})
	}
	if filter.IsActive != nil {
		ds = ds.Where(goqu.Ex{"is_active": *filter.IsActive})
	}

	ds = ds.Order(goqu.I("name").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list facilities", err)
	}
	defer rows.Close()

	var facilities []*entities.Facility
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate facilities", err)
	}

	return facilities, nil
}

// Update updates a facility
func (a *FacilityAdapter) Update(ctx context.Context, facility *entities.Facility) error {
	facility.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":           facility.Name,
		"facility_type":  facility.FacilityType,
		"street":         facility.Address.Street,
		"city":           facility.Address.City,
		"state":          facility.Address.State,
		"latitude":       facility.Location.Latitude,
		"longitude":      facility.Location.Longitude,
		"beds_available": facility.BedsAvailable,
		"total_beds":     facility.TotalBeds,
		"specialists":    pq.Array(facility.Specialists),
		"lab_wait_time":  facility.LabWaitTime,
		"is_active":      facility.IsActive,
		"updated_at":     facility.UpdatedAt,
	}

	query, args, err := a.db.Update(facilitiesTable).
		Set(record).
		Where(goqu.Ex{"id": facility.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStorageError("failed to update facility", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", facility.ID))
	}

	return nil
}

// Delete deactivates a facility
func (a *FacilityAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Update(facilitiesTable).
		Set(goqu.Record{"is_active": false, "updated_at": time.Now()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStorageError("failed to delete facility", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*entities.Facility, error) {
	facility := &entities.Facility{}
	var specialists pq.StringArray
	var labWaitTime sql.NullString

	err := row.Scan(
		&facility.ID,
		&facility.Name,
		&facility.FacilityType,
		&facility.Address.Street,
		&facility.Address.City,
		&facility.Address.State,
		&facility.Location.Latitude,
		&facility.Location.Longitude,
		&facility.BedsAvailable,
		&facility.TotalBeds,
		&specialists,
		&labWaitTime,
		&facility.IsActive,
		&facility.CreatedAt,
		&facility.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	facility.Specialists = specialists
	facility.LabWaitTime = labWaitTime.String

	return facility, nil
}
