package repositories

import (
	"context"

	"github.com/lifeline-connect/backend/internal/domain/entities"
)

// FacilityRepository defines the interface for facility reference data.
// Mutation exists only for the seeding/admin path; the search and booking
// flows treat facilities as read-only snapshots.
type FacilityRepository interface {
	// Create creates a new facility
	Create(ctx context.Context, facility *entities.Facility) error

	// GetByID retrieves a facility by ID
	GetByID(ctx context.Context, id string) (*entities.Facility, error)

	// List retrieves facilities with filters
	List(ctx context.Context, filter FacilityFilter) ([]*entities.Facility, error)

	// Update updates a facility
	Update(ctx context.Context, facility *entities.Facility) error

	// Delete deletes a facility
	Delete(ctx context.Context, id string) error
}

// FacilitySearchRepository defines the interface for facility name search
// (e.g. Typesense)
type FacilitySearchRepository interface {
	// Suggest returns facilities whose names match the query prefix
	Suggest(ctx context.Context, query string, limit int) ([]*entities.Facility, error)

	// Index indexes a facility
	Index(ctx context.Context, facility *entities.Facility) error

	// Delete removes a facility from the index
	Delete(ctx context.Context, id string) error
}

// FacilityFilter defines filters for listing facilities
type FacilityFilter struct {
	FacilityType string
	IsActive     *bool
	Limit        int
	Offset       int
}
