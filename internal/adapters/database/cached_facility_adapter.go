package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lifeline-connect/backend/internal/domain/entities"
	"github.com/lifeline-connect/backend/internal/domain/providers"
	"github.com/lifeline-connect/backend/internal/domain/repositories"
)

// CachedFacilityAdapter wraps FacilityRepository with a Redis read cache.
// Facility reference data changes on a slow cadence, so short TTLs are
// enough to keep the search path off the database.
type CachedFacilityAdapter struct {
	adapter repositories.FacilityRepository
	cache   providers.CacheProvider
}

// NewCachedFacilityAdapter creates a new cached facility adapter
func NewCachedFacilityAdapter(adapter repositories.FacilityRepository, cache providers.CacheProvider) repositories.FacilityRepository {
	return &CachedFacilityAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	facilityByIDTTL   = 300 // 5 minutes for single facility
	facilitiesListTTL = 180 // 3 minutes for lists
)

func facilityCacheKey(id string) string {
	return fmt.Sprintf("facility:%s", id)
}

func facilitiesListCacheKey(filter repositories.FacilityFilter) string {
	active := "any"
	if filter.IsActive != nil {
		active = fmt.Sprintf("%t", *filter.IsActive)
	}
	return fmt.Sprintf("facilities:list:%s:%s:%d:%d", filter.FacilityType, active, filter.Limit, filter.Offset)
}

// GetByID retrieves a facility by ID with caching
func (a *CachedFacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	cacheKey := facilityCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var facility entities.Facility
		if err := json.Unmarshal(cached, &facility); err == nil {
			return &facility, nil
		}
		log.Warn().Str("facility_id", id).Msg("failed to unmarshal cached facility")
	}

	facility, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(facility); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, facilityByIDTTL); err != nil {
				log.Warn().Err(err).Str("facility_id", id).Msg("failed to cache facility")
			}
		}
	}()

	return facility, nil
}

// List retrieves facilities with caching
func (a *CachedFacilityAdapter) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	cacheKey := facilitiesListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var facilities []*entities.Facility
		if err := json.Unmarshal(cached, &facilities); err == nil {
			return facilities, nil
		}
	}

	facilities, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(facilities); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, facilitiesListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache facility list")
			}
		}
	}()

	return facilities, nil
}

// Create creates a facility and invalidates its cache entries
func (a *CachedFacilityAdapter) Create(ctx context.Context, facility *entities.Facility) error {
	if err := a.adapter.Create(ctx, facility); err != nil {
		return err
	}
	a.invalidate(ctx, facility.ID)
	return nil
}

// Update updates a facility and invalidates its cache entries
func (a *CachedFacilityAdapter) Update(ctx context.Context, facility *entities.Facility) error {
	if err := a.adapter.Update(ctx, facility); err != nil {
		return err
	}
	a.invalidate(ctx, facility.ID)
	return nil
}

// Delete deactivates a facility and invalidates its cache entries
func (a *CachedFacilityAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

func (a *CachedFacilityAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, facilityCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("facility_id", id).Msg("failed to invalidate facility cache")
	}
	// List entries are keyed by filter; let their short TTL age them out.
}
