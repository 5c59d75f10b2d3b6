package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lifeline-connect/backend/internal/domain/entities"
	"github.com/lifeline-connect/backend/internal/domain/repositories"
	apperrors "github.com/lifeline-connect/backend/pkg/errors"
)

// SearchQuery carries the raw query parameters of a facility search.
// Latitude and longitude arrive as strings so that malformed values can be
// rejected explicitly instead of silently defaulting to zero.
type SearchQuery struct {
	Latitude  string
	Longitude string
	Symptom   string
}

// FacilitySearchService orchestrates the search path: load a request-scoped
// facility snapshot, rank by distance when a user location is supplied, then
// filter by symptom. The whole path is pure over the snapshot and safe under
// unlimited concurrent callers.
type FacilitySearchService struct {
	repo       repositories.FacilityRepository
	searchRepo repositories.FacilitySearchRepository
}

// NewFacilitySearchService creates a new facility search service
func NewFacilitySearchService(repo repositories.FacilityRepository, searchRepo repositories.FacilitySearchRepository) *FacilitySearchService {
	return &FacilitySearchService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Search runs the ranking and filtering pipeline for a search request.
// Without coordinates the full reference set is returned unranked; an
// unknown symptom passes everything through.
func (s *FacilitySearchService) Search(ctx context.Context, query SearchQuery) ([]entities.FacilitySearchResult, error) {
	active := true
	facilities, err := s.repo.List(ctx, repositories.FacilityFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}

	var results []entities.FacilitySearchResult

	if query.Latitude != "" || query.Longitude != "" {
		user, err := ParseCoordinate(query.Latitude, query.Longitude)
		if err != nil {
			return nil, err
		}
		results = RankByDistance(facilities, user)
	} else {
		results = make([]entities.FacilitySearchResult, 0, len(facilities))
		for _, f := range facilities {
			results = append(results, entities.NewFacilitySearchResult(f))
		}
	}

	return FilterBySymptom(results, query.Symptom), nil
}

// GetByID retrieves a single facility as a search result payload
func (s *FacilitySearchService) GetByID(ctx context.Context, id string) (*entities.FacilitySearchResult, error) {
	facility, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := entities.NewFacilitySearchResult(facility)
	return &result, nil
}

// Suggest returns facilities matching a free-text name query, using the
// search engine when configured and falling back to the database otherwise
func (s *FacilitySearchService) Suggest(ctx context.Context, query string, limit int) ([]*entities.Facility, error) {
	if s.searchRepo != nil {
		return s.searchRepo.Suggest(ctx, query, limit)
	}

	active := true
	facilities, err := s.repo.List(ctx, repositories.FacilityFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]*entities.Facility, 0, limit)
	for _, f := range facilities {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			matches = append(matches, f)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

// ParseCoordinate parses a lat/lng string pair into a location. Values that
// fail to parse as finite numbers yield an invalid coordinate error and no
// ranking occurs.
func ParseCoordinate(latStr, lngStr string) (entities.Location, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return entities.Location{}, apperrors.NewInvalidCoordinateError(fmt.Sprintf("invalid latitude %q", latStr))
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return entities.Location{}, apperrors.NewInvalidCoordinateError(fmt.Sprintf("invalid longitude %q", lngStr))
	}

	return entities.Location{Latitude: lat, Longitude: lng}, nil
}
