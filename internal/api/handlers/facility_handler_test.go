package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-connect/backend/internal/api/handlers"
	"github.com/lifeline-connect/backend/internal/application/services"
	"github.com/lifeline-connect/backend/internal/domain/entities"
	"github.com/lifeline-connect/backend/internal/domain/repositories"
	apperrors "github.com/lifeline-connect/backend/pkg/errors"
)

type stubFacilityRepo struct {
	facilities []*entities.Facility
}

func (s *stubFacilityRepo) Create(ctx context.Context, facility *entities.Facility) error {
	s.facilities = append(s.facilities, facility)
	return nil
}

func (s *stubFacilityRepo) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	for _, f := range s.facilities {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, apperrors.NewNotFoundError("facility "+id+" not found")
}

func (s *stubFacilityRepo) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	return s.facilities, nil
}

func (s *stubFacilityRepo) Update(ctx context.Context, facility *entities.Facility) error {
	return nil
}

func (s *stubFacilityRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func seedFacilities() []*entities.Facility {
	return []*entities.Facility{
		{
			ID:            "fac-city-general",
			Name:          "City General Hospital",
			FacilityType:  "hospital",
			Location:      entities.Location{Latitude: 20.0112, Longitude: 73.7902},
			BedsAvailable: 12,
			TotalBeds:     40,
			Specialists:   []string{"Cardiologist", "General Physician"},
			IsActive:      true,
		},
		{
			ID:            "fac-riverside",
			Name:          "Riverside Clinic",
			FacilityType:  "clinic",
			Location:      entities.Location{Latitude: 20.0602, Longitude: 73.8105},
			BedsAvailable: 0,
			TotalBeds:     10,
			Specialists:   []string{"Orthopedic"},
			IsActive:      true,
		},
	}
}

func newFacilityHandler(repo repositories.FacilityRepository) *handlers.FacilityHandler {
	return handlers.NewFacilityHandler(services.NewFacilitySearchService(repo, nil))
}

func TestFacilityHandler_SearchFacilities_Ranked(t *testing.T) {
	repo := &stubFacilityRepo{facilities: seedFacilities()}
	handler := newFacilityHandler(repo)

	req := httptest.NewRequest("GET", "/api/facilities?lat=20.0112&lng=73.7902", nil)
	w := httptest.NewRecorder()

	handler.SearchFacilities(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Facilities []entities.FacilitySearchResult `json:"facilities"`
		Count      int                             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, 2, response.Count)

	// User is at City General, so it must come first at distance zero
	assert.Equal(t, "fac-city-general", response.Facilities[0].ID)
	require.NotNil(t, response.Facilities[0].DistanceKm)
	assert.InDelta(t, 0.0, *response.Facilities[0].DistanceKm, 0.05)
	require.NotNil(t, response.Facilities[1].DistanceKm)
	assert.Greater(t, *response.Facilities[1].DistanceKm, 0.0)
}

func TestFacilityHandler_SearchFacilities_NoCoordinates(t *testing.T) {
	repo := &stubFacilityRepo{facilities: seedFacilities()}
	handler := newFacilityHandler(repo)

	req := httptest.NewRequest("GET", "/api/facilities", nil)
	w := httptest.NewRecorder()

	handler.SearchFacilities(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Facilities []entities.FacilitySearchResult `json:"facilities"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Facilities, 2)
	assert.Nil(t, response.Facilities[0].DistanceKm)
	assert.Nil(t, response.Facilities[0].TravelTimeMin)
}

func TestFacilityHandler_SearchFacilities_SymptomFilter(t *testing.T) {
	repo := &stubFacilityRepo{facilities: seedFacilities()}
	handler := newFacilityHandler(repo)

	// Riverside staffs neither a cardiologist nor a general physician,
	// so chest pain excludes it.
	req := httptest.NewRequest("GET", "/api/facilities?symptom=Chest+Pain", nil)
	w := httptest.NewRecorder()

	handler.SearchFacilities(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Facilities []entities.FacilitySearchResult `json:"facilities"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Facilities, 1)
	assert.Equal(t, "fac-city-general", response.Facilities[0].ID)
}

func TestFacilityHandler_SearchFacilities_InvalidCoordinate(t *testing.T) {
	repo := &stubFacilityRepo{facilities: seedFacilities()}
	handler := newFacilityHandler(repo)

	req := httptest.NewRequest("GET", "/api/facilities?lat=abc&lng=73.79", nil)
	w := httptest.NewRecorder()

	handler.SearchFacilities(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFacilityHandler_GetFacility(t *testing.T) {
	repo := &stubFacilityRepo{facilities: seedFacilities()}
	handler := newFacilityHandler(repo)

	req := httptest.NewRequest("GET", "/api/facilities/fac-riverside", nil)
	req.SetPathValue("id", "fac-riverside")
	w := httptest.NewRecorder()

	handler.GetFacility(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result entities.FacilitySearchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, "Riverside Clinic", result.Name)
	assert.Equal(t, entities.AvailabilityFull, result.Availability)
}

func TestFacilityHandler_GetFacility_NotFound(t *testing.T) {
	repo := &stubFacilityRepo{}
	handler := newFacilityHandler(repo)

	req := httptest.NewRequest("GET", "/api/facilities/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.GetFacility(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacilityHandler_SuggestFacilities(t *testing.T) {
	repo := &stubFacilityRepo{facilities: seedFacilities()}
	handler := newFacilityHandler(repo)

	req := httptest.NewRequest("GET", "/api/facilities/suggest?q=riverside", nil)
	w := httptest.NewRecorder()

	handler.SuggestFacilities(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Suggestions []*entities.Facility `json:"suggestions"`
		Count       int                  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "Riverside Clinic", response.Suggestions[0].Name)
}

func TestFacilityHandler_SuggestFacilities_MissingQuery(t *testing.T) {
	repo := &stubFacilityRepo{facilities: seedFacilities()}
	handler := newFacilityHandler(repo)

	req := httptest.NewRequest("GET", "/api/facilities/suggest", nil)
	w := httptest.NewRecorder()

	handler.SuggestFacilities(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
