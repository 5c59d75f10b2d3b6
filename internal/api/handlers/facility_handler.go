package handlers

import (
	"net/http"
	"strconv"

	"github.com/lifeline-connect/backend/internal/application/services"
)

// FacilityHandler handles facility-related HTTP requests
type FacilityHandler struct {
	searchService *services.FacilitySearchService
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(searchService *services.FacilitySearchService) *FacilityHandler {
	return &FacilityHandler{
		searchService: searchService,
	}
}

// SearchFacilities handles GET /api/facilities.
// With lat/lng it returns the nearest facilities ranked by distance;
// without coordinates it returns facilities unranked. A symptom narrows
// results to facilities staffing the matching specialist.
func (h *FacilityHandler) SearchFacilities(w http.ResponseWriter, r *http.Request) {
	query := services.SearchQuery{
		Latitude:  r.URL.Query().Get("lat"),
		Longitude: r.URL.Query().Get("lng"),
		Symptom:   r.URL.Query().Get("symptom"),
	}

	results, err := h.searchService.Search(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": results,
		"count":      len(results),
	})
}

// GetFacility handles GET /api/facilities/{id}
func (h *FacilityHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	facility, err := h.searchService.GetByID(r.Context(), facilityID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, facility)
}

// SuggestFacilities handles GET /api/facilities/suggest
func (h *FacilityHandler) SuggestFacilities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := 10
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > 50 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = parsed
	}

	suggestions, err := h.searchService.Suggest(r.Context(), query, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
