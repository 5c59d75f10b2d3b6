package services

import (
	"github.com/lifeline-connect/backend/internal/domain/entities"
)

// generalPractice is always eligible to triage any symptom.
const generalPractice = "General Physician"

// symptomSpecialists maps a symptom label to its required specialist.
// Matching is exact and case-sensitive.
var symptomSpecialists = map[string]string{
	"Chest Pain": "Cardiologist",
	"Fever":      "General Physician",
	"Fracture":   "Orthopedic",
	"Pregnancy":  "Gynecologist",
	"Cancer":     "Oncologist",
	"Headache":   "Neurologist",
}

// FilterBySymptom returns the subset of results whose facility offers the
// specialist mapped from the symptom, or general practice. An absent or
// unknown symptom is a full pass-through, never an error.
func FilterBySymptom(results []entities.FacilitySearchResult, symptom string) []entities.FacilitySearchResult {
	specialist, ok := symptomSpecialists[symptom]
	if !ok {
		return results
	}

	filtered := make([]entities.FacilitySearchResult, 0, len(results))
	for _, r := range results {
		if r.OffersSpecialist(specialist) || r.OffersSpecialist(generalPractice) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
