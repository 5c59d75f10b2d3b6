package services

import (
	"math"
	"sort"

	"github.com/lifeline-connect/backend/internal/domain/entities"
)

const (
	earthRadiusKm = 6371.0

	// avgTravelSpeedKmh is the assumed road speed for travel time estimates.
	avgTravelSpeedKmh = 40.0

	// maxRankedResults caps the ranked list at the nearest facilities.
	maxRankedResults = 5
)

// RankByDistance annotates each facility with its distance from the user
// location and an estimated travel time, sorts ascending by distance and
// truncates to the nearest results. Ties keep their input order: the sort is
// stable and no secondary key is applied, so ranking stays deterministic.
func RankByDistance(facilities []*entities.Facility, user entities.Location) []entities.FacilitySearchResult {
	type ranked struct {
		result   entities.FacilitySearchResult
		distance float64
	}

	annotated := make([]ranked, 0, len(facilities))
	for _, f := range facilities {
		result := entities.NewFacilitySearchResult(f)

		dist := haversineKm(user.Latitude, user.Longitude, f.Location.Latitude, f.Location.Longitude)
		rounded := math.Round(dist*10) / 10
		travelMin := int(math.Round(dist / avgTravelSpeedKmh * 60))

		result.DistanceKm = &rounded
		result.TravelTimeMin = &travelMin

		annotated = append(annotated, ranked{result: result, distance: dist})
	}

	// Sort on the unrounded distance so nearby facilities that round to the
	// same displayed value still order correctly.
	sort.SliceStable(annotated, func(i, j int) bool {
		return annotated[i].distance < annotated[j].distance
	})

	if len(annotated) > maxRankedResults {
		annotated = annotated[:maxRankedResults]
	}

	results := make([]entities.FacilitySearchResult, 0, len(annotated))
	for _, r := range annotated {
		results = append(results, r.result)
	}
	return results
}

// haversineKm computes the great-circle distance between two coordinates
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
