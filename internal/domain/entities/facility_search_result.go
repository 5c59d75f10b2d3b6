package entities

// FacilitySearchResult is the facility payload returned by the search path.
// Distance and travel time are set only when the request carried a user
// location; availability is always derived at read time.
type FacilitySearchResult struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	FacilityType  string             `json:"type"`
	Address       Address            `json:"address"`
	Location      Location           `json:"location"`
	BedsAvailable int                `json:"bedsAvailable"`
	TotalBeds     int                `json:"totalBeds"`
	Specialists   []string           `json:"specialists"`
	LabWaitTime   string             `json:"labWaitTime"`
	Availability  AvailabilityStatus `json:"availability"`
	DistanceKm    *float64           `json:"distanceKm,omitempty"`
	TravelTimeMin *int               `json:"travelTimeMinutes,omitempty"`
}

// NewFacilitySearchResult builds an unranked result from reference data.
func NewFacilitySearchResult(f *Facility) FacilitySearchResult {
	return FacilitySearchResult{
		ID:            f.ID,
		Name:          f.Name,
		FacilityType:  f.FacilityType,
		Address:       f.Address,
		Location:      f.Location,
		BedsAvailable: f.BedsAvailable,
		TotalBeds:     f.TotalBeds,
		Specialists:   f.Specialists,
		LabWaitTime:   f.LabWaitTime,
		Availability:  f.Availability(),
	}
}

// OffersSpecialist reports whether the result's facility offers the named
// specialist, with the same exact matching as Facility.OffersSpecialist.
func (r *FacilitySearchResult) OffersSpecialist(specialist string) bool {
	for _, s := range r.Specialists {
		if s == specialist {
			return true
		}
	}
	return false
}
