package entities

import (
	"time"
)

// AvailabilityStatus classifies a facility by bed occupancy ratio.
// It is always derived from bed counts, never stored.
type AvailabilityStatus string

const (
	AvailabilityFull      AvailabilityStatus = "full"
	AvailabilityLimited   AvailabilityStatus = "limited"
	AvailabilityAvailable AvailabilityStatus = "available"
)

// limitedBedRatio is the fraction of total beds below which a facility
// is considered to have limited availability.
const limitedBedRatio = 0.25

// Facility represents a healthcare facility in the system.
// Facilities are read-only reference data for the search and booking paths.
type Facility struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	FacilityType  string    `json:"type" db:"facility_type"`
	Address       Address   `json:"address" db:"-"`
	Location      Location  `json:"location" db:"-"`
	BedsAvailable int       `json:"bedsAvailable" db:"beds_available"`
	TotalBeds     int       `json:"totalBeds" db:"total_beds"`
	Specialists   []string  `json:"specialists" db:"-"`
	LabWaitTime   string    `json:"labWaitTime" db:"lab_wait_time"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Address represents a physical address
type Address struct {
	Street string `json:"street" db:"street"`
	City   string `json:"city" db:"city"`
	State  string `json:"state" db:"state"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"lat" db:"latitude"`
	Longitude float64 `json:"lng" db:"longitude"`
}

// Availability derives the availability status from the bed ratio.
func (f *Facility) Availability() AvailabilityStatus {
	if f.BedsAvailable <= 0 {
		return AvailabilityFull
	}
	if f.TotalBeds > 0 && float64(f.BedsAvailable) < limitedBedRatio*float64(f.TotalBeds) {
		return AvailabilityLimited
	}
	return AvailabilityAvailable
}

// OffersSpecialist reports whether the facility offers the named specialist.
// Matching is exact and case-sensitive.
func (f *Facility) OffersSpecialist(specialist string) bool {
	for _, s := range f.Specialists {
		if s == specialist {
			return true
		}
	}
	return false
}
