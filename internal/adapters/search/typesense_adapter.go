package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/lifeline-connect/backend/internal/domain/entities"
	"github.com/lifeline-connect/backend/internal/domain/repositories"
	tsclient "github.com/lifeline-connect/backend/internal/infrastructure/clients/typesense"
)

const collectionName = "facilities"

// TypesenseAdapter implements facility name search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.FacilitySearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "facility_type", Type: "string", Facet: pointer.True()},
			{Name: "city", Type: "string", Facet: pointer.True()},
			{Name: "specialists", Type: "string[]"},
			{Name: "is_active", Type: "bool"},
			{Name: "location", Type: "geopoint"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a facility
func (a *TypesenseAdapter) Index(ctx context.Context, facility *entities.Facility) error {
	document := map[string]interface{}{
		"id":            facility.ID,
		"name":          facility.Name,
		"facility_type": facility.FacilityType,
		"city":          facility.Address.City,
		"specialists":   facility.Specialists,
		"is_active":     facility.IsActive,
		"location":      []float64{facility.Location.Latitude, facility.Location.Longitude},
		"created_at":    facility.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index facility: %w", err)
	}

	return nil
}

// Delete removes a facility from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete facility from index: %w", err)
	}
	return nil
}

// Suggest returns facilities whose names match the query prefix
func (a *TypesenseAdapter) Suggest(ctx context.Context, query string, limit int) ([]*entities.Facility, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,specialists"),
		FilterBy: pointer.String("is_active:=true"),
		PerPage:  pointer.Int(limit),
		Prefix:   pointer.String("true"),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search facilities: %w", err)
	}

	facilities := []*entities.Facility{}
	if result.Hits == nil {
		return facilities, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document
		facility := &entities.Facility{}

		if id, ok := doc["id"].(string); ok {
			facility.ID = id
		}
		if name, ok := doc["name"].(string); ok {
			facility.Name = name
		}
		if facilityType, ok := doc["facility_type"].(string); ok {
			facility.FacilityType = facilityType
		}
		if city, ok := doc["city"].(string); ok {
			facility.Address.City = city
		}
		if specialists, ok := doc["specialists"].([]interface{}); ok {
			for _, s := range specialists {
				if specialist, ok := s.(string); ok {
					facility.Specialists = append(facility.Specialists, specialist)
				}
			}
		}
		if location, ok := doc["location"].([]interface{}); ok && len(location) == 2 {
			if lat, ok := location[0].(float64); ok {
				facility.Location.Latitude = lat
			}
			if lng, ok := location[1].(float64); ok {
				facility.Location.Longitude = lng
			}
		}

		facilities = append(facilities, facility)
	}

	return facilities, nil
}
