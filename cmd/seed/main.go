package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifeline-connect/backend/internal/adapters/database"
	"github.com/lifeline-connect/backend/internal/adapters/search"
	"github.com/lifeline-connect/backend/internal/domain/entities"
	"github.com/lifeline-connect/backend/internal/infrastructure/clients/postgres"
	"github.com/lifeline-connect/backend/internal/infrastructure/clients/typesense"
	"github.com/lifeline-connect/backend/internal/infrastructure/observability"
	"github.com/lifeline-connect/backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS facilities (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	facility_type TEXT NOT NULL,
	street TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION NOT NULL,
	longitude DOUBLE PRECISION NOT NULL,
	beds_available INTEGER NOT NULL DEFAULT 0,
	total_beds INTEGER NOT NULL DEFAULT 0,
	specialists TEXT[] NOT NULL DEFAULT '{}',
	lab_wait_time TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS appointments (
	token TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	facility_id TEXT NOT NULL,
	facility_name TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	specialist TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'confirmed',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_appointments_user ON appointments (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_facilities_active ON facilities (is_active);
`

func seedFacilities() []*entities.Facility {
	now := time.Now()
	build := func(name, facilityType, street string, lat, lng float64, beds, total int, specialists []string, labWait string) *entities.Facility {
		return &entities.Facility{
			ID:           uuid.New().String(),
			Name:         name,
			FacilityType: facilityType,
			Address: entities.Address{
				Street: street,
				City:   "Nashik",
				State:  "Maharashtra",
			},
			Location:      entities.Location{Latitude: lat, Longitude: lng},
			BedsAvailable: beds,
			TotalBeds:     total,
			Specialists:   specialists,
			LabWaitTime:   labWait,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	return []*entities.Facility{
		build("Nashik Civil Hospital", "hospital", "Trimbak Road", 19.9982, 73.7764, 25, 120,
			[]string{"General Physician", "Cardiologist", "Orthopedic", "Gynecologist"}, "45 min"),
		build("Sahyadri Multispeciality Hospital", "hospital", "Mumbai Naka", 20.0028, 73.7812, 8, 80,
			[]string{"Cardiologist", "Neurologist", "Oncologist"}, "30 min"),
		build("Riverside Family Clinic", "clinic", "Gangapur Road", 20.0172, 73.7520, 4, 12,
			[]string{"General Physician", "Gynecologist"}, "15 min"),
		build("Panchavati Orthopedic Centre", "clinic", "Panchavati", 20.0104, 73.7910, 2, 20,
			[]string{"Orthopedic", "General Physician"}, "20 min"),
		build("Wockhardt Superspeciality", "hospital", "Wadala Road", 19.9615, 73.7926, 0, 150,
			[]string{"Cardiologist", "Oncologist", "Neurologist", "Gynecologist"}, "60 min"),
		build("Deolali Camp Health Post", "clinic", "Deolali Camp", 19.9430, 73.8340, 6, 10,
			[]string{"General Physician"}, "10 min"),
		build("Satpur MIDC Occupational Clinic", "clinic", "Satpur MIDC", 20.0075, 73.7295, 3, 8,
			[]string{"General Physician", "Orthopedic"}, "25 min"),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	log := observability.GetLogger()

	ctx := context.Background()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}
	log.Info().Msg("schema applied")

	facilityRepo := database.NewFacilityAdapter(pgClient)

	var searchRepo *search.TypesenseAdapter
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema, skipping indexing")
			searchRepo = nil
		}
	} else {
		log.Warn().Err(err).Msg("Typesense unavailable, skipping indexing")
	}

	seeded := 0
	for _, facility := range seedFacilities() {
		if err := facilityRepo.Create(ctx, facility); err != nil {
			log.Error().Err(err).Str("facility", facility.Name).Msg("failed to seed facility")
			continue
		}
		seeded++

		if searchRepo != nil {
			if err := searchRepo.Index(ctx, facility); err != nil {
				log.Warn().Err(err).Str("facility", facility.Name).Msg("failed to index facility")
			}
		}
	}

	log.Info().Int("count", seeded).Msg("seeding complete")
}
