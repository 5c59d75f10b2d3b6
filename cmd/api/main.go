package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifeline-connect/backend/internal/adapters/cache"
	"github.com/lifeline-connect/backend/internal/adapters/database"
	"github.com/lifeline-connect/backend/internal/adapters/events"
	"github.com/lifeline-connect/backend/internal/adapters/search"
	"github.com/lifeline-connect/backend/internal/api/handlers"
	"github.com/lifeline-connect/backend/internal/api/middleware"
	"github.com/lifeline-connect/backend/internal/api/routes"
	"github.com/lifeline-connect/backend/internal/application/services"
	"github.com/lifeline-connect/backend/internal/domain/providers"
	"github.com/lifeline-connect/backend/internal/domain/repositories"
	"github.com/lifeline-connect/backend/internal/infrastructure/clients/postgres"
	"github.com/lifeline-connect/backend/internal/infrastructure/clients/redis"
	"github.com/lifeline-connect/backend/internal/infrastructure/clients/typesense"
	"github.com/lifeline-connect/backend/internal/infrastructure/observability"
	"github.com/lifeline-connect/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	log := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing is optional; the service runs fine without a collector
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional - the service degrades to uncached reads and no events
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache and events")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, suggestions fall back to the database")
		typesenseClient = nil
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	baseFacilityAdapter := database.NewFacilityAdapter(pgClient)

	var facilityRepo repositories.FacilityRepository
	if cacheProvider != nil {
		facilityRepo = database.NewCachedFacilityAdapter(baseFacilityAdapter, cacheProvider)
		log.Info().Msg("facility adapter wrapped with caching layer")
	} else {
		facilityRepo = baseFacilityAdapter
	}

	appointmentRepo := database.NewAppointmentAdapter(pgClient)

	var searchRepo repositories.FacilitySearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		} else {
			searchRepo = adapter
		}
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized")
	}

	searchService := services.NewFacilitySearchService(facilityRepo, searchRepo)

	bookingService := services.NewBookingService(appointmentRepo)
	if eventBus != nil {
		bookingService.SetEventBus(eventBus)
	}

	facilityHandler := handlers.NewFacilityHandler(searchService)
	appointmentHandler := handlers.NewAppointmentHandler(bookingService, metrics)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(
		facilityHandler,
		appointmentHandler,
		cacheMiddleware,
		metrics,
		cfg.Auth.JWTSecret,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
