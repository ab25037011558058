package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/velora-studio/booking-backend/internal/adapters/cache"
	"github.com/velora-studio/booking-backend/internal/adapters/database"
	"github.com/velora-studio/booking-backend/internal/adapters/providers/scheduling"
	"github.com/velora-studio/booking-backend/internal/api/handlers"
	"github.com/velora-studio/booking-backend/internal/api/routes"
	"github.com/velora-studio/booking-backend/internal/application/services"
	"github.com/velora-studio/booking-backend/internal/domain/providers"
	"github.com/velora-studio/booking-backend/internal/infrastructure/clients/postgres"
	"github.com/velora-studio/booking-backend/internal/infrastructure/clients/redis"
	"github.com/velora-studio/booking-backend/internal/infrastructure/notifications"
	"github.com/velora-studio/booking-backend/internal/infrastructure/observability"
	"github.com/velora-studio/booking-backend/pkg/config"
)

func main() {
	// .env is optional; real deployments inject environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("booking-backend", cfg.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, busy-interval caching disabled")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	bookingRepo := database.NewBookingAdapter(pgClient)
	serviceRepo := database.NewServiceAdapter(pgClient)
	locationRepo := database.NewLocationAdapter(pgClient)

	calendar := scheduling.NewGoogleCalendarAdapter(cfg.Calendar.BaseURL, cfg.Calendar.AccessToken)

	notifier, err := notifications.NewMessageAPISender(
		cfg.Notifications.BaseURL,
		cfg.Notifications.APIKey,
		cfg.Notifications.FromAddress,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize notification sender")
	}

	availabilityService := services.NewAvailabilityService(
		serviceRepo,
		locationRepo,
		calendar,
		cacheProvider,
		cfg.Availability.BusyCacheTTLSeconds,
	)
	bookingService := services.NewBookingService(bookingRepo, serviceRepo, locationRepo)
	dispatcher := services.NewDispatcherService(calendar, notifier, bookingRepo)

	bookingHandler := handlers.NewBookingHandler(bookingService, dispatcher)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	serviceHandler := handlers.NewServiceHandler(serviceRepo)

	router := routes.NewRouter(bookingHandler, availabilityHandler, serviceHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
