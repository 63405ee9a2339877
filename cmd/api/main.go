package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/carebook/booking-api/internal/config"
	analyticsHandler "github.com/carebook/booking-api/internal/handler/analytics"
	appointmentHandler "github.com/carebook/booking-api/internal/handler/appointment"
	authHandler "github.com/carebook/booking-api/internal/handler/auth"
	healthHandler "github.com/carebook/booking-api/internal/handler/health"
	userHandler "github.com/carebook/booking-api/internal/handler/user"
	mongorepo "github.com/carebook/booking-api/internal/repository/mongo"
	"github.com/carebook/booking-api/internal/router"
	appointmentService "github.com/carebook/booking-api/internal/service/appointment"
	authService "github.com/carebook/booking-api/internal/service/auth"
	userService "github.com/carebook/booking-api/internal/service/user"
	"github.com/carebook/booking-api/pkg/logger"
	"github.com/carebook/booking-api/pkg/metrics"
	"github.com/carebook/booking-api/pkg/security"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	ctx := context.Background()
	db, err := mongorepo.NewDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	userRepo := mongorepo.NewUserRepository(db)
	hasher := security.NewBcryptHasher(10)

	authSvc := authService.NewService(userRepo, hasher)
	userSvc := userService.NewService(userRepo)
	appointmentSvc := appointmentService.NewService(userRepo, cfg.Analytics.CacheTTL)

	httpMetrics := metrics.NewHTTPMetrics("booking_api")

	r := router.New(cfg, httpMetrics,
		healthHandler.NewHandler(db),
		authHandler.NewHandler(authSvc),
		userHandler.NewHandler(userSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		analyticsHandler.NewHandler(appointmentSvc),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
