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

	"github.com/telesante/telesante-api/internal/config"
	"github.com/telesante/telesante-api/internal/email"
	"github.com/telesante/telesante-api/internal/handler"
	alertHandler "github.com/telesante/telesante-api/internal/handler/alert"
	appointmentHandler "github.com/telesante/telesante-api/internal/handler/appointment"
	authHandler "github.com/telesante/telesante-api/internal/handler/auth"
	availabilityHandler "github.com/telesante/telesante-api/internal/handler/availability"
	conseilHandler "github.com/telesante/telesante-api/internal/handler/conseil"
	ficheHandler "github.com/telesante/telesante-api/internal/handler/fiche"
	measurementHandler "github.com/telesante/telesante-api/internal/handler/measurement"
	messageHandler "github.com/telesante/telesante-api/internal/handler/message"
	notificationHandler "github.com/telesante/telesante-api/internal/handler/notification"
	ordonnanceHandler "github.com/telesante/telesante-api/internal/handler/ordonnance"
	structureHandler "github.com/telesante/telesante-api/internal/handler/structure"
	userHandler "github.com/telesante/telesante-api/internal/handler/user"
	"github.com/telesante/telesante-api/internal/middleware"
	"github.com/telesante/telesante-api/internal/repository/postgres"
	"github.com/telesante/telesante-api/internal/router"
	alertService "github.com/telesante/telesante-api/internal/service/alert"
	appointmentService "github.com/telesante/telesante-api/internal/service/appointment"
	authService "github.com/telesante/telesante-api/internal/service/auth"
	availabilityService "github.com/telesante/telesante-api/internal/service/availability"
	conseilService "github.com/telesante/telesante-api/internal/service/conseil"
	ficheService "github.com/telesante/telesante-api/internal/service/fiche"
	measurementService "github.com/telesante/telesante-api/internal/service/measurement"
	messageService "github.com/telesante/telesante-api/internal/service/message"
	notificationService "github.com/telesante/telesante-api/internal/service/notification"
	ordonnanceService "github.com/telesante/telesante-api/internal/service/ordonnance"
	structureService "github.com/telesante/telesante-api/internal/service/structure"
	userService "github.com/telesante/telesante-api/internal/service/user"
	"github.com/telesante/telesante-api/pkg/auth"
	"github.com/telesante/telesante-api/pkg/metrics"
	"github.com/telesante/telesante-api/pkg/security"
)

func main() {
	// .env is optional, used for local development only.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	measurementRepo := postgres.NewMeasurementRepository(db)
	conseilRepo := postgres.NewConseilRepository(db)
	ordonnanceRepo := postgres.NewOrdonnanceRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	structureRepo := postgres.NewStructureRepository(db)
	ficheRepo := postgres.NewFicheRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Shared infrastructure
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(12)
	m := metrics.NewMetrics("telesante", "api")

	var emailSvc email.Service
	if cfg.Email.Host != "" {
		emailSvc = email.NewService(cfg.Email)
	} else {
		emailSvc = email.NewNoopService()
	}

	// Services
	notificationSvc := notificationService.NewService(notificationRepo, outboxRepo, userRepo, emailSvc, m)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher, emailSvc)
	userSvc := userService.NewService(userRepo)
	availabilitySvc := availabilityService.NewService(availabilityRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, userRepo, notificationSvc)
	measurementSvc := measurementService.NewService(measurementRepo)
	conseilSvc := conseilService.NewService(conseilRepo, notificationSvc)
	ordonnanceSvc := ordonnanceService.NewService(ordonnanceRepo, notificationSvc)
	messageSvc := messageService.NewService(messageRepo, userRepo, notificationSvc)
	alertSvc := alertService.NewService(alertRepo, userRepo, notificationSvc)
	structureSvc := structureService.NewService(structureRepo)
	ficheSvc := ficheService.NewService(ficheRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	handlers := router.Handlers{
		Auth:         authHandler.NewHandler(authSvc),
		User:         userHandler.NewHandler(userSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Availability: availabilityHandler.NewHandler(availabilitySvc),
		Measurement:  measurementHandler.NewHandler(measurementSvc),
		Conseil:      conseilHandler.NewHandler(conseilSvc),
		Ordonnance:   ordonnanceHandler.NewHandler(ordonnanceSvc),
		Notification: notificationHandler.NewHandler(notificationSvc),
		Message:      messageHandler.NewHandler(messageSvc),
		Alert:        alertHandler.NewHandler(alertSvc),
		Fiche:        ficheHandler.NewHandler(ficheSvc),
		Structure:    structureHandler.NewHandler(structureSvc),
		Base:         handler.NewHandler(db),
	}

	r := router.NewRouter(authMiddleware, handlers, router.Config{
		RateLimitRPS:  cfg.RateLimit.RequestsPerSecond,
		RateBurst:     cfg.RateLimit.Burst,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "telesante_http",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
