package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/healthkey/healthkey-api/internal/config"
	"github.com/healthkey/healthkey-api/internal/email"
	"github.com/healthkey/healthkey-api/internal/handler"
	adminHandler "github.com/healthkey/healthkey-api/internal/handler/admin"
	authHandler "github.com/healthkey/healthkey-api/internal/handler/auth"
	doctorHandler "github.com/healthkey/healthkey-api/internal/handler/doctor"
	emergencyHandler "github.com/healthkey/healthkey-api/internal/handler/emergency"
	hospitalHandler "github.com/healthkey/healthkey-api/internal/handler/hospital"
	patientHandler "github.com/healthkey/healthkey-api/internal/handler/patient"
	queueHandler "github.com/healthkey/healthkey-api/internal/handler/queue"
	"github.com/healthkey/healthkey-api/internal/middleware"
	"github.com/healthkey/healthkey-api/internal/repository/document"
	"github.com/healthkey/healthkey-api/internal/router"
	analyticsService "github.com/healthkey/healthkey-api/internal/service/analytics"
	authService "github.com/healthkey/healthkey-api/internal/service/auth"
	consultationService "github.com/healthkey/healthkey-api/internal/service/consultation"
	emergencyService "github.com/healthkey/healthkey-api/internal/service/emergency"
	queueService "github.com/healthkey/healthkey-api/internal/service/queue"
	reviewService "github.com/healthkey/healthkey-api/internal/service/review"
	"github.com/healthkey/healthkey-api/internal/store"
	filestore "github.com/healthkey/healthkey-api/internal/store/file"
	memorystore "github.com/healthkey/healthkey-api/internal/store/memory"
	postgresstore "github.com/healthkey/healthkey-api/internal/store/postgres"
	redisstore "github.com/healthkey/healthkey-api/internal/store/redis"
	"github.com/healthkey/healthkey-api/pkg/auth"
	"github.com/healthkey/healthkey-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(nil)

	recordStore, err := newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open record store")
	}

	// Repositories
	userRepo := document.NewUserRepository(recordStore)
	patientRepo := document.NewPatientRepository(recordStore)
	doctorRepo := document.NewDoctorRepository(recordStore)
	hospitalRepo := document.NewHospitalRepository(recordStore)
	nfcCardRepo := document.NewNfcCardRepository(recordStore)
	consultationRepo := document.NewConsultationRepository(recordStore)
	accessLogRepo := document.NewAccessLogRepository(recordStore)
	emergencyRepo := document.NewEmergencyRepository(recordStore)
	analyticsRepo := document.NewAnalyticsRepository(recordStore)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	emailSvc := email.Service(email.NewNoopService(appLogger))
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP)
	}

	// Services
	authSvc := authService.NewService(userRepo, patientRepo, doctorRepo, hospitalRepo, nfcCardRepo, accessLogRepo, jwtSvc)
	queueSvc := queueService.NewService(patientRepo, doctorRepo, hospitalRepo, consultationRepo,
		queueService.NewLinearEstimator(cfg.Queue.MinutesPerPatient))
	consultationSvc := consultationService.NewService(consultationRepo, patientRepo, doctorRepo, accessLogRepo)
	emergencySvc := emergencyService.NewService(nfcCardRepo, emergencyRepo, accessLogRepo)
	analyticsSvc := analyticsService.NewService(hospitalRepo, doctorRepo, consultationRepo, emergencyRepo, analyticsRepo,
		time.Duration(cfg.Analytics.CacheTTLSeconds)*time.Second)
	reviewSvc := reviewService.NewService(userRepo, doctorRepo, hospitalRepo, accessLogRepo, emailSvc, appLogger)

	// Handlers
	handler.RegisterValidators()
	h := handler.NewHandler(recordStore)
	authH := authHandler.NewHandler(authSvc)
	patientH := patientHandler.NewHandler(patientRepo, emergencySvc)
	doctorH := doctorHandler.NewHandler(doctorRepo, queueSvc, consultationSvc)
	hospitalH := hospitalHandler.NewHandler(hospitalRepo, doctorRepo, analyticsSvc)
	queueH := queueHandler.NewHandler(queueSvc)
	emergencyH := emergencyHandler.NewHandler(emergencySvc)
	adminH := adminHandler.NewHandler(reviewSvc, analyticsSvc, accessLogRepo)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	r := router.New(authMiddleware, authH, patientH, doctorH, hospitalH, queueH, emergencyH, adminH, h, router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORS:           middleware.DefaultCORSConfig(),
		MetricsPrefix:  "healthkey",
	})
	r.Setup()

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "", "memory":
		return memorystore.New(), nil
	case "file":
		return filestore.New(cfg.Store.FilePath), nil
	case "redis":
		return redisstore.New(redisstore.Config{
			URL:          cfg.Store.RedisURL,
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
			PoolSize:     10,
			MinIdleConns: 2,
		})
	case "postgres":
		return postgresstore.New(cfg.Store.Postgres)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
