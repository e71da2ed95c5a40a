package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/agendadoc/booking-platform/internal/api/router"
	"github.com/agendadoc/booking-platform/internal/appointments"
	"github.com/agendadoc/booking-platform/internal/catalog"
	appconfig "github.com/agendadoc/booking-platform/internal/config"
	"github.com/agendadoc/booking-platform/internal/http/handlers"
	"github.com/agendadoc/booking-platform/internal/observability/metrics"
	"github.com/agendadoc/booking-platform/internal/patients"
	"github.com/agendadoc/booking-platform/internal/recent"
	"github.com/agendadoc/booking-platform/internal/wizard"
	"github.com/agendadoc/booking-platform/pkg/logging"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	patientClient, err := patients.New(patients.Config{
		BaseURL: cfg.PatientAPIBaseURL,
		APIKey:  cfg.UpstreamAPIKey,
		Timeout: cfg.UpstreamTimeout,
		Logger:  logger.Logger,
	})
	if err != nil {
		logger.Error("failed to build patient search client", "error", err)
		os.Exit(1)
	}
	catalogClient, err := catalog.New(catalog.Config{
		BaseURL: cfg.CatalogAPIBaseURL,
		APIKey:  cfg.UpstreamAPIKey,
		Timeout: cfg.UpstreamTimeout,
		Logger:  logger.Logger,
	})
	if err != nil {
		logger.Error("failed to build catalog client", "error", err)
		os.Exit(1)
	}
	appointmentClient, err := appointments.New(appointments.Config{
		BaseURL: cfg.AppointmentAPIBaseURL,
		APIKey:  cfg.UpstreamAPIKey,
		Timeout: cfg.UpstreamTimeout,
		Logger:  logger.Logger,
	})
	if err != nil {
		logger.Error("failed to build appointment client", "error", err)
		os.Exit(1)
	}

	wizardMetrics := metrics.NewWizardMetrics(nil)
	manager := wizard.NewManager(cfg.SessionTTL, logger)
	wizardService := wizard.NewService(manager, appointmentClient, wizardMetrics, logger)
	recentStore := recent.NewStore(redisClient, cfg.RecentPatientsMax, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go manager.Run(ctx, cfg.SessionSweepEvery)

	wizardHandler := handlers.NewWizardHandler(wizardService, recentStore, wizardMetrics, logger)
	lookupHandler := handlers.NewLookupHandler(recentStore, patientClient, catalogClient, manager, logger)

	r := router.New(&router.Config{
		Logger:         logger,
		WizardHandler:  wizardHandler,
		LookupHandler:  lookupHandler,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
