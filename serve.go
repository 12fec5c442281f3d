package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	appLogger "github.com/FACorreiaa/go-trip-planner/app/logger"
	appMiddleware "github.com/FACorreiaa/go-trip-planner/app/middleware"
	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/app/tracer"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/container"
	api "github.com/FACorreiaa/go-trip-planner/internal/router"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		return err
	}

	// --- Logger Setup ---
	logger := appLogger.New(cfg.Mode, os.Stdout)
	slog.SetDefault(logger)

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	shutdownTelemetry, metricsHandler, err := tracer.InitTracingAndMetrics(serviceName)
	if err != nil {
		return err
	}
	metrics.InitAppMetrics()

	// --- Dependency Injection ---
	c, err := container.NewContainer(ctx, &cfg, secrets, logger, metrics.Get())
	if err != nil {
		logger.Error("Failed to initialize container", slog.Any("error", err))
		return err
	}
	defer c.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.HTTPPort,
		Handler:      newHTTPHandler(&cfg, c, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metricsHandler)
	metricsSrv := &http.Server{
		Addr:              ":" + cfg.Handlers.Prometheus.Port,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// --- Start Servers ---
	go func() {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()
	if cfg.Handlers.Prometheus.Port != "" {
		go func() {
			logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server error", slog.Any("error", err))
			}
		}()
	}

	// --- Wait for Shutdown Signal ---
	<-ctx.Done()
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.Any("error", err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("Telemetry shutdown failed", slog.Any("error", err))
	}

	logger.Info("Application shut down complete.")
	return nil
}

// newHTTPHandler applies the server-wide middleware around the API router.
func newHTTPHandler(cfg *config.Config, c *container.Container, logger *slog.Logger) http.Handler {
	mainRouter := api.SetupRouter(&api.Config{
		ItineraryHandler: c.ItineraryHandler,
		CORS: appMiddleware.CORSOptions{
			AllowedOrigins: cfg.Cors.AllowedOrigins,
			MaxAge:         cfg.Cors.MaxAge,
		},
		RateLimit:       cfg.Server.RateLimit.Requests,
		RateLimitWindow: cfg.Server.RateLimit.Window,
	})

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	return otelhttp.NewHandler(router, serviceName)
}
