package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightdesk-service/internal/infrastructure/config"
	"flightdesk-service/internal/infrastructure/sinks"
	"flightdesk-service/internal/interface/api"
	"flightdesk-service/internal/usecase"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/pkg/metrics"
	"flightdesk-service/templates"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting FlightDesk Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(cfg.MetricsNamespace)

	// Set up flight event sinks
	dispatcher := usecase.NewEventDispatcher(cfg.SinkTimeout, log, m)
	closeSinks := sinks.Register(ctx, cfg, dispatcher, log)

	desk := usecase.NewFlightDesk(
		[]string{usecase.PrimaryRegistry, usecase.SecondaryRegistry},
		dispatcher,
		log,
		m,
	)

	// Seed the registries with the demonstration sequence
	renderer := templates.NewFlightTableRenderer(os.Stdout, dispatcher)
	if err := usecase.NewDemoScenario(desk, renderer, log).Run(ctx); err != nil {
		log.Error("Demo scenario failed", "error", err)
	}

	router := api.NewRouter(desk, prometheus.DefaultGatherer, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	closeSinks(shutdownCtx)

	log.Info("FlightDesk Service stopped")
}
