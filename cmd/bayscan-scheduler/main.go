// Command bayscan-scheduler runs the engine's periodic ingestion, forecast,
// alert, and recalculation jobs (spec §4.12).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/engine"
	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/internal/scheduler"
	"github.com/saaga0h/bayscan-engine/internal/sources"
	"github.com/saaga0h/bayscan-engine/pkg/config"
	"github.com/saaga0h/bayscan-engine/pkg/health"
	"github.com/saaga0h/bayscan-engine/pkg/mqtt"
	"github.com/saaga0h/bayscan-engine/pkg/postgres"
	"github.com/saaga0h/bayscan-engine/pkg/redis"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

func main() {
	cfg := config.NewConfig()
	cfg.ServiceName = "bayscan-scheduler"
	cfg.LoadFromEnv()
	cfg.LoadFromFlags()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	logger.Info("starting bayscan scheduler",
		"mqtt_broker", cfg.MQTTAddress(),
		"redis_host", cfg.RedisAddress(),
		"postgres_db", cfg.PostgresDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	pgClient := postgres.NewClient(cfg, logger)
	if err := pgClient.Connect(ctx); err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pgClient.Disconnect()

	db := store.NewPostgresStore(pgClient.DB())

	if err := rules.SeedZones(ctx, db, cfg.ZoneOverlayPath); err != nil {
		logger.Error("failed to seed zones", "error", err)
		os.Exit(1)
	}

	mqttClient := mqtt.NewClient(cfg, logger)
	if err := mqttClient.Connect(ctx); err != nil {
		logger.Error("failed to connect to mqtt broker", "error", err)
		os.Exit(1)
	}
	defer mqttClient.Disconnect()

	redisClient := redis.NewClient(cfg, logger)

	src := struct {
		Tide            sources.TideSource
		WeatherObs      sources.WeatherObservationsSource
		WeatherForecast sources.WeatherForecastSource
		Marine          sources.MarineSource
		Astronomy       sources.AstronomySource
		WaterTemp       sources.WaterTempSource
	}{
		Tide:            sources.NewNOAATideClient(cfg.TideAPIURL, logger),
		WeatherObs:      sources.NewNWSWeatherClient(cfg.WeatherAPIURL, cfg.WeatherUserAgent, logger),
		WeatherForecast: sources.NewNWSWeatherClient(cfg.WeatherAPIURL, cfg.WeatherUserAgent, logger),
		Marine:          sources.NewNWSMarineClient(cfg.WeatherAPIURL, cfg.WeatherUserAgent, logger),
		Astronomy:       sources.NewSuncalcAstronomySource(),
		WaterTemp:       sources.NewNOAAWaterTempClient(cfg.TideAPIURL, logger),
	}

	eng := engine.New(db, cfg, src, mqttClient, logger)
	sched := scheduler.New(eng, redisClient, cfg, logger)

	healthChecker := health.NewChecker(mqttClient, redisClient, pgClient, logger)
	httpServer := startHealthServer(cfg.HealthPort, healthChecker, logger)

	schedErr := make(chan error, 1)
	go func() {
		if err := sched.Run(ctx); err != nil {
			schedErr <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case err := <-schedErr:
		logger.Error("scheduler failed", "error", err)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down health server", "error", err)
	}

	logger.Info("bayscan scheduler shutdown complete")
}

func startHealthServer(port int, checker *health.Checker, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.HandlerFunc())

	server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		logger.Info("starting health check server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()
	return server
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
