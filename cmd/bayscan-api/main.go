// Command bayscan-api serves the dock's HTTP read/write surface: cached
// scores, forecasts, alerts, species lookups, catch/bait/predator logging,
// and a websocket relay for live score updates (spec §6).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/api"
	"github.com/saaga0h/bayscan-engine/internal/engine"
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
	cfg.ServiceName = "bayscan-api"
	cfg.LoadFromEnv()
	cfg.LoadFromFlags()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	logger.Info("starting bayscan api", "mqtt_broker", cfg.MQTTAddress(), "redis_host", cfg.RedisAddress())

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
	apiServer := api.NewServer(eng, db, logger)

	// Mirror every species/zone score update onto connected /ws/scores
	// clients. The handler parses species/zone back out of the topic
	// rather than the payload since ScoreUpdatedTopic already encodes them.
	if err := mqttClient.Subscribe("bayscan/scores/updated/+/+", 0, func(msg mqtt.Message) {
		parts := strings.Split(msg.Topic(), "/")
		if len(parts) != 5 {
			return
		}
		apiServer.Hub().Broadcast(parts[3], parts[4])
	}); err != nil {
		logger.Error("failed to subscribe to score update topic", "error", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", apiServer)

	healthChecker := health.NewChecker(mqttClient, redisClient, pgClient, logger)
	mux.HandleFunc("/health", healthChecker.HandlerFunc())

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.ServerPort), Handler: mux}
	go func() {
		logger.Info("starting api server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server error", "error", err)
		}
	}()

	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down api server", "error", err)
	}

	logger.Info("bayscan api shutdown complete")
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
