package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/astro"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// RetentionWindow is the minimum age at which snapshots become eligible
// for deletion (spec §4.3: "≥ 30 days").
const RetentionWindow = 30 * 24 * time.Hour

// recentSnapshotWindow is how close together two captures must be for the
// second to be skipped as redundant.
const recentSnapshotWindow = 5 * time.Minute

// Capturer builds and persists EnvironmentSnapshot rows every tick.
type Capturer struct {
	store  store.Store
	lat    float64
	lon    float64
	logger *slog.Logger
}

// NewCapturer builds a Capturer against the engine's store and dock
// coordinates.
func NewCapturer(s store.Store, lat, lon float64, logger *slog.Logger) *Capturer {
	return &Capturer{store: s, lat: lat, lon: lon, logger: logger}
}

// Capture builds one EnvironmentSnapshot for "now", skipping if a snapshot
// was already taken within the last five minutes (spec §4.3).
func (c *Capturer) Capture(ctx context.Context) error {
	now := time.Now()

	recent, err := c.store.SnapshotWithinLast(ctx, recentSnapshotWindow)
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}
	if recent {
		c.logger.Debug("skipping snapshot, one was captured recently")
		return nil
	}

	samples, err := c.store.TideSamplesAround(ctx, now, time.Hour)
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}
	tide, ok := DeriveTideStage(samples, now)
	if !ok {
		return fmt.Errorf("capture snapshot: no tide samples available around %s", now.Format(time.RFC3339))
	}

	weather, err := c.store.LatestWeatherObservation(ctx)
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}
	if weather == nil {
		forecast, err := c.store.LatestWeatherForecast(ctx, now)
		if err != nil {
			return fmt.Errorf("capture snapshot: %w", err)
		}
		if len(forecast) > 0 {
			weather = &forecast[0]
		}
	}
	if weather == nil {
		return fmt.Errorf("capture snapshot: no weather observation or forecast available")
	}

	day := astro.ForDate(now, c.lat, c.lon)
	timeOfDay := astro.TimeOfDay(now, day.SunriseUTC, day.SunsetUTC)
	dockLightsOn := timeOfDay == "dusk" || timeOfDay == "night"

	marine, err := c.store.LatestMarineCondition(ctx)
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}
	clarity := "slightly_stained"
	if marine != nil && marine.SeaStateLabel != "" {
		clarity = marine.SeaStateLabel
	}

	var waterTempF *float64
	if reading, err := c.store.LatestWaterTempReading(ctx); err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	} else if reading != nil {
		waterTempF = &reading.TempF
	}

	snap := store.EnvironmentSnapshot{
		CapturedAt:     now,
		TideHeightFt:   tide.HeightFt,
		TideStage:      tide.Stage,
		TideChangeRate: tide.ChangeRate,
		AirTempF:       weather.AirTempF,
		WaterTempF:     waterTempF,
		WindSpeedMph:   weather.WindSpeedMph,
		WindDirection:  weather.WindDirectionCardinal,
		WindGustMph:    weather.WindGustMph,
		PressureMb:     weather.PressureMb,
		CloudCover:     weather.CloudCover,
		Clarity:        clarity,
		MoonPhase:      day.MoonPhase,
		MoonPhaseName:  day.MoonPhaseName,
		TimeOfDay:      timeOfDay,
		DockLightsOn:   dockLightsOn,
	}

	if err := c.store.InsertSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}

	c.logger.Info("captured environment snapshot",
		"tide_stage", tide.Stage, "time_of_day", timeOfDay, "dock_lights_on", dockLightsOn)

	deleted, err := c.store.DeleteSnapshotsOlderThan(ctx, now.Add(-RetentionWindow))
	if err != nil {
		return fmt.Errorf("capture snapshot: prune: %w", err)
	}
	if deleted > 0 {
		c.logger.Debug("pruned old snapshots", "count", deleted)
	}

	return nil
}
