// Package forecast builds the rolling 2-hour bite-score windows the
// scheduler recomputes on every ingestion tick (spec §4.10): a wholesale
// replace of every ForecastWindow/SpeciesForecast row for the configured
// horizon, using the raw running_factor × env_score formula rather than
// the cache's smoothed seasonal baseline.
package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/internal/snapshot"
	"github.com/saaga0h/bayscan-engine/internal/subscore"
	"github.com/saaga0h/bayscan-engine/pkg/astro"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

const windowLength = 2 * time.Hour
const maxHoursAhead = 48

// forecastSpecies is every species a forecast window carries a row for:
// every fish species (Tier 1 and Tier 2), not bait or predator species.
var forecastSpecies = append(append([]string{}, rules.TierOneSpecies...), rules.TierTwoSpecies...)

// Builder constructs forecast windows from the same tide/weather/astronomy
// sources the snapshot capturer reads.
type Builder struct {
	store            store.Store
	lat              float64
	lon              float64
	penaltyUnsafe    float64
	penaltyCaution   float64
	logger           *slog.Logger
}

// NewBuilder builds a Builder against the engine's store, dock
// coordinates, and the marine-hazard bite-score penalties applied when the
// latest MarineCondition reads unsafe or caution (spec §7(g)).
func NewBuilder(s store.Store, lat, lon float64, penaltyUnsafe, penaltyCaution float64, logger *slog.Logger) *Builder {
	return &Builder{store: s, lat: lat, lon: lon, penaltyUnsafe: penaltyUnsafe, penaltyCaution: penaltyCaution, logger: logger}
}

// Build replaces every forecast window with hoursAhead (capped at 48)
// hours of fresh 2-hour windows starting on the hour, computing each
// species' bite score at the window's middle instant.
func (b *Builder) Build(ctx context.Context, hoursAhead int) error {
	if hoursAhead <= 0 || hoursAhead > maxHoursAhead {
		hoursAhead = maxHoursAhead
	}

	now := time.Now().UTC()
	start := now.Truncate(time.Hour)

	samples, err := b.store.TideSamplesAround(ctx, now, time.Duration(hoursAhead+2)*time.Hour)
	if err != nil {
		return fmt.Errorf("build forecast windows: %w", err)
	}

	marinePenalty := 0.0
	if marine, err := b.store.LatestMarineCondition(ctx); err != nil {
		return fmt.Errorf("build forecast windows: %w", err)
	} else if marine != nil {
		switch marine.SafetyLevel {
		case "unsafe":
			marinePenalty = b.penaltyUnsafe
		case "caution":
			marinePenalty = b.penaltyCaution
		}
	}

	windows := make([]store.ForecastWindow, 0, hoursAhead/2)
	forecasts := make([]store.SpeciesForecast, 0, (hoursAhead/2)*len(forecastSpecies))

	for offset := 0; offset < hoursAhead; offset += 2 {
		windowStart := start.Add(time.Duration(offset) * time.Hour)
		windowEnd := windowStart.Add(windowLength)
		middle := windowStart.Add(windowLength / 2)

		windowID := windowStart.Format(time.RFC3339)
		windows = append(windows, store.ForecastWindow{ID: windowID, Start: windowStart, End: windowEnd})

		in, err := b.inputsAt(ctx, middle, samples)
		if err != nil {
			b.logger.Warn("skipping window, no conditions available", "window_start", windowStart, "error", err)
			continue
		}

		for _, species := range forecastSpecies {
			runningFactor := rules.RunningFactor(species, middle)
			isRunning := rules.IsRunning(species, middle, 0.4)

			var biteScore float64
			if runningFactor >= 0.1 {
				envScore := subscore.EnvironmentalScore(species, in)
				biteScore = clamp(runningFactor*envScore*100 + marinePenalty)
			}

			forecasts = append(forecasts, store.SpeciesForecast{
				WindowID:      windowID,
				Species:       species,
				IsRunning:     isRunning,
				RunningFactor: runningFactor,
				BiteScore:     biteScore,
				BiteLabel:     rules.BiteLabel(biteScore),
			})
		}
	}

	if err := b.store.ReplaceForecastWindows(ctx, windows, forecasts); err != nil {
		return fmt.Errorf("build forecast windows: %w", err)
	}

	b.logger.Info("rebuilt forecast windows", "window_count", len(windows), "hours_ahead", hoursAhead)
	return nil
}

func (b *Builder) inputsAt(ctx context.Context, t time.Time, samples []store.TideSample) (subscore.Inputs, error) {
	tide, ok := snapshot.DeriveTideStage(samples, t)
	if !ok {
		return subscore.Inputs{}, fmt.Errorf("no tide data for %s", t.Format(time.RFC3339))
	}

	weather, err := b.store.LatestWeatherForecast(ctx, t)
	if err != nil {
		return subscore.Inputs{}, fmt.Errorf("weather forecast: %w", err)
	}
	var obs *store.WeatherObservation
	for i := range weather {
		if !weather[i].Timestamp.After(t) {
			obs = &weather[i]
			continue
		}
		break
	}
	if obs == nil {
		latest, err := b.store.LatestWeatherObservation(ctx)
		if err != nil {
			return subscore.Inputs{}, fmt.Errorf("weather observation: %w", err)
		}
		obs = latest
	}
	if obs == nil {
		return subscore.Inputs{}, fmt.Errorf("no weather data for %s", t.Format(time.RFC3339))
	}

	day, err := b.store.AstronomicalDayFor(ctx, t)
	if err != nil {
		return subscore.Inputs{}, fmt.Errorf("astronomical day: %w", err)
	}
	moonPhase := 0.0
	if day != nil {
		moonPhase = day.MoonPhase
	} else {
		computed := astro.ForDate(t, b.lat, b.lon)
		moonPhase = computed.MoonPhase
	}

	var waterTempF *float64
	if reading, err := b.store.LatestWaterTempReading(ctx); err != nil {
		return subscore.Inputs{}, fmt.Errorf("water temp: %w", err)
	} else if reading != nil {
		waterTempF = &reading.TempF
	}

	return subscore.Inputs{
		TideState:      tide.Stage,
		TideChangeRate: tide.ChangeRate,
		WindSpeedMph:   obs.WindSpeedMph,
		WindDirection:  obs.WindDirectionCardinal,
		AirTempF:       obs.AirTempF,
		WaterTempF:     waterTempF,
		PressureTrend:  "stable",
		MoonPhase:      moonPhase,
		CloudCover:     obs.CloudCover,
	}, nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
