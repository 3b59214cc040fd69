package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// ingestWindow is how far ahead/behind each fetch reaches around "now",
// wide enough to cover a missed tick without leaving a gap in the forecast
// horizon.
const ingestWindow = 3 * time.Hour

// IngestTide fetches fresh tide predictions for the dock's station and
// persists them (spec §4.12 step 1).
func (e *Engine) IngestTide(ctx context.Context) error {
	now := time.Now().UTC()
	predictions, err := e.Tide.PredictionsInRange(ctx, e.Cfg.TidePredictionStationID, now.Add(-ingestWindow), now.Add(time.Duration(e.Cfg.HoursAhead)*time.Hour+ingestWindow))
	if err != nil {
		return fmt.Errorf("ingest tide: %w", err)
	}

	samples := make([]store.TideSample, 0, len(predictions))
	for _, p := range predictions {
		samples = append(samples, store.TideSample{
			Timestamp:    p.Time,
			HeightFt:     p.HeightFt,
			ExtremumKind: p.ExtremumKind,
			IsPrediction: true,
		})
	}
	if err := e.Store.InsertTideSamples(ctx, samples); err != nil {
		return fmt.Errorf("ingest tide: %w", err)
	}
	e.logger.Debug("ingested tide predictions", "count", len(samples))
	return nil
}

// IngestWeatherForecast fetches the hourly forecast for the dock location
// and persists each point as a forecast-flagged WeatherObservation row
// (spec §4.12 step 2).
func (e *Engine) IngestWeatherForecast(ctx context.Context) error {
	points, err := e.WeatherForecast.Hourly(ctx, e.Cfg.Latitude, e.Cfg.Longitude)
	if err != nil {
		return fmt.Errorf("ingest weather forecast: %w", err)
	}

	for _, p := range points {
		obs := store.WeatherObservation{
			Timestamp:             p.Time,
			AirTempF:              p.TemperatureF,
			WindSpeedMph:          p.WindSpeedMph,
			WindDirectionCardinal: p.WindDirection,
			CloudCover:            p.CloudCover,
			PrecipitationProb:     p.PrecipitationProb,
			ShortConditions:       p.ShortConditions,
			IsForecast:            true,
		}
		if err := e.Store.InsertWeatherObservation(ctx, obs); err != nil {
			return fmt.Errorf("ingest weather forecast: %w", err)
		}
	}
	e.logger.Debug("ingested weather forecast", "count", len(points))
	return nil
}

// IngestAstronomy computes sunrise/sunset/moon-phase for today and
// tomorrow so the forecast horizon never runs past a missing astronomical
// day (spec §4.12 step 3).
func (e *Engine) IngestAstronomy(ctx context.Context) error {
	now := time.Now().UTC()
	for _, date := range []time.Time{now, now.Add(24 * time.Hour)} {
		day, err := e.Astronomy.DailyForDate(ctx, date, e.Cfg.Latitude, e.Cfg.Longitude)
		if err != nil {
			return fmt.Errorf("ingest astronomy: %w", err)
		}
		if err := e.Store.UpsertAstronomicalDay(ctx, store.AstronomicalDay{
			Date:          day.Date,
			SunriseUTC:    day.SunriseUTC,
			SunsetUTC:     day.SunsetUTC,
			MoonPhase:     day.MoonPhase,
			MoonPhaseName: day.MoonPhaseName,
		}); err != nil {
			return fmt.Errorf("ingest astronomy: %w", err)
		}
	}
	return nil
}

// IngestWaterTemp fetches the latest observed water temperature (spec
// §4.12 step 4).
func (e *Engine) IngestWaterTemp(ctx context.Context) error {
	reading, err := e.WaterTemp.Latest(ctx, e.Cfg.TideRealtimeStationID)
	if err != nil {
		return fmt.Errorf("ingest water temp: %w", err)
	}
	if err := e.Store.InsertWaterTempReading(ctx, store.WaterTempReading{
		Timestamp: reading.Time,
		TempF:     reading.TempF,
	}); err != nil {
		return fmt.Errorf("ingest water temp: %w", err)
	}
	return nil
}

// IngestWeatherObservations fetches the latest observed weather at the
// realtime station (spec §4.12 step 5).
func (e *Engine) IngestWeatherObservations(ctx context.Context) error {
	obs, err := e.WeatherObs.Latest(ctx, e.Cfg.TideRealtimeStationID)
	if err != nil {
		return fmt.Errorf("ingest weather observations: %w", err)
	}
	return e.Store.InsertWeatherObservation(ctx, store.WeatherObservation{
		Timestamp:             obs.Time,
		AirTempF:              obs.AirTempF,
		WindSpeedMph:          obs.WindSpeedMph,
		WindDirectionCardinal: obs.WindDirectionCardinal,
		WindGustMph:           obs.WindGustMph,
		PressureMb:            obs.PressureMb,
		Humidity:              obs.Humidity,
		IsForecast:            false,
	})
}

// IngestMarine fetches the marine forecast and active hazard alerts for
// the configured zone, derives a safety score/level from them, and
// persists the result (spec §4.4's MarineCondition, §7(g)'s hazard
// penalty).
func (e *Engine) IngestMarine(ctx context.Context) error {
	forecast, err := e.Marine.ForecastAndAlerts(ctx, e.Cfg.MarineZone)
	if err != nil {
		return fmt.Errorf("ingest marine: %w", err)
	}

	hazardLevel := "none"
	safetyScore := 100
	for _, a := range forecast.Alerts {
		switch strings.ToLower(a.Severity) {
		case "extreme", "severe":
			hazardLevel = "dangerous"
			safetyScore = 20
		case "moderate":
			if hazardLevel != "dangerous" {
				hazardLevel = "caution"
				safetyScore = 60
			}
		}
	}

	safetyLevel := "safe"
	if safetyScore < e.Cfg.MarineCautionThreshold {
		safetyLevel = "unsafe"
	} else if safetyScore < e.Cfg.MarineSafeThreshold {
		safetyLevel = "caution"
	}

	advisories := make([]string, 0, len(forecast.Alerts))
	for _, a := range forecast.Alerts {
		advisories = append(advisories, a.Headline)
	}

	return e.Store.InsertMarineCondition(ctx, store.MarineCondition{
		Timestamp:     time.Now().UTC(),
		WaveHeightFt:  forecast.WaveHeightFt,
		SeaStateLabel: forecast.SeaState,
		HazardLevel:   hazardLevel,
		Advisories:    advisories,
		SafetyScore:   safetyScore,
		SafetyLevel:   safetyLevel,
	})
}
