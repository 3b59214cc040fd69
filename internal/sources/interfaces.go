// Package sources defines the narrow collaborator interfaces the engine
// depends on for everything outside its own store (spec §6), plus
// HTTP-backed implementations of each. Every fetch is bounded by a
// timeout, retried at most once, and on failure falls back to the client's
// last successfully fetched value rather than failing the ingestion
// pipeline (spec §4.2/§7). The staleness of that value is logged as a
// warning; the returned value carries no staleness flag for the caller.
package sources

import (
	"context"
	"time"
)

// TidePrediction is one predicted or observed tide reading.
type TidePrediction struct {
	Time         time.Time
	HeightFt     float64
	ExtremumKind string // "high", "low", or "" for a six-minute interval reading
}

// TideSource fetches tide predictions for a station over a time range.
type TideSource interface {
	PredictionsInRange(ctx context.Context, station string, begin, end time.Time) ([]TidePrediction, error)
}

// WeatherObservation is a point-in-time weather reading.
type WeatherObservation struct {
	Time                  time.Time
	AirTempF              float64
	WindSpeedMph          float64
	WindDirectionCardinal string
	WindGustMph           *float64
	PressureMb            float64
	Humidity              *float64
}

// WeatherObservationsSource fetches the latest observed weather at a
// station.
type WeatherObservationsSource interface {
	Latest(ctx context.Context, station string) (*WeatherObservation, error)
}

// WeatherForecastPoint is one hourly forecast reading.
type WeatherForecastPoint struct {
	Time              time.Time
	TemperatureF      float64
	WindSpeedMph      float64
	WindDirection     string
	CloudCover        string
	ShortConditions   string
	PrecipitationProb *float64
}

// WeatherForecastSource fetches an hourly forecast for a location.
type WeatherForecastSource interface {
	Hourly(ctx context.Context, lat, lon float64) ([]WeatherForecastPoint, error)
}

// MarineAlert is one active marine hazard advisory.
type MarineAlert struct {
	Headline string
	Severity string
}

// MarineForecast bundles a marine zone's forecast and active alerts.
type MarineForecast struct {
	Summary      string
	WaveHeightFt *float64
	SeaState     string
	WindGustMph  *float64
	Alerts       []MarineAlert
}

// MarineSource fetches the marine forecast and hazard alerts for a zone.
type MarineSource interface {
	ForecastAndAlerts(ctx context.Context, zone string) (*MarineForecast, error)
}

// AstronomicalDay holds sunrise/sunset/moon-phase facts for one date.
type AstronomicalDay struct {
	Date          time.Time
	SunriseUTC    time.Time
	SunsetUTC     time.Time
	MoonPhase     float64
	MoonPhaseName string
}

// AstronomySource computes sunrise/sunset/moon-phase for a date and
// location.
type AstronomySource interface {
	DailyForDate(ctx context.Context, date time.Time, lat, lon float64) (AstronomicalDay, error)
}

// WaterTempReading is one observed water temperature at a station.
type WaterTempReading struct {
	Time   time.Time
	TempF  float64
}

// WaterTempSource fetches the latest observed water temperature at a
// station, ingested as its own pipeline step distinct from air-temperature
// weather observations (spec §4.12).
type WaterTempSource interface {
	Latest(ctx context.Context, station string) (*WaterTempReading, error)
}
