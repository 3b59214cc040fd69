package sources

import (
	"context"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/astro"
)

// SuncalcAstronomySource implements AstronomySource over pkg/astro's
// suncalc wrapper; it never fails (it's a pure computation, not a network
// fetch), so it carries no retry or staleness logic.
type SuncalcAstronomySource struct{}

// NewSuncalcAstronomySource builds an AstronomySource backed by suncalc.
func NewSuncalcAstronomySource() *SuncalcAstronomySource {
	return &SuncalcAstronomySource{}
}

// DailyForDate computes sunrise/sunset/moon-phase for date at (lat, lon).
func (s *SuncalcAstronomySource) DailyForDate(ctx context.Context, date time.Time, lat, lon float64) (AstronomicalDay, error) {
	day := astro.ForDate(date, lat, lon)
	return AstronomicalDay{
		Date:          day.Date,
		SunriseUTC:    day.SunriseUTC,
		SunsetUTC:     day.SunsetUTC,
		MoonPhase:     day.MoonPhase,
		MoonPhaseName: day.MoonPhaseName,
	}, nil
}
