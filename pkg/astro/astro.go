// Package astro wraps github.com/sixdouglas/suncalc to compute the
// sunrise/sunset/moon-phase facts the engine needs for AstronomicalDay
// records and time-of-day derivation.
package astro

import (
	"time"

	"github.com/sixdouglas/suncalc"
)

// Day holds the astronomical facts for a single calendar date at a fixed
// location, matching spec §3's AstronomicalDay entity.
type Day struct {
	Date            time.Time
	SunriseUTC      time.Time
	SunsetUTC       time.Time
	MoonPhase       float64 // 0..1, 0 = new moon, 0.5 = full moon
	MoonPhaseName   string
}

// ForDate computes sunrise, sunset, and moon phase for date at (lat, lon).
// date should carry the desired day in UTC; suncalc operates on the
// instant given.
func ForDate(date time.Time, lat, lon float64) Day {
	times := suncalc.GetTimes(date, lat, lon)
	illum := suncalc.GetMoonIllumination(date)

	return Day{
		Date:          date,
		SunriseUTC:    times.Sunrise.UTC(),
		SunsetUTC:     times.Sunset.UTC(),
		MoonPhase:     illum.Phase,
		MoonPhaseName: PhaseName(illum.Phase),
	}
}

// SunAltitudeDegrees returns the sun's altitude in degrees above the
// horizon at instant t for (lat, lon); used to corroborate dusk/dawn
// transitions beyond a bare sunrise/sunset comparison.
func SunAltitudeDegrees(t time.Time, lat, lon float64) float64 {
	position := suncalc.GetPosition(t, lat, lon)
	return position.Altitude * (180.0 / 3.141592653589793)
}

// PhaseName converts a 0..1 moon phase fraction to a display name using the
// standard eight-phase banding (new, waxing crescent, first quarter, waxing
// gibbous, full, waning gibbous, last quarter, waning crescent).
func PhaseName(phase float64) string {
	switch {
	case phase < 0.03 || phase >= 0.97:
		return "New Moon"
	case phase < 0.22:
		return "Waxing Crescent"
	case phase < 0.28:
		return "First Quarter"
	case phase < 0.47:
		return "Waxing Gibbous"
	case phase < 0.53:
		return "Full Moon"
	case phase < 0.72:
		return "Waning Gibbous"
	case phase < 0.78:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}

// TimeOfDay buckets an instant into one of the dock's seven daypart labels
// using that day's sunrise/sunset, per spec §4.3. Pre-dawn/dawn and
// dusk/night are split by a fixed offset around sunrise/sunset; midday and
// morning/evening split the remaining daylight in half.
func TimeOfDay(t, sunrise, sunset time.Time) string {
	const dawnDuskWindow = 45 * time.Minute

	switch {
	case t.Before(sunrise.Add(-dawnDuskWindow)):
		return "night"
	case t.Before(sunrise):
		return "pre-dawn"
	case t.Before(sunrise.Add(dawnDuskWindow)):
		return "dawn"
	case t.Before(sunset.Add(-dawnDuskWindow)):
		midpoint := sunrise.Add(sunset.Sub(sunrise) / 2)
		if t.Before(midpoint) {
			return "morning"
		}
		return "midday"
	case t.Before(sunset):
		return "evening"
	case t.Before(sunset.Add(dawnDuskWindow)):
		return "dusk"
	default:
		return "night"
	}
}
